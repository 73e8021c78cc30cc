package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped whenever schema.sql changes. There are no
// migrations: an archive built by another version must be rebuilt or opened
// with the matching binary.
const schemaVersion = 1

// ErrSchemaMismatch reports an archive created with a different schema.
var ErrSchemaMismatch = errors.New("schema version mismatch")

func (s *Store) initSchema(ctx context.Context) error {
	var version int
	err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	switch {
	case err == nil:
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%w: schema_version is empty", ErrSchemaMismatch)
	case isMissingTable(ctx, s.db, "schema_version"):
		return s.inTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
				return fmt.Errorf("create schema: %w", err)
			}
			if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
				return fmt.Errorf("record schema version: %w", err)
			}
			return nil
		})
	default:
		return fmt.Errorf("read schema version: %w", err)
	}

	switch {
	case version < schemaVersion:
		return fmt.Errorf("%w: archive has version %d, this build needs %d; rebuild the archive", ErrSchemaMismatch, version, schemaVersion)
	case version > schemaVersion:
		return fmt.Errorf("%w: archive has version %d, newer than this build (%d)", ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

func isMissingTable(ctx context.Context, q querier, name string) bool {
	var n int
	err := q.QueryRowContext(ctx, "SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&n)
	return err == nil && n == 0
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"archivewit/internal/archive"
)

// AddReleaseFile records a release file in the catalog, updating the size
// when the path is already known.
func (s *Store) AddReleaseFile(ctx context.Context, path string, size int64) (archive.ReleaseFile, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return archive.ReleaseFile{}, errors.New("add release file: empty path")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO release_files (path, size) VALUES (?, ?)
         ON CONFLICT(path) DO UPDATE SET size = excluded.size`, path, size)
	if err != nil {
		return archive.ReleaseFile{}, fmt.Errorf("insert release file: %w", err)
	}
	return releaseFileByPath(ctx, s.db, path)
}

// ReleaseFiles returns the catalog ordered by path.
func (s *Store) ReleaseFiles(ctx context.Context) ([]archive.ReleaseFile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, path, size FROM release_files ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("list release files: %w", err)
	}
	defer rows.Close()

	var files []archive.ReleaseFile
	for rows.Next() {
		var f archive.ReleaseFile
		if err := rows.Scan(&f.ID, &f.Path, &f.Size); err != nil {
			return nil, fmt.Errorf("scan release file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func releaseFileByPath(ctx context.Context, q querier, path string) (archive.ReleaseFile, error) {
	var f archive.ReleaseFile
	err := q.QueryRowContext(ctx, `SELECT id, path, size FROM release_files WHERE path = ?`, path).Scan(&f.ID, &f.Path, &f.Size)
	if errors.Is(err, sql.ErrNoRows) {
		return archive.ReleaseFile{}, fmt.Errorf("%w: %s", ErrUnknownReleaseFile, path)
	}
	if err != nil {
		return archive.ReleaseFile{}, fmt.Errorf("get release file: %w", err)
	}
	return f, nil
}

// resolveReleaseFiles replaces each file with its catalog entry so identities
// and sizes come from the catalog rather than the form.
func resolveReleaseFiles(ctx context.Context, q querier, files []archive.ReleaseFile) ([]archive.ReleaseFile, error) {
	resolved := make([]archive.ReleaseFile, 0, len(files))
	for _, f := range files {
		entry, err := releaseFileByPath(ctx, q, f.Path)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, entry)
	}
	return resolved, nil
}

// linkedReleaseFiles reads release files joined through a link table.
func linkedReleaseFiles(ctx context.Context, q querier, query string, id int64) ([]archive.ReleaseFile, error) {
	rows, err := q.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("list linked release files: %w", err)
	}
	defer rows.Close()

	var files []archive.ReleaseFile
	for rows.Next() {
		var f archive.ReleaseFile
		if err := rows.Scan(&f.ID, &f.Path, &f.Size); err != nil {
			return nil, fmt.Errorf("scan release file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

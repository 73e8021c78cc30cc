package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"archivewit/internal/archive"
)

// People returns every person ordered by name with their accumulated roles.
func (s *Store) People(ctx context.Context) ([]archive.Person, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, historical_title, description, types_json FROM people ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	defer rows.Close()

	var people []archive.Person
	for rows.Next() {
		var (
			p         archive.Person
			typesJSON string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.HistoricalTitle, &p.Description, &typesJSON); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		if err := decodeJSON(typesJSON, &p.Types); err != nil {
			return nil, fmt.Errorf("decode types of %s: %w", p.Name, err)
		}
		people = append(people, p)
	}
	return people, rows.Err()
}

// savePerson makes sure p exists and that its stored role set includes every
// role in p.Types. A person with ID 0 whose name is already taken is matched
// to the existing row.
func savePerson(ctx context.Context, tx *sql.Tx, p archive.Person) (archive.Person, error) {
	var (
		existingID int64
		typesJSON  string
	)
	var err error
	if p.ID != 0 {
		err = tx.QueryRowContext(ctx, `SELECT id, types_json FROM people WHERE id = ?`, p.ID).Scan(&existingID, &typesJSON)
	} else {
		err = tx.QueryRowContext(ctx, `SELECT id, types_json FROM people WHERE name = ?`, p.Name).Scan(&existingID, &typesJSON)
	}

	switch {
	case errors.Is(err, sql.ErrNoRows) && p.ID == 0:
		encoded, err := encodeJSON(roleSet(nil, p.Types))
		if err != nil {
			return archive.Person{}, fmt.Errorf("encode types: %w", err)
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO people (name, historical_title, description, types_json) VALUES (?, ?, ?, ?)`,
			p.Name, p.HistoricalTitle, p.Description, encoded)
		if err != nil {
			return archive.Person{}, fmt.Errorf("insert person %s: %w", p.Name, err)
		}
		if p.ID, err = lastInsertID(res, "person"); err != nil {
			return archive.Person{}, err
		}
		return p, nil
	case errors.Is(err, sql.ErrNoRows):
		return archive.Person{}, fmt.Errorf("person %d: %w", p.ID, ErrNotFound)
	case err != nil:
		return archive.Person{}, fmt.Errorf("get person %s: %w", p.Name, err)
	}

	var stored []archive.PersonType
	if err := decodeJSON(typesJSON, &stored); err != nil {
		return archive.Person{}, fmt.Errorf("decode types of %s: %w", p.Name, err)
	}
	encoded, err := encodeJSON(roleSet(stored, p.Types))
	if err != nil {
		return archive.Person{}, fmt.Errorf("encode types: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE people SET types_json = ? WHERE id = ?`, encoded, existingID); err != nil {
		return archive.Person{}, fmt.Errorf("update person %s: %w", p.Name, err)
	}
	p.ID = existingID
	return p, nil
}

// roleSet unions two role lists, keeping first-seen order.
func roleSet(a, b []archive.PersonType) []archive.PersonType {
	out := make([]archive.PersonType, 0, len(a)+len(b))
	seen := make(map[archive.PersonType]struct{}, len(a)+len(b))
	for _, list := range [][]archive.PersonType{a, b} {
		for _, t := range list {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

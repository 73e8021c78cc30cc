package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"archivewit/internal/archive"
)

// MasterVideos returns every master video ordered by title.
func (s *Store) MasterVideos(ctx context.Context) ([]archive.MasterVideo, error) {
	ids, err := collectIDs(ctx, s.db, `SELECT id FROM master_videos ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("list master videos: %w", err)
	}
	masters := make([]archive.MasterVideo, 0, len(ids))
	for _, id := range ids {
		m, err := masterVideo(ctx, s.db, id)
		if err != nil {
			return nil, err
		}
		masters = append(masters, m)
	}
	return masters, nil
}

// MasterVideo fetches one master video with its people, broadcasts,
// timestamps and NIST files.
func (s *Store) MasterVideo(ctx context.Context, id int64) (archive.MasterVideo, error) {
	return masterVideo(ctx, s.db, id)
}

func masterVideo(ctx context.Context, q querier, id int64) (archive.MasterVideo, error) {
	var (
		m              archive.MasterVideo
		date           sql.NullString
		categoriesJSON string
		linksJSON      string
	)
	err := q.QueryRowContext(ctx,
		`SELECT id, title, video_date, description, categories_json, links_json, nist_notes
         FROM master_videos WHERE id = ?`, id).
		Scan(&m.ID, &m.Title, &date, &m.Description, &categoriesJSON, &linksJSON, &m.NistNotes)
	if errors.Is(err, sql.ErrNoRows) {
		return archive.MasterVideo{}, fmt.Errorf("master video %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return archive.MasterVideo{}, fmt.Errorf("get master video: %w", err)
	}
	if m.Date, err = parseDate(date); err != nil {
		return archive.MasterVideo{}, err
	}
	if err := decodeJSON(categoriesJSON, &m.Categories); err != nil {
		return archive.MasterVideo{}, fmt.Errorf("decode categories: %w", err)
	}
	if err := decodeJSON(linksJSON, &m.Links); err != nil {
		return archive.MasterVideo{}, fmt.Errorf("decode links: %w", err)
	}
	if m.Timestamps, err = masterTimestamps(ctx, q, id); err != nil {
		return archive.MasterVideo{}, err
	}
	if m.People, err = masterPeople(ctx, q, id); err != nil {
		return archive.MasterVideo{}, err
	}
	if m.NewsBroadcasts, err = masterBroadcasts(ctx, q, id); err != nil {
		return archive.MasterVideo{}, err
	}
	m.NistFiles, err = linkedReleaseFiles(ctx, q,
		`SELECT f.id, f.path, f.size FROM master_video_nist_files l
         JOIN release_files f ON f.id = l.release_file_id
         WHERE l.master_video_id = ? ORDER BY l.position`, id)
	if err != nil {
		return archive.MasterVideo{}, err
	}
	return m, nil
}

func masterTimestamps(ctx context.Context, q querier, id int64) ([]archive.EventTimestamp, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, offset_ms, description, time_of_day, event_type
         FROM master_video_timestamps WHERE master_video_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list timestamps: %w", err)
	}
	defer rows.Close()

	var timestamps []archive.EventTimestamp
	for rows.Next() {
		var (
			ts       archive.EventTimestamp
			offsetMS int64
			tod      sql.NullString
		)
		if err := rows.Scan(&ts.ID, &offsetMS, &ts.Description, &tod, &ts.EventType); err != nil {
			return nil, fmt.Errorf("scan timestamp: %w", err)
		}
		ts.Offset = time.Duration(offsetMS) * time.Millisecond
		if tod.Valid && len(tod.String) == 4 {
			var t archive.TimeOfDay
			if _, err := fmt.Sscanf(tod.String, "%02d%02d", &t.Hour, &t.Minute); err == nil {
				ts.TimeOfDay = &t
			}
		}
		timestamps = append(timestamps, ts)
	}
	return timestamps, rows.Err()
}

// masterPeople returns the people of a master video tagged with the roles
// they play in it, not their accumulated roles.
func masterPeople(ctx context.Context, q querier, id int64) ([]archive.Person, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT p.id, p.name, p.historical_title, p.description, l.roles_json
         FROM master_video_people l JOIN people p ON p.id = l.person_id
         WHERE l.master_video_id = ? ORDER BY l.position`, id)
	if err != nil {
		return nil, fmt.Errorf("list master video people: %w", err)
	}
	defer rows.Close()

	var people []archive.Person
	for rows.Next() {
		var (
			p         archive.Person
			rolesJSON string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.HistoricalTitle, &p.Description, &rolesJSON); err != nil {
			return nil, fmt.Errorf("scan master video person: %w", err)
		}
		if err := decodeJSON(rolesJSON, &p.Types); err != nil {
			return nil, fmt.Errorf("decode roles of %s: %w", p.Name, err)
		}
		people = append(people, p)
	}
	return people, rows.Err()
}

func masterBroadcasts(ctx context.Context, q querier, id int64) ([]archive.NewsBroadcast, error) {
	ids, err := collectIDs(ctx, q,
		`SELECT news_broadcast_id FROM master_video_broadcasts WHERE master_video_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list master video broadcasts: %w", err)
	}
	var broadcasts []archive.NewsBroadcast
	for _, broadcastID := range ids {
		b, err := newsBroadcast(ctx, q, broadcastID)
		if err != nil {
			return nil, err
		}
		broadcasts = append(broadcasts, b)
	}
	return broadcasts, nil
}

// SaveMasterVideo inserts or updates a master video and replaces its
// timestamps and links. New people are created; existing people gain any new
// roles. NIST files must already be in the release file catalog.
func (s *Store) SaveMasterVideo(ctx context.Context, m archive.MasterVideo) (archive.MasterVideo, error) {
	m.Timestamps = append([]archive.EventTimestamp(nil), m.Timestamps...)
	m.People = append([]archive.Person(nil), m.People...)
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		categories, err := encodeJSON(m.Categories)
		if err != nil {
			return fmt.Errorf("encode categories: %w", err)
		}
		if m.Links == nil {
			m.Links = []string{}
		}
		links, err := encodeJSON(m.Links)
		if err != nil {
			return fmt.Errorf("encode links: %w", err)
		}

		if m.ID == 0 {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO master_videos (title, video_date, description, categories_json, links_json, nist_notes)
                 VALUES (?, ?, ?, ?, ?, ?)`,
				m.Title, nullableDate(m.Date), m.Description, categories, links, m.NistNotes)
			if err != nil {
				return fmt.Errorf("insert master video: %w", err)
			}
			if m.ID, err = lastInsertID(res, "master video"); err != nil {
				return err
			}
		} else {
			res, err := tx.ExecContext(ctx,
				`UPDATE master_videos SET title = ?, video_date = ?, description = ?, categories_json = ?,
                 links_json = ?, nist_notes = ? WHERE id = ?`,
				m.Title, nullableDate(m.Date), m.Description, categories, links, m.NistNotes, m.ID)
			if err != nil {
				return fmt.Errorf("update master video: %w", err)
			}
			if err := rowsAffected(res, "master video", m.ID); err != nil {
				return err
			}
		}

		for _, table := range []string{"master_video_timestamps", "master_video_people", "master_video_broadcasts", "master_video_nist_files"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE master_video_id = ?`, m.ID); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		for i := range m.Timestamps {
			ts := &m.Timestamps[i]
			var tod any
			if ts.TimeOfDay != nil {
				tod = ts.TimeOfDay.String()
			}
			res, err := tx.ExecContext(ctx,
				`INSERT INTO master_video_timestamps (master_video_id, position, offset_ms, description, time_of_day, event_type)
                 VALUES (?, ?, ?, ?, ?, ?)`,
				m.ID, i, ts.Offset.Milliseconds(), ts.Description, tod, string(ts.EventType))
			if err != nil {
				return fmt.Errorf("insert timestamp: %w", err)
			}
			if ts.ID, err = lastInsertID(res, "timestamp"); err != nil {
				return err
			}
		}

		for i := range m.People {
			saved, err := savePerson(ctx, tx, m.People[i])
			if err != nil {
				return err
			}
			m.People[i] = saved
			roles, err := encodeJSON(saved.Types)
			if err != nil {
				return fmt.Errorf("encode roles: %w", err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO master_video_people (master_video_id, person_id, position, roles_json) VALUES (?, ?, ?, ?)`,
				m.ID, saved.ID, i, roles); err != nil {
				return fmt.Errorf("link person %s: %w", saved.Name, err)
			}
		}

		for i, b := range m.NewsBroadcasts {
			if b.ID == 0 {
				return fmt.Errorf("link broadcast %s: broadcast has no identity", b)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO master_video_broadcasts (master_video_id, news_broadcast_id, position) VALUES (?, ?, ?)`,
				m.ID, b.ID, i); err != nil {
				return fmt.Errorf("link broadcast %s: %w", b, err)
			}
		}

		if m.NistFiles, err = resolveReleaseFiles(ctx, tx, m.NistFiles); err != nil {
			return err
		}
		for i, f := range m.NistFiles {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO master_video_nist_files (master_video_id, release_file_id, position) VALUES (?, ?, ?)`,
				m.ID, f.ID, i); err != nil {
				return fmt.Errorf("link release file %s: %w", f.Path, err)
			}
		}
		return nil
	})
	if err != nil {
		return archive.MasterVideo{}, err
	}
	return m, nil
}

func collectIDs(ctx context.Context, q querier, query string, args ...any) ([]int64, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

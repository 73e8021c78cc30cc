package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"archivewit/internal/archive"
)

const nistVideoColumns = `video_id, title, network, broadcast_date, duration_min, subject, notes, is_missing, additional_notes`

func scanNistVideo(scanner interface{ Scan(dest ...any) error }) (archive.NistVideo, error) {
	var (
		v       archive.NistVideo
		date    sql.NullString
		missing int
	)
	if err := scanner.Scan(&v.VideoID, &v.Title, &v.Network, &date, &v.DurationMin, &v.Subject, &v.Notes,
		&missing, &v.AdditionalNotes); err != nil {
		return archive.NistVideo{}, err
	}
	d, err := parseDate(date)
	if err != nil {
		return archive.NistVideo{}, err
	}
	v.BroadcastDate = d
	v.IsMissing = missing != 0
	return v, nil
}

// NistVideos returns the NIST video table ordered by video id.
func (s *Store) NistVideos(ctx context.Context) ([]archive.NistVideo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+nistVideoColumns+` FROM nist_videos ORDER BY video_id`)
	if err != nil {
		return nil, fmt.Errorf("list nist videos: %w", err)
	}
	defer rows.Close()

	var videos []archive.NistVideo
	for rows.Next() {
		v, err := scanNistVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan nist video: %w", err)
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// NistVideo fetches one NIST video row.
func (s *Store) NistVideo(ctx context.Context, videoID int64) (archive.NistVideo, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+nistVideoColumns+` FROM nist_videos WHERE video_id = ?`, videoID)
	v, err := scanNistVideo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return archive.NistVideo{}, fmt.Errorf("nist video %d: %w", videoID, ErrNotFound)
	}
	if err != nil {
		return archive.NistVideo{}, fmt.Errorf("get nist video: %w", err)
	}
	return v, nil
}

// SaveNistVideoNotes stores the archive's annotations on a NIST video. The
// imported columns are left untouched.
func (s *Store) SaveNistVideoNotes(ctx context.Context, v archive.NistVideo) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE nist_videos SET is_missing = ?, additional_notes = ? WHERE video_id = ?`,
		boolToInt(v.IsMissing), v.AdditionalNotes, v.VideoID)
	if err != nil {
		return fmt.Errorf("update nist video: %w", err)
	}
	return rowsAffected(res, "nist video", v.VideoID)
}

// ImportNistVideos upserts rows from the NIST video table. Annotations on
// existing rows survive a re-import.
func (s *Store) ImportNistVideos(ctx context.Context, videos []archive.NistVideo) (int, error) {
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		for _, v := range videos {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO nist_videos (video_id, title, network, broadcast_date, duration_min, subject, notes)
                 VALUES (?, ?, ?, ?, ?, ?, ?)
                 ON CONFLICT(video_id) DO UPDATE SET title = excluded.title, network = excluded.network,
                     broadcast_date = excluded.broadcast_date, duration_min = excluded.duration_min,
                     subject = excluded.subject, notes = excluded.notes`,
				v.VideoID, v.Title, v.Network, nullableDate(v.BroadcastDate), v.DurationMin, v.Subject, v.Notes); err != nil {
				return fmt.Errorf("import nist video %d: %w", v.VideoID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(videos), nil
}

const nistTapeColumns = `tape_id, video_id, tape_name, tape_source, copy, derived_from, format, duration_min, batch, clips, timecode`

func scanNistTapeRows(rows *sql.Rows) ([]archive.NistTape, error) {
	defer rows.Close()
	var tapes []archive.NistTape
	for rows.Next() {
		var (
			t                      archive.NistTape
			batch, clips, timecode int
		)
		if err := rows.Scan(&t.TapeID, &t.VideoID, &t.Name, &t.Source, &t.Copy, &t.DerivedFrom, &t.Format,
			&t.DurationMin, &batch, &clips, &timecode); err != nil {
			return nil, fmt.Errorf("scan nist tape: %w", err)
		}
		t.Batch, t.Clips, t.Timecode = batch != 0, clips != 0, timecode != 0
		tapes = append(tapes, t)
	}
	return tapes, rows.Err()
}

func (s *Store) nistTapes(ctx context.Context, query string, args ...any) ([]archive.NistTape, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list nist tapes: %w", err)
	}
	tapes, err := scanNistTapeRows(rows)
	if err != nil {
		return nil, err
	}
	for i := range tapes {
		tapes[i].ReleaseFiles, err = linkedReleaseFiles(ctx, s.db,
			`SELECT f.id, f.path, f.size FROM nist_tape_files l
             JOIN release_files f ON f.id = l.release_file_id
             WHERE l.tape_id = ? ORDER BY l.position`, tapes[i].TapeID)
		if err != nil {
			return nil, err
		}
	}
	return tapes, nil
}

// NistTapes returns the NIST tape table ordered by tape id.
func (s *Store) NistTapes(ctx context.Context) ([]archive.NistTape, error) {
	return s.nistTapes(ctx, `SELECT `+nistTapeColumns+` FROM nist_tapes ORDER BY tape_id`)
}

// FindNistTapes returns tapes whose name contains term, case-insensitively.
func (s *Store) FindNistTapes(ctx context.Context, term string) ([]archive.NistTape, error) {
	return s.nistTapes(ctx, `SELECT `+nistTapeColumns+` FROM nist_tapes
        WHERE tape_name LIKE '%' || ? || '%' ORDER BY tape_id`, term)
}

// NistTape fetches one tape with its release files.
func (s *Store) NistTape(ctx context.Context, tapeID int64) (archive.NistTape, error) {
	tapes, err := s.nistTapes(ctx, `SELECT `+nistTapeColumns+` FROM nist_tapes WHERE tape_id = ?`, tapeID)
	if err != nil {
		return archive.NistTape{}, err
	}
	if len(tapes) == 0 {
		return archive.NistTape{}, fmt.Errorf("nist tape %d: %w", tapeID, ErrNotFound)
	}
	return tapes[0], nil
}

// SaveNistTapeFiles replaces the release files matched to a tape. Every path
// must be in the release file catalog.
func (s *Store) SaveNistTapeFiles(ctx context.Context, tapeID int64, files []archive.ReleaseFile) ([]archive.ReleaseFile, error) {
	var resolved []archive.ReleaseFile
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var exists int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM nist_tapes WHERE tape_id = ?`, tapeID).Scan(&exists); err != nil {
			return fmt.Errorf("check nist tape: %w", err)
		}
		if exists == 0 {
			return fmt.Errorf("nist tape %d: %w", tapeID, ErrNotFound)
		}
		var err error
		if resolved, err = resolveReleaseFiles(ctx, tx, files); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM nist_tape_files WHERE tape_id = ?`, tapeID); err != nil {
			return fmt.Errorf("clear nist tape files: %w", err)
		}
		for i, f := range resolved {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO nist_tape_files (tape_id, release_file_id, position) VALUES (?, ?, ?)`,
				tapeID, f.ID, i); err != nil {
				return fmt.Errorf("link release file %s: %w", f.Path, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resolved, nil
}

// ImportNistTapes upserts rows from the NIST tape table. Matched release
// files survive a re-import.
func (s *Store) ImportNistTapes(ctx context.Context, tapes []archive.NistTape) (int, error) {
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		for _, t := range tapes {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO nist_tapes (`+nistTapeColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
                 ON CONFLICT(tape_id) DO UPDATE SET video_id = excluded.video_id, tape_name = excluded.tape_name,
                     tape_source = excluded.tape_source, copy = excluded.copy, derived_from = excluded.derived_from,
                     format = excluded.format, duration_min = excluded.duration_min, batch = excluded.batch,
                     clips = excluded.clips, timecode = excluded.timecode`,
				t.TapeID, t.VideoID, t.Name, t.Source, t.Copy, t.DerivedFrom, t.Format, t.DurationMin,
				boolToInt(t.Batch), boolToInt(t.Clips), boolToInt(t.Timecode)); err != nil {
				return fmt.Errorf("import nist tape %d: %w", t.TapeID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(tapes), nil
}

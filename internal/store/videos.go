package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"archivewit/internal/archive"
)

type videoRow struct {
	video    archive.Video
	masterID int64
}

const videoColumns = `id, master_video_id, title, channel, description, link, duration_ms, is_primary`

func scanVideoRows(rows *sql.Rows) ([]videoRow, error) {
	defer rows.Close()
	var out []videoRow
	for rows.Next() {
		var (
			r          videoRow
			durationMS int64
			primary    int
		)
		if err := rows.Scan(&r.video.ID, &r.masterID, &r.video.Title, &r.video.Channel, &r.video.Description,
			&r.video.Link, &durationMS, &primary); err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		r.video.Duration = time.Duration(durationMS) * time.Millisecond
		r.video.IsPrimary = primary != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) videos(ctx context.Context, query string, args ...any) ([]archive.Video, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	scanned, err := scanVideoRows(rows)
	if err != nil {
		return nil, err
	}
	masters := make(map[int64]archive.MasterVideo)
	videos := make([]archive.Video, 0, len(scanned))
	for _, r := range scanned {
		master, ok := masters[r.masterID]
		if !ok {
			if master, err = masterVideo(ctx, s.db, r.masterID); err != nil {
				return nil, err
			}
			masters[r.masterID] = master
		}
		r.video.Master = master
		videos = append(videos, r.video)
	}
	return videos, nil
}

// Videos returns every video ordered by title.
func (s *Store) Videos(ctx context.Context) ([]archive.Video, error) {
	return s.videos(ctx, `SELECT `+videoColumns+` FROM videos ORDER BY title`)
}

// VideosForMaster returns the videos of one master, primary first.
func (s *Store) VideosForMaster(ctx context.Context, masterID int64) ([]archive.Video, error) {
	return s.videos(ctx, `SELECT `+videoColumns+` FROM videos WHERE master_video_id = ? ORDER BY is_primary DESC, title`, masterID)
}

// Video fetches one video with its master.
func (s *Store) Video(ctx context.Context, id int64) (archive.Video, error) {
	videos, err := s.videos(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = ?`, id)
	if err != nil {
		return archive.Video{}, err
	}
	if len(videos) == 0 {
		return archive.Video{}, fmt.Errorf("video %d: %w", id, ErrNotFound)
	}
	return videos[0], nil
}

// SaveVideo inserts or updates a video. Its master must already exist.
func (s *Store) SaveVideo(ctx context.Context, v archive.Video) (archive.Video, error) {
	if v.Master.ID == 0 {
		return archive.Video{}, errors.New("save video: master video has no identity")
	}
	if v.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO videos (master_video_id, title, channel, description, link, duration_ms, is_primary)
             VALUES (?, ?, ?, ?, ?, ?, ?)`,
			v.Master.ID, v.Title, v.Channel, v.Description, v.Link, v.Duration.Milliseconds(), boolToInt(v.IsPrimary))
		if err != nil {
			return archive.Video{}, fmt.Errorf("insert video: %w", err)
		}
		if v.ID, err = lastInsertID(res, "video"); err != nil {
			return archive.Video{}, err
		}
		return v, nil
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE videos SET master_video_id = ?, title = ?, channel = ?, description = ?, link = ?,
         duration_ms = ?, is_primary = ? WHERE id = ?`,
		v.Master.ID, v.Title, v.Channel, v.Description, v.Link, v.Duration.Milliseconds(), boolToInt(v.IsPrimary), v.ID)
	if err != nil {
		return archive.Video{}, fmt.Errorf("update video: %w", err)
	}
	return v, rowsAffected(res, "video", v.ID)
}

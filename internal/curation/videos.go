package curation

import (
	"context"
	"fmt"

	"archivewit/internal/archive"
	"archivewit/internal/editing"
	"archivewit/internal/logging"
)

const entityVideo = "video"

// VideoDraft pre-fills a new video form.
type VideoDraft struct {
	// MasterID selects the master video; 0 leaves it for the editor.
	MasterID int64
	// Link is the video page. With a LinkFetcher configured the page's title,
	// channel, description and duration are filled in too.
	Link string
}

// AddVideo opens a new video form listing the master videos.
func (s *Service) AddVideo(ctx context.Context, draft VideoDraft) (*archive.Video, error) {
	masters, err := s.store.MasterVideos(ctx)
	if err != nil {
		return nil, fmt.Errorf("load master videos: %w", err)
	}

	v := archive.Video{Link: draft.Link}
	if draft.MasterID != 0 {
		if v.Master, err = s.store.MasterVideo(ctx, draft.MasterID); err != nil {
			return nil, fmt.Errorf("load master video: %w", err)
		}
	}
	s.prefill(ctx, &v)

	form := editing.NewVideoDraftForm(v)
	if err := form.AddChoices("Master", labels(masters, func(m archive.MasterVideo) string { return m.Title })); err != nil {
		return nil, err
	}
	return s.runVideo(ctx, 0, form, masters)
}

// EditVideo opens an existing video.
func (s *Service) EditVideo(ctx context.Context, id int64) (*archive.Video, error) {
	v, err := s.store.Video(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load video: %w", err)
	}
	masters, err := s.store.MasterVideos(ctx)
	if err != nil {
		return nil, fmt.Errorf("load master videos: %w", err)
	}
	return s.runVideo(ctx, id, editing.NewVideoForm(v), masters)
}

// prefill copies link metadata onto v. A failed fetch only costs the
// pre-filled values.
func (s *Service) prefill(ctx context.Context, v *archive.Video) {
	if s.links == nil || v.Link == "" {
		return
	}
	meta, err := s.links.Fetch(ctx, v.Link)
	if err != nil {
		s.logger.Warn("link metadata unavailable", logging.String("link", v.Link), logging.Error(err))
		return
	}
	v.Title = meta.Title
	v.Channel = meta.Channel
	v.Description = meta.Description
	v.Duration = meta.Duration
}

func (s *Service) runVideo(ctx context.Context, id int64, form *editing.Form, masters []archive.MasterVideo) (*archive.Video, error) {
	return run(ctx, s, session[archive.Video]{
		entity: entityVideo,
		id:     id,
		form:   form,
		parse: func(text string) (archive.Video, error) {
			return editing.ParseVideo(id, text, masters)
		},
		save: s.store.SaveVideo,
	})
}

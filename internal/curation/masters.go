package curation

import (
	"context"
	"fmt"

	"archivewit/internal/archive"
	"archivewit/internal/editing"
)

const entityMasterVideo = "master video"

// AddMasterVideo opens an empty master video form listing the known
// broadcasts and saves the result as a new record.
func (s *Service) AddMasterVideo(ctx context.Context) (*archive.MasterVideo, error) {
	broadcasts, people, err := s.masterReferences(ctx)
	if err != nil {
		return nil, err
	}
	form := editing.NewMasterVideoForm(archive.MasterVideo{})
	if err := form.AddChoices("News Broadcasts", labels(broadcasts, archive.NewsBroadcast.String)); err != nil {
		return nil, err
	}
	return s.runMasterVideo(ctx, 0, form, broadcasts, people)
}

// EditMasterVideo opens an existing master video.
func (s *Service) EditMasterVideo(ctx context.Context, id int64) (*archive.MasterVideo, error) {
	m, err := s.store.MasterVideo(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load master video: %w", err)
	}
	broadcasts, people, err := s.masterReferences(ctx)
	if err != nil {
		return nil, err
	}
	return s.runMasterVideo(ctx, id, editing.NewMasterVideoForm(m), broadcasts, people)
}

func (s *Service) masterReferences(ctx context.Context) ([]archive.NewsBroadcast, []archive.Person, error) {
	broadcasts, err := s.store.NewsBroadcasts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load news broadcasts: %w", err)
	}
	people, err := s.store.People(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load people: %w", err)
	}
	return broadcasts, people, nil
}

func (s *Service) runMasterVideo(ctx context.Context, id int64, form *editing.Form, broadcasts []archive.NewsBroadcast, people []archive.Person) (*archive.MasterVideo, error) {
	return run(ctx, s, session[archive.MasterVideo]{
		entity: entityMasterVideo,
		id:     id,
		form:   form,
		parse: func(text string) (archive.MasterVideo, error) {
			return editing.ParseMasterVideo(id, text, broadcasts, people)
		},
		save: s.store.SaveMasterVideo,
	})
}

package curation

import (
	"context"
	"fmt"

	"archivewit/internal/archive"
	"archivewit/internal/editing"
)

const (
	entityNistVideo = "nist video"
	entityNistTape  = "nist tape"
)

// EditNistVideo opens the archive's annotations on a NIST video.
func (s *Service) EditNistVideo(ctx context.Context, videoID int64) (*archive.NistVideo, error) {
	v, err := s.store.NistVideo(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("load nist video: %w", err)
	}
	return run(ctx, s, session[archive.NistVideo]{
		entity: entityNistVideo,
		id:     videoID,
		form:   editing.NewNistVideoForm(v),
		parse: func(text string) (archive.NistVideo, error) {
			annotations, err := editing.ParseNistVideoAnnotations(text)
			if err != nil {
				return archive.NistVideo{}, err
			}
			updated := v
			annotations.Apply(&updated)
			return updated, nil
		},
		save: func(ctx context.Context, updated archive.NistVideo) (archive.NistVideo, error) {
			return updated, s.store.SaveNistVideoNotes(ctx, updated)
		},
	})
}

// EditNistTape opens the list of release files matched to a NIST tape.
func (s *Service) EditNistTape(ctx context.Context, tapeID int64) (*archive.NistTape, error) {
	t, err := s.store.NistTape(ctx, tapeID)
	if err != nil {
		return nil, fmt.Errorf("load nist tape: %w", err)
	}
	return run(ctx, s, session[archive.NistTape]{
		entity: entityNistTape,
		id:     tapeID,
		form:   editing.NewNistTapeForm(t),
		parse: func(text string) (archive.NistTape, error) {
			files, err := editing.ParseNistTapeFiles(text)
			if err != nil {
				return archive.NistTape{}, err
			}
			updated := t
			updated.ReleaseFiles = files
			return updated, nil
		},
		save: func(ctx context.Context, updated archive.NistTape) (archive.NistTape, error) {
			files, err := s.store.SaveNistTapeFiles(ctx, updated.TapeID, updated.ReleaseFiles)
			if err != nil {
				return archive.NistTape{}, err
			}
			updated.ReleaseFiles = files
			return updated, nil
		},
	})
}

package curation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"archivewit/internal/archive"
	"archivewit/internal/editing"
	"archivewit/internal/editor"
	"archivewit/internal/linkmeta"
	"archivewit/internal/logging"
)

// Archive is the persistence the sessions need. *store.Store satisfies it.
type Archive interface {
	MasterVideos(ctx context.Context) ([]archive.MasterVideo, error)
	MasterVideo(ctx context.Context, id int64) (archive.MasterVideo, error)
	SaveMasterVideo(ctx context.Context, m archive.MasterVideo) (archive.MasterVideo, error)
	People(ctx context.Context) ([]archive.Person, error)

	Video(ctx context.Context, id int64) (archive.Video, error)
	SaveVideo(ctx context.Context, v archive.Video) (archive.Video, error)

	NewsNetworks(ctx context.Context) ([]archive.NewsNetwork, error)
	NewsNetwork(ctx context.Context, id int64) (archive.NewsNetwork, error)
	SaveNewsNetwork(ctx context.Context, n archive.NewsNetwork) (archive.NewsNetwork, error)
	NewsAffiliates(ctx context.Context) ([]archive.NewsAffiliate, error)
	NewsAffiliate(ctx context.Context, id int64) (archive.NewsAffiliate, error)
	SaveNewsAffiliate(ctx context.Context, a archive.NewsAffiliate) (archive.NewsAffiliate, error)
	NewsBroadcasts(ctx context.Context) ([]archive.NewsBroadcast, error)
	NewsBroadcast(ctx context.Context, id int64) (archive.NewsBroadcast, error)
	SaveNewsBroadcast(ctx context.Context, b archive.NewsBroadcast) (archive.NewsBroadcast, error)

	NistVideo(ctx context.Context, videoID int64) (archive.NistVideo, error)
	SaveNistVideoNotes(ctx context.Context, v archive.NistVideo) error
	NistTape(ctx context.Context, tapeID int64) (archive.NistTape, error)
	SaveNistTapeFiles(ctx context.Context, tapeID int64, files []archive.ReleaseFile) ([]archive.ReleaseFile, error)
}

// LinkFetcher retrieves metadata for a video page.
type LinkFetcher interface {
	Fetch(ctx context.Context, pageURL string) (linkmeta.Metadata, error)
}

// Service runs edit sessions.
type Service struct {
	store  Archive
	editor editor.Editor
	links  LinkFetcher
	logger *slog.Logger
}

// Option configures optional Service behavior.
type Option func(*Service)

// WithLinkFetcher enables pre-filling new video forms from their page.
func WithLinkFetcher(f LinkFetcher) Option {
	return func(s *Service) {
		s.links = f
	}
}

// NewService constructs a Service. A nil logger discards output.
func NewService(store Archive, ed editor.Editor, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:  store,
		editor: ed,
		logger: logging.NewComponentLogger(logger, "curation"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// session describes one round trip through the editor.
type session[T any] struct {
	entity string
	id     int64
	form   *editing.Form
	parse  func(text string) (T, error)
	save   func(ctx context.Context, record T) (T, error)
}

func run[T any](ctx context.Context, s *Service, sess session[T]) (*T, error) {
	logger := s.logger.With(
		logging.String(logging.FieldSessionID, uuid.NewString()),
		logging.String(logging.FieldEntity, sess.entity),
		logging.Int64(logging.FieldRecordID, sess.id),
	)
	logger.Info("edit session started")

	edited, ok, err := s.editor.Edit(ctx, sess.form.String())
	if err != nil {
		logger.Error("editor failed", logging.Error(err))
		return nil, fmt.Errorf("edit %s: %w", sess.entity, err)
	}
	if !ok {
		logger.Info("edit session cancelled")
		return nil, nil
	}

	record, err := sess.parse(edited)
	if err != nil {
		logger.Warn("edited form rejected",
			logging.String(logging.FieldErrorKind, editing.ErrorKindOf(err)),
			logging.Error(err),
		)
		return nil, err
	}

	saved, err := sess.save(ctx, record)
	if err != nil {
		logger.Error("save failed", logging.Error(err))
		return nil, fmt.Errorf("save %s: %w", sess.entity, err)
	}
	logger.Info("edit session saved")
	return &saved, nil
}

func labels[T any](items []T, label func(T) string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = label(item)
	}
	return out
}

package journal

import (
	"context"

	"codeberg.org/mutker/displayctl/internal/errors"
	"codeberg.org/mutker/displayctl/internal/logger"
)

type service struct {
	repo *repository
}

type noopRecorder struct{}

// Disabled returns a recorder that records nothing and lists nothing.
func Disabled() Recorder {
	return &noopRecorder{}
}

// NewService opens the journal described by cfg. A disabled journal records
// nothing and lists nothing.
func NewService(cfg Config, log logger.Logger) (Recorder, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	if !cfg.Enabled {
		log.Debug().Msg("Journal disabled, using no-op recorder")
		return Disabled(), nil
	}

	repo, err := newRepository(cfg, log)
	if err != nil {
		log.Debug().Err(err).Msg("Failed to create journal repository")
		return nil, err
	}

	return &service{repo: repo}, nil
}

func (s *service) Record(ctx context.Context, entry *Entry) error {
	errFactory := errors.New()

	if entry == nil || entry.ID == "" {
		return errFactory.New(ErrInvalidEntry)
	}

	select {
	case <-ctx.Done():
		return errFactory.Wrap(ErrOperationTime, ctx.Err())
	default:
	}

	return s.repo.insert(ctx, entry)
}

func (s *service) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, errors.New().WithData(errors.ErrInvalidArgument, "limit must be positive")
	}

	return s.repo.recent(ctx, limit)
}

func (s *service) Close() error {
	return s.repo.close()
}

func (*noopRecorder) Record(_ context.Context, _ *Entry) error {
	return nil
}

func (*noopRecorder) Recent(_ context.Context, _ int) ([]Entry, error) {
	return nil, nil
}

func (*noopRecorder) Close() error {
	return nil
}

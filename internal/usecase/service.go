package usecase

import (
	"context"
	"errors"
	"sync"

	"svw.info/untangle/internal/domain"
	"svw.info/untangle/internal/ports"
)

// Service wires the puzzle ports together and tracks running level
// sessions for the host adapters.
type Service struct {
	Generator ports.Generator
	Validator ports.Validator
	Hinter    ports.Hinter
	Storage   ports.Storage

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewService(g ports.Generator, v ports.Validator, h ports.Hinter, st ports.Storage) *Service {
	return &Service{
		Generator: g,
		Validator: v,
		Hinter:    h,
		Storage:   st,
		sessions:  make(map[string]*session),
	}
}

var errNotConfigured = errors.New("usecase dependency not configured")

func (u *Service) Validate(ctx context.Context, l *domain.Level) (bool, []domain.Fault, error) {
	if u.Validator == nil {
		return false, nil, errNotConfigured
	}
	return u.Validator.Validate(ctx, l)
}

// Persistence
func (u *Service) SaveLevel(ctx context.Context, l *domain.Level) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	return u.Storage.SaveLevel(ctx, l)
}

func (u *Service) LoadLevel(ctx context.Context, id string) (*domain.Level, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.LoadLevel(ctx, id)
}

func (u *Service) ListLevels(ctx context.Context) ([]domain.LevelMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.ListLevels(ctx)
}

func (u *Service) Progress(ctx context.Context) (domain.Progress, error) {
	if u.Storage == nil {
		return domain.Progress{}, errNotConfigured
	}
	return u.Storage.LoadProgress(ctx)
}

func (u *Service) SetProgress(ctx context.Context, p domain.Progress) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	return u.Storage.SaveProgress(ctx, p)
}

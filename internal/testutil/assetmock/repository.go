package assetmock

import (
	"context"
	"errors"

	domain "motofinance-backend/internal/domain/asset"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("assetmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset writes succeed; unset reads return errUnimplemented.
type Repo struct {
	CreateFn           func(ctx context.Context, a *domain.Asset) error
	GetByIDFn          func(ctx context.Context, id uint64) (*domain.Asset, error)
	GetByPublicIDFn    func(ctx context.Context, publicID string) (*domain.Asset, error)
	GetByIDForUpdateFn func(ctx context.Context, id uint64) (*domain.Asset, error)
	TransitionFn       func(ctx context.Context, id uint64, from, to domain.Status) error
	SetIdentifiersFn   func(ctx context.Context, id uint64, ids domain.Identifiers) error
	ListByStatusFn     func(ctx context.Context, statuses ...domain.Status) ([]domain.Asset, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Asset) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Asset, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByPublicID(ctx context.Context, publicID string) (*domain.Asset, error) {
	if m.GetByPublicIDFn != nil {
		return m.GetByPublicIDFn(ctx, publicID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Asset, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) Transition(ctx context.Context, id uint64, from, to domain.Status) error {
	if m.TransitionFn != nil {
		return m.TransitionFn(ctx, id, from, to)
	}
	return nil
}

func (m *Repo) SetIdentifiers(ctx context.Context, id uint64, ids domain.Identifiers) error {
	if m.SetIdentifiersFn != nil {
		return m.SetIdentifiersFn(ctx, id, ids)
	}
	return nil
}

func (m *Repo) ListByStatus(ctx context.Context, statuses ...domain.Status) ([]domain.Asset, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, statuses...)
	}
	return nil, errUnimplemented
}

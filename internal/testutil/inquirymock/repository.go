package inquirymock

import (
	"context"
	"errors"

	domain "motofinance-backend/internal/domain/inquiry"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("inquirymock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset writes succeed; unset reads return errUnimplemented.
type Repo struct {
	CreateFn                 func(ctx context.Context, in *domain.Inquiry) error
	GetByPublicIDFn          func(ctx context.Context, publicID string) (*domain.Inquiry, error)
	GetByPublicIDForUpdateFn func(ctx context.Context, publicID string) (*domain.Inquiry, error)
	TransitionFn             func(ctx context.Context, id uint64, from []domain.Status, to domain.Status, fields map[string]any) error
}

func (m *Repo) Create(ctx context.Context, in *domain.Inquiry) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, in)
	}
	return nil
}

func (m *Repo) GetByPublicID(ctx context.Context, publicID string) (*domain.Inquiry, error) {
	if m.GetByPublicIDFn != nil {
		return m.GetByPublicIDFn(ctx, publicID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByPublicIDForUpdate(ctx context.Context, publicID string) (*domain.Inquiry, error) {
	if m.GetByPublicIDForUpdateFn != nil {
		return m.GetByPublicIDForUpdateFn(ctx, publicID)
	}
	return nil, errUnimplemented
}

func (m *Repo) Transition(ctx context.Context, id uint64, from []domain.Status, to domain.Status, fields map[string]any) error {
	if m.TransitionFn != nil {
		return m.TransitionFn(ctx, id, from, to, fields)
	}
	return nil
}

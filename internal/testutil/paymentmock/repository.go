package paymentmock

import (
	"context"
	"errors"

	domain "motofinance-backend/internal/domain/payment"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("paymentmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset writes succeed; unset reads return errUnimplemented.
type Repo struct {
	CreateFn                 func(ctx context.Context, p *domain.Payment) error
	GetByPublicIDFn          func(ctx context.Context, publicID string) (*domain.Payment, error)
	GetByPublicIDForUpdateFn func(ctx context.Context, publicID string) (*domain.Payment, error)
	ListByLoanIDFn           func(ctx context.Context, loanID uint64) ([]domain.Payment, error)
	TransitionFn             func(ctx context.Context, id uint64, from, to domain.Status, fields map[string]any) error
}

func (m *Repo) Create(ctx context.Context, p *domain.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByPublicID(ctx context.Context, publicID string) (*domain.Payment, error) {
	if m.GetByPublicIDFn != nil {
		return m.GetByPublicIDFn(ctx, publicID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByPublicIDForUpdate(ctx context.Context, publicID string) (*domain.Payment, error) {
	if m.GetByPublicIDForUpdateFn != nil {
		return m.GetByPublicIDForUpdateFn(ctx, publicID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.Payment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) Transition(ctx context.Context, id uint64, from, to domain.Status, fields map[string]any) error {
	if m.TransitionFn != nil {
		return m.TransitionFn(ctx, id, from, to, fields)
	}
	return nil
}

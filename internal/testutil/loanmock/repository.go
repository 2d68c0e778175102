package loanmock

import (
	"context"
	"errors"
	"time"

	domain "motofinance-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("loanmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset writes succeed; unset reads return errUnimplemented.
type Repo struct {
	CreateFn                 func(ctx context.Context, l *domain.Loan) error
	GetByIDFn                func(ctx context.Context, id uint64) (*domain.Loan, error)
	GetByPublicIDFn          func(ctx context.Context, publicID string) (*domain.Loan, error)
	GetByIDForUpdateFn       func(ctx context.Context, id uint64) (*domain.Loan, error)
	GetByPublicIDForUpdateFn func(ctx context.Context, publicID string) (*domain.Loan, error)
	TransitionFn             func(ctx context.Context, id uint64, from []domain.Status, to domain.Status, fields map[string]any) error
	ApplyPaymentFn           func(ctx context.Context, id uint64, a domain.PaymentApplication) error
	RecordMissedFn           func(ctx context.Context, id uint64, missed int, through time.Time) error
	ListByStatusFn           func(ctx context.Context, status domain.Status) ([]domain.Loan, error)
	ListAtRiskFn             func(ctx context.Context, minConsecutive int) ([]domain.Loan, error)
	ListByAssetIDFn          func(ctx context.Context, assetID uint64) ([]domain.Loan, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByPublicID(ctx context.Context, publicID string) (*domain.Loan, error) {
	if m.GetByPublicIDFn != nil {
		return m.GetByPublicIDFn(ctx, publicID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByPublicIDForUpdate(ctx context.Context, publicID string) (*domain.Loan, error) {
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

func (m *Repo) ApplyPayment(ctx context.Context, id uint64, a domain.PaymentApplication) error {
	if m.ApplyPaymentFn != nil {
		return m.ApplyPaymentFn(ctx, id, a)
	}
	return nil
}

func (m *Repo) RecordMissed(ctx context.Context, id uint64, missed int, through time.Time) error {
	if m.RecordMissedFn != nil {
		return m.RecordMissedFn(ctx, id, missed, through)
	}
	return nil
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Loan, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListAtRisk(ctx context.Context, minConsecutive int) ([]domain.Loan, error) {
	if m.ListAtRiskFn != nil {
		return m.ListAtRiskFn(ctx, minConsecutive)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByAssetID(ctx context.Context, assetID uint64) ([]domain.Loan, error) {
	if m.ListByAssetIDFn != nil {
		return m.ListByAssetIDFn(ctx, assetID)
	}
	return nil, errUnimplemented
}

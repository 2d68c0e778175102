package schedulemock

import (
	"context"
	"errors"
	"time"

	domain "motofinance-backend/internal/domain/schedule"

	"github.com/shopspring/decimal"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("schedulemock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset writes succeed; unset reads return errUnimplemented.
type Repo struct {
	CreateBatchFn      func(ctx context.Context, items []domain.Item) error
	ListByLoanIDFn     func(ctx context.Context, loanID uint64) ([]domain.Item, error)
	EarliestUnpaidFn   func(ctx context.Context, loanID uint64) (*domain.Item, error)
	MarkPaidFn         func(ctx context.Context, id uint64, amount decimal.Decimal, at time.Time, paymentID uint64) error
	UnpaidDueBetweenFn func(ctx context.Context, loanID uint64, after *time.Time, before time.Time) ([]domain.Item, error)
	LatestDueBeforeFn  func(ctx context.Context, loanID uint64, before time.Time) (*time.Time, error)
}

func (m *Repo) CreateBatch(ctx context.Context, items []domain.Item) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, items)
	}
	return nil
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.Item, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) EarliestUnpaid(ctx context.Context, loanID uint64) (*domain.Item, error) {
	if m.EarliestUnpaidFn != nil {
		return m.EarliestUnpaidFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) MarkPaid(ctx context.Context, id uint64, amount decimal.Decimal, at time.Time, paymentID uint64) error {
	if m.MarkPaidFn != nil {
		return m.MarkPaidFn(ctx, id, amount, at, paymentID)
	}
	return nil
}

func (m *Repo) UnpaidDueBetween(ctx context.Context, loanID uint64, after *time.Time, before time.Time) ([]domain.Item, error) {
	if m.UnpaidDueBetweenFn != nil {
		return m.UnpaidDueBetweenFn(ctx, loanID, after, before)
	}
	return nil, errUnimplemented
}

func (m *Repo) LatestDueBefore(ctx context.Context, loanID uint64, before time.Time) (*time.Time, error) {
	if m.LatestDueBeforeFn != nil {
		return m.LatestDueBeforeFn(ctx, loanID, before)
	}
	return nil, errUnimplemented
}

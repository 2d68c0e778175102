package schedule

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Repository interface {
	CreateBatch(ctx context.Context, items []Item) error
	ListByLoanID(ctx context.Context, loanID uint64) ([]Item, error)
	// EarliestUnpaid returns nil, nil when every row is paid.
	EarliestUnpaid(ctx context.Context, loanID uint64) (*Item, error)
	// MarkPaid flips an unpaid row to paid. Returns a precondition error if the row was
	// already paid.
	MarkPaid(ctx context.Context, id uint64, amount decimal.Decimal, at time.Time, paymentID uint64) error
	// UnpaidDueBetween lists unpaid rows with after < due_date < before (after may be nil).
	UnpaidDueBetween(ctx context.Context, loanID uint64, after *time.Time, before time.Time) ([]Item, error)
	// LatestDueBefore returns the latest due date strictly before `before`, or nil.
	LatestDueBefore(ctx context.Context, loanID uint64, before time.Time) (*time.Time, error)
}

package loan

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	GetByPublicID(ctx context.Context, publicID string) (*Loan, error)
	// Row-locking reads, only meaningful inside a transaction
	GetByIDForUpdate(ctx context.Context, id uint64) (*Loan, error)
	GetByPublicIDForUpdate(ctx context.Context, publicID string) (*Loan, error)

	// Transition sets status=to (plus fields) only where the current status is one of
	// from. Returns ErrStateChanged when no row matched.
	Transition(ctx context.Context, id uint64, from []Status, to Status, fields map[string]any) error
	// ApplyPayment writes a confirmed payment's effect on an active loan.
	ApplyPayment(ctx context.Context, id uint64, a PaymentApplication) error
	// RecordMissed adds missed installments to both counters and advances the watermark.
	RecordMissed(ctx context.Context, id uint64, missed int, through time.Time) error

	ListByStatus(ctx context.Context, status Status) ([]Loan, error)
	ListAtRisk(ctx context.Context, minConsecutive int) ([]Loan, error)
	ListByAssetID(ctx context.Context, assetID uint64) ([]Loan, error)
}

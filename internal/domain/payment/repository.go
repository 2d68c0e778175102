package payment

import "context"

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByPublicID(ctx context.Context, publicID string) (*Payment, error)
	GetByPublicIDForUpdate(ctx context.Context, publicID string) (*Payment, error)
	ListByLoanID(ctx context.Context, loanID uint64) ([]Payment, error)

	// Transition sets status=to (plus fields) only where the current status equals from.
	// Returns a precondition error when no row matched.
	Transition(ctx context.Context, id uint64, from, to Status, fields map[string]any) error
}

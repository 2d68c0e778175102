package inquiry

import "context"

type Repository interface {
	Create(ctx context.Context, in *Inquiry) error
	GetByPublicID(ctx context.Context, publicID string) (*Inquiry, error)
	GetByPublicIDForUpdate(ctx context.Context, publicID string) (*Inquiry, error)
	// Transition sets status=to (plus fields) only where the current status is one of from.
	Transition(ctx context.Context, id uint64, from []Status, to Status, fields map[string]any) error
}

package asset

import "context"

type Repository interface {
	Create(ctx context.Context, a *Asset) error
	GetByID(ctx context.Context, id uint64) (*Asset, error)
	GetByPublicID(ctx context.Context, publicID string) (*Asset, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Asset, error)

	// Transition sets status=to only where the current status equals from.
	// Returns ErrStateChanged when no row matched.
	Transition(ctx context.Context, id uint64, from, to Status) error
	SetIdentifiers(ctx context.Context, id uint64, ids Identifiers) error
	ListByStatus(ctx context.Context, statuses ...Status) ([]Asset, error)
}

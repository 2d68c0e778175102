package clientmock

import (
	"context"
	"errors"

	domain "motofinance-backend/internal/domain/client"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("clientmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset writes succeed; unset reads return errUnimplemented.
type Repo struct {
	CreateFn        func(ctx context.Context, c *domain.Client) error
	GetByIDFn       func(ctx context.Context, id uint64) (*domain.Client, error)
	GetByPublicIDFn func(ctx context.Context, publicID string) (*domain.Client, error)
	GetByAssetIDFn  func(ctx context.Context, assetID uint64) (*domain.Client, error)
	LinkAssetFn     func(ctx context.Context, id uint64, assetID *uint64) error
}

func (m *Repo) Create(ctx context.Context, c *domain.Client) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Client, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByPublicID(ctx context.Context, publicID string) (*domain.Client, error) {
	if m.GetByPublicIDFn != nil {
		return m.GetByPublicIDFn(ctx, publicID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByAssetID(ctx context.Context, assetID uint64) (*domain.Client, error) {
	if m.GetByAssetIDFn != nil {
		return m.GetByAssetIDFn(ctx, assetID)
	}
	return nil, errUnimplemented
}

func (m *Repo) LinkAsset(ctx context.Context, id uint64, assetID *uint64) error {
	if m.LinkAssetFn != nil {
		return m.LinkAssetFn(ctx, id, assetID)
	}
	return nil
}

package client

import "context"

type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id uint64) (*Client, error)
	GetByPublicID(ctx context.Context, publicID string) (*Client, error)
	GetByAssetID(ctx context.Context, assetID uint64) (*Client, error)
	// LinkAsset points the client at assetID, or clears the link when assetID is nil.
	LinkAsset(ctx context.Context, id uint64, assetID *uint64) error
}

package mysql

import (
	"context"

	clientDomain "motofinance-backend/internal/domain/client"

	"gorm.io/gorm"
)

type ClientRepository struct{ db *gorm.DB }

func NewClientRepository(db *gorm.DB) *ClientRepository { return &ClientRepository{db: db} }

func (r *ClientRepository) Create(ctx context.Context, c *clientDomain.Client) error {
	return unique(r.db.WithContext(ctx).Create(c).Error, "client")
}

func (r *ClientRepository) GetByID(ctx context.Context, id uint64) (*clientDomain.Client, error) {
	return first[clientDomain.Client](r.db.WithContext(ctx).Where("id = ?", id), clientDomain.ErrNotFound)
}

func (r *ClientRepository) GetByPublicID(ctx context.Context, publicID string) (*clientDomain.Client, error) {
	return first[clientDomain.Client](r.db.WithContext(ctx).Where("public_id = ?", publicID), clientDomain.ErrNotFound)
}

func (r *ClientRepository) GetByAssetID(ctx context.Context, assetID uint64) (*clientDomain.Client, error) {
	return first[clientDomain.Client](r.db.WithContext(ctx).Where("asset_id = ?", assetID), clientDomain.ErrNotFound)
}

func (r *ClientRepository) LinkAsset(ctx context.Context, id uint64, assetID *uint64) error {
	res := r.db.WithContext(ctx).Model(&clientDomain.Client{}).
		Where("id = ?", id).
		Update("asset_id", assetID)
	return guarded(res, clientDomain.ErrNotFound)
}

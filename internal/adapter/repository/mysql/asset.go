package mysql

import (
	"context"
	"strings"

	assetDomain "motofinance-backend/internal/domain/asset"

	"gorm.io/gorm"
)

type AssetRepository struct{ db *gorm.DB }

func NewAssetRepository(db *gorm.DB) *AssetRepository { return &AssetRepository{db: db} }

func (r *AssetRepository) Create(ctx context.Context, a *assetDomain.Asset) error {
	return unique(r.db.WithContext(ctx).Create(a).Error, "asset identifier")
}

func (r *AssetRepository) GetByID(ctx context.Context, id uint64) (*assetDomain.Asset, error) {
	return first[assetDomain.Asset](r.db.WithContext(ctx).Where("id = ?", id), assetDomain.ErrNotFound)
}

func (r *AssetRepository) GetByPublicID(ctx context.Context, publicID string) (*assetDomain.Asset, error) {
	return first[assetDomain.Asset](r.db.WithContext(ctx).Where("public_id = ?", publicID), assetDomain.ErrNotFound)
}

func (r *AssetRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*assetDomain.Asset, error) {
	return first[assetDomain.Asset](forUpdate(r.db.WithContext(ctx)).Where("id = ?", id), assetDomain.ErrNotFound)
}

func (r *AssetRepository) Transition(ctx context.Context, id uint64, from, to assetDomain.Status) error {
	res := r.db.WithContext(ctx).Model(&assetDomain.Asset{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return guarded(res, assetDomain.ErrStateChanged)
}

func (r *AssetRepository) SetIdentifiers(ctx context.Context, id uint64, ids assetDomain.Identifiers) error {
	upd := map[string]any{
		"chassis_number":      strings.TrimSpace(ids.ChassisNumber),
		"registration_number": strings.TrimSpace(ids.RegistrationNumber),
	}
	// engine and GPS are optional; keep what is already recorded when omitted
	if v := strings.TrimSpace(ids.EngineNumber); v != "" {
		upd["engine_number"] = v
	}
	if v := strings.TrimSpace(ids.GPSDeviceID); v != "" {
		upd["gps_device_id"] = v
	}
	res := r.db.WithContext(ctx).Model(&assetDomain.Asset{}).Where("id = ?", id).Updates(upd)
	if res.Error != nil {
		return unique(res.Error, "chassis or registration number")
	}
	return guarded(res, assetDomain.ErrNotFound)
}

func (r *AssetRepository) ListByStatus(ctx context.Context, statuses ...assetDomain.Status) ([]assetDomain.Asset, error) {
	var out []assetDomain.Asset
	err := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

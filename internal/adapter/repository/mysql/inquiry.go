package mysql

import (
	"context"

	inquiryDomain "motofinance-backend/internal/domain/inquiry"

	"gorm.io/gorm"
)

type InquiryRepository struct{ db *gorm.DB }

func NewInquiryRepository(db *gorm.DB) *InquiryRepository { return &InquiryRepository{db: db} }

func (r *InquiryRepository) Create(ctx context.Context, in *inquiryDomain.Inquiry) error {
	return unique(r.db.WithContext(ctx).Create(in).Error, "inquiry")
}

func (r *InquiryRepository) GetByPublicID(ctx context.Context, publicID string) (*inquiryDomain.Inquiry, error) {
	return first[inquiryDomain.Inquiry](r.db.WithContext(ctx).Where("public_id = ?", publicID), inquiryDomain.ErrNotFound)
}

func (r *InquiryRepository) GetByPublicIDForUpdate(ctx context.Context, publicID string) (*inquiryDomain.Inquiry, error) {
	return first[inquiryDomain.Inquiry](forUpdate(r.db.WithContext(ctx)).Where("public_id = ?", publicID), inquiryDomain.ErrNotFound)
}

func (r *InquiryRepository) Transition(ctx context.Context, id uint64, from []inquiryDomain.Status, to inquiryDomain.Status, fields map[string]any) error {
	upd := map[string]any{"status": to}
	for k, v := range fields {
		upd[k] = v
	}
	res := r.db.WithContext(ctx).Model(&inquiryDomain.Inquiry{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(upd)
	return guarded(res, inquiryDomain.ErrStateChanged)
}

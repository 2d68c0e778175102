package mysql

import (
	"context"

	paymentDomain "motofinance-backend/internal/domain/payment"

	"gorm.io/gorm"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *paymentDomain.Payment) error {
	return unique(r.db.WithContext(ctx).Create(p).Error, "payment reference")
}

func (r *PaymentRepository) GetByPublicID(ctx context.Context, publicID string) (*paymentDomain.Payment, error) {
	return first[paymentDomain.Payment](r.db.WithContext(ctx).Where("public_id = ?", publicID), paymentDomain.ErrNotFound)
}

func (r *PaymentRepository) GetByPublicIDForUpdate(ctx context.Context, publicID string) (*paymentDomain.Payment, error) {
	return first[paymentDomain.Payment](forUpdate(r.db.WithContext(ctx)).Where("public_id = ?", publicID), paymentDomain.ErrNotFound)
}

func (r *PaymentRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *PaymentRepository) Transition(ctx context.Context, id uint64, from, to paymentDomain.Status, fields map[string]any) error {
	upd := map[string]any{"status": to}
	for k, v := range fields {
		upd[k] = v
	}
	stale := paymentDomain.ErrNotPending
	if from == paymentDomain.StatusConfirmed {
		stale = paymentDomain.ErrNotConfirmed
	}
	res := r.db.WithContext(ctx).Model(&paymentDomain.Payment{}).
		Where("id = ? AND status = ?", id, from).
		Updates(upd)
	return guarded(res, stale)
}

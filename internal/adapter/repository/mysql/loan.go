package mysql

import (
	"context"
	"time"

	loanDomain "motofinance-backend/internal/domain/loan"

	"gorm.io/gorm"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

// Tx runs fn in a db transaction, passing a repo bound to the tx
func (r *LoanRepository) Tx(ctx context.Context, fn func(repo loanDomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&LoanRepository{db: tx})
	})
}

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return unique(r.db.WithContext(ctx).Create(l).Error, "loan number")
}

func (r *LoanRepository) GetByID(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	return first[loanDomain.Loan](r.db.WithContext(ctx).Where("id = ?", id), loanDomain.ErrNotFound)
}

func (r *LoanRepository) GetByPublicID(ctx context.Context, publicID string) (*loanDomain.Loan, error) {
	return first[loanDomain.Loan](r.db.WithContext(ctx).Where("public_id = ?", publicID), loanDomain.ErrNotFound)
}

func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	return first[loanDomain.Loan](forUpdate(r.db.WithContext(ctx)).Where("id = ?", id), loanDomain.ErrNotFound)
}

func (r *LoanRepository) GetByPublicIDForUpdate(ctx context.Context, publicID string) (*loanDomain.Loan, error) {
	return first[loanDomain.Loan](forUpdate(r.db.WithContext(ctx)).Where("public_id = ?", publicID), loanDomain.ErrNotFound)
}

func (r *LoanRepository) Transition(ctx context.Context, id uint64, from []loanDomain.Status, to loanDomain.Status, fields map[string]any) error {
	upd := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		upd[k] = v
	}
	upd["status"] = to
	upd["status_updated_at"] = time.Now().UTC()

	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(upd)
	return guarded(res, loanDomain.ErrStateChanged)
}

func (r *LoanRepository) ApplyPayment(ctx context.Context, id uint64, a loanDomain.PaymentApplication) error {
	upd := map[string]any{
		"loan_balance":       a.Balance,
		"installments_paid":  gorm.Expr("installments_paid + 1"),
		"consecutive_missed": 0,
		"last_payment_date":  a.PaidAt,
		"next_payment_date":  a.NextPaymentDate,
	}
	if a.Completed {
		upd["status"] = loanDomain.StatusCompleted
		upd["status_updated_at"] = a.PaidAt
		upd["closed_at"] = a.PaidAt
	}
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("id = ? AND status = ?", id, loanDomain.StatusActive).
		Updates(upd)
	return guarded(res, loanDomain.ErrNotActive)
}

func (r *LoanRepository) RecordMissed(ctx context.Context, id uint64, missed int, through time.Time) error {
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("id = ? AND status = ?", id, loanDomain.StatusActive).
		Updates(map[string]any{
			"missed_payments":          gorm.Expr("missed_payments + ?", missed),
			"consecutive_missed":       gorm.Expr("consecutive_missed + ?", missed),
			"missed_evaluated_through": through,
		})
	return guarded(res, loanDomain.ErrNotActive)
}

func (r *LoanRepository) ListByStatus(ctx context.Context, status loanDomain.Status) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

func (r *LoanRepository) ListAtRisk(ctx context.Context, minConsecutive int) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Where("status = ? AND consecutive_missed >= ?", loanDomain.StatusActive, minConsecutive).
		Order("consecutive_missed DESC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *LoanRepository) ListByAssetID(ctx context.Context, assetID uint64) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

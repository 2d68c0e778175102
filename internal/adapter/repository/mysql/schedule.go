package mysql

import (
	"context"
	"errors"
	"time"

	"motofinance-backend/internal/domain/apperr"
	scheduleDomain "motofinance-backend/internal/domain/schedule"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errRowAlreadyPaid = apperr.Precondition("schedule row already paid")

type ScheduleRepository struct{ db *gorm.DB }

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository { return &ScheduleRepository{db: db} }

func (r *ScheduleRepository) CreateBatch(ctx context.Context, items []scheduleDomain.Item) error {
	if len(items) == 0 {
		return nil
	}
	return unique(r.db.WithContext(ctx).CreateInBatches(items, 200).Error, "schedule")
}

func (r *ScheduleRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]scheduleDomain.Item, error) {
	var out []scheduleDomain.Item
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("sequence ASC").
		Find(&out).Error
	return out, err
}

func (r *ScheduleRepository) EarliestUnpaid(ctx context.Context, loanID uint64) (*scheduleDomain.Item, error) {
	var out scheduleDomain.Item
	err := forUpdate(r.db.WithContext(ctx)).
		Where("loan_id = ? AND is_paid = ?", loanID, false).
		Order("due_date ASC, sequence ASC").
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ScheduleRepository) MarkPaid(ctx context.Context, id uint64, amount decimal.Decimal, at time.Time, paymentID uint64) error {
	res := r.db.WithContext(ctx).Model(&scheduleDomain.Item{}).
		Where("id = ? AND is_paid = ?", id, false).
		Updates(map[string]any{
			"is_paid":     true,
			"amount_paid": amount,
			"paid_at":     at,
			"payment_id":  paymentID,
		})
	return guarded(res, errRowAlreadyPaid)
}

func (r *ScheduleRepository) UnpaidDueBetween(ctx context.Context, loanID uint64, after *time.Time, before time.Time) ([]scheduleDomain.Item, error) {
	q := r.db.WithContext(ctx).
		Where("loan_id = ? AND is_paid = ? AND due_date < ?", loanID, false, before)
	if after != nil {
		q = q.Where("due_date > ?", *after)
	}
	var out []scheduleDomain.Item
	err := q.Order("due_date ASC, sequence ASC").Find(&out).Error
	return out, err
}

func (r *ScheduleRepository) LatestDueBefore(ctx context.Context, loanID uint64, before time.Time) (*time.Time, error) {
	var out scheduleDomain.Item
	err := r.db.WithContext(ctx).
		Where("loan_id = ? AND due_date < ?", loanID, before).
		Order("due_date DESC, sequence DESC").
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out.DueDate, nil
}

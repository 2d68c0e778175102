package mysql

import (
	"context"

	"motofinance-backend/internal/domain/loan"
	"motofinance-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Inquiries: &InquiryRepository{db: tx},
		Clients:   &ClientRepository{db: tx},
		Assets:    &AssetRepository{db: tx},
		Loans:     &LoanRepository{db: tx},
		Schedules: &ScheduleRepository{db: tx},
		Payments:  &PaymentRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanPublicID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the loan row up-front to prevent races
		l, err := r.Loans.GetByPublicIDForUpdate(ctx, loanPublicID)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}

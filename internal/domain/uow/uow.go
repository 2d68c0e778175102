package uow

import (
	"context"

	"motofinance-backend/internal/domain/asset"
	"motofinance-backend/internal/domain/client"
	"motofinance-backend/internal/domain/inquiry"
	"motofinance-backend/internal/domain/loan"
	"motofinance-backend/internal/domain/payment"
	"motofinance-backend/internal/domain/schedule"
)

// Repos are bound to the same transaction.
type Repos struct {
	Inquiries inquiry.Repository
	Clients   client.Repository
	Assets    asset.Repository
	Loans     loan.Repository
	Schedules schedule.Repository
	Payments  payment.Repository
}

type UnitOfWork interface {
	// plain tx; fn's error rolls everything back
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan by public id first, then pass it in
	WithinLoanTx(ctx context.Context, loanPublicID string, fn func(r Repos, l *loan.Loan) error) error
}

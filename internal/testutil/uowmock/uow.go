package uowmock

import (
	"context"
	"errors"

	"motofinance-backend/internal/domain/loan"
	"motofinance-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn     func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinLoanTxFn func(ctx context.Context, loanPublicID string, fn func(r uow.Repos, l *loan.Loan) error) error

	// Calls counts invocations of either method.
	Calls int
}

// Passthrough runs every unit of work directly against r, without a transaction.
// WithinLoanTx loads the loan through r.Loans.GetByPublicIDForUpdate.
func Passthrough(r uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(uow.Repos) error) error {
			return fn(r)
		},
		WithinLoanTxFn: func(ctx context.Context, loanPublicID string, fn func(uow.Repos, *loan.Loan) error) error {
			l, err := r.Loans.GetByPublicIDForUpdate(ctx, loanPublicID)
			if err != nil {
				return err
			}
			return fn(r, l)
		},
	}
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	m.Calls++
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinLoanTx(ctx context.Context, loanPublicID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	m.Calls++
	if m.WithinLoanTxFn != nil {
		return m.WithinLoanTxFn(ctx, loanPublicID, fn)
	}
	return errUnimplemented
}

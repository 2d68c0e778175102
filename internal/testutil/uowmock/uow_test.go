package uowmock

import (
	"context"
	"errors"
	"testing"

	"motofinance-backend/internal/domain/loan"
	"motofinance-backend/internal/domain/uow"
	"motofinance-backend/internal/testutil/loanmock"
)

func TestUoW_DefaultsUnimplemented(t *testing.T) {
	m := &UoW{}
	if err := m.WithinTx(context.Background(), func(uow.Repos) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinTx default: want errUnimplemented, got %v", err)
	}
	err := m.WithinLoanTx(context.Background(), "x", func(uow.Repos, *loan.Loan) error { return nil })
	if !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinLoanTx default: want errUnimplemented, got %v", err)
	}
	if m.Calls != 2 {
		t.Fatalf("Calls = %d, want 2", m.Calls)
	}
}

func TestPassthrough_LoadsLoan(t *testing.T) {
	want := &loan.Loan{ID: 7, PublicID: "abc"}
	loans := &loanmock.Repo{
		GetByPublicIDForUpdateFn: func(_ context.Context, publicID string) (*loan.Loan, error) {
			if publicID != "abc" {
				return nil, loan.ErrNotFound
			}
			return want, nil
		},
	}
	m := Passthrough(uow.Repos{Loans: loans})

	var got *loan.Loan
	err := m.WithinLoanTx(context.Background(), "abc", func(r uow.Repos, l *loan.Loan) error {
		got = l
		return nil
	})
	if err != nil || got != want {
		t.Fatalf("WithinLoanTx: err=%v got=%+v", err, got)
	}

	called := false
	err = m.WithinLoanTx(context.Background(), "zzz", func(uow.Repos, *loan.Loan) error {
		called = true
		return nil
	})
	if !errors.Is(err, loan.ErrNotFound) || called {
		t.Fatalf("missing loan: err=%v called=%v", err, called)
	}
}

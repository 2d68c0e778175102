package mysql

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	assetDomain "motofinance-backend/internal/domain/asset"
	clientDomain "motofinance-backend/internal/domain/client"
	loanDomain "motofinance-backend/internal/domain/loan"
	"motofinance-backend/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var fixtureSeq atomic.Int64

func strPtr(s string) *string { return &s }

func seedAsset(t *testing.T, db *gorm.DB, status assetDomain.Status) *assetDomain.Asset {
	t.Helper()
	a := &assetDomain.Asset{
		PublicID: id.NewID32(),
		Kind:     assetDomain.KindMotorcycle,
		Make:     "Bajaj",
		Model:    "Boxer 150",
		Price:    decimal.NewFromInt(9_000_000),
		Status:   status,
	}
	if err := NewAssetRepository(db).Create(context.Background(), a); err != nil {
		t.Fatalf("seed asset: %v", err)
	}
	return a
}

func seedClient(t *testing.T, db *gorm.DB, assetID *uint64) *clientDomain.Client {
	t.Helper()
	c := &clientDomain.Client{
		PublicID:       id.NewID32(),
		FullName:       "Amina Njeri",
		Phone:          "+254700000001",
		NextOfKinName:  "Peter Njeri",
		NextOfKinPhone: "+254700000002",
		MonthlyIncome:  decimal.NewFromInt(45_000),
		AssetID:        assetID,
	}
	if err := NewClientRepository(db).Create(context.Background(), c); err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return c
}

// seedLoan creates a loan on a fresh assigned asset with the 9m/1m/30%/12m daily figures.
func seedLoan(t *testing.T, db *gorm.DB, status loanDomain.Status) *loanDomain.Loan {
	t.Helper()
	a := seedAsset(t, db, assetDomain.StatusAssigned)
	c := seedClient(t, db, &a.ID)

	q, err := loanDomain.Calculate(loanDomain.Terms{
		Price:               decimal.NewFromInt(9_000_000),
		DownPayment:         decimal.NewFromInt(1_000_000),
		InterestRatePercent: decimal.NewFromInt(30),
		DurationMonths:      12,
		Frequency:           loanDomain.FrequencyDaily,
	})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	l := &loanDomain.Loan{
		PublicID:          id.NewID32(),
		LoanNumber:        fmt.Sprintf("LN-20260101-%06d", fixtureSeq.Add(1)),
		ClientID:          c.ID,
		AssetID:           a.ID,
		Principal:         q.LoanAmount,
		InterestRate:      decimal.NewFromInt(30),
		InterestAmount:    q.InterestAmount,
		TotalAmount:       q.TotalAmount,
		DownPayment:       decimal.NewFromInt(1_000_000),
		LoanBalance:       q.TotalAmount,
		Frequency:         loanDomain.FrequencyDaily,
		DurationMonths:    12,
		InstallmentAmount: q.InstallmentAmount,
		TotalInstallments: q.TotalInstallments,
		Status:            status,
		StatusUpdatedAt:   time.Now().UTC(),
	}
	if err := NewLoanRepository(db).Create(context.Background(), l); err != nil {
		t.Fatalf("seed loan: %v", err)
	}
	return l
}

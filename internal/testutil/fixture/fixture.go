// Package fixture seeds loans, assets and clients straight through the repositories for
// usecase tests.
package fixture

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"motofinance-backend/internal/adapter/repository/mysql"
	"motofinance-backend/internal/domain/asset"
	"motofinance-backend/internal/domain/client"
	"motofinance-backend/internal/domain/loan"
	"motofinance-backend/internal/domain/schedule"
	"motofinance-backend/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var n atomic.Int64

func Asset(t *testing.T, db *gorm.DB, status asset.Status) *asset.Asset {
	t.Helper()
	a := &asset.Asset{
		PublicID: id.NewID32(),
		Kind:     asset.KindMotorcycle,
		Make:     "Bajaj",
		Model:    "Boxer 150",
		Price:    decimal.NewFromInt(9_000_000),
		Status:   status,
	}
	if err := mysql.NewAssetRepository(db).Create(context.Background(), a); err != nil {
		t.Fatalf("seed asset: %v", err)
	}
	return a
}

func Client(t *testing.T, db *gorm.DB, assetID *uint64) *client.Client {
	t.Helper()
	c := &client.Client{
		PublicID:       id.NewID32(),
		FullName:       "Grace Wanjiru",
		Phone:          "+254711000001",
		NextOfKinName:  "John Wanjiru",
		NextOfKinPhone: "+254711000002",
		MonthlyIncome:  decimal.NewFromInt(35_000),
		AssetID:        assetID,
	}
	if err := mysql.NewClientRepository(db).Create(context.Background(), c); err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return c
}

// ActiveLoan seeds an approved 9,000,000 / 1,000,000 / 30% / 12 month loan on a fresh
// assigned asset, with its schedule laid out from start.
func ActiveLoan(t *testing.T, db *gorm.DB, f loan.Frequency, start time.Time) *loan.Loan {
	t.Helper()
	ctx := context.Background()
	a := Asset(t, db, asset.StatusAssigned)
	c := Client(t, db, &a.ID)

	q, err := loan.Calculate(loan.Terms{
		Price:               a.Price,
		DownPayment:         decimal.NewFromInt(1_000_000),
		InterestRatePercent: decimal.NewFromInt(30),
		DurationMonths:      12,
		Frequency:           f,
	})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	approvedAt := start
	approver := "0000000000000000000000000000000b"
	first := start.AddDate(0, 0, q.DaysPerPeriod)
	l := &loan.Loan{
		PublicID:          id.NewID32(),
		LoanNumber:        fmt.Sprintf("LN-FIXTURE-%06d", n.Add(1)),
		ClientID:          c.ID,
		AssetID:           a.ID,
		Principal:         q.LoanAmount,
		InterestRate:      decimal.NewFromInt(30),
		InterestAmount:    q.InterestAmount,
		TotalAmount:       q.TotalAmount,
		DownPayment:       decimal.NewFromInt(1_000_000),
		LoanBalance:       q.TotalAmount,
		Frequency:         f,
		DurationMonths:    12,
		InstallmentAmount: q.InstallmentAmount,
		TotalInstallments: q.TotalInstallments,
		NextPaymentDate:   &first,
		ApprovedBy:        &approver,
		ApprovedAt:        &approvedAt,
		Status:            loan.StatusActive,
		StatusUpdatedAt:   start,
	}
	if err := mysql.NewLoanRepository(db).Create(ctx, l); err != nil {
		t.Fatalf("seed loan: %v", err)
	}
	if err := mysql.NewScheduleRepository(db).CreateBatch(ctx, schedule.Generate(l.ID, q, start)); err != nil {
		t.Fatalf("seed schedule: %v", err)
	}
	return l
}

// Reload reads the loan back by primary key.
func Reload(t *testing.T, db *gorm.DB, l *loan.Loan) *loan.Loan {
	t.Helper()
	fresh, err := mysql.NewLoanRepository(db).GetByID(context.Background(), l.ID)
	if err != nil {
		t.Fatalf("reload loan: %v", err)
	}
	return fresh
}

func AssetOf(t *testing.T, db *gorm.DB, l *loan.Loan) *asset.Asset {
	t.Helper()
	a, err := mysql.NewAssetRepository(db).GetByID(context.Background(), l.AssetID)
	if err != nil {
		t.Fatalf("load asset: %v", err)
	}
	return a
}

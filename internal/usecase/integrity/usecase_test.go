package integrity

import (
	"context"
	"testing"
	"time"

	"motofinance-backend/internal/adapter/repository/mysql"
	"motofinance-backend/internal/domain/asset"
	"motofinance-backend/internal/domain/loan"
	"motofinance-backend/internal/testutil/dbtest"
	"motofinance-backend/internal/testutil/fixture"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCheckAssetLinks(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	start := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	// healthy
	fixture.ActiveLoan(t, db, loan.FrequencyDaily, start)
	done := fixture.ActiveLoan(t, db, loan.FrequencyWeekly, start)
	if err := db.Model(&loan.Loan{}).Where("id = ?", done.ID).Update("status", loan.StatusCompleted).Error; err != nil {
		t.Fatalf("complete loan: %v", err)
	}
	if err := db.Model(&asset.Asset{}).Where("id = ?", done.AssetID).Update("status", asset.StatusTransferred).Error; err != nil {
		t.Fatalf("transfer asset: %v", err)
	}
	sold := fixture.Asset(t, db, asset.StatusTransferred)
	fixture.Client(t, db, &sold.ID)
	fixture.Asset(t, db, asset.StatusAvailable)

	// broken
	orphan := fixture.Asset(t, db, asset.StatusAssigned)
	vanished := fixture.Asset(t, db, asset.StatusTransferred)
	shared := fixture.ActiveLoan(t, db, loan.FrequencyDaily, start)
	second := fixture.ActiveLoan(t, db, loan.FrequencyDaily, start)
	if err := db.Model(&loan.Loan{}).Where("id = ?", second.ID).Update("asset_id", shared.AssetID).Error; err != nil {
		t.Fatalf("share asset: %v", err)
	}
	// second's own asset is now assigned with no loan
	secondAsset := fixture.AssetOf(t, db, second)
	sharedAsset := fixture.AssetOf(t, db, shared)

	core, logs := observer.New(zapcore.ErrorLevel)
	uc := NewUsecase(mysql.NewAssetRepository(db), mysql.NewLoanRepository(db), mysql.NewClientRepository(db), zap.New(core))

	rep, err := uc.CheckAssetLinks(ctx)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if rep.Scanned != 7 {
		t.Fatalf("scanned: want 7, got %d", rep.Scanned)
	}

	want := map[string]string{
		orphan.PublicID:      "assigned asset has no open loan",
		vanished.PublicID:    "transferred asset has neither a loan nor a cash-sale client",
		secondAsset.PublicID: "assigned asset has no open loan",
		sharedAsset.PublicID: "assigned asset is held by 2 open loans",
	}
	if len(rep.Violations) != len(want) {
		t.Fatalf("violations: want %d, got %+v", len(want), rep.Violations)
	}
	for _, v := range rep.Violations {
		if want[v.AssetID] != v.Problem {
			t.Errorf("asset %s: want %q, got %q", v.AssetID, want[v.AssetID], v.Problem)
		}
	}
	if logs.FilterMessage("consistency violation").Len() != len(want) {
		t.Fatalf("logged %d violations", logs.FilterMessage("consistency violation").Len())
	}
}

func TestCheckAssetLinks_TransferredWithOpenLoan(t *testing.T) {
	db := dbtest.Open(t)
	l := fixture.ActiveLoan(t, db, loan.FrequencyDaily, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC))
	if err := db.Model(&asset.Asset{}).Where("id = ?", l.AssetID).Update("status", asset.StatusTransferred).Error; err != nil {
		t.Fatalf("transfer asset: %v", err)
	}

	uc := NewUsecase(mysql.NewAssetRepository(db), mysql.NewLoanRepository(db), mysql.NewClientRepository(db), zap.NewNop())
	rep, err := uc.CheckAssetLinks(context.Background())
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(rep.Violations) != 1 || rep.Violations[0].Problem != "transferred asset still has open loan "+l.PublicID {
		t.Fatalf("violations: %+v", rep.Violations)
	}
	if len(rep.Violations[0].LoanIDs) != 1 || rep.Violations[0].LoanIDs[0] != l.PublicID {
		t.Fatalf("loan ids: %v", rep.Violations[0].LoanIDs)
	}
}

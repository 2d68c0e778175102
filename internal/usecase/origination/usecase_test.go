package origination

import (
	"context"
	"errors"
	"testing"
	"time"

	"motofinance-backend/internal/adapter/repository/mysql"
	"motofinance-backend/internal/domain/apperr"
	"motofinance-backend/internal/domain/asset"
	"motofinance-backend/internal/domain/client"
	"motofinance-backend/internal/domain/inquiry"
	"motofinance-backend/internal/domain/loan"
	"motofinance-backend/internal/domain/uow"
	"motofinance-backend/internal/testutil/assetmock"
	"motofinance-backend/internal/testutil/dbtest"
	"motofinance-backend/internal/testutil/loanmock"
	"motofinance-backend/internal/testutil/schedulemock"
	"motofinance-backend/internal/testutil/seqmock"
	"motofinance-backend/internal/testutil/uowmock"
	"motofinance-backend/pkg/id"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

const (
	officer  = "0000000000000000000000000000000a"
	approver = "0000000000000000000000000000000b"
)

var today = time.Date(2026, 1, 31, 9, 30, 0, 0, time.UTC)

type fixture struct {
	uc *Usecase
	db *gorm.DB
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := dbtest.Open(t)
	uc := NewUsecase(
		mysql.NewLoanRepository(db),
		mysql.NewScheduleRepository(db),
		mysql.NewGormUoW(db),
		&seqmock.Generator{},
		loan.DefaultThresholds(),
		zap.NewNop(),
	)
	uc.now = func() time.Time { return today }
	return fixture{uc: uc, db: db}
}

func (f fixture) asset(t *testing.T, id uint64) *asset.Asset {
	t.Helper()
	a, err := mysql.NewAssetRepository(f.db).GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("load asset: %v", err)
	}
	return a
}

func (f fixture) client(t *testing.T, id uint64) *client.Client {
	t.Helper()
	c, err := mysql.NewClientRepository(f.db).GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("load client: %v", err)
	}
	return c
}

func (f fixture) availableAsset(t *testing.T) *asset.Asset {
	t.Helper()
	a := &asset.Asset{
		PublicID: id.NewID32(),
		Kind:     asset.KindMotorcycle,
		Price:    decimal.NewFromInt(9_000_000),
		Status:   asset.StatusAvailable,
	}
	if err := mysql.NewAssetRepository(f.db).Create(context.Background(), a); err != nil {
		t.Fatalf("seed asset: %v", err)
	}
	return a
}

func profile() *client.Profile {
	return &client.Profile{
		FullName:       "Joseph Kamau",
		Phone:          "+254700123456",
		NextOfKinName:  "Mary Kamau",
		NextOfKinPhone: "+254700123457",
		MonthlyIncome:  decimal.NewFromInt(40_000),
	}
}

func terms(in ApplicationInput) ApplicationInput {
	in.DownPayment = decimal.NewFromInt(1_000_000)
	in.InterestRatePercent = decimal.NewFromInt(30)
	in.DurationMonths = 12
	in.Frequency = loan.FrequencyDaily
	return in
}

func newAssetInput() *NewAssetInput {
	return &NewAssetInput{Kind: asset.KindMotorcycle, Make: "TVS", Model: "HLX 125", Price: decimal.NewFromInt(9_000_000)}
}

func TestCreateApplication_Validation(t *testing.T) {
	uc := NewUsecase(&loanmock.Repo{}, &schedulemock.Repo{}, &uowmock.UoW{}, &seqmock.Generator{}, loan.DefaultThresholds(), zap.NewNop())

	tests := []struct {
		name string
		in   ApplicationInput
	}{
		{"no client", terms(ApplicationInput{AssetID: "a"})},
		{"both clients", terms(ApplicationInput{ClientID: "c", Client: profile(), AssetID: "a"})},
		{"no asset", terms(ApplicationInput{Client: profile()})},
		{"bad kind", terms(ApplicationInput{Client: profile(), NewAsset: &NewAssetInput{Kind: "truck", Price: decimal.NewFromInt(1)}})},
		{"down above price", func() ApplicationInput {
			in := terms(ApplicationInput{Client: profile(), NewAsset: newAssetInput()})
			in.DownPayment = decimal.NewFromInt(9_000_000)
			return in
		}()},
		{"bad frequency", func() ApplicationInput {
			in := terms(ApplicationInput{Client: profile(), AssetID: "a"})
			in.Frequency = "monthly"
			return in
		}()},
		{"negative down", func() ApplicationInput {
			in := terms(ApplicationInput{Client: profile(), AssetID: "a"})
			in.DownPayment = decimal.NewFromInt(-1)
			return in
		}()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateApplication(context.Background(), officer, tc.in)
			if !errors.Is(err, apperr.ErrValidation) {
				t.Fatalf("want validation error, got %v", err)
			}
		})
	}
}

func TestOrigination_HappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	app, err := f.uc.CreateApplication(ctx, officer, terms(ApplicationInput{Client: profile(), NewAsset: newAssetInput()}))
	if err != nil {
		t.Fatalf("CreateApplication: %v", err)
	}
	l := app.Loan
	if l.Status != loan.StatusPending || l.LoanNumber != "LN-20260101-000001" {
		t.Fatalf("unexpected loan: %+v", l)
	}
	if !l.LoanBalance.Equal(decimal.NewFromInt(10_400_000)) || !l.InstallmentAmount.Equal(decimal.NewFromInt(28_889)) || l.TotalInstallments != 360 {
		t.Fatalf("unexpected figures: balance=%s installment=%s n=%d", l.LoanBalance, l.InstallmentAmount, l.TotalInstallments)
	}
	if app.Asset.Status != asset.StatusAssigned || app.Client.AssetID == nil || *app.Client.AssetID != app.Asset.ID {
		t.Fatalf("asset not assigned and linked: %+v %+v", app.Asset, app.Client)
	}

	if l, err = f.uc.StartReview(ctx, l.PublicID); err != nil || l.Status != loan.StatusUnderReview {
		t.Fatalf("StartReview: %v %v", err, l)
	}
	if l, err = f.uc.CompleteKYC(ctx, l.PublicID); err != nil || l.Status != loan.StatusAwaitingAsset {
		t.Fatalf("CompleteKYC: %v %v", err, l)
	}
	if _, err = f.uc.Approve(ctx, l.PublicID, approver); !errors.Is(err, apperr.ErrPrecondition) {
		t.Fatalf("approve before identifiers: want precondition, got %v", err)
	}

	ids := asset.Identifiers{ChassisNumber: "MD625GF1", RegistrationNumber: "KMFA 001A", GPSDeviceID: "GPS-9"}
	if l, err = f.uc.RecordAssetIdentifiers(ctx, l.PublicID, ids); err != nil || l.Status != loan.StatusAwaitingApproval {
		t.Fatalf("RecordAssetIdentifiers: %v %v", err, l)
	}

	l, err = f.uc.Approve(ctx, l.PublicID, approver)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if l.Status != loan.StatusActive || l.ApprovedBy == nil || *l.ApprovedBy != approver || l.ApprovedAt == nil {
		t.Fatalf("loan not activated: %+v", l)
	}
	firstDue := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	if l.NextPaymentDate == nil || !l.NextPaymentDate.Equal(firstDue) {
		t.Fatalf("next payment date = %v, want %v", l.NextPaymentDate, firstDue)
	}

	items, err := f.uc.Schedule(ctx, l.PublicID)
	if err != nil || len(items) != 360 {
		t.Fatalf("Schedule: %v len=%d", err, len(items))
	}
	if !items[0].DueDate.Equal(firstDue) || !items[359].DueDate.Equal(firstDue.AddDate(0, 0, 359)) {
		t.Fatalf("due dates off: first=%v last=%v", items[0].DueDate, items[359].DueDate)
	}

	view, err := f.uc.Get(ctx, l.PublicID)
	if err != nil || view.Standing != loan.StandingCurrent {
		t.Fatalf("Get: %v %+v", err, view)
	}

	// active loans are past the point of rejection
	if _, err := f.uc.Reject(ctx, l.PublicID, "too late"); !errors.Is(err, apperr.ErrPrecondition) {
		t.Fatalf("reject active: want precondition, got %v", err)
	}
}

func TestCompleteKYC_SkipsAssetStepWhenIdentified(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	na := newAssetInput()
	na.Identifiers = &asset.Identifiers{ChassisNumber: "CH-1", RegistrationNumber: "REG-1"}
	app, err := f.uc.CreateApplication(ctx, officer, terms(ApplicationInput{Client: profile(), NewAsset: na}))
	if err != nil {
		t.Fatalf("CreateApplication: %v", err)
	}
	if _, err := f.uc.StartReview(ctx, app.Loan.PublicID); err != nil {
		t.Fatalf("StartReview: %v", err)
	}
	l, err := f.uc.CompleteKYC(ctx, app.Loan.PublicID)
	if err != nil || l.Status != loan.StatusAwaitingApproval {
		t.Fatalf("CompleteKYC: %v %+v", err, l)
	}
}

func TestReject_ReleasesAssetAndUnlinksClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.availableAsset(t)

	app, err := f.uc.CreateApplication(ctx, officer, terms(ApplicationInput{Client: profile(), AssetID: a.PublicID}))
	if err != nil {
		t.Fatalf("CreateApplication: %v", err)
	}
	if _, err := f.uc.StartReview(ctx, app.Loan.PublicID); err != nil {
		t.Fatalf("StartReview: %v", err)
	}

	if _, err := f.uc.Reject(ctx, app.Loan.PublicID, "  "); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("blank reason: want validation, got %v", err)
	}
	l, err := f.uc.Reject(ctx, app.Loan.PublicID, "could not verify income")
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if l.Status != loan.StatusRejected || l.RejectionReason != "could not verify income" || l.ClosedAt == nil {
		t.Fatalf("unexpected loan: %+v", l)
	}
	if got := f.asset(t, a.ID); got.Status != asset.StatusAvailable {
		t.Fatalf("asset status = %s, want available", got.Status)
	}
	if got := f.client(t, app.Client.ID); got.AssetID != nil {
		t.Fatalf("client still linked to %d", *got.AssetID)
	}

	// the released unit can be financed again
	if _, err := f.uc.CreateApplication(ctx, officer, terms(ApplicationInput{ClientID: app.Client.PublicID, AssetID: a.PublicID})); err != nil {
		t.Fatalf("re-apply with released asset: %v", err)
	}
}

func TestCreateApplication_AssetExclusivity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.availableAsset(t)

	if _, err := f.uc.CreateApplication(ctx, officer, terms(ApplicationInput{Client: profile(), AssetID: a.PublicID})); err != nil {
		t.Fatalf("first application: %v", err)
	}

	_, err := f.uc.CreateApplication(ctx, officer, terms(ApplicationInput{Client: profile(), AssetID: a.PublicID}))
	if !errors.Is(err, asset.ErrNotAvailable) {
		t.Fatalf("second application: want ErrNotAvailable, got %v", err)
	}

	loans, err := mysql.NewLoanRepository(f.db).ListByAssetID(ctx, a.ID)
	if err != nil || len(loans) != 1 {
		t.Fatalf("asset must back exactly one loan, got %d (%v)", len(loans), err)
	}
	var clients int64
	f.db.Model(&client.Client{}).Count(&clients)
	if clients != 1 {
		t.Fatalf("failed application leaked a client row: %d", clients)
	}
}

func TestCreateApplication_ClientAlreadyLinked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.uc.CreateApplication(ctx, officer, terms(ApplicationInput{Client: profile(), NewAsset: newAssetInput()}))
	if err != nil {
		t.Fatalf("first application: %v", err)
	}
	a := f.availableAsset(t)
	_, err = f.uc.CreateApplication(ctx, officer, terms(ApplicationInput{ClientID: first.Client.PublicID, AssetID: a.PublicID}))
	if !errors.Is(err, client.ErrAssetAlreadyLinked) {
		t.Fatalf("want ErrAssetAlreadyLinked, got %v", err)
	}
	// rolled back: the asset is still available
	if got := f.asset(t, a.ID); got.Status != asset.StatusAvailable {
		t.Fatalf("asset status = %s after rollback", got.Status)
	}
}

func TestCreateApplication_ConvertsInquiry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	q := &inquiry.Inquiry{PublicID: id.NewID32(), FullName: "Joseph Kamau", Phone: "1", SaleType: inquiry.SaleTypeLoan, Status: inquiry.StatusQualified}
	inquiries := mysql.NewInquiryRepository(f.db)
	if err := inquiries.Create(ctx, q); err != nil {
		t.Fatalf("seed inquiry: %v", err)
	}

	app, err := f.uc.CreateApplication(ctx, officer, terms(ApplicationInput{InquiryID: q.PublicID, Client: profile(), NewAsset: newAssetInput()}))
	if err != nil {
		t.Fatalf("CreateApplication: %v", err)
	}
	if app.Inquiry != q.PublicID {
		t.Fatalf("inquiry not reported: %+v", app)
	}
	got, _ := inquiries.GetByPublicID(ctx, q.PublicID)
	if got.Status != inquiry.StatusConverted || got.ClientID == nil || *got.ClientID != app.Client.ID {
		t.Fatalf("inquiry not converted: %+v", got)
	}

	// a converted inquiry cannot back a second application
	_, err = f.uc.CreateApplication(ctx, officer, terms(ApplicationInput{InquiryID: q.PublicID, Client: profile(), NewAsset: newAssetInput()}))
	if !errors.Is(err, inquiry.ErrTerminal) {
		t.Fatalf("want ErrTerminal, got %v", err)
	}
}

func TestApprove_AssetNotAssignedIsConsistencyError(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	l := &loan.Loan{ID: 1, PublicID: "l1", AssetID: 2, Status: loan.StatusAwaitingApproval}
	loans := &loanmock.Repo{
		GetByPublicIDForUpdateFn: func(context.Context, string) (*loan.Loan, error) { return l, nil },
		TransitionFn: func(context.Context, uint64, []loan.Status, loan.Status, map[string]any) error {
			t.Fatalf("loan must not be activated")
			return nil
		},
	}
	assets := &assetmock.Repo{
		GetByIDForUpdateFn: func(context.Context, uint64) (*asset.Asset, error) {
			return &asset.Asset{ID: 2, PublicID: "a2", Status: asset.StatusAvailable}, nil
		},
	}
	schedules := &schedulemock.Repo{}
	tx := uowmock.Passthrough(uow.Repos{Loans: loans, Assets: assets, Schedules: schedules})
	uc := NewUsecase(loans, schedules, tx, &seqmock.Generator{}, loan.DefaultThresholds(), zap.New(core))

	_, err := uc.Approve(context.Background(), "l1", approver)
	if !errors.Is(err, apperr.ErrConsistency) {
		t.Fatalf("want consistency error, got %v", err)
	}
	if logs.FilterMessage("consistency violation").Len() != 1 {
		t.Fatalf("consistency violation must be logged at error level")
	}
}

func TestQuote(t *testing.T) {
	uc := NewUsecase(&loanmock.Repo{}, &schedulemock.Repo{}, &uowmock.UoW{}, &seqmock.Generator{}, loan.DefaultThresholds(), zap.NewNop())
	q, err := uc.Quote(context.Background(), loan.Terms{
		Price:               decimal.NewFromInt(9_000_000),
		DownPayment:         decimal.NewFromInt(1_000_000),
		InterestRatePercent: decimal.NewFromInt(30),
		DurationMonths:      12,
		Frequency:           loan.FrequencyDaily,
	})
	if err != nil || !q.InstallmentAmount.Equal(decimal.NewFromInt(28_889)) {
		t.Fatalf("Quote: %v %+v", err, q)
	}
}

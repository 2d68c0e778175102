package origination

import (
	"context"
	"errors"
	"strings"
	"time"

	"motofinance-backend/internal/domain/apperr"
	"motofinance-backend/internal/domain/asset"
	"motofinance-backend/internal/domain/client"
	"motofinance-backend/internal/domain/inquiry"
	"motofinance-backend/internal/domain/loan"
	"motofinance-backend/internal/domain/schedule"
	"motofinance-backend/internal/domain/sequence"
	"motofinance-backend/internal/domain/uow"
	"motofinance-backend/pkg/id"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Usecase struct {
	loans      loan.Repository
	schedules  schedule.Repository
	uow        uow.UnitOfWork
	seq        sequence.Generator
	thresholds loan.Thresholds
	log        *zap.Logger
	now        func() time.Time
}

func NewUsecase(loans loan.Repository, schedules schedule.Repository, tx uow.UnitOfWork, seq sequence.Generator, th loan.Thresholds, log *zap.Logger) *Usecase {
	return &Usecase{
		loans:      loans,
		schedules:  schedules,
		uow:        tx,
		seq:        seq,
		thresholds: th,
		log:        log.Named("origination"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Quote previews the repayment figures without persisting anything.
func (u *Usecase) Quote(_ context.Context, t loan.Terms) (loan.Quote, error) {
	return loan.Calculate(t)
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanView, error) {
	l, err := u.loans.GetByPublicID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return &LoanView{Loan: l, Standing: l.Standing(u.thresholds)}, nil
}

func (u *Usecase) Schedule(ctx context.Context, loanID string) ([]schedule.Item, error) {
	l, err := u.loans.GetByPublicID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return u.schedules.ListByLoanID(ctx, l.ID)
}

func validateApplication(in ApplicationInput) error {
	if (in.ClientID == "") == (in.Client == nil) {
		return apperr.Validation("provide exactly one of client_id or client")
	}
	if (in.AssetID == "") == (in.NewAsset == nil) {
		return apperr.Validation("provide exactly one of asset_id or asset")
	}
	if in.Client != nil {
		if err := in.Client.Validate(); err != nil {
			return err
		}
	}
	if na := in.NewAsset; na != nil {
		if na.Kind != asset.KindMotorcycle && na.Kind != asset.KindTricycle {
			return apperr.Validation("asset kind must be motorcycle or tricycle")
		}
		if !na.Price.IsPositive() {
			return apperr.Validation("asset price must be greater than zero")
		}
		if na.Identifiers != nil {
			if err := na.Identifiers.Validate(); err != nil {
				return err
			}
		}
	}
	if in.DownPayment.IsNegative() {
		return apperr.Validation("down payment must not be negative")
	}
	// an existing asset's price is only known inside the transaction
	probe := loan.Terms{
		Price:               in.DownPayment.Add(decimal.NewFromInt(1)),
		DownPayment:         in.DownPayment,
		InterestRatePercent: in.InterestRatePercent,
		DurationMonths:      in.DurationMonths,
		Frequency:           in.Frequency,
	}
	if in.NewAsset != nil {
		probe.Price = in.NewAsset.Price
	}
	return probe.Validate()
}

// CreateApplication creates the client (or links an existing one), assigns the asset and
// opens a pending loan in one transaction. A referenced inquiry is converted alongside.
func (u *Usecase) CreateApplication(ctx context.Context, staffID string, in ApplicationInput) (*Application, error) {
	if err := validateApplication(in); err != nil {
		return nil, err
	}
	number, err := u.seq.Next(ctx, sequence.PrefixLoan)
	if err != nil {
		return nil, err
	}

	var out *Application
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var q *inquiry.Inquiry
		if in.InquiryID != "" {
			found, err := r.Inquiries.GetByPublicIDForUpdate(ctx, in.InquiryID)
			if err != nil {
				return err
			}
			if found.SaleType != inquiry.SaleTypeLoan {
				return apperr.Precondition("inquiry is not a loan inquiry")
			}
			if found.Status.Terminal() {
				return inquiry.ErrTerminal
			}
			q = found
		}

		a, err := u.claimAsset(ctx, r, in)
		if err != nil {
			return err
		}

		c, err := u.linkClient(ctx, r, in, staffID, a.ID)
		if err != nil {
			return err
		}

		quote, err := loan.Calculate(loan.Terms{
			Price:               a.Price,
			DownPayment:         in.DownPayment,
			InterestRatePercent: in.InterestRatePercent,
			DurationMonths:      in.DurationMonths,
			Frequency:           in.Frequency,
		})
		if err != nil {
			return err
		}

		branch := in.BranchID
		if branch == nil {
			branch = c.BranchID
		}
		now := u.now()
		l := &loan.Loan{
			PublicID:          id.NewID32(),
			LoanNumber:        number,
			ClientID:          c.ID,
			AssetID:           a.ID,
			BranchID:          branch,
			Principal:         quote.LoanAmount,
			InterestRate:      in.InterestRatePercent,
			InterestAmount:    quote.InterestAmount,
			TotalAmount:       quote.TotalAmount,
			DownPayment:       in.DownPayment,
			LoanBalance:       quote.TotalAmount,
			Frequency:         in.Frequency,
			DurationMonths:    in.DurationMonths,
			InstallmentAmount: quote.InstallmentAmount,
			TotalInstallments: quote.TotalInstallments,
			CreatedBy:         staffID,
			Status:            loan.StatusPending,
			StatusUpdatedAt:   now,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}

		out = &Application{Loan: l, Client: c, Asset: a}
		if q != nil {
			err := r.Inquiries.Transition(ctx, q.ID, inquiry.Convertible, inquiry.StatusConverted, map[string]any{
				"client_id":  c.ID,
				"handled_by": staffID,
			})
			if err != nil {
				return err
			}
			out.Inquiry = q.PublicID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("application created",
		zap.String("loan_id", out.Loan.PublicID),
		zap.String("loan_number", out.Loan.LoanNumber),
		zap.String("asset_id", out.Asset.PublicID))
	return out, nil
}

// claimAsset moves an existing available asset to assigned, or creates a new assigned one.
func (u *Usecase) claimAsset(ctx context.Context, r uow.Repos, in ApplicationInput) (*asset.Asset, error) {
	if na := in.NewAsset; na != nil {
		a := &asset.Asset{
			PublicID:  id.NewID32(),
			Kind:      na.Kind,
			Make:      na.Make,
			Model:     na.Model,
			Price:     na.Price,
			ProductID: na.ProductID,
			BranchID:  in.BranchID,
			Status:    asset.StatusAssigned,
		}
		if ids := na.Identifiers; ids != nil {
			a.ChassisNumber = optional(ids.ChassisNumber)
			a.EngineNumber = optional(ids.EngineNumber)
			a.RegistrationNumber = optional(ids.RegistrationNumber)
			a.GPSDeviceID = optional(ids.GPSDeviceID)
		}
		if err := r.Assets.Create(ctx, a); err != nil {
			return nil, err
		}
		return a, nil
	}

	ref, err := r.Assets.GetByPublicID(ctx, in.AssetID)
	if err != nil {
		return nil, err
	}
	a, err := r.Assets.GetByIDForUpdate(ctx, ref.ID)
	if err != nil {
		return nil, err
	}
	if a.Status != asset.StatusAvailable {
		return nil, asset.ErrNotAvailable
	}
	if err := r.Assets.Transition(ctx, a.ID, asset.StatusAvailable, asset.StatusAssigned); err != nil {
		if errors.Is(err, asset.ErrStateChanged) {
			return nil, asset.ErrNotAvailable
		}
		return nil, err
	}
	a.Status = asset.StatusAssigned
	return a, nil
}

func (u *Usecase) linkClient(ctx context.Context, r uow.Repos, in ApplicationInput, staffID string, assetID uint64) (*client.Client, error) {
	if in.Client != nil {
		c := in.Client.NewClient(id.NewID32(), staffID, &assetID)
		if c.BranchID == nil {
			c.BranchID = in.BranchID
		}
		if err := r.Clients.Create(ctx, c); err != nil {
			return nil, err
		}
		return c, nil
	}

	c, err := r.Clients.GetByPublicID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if c.AssetID != nil {
		return nil, client.ErrAssetAlreadyLinked
	}
	if err := r.Clients.LinkAsset(ctx, c.ID, &assetID); err != nil {
		return nil, err
	}
	c.AssetID = &assetID
	return c, nil
}

// StartReview moves a pending application into KYC review.
func (u *Usecase) StartReview(ctx context.Context, loanID string) (*loan.Loan, error) {
	return u.step(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if l.Status != loan.StatusPending {
			return apperr.Precondition("loan must be pending to start review, is %s", l.Status)
		}
		return r.Loans.Transition(ctx, l.ID, []loan.Status{loan.StatusPending}, loan.StatusUnderReview, nil)
	})
}

// CompleteKYC ends review. The loan waits for the asset's physical identifiers unless
// they are already on record.
func (u *Usecase) CompleteKYC(ctx context.Context, loanID string) (*loan.Loan, error) {
	return u.step(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if l.Status != loan.StatusUnderReview {
			return apperr.Precondition("loan must be under review to complete KYC, is %s", l.Status)
		}
		a, err := r.Assets.GetByIDForUpdate(ctx, l.AssetID)
		if err != nil {
			return err
		}
		next := loan.StatusAwaitingAsset
		if a.HasPhysicalIdentifiers() {
			next = loan.StatusAwaitingApproval
		}
		return r.Loans.Transition(ctx, l.ID, []loan.Status{loan.StatusUnderReview}, next, nil)
	})
}

// RecordAssetIdentifiers stores the unit's physical markings. A loan waiting on them
// moves to awaiting_approval in the same transaction.
func (u *Usecase) RecordAssetIdentifiers(ctx context.Context, loanID string, ids asset.Identifiers) (*loan.Loan, error) {
	if err := ids.Validate(); err != nil {
		return nil, err
	}
	return u.step(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if !l.Status.In(loan.PreActive...) {
			return apperr.Precondition("asset identifiers can only be recorded before activation, loan is %s", l.Status)
		}
		a, err := r.Assets.GetByIDForUpdate(ctx, l.AssetID)
		if err != nil {
			return err
		}
		if a.Status != asset.StatusAssigned {
			return u.inconsistent("asset of pre-active loan is not assigned",
				zap.String("loan_id", l.PublicID), zap.String("asset_id", a.PublicID), zap.String("asset_status", string(a.Status)))
		}
		if err := r.Assets.SetIdentifiers(ctx, a.ID, ids); err != nil {
			return err
		}
		if l.Status == loan.StatusAwaitingAsset {
			return r.Loans.Transition(ctx, l.ID, []loan.Status{loan.StatusAwaitingAsset}, loan.StatusAwaitingApproval, nil)
		}
		return nil
	})
}

// Approve activates the loan and lays out its repayment schedule starting today.
func (u *Usecase) Approve(ctx context.Context, loanID, approverID string) (*loan.Loan, error) {
	if approverID == "" {
		return nil, apperr.Validation("approver is required")
	}
	return u.step(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if l.Status != loan.StatusAwaitingApproval {
			return apperr.Precondition("loan must be awaiting approval, is %s", l.Status)
		}
		a, err := r.Assets.GetByIDForUpdate(ctx, l.AssetID)
		if err != nil {
			return err
		}
		if a.Status != asset.StatusAssigned {
			return u.inconsistent("asset of loan awaiting approval is not assigned",
				zap.String("loan_id", l.PublicID), zap.String("asset_id", a.PublicID), zap.String("asset_status", string(a.Status)))
		}

		now := u.now()
		items := schedule.Generate(l.ID, schedule.QuoteFor(l), schedule.DayStart(now))
		if len(items) == 0 {
			return apperr.Validation("loan has no installments")
		}
		if err := r.Schedules.CreateBatch(ctx, items); err != nil {
			return err
		}
		return r.Loans.Transition(ctx, l.ID, []loan.Status{loan.StatusAwaitingApproval}, loan.StatusActive, map[string]any{
			"approved_by":       approverID,
			"approved_at":       now,
			"next_payment_date": items[0].DueDate,
		})
	})
}

// Reject closes a pre-active application, releases its asset and unlinks it from the client.
func (u *Usecase) Reject(ctx context.Context, loanID, reason string) (*loan.Loan, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperr.Validation("rejection reason is required")
	}
	return u.step(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if !l.Status.In(loan.PreActive...) {
			return apperr.Precondition("only pre-active loans can be rejected, loan is %s", l.Status)
		}
		err := r.Loans.Transition(ctx, l.ID, loan.PreActive, loan.StatusRejected, map[string]any{
			"rejection_reason": reason,
			"closed_at":        u.now(),
		})
		if err != nil {
			return err
		}
		if err := r.Assets.Transition(ctx, l.AssetID, asset.StatusAssigned, asset.StatusAvailable); err != nil {
			if errors.Is(err, asset.ErrStateChanged) {
				return u.inconsistent("asset of rejected loan was not assigned",
					zap.String("loan_id", l.PublicID), zap.Uint64("asset_pk", l.AssetID))
			}
			return err
		}
		return unlinkClient(ctx, r, l)
	})
}

// step runs fn against the locked loan and returns the reloaded row.
func (u *Usecase) step(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) (*loan.Loan, error) {
	var out *loan.Loan
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if err := fn(r, l); err != nil {
			return err
		}
		fresh, err := r.Loans.GetByID(ctx, l.ID)
		if err != nil {
			return err
		}
		out = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("loan updated", zap.String("loan_id", out.PublicID), zap.String("status", string(out.Status)))
	return out, nil
}

func (u *Usecase) inconsistent(msg string, fields ...zap.Field) error {
	err := apperr.Consistency("%s", msg)
	u.log.Error("consistency violation", append(fields, zap.Error(err))...)
	return err
}

// unlinkClient clears the client's asset link if it still points at the loan's asset.
func unlinkClient(ctx context.Context, r uow.Repos, l *loan.Loan) error {
	c, err := r.Clients.GetByID(ctx, l.ClientID)
	if err != nil {
		return err
	}
	if c.AssetID == nil || *c.AssetID != l.AssetID {
		return nil
	}
	return r.Clients.LinkAsset(ctx, c.ID, nil)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

package delinquency

import (
	"context"
	"errors"
	"strings"
	"time"

	"motofinance-backend/internal/domain/apperr"
	"motofinance-backend/internal/domain/asset"
	"motofinance-backend/internal/domain/loan"
	"motofinance-backend/internal/domain/schedule"
	"motofinance-backend/internal/domain/uow"

	"go.uber.org/zap"
)

type Usecase struct {
	loans      loan.Repository
	uow        uow.UnitOfWork
	thresholds loan.Thresholds
	log        *zap.Logger
	now        func() time.Time
}

func NewUsecase(loans loan.Repository, tx uow.UnitOfWork, th loan.Thresholds, log *zap.Logger) *Usecase {
	return &Usecase{
		loans:      loans,
		uow:        tx,
		thresholds: th,
		log:        log.Named("delinquency"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// ListAtRisk returns active loans at or over the at-risk threshold, worst first.
func (u *Usecase) ListAtRisk(ctx context.Context) ([]AtRiskLoan, error) {
	loans, err := u.loans.ListAtRisk(ctx, u.thresholds.AtRisk)
	if err != nil {
		return nil, err
	}
	out := make([]AtRiskLoan, 0, len(loans))
	for i := range loans {
		l := &loans[i]
		out = append(out, AtRiskLoan{Loan: l, Standing: l.Standing(u.thresholds)})
	}
	return out, nil
}

// InitiateRecovery defaults an active loan whose consecutive misses reached the recovery
// threshold. The asset stays assigned until it is physically retrieved.
func (u *Usecase) InitiateRecovery(ctx context.Context, loanID, notes string) (*loan.Loan, error) {
	return u.step(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if l.Status != loan.StatusActive {
			return loan.ErrNotActive
		}
		if l.ConsecutiveMissed < u.thresholds.Recovery {
			return apperr.Precondition("loan has %d consecutive missed payments, recovery needs %d",
				l.ConsecutiveMissed, u.thresholds.Recovery)
		}
		return r.Loans.Transition(ctx, l.ID, []loan.Status{loan.StatusActive}, loan.StatusDefaulted, map[string]any{
			"recovery_initiated_at": u.now(),
			"recovery_notes":        strings.TrimSpace(notes),
		})
	})
}

// MarkRecovered closes a defaulted loan once its asset is back in the yard.
func (u *Usecase) MarkRecovered(ctx context.Context, loanID, notes string) (*loan.Loan, error) {
	return u.step(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if l.Status != loan.StatusDefaulted {
			return apperr.Precondition("only defaulted loans can be marked recovered, loan is %s", l.Status)
		}
		now := u.now()
		fields := map[string]any{"recovered_at": now, "closed_at": now}
		if notes = strings.TrimSpace(notes); notes != "" {
			fields["recovery_notes"] = strings.TrimSpace(l.RecoveryNotes + "\n" + notes)
		}
		if err := r.Loans.Transition(ctx, l.ID, []loan.Status{loan.StatusDefaulted}, loan.StatusRecovered, fields); err != nil {
			return err
		}
		if err := r.Assets.Transition(ctx, l.AssetID, asset.StatusAssigned, asset.StatusRecovered); err != nil {
			if errors.Is(err, asset.ErrStateChanged) {
				return u.inconsistent("asset of defaulted loan was not assigned",
					zap.String("loan_id", l.PublicID), zap.Uint64("asset_pk", l.AssetID))
			}
			return err
		}
		c, err := r.Clients.GetByID(ctx, l.ClientID)
		if err != nil {
			return err
		}
		if c.AssetID != nil && *c.AssetID == l.AssetID {
			return r.Clients.LinkAsset(ctx, c.ID, nil)
		}
		return nil
	})
}

// ReleaseAsset puts a recovered asset back on sale.
func (u *Usecase) ReleaseAsset(ctx context.Context, assetID string) (*asset.Asset, error) {
	var out *asset.Asset
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Assets.GetByPublicID(ctx, assetID)
		if err != nil {
			return err
		}
		if a.Status != asset.StatusRecovered {
			return apperr.Precondition("only recovered assets can be released, asset is %s", a.Status)
		}
		if err := r.Assets.Transition(ctx, a.ID, asset.StatusRecovered, asset.StatusAvailable); err != nil {
			return err
		}
		a.Status = asset.StatusAvailable
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("asset released", zap.String("asset_id", assetID))
	return out, nil
}

// ReconcileMissedPayments counts, for every active loan, the unpaid installments that
// fell due after the loan's watermark and before the start of asOf's day, then moves the
// watermark to the latest such due date. Running it again for the same day is a no-op.
// Each loan is reconciled in its own transaction; failures are logged and counted.
func (u *Usecase) ReconcileMissedPayments(ctx context.Context, asOf time.Time) (ReconcileReport, error) {
	cutoff := schedule.DayStart(asOf)
	rep := ReconcileReport{AsOf: cutoff}

	active, err := u.loans.ListByStatus(ctx, loan.StatusActive)
	if err != nil {
		return rep, err
	}

	var errs []error
	for i := range active {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		rep.Scanned++
		missed, changed, err := u.reconcileLoan(ctx, active[i].ID, cutoff)
		if err != nil {
			rep.Failed++
			errs = append(errs, err)
			u.log.Error("reconcile loan failed", zap.String("loan_id", active[i].PublicID), zap.Error(err))
			continue
		}
		if changed {
			rep.Updated++
			rep.MissedAdded += missed
		}
		if missed > 0 {
			u.log.Info("missed installments recorded",
				zap.String("loan_id", active[i].PublicID), zap.Int("missed", missed))
		}
	}

	u.log.Info("missed payment reconciliation finished",
		zap.Time("as_of", cutoff),
		zap.Int("scanned", rep.Scanned),
		zap.Int("updated", rep.Updated),
		zap.Int("missed_added", rep.MissedAdded),
		zap.Int("failed", rep.Failed))
	return rep, errors.Join(errs...)
}

func (u *Usecase) reconcileLoan(ctx context.Context, loanID uint64, cutoff time.Time) (missed int, changed bool, err error) {
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		if l.Status != loan.StatusActive {
			return nil
		}
		latest, err := r.Schedules.LatestDueBefore(ctx, l.ID, cutoff)
		if err != nil || latest == nil {
			return err
		}
		if l.MissedEvaluatedThrough != nil && !latest.After(*l.MissedEvaluatedThrough) {
			return nil
		}
		rows, err := r.Schedules.UnpaidDueBetween(ctx, l.ID, l.MissedEvaluatedThrough, cutoff)
		if err != nil {
			return err
		}
		if err := r.Loans.RecordMissed(ctx, l.ID, len(rows), *latest); err != nil {
			return err
		}
		missed, changed = len(rows), true
		return nil
	})
	return missed, changed, err
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

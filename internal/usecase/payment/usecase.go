package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	"motofinance-backend/internal/domain/apperr"
	"motofinance-backend/internal/domain/asset"
	"motofinance-backend/internal/domain/loan"
	"motofinance-backend/internal/domain/payment"
	"motofinance-backend/internal/domain/sequence"
	"motofinance-backend/internal/domain/uow"
	"motofinance-backend/pkg/id"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Usecase struct {
	loans    loan.Repository
	payments payment.Repository
	uow      uow.UnitOfWork
	seq      sequence.Generator
	log      *zap.Logger
	now      func() time.Time
}

func NewUsecase(loans loan.Repository, payments payment.Repository, tx uow.UnitOfWork, seq sequence.Generator, log *zap.Logger) *Usecase {
	return &Usecase{
		loans:    loans,
		payments: payments,
		uow:      tx,
		seq:      seq,
		log:      log.Named("payment"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Record registers a pending payment against an active loan. Nothing on the loan changes
// until the payment is confirmed.
func (u *Usecase) Record(ctx context.Context, loanID, staffID string, in RecordInput) (*payment.Payment, error) {
	if !in.Amount.IsPositive() {
		return nil, apperr.Validation("amount must be greater than zero")
	}
	if !in.Method.Valid() {
		return nil, apperr.Validation("unknown payment method %q", in.Method)
	}
	ref, err := u.seq.Next(ctx, sequence.PrefixPayment)
	if err != nil {
		return nil, err
	}

	var out *payment.Payment
	err = u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if l.Status != loan.StatusActive {
			return loan.ErrNotActive
		}
		p := &payment.Payment{
			PublicID:    id.NewID32(),
			Reference:   ref,
			LoanID:      l.ID,
			ClientID:    l.ClientID,
			Amount:      in.Amount,
			Method:      in.Method,
			ExternalRef: strings.TrimSpace(in.ExternalRef),
			Status:      payment.StatusPending,
			ReceivedBy:  staffID,
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("payment recorded",
		zap.String("payment_id", out.PublicID), zap.String("loan_id", loanID), zap.String("amount", out.Amount.String()))
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, paymentID string) (*payment.Payment, error) {
	return u.payments.GetByPublicID(ctx, paymentID)
}

func (u *Usecase) ListByLoan(ctx context.Context, loanID string) ([]payment.Payment, error) {
	l, err := u.loans.GetByPublicID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return u.payments.ListByLoanID(ctx, l.ID)
}

// Confirm applies a pending payment to its loan: the balance drops by the amount (never
// below zero), the earliest unpaid installment is marked paid with the amount actually
// received, and a loan paid down to zero completes and transfers its asset.
func (u *Usecase) Confirm(ctx context.Context, paymentID, staffID string) (*Confirmation, error) {
	var out *Confirmation
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Payments.GetByPublicIDForUpdate(ctx, paymentID)
		if err != nil {
			return err
		}
		if p.Status != payment.StatusPending {
			return payment.ErrNotPending
		}
		l, err := r.Loans.GetByIDForUpdate(ctx, p.LoanID)
		if err != nil {
			return err
		}
		if l.Status != loan.StatusActive {
			return loan.ErrNotActive
		}

		now := u.now()
		err = r.Payments.Transition(ctx, p.ID, payment.StatusPending, payment.StatusConfirmed, map[string]any{
			"confirmed_by": staffID,
			"confirmed_at": now,
		})
		if err != nil {
			return err
		}
		p.Status = payment.StatusConfirmed
		p.ConfirmedBy = &staffID
		p.ConfirmedAt = &now

		balance := l.LoanBalance.Sub(p.Amount)
		if balance.IsNegative() {
			balance = decimal.Zero
		}

		row, err := r.Schedules.EarliestUnpaid(ctx, l.ID)
		if err != nil {
			return err
		}
		if row != nil {
			if err := r.Schedules.MarkPaid(ctx, row.ID, p.Amount, now, p.ID); err != nil {
				return err
			}
		} else {
			u.log.Warn("confirmed payment has no unpaid installment to settle",
				zap.String("payment_id", p.PublicID), zap.String("loan_id", l.PublicID))
		}

		completed := balance.IsZero()
		var nextDue *time.Time
		if !completed {
			next, err := r.Schedules.EarliestUnpaid(ctx, l.ID)
			if err != nil {
				return err
			}
			if next != nil {
				nextDue = &next.DueDate
			}
		}

		err = r.Loans.ApplyPayment(ctx, l.ID, loan.PaymentApplication{
			Balance:         balance,
			PaidAt:          now,
			NextPaymentDate: nextDue,
			Completed:       completed,
		})
		if err != nil {
			return err
		}

		if completed {
			if err := r.Assets.Transition(ctx, l.AssetID, asset.StatusAssigned, asset.StatusTransferred); err != nil {
				if errors.Is(err, asset.ErrStateChanged) {
					return u.inconsistent("asset of completed loan was not assigned",
						zap.String("loan_id", l.PublicID), zap.Uint64("asset_pk", l.AssetID))
				}
				return err
			}
		}

		fresh, err := r.Loans.GetByID(ctx, l.ID)
		if err != nil {
			return err
		}
		out = &Confirmation{Payment: p, Loan: fresh}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("payment confirmed",
		zap.String("payment_id", paymentID),
		zap.String("loan_id", out.Loan.PublicID),
		zap.String("balance", out.Loan.LoanBalance.String()),
		zap.String("loan_status", string(out.Loan.Status)))
	return out, nil
}

// Reject closes a pending payment without touching the loan.
func (u *Usecase) Reject(ctx context.Context, paymentID, staffID, reason string) (*payment.Payment, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperr.Validation("rejection reason is required")
	}
	return u.transition(ctx, paymentID, payment.StatusPending, payment.StatusRejected, func(p *payment.Payment, now time.Time) map[string]any {
		p.RejectedBy, p.RejectedAt, p.RejectionReason = &staffID, &now, reason
		return map[string]any{"rejected_by": staffID, "rejected_at": now, "rejection_reason": reason}
	})
}

// Reconcile marks a confirmed payment as matched against the external statement.
func (u *Usecase) Reconcile(ctx context.Context, paymentID, staffID string) (*payment.Payment, error) {
	return u.transition(ctx, paymentID, payment.StatusConfirmed, payment.StatusReconciled, func(p *payment.Payment, now time.Time) map[string]any {
		p.ReconciledBy, p.ReconciledAt = &staffID, &now
		return map[string]any{"reconciled_by": staffID, "reconciled_at": now}
	})
}

func (u *Usecase) transition(ctx context.Context, paymentID string, from, to payment.Status, fields func(p *payment.Payment, now time.Time) map[string]any) (*payment.Payment, error) {
	var out *payment.Payment
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Payments.GetByPublicIDForUpdate(ctx, paymentID)
		if err != nil {
			return err
		}
		if p.Status != from {
			if from == payment.StatusConfirmed {
				return payment.ErrNotConfirmed
			}
			return payment.ErrNotPending
		}
		if err := r.Payments.Transition(ctx, p.ID, from, to, fields(p, u.now())); err != nil {
			return err
		}
		p.Status = to
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("payment status changed", zap.String("payment_id", paymentID), zap.String("status", string(to)))
	return out, nil
}

func (u *Usecase) inconsistent(msg string, fields ...zap.Field) error {
	err := apperr.Consistency("%s", msg)
	u.log.Error("consistency violation", append(fields, zap.Error(err))...)
	return err
}

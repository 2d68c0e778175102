package loan

import (
	"time"

	"motofinance-backend/internal/domain/apperr"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending          Status = "pending"
	StatusUnderReview      Status = "under_review"
	StatusAwaitingAsset    Status = "awaiting_asset"
	StatusAwaitingApproval Status = "awaiting_approval"
	StatusActive           Status = "active"
	StatusCompleted        Status = "completed"
	StatusRejected         Status = "rejected"
	StatusDefaulted        Status = "defaulted"
	StatusRecovered        Status = "recovered"
)

// PreActive lists the origination states from which a loan may still be rejected.
var PreActive = []Status{StatusPending, StatusUnderReview, StatusAwaitingAsset, StatusAwaitingApproval}

// Open lists the states in which a loan holds its asset in `assigned`.
var Open = []Status{
	StatusPending, StatusUnderReview, StatusAwaitingAsset, StatusAwaitingApproval,
	StatusActive, StatusDefaulted,
}

func (s Status) In(set ...Status) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}

var (
	ErrNotFound     = apperr.NotFound("loan not found")
	ErrNotActive    = apperr.Precondition("loan is not active")
	ErrStateChanged = apperr.Precondition("loan status changed concurrently or is not eligible")
)

type Loan struct {
	ID         uint64  `gorm:"primaryKey;column:id" json:"-"`
	PublicID   string  `gorm:"column:public_id;size:32;not null;uniqueIndex:ux_loans_public_id" json:"id"`
	LoanNumber string  `gorm:"column:loan_number;size:40;not null;uniqueIndex:ux_loans_loan_number" json:"loan_number"`
	ClientID   uint64  `gorm:"column:client_id;not null;index:idx_loans_client" json:"-"`
	AssetID    uint64  `gorm:"column:asset_id;not null;index:idx_loans_asset" json:"-"`
	BranchID   *uint64 `gorm:"column:branch_id" json:"branch_id,omitempty"`

	Principal         decimal.Decimal `gorm:"column:principal;type:decimal(18,2);not null" json:"principal"`
	InterestRate      decimal.Decimal `gorm:"column:interest_rate;type:decimal(7,4);not null" json:"interest_rate"`
	InterestAmount    decimal.Decimal `gorm:"column:interest_amount;type:decimal(18,2);not null" json:"interest_amount"`
	TotalAmount       decimal.Decimal `gorm:"column:total_amount;type:decimal(18,2);not null" json:"total_amount"`
	DownPayment       decimal.Decimal `gorm:"column:down_payment;type:decimal(18,2);not null" json:"down_payment"`
	LoanBalance       decimal.Decimal `gorm:"column:loan_balance;type:decimal(18,2);not null" json:"loan_balance"`
	Frequency         Frequency       `gorm:"column:frequency;size:16;not null" json:"frequency"`
	DurationMonths    int             `gorm:"column:duration_months;not null" json:"duration_months"`
	InstallmentAmount decimal.Decimal `gorm:"column:installment_amount;type:decimal(18,2);not null" json:"installment_amount"`
	TotalInstallments int             `gorm:"column:total_installments;not null" json:"total_installments"`
	InstallmentsPaid  int             `gorm:"column:installments_paid;not null;default:0" json:"installments_paid"`

	MissedPayments    int `gorm:"column:missed_payments;not null;default:0" json:"missed_payments"`
	ConsecutiveMissed int `gorm:"column:consecutive_missed;not null;default:0;index:idx_loans_status_missed,priority:2" json:"consecutive_missed"`
	// Latest due date already counted by the missed-payment reconciliation.
	MissedEvaluatedThrough *time.Time `gorm:"column:missed_evaluated_through" json:"-"`

	NextPaymentDate *time.Time `gorm:"column:next_payment_date" json:"next_payment_date,omitempty"`
	LastPaymentDate *time.Time `gorm:"column:last_payment_date" json:"last_payment_date,omitempty"`

	ApprovedBy          *string    `gorm:"column:approved_by;size:32" json:"approved_by,omitempty"`
	ApprovedAt          *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	RejectionReason     string     `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`
	ClosedAt            *time.Time `gorm:"column:closed_at" json:"closed_at,omitempty"`
	RecoveryInitiatedAt *time.Time `gorm:"column:recovery_initiated_at" json:"recovery_initiated_at,omitempty"`
	RecoveryNotes       string     `gorm:"column:recovery_notes;type:text" json:"recovery_notes,omitempty"`
	RecoveredAt         *time.Time `gorm:"column:recovered_at" json:"recovered_at,omitempty"`

	CreatedBy       string         `gorm:"column:created_by;size:32" json:"created_by"`
	Status          Status         `gorm:"column:status;size:24;not null;default:'pending';index:idx_loans_status_missed,priority:1" json:"status"`
	StatusUpdatedAt time.Time      `gorm:"column:status_updated_at" json:"status_updated_at"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// Standing is the derived delinquency classification of an active loan.
type Standing string

const (
	StandingCurrent           Standing = "current"
	StandingAtRisk            Standing = "at_risk"
	StandingRecoveryCandidate Standing = "recovery_candidate"
	StandingNotApplicable     Standing = "not_applicable"
)

// Thresholds configure the consecutive-missed cut-offs for Standing.
type Thresholds struct {
	AtRisk   int
	Recovery int
}

func DefaultThresholds() Thresholds { return Thresholds{AtRisk: 2, Recovery: 4} }

func (l *Loan) Standing(t Thresholds) Standing {
	if l.Status != StatusActive {
		return StandingNotApplicable
	}
	switch {
	case l.ConsecutiveMissed >= t.Recovery:
		return StandingRecoveryCandidate
	case l.ConsecutiveMissed >= t.AtRisk:
		return StandingAtRisk
	default:
		return StandingCurrent
	}
}

// PaymentApplication is the set of loan columns written when a payment is confirmed.
type PaymentApplication struct {
	Balance         decimal.Decimal
	PaidAt          time.Time
	NextPaymentDate *time.Time
	Completed       bool
}

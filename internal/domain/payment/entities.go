package payment

import (
	"time"

	"motofinance-backend/internal/domain/apperr"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusReconciled Status = "reconciled"
	StatusRejected   Status = "rejected"
)

type Method string

const (
	MethodCash         Method = "cash"
	MethodMobileMoney  Method = "mobile_money"
	MethodBankTransfer Method = "bank_transfer"
	MethodCard         Method = "card"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodMobileMoney, MethodBankTransfer, MethodCard:
		return true
	}
	return false
}

var (
	ErrNotFound     = apperr.NotFound("payment not found")
	ErrNotPending   = apperr.Precondition("payment is not pending")
	ErrNotConfirmed = apperr.Precondition("payment is not confirmed")
)

type Payment struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	PublicID        string          `gorm:"column:public_id;size:32;not null;uniqueIndex:ux_payments_public_id" json:"id"`
	Reference       string          `gorm:"column:payment_reference;size:40;not null;uniqueIndex:ux_payments_reference" json:"payment_reference"`
	LoanID          uint64          `gorm:"column:loan_id;not null;index" json:"-"`
	ClientID        uint64          `gorm:"column:client_id;not null;index" json:"-"`
	Amount          decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Method          Method          `gorm:"column:method;size:24;not null" json:"method"`
	ExternalRef     string          `gorm:"column:external_ref;size:128" json:"external_ref,omitempty"`
	Status          Status          `gorm:"column:status;size:16;not null;default:'pending';index" json:"status"`
	ReceivedBy      string          `gorm:"column:received_by;size:32" json:"received_by"`
	ConfirmedBy     *string         `gorm:"column:confirmed_by;size:32" json:"confirmed_by,omitempty"`
	ConfirmedAt     *time.Time      `gorm:"column:confirmed_at" json:"confirmed_at,omitempty"`
	RejectedBy      *string         `gorm:"column:rejected_by;size:32" json:"rejected_by,omitempty"`
	RejectedAt      *time.Time      `gorm:"column:rejected_at" json:"rejected_at,omitempty"`
	RejectionReason string          `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`
	ReconciledBy    *string         `gorm:"column:reconciled_by;size:32" json:"reconciled_by,omitempty"`
	ReconciledAt    *time.Time      `gorm:"column:reconciled_at" json:"reconciled_at,omitempty"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"column:deleted_at;index" json:"-"`
}

func (Payment) TableName() string { return "payments" }

package schedule

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is one due installment. Count and due dates never change after creation;
// only the paid columns are written afterwards.
type Item struct {
	ID         uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID     uint64          `gorm:"column:loan_id;not null;uniqueIndex:ux_schedule_loan_seq,priority:1;index:idx_schedule_loan_due,priority:1" json:"-"`
	Sequence   int             `gorm:"column:sequence;not null;uniqueIndex:ux_schedule_loan_seq,priority:2" json:"sequence"`
	DueDate    time.Time       `gorm:"column:due_date;type:date;not null;index:idx_schedule_loan_due,priority:2" json:"due_date"`
	AmountDue  decimal.Decimal `gorm:"column:amount_due;type:decimal(18,2);not null" json:"amount_due"`
	IsPaid     bool            `gorm:"column:is_paid;not null;default:false" json:"is_paid"`
	AmountPaid decimal.Decimal `gorm:"column:amount_paid;type:decimal(18,2);not null;default:0" json:"amount_paid"`
	PaidAt     *time.Time      `gorm:"column:paid_at" json:"paid_at,omitempty"`
	PaymentID  *uint64         `gorm:"column:payment_id" json:"-"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Item) TableName() string { return "repayment_schedules" }

package inquiry

import (
	"time"

	"motofinance-backend/internal/domain/apperr"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusQualified Status = "qualified"
	StatusConverted Status = "converted"
	StatusClosed    Status = "closed"
)

type SaleType string

const (
	SaleTypeCash SaleType = "cash"
	SaleTypeLoan SaleType = "loan"
)

var (
	ErrNotFound          = apperr.NotFound("inquiry not found")
	ErrTerminal          = apperr.Precondition("inquiry is already converted or closed")
	ErrStateChanged      = apperr.Precondition("inquiry status changed concurrently")
	ErrInvalidTransition = apperr.Precondition("inquiry status transition not allowed")
)

// staffTransitions are the moves sales staff may make by hand. Conversion happens only
// through application creation or a cash sale.
var staffTransitions = map[Status][]Status{
	StatusNew:       {StatusContacted, StatusQualified, StatusClosed},
	StatusContacted: {StatusQualified, StatusClosed},
	StatusQualified: {StatusClosed},
}

func (s Status) Terminal() bool { return s == StatusConverted || s == StatusClosed }

// CanAdvance reports whether staff may move an inquiry from s to next.
func (s Status) CanAdvance(next Status) bool {
	for _, v := range staffTransitions[s] {
		if v == next {
			return true
		}
	}
	return false
}

// Convertible lists the states an inquiry may be converted from.
var Convertible = []Status{StatusNew, StatusContacted, StatusQualified}

type Inquiry struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	PublicID        string          `gorm:"column:public_id;size:32;not null;uniqueIndex:ux_inquiries_public_id" json:"id"`
	FullName        string          `gorm:"column:full_name;size:128;not null" json:"full_name"`
	Phone           string          `gorm:"column:phone;size:32;not null" json:"phone"`
	Email           string          `gorm:"column:email;size:128" json:"email,omitempty"`
	ProductInterest string          `gorm:"column:product_interest;size:128" json:"product_interest"`
	ProductID       *uint64         `gorm:"column:product_id" json:"product_id,omitempty"`
	EstimatedIncome decimal.Decimal `gorm:"column:estimated_income;type:decimal(18,2);not null;default:0" json:"estimated_income"`
	SaleType        SaleType        `gorm:"column:sale_type;size:8;not null" json:"sale_type"`
	BranchID        *uint64         `gorm:"column:branch_id" json:"branch_id,omitempty"`
	Notes           string          `gorm:"column:notes;type:text" json:"notes,omitempty"`
	HandledBy       *string         `gorm:"column:handled_by;size:32" json:"handled_by,omitempty"`
	ClientID        *uint64         `gorm:"column:client_id" json:"-"`
	Status          Status          `gorm:"column:status;size:16;not null;default:'new';index" json:"status"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"column:deleted_at;index" json:"-"`
}

func (Inquiry) TableName() string { return "inquiries" }

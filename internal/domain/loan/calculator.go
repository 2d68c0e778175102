package loan

import (
	"motofinance-backend/internal/domain/apperr"

	"github.com/shopspring/decimal"
)

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// DaysPerPeriod returns 0 for an unknown frequency.
func (f Frequency) DaysPerPeriod() int {
	switch f {
	case FrequencyDaily:
		return 1
	case FrequencyWeekly:
		return 7
	default:
		return 0
	}
}

// Months are approximated as 30 days; no calendar arithmetic.
const daysPerMonth = 30

var hundred = decimal.NewFromInt(100)

// Terms are the commercial inputs of a loan. InterestRatePercent is flat over the whole
// term, not per period.
type Terms struct {
	Price               decimal.Decimal
	DownPayment         decimal.Decimal
	InterestRatePercent decimal.Decimal
	DurationMonths      int
	Frequency           Frequency
}

func (t Terms) Validate() error {
	switch {
	case !t.Price.IsPositive():
		return apperr.Validation("price must be greater than zero")
	case t.DownPayment.IsNegative():
		return apperr.Validation("down payment must not be negative")
	case t.DownPayment.GreaterThanOrEqual(t.Price):
		return apperr.Validation("down payment must be below price")
	case t.InterestRatePercent.IsNegative():
		return apperr.Validation("interest rate must not be negative")
	case t.DurationMonths <= 0:
		return apperr.Validation("duration must be at least one month")
	case t.Frequency.DaysPerPeriod() == 0:
		return apperr.Validation("unknown repayment frequency %q", t.Frequency)
	}
	return nil
}

type Quote struct {
	LoanAmount        decimal.Decimal `json:"loan_amount"`
	InterestAmount    decimal.Decimal `json:"interest_amount"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	DurationDays      int             `json:"duration_days"`
	DaysPerPeriod     int             `json:"days_per_period"`
	TotalInstallments int             `json:"total_installments"`
	InstallmentAmount decimal.Decimal `json:"installment_amount"`
}

// Calculate derives the repayment figures from t. Both ceilings round in the lender's
// favour, so InstallmentAmount*TotalInstallments >= TotalAmount.
func Calculate(t Terms) (Quote, error) {
	if err := t.Validate(); err != nil {
		return Quote{}, err
	}
	loanAmount := t.Price.Sub(t.DownPayment)
	interest := loanAmount.Mul(t.InterestRatePercent).Div(hundred)
	total := loanAmount.Add(interest)

	durationDays := t.DurationMonths * daysPerMonth
	perPeriod := t.Frequency.DaysPerPeriod()
	n := (durationDays + perPeriod - 1) / perPeriod

	return Quote{
		LoanAmount:        loanAmount,
		InterestAmount:    interest,
		TotalAmount:       total,
		DurationDays:      durationDays,
		DaysPerPeriod:     perPeriod,
		TotalInstallments: n,
		InstallmentAmount: ceilDiv(total, decimal.NewFromInt(int64(n))),
	}, nil
}

// ceilDiv returns the smallest integer >= a/b for positive b.
func ceilDiv(a, b decimal.Decimal) decimal.Decimal {
	q, r := a.QuoRem(b, 0)
	if r.IsPositive() {
		q = q.Add(decimal.NewFromInt(1))
	}
	return q
}

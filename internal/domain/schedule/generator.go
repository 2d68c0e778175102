package schedule

import (
	"time"

	"motofinance-backend/internal/domain/loan"

	"github.com/shopspring/decimal"
)

// Generate lays out q.TotalInstallments rows, the i-th due i periods after start.
// Every row carries the same nominal InstallmentAmount; the last row does not absorb
// the rounding difference against the loan total.
func Generate(loanID uint64, q loan.Quote, start time.Time) []Item {
	items := make([]Item, 0, q.TotalInstallments)
	for i := 1; i <= q.TotalInstallments; i++ {
		items = append(items, Item{
			LoanID:     loanID,
			Sequence:   i,
			DueDate:    start.AddDate(0, 0, i*q.DaysPerPeriod),
			AmountDue:  q.InstallmentAmount,
			AmountPaid: decimal.Zero,
		})
	}
	return items
}

// QuoteFor rebuilds the schedule-relevant part of a quote from a persisted loan.
func QuoteFor(l *loan.Loan) loan.Quote {
	return loan.Quote{
		LoanAmount:        l.Principal,
		InterestAmount:    l.InterestAmount,
		TotalAmount:       l.TotalAmount,
		DurationDays:      l.DurationMonths * 30,
		DaysPerPeriod:     l.Frequency.DaysPerPeriod(),
		TotalInstallments: l.TotalInstallments,
		InstallmentAmount: l.InstallmentAmount,
	}
}

// DayStart truncates t to midnight UTC.
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Total sums AmountDue over items.
func Total(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.AmountDue)
	}
	return sum
}

package loan_test

import (
	"errors"
	"testing"

	"motofinance-backend/internal/domain/apperr"
	"motofinance-backend/internal/domain/loan"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestCalculate_DailyExample(t *testing.T) {
	q, err := loan.Calculate(loan.Terms{
		Price:               d(9_000_000),
		DownPayment:         d(1_000_000),
		InterestRatePercent: d(30),
		DurationMonths:      12,
		Frequency:           loan.FrequencyDaily,
	})
	require.NoError(t, err)

	assert.True(t, q.LoanAmount.Equal(d(8_000_000)), "loan amount %s", q.LoanAmount)
	assert.True(t, q.InterestAmount.Equal(d(2_400_000)), "interest %s", q.InterestAmount)
	assert.True(t, q.TotalAmount.Equal(d(10_400_000)), "total %s", q.TotalAmount)
	assert.Equal(t, 360, q.DurationDays)
	assert.Equal(t, 1, q.DaysPerPeriod)
	assert.Equal(t, 360, q.TotalInstallments)
	assert.True(t, q.InstallmentAmount.Equal(d(28_889)), "installment %s", q.InstallmentAmount)
}

func TestCalculate_WeeklyRoundsInstallmentCountUp(t *testing.T) {
	q, err := loan.Calculate(loan.Terms{
		Price:               d(5_000_000),
		DownPayment:         d(500_000),
		InterestRatePercent: d(20),
		DurationMonths:      6,
		Frequency:           loan.FrequencyWeekly,
	})
	require.NoError(t, err)

	// 180 days / 7 = 25.71 -> 26 installments
	assert.Equal(t, 26, q.TotalInstallments)
	assert.True(t, q.TotalAmount.Equal(d(5_400_000)))
	// 5,400,000 / 26 = 207,692.3 -> 207,693
	assert.True(t, q.InstallmentAmount.Equal(d(207_693)), "installment %s", q.InstallmentAmount)
}

func TestCalculate_ExactDivisionHasNoRoundingUp(t *testing.T) {
	q, err := loan.Calculate(loan.Terms{
		Price:               d(3_600),
		DownPayment:         decimal.Zero,
		InterestRatePercent: decimal.Zero,
		DurationMonths:      1,
		Frequency:           loan.FrequencyDaily,
	})
	require.NoError(t, err)
	assert.Equal(t, 30, q.TotalInstallments)
	assert.True(t, q.InstallmentAmount.Equal(d(120)))
}

func TestCalculate_CoversTotalAndIsDeterministic(t *testing.T) {
	prices := []int64{1_000, 2_500_000, 9_000_000, 12_345_678}
	downs := []int64{0, 1, 999}
	rates := []string{"0", "12.5", "30", "47.25"}
	months := []int{1, 3, 7, 12, 18, 24}
	freqs := []loan.Frequency{loan.FrequencyDaily, loan.FrequencyWeekly}

	for _, p := range prices {
		for _, dp := range downs {
			for _, r := range rates {
				for _, m := range months {
					for _, f := range freqs {
						terms := loan.Terms{
							Price:               d(p),
							DownPayment:         d(dp),
							InterestRatePercent: decimal.RequireFromString(r),
							DurationMonths:      m,
							Frequency:           f,
						}
						q1, err := loan.Calculate(terms)
						require.NoError(t, err)
						q2, err := loan.Calculate(terms)
						require.NoError(t, err)
						assert.Equal(t, q1, q2, "calculator must be pure")

						n := decimal.NewFromInt(int64(q1.TotalInstallments))
						assert.True(t, q1.InstallmentAmount.Mul(n).GreaterThanOrEqual(q1.TotalAmount),
							"installments must cover total for %+v", terms)

						per := f.DaysPerPeriod()
						wantN := (m*30 + per - 1) / per
						assert.Equal(t, wantN, q1.TotalInstallments)
					}
				}
			}
		}
	}
}

func TestTerms_Validate(t *testing.T) {
	valid := loan.Terms{
		Price:               d(1_000),
		DownPayment:         d(100),
		InterestRatePercent: d(10),
		DurationMonths:      1,
		Frequency:           loan.FrequencyDaily,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*loan.Terms)
	}{
		{"zero price", func(t *loan.Terms) { t.Price = decimal.Zero }},
		{"negative down payment", func(t *loan.Terms) { t.DownPayment = d(-1) }},
		{"down payment equals price", func(t *loan.Terms) { t.DownPayment = d(1_000) }},
		{"down payment above price", func(t *loan.Terms) { t.DownPayment = d(2_000) }},
		{"negative rate", func(t *loan.Terms) { t.InterestRatePercent = d(-5) }},
		{"zero duration", func(t *loan.Terms) { t.DurationMonths = 0 }},
		{"unknown frequency", func(t *loan.Terms) { t.Frequency = "monthly" }},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			terms := valid
			tt.mutate(&terms)
			_, err := loan.Calculate(terms)
			assert.True(t, errors.Is(err, apperr.ErrValidation), "got %v", err)
		})
	}
}

func TestLoan_Standing(t *testing.T) {
	th := loan.DefaultThresholds()
	tests := []struct {
		status loan.Status
		missed int
		want   loan.Standing
	}{
		{loan.StatusActive, 0, loan.StandingCurrent},
		{loan.StatusActive, 1, loan.StandingCurrent},
		{loan.StatusActive, 2, loan.StandingAtRisk},
		{loan.StatusActive, 3, loan.StandingAtRisk},
		{loan.StatusActive, 4, loan.StandingRecoveryCandidate},
		{loan.StatusDefaulted, 9, loan.StandingNotApplicable},
	}
	for _, tt := range tests {
		l := &loan.Loan{Status: tt.status, ConsecutiveMissed: tt.missed}
		assert.Equal(t, tt.want, l.Standing(th), "status=%s missed=%d", tt.status, tt.missed)
	}
}

package payment

import (
	"motofinance-backend/internal/domain/loan"
	"motofinance-backend/internal/domain/payment"

	"github.com/shopspring/decimal"
)

type RecordInput struct {
	Amount      decimal.Decimal
	Method      payment.Method
	ExternalRef string
}

// Confirmation is the confirmed payment and the loan as it stands afterwards.
type Confirmation struct {
	Payment *payment.Payment `json:"payment"`
	Loan    *loan.Loan       `json:"loan"`
}

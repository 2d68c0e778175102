package delinquency

import (
	"time"

	"motofinance-backend/internal/domain/loan"
)

// AtRiskLoan is an active loan with its derived standing.
type AtRiskLoan struct {
	*loan.Loan
	Standing loan.Standing `json:"standing"`
}

// ReconcileReport summarises one missed-payment reconciliation pass.
type ReconcileReport struct {
	AsOf        time.Time `json:"as_of"`
	Scanned     int       `json:"scanned"`
	Updated     int       `json:"updated"`
	MissedAdded int       `json:"missed_added"`
	Failed      int       `json:"failed"`
}

package origination

import (
	"motofinance-backend/internal/domain/asset"
	"motofinance-backend/internal/domain/client"
	"motofinance-backend/internal/domain/loan"

	"github.com/shopspring/decimal"
)

// ApplicationInput names an existing client or carries a new one, and names an
// available asset or describes a new one. Exactly one of each pair must be set.
type ApplicationInput struct {
	InquiryID string

	ClientID string
	Client   *client.Profile

	AssetID  string
	NewAsset *NewAssetInput

	BranchID            *uint64
	DownPayment         decimal.Decimal
	InterestRatePercent decimal.Decimal
	DurationMonths      int
	Frequency           loan.Frequency
}

type NewAssetInput struct {
	Kind        asset.Kind
	Make        string
	Model       string
	Price       decimal.Decimal
	ProductID   *uint64
	Identifiers *asset.Identifiers
}

// Application is the result of a successful submission.
type Application struct {
	Loan    *loan.Loan     `json:"loan"`
	Client  *client.Client `json:"client"`
	Asset   *asset.Asset   `json:"asset"`
	Inquiry string         `json:"inquiry_id,omitempty"`
}

// LoanView is a loan with its derived standing.
type LoanView struct {
	*loan.Loan
	Standing loan.Standing `json:"standing"`
}

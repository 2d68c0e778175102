package inquiry

import (
	"motofinance-backend/internal/domain/client"
	"motofinance-backend/internal/domain/inquiry"

	"github.com/shopspring/decimal"
)

type SubmitInput struct {
	FullName        string
	Phone           string
	Email           string
	ProductInterest string
	ProductID       *uint64
	EstimatedIncome decimal.Decimal
	SaleType        inquiry.SaleType
	BranchID        *uint64
	Notes           string
}

type CashSaleInput struct {
	AssetID string // public id of an available asset
	Client  client.Profile
}

type CashSaleResult struct {
	Inquiry *inquiry.Inquiry `json:"inquiry"`
	Client  *client.Client   `json:"client"`
	AssetID string           `json:"asset_id"`
}

package client

import (
	"strings"
	"time"

	"motofinance-backend/internal/domain/apperr"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound           = apperr.NotFound("client not found")
	ErrAssetAlreadyLinked = apperr.Precondition("client already has a linked asset")
)

// Client is a registered borrower or cash buyer. At most one asset is linked at a time.
type Client struct {
	ID                    uint64          `gorm:"primaryKey;column:id" json:"-"`
	PublicID              string          `gorm:"column:public_id;size:32;not null;uniqueIndex:ux_clients_public_id" json:"id"`
	FullName              string          `gorm:"column:full_name;size:128;not null" json:"full_name"`
	NationalID            string          `gorm:"column:national_id;size:32;index" json:"national_id"`
	Phone                 string          `gorm:"column:phone;size:32;not null" json:"phone"`
	Email                 string          `gorm:"column:email;size:128" json:"email,omitempty"`
	Address               string          `gorm:"column:address;type:text" json:"address"`
	District              string          `gorm:"column:district;size:64" json:"district,omitempty"`
	NextOfKinName         string          `gorm:"column:next_of_kin_name;size:128" json:"next_of_kin_name"`
	NextOfKinPhone        string          `gorm:"column:next_of_kin_phone;size:32" json:"next_of_kin_phone"`
	NextOfKinRelationship string          `gorm:"column:next_of_kin_relationship;size:32" json:"next_of_kin_relationship,omitempty"`
	Employer              string          `gorm:"column:employer;size:128" json:"employer,omitempty"`
	Occupation            string          `gorm:"column:occupation;size:64" json:"occupation,omitempty"`
	MonthlyIncome         decimal.Decimal `gorm:"column:monthly_income;type:decimal(18,2);not null;default:0" json:"monthly_income"`
	Latitude              *float64        `gorm:"column:latitude" json:"latitude,omitempty"`
	Longitude             *float64        `gorm:"column:longitude" json:"longitude,omitempty"`
	BranchID              *uint64         `gorm:"column:branch_id" json:"branch_id,omitempty"`
	AssetID               *uint64         `gorm:"column:asset_id;index" json:"-"`
	CreatedBy             string          `gorm:"column:created_by;size:32" json:"created_by"`
	CreatedAt             time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt             gorm.DeletedAt  `gorm:"column:deleted_at;index" json:"-"`
}

func (Client) TableName() string { return "clients" }

// Profile is the client data captured at intake.
type Profile struct {
	FullName              string
	NationalID            string
	Phone                 string
	Email                 string
	Address               string
	District              string
	NextOfKinName         string
	NextOfKinPhone        string
	NextOfKinRelationship string
	Employer              string
	Occupation            string
	MonthlyIncome         decimal.Decimal
	Latitude              *float64
	Longitude             *float64
	BranchID              *uint64
}

func (p Profile) Validate() error {
	switch {
	case strings.TrimSpace(p.FullName) == "":
		return apperr.Validation("client full name is required")
	case strings.TrimSpace(p.Phone) == "":
		return apperr.Validation("client phone is required")
	case strings.TrimSpace(p.NextOfKinName) == "" || strings.TrimSpace(p.NextOfKinPhone) == "":
		return apperr.Validation("next of kin name and phone are required")
	case p.MonthlyIncome.IsNegative():
		return apperr.Validation("monthly income must not be negative")
	}
	return nil
}

// NewClient builds an unsaved client from p, optionally linked to assetID.
func (p Profile) NewClient(publicID, createdBy string, assetID *uint64) *Client {
	return &Client{
		PublicID:              publicID,
		FullName:              strings.TrimSpace(p.FullName),
		NationalID:            strings.TrimSpace(p.NationalID),
		Phone:                 strings.TrimSpace(p.Phone),
		Email:                 strings.TrimSpace(p.Email),
		Address:               p.Address,
		District:              p.District,
		NextOfKinName:         strings.TrimSpace(p.NextOfKinName),
		NextOfKinPhone:        strings.TrimSpace(p.NextOfKinPhone),
		NextOfKinRelationship: p.NextOfKinRelationship,
		Employer:              p.Employer,
		Occupation:            p.Occupation,
		MonthlyIncome:         p.MonthlyIncome,
		Latitude:              p.Latitude,
		Longitude:             p.Longitude,
		BranchID:              p.BranchID,
		AssetID:               assetID,
		CreatedBy:             createdBy,
	}
}

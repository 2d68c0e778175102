package asset

import (
	"strings"
	"time"

	"motofinance-backend/internal/domain/apperr"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusAvailable   Status = "available"
	StatusAssigned    Status = "assigned"
	StatusTransferred Status = "transferred"
	StatusRecovered   Status = "recovered"
)

type Kind string

const (
	KindMotorcycle Kind = "motorcycle"
	KindTricycle   Kind = "tricycle"
)

var (
	ErrNotFound     = apperr.NotFound("asset not found")
	ErrNotAvailable = apperr.Precondition("asset is not available for assignment")
	ErrStateChanged = apperr.Precondition("asset status changed concurrently or is not eligible")
)

type Asset struct {
	ID                 uint64          `gorm:"primaryKey;column:id" json:"-"`
	PublicID           string          `gorm:"column:public_id;size:32;not null;uniqueIndex:ux_assets_public_id" json:"id"`
	Kind               Kind            `gorm:"column:kind;size:16;not null" json:"kind"`
	Make               string          `gorm:"column:make;size:64" json:"make"`
	Model              string          `gorm:"column:model;size:64" json:"model"`
	ChassisNumber      *string         `gorm:"column:chassis_number;size:64;uniqueIndex:ux_assets_chassis" json:"chassis_number,omitempty"`
	EngineNumber       *string         `gorm:"column:engine_number;size:64" json:"engine_number,omitempty"`
	RegistrationNumber *string         `gorm:"column:registration_number;size:32;uniqueIndex:ux_assets_registration" json:"registration_number,omitempty"`
	GPSDeviceID        *string         `gorm:"column:gps_device_id;size:64" json:"gps_device_id,omitempty"`
	Price              decimal.Decimal `gorm:"column:price;type:decimal(18,2);not null" json:"price"`
	ProductID          *uint64         `gorm:"column:product_id" json:"product_id,omitempty"`
	BranchID           *uint64         `gorm:"column:branch_id" json:"branch_id,omitempty"`
	Status             Status          `gorm:"column:status;size:16;not null;default:'available';index" json:"status"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"column:deleted_at;index" json:"-"`
}

func (Asset) TableName() string { return "assets" }

func present(s *string) bool { return s != nil && strings.TrimSpace(*s) != "" }

// HasPhysicalIdentifiers reports whether chassis and registration are both recorded.
func (a *Asset) HasPhysicalIdentifiers() bool {
	return present(a.ChassisNumber) && present(a.RegistrationNumber)
}

// Identifiers are the physical markings recorded once a unit is allocated to a loan.
type Identifiers struct {
	ChassisNumber      string
	EngineNumber       string
	RegistrationNumber string
	GPSDeviceID        string
}

func (i Identifiers) Validate() error {
	if strings.TrimSpace(i.ChassisNumber) == "" || strings.TrimSpace(i.RegistrationNumber) == "" {
		return apperr.Validation("chassis and registration numbers are required")
	}
	return nil
}

package http

import (
	"motofinance-backend/internal/domain/asset"
	"motofinance-backend/internal/domain/client"

	"github.com/shopspring/decimal"
)

type clientReq struct {
	FullName              string          `json:"full_name"                validate:"required,max=128"`
	NationalID            string          `json:"national_id"              validate:"max=32"`
	Phone                 string          `json:"phone"                    validate:"required,max=32,phone"`
	Email                 string          `json:"email"                    validate:"omitempty,email"`
	Address               string          `json:"address"                  validate:"max=255"`
	District              string          `json:"district"                 validate:"max=64"`
	NextOfKinName         string          `json:"next_of_kin_name"         validate:"required,max=128"`
	NextOfKinPhone        string          `json:"next_of_kin_phone"        validate:"required,max=32,phone"`
	NextOfKinRelationship string          `json:"next_of_kin_relationship" validate:"max=32"`
	Employer              string          `json:"employer"                 validate:"max=128"`
	Occupation            string          `json:"occupation"               validate:"max=64"`
	MonthlyIncome         decimal.Decimal `json:"monthly_income"           validate:"gte=0,dec2"`
	Latitude              *float64        `json:"latitude"                 validate:"omitempty,gte=-90,lte=90"`
	Longitude             *float64        `json:"longitude"                validate:"omitempty,gte=-180,lte=180"`
	BranchID              *uint64         `json:"branch_id"`
}

func (r clientReq) profile() client.Profile {
	return client.Profile{
		FullName:              r.FullName,
		NationalID:            r.NationalID,
		Phone:                 r.Phone,
		Email:                 r.Email,
		Address:               r.Address,
		District:              r.District,
		NextOfKinName:         r.NextOfKinName,
		NextOfKinPhone:        r.NextOfKinPhone,
		NextOfKinRelationship: r.NextOfKinRelationship,
		Employer:              r.Employer,
		Occupation:            r.Occupation,
		MonthlyIncome:         r.MonthlyIncome,
		Latitude:              r.Latitude,
		Longitude:             r.Longitude,
		BranchID:              r.BranchID,
	}
}

type identifiersReq struct {
	ChassisNumber      string `json:"chassis_number"      validate:"required,max=64"`
	EngineNumber       string `json:"engine_number"       validate:"max=64"`
	RegistrationNumber string `json:"registration_number" validate:"required,max=32"`
	GPSDeviceID        string `json:"gps_device_id"       validate:"max=64"`
}

func (r identifiersReq) identifiers() asset.Identifiers {
	return asset.Identifiers(r)
}

type newAssetReq struct {
	Kind        string          `json:"kind"        validate:"required,oneof=motorcycle tricycle"`
	Make        string          `json:"make"        validate:"max=64"`
	Model       string          `json:"model"       validate:"max=64"`
	Price       decimal.Decimal `json:"price"       validate:"gt=0,dec2"`
	ProductID   *uint64         `json:"product_id"`
	Identifiers *identifiersReq `json:"identifiers"`
}

type notesReq struct {
	Notes string `json:"notes" validate:"max=2000"`
}

type reasonReq struct {
	Reason string `json:"reason" validate:"required,max=2000"`
}

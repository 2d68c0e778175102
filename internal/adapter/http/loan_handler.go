package http

import (
	"net/http"

	"motofinance-backend/internal/adapter/middleware"
	"motofinance-backend/internal/domain/asset"
	"motofinance-backend/internal/domain/loan"
	"motofinance-backend/internal/usecase/origination"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LoanHandler struct{ uc *origination.Usecase }

func NewLoanHandler(uc *origination.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type quoteReq struct {
	Price          decimal.Decimal `json:"price"           validate:"gt=0,dec2"`
	DownPayment    decimal.Decimal `json:"down_payment"    validate:"gte=0,dec2"`
	InterestRate   decimal.Decimal `json:"interest_rate"   validate:"gte=0,lte=100,dec2"`
	DurationMonths int             `json:"duration_months" validate:"gt=0,lte=120"`
	Frequency      string          `json:"frequency"       validate:"required,oneof=daily weekly"`
}

type createLoanReq struct {
	InquiryID      string          `json:"inquiry_id"      validate:"omitempty,hex32"`
	ClientID       string          `json:"client_id"       validate:"omitempty,hex32"`
	Client         *clientReq      `json:"client"`
	AssetID        string          `json:"asset_id"        validate:"omitempty,hex32"`
	Asset          *newAssetReq    `json:"asset"`
	BranchID       *uint64         `json:"branch_id"`
	DownPayment    decimal.Decimal `json:"down_payment"    validate:"gte=0,dec2"`
	InterestRate   decimal.Decimal `json:"interest_rate"   validate:"gte=0,lte=100,dec2"`
	DurationMonths int             `json:"duration_months" validate:"gt=0,lte=120"`
	Frequency      string          `json:"frequency"       validate:"required,oneof=daily weekly"`
}

func (r createLoanReq) input() origination.ApplicationInput {
	in := origination.ApplicationInput{
		InquiryID:           r.InquiryID,
		ClientID:            r.ClientID,
		AssetID:             r.AssetID,
		BranchID:            r.BranchID,
		DownPayment:         r.DownPayment,
		InterestRatePercent: r.InterestRate,
		DurationMonths:      r.DurationMonths,
		Frequency:           loan.Frequency(r.Frequency),
	}
	if r.Client != nil {
		p := r.Client.profile()
		in.Client = &p
	}
	if a := r.Asset; a != nil {
		in.NewAsset = &origination.NewAssetInput{
			Kind:      asset.Kind(a.Kind),
			Make:      a.Make,
			Model:     a.Model,
			Price:     a.Price,
			ProductID: a.ProductID,
		}
		if a.Identifiers != nil {
			ids := a.Identifiers.identifiers()
			in.NewAsset.Identifiers = &ids
		}
	}
	return in
}

func (h *LoanHandler) Quote(c echo.Context) error {
	var req quoteReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	q, err := h.uc.Quote(c.Request().Context(), loan.Terms{
		Price:               req.Price,
		DownPayment:         req.DownPayment,
		InterestRatePercent: req.InterestRate,
		DurationMonths:      req.DurationMonths,
		Frequency:           loan.Frequency(req.Frequency),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, q)
}

func (h *LoanHandler) Create(c echo.Context) error {
	var req createLoanReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	app, err := h.uc.CreateApplication(c.Request().Context(), middleware.Actor(c).StaffID, req.input())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, app)
}

func (h *LoanHandler) Get(c echo.Context) error {
	v, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *LoanHandler) Schedule(c echo.Context) error {
	items, err := h.uc.Schedule(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

func (h *LoanHandler) StartReview(c echo.Context) error {
	return h.respond(c)(h.uc.StartReview(c.Request().Context(), c.Param("loan_id")))
}

func (h *LoanHandler) CompleteKYC(c echo.Context) error {
	return h.respond(c)(h.uc.CompleteKYC(c.Request().Context(), c.Param("loan_id")))
}

func (h *LoanHandler) RecordAssetIdentifiers(c echo.Context) error {
	var req identifiersReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	return h.respond(c)(h.uc.RecordAssetIdentifiers(c.Request().Context(), c.Param("loan_id"), req.identifiers()))
}

func (h *LoanHandler) Approve(c echo.Context) error {
	return h.respond(c)(h.uc.Approve(c.Request().Context(), c.Param("loan_id"), middleware.Actor(c).StaffID))
}

func (h *LoanHandler) Reject(c echo.Context) error {
	var req reasonReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	return h.respond(c)(h.uc.Reject(c.Request().Context(), c.Param("loan_id"), req.Reason))
}

func (h *LoanHandler) respond(c echo.Context) func(*loan.Loan, error) error {
	return func(l *loan.Loan, err error) error {
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, l)
	}
}

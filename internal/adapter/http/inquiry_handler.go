package http

import (
	"net/http"

	"motofinance-backend/internal/adapter/middleware"
	"motofinance-backend/internal/domain/inquiry"
	ucInquiry "motofinance-backend/internal/usecase/inquiry"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type InquiryHandler struct{ uc *ucInquiry.Usecase }

func NewInquiryHandler(uc *ucInquiry.Usecase) *InquiryHandler { return &InquiryHandler{uc: uc} }

type submitInquiryReq struct {
	FullName        string          `json:"full_name"        validate:"required,max=128"`
	Phone           string          `json:"phone"            validate:"required,max=32,phone"`
	Email           string          `json:"email"            validate:"omitempty,email"`
	ProductInterest string          `json:"product_interest" validate:"max=128"`
	ProductID       *uint64         `json:"product_id"`
	EstimatedIncome decimal.Decimal `json:"estimated_income" validate:"gte=0,dec2"`
	SaleType        string          `json:"sale_type"        validate:"required,oneof=cash loan"`
	BranchID        *uint64         `json:"branch_id"`
	Notes           string          `json:"notes"            validate:"max=2000"`
}

type advanceInquiryReq struct {
	Status string `json:"status" validate:"required,oneof=contacted qualified closed"`
	Notes  string `json:"notes"  validate:"max=2000"`
}

type cashSaleReq struct {
	AssetID string    `json:"asset_id" validate:"required,hex32"`
	Client  clientReq `json:"client"`
}

// Submit is public: prospects reach it without a staff identity.
func (h *InquiryHandler) Submit(c echo.Context) error {
	var req submitInquiryReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	q, err := h.uc.Submit(c.Request().Context(), ucInquiry.SubmitInput{
		FullName:        req.FullName,
		Phone:           req.Phone,
		Email:           req.Email,
		ProductInterest: req.ProductInterest,
		ProductID:       req.ProductID,
		EstimatedIncome: req.EstimatedIncome,
		SaleType:        inquiry.SaleType(req.SaleType),
		BranchID:        req.BranchID,
		Notes:           req.Notes,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, q)
}

func (h *InquiryHandler) Get(c echo.Context) error {
	q, err := h.uc.Get(c.Request().Context(), c.Param("inquiry_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, q)
}

func (h *InquiryHandler) Advance(c echo.Context) error {
	var req advanceInquiryReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	q, err := h.uc.Advance(c.Request().Context(), c.Param("inquiry_id"), middleware.Actor(c).StaffID, inquiry.Status(req.Status), req.Notes)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, q)
}

func (h *InquiryHandler) CashSale(c echo.Context) error {
	var req cashSaleReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	res, err := h.uc.CompleteCashSale(c.Request().Context(), c.Param("inquiry_id"), middleware.Actor(c).StaffID, ucInquiry.CashSaleInput{
		AssetID: req.AssetID,
		Client:  req.Client.profile(),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

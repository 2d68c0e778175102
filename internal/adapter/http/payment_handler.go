package http

import (
	"net/http"

	"motofinance-backend/internal/adapter/middleware"
	"motofinance-backend/internal/domain/payment"
	ucPayment "motofinance-backend/internal/usecase/payment"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct{ uc *ucPayment.Usecase }

func NewPaymentHandler(uc *ucPayment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type recordPaymentReq struct {
	Amount      decimal.Decimal `json:"amount"       validate:"gt=0,dec2"`
	Method      string          `json:"method"       validate:"required,oneof=cash mobile_money bank_transfer card"`
	ExternalRef string          `json:"external_ref" validate:"max=128"`
}

func (h *PaymentHandler) Record(c echo.Context) error {
	var req recordPaymentReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	p, err := h.uc.Record(c.Request().Context(), c.Param("loan_id"), middleware.Actor(c).StaffID, ucPayment.RecordInput{
		Amount:      req.Amount,
		Method:      payment.Method(req.Method),
		ExternalRef: req.ExternalRef,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *PaymentHandler) ListByLoan(c echo.Context) error {
	items, err := h.uc.ListByLoan(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

func (h *PaymentHandler) Confirm(c echo.Context) error {
	res, err := h.uc.Confirm(c.Request().Context(), c.Param("payment_id"), middleware.Actor(c).StaffID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *PaymentHandler) Reject(c echo.Context) error {
	var req reasonReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	p, err := h.uc.Reject(c.Request().Context(), c.Param("payment_id"), middleware.Actor(c).StaffID, req.Reason)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PaymentHandler) Reconcile(c echo.Context) error {
	p, err := h.uc.Reconcile(c.Request().Context(), c.Param("payment_id"), middleware.Actor(c).StaffID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

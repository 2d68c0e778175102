package http

import (
	"net/http"

	"motofinance-backend/internal/usecase/delinquency"

	"github.com/labstack/echo/v4"
)

type RecoveryHandler struct{ uc *delinquency.Usecase }

func NewRecoveryHandler(uc *delinquency.Usecase) *RecoveryHandler { return &RecoveryHandler{uc: uc} }

func (h *RecoveryHandler) AtRisk(c echo.Context) error {
	items, err := h.uc.ListAtRisk(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

func (h *RecoveryHandler) Initiate(c echo.Context) error {
	var req notesReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	l, err := h.uc.InitiateRecovery(c.Request().Context(), c.Param("loan_id"), req.Notes)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *RecoveryHandler) MarkRecovered(c echo.Context) error {
	var req notesReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	l, err := h.uc.MarkRecovered(c.Request().Context(), c.Param("loan_id"), req.Notes)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *RecoveryHandler) ReleaseAsset(c echo.Context) error {
	a, err := h.uc.ReleaseAsset(c.Request().Context(), c.Param("asset_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

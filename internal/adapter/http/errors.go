package http

import (
	"errors"
	"net/http"

	"motofinance-backend/internal/domain/apperr"
	"motofinance-backend/internal/infrastructure/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var errBadBody = errors.New("invalid body")

type invalidRequest struct{ err error }

func (e invalidRequest) Error() string { return "validation failed" }

// bind decodes the body into req and validates it.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errBadBody
	}
	if err := c.Validate(req); err != nil {
		return invalidRequest{err: err}
	}
	return nil
}

// fail writes err as an ErrorResponse with the status its kind maps to.
func fail(c echo.Context, err error) error {
	var inv invalidRequest
	switch {
	case errors.Is(err, errBadBody):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.As(err, &inv):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(inv.err),
		})
	}

	log := logger.FromContext(c.Request().Context())
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case apperr.KindPrecondition:
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case apperr.KindNotFound:
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case apperr.KindForbidden:
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case apperr.KindConsistency:
		log.Error("consistency violation surfaced to caller", zap.String("path", c.Path()), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	default:
		log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

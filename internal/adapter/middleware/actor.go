package middleware

import (
	"net/http"
	"strings"

	"motofinance-backend/internal/domain/access"
	"motofinance-backend/pkg/id"

	"github.com/labstack/echo/v4"
)

const (
	HeaderStaffID   = "Ax-Staff-Id"
	HeaderStaffRole = "Ax-Staff-Role"

	actorKey = "ax.actor"
)

// actorFromRequest reads the identity headers set by the upstream identity provider.
func actorFromRequest(req *http.Request) (access.Actor, bool) {
	staffID := strings.TrimSpace(req.Header.Get(HeaderStaffID))
	role := strings.ToLower(strings.TrimSpace(req.Header.Get(HeaderStaffRole)))
	if !id.Valid(staffID) || role == "" {
		return access.Actor{}, false
	}
	return access.Actor{StaffID: staffID, Role: access.Role(role)}, true
}

// RequireCapability rejects the request before the handler runs unless the acting staff
// member's role grants want. The resolved actor is stored on the context.
func RequireCapability(policy access.Policy, want access.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := actorFromRequest(c.Request())
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing or invalid " + HeaderStaffID + "/" + HeaderStaffRole})
			}
			if err := policy.Authorize(actor, want); err != nil {
				return c.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
			}
			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

// Actor returns the actor resolved by RequireCapability, or the zero value.
func Actor(c echo.Context) access.Actor {
	a, _ := c.Get(actorKey).(access.Actor)
	return a
}

package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-api/internal/core/authz"
	"github.com/taskhub/task-api/internal/core/domain"
	"github.com/taskhub/task-api/internal/pkg/metrics"
)

// Require gates a route on one operation of the authorization policy. It
// runs after Auth, reads the role from the context and denies before any
// handler or store work happens.
func Require(op authz.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxRole).(domain.Role)
			if !ok || !authz.Allowed(role, op) {
				metrics.AuthDeniedTotal.WithLabelValues(string(op)).Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

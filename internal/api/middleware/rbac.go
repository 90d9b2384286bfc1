package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC gates a route group on the role claim Auth stored in context. The
// admin surface is the only protected group here, so roles is typically just
// domain.RoleAdmin; the variadic form keeps room for a read-only role later.
func RBAC(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
		}
	}
}

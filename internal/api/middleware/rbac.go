package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/mobicorp/storefront/internal/core/domain"
)

// RBAC lets the request through only when the role set by RequireSession is
// one of allowedRoles. The server enforces its own rules; this only hides
// actions the operator's role cannot use.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if _, ok := allowed[role]; !ok {
				return fmt.Errorf("role %q: %w", role, domain.ErrForbidden)
			}
			return next(c)
		}
	}
}

package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/mobicorp/storefront/internal/core/domain"
)

// Context keys set by RequireSession.
const (
	CtxUser = "user"
	CtxRole = "role"
)

// SessionReader exposes the current session.
type SessionReader interface {
	Current() domain.Session
}

// RequireSession rejects requests while the operator is not logged in and
// injects the user and role into the echo context.
func RequireSession(sessions SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := sessions.Current()
			if !s.Authenticated() {
				return fmt.Errorf("%s %s: %w", c.Request().Method, c.Path(), domain.ErrNotAuthenticated)
			}

			c.Set(CtxUser, s.User)
			c.Set(CtxRole, s.User.Role)
			return next(c)
		}
	}
}

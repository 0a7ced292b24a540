package middleware

import (
	"context"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/mobicorp/storefront/internal/core/domain"
	"github.com/mobicorp/storefront/internal/core/ports"
)

type navigationKey struct{}

// Navigation holds the redirect a request earned while its handler ran.
type Navigation struct {
	mu     sync.Mutex
	target string
}

func (n *Navigation) Redirect(to string) {
	n.mu.Lock()
	n.target = to
	n.mu.Unlock()
}

// Target returns the pending redirect, or "" if none.
func (n *Navigation) Target() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.target
}

// NavigationFrom returns the holder installed by Locate, or nil.
func NavigationFrom(ctx context.Context) *Navigation {
	nav, _ := ctx.Value(navigationKey{}).(*Navigation)
	return nav
}

// Locate stamps every request context with the request path as the current
// location and a fresh Navigation holder.
func Locate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := ports.WithLocation(req.Context(), req.URL.Path)
			ctx = context.WithValue(ctx, navigationKey{}, &Navigation{})
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}

// Navigator is the console's answer to "go to login": it records a redirect
// on the request being served. Outside a request it does nothing.
func Navigator() ports.Navigator {
	return ports.NavigatorFunc(func(ctx context.Context, _ string) {
		if nav := NavigationFrom(ctx); nav != nil {
			nav.Redirect(domain.LoginLocation)
		}
	})
}

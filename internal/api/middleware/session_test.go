package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mobicorp/storefront/internal/core/domain"
	"github.com/mobicorp/storefront/internal/core/ports"
)

type stubSessions struct {
	session domain.Session
}

func (s stubSessions) Current() domain.Session { return s.session }

func TestRequireSession_Authenticated(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/products", nil), httptest.NewRecorder())

	user := &domain.User{ID: 1, Role: domain.RoleSales}
	mw := RequireSession(stubSessions{domain.Session{User: user, Token: "t", State: domain.SessionAuthenticated}})
	err := mw(func(c echo.Context) error {
		if c.Get(CtxRole) != domain.RoleSales || c.Get(CtxUser) != user {
			t.Fatalf("expected user and role in context")
		}
		return nil
	})(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequireSession_Rejects(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/products", nil), httptest.NewRecorder())

	mw := RequireSession(stubSessions{domain.Session{Token: "t", State: domain.SessionLoading}})
	err := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})(c)
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestLocate_InstallsLocationAndNavigation(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/prices?product_id=1", nil), httptest.NewRecorder())

	var ctx context.Context
	err := Locate()(func(c echo.Context) error {
		ctx = c.Request().Context()
		return nil
	})(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if loc := ports.LocationFrom(ctx); loc != "/prices" {
		t.Fatalf("expected location /prices, got %q", loc)
	}
	nav := NavigationFrom(ctx)
	if nav == nil || nav.Target() != "" {
		t.Fatalf("expected empty navigation holder, got %+v", nav)
	}

	Navigator().ToLogin(ctx, "/prices")
	if nav.Target() != domain.LoginLocation {
		t.Fatalf("expected redirect to login, got %q", nav.Target())
	}

	// Outside a request the navigator is a no-op.
	Navigator().ToLogin(context.Background(), "/prices")
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mobicorp/storefront/internal/core/domain"
	"github.com/mobicorp/storefront/internal/pkg/validate"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validate.New()
	return e
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func TestSessionHandler_Login_Success(t *testing.T) {
	e := newEcho()
	stub := &stubSessionService{
		loginFn: func(email, password string) error {
			if email != "ana@mobicorp.bo" || password != "pw" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return nil
		},
	}
	h := NewSessionHandler(stub)

	form := url.Values{"email": {"ana@mobicorp.bo"}, "password": {"pw"}}
	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/login", form), rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != HomeLocation {
		t.Fatalf("expected 303 to %s, got %d %q", HomeLocation, rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestSessionHandler_Login_Rejected(t *testing.T) {
	e := newEcho()
	stub := &stubSessionService{
		loginFn: func(string, string) error {
			return &domain.APIError{Status: http.StatusUnauthorized, Detail: "Incorrect email or password"}
		},
	}
	h := NewSessionHandler(stub)

	body := strings.NewReader(`{"email":"ana@mobicorp.bo","password":"bad"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.Login(c)
	var alert *domain.UserAlert
	if !errors.As(err, &alert) || alert.Message != "Incorrect email or password" {
		t.Fatalf("expected alert with server detail, got %v", err)
	}
}

func TestSessionHandler_Login_Invalid(t *testing.T) {
	e := newEcho()
	h := NewSessionHandler(&stubSessionService{
		loginFn: func(string, string) error {
			t.Fatal("service must not be called")
			return nil
		},
	})

	c := e.NewContext(formRequest(http.MethodPost, "/login", url.Values{"email": {"not-an-email"}}), httptest.NewRecorder())

	err := h.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestSessionHandler_Register_PassesRole(t *testing.T) {
	e := newEcho()
	var gotRole string
	h := NewSessionHandler(&stubSessionService{
		registerFn: func(email, password, fullName, role string) error {
			if fullName != "Ana Pérez" {
				t.Fatalf("unexpected full name %q", fullName)
			}
			gotRole = role
			return nil
		},
	})

	form := url.Values{"email": {"ana@mobicorp.bo"}, "password": {"pw"}, "full_name": {"Ana Pérez"}}
	rec := httptest.NewRecorder()
	if err := h.Register(e.NewContext(formRequest(http.MethodPost, "/register", form), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if gotRole != "" {
		t.Fatalf("expected empty role to reach the service, got %q", gotRole)
	}

	form.Set("role", "owner")
	err := h.Register(e.NewContext(formRequest(http.MethodPost, "/register", form), httptest.NewRecorder()))
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown role, got %v", err)
	}
}

func TestSessionHandler_Register_Failure(t *testing.T) {
	e := newEcho()
	h := NewSessionHandler(&stubSessionService{
		registerFn: func(string, string, string, string) error { return errors.New("connection refused") },
	})

	form := url.Values{"email": {"ana@mobicorp.bo"}, "password": {"pw"}, "full_name": {"Ana"}}
	err := h.Register(e.NewContext(formRequest(http.MethodPost, "/register", form), httptest.NewRecorder()))
	var alert *domain.UserAlert
	if !errors.As(err, &alert) || alert.Message != RegisterFailed {
		t.Fatalf("expected fallback alert, got %v", err)
	}
}

func TestSessionHandler_Logout(t *testing.T) {
	e := newEcho()
	stub := &stubSessionService{}
	h := NewSessionHandler(stub)

	rec := httptest.NewRecorder()
	if err := h.Logout(e.NewContext(httptest.NewRequest(http.MethodPost, "/logout", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !stub.loggedOut {
		t.Fatal("expected session to be logged out")
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != domain.LoginLocation {
		t.Fatalf("expected 303 to /login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestSessionHandler_Me(t *testing.T) {
	e := newEcho()
	h := NewSessionHandler(&stubSessionService{session: domain.Session{
		User:  &domain.User{ID: 3, Email: "ana@mobicorp.bo", FullName: "Ana", Role: domain.RoleAdmin, IsActive: true},
		Token: "opaque",
		State: domain.SessionAuthenticated,
	}})

	rec := httptest.NewRecorder()
	if err := h.Me(e.NewContext(httptest.NewRequest(http.MethodGet, "/me", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "ana@mobicorp.bo" || resp["role"] != "admin" || resp["state"] != "authenticated" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

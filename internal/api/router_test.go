package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/mobicorp/storefront/internal/api/handler"
	"github.com/mobicorp/storefront/internal/api/middleware"
	"github.com/mobicorp/storefront/internal/core/domain"
	"github.com/mobicorp/storefront/internal/core/service"
	"github.com/mobicorp/storefront/internal/infrastructure/httpclient"
	"github.com/mobicorp/storefront/internal/infrastructure/tokenstore"
	"github.com/mobicorp/storefront/internal/pkg/validate"
	"github.com/mobicorp/storefront/internal/view"
)

type consoleFixture struct {
	e        *echo.Echo
	store    *tokenstore.Memory
	sessions *service.SessionService
	revoked  *atomic.Bool
}

// newConsole wires the console against a fake storefront API that accepts
// "good-token" until revoked.
func newConsole(t *testing.T) *consoleFixture {
	t.Helper()
	revoked := &atomic.Bool{}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorized := r.Header.Get("Authorization") == "Bearer good-token" && !revoked.Load()
		switch r.URL.Path {
		case "/api/auth/login":
			_, _ = io.WriteString(w, `{"access_token":"good-token","token_type":"bearer"}`)
			return
		case "/openapi.json":
			_, _ = io.WriteString(w, `{}`)
			return
		}
		if !authorized {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"Could not validate credentials"}`)
			return
		}
		switch r.URL.Path {
		case "/api/auth/me":
			_, _ = io.WriteString(w, `{"id":1,"email":"ana@mobicorp.bo","full_name":"Ana","role":"sales","is_active":true}`)
		case "/api/products":
			_, _ = io.WriteString(w, `[{"id":1,"name":"Silla Ejecutiva","category":"Sillas Ejecutivas","price":150.5,"stock":4},
				{"id":2,"name":"Escritorio","category":"Escritorios","price":null,"stock":1}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(upstream.Close)

	client, err := httpclient.New(httpclient.Config{BaseURL: upstream.URL})
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	store := tokenstore.NewMemory()
	sessions := service.NewSessionService(client, store, middleware.Navigator(), zerolog.Nop())
	authorized := client.Authorized(sessions, sessions)

	e := NewRouter(Deps{
		Sessions:   sessions,
		Catalog:    service.NewCatalogService(authorized, validate.New(), zerolog.Nop()),
		Prices:     service.NewPriceService(authorized, authorized, nil, zerolog.Nop()),
		Health:     map[string]handler.Pinger{"storefront_api": client, "token_store": store},
		Log:        zerolog.Nop(),
		Registerer: prometheus.NewRegistry(),
	})
	return &consoleFixture{e: e, store: store, sessions: sessions, revoked: revoked}
}

func (f *consoleFixture) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func TestConsole_SessionLifecycle(t *testing.T) {
	f := newConsole(t)

	rec := f.do(http.MethodGet, "/products", nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != domain.LoginLocation {
		t.Fatalf("expected redirect to login without a session, got %d", rec.Code)
	}

	if rec := f.do(http.MethodGet, domain.LoginLocation, nil); rec.Code != http.StatusOK {
		t.Fatalf("expected login view to render, got %d", rec.Code)
	}

	rec = f.do(http.MethodPost, domain.LoginLocation, url.Values{"email": {"ana@mobicorp.bo"}, "password": {"pw"}})
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/products" {
		t.Fatalf("expected redirect to products after login, got %d %s", rec.Code, rec.Body.String())
	}
	if tok, _ := f.store.Load(context.Background()); tok != "good-token" {
		t.Fatalf("expected token persisted, got %q", tok)
	}

	rec = f.do(http.MethodGet, "/products?q=sill", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var catalog view.CatalogView
	if err := json.Unmarshal(rec.Body.Bytes(), &catalog); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(catalog.Items) != 1 || catalog.Items[0].Price != "Bs. 150.50" {
		t.Fatalf("unexpected catalog: %+v", catalog)
	}

	f.revoked.Store(true)
	rec = f.do(http.MethodGet, "/prices", nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != domain.LoginLocation {
		t.Fatalf("expected redirect to login after 401, got %d", rec.Code)
	}
	if tok, _ := f.store.Load(context.Background()); tok != "" {
		t.Fatalf("expected token cleared after 401, got %q", tok)
	}
	if f.sessions.Current().State != domain.SessionUnauthenticated {
		t.Fatalf("expected unauthenticated session, got %s", f.sessions.Current().State)
	}
}

func TestConsole_SuggestWithoutSelection(t *testing.T) {
	f := newConsole(t)
	if rec := f.do(http.MethodPost, domain.LoginLocation, url.Values{"email": {"ana@mobicorp.bo"}, "password": {"pw"}}); rec.Code != http.StatusSeeOther {
		t.Fatalf("login failed: %d", rec.Code)
	}

	rec := f.do(http.MethodPost, "/prices/suggest", url.Values{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a product, got %d", rec.Code)
	}
}

func TestConsole_OpsRoutes(t *testing.T) {
	f := newConsole(t)

	if rec := f.do(http.MethodGet, "/health", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected liveness 200, got %d", rec.Code)
	}
	if rec := f.do(http.MethodGet, "/health/ready", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected readiness 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := f.do(http.MethodGet, "/metrics", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected metrics 200, got %d", rec.Code)
	}
}

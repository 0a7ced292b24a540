package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/mobicorp/storefront/internal/api/handler"
	"github.com/mobicorp/storefront/internal/api/middleware"
	"github.com/mobicorp/storefront/internal/core/domain"
	"github.com/mobicorp/storefront/internal/core/ports"
	"github.com/mobicorp/storefront/internal/pkg/validate"

	_ "github.com/mobicorp/storefront/docs"
)

// Deps are the collaborators the console routes are built from.
type Deps struct {
	Sessions ports.SessionService
	Catalog  ports.CatalogService
	Prices   ports.PriceService
	// Health names the dependencies the readiness probe pings.
	Health map[string]handler.Pinger

	Log         zerolog.Logger
	CORSOrigins []string
	// Registerer receives the HTTP request metrics; nil means the default
	// Prometheus registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validate.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echo.WrapMiddleware(cors.New(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Accept", "X-Request-ID"},
		AllowCredentials: true,
	}).Handler))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "storefront_console",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(middleware.Locate())

	// --- Ops routes (no session required) ---
	health := handler.NewHealthHandler(d.Health)
	e.GET("/health", health.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", health.Readiness) // readiness – are the API and token store up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Session views ---
	sessions := handler.NewSessionHandler(d.Sessions)
	e.GET(domain.LoginLocation, sessions.LoginPage)
	e.POST(domain.LoginLocation, sessions.Login)
	e.POST("/register", sessions.Register)
	e.POST("/logout", sessions.Logout)

	requireSession := middleware.RequireSession(d.Sessions)
	e.GET("/me", sessions.Me, requireSession)

	// --- Catalog views ---
	products := handler.NewProductHandler(d.Catalog)
	e.GET("/products", products.List, requireSession)
	e.POST("/products", products.Create, requireSession, middleware.RBAC(domain.RoleAdmin, domain.RoleSales))
	e.GET("/products/:id", products.Get, requireSession)

	// --- Price comparison views ---
	prices := handler.NewPriceHandler(d.Prices)
	e.GET("/prices", prices.Page, requireSession)
	e.POST("/prices/suggest", prices.Suggest, requireSession)
	e.GET("/prices/history", prices.History, requireSession)
	e.GET("/prices/alerts", prices.Alerts, requireSession)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

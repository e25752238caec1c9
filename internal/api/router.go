package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/inventario/inventory-console/internal/api/docs"
	"github.com/inventario/inventory-console/internal/api/handler"
	"github.com/inventario/inventory-console/internal/api/middleware"
	"github.com/inventario/inventory-console/internal/core/navigation"
	"github.com/inventario/inventory-console/internal/core/ports"
	"github.com/inventario/inventory-console/internal/core/session"
)

const defaultCookieName = "inv_session"

// Deps carries everything the router wires into handlers.
type Deps struct {
	Log      zerolog.Logger
	Sessions *session.Manager
	Table    *navigation.Table
	API      ports.APIFactory
	Auth     ports.AuthService
	Reports  ports.ReportService

	// Readiness checks keyed by dependency name (redis, mongo, ...).
	Checks map[string]handler.Checker

	CookieName   string
	SecureCookie bool
	// Metrics registers the Prometheus middleware and /metrics. It uses the
	// default registry, so enable it once per process.
	Metrics bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Table == nil {
		d.Table = navigation.Default()
	}
	if d.CookieName == "" {
		d.CookieName = defaultCookieName
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	if d.Metrics {
		e.Use(echoprometheus.NewMiddleware("inventory_console"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	// --- Health probes (no session required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)           // liveness
	e.GET("/health/ready", readinessHandler.Readiness) // readiness
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Session-bound routes ---
	authHandler := handler.NewAuthHandler(d.Auth, d.API)
	viewHandler := handler.NewViewHandler(d.API, d.Table)
	dashboardHandler := handler.NewDashboardHandler(d.Reports, d.API, d.Table, d.Log)

	s := e.Group("", middleware.Session(d.Sessions, middleware.SessionConfig{
		CookieName: d.CookieName,
		Secure:     d.SecureCookie,
	}, d.Log))

	s.GET(navigation.LoginPath, authHandler.LoginForm)
	s.POST(navigation.LoginPath, authHandler.Login)
	s.POST("/logout", authHandler.Logout)
	s.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, navigation.DashboardPath)
	})

	guarded := func(path string) echo.MiddlewareFunc { return middleware.Guard(d.Table, path) }

	s.GET("/menu", dashboardHandler.Menu, guarded(navigation.DashboardPath))
	s.GET(navigation.DashboardPath, dashboardHandler.Dashboard, guarded(navigation.DashboardPath))

	for _, entry := range d.Table.Entries() {
		if entry.Public || entry.Path == navigation.DashboardPath {
			continue
		}
		h := viewHandler.List(entry.Path)
		if entry.Path == "/categorias" {
			h = viewHandler.Categories
		}
		s.GET(entry.Path, h, guarded(entry.Path))
	}
	if _, ok := d.Table.Lookup("/alertas"); ok {
		s.POST("/alertas/:id/resolver", viewHandler.ResolveAlert, guarded("/alertas"))
	}

	return e
}

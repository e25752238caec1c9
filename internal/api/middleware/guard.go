package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/inventario/inventory-console/internal/core/domain"
	"github.com/inventario/inventory-console/internal/core/guard"
	"github.com/inventario/inventory-console/internal/core/navigation"
	"github.com/inventario/inventory-console/internal/pkg/metrics"
)

// Guard protects a handler with the table entry declared for path. It must
// run after Session.
//
//	show_loading     → 202 {"status":"loading"}
//	redirect_login   → 302 /login?from=<request uri>
//	redirect_default → 302 /dashboard
func Guard(table *navigation.Table, path string) echo.MiddlewareFunc {
	if _, ok := table.Lookup(path); !ok {
		panic("middleware: no navigation entry for " + path)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var (
				user    *domain.UserIdentity
				loading = true
			)
			if store := SessionFrom(c); store != nil {
				user = store.CurrentUser(c.Request().Context())
				loading = store.IsLoading()
			}

			out := table.Resolve(path, user, loading)
			metrics.GuardDecisionsTotal.WithLabelValues(path, out.Decision.String()).Inc()

			switch out.Decision {
			case guard.ShowLoading:
				return c.JSON(http.StatusAccepted, map[string]string{"status": "loading"})
			case guard.RedirectLogin:
				return c.Redirect(http.StatusFound, out.Redirect+"?from="+url.QueryEscape(c.Request().URL.RequestURI()))
			case guard.RedirectDefault:
				return c.Redirect(http.StatusFound, out.Redirect)
			}
			return next(c)
		}
	}
}

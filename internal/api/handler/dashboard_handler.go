package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inventario/inventory-console/internal/core/domain"
	"github.com/inventario/inventory-console/internal/core/navigation"
	"github.com/inventario/inventory-console/internal/core/ports"
)

type DashboardHandler struct {
	reports ports.ReportService
	api     ports.APIFactory
	table   *navigation.Table
	now     func() time.Time
	log     zerolog.Logger
}

func NewDashboardHandler(reports ports.ReportService, api ports.APIFactory, table *navigation.Table, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{reports: reports, api: api, table: table, now: time.Now, log: log}
}

type menuResponse struct {
	User  *domain.UserIdentity  `json:"user"`
	Items []navigation.MenuItem `json:"items"`
}

type dashboardResponse struct {
	User      *domain.UserIdentity     `json:"user"`
	Dashboard navigation.DashboardKind `json:"dashboard"`
	Menu      []navigation.MenuItem    `json:"menu"`
	Stats     *ports.DashboardStats    `json:"stats,omitempty"`
	Products  *ports.ProductStats      `json:"products,omitempty"`
	Movements *ports.MovementStats     `json:"movements,omitempty"`
	Trend     []ports.TrendPoint       `json:"trend,omitempty"`
	// Errors names the widgets that could not be loaded.
	Errors []string `json:"errors,omitempty"`
}

// Menu returns the sidebar links visible to the current user. The router
// mounts it behind the dashboard guard, so anonymous visitors are redirected
// to /login before reaching it; called without a user it answers an empty
// list.
//
// @Summary      Sidebar menu
// @Tags         navigation
// @Produce      json
// @Success      200  {object}  menuResponse
// @Success      302
// @Router       /menu [get]
func (h *DashboardHandler) Menu(c echo.Context) error {
	store, err := ctxSession(c)
	if err != nil {
		return err
	}
	user := store.CurrentUser(c.Request().Context())
	return c.JSON(http.StatusOK, menuResponse{User: user, Items: h.table.VisibleMenu(user)})
}

// Dashboard renders the landing view for the user's role. A widget whose
// data cannot be fetched is left out and named in errors instead of failing
// the whole page.
//
// @Summary      Dashboard
// @Tags         views
// @Produce      json
// @Param        periodo  query     string  false  "Movement period: hoy, semana or mes"
// @Success      200      {object}  dashboardResponse
// @Success      302
// @Failure      400      {object}  map[string]string
// @Router       /dashboard [get]
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	api, store, err := ctxAPI(c, h.api)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	user := store.CurrentUser(ctx)
	if user == nil {
		return c.Redirect(http.StatusFound, navigation.LoginPath)
	}

	resp := dashboardResponse{
		User:      user,
		Dashboard: navigation.DashboardFor(user.Role),
		Menu:      h.table.VisibleMenu(user),
	}
	fail := func(widget string, err error) {
		h.log.Warn().Err(err).Str("widget", widget).Str("username", user.Username).Msg("dashboard widget unavailable")
		resp.Errors = append(resp.Errors, widget)
	}

	resp.Movements, err = h.reports.MovementStats(ctx, api, c.QueryParam("periodo"))
	if errors.Is(err, domain.ErrInvalidPeriod) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		fail("movements", err)
	}

	if resp.Stats, err = h.reports.DashboardStats(ctx, api); err != nil {
		fail("stats", err)
	}

	if resp.Dashboard == navigation.DashboardOperador {
		return c.JSON(http.StatusOK, resp)
	}

	if resp.Products, err = h.reports.ProductStats(ctx, api); err != nil {
		fail("products", err)
	}
	if resp.Trend, err = h.reports.Trend(ctx, api, h.now()); err != nil {
		fail("trend", err)
	}
	return c.JSON(http.StatusOK, resp)
}

package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/inventario/inventory-console/internal/core/domain"
	"github.com/inventario/inventory-console/internal/core/ports"
	"github.com/inventario/inventory-console/internal/pkg/metrics"
)

const trendMonths = 6

// Movement report periods accepted by GET /reportes/movimientos.
const (
	PeriodHoy    = "hoy"
	PeriodSemana = "semana"
	PeriodMes    = "mes"
)

var shortMonths = [...]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sept", "Oct", "Nov", "Dic"}

// ReportService aggregates dashboard figures from the inventory API. It
// never writes; every figure is derived from data the API already returned.
type ReportService struct {
	log zerolog.Logger
}

func NewReportService(log zerolog.Logger) *ReportService {
	return &ReportService{log: log}
}

// DashboardStats prefers the API's report endpoint and falls back to counting
// products and unresolved alerts when it is unavailable.
func (s *ReportService) DashboardStats(ctx context.Context, api ports.InventoryAPI) (*ports.DashboardStats, error) {
	var stats ports.DashboardStats
	err := api.Get(ctx, "/reportes/dashboard", &stats)
	if err == nil {
		return &stats, nil
	}
	s.log.Warn().Err(err).Msg("dashboard report unavailable, computing from lists")
	metrics.ReportFallbacksTotal.Inc()

	var (
		products []domain.Product
		alerts   []domain.Alert
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return api.List(gctx, "productos", &products) })
	g.Go(func() error { return api.List(gctx, "alertas", &alerts) })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	return &ports.DashboardStats{
		TotalProductos: len(products),
		AlertasActivas: countUnresolved(alerts),
	}, nil
}

func (s *ReportService) ProductStats(ctx context.Context, api ports.InventoryAPI) (*ports.ProductStats, error) {
	var stats ports.ProductStats
	if err := api.Get(ctx, "/reportes/productos", &stats); err != nil {
		return nil, fmt.Errorf("product stats: %w", err)
	}
	return &stats, nil
}

// MovementStats accepts "hoy", "semana" or "mes"; an empty period means "hoy".
func (s *ReportService) MovementStats(ctx context.Context, api ports.InventoryAPI, period string) (*ports.MovementStats, error) {
	period = strings.ToLower(strings.TrimSpace(period))
	switch period {
	case "":
		period = PeriodHoy
	case PeriodHoy, PeriodSemana, PeriodMes:
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPeriod, period)
	}

	var stats ports.MovementStats
	if err := api.Get(ctx, "/reportes/movimientos?periodo="+url.QueryEscape(period), &stats); err != nil {
		return nil, fmt.Errorf("movement stats: %w", err)
	}
	return &stats, nil
}

// Trend fetches movements, alerts and products and builds the trend series.
func (s *ReportService) Trend(ctx context.Context, api ports.InventoryAPI, now time.Time) ([]ports.TrendPoint, error) {
	var (
		movements []domain.Movement
		alerts    []domain.Alert
		products  []domain.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return api.List(gctx, "movimientos", &movements) })
	g.Go(func() error { return api.List(gctx, "alertas", &alerts) })
	g.Go(func() error { return api.List(gctx, "productos", &products) })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("trend: %w", err)
	}
	return BuildTrend(now, movements, alerts, products), nil
}

// BuildTrend returns one point per month for the six months ending with the
// month of now, oldest first. Month boundaries use now's location.
//
// Products count when they existed by the end of the month; products without
// a creation date count in every month.
func BuildTrend(now time.Time, movements []domain.Movement, alerts []domain.Alert, products []domain.Product) []ports.TrendPoint {
	loc := now.Location()
	points := make([]ports.TrendPoint, 0, trendMonths)

	for i := trendMonths - 1; i >= 0; i-- {
		start := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, loc)
		end := start.AddDate(0, 1, 0)
		inMonth := func(t time.Time) bool {
			t = t.In(loc)
			return !t.Before(start) && t.Before(end)
		}

		p := ports.TrendPoint{Mes: shortMonths[start.Month()-1]}
		for _, m := range movements {
			if !inMonth(m.Fecha.Time) {
				continue
			}
			p.Movimientos++
			switch m.Tipo {
			case domain.MovementEntrada:
				p.Entradas++
			case domain.MovementSalida:
				p.Salidas++
			}
		}
		for _, a := range alerts {
			if inMonth(a.FechaCreacion.Time) {
				p.Alertas++
			}
		}
		for _, pr := range products {
			if pr.FechaCreacion.IsZero() || pr.FechaCreacion.Before(end) {
				p.Productos++
			}
		}
		points = append(points, p)
	}
	return points
}

// CategoryProductCounts counts products per category id. Products without a
// category are ignored.
func CategoryProductCounts(products []domain.Product) map[int64]int {
	counts := make(map[int64]int)
	for _, p := range products {
		if p.Categoria != nil && p.Categoria.ID != 0 {
			counts[p.Categoria.ID]++
		}
	}
	return counts
}

func countUnresolved(alerts []domain.Alert) int {
	n := 0
	for _, a := range alerts {
		if !a.Resuelta {
			n++
		}
	}
	return n
}

package ports

import (
	"context"
	"time"
)

// DashboardStats summarises the inventory for the dashboard header cards.
type DashboardStats struct {
	TotalProductos    int `json:"totalProductos"`
	MovimientosDelMes int `json:"movimientosDelMes"`
	AlertasActivas    int `json:"alertasActivas"`
	UsuariosActivos   int `json:"usuariosActivos"`
	StockTotal        int `json:"stockTotal"`
}

// ProductStats is returned by GET /reportes/productos.
type ProductStats struct {
	Total        int `json:"total"`
	ConStockBajo int `json:"conStockBajo"`
	SinStock     int `json:"sinStock"`
}

// MovementStats is returned by GET /reportes/movimientos.
type MovementStats struct {
	TotalEntradas int `json:"totalEntradas"`
	TotalSalidas  int `json:"totalSalidas"`
	Hoy           int `json:"hoy"`
}

// TrendPoint is one month of the dashboard trend series.
type TrendPoint struct {
	Mes         string `json:"mes"`
	Productos   int    `json:"productos"`
	Movimientos int    `json:"movimientos"`
	Alertas     int    `json:"alertas"`
	Entradas    int    `json:"entradas"`
	Salidas     int    `json:"salidas"`
}

type ReportService interface {
	DashboardStats(ctx context.Context, api InventoryAPI) (*DashboardStats, error)
	ProductStats(ctx context.Context, api InventoryAPI) (*ProductStats, error)
	MovementStats(ctx context.Context, api InventoryAPI, period string) (*MovementStats, error)
	Trend(ctx context.Context, api InventoryAPI, now time.Time) ([]TrendPoint, error)
}

package navigation

import "github.com/inventario/inventory-console/internal/core/domain"

// DashboardKind selects which dashboard layout a role lands on.
type DashboardKind string

const (
	DashboardOperador   DashboardKind = "operador"
	DashboardAdmin      DashboardKind = "admin"
	DashboardSuperadmin DashboardKind = "superadmin"
)

// DashboardFor maps a role to its dashboard. Unrecognised roles get the
// operador dashboard.
func DashboardFor(role string) DashboardKind {
	switch domain.NormalizeRole(role) {
	case domain.RoleSuperadmin:
		return DashboardSuperadmin
	case domain.RoleAdmin:
		return DashboardAdmin
	default:
		return DashboardOperador
	}
}

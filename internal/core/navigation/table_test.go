package navigation

import (
	"testing"

	"github.com/inventario/inventory-console/internal/core/domain"
	"github.com/inventario/inventory-console/internal/core/guard"
)

func menuPaths(items []MenuItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Path)
	}
	return out
}

func equalPaths(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewTable_Validation(t *testing.T) {
	if _, err := NewTable(Entry{Path: "productos"}); err == nil {
		t.Fatalf("expected error for relative path")
	}
	if _, err := NewTable(Entry{Path: "/a"}, Entry{Path: "/a"}); err == nil {
		t.Fatalf("expected error for duplicate path")
	}
	if _, err := NewTable(Entry{Path: "/login", Public: true, InMenu: true}); err == nil {
		t.Fatalf("expected error for public menu item")
	}
}

func TestVisibleMenu_Operador(t *testing.T) {
	table := Default()
	got := menuPaths(table.VisibleMenu(&domain.UserIdentity{Role: "operador"}))
	want := []string{"/dashboard", "/productos", "/movimientos"}
	if !equalPaths(got, want) {
		t.Fatalf("operador menu = %v, want %v", got, want)
	}
}

func TestVisibleMenu_AdminMixedCase(t *testing.T) {
	got := menuPaths(Default().VisibleMenu(&domain.UserIdentity{Role: "Admin"}))
	want := []string{"/dashboard", "/productos", "/movimientos", "/categorias", "/almacenes", "/ubicaciones", "/alertas", "/proveedores"}
	if !equalPaths(got, want) {
		t.Fatalf("admin menu = %v, want %v", got, want)
	}
}

func TestVisibleMenu_SuperadminSeesEverythingInOrder(t *testing.T) {
	table := Default()
	got := menuPaths(table.VisibleMenu(&domain.UserIdentity{Role: "SUPERADMIN"}))
	if !equalPaths(got, menuPaths(table.Menu())) {
		t.Fatalf("superadmin menu = %v", got)
	}
	if got[len(got)-1] != "/proveedores" {
		t.Fatalf("expected declared order to be kept, got %v", got)
	}
}

func TestVisibleMenu_NilUser(t *testing.T) {
	got := VisibleMenu(nil, Default().Menu())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil menu, got %#v", got)
	}
}

// Every menu item must resolve to Allow for exactly the roles that see it.
func TestMenuAndGuardAgree(t *testing.T) {
	table := Default()
	roles := []string{"operador", "OPERADOR", "admin", "Admin", "superadmin", "bodeguero", ""}

	for _, role := range roles {
		user := &domain.UserIdentity{Role: role}
		visible := make(map[string]bool)
		for _, item := range table.VisibleMenu(user) {
			visible[item.Path] = true
		}
		for _, item := range table.Menu() {
			allowed := table.Resolve(item.Path, user, false).Decision == guard.Allow
			if allowed != visible[item.Path] {
				t.Fatalf("role %q path %s: guard allow=%v, menu visible=%v", role, item.Path, allowed, visible[item.Path])
			}
		}
	}
}

func TestResolve(t *testing.T) {
	table := Default()
	operador := &domain.UserIdentity{Role: "operador"}

	tests := []struct {
		name     string
		path     string
		user     *domain.UserIdentity
		loading  bool
		found    bool
		decision guard.Decision
		redirect string
	}{
		{"public login", "/login", nil, false, true, guard.Allow, ""},
		{"public while loading", "/login", nil, true, true, guard.Allow, ""},
		{"loading", "/productos", nil, true, true, guard.ShowLoading, ""},
		{"anonymous", "/productos", nil, false, true, guard.RedirectLogin, LoginPath},
		{"anonymous dashboard", "/dashboard", nil, false, true, guard.RedirectLogin, LoginPath},
		{"operador allowed", "/movimientos", operador, false, true, guard.Allow, ""},
		{"operador denied", "/categorias", operador, false, true, guard.RedirectDefault, DashboardPath},
		{"unknown", "/nope", operador, false, false, guard.ShowLoading, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := table.Resolve(tt.path, tt.user, tt.loading)
			if out.Found != tt.found {
				t.Fatalf("found = %v, want %v", out.Found, tt.found)
			}
			if !tt.found {
				return
			}
			if out.Decision != tt.decision || out.Redirect != tt.redirect {
				t.Fatalf("got (%s, %q), want (%s, %q)", out.Decision, out.Redirect, tt.decision, tt.redirect)
			}
		})
	}
}

func TestDashboardFor(t *testing.T) {
	cases := map[string]DashboardKind{
		"operador":   DashboardOperador,
		"Admin":      DashboardAdmin,
		"SUPERADMIN": DashboardSuperadmin,
		"bodeguero":  DashboardOperador,
	}
	for role, want := range cases {
		if got := DashboardFor(role); got != want {
			t.Fatalf("DashboardFor(%q) = %s, want %s", role, got, want)
		}
	}
}

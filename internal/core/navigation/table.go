// Package navigation declares every console route once. Route guards and the
// sidebar menu are both derived from the same Table, so a role can never see
// a link it cannot follow or follow a route it cannot see.
package navigation

import (
	"fmt"
	"strings"

	"github.com/inventario/inventory-console/internal/core/domain"
	"github.com/inventario/inventory-console/internal/core/guard"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// Entry describes one route and, when InMenu is set, its sidebar link.
// Roles is nil for routes open to any authenticated user.
type Entry struct {
	Path   string
	Title  string
	Icon   string
	Roles  domain.RoleSet
	Public bool
	InMenu bool
}

// MenuItem is the sidebar projection of an Entry.
type MenuItem struct {
	Title string         `json:"title"`
	Path  string         `json:"url"`
	Icon  string         `json:"icon"`
	Roles domain.RoleSet `json:"-"`
}

// Table is immutable once built.
type Table struct {
	entries []Entry
	byPath  map[string]int
}

// NewTable validates entries and keeps them in declared order.
func NewTable(entries ...Entry) (*Table, error) {
	t := &Table{
		entries: make([]Entry, 0, len(entries)),
		byPath:  make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if !strings.HasPrefix(e.Path, "/") {
			return nil, fmt.Errorf("navigation: path %q must start with /", e.Path)
		}
		if _, dup := t.byPath[e.Path]; dup {
			return nil, fmt.Errorf("navigation: duplicate path %q", e.Path)
		}
		if e.Public && e.InMenu {
			return nil, fmt.Errorf("navigation: public path %q cannot be a menu item", e.Path)
		}
		t.byPath[e.Path] = len(t.entries)
		t.entries = append(t.entries, e)
	}
	return t, nil
}

// MustTable is NewTable for static tables.
func MustTable(entries ...Entry) *Table {
	t, err := NewTable(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Default returns the inventory console's route surface.
func Default() *Table {
	everyone := domain.NewRoleSet(domain.RoleOperador, domain.RoleAdmin, domain.RoleSuperadmin)
	managers := domain.NewRoleSet(domain.RoleAdmin, domain.RoleSuperadmin)
	superadmin := domain.NewRoleSet(domain.RoleSuperadmin)

	return MustTable(
		Entry{Path: LoginPath, Title: "Iniciar sesión", Public: true},
		Entry{Path: DashboardPath, Title: "Panel", Icon: "home", InMenu: true},
		Entry{Path: "/productos", Title: "Productos", Icon: "package", Roles: everyone, InMenu: true},
		Entry{Path: "/movimientos", Title: "Movimientos", Icon: "arrow-left-right", Roles: everyone, InMenu: true},
		Entry{Path: "/categorias", Title: "Categorías", Icon: "layers", Roles: managers, InMenu: true},
		Entry{Path: "/almacenes", Title: "Almacenes", Icon: "building", Roles: managers, InMenu: true},
		Entry{Path: "/ubicaciones", Title: "Ubicaciones", Icon: "map-pin", Roles: managers, InMenu: true},
		Entry{Path: "/alertas", Title: "Alertas", Icon: "bell", Roles: managers, InMenu: true},
		Entry{Path: "/usuarios", Title: "Usuarios", Icon: "users", Roles: superadmin, InMenu: true},
		Entry{Path: "/roles", Title: "Roles", Icon: "shield", Roles: superadmin, InMenu: true},
		Entry{Path: "/proveedores", Title: "Proveedores", Icon: "user-2", Roles: managers, InMenu: true},
	)
}

// Entries returns the routes in declared order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Lookup finds the entry for an exact path.
func (t *Table) Lookup(path string) (Entry, bool) {
	i, ok := t.byPath[path]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Menu returns every menu item in declared order, regardless of role.
func (t *Table) Menu() []MenuItem {
	items := make([]MenuItem, 0, len(t.entries))
	for _, e := range t.entries {
		if !e.InMenu {
			continue
		}
		items = append(items, MenuItem{Title: e.Title, Path: e.Path, Icon: e.Icon, Roles: e.Roles})
	}
	return items
}

// VisibleMenu returns the menu items user may follow.
func (t *Table) VisibleMenu(user *domain.UserIdentity) []MenuItem {
	return VisibleMenu(user, t.Menu())
}

// VisibleMenu keeps, in order, the items whose roles permit user. It returns
// an empty, non-nil slice for a nil user.
func VisibleMenu(user *domain.UserIdentity, items []MenuItem) []MenuItem {
	visible := make([]MenuItem, 0, len(items))
	if user == nil {
		return visible
	}
	for _, item := range items {
		if item.Roles.Permits(user.Role) {
			visible = append(visible, item)
		}
	}
	return visible
}

// Outcome is the result of resolving a navigation attempt.
type Outcome struct {
	Entry    Entry
	Found    bool
	Decision guard.Decision
	// Redirect is the target path for redirect decisions.
	Redirect string
}

// Resolve looks up path and runs the guard for it. An unknown path resolves
// with Found false; public paths always allow.
func (t *Table) Resolve(path string, user *domain.UserIdentity, loading bool) Outcome {
	entry, ok := t.Lookup(path)
	if !ok {
		return Outcome{}
	}
	out := Outcome{Entry: entry, Found: true, Decision: guard.Allow}
	if entry.Public {
		return out
	}

	out.Decision = guard.Decide(user, loading, entry.Roles)
	switch out.Decision {
	case guard.RedirectLogin:
		out.Redirect = LoginPath
	case guard.RedirectDefault:
		out.Redirect = DashboardPath
	}
	return out
}

// Package guard decides whether the current user may see a protected view.
package guard

import "github.com/inventario/inventory-console/internal/core/domain"

// Decision is the outcome of a guard check.
type Decision int

const (
	// ShowLoading withholds the view while the session is still being loaded.
	ShowLoading Decision = iota
	// RedirectLogin sends an anonymous visitor to the login view.
	RedirectLogin
	// RedirectDefault sends an authenticated user without the required role
	// to the default landing view.
	RedirectDefault
	// Allow renders the view.
	Allow
)

func (d Decision) String() string {
	switch d {
	case ShowLoading:
		return "show_loading"
	case RedirectLogin:
		return "redirect_login"
	case RedirectDefault:
		return "redirect_default"
	case Allow:
		return "allow"
	default:
		return "unknown"
	}
}

// Decide is a pure function of its inputs. A nil allowed set admits any
// authenticated user.
func Decide(user *domain.UserIdentity, loading bool, allowed domain.RoleSet) Decision {
	switch {
	case loading:
		return ShowLoading
	case user == nil:
		return RedirectLogin
	case !allowed.Permits(user.Role):
		return RedirectDefault
	default:
		return Allow
	}
}

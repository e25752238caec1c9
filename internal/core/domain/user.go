package domain

import (
	"strings"
	"time"
)

const (
	RoleOperador   = "operador"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

// UserIdentity is the identity decoded from the active session token.
// It is never mutated; a new value is derived every time the token changes.
type UserIdentity struct {
	Username  string    `json:"username"`
	UserID    int64     `json:"user_id"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the identity's expiry lies strictly before now.
func (u *UserIdentity) Expired(now time.Time) bool {
	return u.ExpiresAt.Before(now)
}

// NormalizeRole returns the comparison form of a role name. Only case is
// folded; surrounding whitespace is significant.
func NormalizeRole(role string) string {
	return strings.ToLower(role)
}

// RoleSet is a set of allowed roles, normalised at construction time.
// A nil RoleSet admits any authenticated user.
type RoleSet map[string]struct{}

// NewRoleSet builds a RoleSet from role names in any case.
// Calling it with no roles yields an empty set that admits nobody.
func NewRoleSet(roles ...string) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[NormalizeRole(r)] = struct{}{}
	}
	return set
}

// Permits is the one role-membership rule shared by route guarding and menu
// filtering.
func (s RoleSet) Permits(role string) bool {
	if s == nil {
		return true
	}
	_, ok := s[NormalizeRole(role)]
	return ok
}

// Roles returns the normalised members in no particular order.
func (s RoleSet) Roles() []string {
	out := make([]string, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	return out
}

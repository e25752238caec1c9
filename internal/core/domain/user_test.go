package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRoleSet_PermitsIsCaseInsensitive(t *testing.T) {
	set := NewRoleSet("Admin", "SUPERADMIN")

	for _, role := range []string{"admin", "ADMIN", "Admin", "SuperAdmin"} {
		if !set.Permits(role) {
			t.Fatalf("expected %q to be permitted", role)
		}
	}
	if set.Permits("operador") {
		t.Fatalf("operador must not be permitted")
	}
}

func TestRoleSet_PaddedRoleIsNotPermitted(t *testing.T) {
	set := NewRoleSet(RoleAdmin, RoleSuperadmin)
	for _, role := range []string{" Admin ", "admin ", "\tsuperadmin"} {
		if set.Permits(role) {
			t.Fatalf("padded role %q must not be permitted", role)
		}
	}
}

func TestRoleSet_NilAdmitsAnyRole(t *testing.T) {
	var set RoleSet
	if !set.Permits("whatever") || !set.Permits("") {
		t.Fatalf("nil set should admit any role")
	}
}

func TestRoleSet_EmptyAdmitsNobody(t *testing.T) {
	set := NewRoleSet()
	if set.Permits("admin") {
		t.Fatalf("empty set should admit nobody")
	}
}

func TestUserIdentity_Expired(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	u := &UserIdentity{ExpiresAt: now}
	if u.Expired(now) {
		t.Fatalf("token expiring exactly now is still valid")
	}
	if !u.Expired(now.Add(time.Millisecond)) {
		t.Fatalf("expected expired one millisecond later")
	}
}

func TestTimestamp_UnmarshalLooseFormats(t *testing.T) {
	cases := map[string]time.Time{
		`"2025-03-04T10:11:12Z"`:    time.Date(2025, 3, 4, 10, 11, 12, 0, time.UTC),
		`"2025-03-04T10:11:12.500"`: time.Date(2025, 3, 4, 10, 11, 12, 500_000_000, time.UTC),
		`"2025-03-04"`:              time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
		`null`:                      {},
		`""`:                        {},
	}
	for raw, want := range cases {
		var ts Timestamp
		if err := json.Unmarshal([]byte(raw), &ts); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if !ts.Equal(want) {
			t.Fatalf("unmarshal %s: got %v, want %v", raw, ts.Time, want)
		}
	}

	var ts Timestamp
	if err := json.Unmarshal([]byte(`"04/03/2025"`), &ts); err == nil {
		t.Fatalf("expected error for unknown layout")
	}
}

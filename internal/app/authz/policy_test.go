package authz

import (
	"testing"

	"github.com/wakacyjne/trip-expense-api/internal/domain"
)

func meta(id string, role domain.Role) domain.UserMetadata {
	return domain.UserMetadata{UserID: domain.UserID(id), Email: id + "@example.com", Role: role}
}

func TestIsElevated(t *testing.T) {
	t.Parallel()

	if !IsElevated(domain.RoleAdmin) || !IsElevated(domain.RoleCoordinator) {
		t.Fatalf("ADMIN and COORDINATOR must be elevated")
	}
	if IsElevated(domain.RoleUser) {
		t.Fatalf("USER must not be elevated")
	}
}

func TestCanAccessOwned(t *testing.T) {
	t.Parallel()

	owner := domain.UserID("u-3")
	other := domain.UserID("u-5")

	cases := []struct {
		name   string
		caller domain.UserMetadata
		owner  *domain.UserID
		want   bool
	}{
		{"admin any owner", meta("a", domain.RoleAdmin), &other, true},
		{"coordinator any owner", meta("c", domain.RoleCoordinator), &other, true},
		{"admin legacy nil owner", meta("a", domain.RoleAdmin), nil, true},
		{"user own resource", meta("u-3", domain.RoleUser), &owner, true},
		{"user foreign resource", meta("u-3", domain.RoleUser), &other, false},
		{"user legacy nil owner", meta("u-3", domain.RoleUser), nil, false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := CanAccessOwned(tc.caller, tc.owner); got != tc.want {
				t.Fatalf("CanAccessOwned=%v want %v", got, tc.want)
			}
		})
	}
}

func TestOwnerFilter(t *testing.T) {
	t.Parallel()

	if f := OwnerFilter(meta("a", domain.RoleAdmin)); f != nil {
		t.Fatalf("elevated filter=%v, want nil (full collection)", *f)
	}
	f := OwnerFilter(meta("u-3", domain.RoleUser))
	if f == nil || *f != domain.UserID("u-3") {
		t.Fatalf("user filter=%v, want u-3", f)
	}
}

func TestAdminOnlyGates(t *testing.T) {
	t.Parallel()

	if !IsAdmin(domain.RoleAdmin) {
		t.Fatalf("ADMIN must pass the admin gate")
	}
	if IsAdmin(domain.RoleCoordinator) || IsAdmin(domain.RoleUser) {
		t.Fatalf("only ADMIN may pass the admin gate")
	}
	if !CanMutateGlobal(domain.RoleCoordinator) || CanMutateGlobal(domain.RoleUser) {
		t.Fatalf("global mutation is elevated-only")
	}
}

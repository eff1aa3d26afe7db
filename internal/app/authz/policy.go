// Package authz is the pure authorization policy consulted by every resource
// service. The role model is two-tier: ADMIN and COORDINATOR are "elevated"
// and bypass ownership checks; USER is restricted to resources it created.
// Only account enable/disable and the bulk trip-participant removals
// distinguish ADMIN from COORDINATOR.
package authz

import "github.com/wakacyjne/trip-expense-api/internal/domain"

// IsElevated reports whether the role bypasses ownership checks.
func IsElevated(role domain.Role) bool {
	return role == domain.RoleAdmin || role == domain.RoleCoordinator
}

// IsAdmin gates the ADMIN-only operations.
func IsAdmin(role domain.Role) bool {
	return role == domain.RoleAdmin
}

// CanAccessOwned decides instance-level access to an owned resource.
//
// owner == nil means the resource has no recorded owner (legacy rows): only
// elevated roles may touch it. Callers must resolve existence first; this
// predicate never substitutes for a NotFound check.
func CanAccessOwned(caller domain.UserMetadata, owner *domain.UserID) bool {
	if IsElevated(caller.Role) {
		return true
	}
	return owner != nil && *owner == caller.UserID
}

// CanMutateGlobal decides mutation of unowned, globally shared resources
// (trips, currency rates).
func CanMutateGlobal(role domain.Role) bool {
	return IsElevated(role)
}

// OwnerFilter returns the store-level listing filter for the caller: nil for
// elevated roles (full collection), the caller's id for USER. Filtering at
// the store keeps other users' row counts and ids from leaking.
func OwnerFilter(caller domain.UserMetadata) *domain.UserID {
	if IsElevated(caller.Role) {
		return nil
	}
	id := caller.UserID
	return &id
}

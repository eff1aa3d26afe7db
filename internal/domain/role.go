package domain

import "fmt"

// Role is the account role stored on a user record.
//
// ADMIN and COORDINATOR are treated as equally privileged ("elevated") for
// ownership checks; USER is restricted to self-owned resources. Only account
// enable/disable and the bulk trip-participant removals are ADMIN-only.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleCoordinator Role = "COORDINATOR"
	RoleUser        Role = "USER"
)

// ParseRole validates a role value coming from storage or configuration.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleCoordinator, RoleUser:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

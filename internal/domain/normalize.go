package domain

import "strings"

// NormalizeHumanName trims leading/trailing whitespace and collapses internal
// whitespace runs. It is used for participant and user name normalization.
func NormalizeHumanName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeEmail lowercases and trims an email address so lookups are
// case-insensitive regardless of backend.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

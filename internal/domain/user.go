package domain

import "time"

// User is the domain representation of a user account.
//
// PasswordHash never leaves the application layer; HTTP DTOs are built from
// UserMetadata or explicit field selections.
type User struct {
	ID           UserID
	Email        string
	PasswordHash string
	Role         Role
	IsEnabled    bool

	Name    *string
	AboutMe *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserMetadata is the caller identity produced by token validation and
// threaded through every protected operation.
type UserMetadata struct {
	UserID UserID
	Email  string
	Role   Role
}

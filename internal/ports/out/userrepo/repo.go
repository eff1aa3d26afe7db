package userrepo

import (
	"context"

	"github.com/wakacyjne/trip-expense-api/internal/domain"
)

// Repository provides access to persisted user accounts.
//
// Email is the external reference key: tokens embed it and every lookup during
// token validation resolves through it. Implementations must treat email
// comparison case-insensitively (callers normalize, but seed data may not be).
type Repository interface {
	Create(ctx context.Context, u domain.User) error

	// Update persists mutable fields (role, enabled flag, name, aboutMe,
	// password hash) keyed by the user's email. Email itself is immutable.
	Update(ctx context.Context, u domain.User) error

	GetByEmail(ctx context.Context, email string) (domain.User, error)
}

package triprepo

import (
	"context"

	"github.com/wakacyjne/trip-expense-api/internal/domain"
)

// Repository provides access to persisted trips.
//
// List returns trips ordered by CreatedAt descending (newest first) to keep
// behavior deterministic across backends.
type Repository interface {
	Create(ctx context.Context, t domain.Trip) error
	Save(ctx context.Context, t domain.Trip) error

	GetByID(ctx context.Context, id domain.TripID) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)

	Delete(ctx context.Context, id domain.TripID) error
}

package expenserepo

import (
	"context"

	"github.com/wakacyjne/trip-expense-api/internal/domain"
)

// Repository provides access to persisted expenses.
type Repository interface {
	Create(ctx context.Context, e domain.Expense) error
	Save(ctx context.Context, e domain.Expense) error

	GetByID(ctx context.Context, id domain.ExpenseID) (domain.Expense, error)

	// List returns expenses ordered by CreatedAt descending, owner-filtered
	// at the store when ownedBy is non-nil.
	List(ctx context.Context, ownedBy *domain.UserID) ([]domain.Expense, error)

	// ListByTrip returns the trip's expenses ordered by CreatedAt descending.
	// A non-positive limit means no limit.
	ListByTrip(ctx context.Context, tripID domain.TripID, limit int) ([]domain.Expense, error)

	Delete(ctx context.Context, id domain.ExpenseID) error

	// DeleteByTrip removes all expenses of a trip (trip cascade step).
	DeleteByTrip(ctx context.Context, tripID domain.TripID) error
}

package paymentrepo

import (
	"context"
	"errors"

	"github.com/wakacyjne/trip-expense-api/internal/domain"
)

// ErrNotFound indicates no payment exists for the given id.
var ErrNotFound = errors.New("payment not found")

// Repository provides access to persisted payments.
type Repository interface {
	Create(ctx context.Context, p domain.Payment) error

	GetByID(ctx context.Context, id domain.PaymentID) (domain.Payment, error)

	// List returns payments ordered by CreatedAt descending.
	List(ctx context.Context) ([]domain.Payment, error)
}

package currencyrepo

import (
	"context"
	"errors"

	"github.com/wakacyjne/trip-expense-api/internal/domain"
)

// ErrNotFound indicates no currency exists for the given code.
var ErrNotFound = errors.New("currency not found")

// Repository provides access to persisted exchange rates.
type Repository interface {
	// Upsert creates the currency or replaces its rate.
	Upsert(ctx context.Context, c domain.Currency) (domain.Currency, error)

	GetByCode(ctx context.Context, code string) (domain.Currency, error)
	List(ctx context.Context) ([]domain.Currency, error)
}

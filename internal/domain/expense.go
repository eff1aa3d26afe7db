package domain

import (
	"fmt"
	"time"
)

// ExpenseCategory classifies an expense.
type ExpenseCategory string

const (
	CategoryAccommodation ExpenseCategory = "ACCOMMODATION"
	CategoryTransport     ExpenseCategory = "TRANSPORT"
	CategoryFood          ExpenseCategory = "FOOD"
	CategoryActivities    ExpenseCategory = "ACTIVITIES"
	CategoryOther         ExpenseCategory = "OTHER"
)

// ParseExpenseCategory validates a category value from input or storage.
func ParseExpenseCategory(s string) (ExpenseCategory, error) {
	switch ExpenseCategory(s) {
	case CategoryAccommodation, CategoryTransport, CategoryFood, CategoryActivities, CategoryOther:
		return ExpenseCategory(s), nil
	}
	return "", fmt.Errorf("unknown expense category %q", s)
}

// Expense is the domain representation of a trip expense. It always belongs
// to exactly one existing trip.
//
// CreatedBy follows the same ownership rules as Participant.CreatedBy.
type Expense struct {
	ID          ExpenseID
	TripID      TripID
	Amount      float64
	Category    ExpenseCategory
	Description string

	CreatedBy *UserID

	CreatedAt time.Time
	UpdatedAt time.Time
}

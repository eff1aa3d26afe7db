package expenses

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/wakacyjne/trip-expense-api/internal/app/apperror"
	"github.com/wakacyjne/trip-expense-api/internal/app/authz"
	"github.com/wakacyjne/trip-expense-api/internal/domain"
	clockport "github.com/wakacyjne/trip-expense-api/internal/ports/out/clock"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/expenserepo"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/triprepo"
)

// Service covers the expense resource. Every expense belongs to exactly one
// existing trip; the reference is validated on create and whenever an update
// moves the expense to another trip.
type Service struct {
	expenses expenserepo.Repository
	trips    triprepo.Repository
	clk      clockport.Clock

	newExpenseID func() domain.ExpenseID
}

func NewService(expenses expenserepo.Repository, trips triprepo.Repository, clk clockport.Clock) *Service {
	return &Service{
		expenses: expenses,
		trips:    trips,
		clk:      clk,
		newExpenseID: func() domain.ExpenseID {
			return domain.ExpenseID(uuid.NewString())
		},
	}
}

// Optional is a tri-state field used to distinguish:
// - unspecified (omitted)
// - specified as null
// - specified with a value
type Optional[T any] struct {
	specified bool
	isNull    bool
	value     T
}

func Unspecified[T any]() Optional[T] { return Optional[T]{} }
func Null[T any]() Optional[T]        { return Optional[T]{specified: true, isNull: true} }
func Some[T any](v T) Optional[T]     { return Optional[T]{specified: true, value: v} }

func (o Optional[T]) IsSpecified() bool { return o.specified }
func (o Optional[T]) IsNull() bool      { return o.specified && o.isNull }
func (o Optional[T]) Value() T          { return o.value }

type CreateExpenseInput struct {
	TripID      domain.TripID
	Amount      float64
	Category    string
	Description string
}

type UpdateExpenseInput struct {
	TripID      Optional[domain.TripID]
	Amount      Optional[float64]
	Category    Optional[string]
	Description Optional[string]
}

// List returns expenses visible to the caller, owner-filtered at the store
// for USER-role callers.
func (s *Service) List(ctx context.Context, caller domain.UserMetadata) ([]domain.Expense, error) {
	return s.expenses.List(ctx, authz.OwnerFilter(caller))
}

func (s *Service) Get(ctx context.Context, caller domain.UserMetadata, id domain.ExpenseID) (domain.Expense, error) {
	e, err := s.load(ctx, id)
	if err != nil {
		return domain.Expense{}, err
	}
	if !authz.CanAccessOwned(caller, e.CreatedBy) {
		return domain.Expense{}, forbidden()
	}
	return e, nil
}

// Create records an expense owned by the caller against an existing trip.
func (s *Service) Create(ctx context.Context, caller domain.UserMetadata, in CreateExpenseInput) (domain.Expense, error) {
	if in.Amount <= 0 {
		return domain.Expense{}, apperror.Validation("invalid amount", map[string]any{"amount": "must be positive"})
	}
	category, err := domain.ParseExpenseCategory(in.Category)
	if err != nil {
		return domain.Expense{}, apperror.Validation("invalid category", map[string]any{"category": err.Error()})
	}
	if err := s.requireTrip(ctx, in.TripID); err != nil {
		return domain.Expense{}, err
	}

	now := s.clk.Now()
	owner := caller.UserID
	e := domain.Expense{
		ID:          s.newExpenseID(),
		TripID:      in.TripID,
		Amount:      in.Amount,
		Category:    category,
		Description: in.Description,
		CreatedBy:   &owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.expenses.Create(ctx, e); err != nil {
		return domain.Expense{}, err
	}
	return e, nil
}

func (s *Service) Update(ctx context.Context, caller domain.UserMetadata, id domain.ExpenseID, in UpdateExpenseInput) (domain.Expense, error) {
	e, err := s.load(ctx, id)
	if err != nil {
		return domain.Expense{}, err
	}
	if !authz.CanAccessOwned(caller, e.CreatedBy) {
		return domain.Expense{}, forbidden()
	}

	if in.Amount.IsSpecified() {
		if in.Amount.IsNull() || in.Amount.Value() <= 0 {
			return domain.Expense{}, apperror.Validation("invalid amount", map[string]any{"amount": "must be positive"})
		}
		e.Amount = in.Amount.Value()
	}
	if in.Category.IsSpecified() {
		if in.Category.IsNull() {
			return domain.Expense{}, apperror.Validation("invalid category", map[string]any{"category": "cannot be null"})
		}
		category, err := domain.ParseExpenseCategory(in.Category.Value())
		if err != nil {
			return domain.Expense{}, apperror.Validation("invalid category", map[string]any{"category": err.Error()})
		}
		e.Category = category
	}
	if in.Description.IsSpecified() {
		if in.Description.IsNull() {
			return domain.Expense{}, apperror.Validation("invalid description", map[string]any{"description": "cannot be null"})
		}
		e.Description = in.Description.Value()
	}
	if in.TripID.IsSpecified() {
		if in.TripID.IsNull() {
			return domain.Expense{}, apperror.Validation("invalid tripId", map[string]any{"tripId": "cannot be null"})
		}
		// Re-validate the reference only when it actually changes.
		if in.TripID.Value() != e.TripID {
			if err := s.requireTrip(ctx, in.TripID.Value()); err != nil {
				return domain.Expense{}, err
			}
			e.TripID = in.TripID.Value()
		}
	}

	e.UpdatedAt = s.clk.Now()
	if err := s.expenses.Save(ctx, e); err != nil {
		return domain.Expense{}, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, caller domain.UserMetadata, id domain.ExpenseID) error {
	e, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanAccessOwned(caller, e.CreatedBy) {
		return forbidden()
	}
	return s.expenses.Delete(ctx, id)
}

func (s *Service) load(ctx context.Context, id domain.ExpenseID) (domain.Expense, error) {
	e, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, expenserepo.ErrNotFound) {
			return domain.Expense{}, apperror.NotFound("EXPENSE_NOT_FOUND", "Expense not found")
		}
		return domain.Expense{}, err
	}
	return e, nil
}

func (s *Service) requireTrip(ctx context.Context, id domain.TripID) error {
	if _, err := s.trips.GetByID(ctx, id); err != nil {
		if errors.Is(err, triprepo.ErrNotFound) {
			return apperror.NotFound("TRIP_NOT_FOUND", "Trip not found")
		}
		return err
	}
	return nil
}

func forbidden() *apperror.Error {
	return apperror.Forbidden("You don't have access to this expense")
}

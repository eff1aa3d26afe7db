package expenses

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wakacyjne/trip-expense-api/internal/adapters/memory/clock"
	memexpenserepo "github.com/wakacyjne/trip-expense-api/internal/adapters/memory/expenserepo"
	memtriprepo "github.com/wakacyjne/trip-expense-api/internal/adapters/memory/triprepo"
	"github.com/wakacyjne/trip-expense-api/internal/app/apperror"
	"github.com/wakacyjne/trip-expense-api/internal/domain"
)

var (
	user3 = domain.UserMetadata{UserID: "u-3", Email: "three@example.com", Role: domain.RoleUser}
	user5 = domain.UserMetadata{UserID: "u-5", Email: "five@example.com", Role: domain.RoleUser}
	coord = domain.UserMetadata{UserID: "u-c", Email: "coord@example.com", Role: domain.RoleCoordinator}
)

func newTestService(t *testing.T) (*Service, *memtriprepo.Repo) {
	t.Helper()
	expenses := memexpenserepo.NewRepo()
	trips := memtriprepo.NewRepo()
	clk := clock.NewManualClock(time.Unix(100, 0).UTC())
	return NewService(expenses, trips, clk), trips
}

func seedTrip(t *testing.T, trips *memtriprepo.Repo, id domain.TripID) {
	t.Helper()
	err := trips.Create(context.Background(), domain.Trip{
		ID:          id,
		Destination: "Paris",
		StartDate:   time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seed trip: %v", err)
	}
}

func wantAppError(t *testing.T, err error, status int, code string) {
	t.Helper()
	ae := (*apperror.Error)(nil)
	if !errors.As(err, &ae) || ae.Status != status || ae.Code != code {
		t.Fatalf("err=%v, want %d %s", err, status, code)
	}
}

func TestCreate_RequiresExistingTrip(t *testing.T) {
	t.Parallel()

	svc, trips := newTestService(t)
	seedTrip(t, trips, "trip-1")

	_, err := svc.Create(context.Background(), user3, CreateExpenseInput{
		TripID:   "missing",
		Amount:   125.5,
		Category: "FOOD",
	})
	wantAppError(t, err, 404, "TRIP_NOT_FOUND")

	e, err := svc.Create(context.Background(), user3, CreateExpenseInput{
		TripID:      "trip-1",
		Amount:      125.5,
		Category:    "FOOD",
		Description: "Lunch at a local restaurant",
	})
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if e.CreatedBy == nil || *e.CreatedBy != user3.UserID {
		t.Fatalf("owner=%v", e.CreatedBy)
	}
}

func TestCreate_ValidatesAmountAndCategory(t *testing.T) {
	t.Parallel()

	svc, trips := newTestService(t)
	seedTrip(t, trips, "trip-1")

	_, err := svc.Create(context.Background(), user3, CreateExpenseInput{
		TripID: "trip-1", Amount: 0, Category: "FOOD",
	})
	wantAppError(t, err, 400, "VALIDATION_ERROR")

	_, err = svc.Create(context.Background(), user3, CreateExpenseInput{
		TripID: "trip-1", Amount: 10, Category: "GAMBLING",
	})
	wantAppError(t, err, 400, "VALIDATION_ERROR")
}

func TestUpdate_TripRefCheckedOnlyWhenChanged(t *testing.T) {
	t.Parallel()

	svc, trips := newTestService(t)
	seedTrip(t, trips, "trip-1")
	seedTrip(t, trips, "trip-2")

	e, err := svc.Create(context.Background(), user3, CreateExpenseInput{
		TripID: "trip-1", Amount: 30, Category: "TRANSPORT",
	})
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}

	// Moving to a nonexistent trip fails.
	_, err = svc.Update(context.Background(), user3, e.ID, UpdateExpenseInput{
		TripID: Some(domain.TripID("missing")),
	})
	wantAppError(t, err, 404, "TRIP_NOT_FOUND")

	// Moving to an existing trip succeeds.
	got, err := svc.Update(context.Background(), user3, e.ID, UpdateExpenseInput{
		TripID: Some(domain.TripID("trip-2")),
		Amount: Some(45.0),
	})
	if err != nil {
		t.Fatalf("Update err=%v", err)
	}
	if got.TripID != "trip-2" || got.Amount != 45.0 {
		t.Fatalf("got=%+v", got)
	}
}

func TestOwnershipGate(t *testing.T) {
	t.Parallel()

	svc, trips := newTestService(t)
	seedTrip(t, trips, "trip-1")

	e, err := svc.Create(context.Background(), user3, CreateExpenseInput{
		TripID: "trip-1", Amount: 30, Category: "TRANSPORT",
	})
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}

	_, err = svc.Get(context.Background(), user5, e.ID)
	wantAppError(t, err, 403, "FORBIDDEN")
	err = svc.Delete(context.Background(), user5, e.ID)
	wantAppError(t, err, 403, "FORBIDDEN")

	// Elevated bypass.
	if _, err := svc.Get(context.Background(), coord, e.ID); err != nil {
		t.Fatalf("coordinator Get err=%v", err)
	}

	// Existence precedes permission.
	_, err = svc.Get(context.Background(), user5, "missing")
	wantAppError(t, err, 404, "EXPENSE_NOT_FOUND")
}

func TestList_OwnerFiltered(t *testing.T) {
	t.Parallel()

	svc, trips := newTestService(t)
	seedTrip(t, trips, "trip-1")

	mine, err := svc.Create(context.Background(), user3, CreateExpenseInput{
		TripID: "trip-1", Amount: 10, Category: "FOOD",
	})
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if _, err := svc.Create(context.Background(), user5, CreateExpenseInput{
		TripID: "trip-1", Amount: 20, Category: "FOOD",
	}); err != nil {
		t.Fatalf("Create err=%v", err)
	}

	got, err := svc.List(context.Background(), user3)
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if len(got) != 1 || got[0].ID != mine.ID {
		t.Fatalf("USER sees %d expenses, want only their own", len(got))
	}

	all, err := svc.List(context.Background(), coord)
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if len(all) != 2 {
		t.Fatalf("elevated sees %d expenses, want 2", len(all))
	}
}

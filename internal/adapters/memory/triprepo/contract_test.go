package triprepo

import (
	"testing"

	"github.com/wakacyjne/trip-expense-api/internal/adapters/contracttest"
	memexpenserepo "github.com/wakacyjne/trip-expense-api/internal/adapters/memory/expenserepo"
	expenserepoport "github.com/wakacyjne/trip-expense-api/internal/ports/out/expenserepo"
	triprepoport "github.com/wakacyjne/trip-expense-api/internal/ports/out/triprepo"
)

func TestContract_TripAndExpenseRepos(t *testing.T) {
	contracttest.RunTripAndExpenseRepos(
		t,
		func(t *testing.T) (triprepoport.Repository, func()) {
			t.Helper()
			return NewRepo(), nil
		},
		func(t *testing.T) (expenserepoport.Repository, func()) {
			t.Helper()
			return memexpenserepo.NewRepo(), nil
		},
	)
}

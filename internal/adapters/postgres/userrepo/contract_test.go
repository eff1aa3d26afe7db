package userrepo

import (
	"testing"

	"github.com/wakacyjne/trip-expense-api/internal/adapters/contracttest"
	"github.com/wakacyjne/trip-expense-api/internal/adapters/postgres/testutil"
	userrepoport "github.com/wakacyjne/trip-expense-api/internal/ports/out/userrepo"
)

func TestContract_PostgresUserRepo(t *testing.T) {
	pool := testutil.OpenMigratedPool(t)

	contracttest.RunUserRepo(t, func(t *testing.T) (userrepoport.Repository, func()) {
		t.Helper()
		return NewRepo(pool), nil
	})
}

package currencyrepo

import (
	"testing"

	"github.com/wakacyjne/trip-expense-api/internal/adapters/contracttest"
	mempaymentrepo "github.com/wakacyjne/trip-expense-api/internal/adapters/memory/paymentrepo"
	currencyrepoport "github.com/wakacyjne/trip-expense-api/internal/ports/out/currencyrepo"
	paymentrepoport "github.com/wakacyjne/trip-expense-api/internal/ports/out/paymentrepo"
)

func TestContract_CurrencyAndPaymentRepos(t *testing.T) {
	contracttest.RunCurrencyAndPaymentRepos(
		t,
		func(t *testing.T) (currencyrepoport.Repository, func()) {
			t.Helper()
			return NewRepo(), nil
		},
		func(t *testing.T) (paymentrepoport.Repository, func()) {
			t.Helper()
			return mempaymentrepo.NewRepo(), nil
		},
	)
}

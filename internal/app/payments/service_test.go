package payments

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/wakacyjne/trip-expense-api/internal/adapters/memory/clock"
	memcurrencyrepo "github.com/wakacyjne/trip-expense-api/internal/adapters/memory/currencyrepo"
	mempaymentrepo "github.com/wakacyjne/trip-expense-api/internal/adapters/memory/paymentrepo"
	"github.com/wakacyjne/trip-expense-api/internal/app/apperror"
	"github.com/wakacyjne/trip-expense-api/internal/domain"
)

func newService(t *testing.T) *Service {
	t.Helper()
	currencies := memcurrencyrepo.NewRepo()
	clk := clock.NewManualClock(time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC))
	if _, err := currencies.Upsert(context.Background(), domain.Currency{
		Code: "EUR", Rate: 4.5, UpdatedAt: clk.Now(),
	}); err != nil {
		t.Fatalf("seed currency: %v", err)
	}
	svc := NewService(mempaymentrepo.NewRepo(), currencies, clk)
	n := 0
	svc.newPaymentID = func() domain.PaymentID {
		n++
		return domain.PaymentID(rune('0' + n))
	}
	return svc
}

func wantAppError(t *testing.T, err error, status int, code string) {
	t.Helper()
	ae := (*apperror.Error)(nil)
	if !errors.As(err, &ae) || ae.Status != status || ae.Code != code {
		t.Fatalf("err=%v, want %d %s", err, status, code)
	}
}

func TestCreate_ConvertsToPLN(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	p, err := svc.Create(context.Background(), CreatePaymentInput{Amount: 10, CurrencyCode: " eur "})
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if p.CurrencyCode != "EUR" {
		t.Fatalf("CurrencyCode=%q, want EUR after normalization", p.CurrencyCode)
	}
	if math.Abs(p.AmountPLN-45) > 1e-9 {
		t.Fatalf("AmountPLN=%v, want 45", p.AmountPLN)
	}

	got, err := svc.Get(context.Background(), p.ID)
	if err != nil || got.AmountPLN != p.AmountPLN {
		t.Fatalf("Get=%+v err=%v", got, err)
	}
}

func TestCreate_Validation(t *testing.T) {
	t.Parallel()

	svc := newService(t)

	_, err := svc.Create(context.Background(), CreatePaymentInput{Amount: 0, CurrencyCode: "EUR"})
	wantAppError(t, err, 400, "VALIDATION_ERROR")

	_, err = svc.Create(context.Background(), CreatePaymentInput{Amount: 10, CurrencyCode: "CHF"})
	wantAppError(t, err, 400, "UNSUPPORTED_CURRENCY")
}

func TestGet_Unknown(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	_, err := svc.Get(context.Background(), "missing")
	wantAppError(t, err, 404, "PAYMENT_NOT_FOUND")

	all, err := svc.GetAll(context.Background())
	if err != nil || len(all) != 0 {
		t.Fatalf("GetAll=%v err=%v, want empty", all, err)
	}
}

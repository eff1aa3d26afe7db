package currencies

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wakacyjne/trip-expense-api/internal/adapters/memory/clock"
	memcurrencyrepo "github.com/wakacyjne/trip-expense-api/internal/adapters/memory/currencyrepo"
	"github.com/wakacyjne/trip-expense-api/internal/app/apperror"
	"github.com/wakacyjne/trip-expense-api/internal/domain"
)

var (
	regularUser = domain.UserMetadata{UserID: "u-1", Email: "user@example.com", Role: domain.RoleUser}
	coordinator = domain.UserMetadata{UserID: "u-2", Email: "coord@example.com", Role: domain.RoleCoordinator}
)

func newService() (*Service, *clock.ManualClock) {
	clk := clock.NewManualClock(time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC))
	return NewService(memcurrencyrepo.NewRepo(), clk), clk
}

func wantAppError(t *testing.T, err error, status int, code string) {
	t.Helper()
	ae := (*apperror.Error)(nil)
	if !errors.As(err, &ae) || ae.Status != status || ae.Code != code {
		t.Fatalf("err=%v, want %d %s", err, status, code)
	}
}

func TestUpsert_ElevatedOnly(t *testing.T) {
	t.Parallel()

	svc, _ := newService()
	_, err := svc.Upsert(context.Background(), regularUser, "EUR", 4.32)
	wantAppError(t, err, 403, "FORBIDDEN")
}

func TestUpsert_CodeValidation(t *testing.T) {
	t.Parallel()

	svc, _ := newService()
	for _, code := range []string{"eur", "EURO", "E1R", "", "EU"} {
		_, err := svc.Upsert(context.Background(), coordinator, code, 4.32)
		wantAppError(t, err, 400, "VALIDATION_ERROR")
	}

	_, err := svc.Upsert(context.Background(), coordinator, "EUR", 0)
	wantAppError(t, err, 400, "VALIDATION_ERROR")
}

func TestUpsert_CreatesThenReplaces(t *testing.T) {
	t.Parallel()

	svc, clk := newService()
	first, err := svc.Upsert(context.Background(), coordinator, "EUR", 4.32)
	if err != nil {
		t.Fatalf("Upsert err=%v", err)
	}
	if first.Rate != 4.32 {
		t.Fatalf("Rate=%v, want 4.32", first.Rate)
	}

	clk.Advance(time.Hour)
	second, err := svc.Upsert(context.Background(), coordinator, "EUR", 4.40)
	if err != nil {
		t.Fatalf("second Upsert err=%v", err)
	}
	if second.Rate != 4.40 || !second.UpdatedAt.After(first.UpdatedAt) {
		t.Fatalf("second=%+v, want rate 4.40 and fresher UpdatedAt than %v", second, first.UpdatedAt)
	}

	all, err := svc.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll err=%v", err)
	}
	if len(all) != 1 {
		t.Fatalf("currencies=%d, want 1 after upsert of same code", len(all))
	}

	got, err := svc.Get(context.Background(), "EUR")
	if err != nil || got.Rate != 4.40 {
		t.Fatalf("Get=%+v err=%v, want rate 4.40", got, err)
	}
}

func TestGet_Unknown(t *testing.T) {
	t.Parallel()

	svc, _ := newService()
	_, err := svc.Get(context.Background(), "CHF")
	wantAppError(t, err, 404, "CURRENCY_NOT_FOUND")
}

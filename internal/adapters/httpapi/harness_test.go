package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/wakacyjne/trip-expense-api/internal/adapters/memory/clock"
	memcurrencyrepo "github.com/wakacyjne/trip-expense-api/internal/adapters/memory/currencyrepo"
	memexpenserepo "github.com/wakacyjne/trip-expense-api/internal/adapters/memory/expenserepo"
	memparticipantrepo "github.com/wakacyjne/trip-expense-api/internal/adapters/memory/participantrepo"
	mempaymentrepo "github.com/wakacyjne/trip-expense-api/internal/adapters/memory/paymentrepo"
	memtriplinkrepo "github.com/wakacyjne/trip-expense-api/internal/adapters/memory/triplinkrepo"
	memtriprepo "github.com/wakacyjne/trip-expense-api/internal/adapters/memory/triprepo"
	memuserrepo "github.com/wakacyjne/trip-expense-api/internal/adapters/memory/userrepo"
	"github.com/wakacyjne/trip-expense-api/internal/app/authn"
	"github.com/wakacyjne/trip-expense-api/internal/app/currencies"
	"github.com/wakacyjne/trip-expense-api/internal/app/expenses"
	"github.com/wakacyjne/trip-expense-api/internal/app/participants"
	"github.com/wakacyjne/trip-expense-api/internal/app/payments"
	"github.com/wakacyjne/trip-expense-api/internal/app/triplinks"
	"github.com/wakacyjne/trip-expense-api/internal/app/trips"
	"github.com/wakacyjne/trip-expense-api/internal/app/users"
	"github.com/wakacyjne/trip-expense-api/internal/domain"
)

type testAPI struct {
	h     http.Handler
	clk   *clock.ManualClock
	users *memuserrepo.Repo
	trips *memtriprepo.Repo
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	clk := clock.NewManualClock(time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC))
	userRepo := memuserrepo.NewRepo()
	tripRepo := memtriprepo.NewRepo()
	participantRepo := memparticipantrepo.NewRepo()
	expenseRepo := memexpenserepo.NewRepo()
	linkRepo := memtriplinkrepo.NewRepo()
	currencyRepo := memcurrencyrepo.NewRepo()
	paymentRepo := mempaymentrepo.NewRepo()

	api := NewServer(
		authn.NewService(userRepo, clk, time.Hour, bcrypt.MinCost),
		users.NewService(userRepo, clk),
		trips.NewService(tripRepo, expenseRepo, participantRepo, linkRepo, clk),
		participants.NewService(participantRepo, linkRepo, clk),
		expenses.NewService(expenseRepo, tripRepo, clk),
		triplinks.NewService(linkRepo, tripRepo, participantRepo, clk),
		currencies.NewService(currencyRepo, clk),
		payments.NewService(paymentRepo, currencyRepo, clk),
	)

	return &testAPI{
		h:     NewRouter(api, NewMetrics()),
		clk:   clk,
		users: userRepo,
		trips: tripRepo,
	}
}

func (a *testAPI) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.h.ServeHTTP(rec, req)
	return rec
}

// register creates an account through the API and returns its token. The
// account comes out with the USER role; promote flips it afterwards.
func (a *testAPI) register(t *testing.T, email, password string) string {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/auth/register", "", `{"email":"`+email+`","password":"`+password+`"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status=%d body=%s", email, rec.Code, rec.Body.String())
	}
	var payload struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &payload)
	return payload.Token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}

func (a *testAPI) promote(t *testing.T, email string, role domain.Role) {
	t.Helper()

	u, err := a.users.GetByEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("promote %s: %v", email, err)
	}
	u.Role = role
	if err := a.users.Update(context.Background(), u); err != nil {
		t.Fatalf("promote %s: %v", email, err)
	}
}

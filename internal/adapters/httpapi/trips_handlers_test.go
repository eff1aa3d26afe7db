package httpapi

import (
	"net/http"
	"testing"

	"github.com/wakacyjne/trip-expense-api/internal/domain"
)

func TestTrips_CreateRequiresElevatedRole(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)
	userTok := a.register(t, "user@example.com", "secret1")
	coordTok := a.register(t, "coord@example.com", "secret1")
	a.promote(t, "coord@example.com", domain.RoleCoordinator)

	body := `{"destination":"Zakopane","startDate":"2023-07-01"}`

	rec := a.do(t, http.MethodPost, "/trip", userTok, body)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("USER create: status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = a.do(t, http.MethodPost, "/trip", coordTok, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("COORDINATOR create: status=%d body=%s", rec.Code, rec.Body.String())
	}
	var created tripResponse
	decodeBody(t, rec, &created)
	if created.ID == "" || created.Destination != "Zakopane" {
		t.Fatalf("created=%+v", created)
	}
	if created.StartDate.Time.Format("2006-01-02") != "2023-07-01" {
		t.Fatalf("startDate=%v", created.StartDate)
	}
}

func TestTrips_PatchNullClearsDescription(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)
	coordTok := a.register(t, "coord@example.com", "secret1")
	a.promote(t, "coord@example.com", domain.RoleCoordinator)

	rec := a.do(t, http.MethodPost, "/trip", coordTok,
		`{"destination":"Zakopane","description":"mountains","startDate":"2023-07-01"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status=%d body=%s", rec.Code, rec.Body.String())
	}
	var created tripResponse
	decodeBody(t, rec, &created)

	// Explicit null clears; omitted fields stay untouched.
	rec = a.do(t, http.MethodPatch, "/trip/"+created.ID, coordTok, `{"description":null}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: status=%d body=%s", rec.Code, rec.Body.String())
	}
	var patched tripResponse
	decodeBody(t, rec, &patched)
	if patched.Description != nil {
		t.Fatalf("description=%v, want null", *patched.Description)
	}
	if patched.Destination != "Zakopane" {
		t.Fatalf("destination=%q changed by unrelated patch", patched.Destination)
	}
}

func TestTrips_AnonymousDegradedDetail(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)
	coordTok := a.register(t, "coord@example.com", "secret1")
	a.promote(t, "coord@example.com", domain.RoleCoordinator)

	rec := a.do(t, http.MethodPost, "/trip", coordTok, `{"destination":"Zakopane","startDate":"2023-07-01"}`)
	var created tripResponse
	decodeBody(t, rec, &created)

	rec = a.do(t, http.MethodPost, "/expense", coordTok,
		`{"tripId":"`+created.ID+`","amount":120,"category":"FOOD","description":"dinner"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expense: status=%d body=%s", rec.Code, rec.Body.String())
	}

	// Anonymous detail carries no related records.
	rec = a.do(t, http.MethodGet, "/trip/"+created.ID, "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("anonymous get: status=%d", rec.Code)
	}
	var anon tripResponse
	decodeBody(t, rec, &anon)
	if len(anon.Expenses) != 0 {
		t.Fatalf("anonymous detail has expenses: %+v", anon.Expenses)
	}

	rec = a.do(t, http.MethodGet, "/trip/"+created.ID, coordTok, "")
	var authed tripResponse
	decodeBody(t, rec, &authed)
	if len(authed.Expenses) != 1 {
		t.Fatalf("authenticated detail expenses=%d, want 1", len(authed.Expenses))
	}

	rec = a.do(t, http.MethodGet, "/trip/unknown", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown trip: status=%d, want 404", rec.Code)
	}
}

func TestTrips_DeleteCascades(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)
	coordTok := a.register(t, "coord@example.com", "secret1")
	a.promote(t, "coord@example.com", domain.RoleCoordinator)

	rec := a.do(t, http.MethodPost, "/trip", coordTok, `{"destination":"Zakopane","startDate":"2023-07-01"}`)
	var created tripResponse
	decodeBody(t, rec, &created)

	rec = a.do(t, http.MethodPost, "/expense", coordTok,
		`{"tripId":"`+created.ID+`","amount":50,"category":"TRANSPORT","description":"bus"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expense: status=%d", rec.Code)
	}
	var exp expenseResponse
	decodeBody(t, rec, &exp)

	rec = a.do(t, http.MethodDelete, "/trip/"+created.ID, coordTok, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = a.do(t, http.MethodGet, "/trip/"+created.ID, coordTok, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("trip after delete: status=%d, want 404", rec.Code)
	}
	rec = a.do(t, http.MethodGet, "/expense/"+exp.ID, coordTok, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expense after cascade: status=%d, want 404", rec.Code)
	}
}

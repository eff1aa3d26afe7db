package httpapi

import (
	"net/http"
	"testing"

	"github.com/wakacyjne/trip-expense-api/internal/domain"
)

func createParticipant(t *testing.T, a *testAPI, tok, email string) participantResponse {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/participant", tok,
		`{"firstName":"Jan","lastName":"Kowalski","email":"`+email+`"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create participant: status=%d body=%s", rec.Code, rec.Body.String())
	}
	var p participantResponse
	decodeBody(t, rec, &p)
	return p
}

func TestParticipants_OwnershipOverHTTP(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)
	ownerTok := a.register(t, "owner@example.com", "secret1")
	otherTok := a.register(t, "other@example.com", "secret1")
	adminTok := a.register(t, "admin@example.com", "secret1")
	a.promote(t, "admin@example.com", domain.RoleAdmin)

	p := createParticipant(t, a, ownerTok, "jan@example.com")
	if p.CreatedBy == nil {
		t.Fatalf("participant has no owner recorded")
	}

	// A non-owner USER gets 403 for an existing row, 404 for a missing one.
	rec := a.do(t, http.MethodGet, "/participant/"+p.ID, otherTok, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign get: status=%d, want 403", rec.Code)
	}
	rec = a.do(t, http.MethodGet, "/participant/unknown", otherTok, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing get: status=%d, want 404", rec.Code)
	}

	rec = a.do(t, http.MethodGet, "/participant/"+p.ID, adminTok, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin get: status=%d", rec.Code)
	}

	// USER listings are owner-filtered.
	rec = a.do(t, http.MethodGet, "/participant", otherTok, "")
	var foreign []participantResponse
	decodeBody(t, rec, &foreign)
	if len(foreign) != 0 {
		t.Fatalf("foreign list=%d rows, want 0", len(foreign))
	}
	rec = a.do(t, http.MethodGet, "/participant", ownerTok, "")
	var own []participantResponse
	decodeBody(t, rec, &own)
	if len(own) != 1 {
		t.Fatalf("owner list=%d rows, want 1", len(own))
	}
}

func TestTripLinks_DuplicateAndBulkOverHTTP(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)
	coordTok := a.register(t, "coord@example.com", "secret1")
	a.promote(t, "coord@example.com", domain.RoleCoordinator)
	adminTok := a.register(t, "admin@example.com", "secret1")
	a.promote(t, "admin@example.com", domain.RoleAdmin)

	rec := a.do(t, http.MethodPost, "/trip", coordTok, `{"destination":"Zakopane","startDate":"2023-07-01"}`)
	var trip tripResponse
	decodeBody(t, rec, &trip)
	p := createParticipant(t, a, coordTok, "jan@example.com")

	linkBody := `{"tripId":"` + trip.ID + `","participantId":"` + p.ID + `"}`
	rec = a.do(t, http.MethodPost, "/trip-participants", coordTok, linkBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("link: status=%d body=%s", rec.Code, rec.Body.String())
	}
	rec = a.do(t, http.MethodPost, "/trip-participants", coordTok, linkBody)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate link: status=%d, want 409", rec.Code)
	}

	rec = a.do(t, http.MethodGet, "/trip-participants/trip/"+trip.ID, coordTok, "")
	var details []tripLinkDetailsResponse
	decodeBody(t, rec, &details)
	if len(details) != 1 || details[0].Participant.ID != p.ID {
		t.Fatalf("participants of trip=%+v", details)
	}

	// Bulk removal is ADMIN-only; the role gate answers before existence.
	rec = a.do(t, http.MethodDelete, "/trip-participants/trip/nonexistent", coordTok, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("coordinator bulk: status=%d, want 403", rec.Code)
	}
	rec = a.do(t, http.MethodDelete, "/trip-participants/trip/nonexistent", adminTok, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("admin bulk on missing trip: status=%d, want 404", rec.Code)
	}
	rec = a.do(t, http.MethodDelete, "/trip-participants/trip/"+trip.ID, adminTok, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin bulk: status=%d", rec.Code)
	}

	rec = a.do(t, http.MethodGet, "/trip-participants", adminTok, "")
	var links []tripLinkResponse
	decodeBody(t, rec, &links)
	if len(links) != 0 {
		t.Fatalf("links after bulk removal=%d, want 0", len(links))
	}
}

func TestUsers_EnableDisableOverHTTP(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)
	userTok := a.register(t, "user@example.com", "secret1")
	adminTok := a.register(t, "admin@example.com", "secret1")
	a.promote(t, "admin@example.com", domain.RoleAdmin)

	rec := a.do(t, http.MethodPost, "/users/user@example.com/disable", userTok, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("USER disable: status=%d, want 403", rec.Code)
	}

	rec = a.do(t, http.MethodPost, "/users/user@example.com/disable", adminTok, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin disable: status=%d body=%s", rec.Code, rec.Body.String())
	}

	// A disabled account can no longer sign in; the message does not reveal
	// which check failed.
	rec = a.do(t, http.MethodPost, "/auth/login", "", `{"email":"user@example.com","password":"secret1"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("disabled login: status=%d, want 401", rec.Code)
	}

	// The already-issued token keeps validating until expiry.
	rec = a.do(t, http.MethodGet, "/participant", userTok, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("disabled user's live token: status=%d, want 200", rec.Code)
	}

	rec = a.do(t, http.MethodPost, "/users/user@example.com/enable", adminTok, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin enable: status=%d", rec.Code)
	}
	rec = a.do(t, http.MethodPost, "/auth/login", "", `{"email":"user@example.com","password":"secret1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("re-enabled login: status=%d body=%s", rec.Code, rec.Body.String())
	}
}

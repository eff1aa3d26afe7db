// Package contracttest holds the shared repository suite. Every storage
// backend runs the same assertions so the port contracts cannot drift
// between the memory and Postgres adapters.
package contracttest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wakacyjne/trip-expense-api/internal/domain"
	currencyrepoport "github.com/wakacyjne/trip-expense-api/internal/ports/out/currencyrepo"
	expenserepoport "github.com/wakacyjne/trip-expense-api/internal/ports/out/expenserepo"
	participantrepoport "github.com/wakacyjne/trip-expense-api/internal/ports/out/participantrepo"
	paymentrepoport "github.com/wakacyjne/trip-expense-api/internal/ports/out/paymentrepo"
	triplinkrepoport "github.com/wakacyjne/trip-expense-api/internal/ports/out/triplinkrepo"
	triprepoport "github.com/wakacyjne/trip-expense-api/internal/ports/out/triprepo"
	userrepoport "github.com/wakacyjne/trip-expense-api/internal/ports/out/userrepo"
)

type CleanupFunc = func()

type UserRepoFactory func(t *testing.T) (userrepoport.Repository, CleanupFunc)
type TripRepoFactory func(t *testing.T) (triprepoport.Repository, CleanupFunc)
type ParticipantRepoFactory func(t *testing.T) (participantrepoport.Repository, CleanupFunc)
type ExpenseRepoFactory func(t *testing.T) (expenserepoport.Repository, CleanupFunc)
type TripLinkRepoFactory func(t *testing.T) (triplinkrepoport.Repository, CleanupFunc)
type CurrencyRepoFactory func(t *testing.T) (currencyrepoport.Repository, CleanupFunc)
type PaymentRepoFactory func(t *testing.T) (paymentrepoport.Repository, CleanupFunc)

func RunUserRepo(t *testing.T, newRepo UserRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	now := time.Unix(1000, 0).UTC()
	name := "Anna"
	u := domain.User{
		ID:           domain.UserID(uuid.NewString()),
		Email:        "Anna@Example.com",
		PasswordHash: "hash-1",
		Role:         domain.RoleUser,
		IsEnabled:    true,
		Name:         &name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Email lookup is case-insensitive.
	got, err := repo.GetByEmail(ctx, "anna@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != u.ID || got.Role != domain.RoleUser || !got.IsEnabled {
		t.Fatalf("unexpected user: %+v", got)
	}
	if got.Name == nil || *got.Name != "Anna" {
		t.Fatalf("Name=%v, want Anna", got.Name)
	}

	// Uniqueness holds across casing.
	dup := u
	dup.ID = domain.UserID(uuid.NewString())
	dup.Email = "ANNA@example.com"
	if err := repo.Create(ctx, dup); !errors.Is(err, userrepoport.ErrAlreadyExists) {
		t.Fatalf("Create duplicate: err=%v, want ErrAlreadyExists", err)
	}

	about := "likes mountains"
	got.Role = domain.RoleCoordinator
	got.IsEnabled = false
	got.AboutMe = &about
	got.UpdatedAt = now.Add(time.Minute)
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err = repo.GetByEmail(ctx, "anna@example.com")
	if err != nil {
		t.Fatalf("GetByEmail after update: %v", err)
	}
	if got.Role != domain.RoleCoordinator || got.IsEnabled {
		t.Fatalf("update not persisted: %+v", got)
	}
	if got.AboutMe == nil || *got.AboutMe != about {
		t.Fatalf("AboutMe=%v, want %q", got.AboutMe, about)
	}
	if got.ID != u.ID {
		t.Fatalf("ID changed on update: %q", got.ID)
	}

	missing := u
	missing.Email = "nobody@example.com"
	if err := repo.Update(ctx, missing); !errors.Is(err, userrepoport.ErrNotFound) {
		t.Fatalf("Update missing: err=%v, want ErrNotFound", err)
	}
	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, userrepoport.ErrNotFound) {
		t.Fatalf("GetByEmail missing: err=%v, want ErrNotFound", err)
	}
}

// RunTripAndExpenseRepos exercises trips together with the expenses that
// reference them: create/save round-trips, newest-first listing, the
// per-trip limit, and the delete-by-trip cascade step.
func RunTripAndExpenseRepos(t *testing.T, newTripRepo TripRepoFactory, newExpenseRepo ExpenseRepoFactory) {
	t.Helper()
	ctx := context.Background()

	trips, tCleanup := newTripRepo(t)
	if tCleanup != nil {
		t.Cleanup(tCleanup)
	}
	expenses, eCleanup := newExpenseRepo(t)
	if eCleanup != nil {
		t.Cleanup(eCleanup)
	}

	t0 := time.Unix(2000, 0).UTC()
	desc := "base camp"
	end := t0.AddDate(0, 0, 7)
	tripA := domain.Trip{
		ID:          domain.TripID(uuid.NewString()),
		Destination: "Zakopane",
		Description: &desc,
		StartDate:   t0,
		EndDate:     &end,
		CreatedAt:   t0,
		UpdatedAt:   t0,
	}
	tripB := domain.Trip{
		ID:          domain.TripID(uuid.NewString()),
		Destination: "Gdansk",
		StartDate:   t0.AddDate(0, 1, 0),
		CreatedAt:   t0.Add(time.Minute),
		UpdatedAt:   t0.Add(time.Minute),
	}
	if err := trips.Create(ctx, tripA); err != nil {
		t.Fatalf("Create tripA: %v", err)
	}
	if err := trips.Create(ctx, tripB); err != nil {
		t.Fatalf("Create tripB: %v", err)
	}
	if err := trips.Create(ctx, tripA); !errors.Is(err, triprepoport.ErrAlreadyExists) {
		t.Fatalf("Create duplicate trip: err=%v, want ErrAlreadyExists", err)
	}

	ts, err := trips.List(ctx)
	if err != nil {
		t.Fatalf("List trips: %v", err)
	}
	if len(ts) != 2 || ts[0].ID != tripB.ID || ts[1].ID != tripA.ID {
		t.Fatalf("unexpected trip ordering: %#v", ts)
	}

	got, err := trips.GetByID(ctx, tripA.ID)
	if err != nil {
		t.Fatalf("GetByID tripA: %v", err)
	}
	if got.Description == nil || *got.Description != desc {
		t.Fatalf("Description=%v, want %q", got.Description, desc)
	}
	if got.EndDate == nil || !got.EndDate.Equal(end) {
		t.Fatalf("EndDate=%v, want %v", got.EndDate, end)
	}

	got.Destination = "Zakopane Centrum"
	got.EndDate = nil
	got.UpdatedAt = t0.Add(time.Hour)
	if err := trips.Save(ctx, got); err != nil {
		t.Fatalf("Save tripA: %v", err)
	}
	got, err = trips.GetByID(ctx, tripA.ID)
	if err != nil {
		t.Fatalf("GetByID after save: %v", err)
	}
	if got.Destination != "Zakopane Centrum" || got.EndDate != nil {
		t.Fatalf("save not persisted: %+v", got)
	}
	if !got.UpdatedAt.Equal(t0.Add(time.Hour)) {
		t.Fatalf("UpdatedAt=%v, want %v", got.UpdatedAt, t0.Add(time.Hour))
	}

	ghost := tripA
	ghost.ID = domain.TripID(uuid.NewString())
	if err := trips.Save(ctx, ghost); !errors.Is(err, triprepoport.ErrNotFound) {
		t.Fatalf("Save missing trip: err=%v, want ErrNotFound", err)
	}

	owner := domain.UserID(uuid.NewString())
	e1 := domain.Expense{
		ID:          domain.ExpenseID(uuid.NewString()),
		TripID:      tripA.ID,
		Amount:      120.50,
		Category:    domain.CategoryFood,
		Description: "pierogi",
		CreatedBy:   &owner,
		CreatedAt:   t0,
		UpdatedAt:   t0,
	}
	e2 := domain.Expense{
		ID:        domain.ExpenseID(uuid.NewString()),
		TripID:    tripA.ID,
		Amount:    40,
		Category:  domain.CategoryTransport,
		CreatedAt: t0.Add(30 * time.Second),
		UpdatedAt: t0.Add(30 * time.Second),
	}
	e3 := domain.Expense{
		ID:        domain.ExpenseID(uuid.NewString()),
		TripID:    tripB.ID,
		Amount:    300,
		Category:  domain.CategoryAccommodation,
		CreatedAt: t0.Add(45 * time.Second),
		UpdatedAt: t0.Add(45 * time.Second),
	}
	for _, e := range []domain.Expense{e1, e2, e3} {
		if err := expenses.Create(ctx, e); err != nil {
			t.Fatalf("Create expense %s: %v", e.ID, err)
		}
	}

	// Save updates every mutable field, including the trip reference, and
	// leaves ownership untouched no matter what the caller passes.
	upd := e1
	upd.TripID = tripB.ID
	upd.Amount = 99.90
	upd.Category = domain.CategoryOther
	upd.Description = "grill"
	upd.CreatedBy = nil
	upd.UpdatedAt = t0.Add(time.Hour)
	if err := expenses.Save(ctx, upd); err != nil {
		t.Fatalf("Save expense: %v", err)
	}
	gotE, err := expenses.GetByID(ctx, e1.ID)
	if err != nil {
		t.Fatalf("GetByID expense: %v", err)
	}
	if gotE.TripID != tripB.ID || gotE.Amount != 99.90 || gotE.Category != domain.CategoryOther || gotE.Description != "grill" {
		t.Fatalf("save not persisted: %+v", gotE)
	}
	if !gotE.UpdatedAt.Equal(t0.Add(time.Hour)) {
		t.Fatalf("UpdatedAt=%v, want %v", gotE.UpdatedAt, t0.Add(time.Hour))
	}
	if gotE.CreatedBy == nil || *gotE.CreatedBy != owner {
		t.Fatalf("CreatedBy=%v, want %q", gotE.CreatedBy, owner)
	}

	ghostE := e1
	ghostE.ID = domain.ExpenseID(uuid.NewString())
	if err := expenses.Save(ctx, ghostE); !errors.Is(err, expenserepoport.ErrNotFound) {
		t.Fatalf("Save missing expense: err=%v, want ErrNotFound", err)
	}

	all, err := expenses.List(ctx, nil)
	if err != nil {
		t.Fatalf("List expenses: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List len=%d, want 3", len(all))
	}
	owned, err := expenses.List(ctx, &owner)
	if err != nil {
		t.Fatalf("List owned: %v", err)
	}
	if len(owned) != 1 || owned[0].ID != e1.ID {
		t.Fatalf("unexpected owned expenses: %#v", owned)
	}

	byA, err := expenses.ListByTrip(ctx, tripA.ID, 0)
	if err != nil {
		t.Fatalf("ListByTrip A: %v", err)
	}
	if len(byA) != 1 || byA[0].ID != e2.ID {
		t.Fatalf("unexpected tripA expenses: %#v", byA)
	}
	byB, err := expenses.ListByTrip(ctx, tripB.ID, 1)
	if err != nil {
		t.Fatalf("ListByTrip B: %v", err)
	}
	if len(byB) != 1 || byB[0].ID != e3.ID {
		t.Fatalf("limit should keep the newest: %#v", byB)
	}

	if err := expenses.Delete(ctx, e2.ID); err != nil {
		t.Fatalf("Delete expense: %v", err)
	}
	if err := expenses.Delete(ctx, e2.ID); !errors.Is(err, expenserepoport.ErrNotFound) {
		t.Fatalf("Delete twice: err=%v, want ErrNotFound", err)
	}
	if err := expenses.DeleteByTrip(ctx, tripB.ID); err != nil {
		t.Fatalf("DeleteByTrip: %v", err)
	}
	if all, err = expenses.List(ctx, nil); err != nil || len(all) != 0 {
		t.Fatalf("List after deletes=%v err=%v, want empty", all, err)
	}

	if err := trips.Delete(ctx, tripA.ID); err != nil {
		t.Fatalf("Delete trip: %v", err)
	}
	if err := trips.Delete(ctx, tripA.ID); !errors.Is(err, triprepoport.ErrNotFound) {
		t.Fatalf("Delete trip twice: err=%v, want ErrNotFound", err)
	}
}

// RunParticipantAndLinkRepos exercises participants and the links that bind
// them to trips: ownership immutability, owner-filtered listing, duplicate
// pair rejection, and the bulk removals.
func RunParticipantAndLinkRepos(t *testing.T, newParticipantRepo ParticipantRepoFactory, newLinkRepo TripLinkRepoFactory) {
	t.Helper()
	ctx := context.Background()

	participants, pCleanup := newParticipantRepo(t)
	if pCleanup != nil {
		t.Cleanup(pCleanup)
	}
	links, lCleanup := newLinkRepo(t)
	if lCleanup != nil {
		t.Cleanup(lCleanup)
	}

	now := time.Unix(3000, 0).UTC()
	owner := domain.UserID(uuid.NewString())
	phone := "+48 600 700 800"
	p1 := domain.Participant{
		ID:        domain.ParticipantID(uuid.NewString()),
		FirstName: "Anna",
		LastName:  "Kowalska",
		Email:     "anna.k@example.com",
		Phone:     &phone,
		CreatedBy: &owner,
		CreatedAt: now,
		UpdatedAt: now,
	}
	p2 := domain.Participant{
		ID:        domain.ParticipantID(uuid.NewString()),
		FirstName: "Piotr",
		LastName:  "Nowak",
		Email:     "piotr.n@example.com",
		CreatedAt: now.Add(time.Minute),
		UpdatedAt: now.Add(time.Minute),
	}
	if err := participants.Create(ctx, p1); err != nil {
		t.Fatalf("Create p1: %v", err)
	}
	if err := participants.Create(ctx, p2); err != nil {
		t.Fatalf("Create p2: %v", err)
	}
	if err := participants.Create(ctx, p1); !errors.Is(err, participantrepoport.ErrAlreadyExists) {
		t.Fatalf("Create duplicate: err=%v, want ErrAlreadyExists", err)
	}

	ps, err := participants.List(ctx, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ps) != 2 || ps[0].ID != p2.ID || ps[1].ID != p1.ID {
		t.Fatalf("unexpected ordering: %#v", ps)
	}
	ownedPs, err := participants.List(ctx, &owner)
	if err != nil {
		t.Fatalf("List owned: %v", err)
	}
	if len(ownedPs) != 1 || ownedPs[0].ID != p1.ID {
		t.Fatalf("unexpected owned participants: %#v", ownedPs)
	}

	upd := p1
	upd.FirstName = "Anna Maria"
	upd.Phone = nil
	upd.CreatedBy = nil
	upd.UpdatedAt = now.Add(time.Hour)
	if err := participants.Save(ctx, upd); err != nil {
		t.Fatalf("Save: %v", err)
	}
	gotP, err := participants.GetByID(ctx, p1.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if gotP.FirstName != "Anna Maria" || gotP.Phone != nil {
		t.Fatalf("save not persisted: %+v", gotP)
	}
	if gotP.CreatedBy == nil || *gotP.CreatedBy != owner {
		t.Fatalf("CreatedBy=%v, want %q", gotP.CreatedBy, owner)
	}

	ghost := p1
	ghost.ID = domain.ParticipantID(uuid.NewString())
	if err := participants.Save(ctx, ghost); !errors.Is(err, participantrepoport.ErrNotFound) {
		t.Fatalf("Save missing: err=%v, want ErrNotFound", err)
	}

	tripA := domain.TripID(uuid.NewString())
	tripB := domain.TripID(uuid.NewString())
	l1 := domain.TripParticipant{TripID: tripA, ParticipantID: p1.ID, CreatedAt: now}
	l2 := domain.TripParticipant{TripID: tripA, ParticipantID: p2.ID, CreatedAt: now}
	l3 := domain.TripParticipant{TripID: tripB, ParticipantID: p1.ID, CreatedAt: now}
	for _, l := range []domain.TripParticipant{l1, l2, l3} {
		if err := links.Create(ctx, l); err != nil {
			t.Fatalf("Create link %s/%s: %v", l.TripID, l.ParticipantID, err)
		}
	}

	// Duplicates are rejected, never overwritten.
	dup := l1
	dup.CreatedAt = now.Add(time.Hour)
	if err := links.Create(ctx, dup); !errors.Is(err, triplinkrepoport.ErrAlreadyExists) {
		t.Fatalf("Create duplicate link: err=%v, want ErrAlreadyExists", err)
	}
	gotL, err := links.Get(ctx, tripA, p1.ID)
	if err != nil {
		t.Fatalf("Get link: %v", err)
	}
	if !gotL.CreatedAt.Equal(now) {
		t.Fatalf("duplicate overwrote CreatedAt: %v", gotL.CreatedAt)
	}
	if _, err := links.Get(ctx, tripB, p2.ID); !errors.Is(err, triplinkrepoport.ErrNotFound) {
		t.Fatalf("Get unlinked pair: err=%v, want ErrNotFound", err)
	}

	if all, err := links.List(ctx); err != nil || len(all) != 3 {
		t.Fatalf("List=%v err=%v, want 3 links", all, err)
	}
	if byTrip, err := links.ListByTrip(ctx, tripA); err != nil || len(byTrip) != 2 {
		t.Fatalf("ListByTrip=%v err=%v, want 2 links", byTrip, err)
	}
	if byPart, err := links.ListByParticipant(ctx, p1.ID); err != nil || len(byPart) != 2 {
		t.Fatalf("ListByParticipant=%v err=%v, want 2 links", byPart, err)
	}
	if none, err := links.ListByParticipants(ctx, nil); err != nil || len(none) != 0 {
		t.Fatalf("ListByParticipants(nil)=%v err=%v, want empty", none, err)
	}
	if mine, err := links.ListByParticipants(ctx, []domain.ParticipantID{p1.ID}); err != nil || len(mine) != 2 {
		t.Fatalf("ListByParticipants=%v err=%v, want 2 links", mine, err)
	}

	if err := links.Delete(ctx, tripB, p1.ID); err != nil {
		t.Fatalf("Delete link: %v", err)
	}
	if err := links.Delete(ctx, tripB, p1.ID); !errors.Is(err, triplinkrepoport.ErrNotFound) {
		t.Fatalf("Delete link twice: err=%v, want ErrNotFound", err)
	}
	if err := links.DeleteByTrip(ctx, tripA); err != nil {
		t.Fatalf("DeleteByTrip: %v", err)
	}
	if err := links.DeleteByParticipant(ctx, p1.ID); err != nil {
		t.Fatalf("DeleteByParticipant on empty store: %v", err)
	}
	if all, err := links.List(ctx); err != nil || len(all) != 0 {
		t.Fatalf("List after deletes=%v err=%v, want empty", all, err)
	}

	if err := participants.Delete(ctx, p2.ID); err != nil {
		t.Fatalf("Delete participant: %v", err)
	}
	if err := participants.Delete(ctx, p2.ID); !errors.Is(err, participantrepoport.ErrNotFound) {
		t.Fatalf("Delete participant twice: err=%v, want ErrNotFound", err)
	}
}

func RunCurrencyAndPaymentRepos(t *testing.T, newCurrencyRepo CurrencyRepoFactory, newPaymentRepo PaymentRepoFactory) {
	t.Helper()
	ctx := context.Background()

	currencies, cCleanup := newCurrencyRepo(t)
	if cCleanup != nil {
		t.Cleanup(cCleanup)
	}
	payments, pCleanup := newPaymentRepo(t)
	if pCleanup != nil {
		t.Cleanup(pCleanup)
	}

	now := time.Unix(4000, 0).UTC()
	if _, err := currencies.Upsert(ctx, domain.Currency{Code: "EUR", Rate: 4.50, UpdatedAt: now}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// A second upsert replaces the rate in place.
	if _, err := currencies.Upsert(ctx, domain.Currency{Code: "EUR", Rate: 4.75, UpdatedAt: now.Add(time.Minute)}); err != nil {
		t.Fatalf("Upsert replace: %v", err)
	}
	got, err := currencies.GetByCode(ctx, "EUR")
	if err != nil {
		t.Fatalf("GetByCode: %v", err)
	}
	if got.Rate != 4.75 || !got.UpdatedAt.Equal(now.Add(time.Minute)) {
		t.Fatalf("replace not persisted: %+v", got)
	}

	if _, err := currencies.Upsert(ctx, domain.Currency{Code: "USD", Rate: 3.90, UpdatedAt: now}); err != nil {
		t.Fatalf("Upsert USD: %v", err)
	}
	cs, err := currencies.List(ctx)
	if err != nil {
		t.Fatalf("List currencies: %v", err)
	}
	if len(cs) != 2 || cs[0].Code != "EUR" || cs[1].Code != "USD" {
		t.Fatalf("unexpected currency listing: %#v", cs)
	}
	if _, err := currencies.GetByCode(ctx, "CHF"); !errors.Is(err, currencyrepoport.ErrNotFound) {
		t.Fatalf("GetByCode unknown: err=%v, want ErrNotFound", err)
	}

	pay1 := domain.Payment{
		ID:           domain.PaymentID(uuid.NewString()),
		Amount:       100,
		CurrencyCode: "EUR",
		AmountPLN:    475,
		CreatedAt:    now,
	}
	pay2 := domain.Payment{
		ID:           domain.PaymentID(uuid.NewString()),
		Amount:       20,
		CurrencyCode: "USD",
		AmountPLN:    78,
		CreatedAt:    now.Add(time.Minute),
	}
	if err := payments.Create(ctx, pay1); err != nil {
		t.Fatalf("Create pay1: %v", err)
	}
	if err := payments.Create(ctx, pay2); err != nil {
		t.Fatalf("Create pay2: %v", err)
	}

	gotPay, err := payments.GetByID(ctx, pay1.ID)
	if err != nil {
		t.Fatalf("GetByID payment: %v", err)
	}
	if gotPay.Amount != 100 || gotPay.CurrencyCode != "EUR" || gotPay.AmountPLN != 475 {
		t.Fatalf("unexpected payment: %+v", gotPay)
	}

	all, err := payments.List(ctx)
	if err != nil {
		t.Fatalf("List payments: %v", err)
	}
	if len(all) != 2 || all[0].ID != pay2.ID || all[1].ID != pay1.ID {
		t.Fatalf("unexpected payment ordering: %#v", all)
	}

	if _, err := payments.GetByID(ctx, domain.PaymentID(uuid.NewString())); !errors.Is(err, paymentrepoport.ErrNotFound) {
		t.Fatalf("GetByID unknown: err=%v, want ErrNotFound", err)
	}
}

package httpapi

import (
	"github.com/wakacyjne/trip-expense-api/internal/app/authn"
	"github.com/wakacyjne/trip-expense-api/internal/app/currencies"
	"github.com/wakacyjne/trip-expense-api/internal/app/expenses"
	"github.com/wakacyjne/trip-expense-api/internal/app/participants"
	"github.com/wakacyjne/trip-expense-api/internal/app/payments"
	"github.com/wakacyjne/trip-expense-api/internal/app/triplinks"
	"github.com/wakacyjne/trip-expense-api/internal/app/trips"
	"github.com/wakacyjne/trip-expense-api/internal/app/users"
)

// Server is the HTTP adapter: a thin layer decoding requests, delegating to
// the application services and encoding responses. All authorization lives in
// the services; the only policy here is which routes require a bearer token.
type Server struct {
	Authn        *authn.Service
	Users        *users.Service
	Trips        *trips.Service
	Participants *participants.Service
	Expenses     *expenses.Service
	TripLinks    *triplinks.Service
	Currencies   *currencies.Service
	Payments     *payments.Service
}

func NewServer(
	authnSvc *authn.Service,
	usersSvc *users.Service,
	tripsSvc *trips.Service,
	participantsSvc *participants.Service,
	expensesSvc *expenses.Service,
	tripLinksSvc *triplinks.Service,
	currenciesSvc *currencies.Service,
	paymentsSvc *payments.Service,
) *Server {
	return &Server{
		Authn:        authnSvc,
		Users:        usersSvc,
		Trips:        tripsSvc,
		Participants: participantsSvc,
		Expenses:     expensesSvc,
		TripLinks:    tripLinksSvc,
		Currencies:   currenciesSvc,
		Payments:     paymentsSvc,
	}
}

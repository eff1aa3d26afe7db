package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the API HTTP router.
//
// Route groups:
// - open: /healthz, /metrics, /auth/*
// - optional auth: trip reads (degraded public view when anonymous)
// - required auth: everything else; role and ownership checks live in the
//   application services, not here
func NewRouter(s *Server, m *Metrics) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger)
	if m != nil {
		r.Use(m.Middleware)
	}

	// Health endpoint is deliberately out-of-spec (used for infra checks).
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/register", s.handleRegister)

	requireAuth := NewAuthMiddleware(s.Authn)
	optionalAuth := NewOptionalAuthMiddleware(s.Authn)

	r.Group(func(r chi.Router) {
		r.Use(optionalAuth)
		r.Get("/trip", s.handleListTrips)
		r.Get("/trip/{id}", s.handleGetTrip)
	})

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Post("/trip", s.handleCreateTrip)
		r.Patch("/trip/{id}", s.handleUpdateTrip)
		r.Delete("/trip/{id}", s.handleDeleteTrip)

		r.Get("/participant", s.handleListParticipants)
		r.Post("/participant", s.handleCreateParticipant)
		r.Get("/participant/{id}", s.handleGetParticipant)
		r.Patch("/participant/{id}", s.handleUpdateParticipant)
		r.Delete("/participant/{id}", s.handleDeleteParticipant)

		r.Get("/expense", s.handleListExpenses)
		r.Post("/expense", s.handleCreateExpense)
		r.Get("/expense/{id}", s.handleGetExpense)
		r.Patch("/expense/{id}", s.handleUpdateExpense)
		r.Delete("/expense/{id}", s.handleDeleteExpense)

		r.Get("/trip-participants", s.handleListTripLinks)
		r.Post("/trip-participants", s.handleCreateTripLink)
		r.Get("/trip-participants/trip/{tripId}", s.handleParticipantsOfTrip)
		r.Get("/trip-participants/participant/{participantId}", s.handleTripsOfParticipant)
		r.Delete("/trip-participants/trip/{tripId}", s.handleRemoveAllParticipantsFromTrip)
		r.Delete("/trip-participants/participant/{participantId}", s.handleRemoveParticipantFromAllTrips)
		r.Delete("/trip-participants/{tripId}/{participantId}", s.handleRemoveTripLink)

		r.Patch("/users/me", s.handleUpdateMyProfile)
		r.Post("/users/{email}/enable", s.handleEnableUser)
		r.Post("/users/{email}/disable", s.handleDisableUser)

		r.Get("/currencies", s.handleListCurrencies)
		r.Post("/currencies", s.handleUpsertCurrency)
		r.Get("/currencies/{code}", s.handleGetCurrency)

		r.Get("/payments", s.handleListPayments)
		r.Post("/payments", s.handleCreatePayment)
		r.Get("/payments/{id}", s.handleGetPayment)
	})

	return r
}

package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/nullable"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/wakacyjne/trip-expense-api/internal/app/trips"
	"github.com/wakacyjne/trip-expense-api/internal/domain"
)

func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	var caller *domain.UserMetadata
	if m, ok := CallerFromContext(r.Context()); ok {
		caller = &m
	}

	ds, err := s.Trips.List(r.Context(), caller)
	if err != nil {
		handleError(w, r, err)
		return
	}
	out := make([]tripResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, tripDetailsFromDomain(d))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	var caller *domain.UserMetadata
	if m, ok := CallerFromContext(r.Context()); ok {
		caller = &m
	}

	d, err := s.Trips.Get(r.Context(), caller, domain.TripID(chi.URLParam(r, "id")))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripDetailsFromDomain(d))
}

func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	var req createTripRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	in := trips.CreateTripInput{
		Destination: req.Destination,
		Description: req.Description,
		StartDate:   req.StartDate.Time,
	}
	if req.EndDate != nil {
		in.EndDate = &req.EndDate.Time
	}

	d, err := s.Trips.Create(r.Context(), caller, in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripDetailsFromDomain(d))
}

func (s *Server) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	var req updateTripRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	in := trips.UpdateTripInput{
		Destination: tripsOptString(req.Destination),
		Description: tripsOptString(req.Description),
		StartDate:   tripsOptDate(req.StartDate),
		EndDate:     tripsOptDate(req.EndDate),
	}

	d, err := s.Trips.Update(r.Context(), caller, domain.TripID(chi.URLParam(r, "id")), in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripDetailsFromDomain(d))
}

func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())
	if err := s.Trips.Delete(r.Context(), caller, domain.TripID(chi.URLParam(r, "id"))); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func tripsOptString(n nullable.Nullable[string]) trips.Optional[string] {
	if !n.IsSpecified() {
		return trips.Unspecified[string]()
	}
	if n.IsNull() {
		return trips.Null[string]()
	}
	v, _ := n.Get()
	return trips.Some(v)
}

func tripsOptDate(n nullable.Nullable[openapi_types.Date]) trips.Optional[time.Time] {
	if !n.IsSpecified() {
		return trips.Unspecified[time.Time]()
	}
	if n.IsNull() {
		return trips.Null[time.Time]()
	}
	v, _ := n.Get()
	return trips.Some(v.Time)
}

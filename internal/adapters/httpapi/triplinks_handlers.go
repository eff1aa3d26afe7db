package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wakacyjne/trip-expense-api/internal/domain"
)

func (s *Server) handleCreateTripLink(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	var req createTripLinkRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	l, err := s.TripLinks.Create(r.Context(), caller, domain.TripID(req.TripID), domain.ParticipantID(req.ParticipantID))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripLinkFromDomain(l))
}

func (s *Server) handleListTripLinks(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	ls, err := s.TripLinks.List(r.Context(), caller)
	if err != nil {
		handleError(w, r, err)
		return
	}
	out := make([]tripLinkResponse, 0, len(ls))
	for _, l := range ls {
		out = append(out, tripLinkFromDomain(l))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleParticipantsOfTrip(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	ds, err := s.TripLinks.ParticipantsOfTrip(r.Context(), caller, domain.TripID(chi.URLParam(r, "tripId")))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripLinkDetailsList(ds))
}

func (s *Server) handleTripsOfParticipant(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	ds, err := s.TripLinks.TripsOfParticipant(r.Context(), caller, domain.ParticipantID(chi.URLParam(r, "participantId")))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripLinkDetailsList(ds))
}

func (s *Server) handleRemoveTripLink(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	err := s.TripLinks.Remove(r.Context(), caller,
		domain.TripID(chi.URLParam(r, "tripId")),
		domain.ParticipantID(chi.URLParam(r, "participantId")))
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleRemoveParticipantFromAllTrips(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	err := s.TripLinks.RemoveParticipantFromAllTrips(r.Context(), caller, domain.ParticipantID(chi.URLParam(r, "participantId")))
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleRemoveAllParticipantsFromTrip(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	err := s.TripLinks.RemoveAllParticipantsFromTrip(r.Context(), caller, domain.TripID(chi.URLParam(r, "tripId")))
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func tripLinkDetailsList(ds []domain.TripParticipantDetails) []tripLinkDetailsResponse {
	out := make([]tripLinkDetailsResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, tripLinkDetailsFromDomain(d))
	}
	return out
}

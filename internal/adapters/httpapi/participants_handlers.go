package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/nullable"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/wakacyjne/trip-expense-api/internal/app/participants"
	"github.com/wakacyjne/trip-expense-api/internal/domain"
)

func (s *Server) handleListParticipants(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	ps, err := s.Participants.List(r.Context(), caller)
	if err != nil {
		handleError(w, r, err)
		return
	}
	out := make([]participantResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, participantFromDomain(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetParticipant(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	p, err := s.Participants.Get(r.Context(), caller, domain.ParticipantID(chi.URLParam(r, "id")))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, participantFromDomain(p))
}

func (s *Server) handleCreateParticipant(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	var req createParticipantRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := s.Participants.Create(r.Context(), caller, participants.CreateParticipantInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     string(req.Email),
		Phone:     req.Phone,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, participantFromDomain(p))
}

func (s *Server) handleUpdateParticipant(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	var req updateParticipantRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	in := participants.UpdateParticipantInput{
		FirstName: participantsOptString(req.FirstName),
		LastName:  participantsOptString(req.LastName),
		Email:     participantsOptEmail(req.Email),
		Phone:     participantsOptString(req.Phone),
	}

	p, err := s.Participants.Update(r.Context(), caller, domain.ParticipantID(chi.URLParam(r, "id")), in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, participantFromDomain(p))
}

func (s *Server) handleDeleteParticipant(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())
	if err := s.Participants.Delete(r.Context(), caller, domain.ParticipantID(chi.URLParam(r, "id"))); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func participantsOptString(n nullable.Nullable[string]) participants.Optional[string] {
	if !n.IsSpecified() {
		return participants.Unspecified[string]()
	}
	if n.IsNull() {
		return participants.Null[string]()
	}
	v, _ := n.Get()
	return participants.Some(v)
}

func participantsOptEmail(n nullable.Nullable[openapi_types.Email]) participants.Optional[string] {
	if !n.IsSpecified() {
		return participants.Unspecified[string]()
	}
	if n.IsNull() {
		return participants.Null[string]()
	}
	v, _ := n.Get()
	return participants.Some(string(v))
}

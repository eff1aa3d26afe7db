package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/nullable"

	"github.com/wakacyjne/trip-expense-api/internal/app/users"
)

func (s *Server) handleUpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	var req updateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	in := users.UpdateProfileInput{
		Name:    usersOptString(req.Name),
		AboutMe: usersOptString(req.AboutMe),
	}
	if req.TargetEmail != nil {
		e := string(*req.TargetEmail)
		in.TargetEmail = &e
	}

	p, err := s.Users.UpdateProfile(r.Context(), caller, in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{Email: p.Email, Name: p.Name, AboutMe: p.AboutMe})
}

func (s *Server) handleEnableUser(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())
	if err := s.Users.EnableAccount(r.Context(), caller, chi.URLParam(r, "email")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleDisableUser(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())
	if err := s.Users.DisableAccount(r.Context(), caller, chi.URLParam(r, "email")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func usersOptString(n nullable.Nullable[string]) users.Optional[string] {
	if !n.IsSpecified() {
		return users.Unspecified[string]()
	}
	if n.IsNull() {
		return users.Null[string]()
	}
	v, _ := n.Get()
	return users.Some(v)
}

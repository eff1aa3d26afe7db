package httpapi

import (
	"net/http"

	"github.com/wakacyjne/trip-expense-api/internal/app/authn"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tok, err := s.Authn.SignIn(r.Context(), string(req.Email), req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: tok})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tok, err := s.Authn.Register(r.Context(), authn.RegisterInput{
		Email:    string(req.Email),
		Password: req.Password,
		Name:     req.Name,
		AboutMe:  req.AboutMe,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tokenResponse{Token: tok})
}

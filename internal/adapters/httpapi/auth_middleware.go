package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/wakacyjne/trip-expense-api/internal/domain"
)

// TokenValidator resolves a bearer token to the caller's identity.
type TokenValidator interface {
	ValidateToken(ctx context.Context, tok string) (domain.UserMetadata, error)
}

// NewAuthMiddleware enforces Authorization: Bearer <token> and stores the
// resolved caller in request context.
func NewAuthMiddleware(v TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Missing token", nil)
				return
			}
			m, err := v.ValidateToken(r.Context(), raw)
			if err != nil {
				handleError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), m)))
		})
	}
}

// NewOptionalAuthMiddleware resolves a bearer token when one is present but
// lets anonymous requests through. Routes behind it serve a degraded public
// view when CallerFromContext reports no caller. An invalid token is still an
// error: clients presenting credentials get told when those are bad.
func NewOptionalAuthMiddleware(v TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			m, err := v.ValidateToken(r.Context(), raw)
			if err != nil {
				handleError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), m)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(authz, prefix))
	return raw, raw != ""
}

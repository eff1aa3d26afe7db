package httpapi

import (
	"context"

	"github.com/wakacyjne/trip-expense-api/internal/domain"
)

type callerKey struct{}
type callerHolderKey struct{}

// callerHolder lets middleware mounted outside the auth layer (the request
// logger) observe the caller resolved further down the chain; context values
// only flow inward.
type callerHolder struct {
	m *domain.UserMetadata
}

// WithCaller stores the authenticated caller identity in request context.
func WithCaller(ctx context.Context, m domain.UserMetadata) context.Context {
	if h, ok := ctx.Value(callerHolderKey{}).(*callerHolder); ok {
		h.m = &m
	}
	return context.WithValue(ctx, callerKey{}, m)
}

// CallerFromContext returns the authenticated caller, if any. Handlers behind
// the required-auth middleware may assume ok; optional-auth routes must check.
func CallerFromContext(ctx context.Context) (domain.UserMetadata, bool) {
	m, ok := ctx.Value(callerKey{}).(domain.UserMetadata)
	return m, ok && m.UserID != ""
}

func withCallerHolder(ctx context.Context) (context.Context, *callerHolder) {
	h := &callerHolder{}
	return context.WithValue(ctx, callerHolderKey{}, h), h
}

package userrepo

import (
	"context"
	"strings"
	"sync"

	"github.com/wakacyjne/trip-expense-api/internal/domain"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/userrepo"
)

// Repo is an in-memory implementation of userrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu      sync.RWMutex
	byEmail map[string]domain.User
}

func NewRepo() *Repo {
	return &Repo{byEmail: make(map[string]domain.User)}
}

func (r *Repo) Create(ctx context.Context, u domain.User) error {
	_ = ctx
	key := emailKey(u.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[key]; ok {
		return userrepo.ErrAlreadyExists
	}
	r.byEmail[key] = cloneUser(u)
	return nil
}

func (r *Repo) Update(ctx context.Context, u domain.User) error {
	_ = ctx
	key := emailKey(u.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byEmail[key]
	if !ok {
		return userrepo.ErrNotFound
	}
	// ID and email are immutable; keep the stored identity.
	u.ID = existing.ID
	u.Email = existing.Email
	u.CreatedAt = existing.CreatedAt
	r.byEmail[key] = cloneUser(u)
	return nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[emailKey(email)]
	if !ok {
		return domain.User{}, userrepo.ErrNotFound
	}
	return cloneUser(u), nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func cloneUser(u domain.User) domain.User {
	out := u
	out.Name = cloneStringPtr(u.Name)
	out.AboutMe = cloneStringPtr(u.AboutMe)
	return out
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

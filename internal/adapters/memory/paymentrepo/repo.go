package paymentrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/wakacyjne/trip-expense-api/internal/domain"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/paymentrepo"
)

// Repo is an in-memory implementation of paymentrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu   sync.RWMutex
	byID map[domain.PaymentID]domain.Payment
}

func NewRepo() *Repo {
	return &Repo{byID: make(map[domain.PaymentID]domain.Payment)}
}

func (r *Repo) Create(ctx context.Context, p domain.Payment) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[p.ID] = p
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.PaymentID) (domain.Payment, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return domain.Payment{}, paymentrepo.ErrNotFound
	}
	return p, nil
}

func (r *Repo) List(ctx context.Context) ([]domain.Payment, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Payment, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

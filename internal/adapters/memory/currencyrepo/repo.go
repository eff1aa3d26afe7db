package currencyrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/wakacyjne/trip-expense-api/internal/domain"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/currencyrepo"
)

// Repo is an in-memory implementation of currencyrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu     sync.RWMutex
	byCode map[string]domain.Currency
}

func NewRepo() *Repo {
	return &Repo{byCode: make(map[string]domain.Currency)}
}

func (r *Repo) Upsert(ctx context.Context, c domain.Currency) (domain.Currency, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byCode[c.Code] = c
	return c, nil
}

func (r *Repo) GetByCode(ctx context.Context, code string) (domain.Currency, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byCode[code]
	if !ok {
		return domain.Currency{}, currencyrepo.ErrNotFound
	}
	return c, nil
}

func (r *Repo) List(ctx context.Context) ([]domain.Currency, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Currency, 0, len(r.byCode))
	for _, c := range r.byCode {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

package expenserepo

import (
	"context"
	"sort"
	"sync"

	"github.com/wakacyjne/trip-expense-api/internal/domain"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/expenserepo"
)

// Repo is an in-memory implementation of expenserepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu   sync.RWMutex
	byID map[domain.ExpenseID]domain.Expense
}

func NewRepo() *Repo {
	return &Repo{byID: make(map[domain.ExpenseID]domain.Expense)}
}

func (r *Repo) Create(ctx context.Context, e domain.Expense) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[e.ID]; ok {
		return expenserepo.ErrAlreadyExists
	}
	r.byID[e.ID] = cloneExpense(e)
	return nil
}

func (r *Repo) Save(ctx context.Context, e domain.Expense) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[e.ID]
	if !ok {
		return expenserepo.ErrNotFound
	}
	// Ownership is immutable once set at creation.
	e.CreatedBy = existing.CreatedBy
	e.CreatedAt = existing.CreatedAt
	r.byID[e.ID] = cloneExpense(e)
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.ExpenseID) (domain.Expense, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return domain.Expense{}, expenserepo.ErrNotFound
	}
	return cloneExpense(e), nil
}

func (r *Repo) List(ctx context.Context, ownedBy *domain.UserID) ([]domain.Expense, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Expense, 0, len(r.byID))
	for _, e := range r.byID {
		if ownedBy != nil && (e.CreatedBy == nil || *e.CreatedBy != *ownedBy) {
			continue
		}
		out = append(out, cloneExpense(e))
	}
	sortExpensesNewestFirst(out)
	return out, nil
}

func (r *Repo) ListByTrip(ctx context.Context, tripID domain.TripID, limit int) ([]domain.Expense, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Expense, 0)
	for _, e := range r.byID {
		if e.TripID == tripID {
			out = append(out, cloneExpense(e))
		}
	}
	sortExpensesNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Repo) Delete(ctx context.Context, id domain.ExpenseID) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return expenserepo.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *Repo) DeleteByTrip(ctx context.Context, tripID domain.TripID) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, e := range r.byID {
		if e.TripID == tripID {
			delete(r.byID, id)
		}
	}
	return nil
}

func cloneExpense(e domain.Expense) domain.Expense {
	out := e
	if e.CreatedBy != nil {
		v := *e.CreatedBy
		out.CreatedBy = &v
	}
	return out
}

func sortExpensesNewestFirst(es []domain.Expense) {
	sort.Slice(es, func(i, j int) bool {
		if es[i].CreatedAt.Equal(es[j].CreatedAt) {
			return es[i].ID < es[j].ID
		}
		return es[i].CreatedAt.After(es[j].CreatedAt)
	})
}

package participantrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/wakacyjne/trip-expense-api/internal/domain"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/participantrepo"
)

// Repo is an in-memory implementation of participantrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu   sync.RWMutex
	byID map[domain.ParticipantID]domain.Participant
}

func NewRepo() *Repo {
	return &Repo{byID: make(map[domain.ParticipantID]domain.Participant)}
}

func (r *Repo) Create(ctx context.Context, p domain.Participant) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[p.ID]; ok {
		return participantrepo.ErrAlreadyExists
	}
	r.byID[p.ID] = cloneParticipant(p)
	return nil
}

func (r *Repo) Save(ctx context.Context, p domain.Participant) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[p.ID]
	if !ok {
		return participantrepo.ErrNotFound
	}
	// Ownership is immutable once set at creation.
	p.CreatedBy = existing.CreatedBy
	p.CreatedAt = existing.CreatedAt
	r.byID[p.ID] = cloneParticipant(p)
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.ParticipantID) (domain.Participant, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return domain.Participant{}, participantrepo.ErrNotFound
	}
	return cloneParticipant(p), nil
}

func (r *Repo) List(ctx context.Context, ownedBy *domain.UserID) ([]domain.Participant, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Participant, 0, len(r.byID))
	for _, p := range r.byID {
		if ownedBy != nil && (p.CreatedBy == nil || *p.CreatedBy != *ownedBy) {
			continue
		}
		out = append(out, cloneParticipant(p))
	}
	sortParticipantsNewestFirst(out)
	return out, nil
}

func (r *Repo) Delete(ctx context.Context, id domain.ParticipantID) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return participantrepo.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func cloneParticipant(p domain.Participant) domain.Participant {
	out := p
	if p.Phone != nil {
		v := *p.Phone
		out.Phone = &v
	}
	if p.CreatedBy != nil {
		v := *p.CreatedBy
		out.CreatedBy = &v
	}
	return out
}

func sortParticipantsNewestFirst(ps []domain.Participant) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].CreatedAt.Equal(ps[j].CreatedAt) {
			return ps[i].ID < ps[j].ID
		}
		return ps[i].CreatedAt.After(ps[j].CreatedAt)
	})
}

package triplinkrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/wakacyjne/trip-expense-api/internal/domain"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/triplinkrepo"
)

type pairKey struct {
	trip        domain.TripID
	participant domain.ParticipantID
}

// Repo is an in-memory implementation of triplinkrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu     sync.RWMutex
	byPair map[pairKey]domain.TripParticipant
}

func NewRepo() *Repo {
	return &Repo{byPair: make(map[pairKey]domain.TripParticipant)}
}

func (r *Repo) Create(ctx context.Context, l domain.TripParticipant) error {
	_ = ctx
	key := pairKey{l.TripID, l.ParticipantID}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byPair[key]; ok {
		return triplinkrepo.ErrAlreadyExists
	}
	r.byPair[key] = l
	return nil
}

func (r *Repo) Get(ctx context.Context, tripID domain.TripID, participantID domain.ParticipantID) (domain.TripParticipant, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.byPair[pairKey{tripID, participantID}]
	if !ok {
		return domain.TripParticipant{}, triplinkrepo.ErrNotFound
	}
	return l, nil
}

func (r *Repo) List(ctx context.Context) ([]domain.TripParticipant, error) {
	_ = ctx
	return r.collect(func(domain.TripParticipant) bool { return true }), nil
}

func (r *Repo) ListByTrip(ctx context.Context, tripID domain.TripID) ([]domain.TripParticipant, error) {
	_ = ctx
	return r.collect(func(l domain.TripParticipant) bool { return l.TripID == tripID }), nil
}

func (r *Repo) ListByParticipant(ctx context.Context, participantID domain.ParticipantID) ([]domain.TripParticipant, error) {
	_ = ctx
	return r.collect(func(l domain.TripParticipant) bool { return l.ParticipantID == participantID }), nil
}

func (r *Repo) ListByParticipants(ctx context.Context, participantIDs []domain.ParticipantID) ([]domain.TripParticipant, error) {
	_ = ctx
	wanted := make(map[domain.ParticipantID]struct{}, len(participantIDs))
	for _, id := range participantIDs {
		wanted[id] = struct{}{}
	}
	return r.collect(func(l domain.TripParticipant) bool {
		_, ok := wanted[l.ParticipantID]
		return ok
	}), nil
}

func (r *Repo) Delete(ctx context.Context, tripID domain.TripID, participantID domain.ParticipantID) error {
	_ = ctx
	key := pairKey{tripID, participantID}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byPair[key]; !ok {
		return triplinkrepo.ErrNotFound
	}
	delete(r.byPair, key)
	return nil
}

func (r *Repo) DeleteByTrip(ctx context.Context, tripID domain.TripID) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.byPair {
		if key.trip == tripID {
			delete(r.byPair, key)
		}
	}
	return nil
}

func (r *Repo) DeleteByParticipant(ctx context.Context, participantID domain.ParticipantID) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.byPair {
		if key.participant == participantID {
			delete(r.byPair, key)
		}
	}
	return nil
}

func (r *Repo) collect(keep func(domain.TripParticipant) bool) []domain.TripParticipant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.TripParticipant, 0)
	for _, l := range r.byPair {
		if keep(l) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TripID == out[j].TripID {
			return out[i].ParticipantID < out[j].ParticipantID
		}
		return out[i].TripID < out[j].TripID
	})
	return out
}

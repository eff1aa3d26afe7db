package participantrepo

import (
	"context"

	"github.com/wakacyjne/trip-expense-api/internal/domain"
)

// Repository provides access to persisted participants.
type Repository interface {
	Create(ctx context.Context, p domain.Participant) error
	Save(ctx context.Context, p domain.Participant) error

	GetByID(ctx context.Context, id domain.ParticipantID) (domain.Participant, error)

	// List returns participants ordered by CreatedAt descending. When ownedBy
	// is non-nil only participants created by that user are returned; the
	// filter is applied at the store so other users' rows never leave it.
	List(ctx context.Context, ownedBy *domain.UserID) ([]domain.Participant, error)

	Delete(ctx context.Context, id domain.ParticipantID) error
}

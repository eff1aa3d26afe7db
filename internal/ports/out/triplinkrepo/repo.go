package triplinkrepo

import (
	"context"

	"github.com/wakacyjne/trip-expense-api/internal/domain"
)

// Repository provides access to persisted trip-participant links.
//
// The (TripID, ParticipantID) pair is unique; Create must reject duplicates
// with ErrAlreadyExists rather than overwrite.
type Repository interface {
	Create(ctx context.Context, l domain.TripParticipant) error

	Get(ctx context.Context, tripID domain.TripID, participantID domain.ParticipantID) (domain.TripParticipant, error)

	List(ctx context.Context) ([]domain.TripParticipant, error)
	ListByTrip(ctx context.Context, tripID domain.TripID) ([]domain.TripParticipant, error)
	ListByParticipant(ctx context.Context, participantID domain.ParticipantID) ([]domain.TripParticipant, error)

	// ListByParticipants supports the store-level owner filter for USER-role
	// listing: the caller passes the ids of the participants it owns.
	ListByParticipants(ctx context.Context, participantIDs []domain.ParticipantID) ([]domain.TripParticipant, error)

	Delete(ctx context.Context, tripID domain.TripID, participantID domain.ParticipantID) error
	DeleteByTrip(ctx context.Context, tripID domain.TripID) error
	DeleteByParticipant(ctx context.Context, participantID domain.ParticipantID) error
}

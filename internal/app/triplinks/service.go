package triplinks

import (
	"context"
	"errors"

	"github.com/wakacyjne/trip-expense-api/internal/app/apperror"
	"github.com/wakacyjne/trip-expense-api/internal/app/authz"
	"github.com/wakacyjne/trip-expense-api/internal/domain"
	clockport "github.com/wakacyjne/trip-expense-api/internal/ports/out/clock"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/participantrepo"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/triplinkrepo"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/triprepo"
)

// Service covers trip-participant links. Authorization derives from the
// participant's owner, never the trip: a USER may link or unlink only
// participants they created.
//
// The bulk removals are ADMIN-only and, unlike every other operation, check
// the role before resource existence. This mirrors the original route-guard
// ordering, where the role gate ran before the handler; a COORDINATOR gets
// 403 for these endpoints even when the resource does not exist.
type Service struct {
	links        triplinkrepo.Repository
	trips        triprepo.Repository
	participants participantrepo.Repository
	clk          clockport.Clock
}

func NewService(
	links triplinkrepo.Repository,
	trips triprepo.Repository,
	participants participantrepo.Repository,
	clk clockport.Clock,
) *Service {
	return &Service{links: links, trips: trips, participants: participants, clk: clk}
}

// Create links a trip and a participant. Both must exist; the pair must not
// already be linked.
func (s *Service) Create(ctx context.Context, caller domain.UserMetadata, tripID domain.TripID, participantID domain.ParticipantID) (domain.TripParticipant, error) {
	_, tripErr := s.trips.GetByID(ctx, tripID)
	p, partErr := s.participants.GetByID(ctx, participantID)
	if isMissingTrip(tripErr) || isMissingParticipant(partErr) {
		return domain.TripParticipant{}, apperror.NotFound("TRIP_OR_PARTICIPANT_NOT_FOUND", "Trip or participant not found")
	}
	if tripErr != nil {
		return domain.TripParticipant{}, tripErr
	}
	if partErr != nil {
		return domain.TripParticipant{}, partErr
	}

	if !authz.CanAccessOwned(caller, p.CreatedBy) {
		return domain.TripParticipant{}, forbidden()
	}

	l := domain.TripParticipant{
		TripID:        tripID,
		ParticipantID: participantID,
		CreatedAt:     s.clk.Now(),
	}
	if err := s.links.Create(ctx, l); err != nil {
		if errors.Is(err, triplinkrepo.ErrAlreadyExists) {
			return domain.TripParticipant{}, apperror.Conflict("TRIP_PARTICIPANT_EXISTS", "Trip participant already exists")
		}
		return domain.TripParticipant{}, err
	}
	return l, nil
}

// List returns links visible to the caller: everything for elevated roles,
// links of self-created participants for USER. The USER filter runs in the
// store keyed by the caller's own participant ids.
func (s *Service) List(ctx context.Context, caller domain.UserMetadata) ([]domain.TripParticipant, error) {
	if authz.IsElevated(caller.Role) {
		return s.links.List(ctx)
	}
	owned, err := s.participants.List(ctx, authz.OwnerFilter(caller))
	if err != nil {
		return nil, err
	}
	ids := make([]domain.ParticipantID, 0, len(owned))
	for _, p := range owned {
		ids = append(ids, p.ID)
	}
	return s.links.ListByParticipants(ctx, ids)
}

// ParticipantsOfTrip returns the trip's links expanded with both records.
// USER-role callers see only the links of participants they own.
func (s *Service) ParticipantsOfTrip(ctx context.Context, caller domain.UserMetadata, tripID domain.TripID) ([]domain.TripParticipantDetails, error) {
	t, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		if isMissingTrip(err) {
			return nil, apperror.NotFound("TRIP_NOT_FOUND", "Trip not found")
		}
		return nil, err
	}

	links, err := s.links.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, caller, links, &t)
}

// TripsOfParticipant returns the participant's links expanded with both
// records. The ownership gate applies to the participant itself.
func (s *Service) TripsOfParticipant(ctx context.Context, caller domain.UserMetadata, participantID domain.ParticipantID) ([]domain.TripParticipantDetails, error) {
	p, err := s.participants.GetByID(ctx, participantID)
	if err != nil {
		if isMissingParticipant(err) {
			return nil, apperror.NotFound("PARTICIPANT_NOT_FOUND", "Participant not found")
		}
		return nil, err
	}
	if !authz.CanAccessOwned(caller, p.CreatedBy) {
		return nil, forbidden()
	}

	links, err := s.links.ListByParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, caller, links, nil)
}

// Remove unlinks one pair. The link must exist; the participant-owner gate
// applies.
func (s *Service) Remove(ctx context.Context, caller domain.UserMetadata, tripID domain.TripID, participantID domain.ParticipantID) error {
	if _, err := s.links.Get(ctx, tripID, participantID); err != nil {
		if errors.Is(err, triplinkrepo.ErrNotFound) {
			return apperror.NotFound("TRIP_PARTICIPANT_NOT_FOUND", "Trip participant not found")
		}
		return err
	}

	// Links of vanished participants have no owner left; elevated only.
	var owner *domain.UserID
	if p, err := s.participants.GetByID(ctx, participantID); err == nil {
		owner = p.CreatedBy
	} else if !isMissingParticipant(err) {
		return err
	}
	if !authz.CanAccessOwned(caller, owner) {
		return forbidden()
	}

	return s.links.Delete(ctx, tripID, participantID)
}

// RemoveParticipantFromAllTrips unlinks a participant everywhere. ADMIN only;
// the role gate runs before the existence check (see the type comment).
func (s *Service) RemoveParticipantFromAllTrips(ctx context.Context, caller domain.UserMetadata, participantID domain.ParticipantID) error {
	if !authz.IsAdmin(caller.Role) {
		return forbiddenAdmin()
	}
	if _, err := s.participants.GetByID(ctx, participantID); err != nil {
		if isMissingParticipant(err) {
			return apperror.NotFound("PARTICIPANT_NOT_FOUND", "Participant not found")
		}
		return err
	}
	return s.links.DeleteByParticipant(ctx, participantID)
}

// RemoveAllParticipantsFromTrip unlinks everyone from a trip. ADMIN only; the
// role gate runs before the existence check.
func (s *Service) RemoveAllParticipantsFromTrip(ctx context.Context, caller domain.UserMetadata, tripID domain.TripID) error {
	if !authz.IsAdmin(caller.Role) {
		return forbiddenAdmin()
	}
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		if isMissingTrip(err) {
			return apperror.NotFound("TRIP_NOT_FOUND", "Trip not found")
		}
		return err
	}
	return s.links.DeleteByTrip(ctx, tripID)
}

func (s *Service) expand(ctx context.Context, caller domain.UserMetadata, links []domain.TripParticipant, trip *domain.Trip) ([]domain.TripParticipantDetails, error) {
	elevated := authz.IsElevated(caller.Role)
	out := make([]domain.TripParticipantDetails, 0, len(links))
	for _, l := range links {
		p, err := s.participants.GetByID(ctx, l.ParticipantID)
		if err != nil {
			if isMissingParticipant(err) {
				continue
			}
			return nil, err
		}
		if !elevated && !authz.CanAccessOwned(caller, p.CreatedBy) {
			continue
		}

		d := domain.TripParticipantDetails{TripParticipant: l, Participant: p}
		if trip != nil {
			d.Trip = *trip
		} else {
			t, err := s.trips.GetByID(ctx, l.TripID)
			if err != nil {
				if isMissingTrip(err) {
					continue
				}
				return nil, err
			}
			d.Trip = t
		}
		out = append(out, d)
	}
	return out, nil
}

func isMissingTrip(err error) bool {
	return errors.Is(err, triprepo.ErrNotFound)
}

func isMissingParticipant(err error) bool {
	return errors.Is(err, participantrepo.ErrNotFound)
}

func forbidden() *apperror.Error {
	return apperror.Forbidden("You don't have access to this participant's trip links")
}

func forbiddenAdmin() *apperror.Error {
	return apperror.Forbidden("Only administrators may perform bulk removals")
}

package trips

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/wakacyjne/trip-expense-api/internal/app/apperror"
	"github.com/wakacyjne/trip-expense-api/internal/app/authz"
	"github.com/wakacyjne/trip-expense-api/internal/domain"
	clockport "github.com/wakacyjne/trip-expense-api/internal/ports/out/clock"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/expenserepo"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/participantrepo"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/triplinkrepo"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/triprepo"
)

// listPreviewLimit bounds the expenses/participants attached to each entry of
// the trip listing.
const listPreviewLimit = 5

// Service covers the trip resource. Trips carry no owner: reads are open to
// any authenticated caller (with a degraded anonymous view), mutation is
// elevated-only.
type Service struct {
	trips        triprepo.Repository
	expenses     expenserepo.Repository
	participants participantrepo.Repository
	links        triplinkrepo.Repository
	clk          clockport.Clock

	newTripID func() domain.TripID
}

func NewService(
	trips triprepo.Repository,
	expenses expenserepo.Repository,
	participants participantrepo.Repository,
	links triplinkrepo.Repository,
	clk clockport.Clock,
) *Service {
	return &Service{
		trips:        trips,
		expenses:     expenses,
		participants: participants,
		links:        links,
		clk:          clk,
		newTripID: func() domain.TripID {
			return domain.TripID(uuid.NewString())
		},
	}
}

type CreateTripInput struct {
	Destination string
	Description *string
	StartDate   time.Time
	EndDate     *time.Time
}

type UpdateTripInput struct {
	Destination Optional[string]
	Description Optional[string]
	StartDate   Optional[time.Time]
	EndDate     Optional[time.Time]
}

// List returns all trips, newest first. Authenticated callers get a preview of
// each trip's expenses and participants; anonymous callers get the degraded
// public view with no related records at all.
func (s *Service) List(ctx context.Context, caller *domain.UserMetadata) ([]domain.TripDetails, error) {
	ts, err := s.trips.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.TripDetails, 0, len(ts))
	for _, t := range ts {
		d := domain.TripDetails{Trip: t}
		if caller != nil {
			if err := s.attachRelated(ctx, &d, listPreviewLimit); err != nil {
				return nil, err
			}
		}
		out = append(out, d)
	}
	return out, nil
}

// Get returns one trip. Anonymous callers get the degraded public view.
func (s *Service) Get(ctx context.Context, caller *domain.UserMetadata, id domain.TripID) (domain.TripDetails, error) {
	t, err := s.trips.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, triprepo.ErrNotFound) {
			return domain.TripDetails{}, tripNotFound()
		}
		return domain.TripDetails{}, err
	}

	d := domain.TripDetails{Trip: t}
	if caller != nil {
		if err := s.attachRelated(ctx, &d, 0); err != nil {
			return domain.TripDetails{}, err
		}
	}
	return d, nil
}

// Create records a new trip. Elevated roles only.
func (s *Service) Create(ctx context.Context, caller domain.UserMetadata, in CreateTripInput) (domain.TripDetails, error) {
	if !authz.CanMutateGlobal(caller.Role) {
		return domain.TripDetails{}, apperror.Forbidden("Only coordinators and administrators may manage trips")
	}

	dest := domain.NormalizeHumanName(in.Destination)
	if dest == "" {
		return domain.TripDetails{}, apperror.Validation("invalid destination", map[string]any{"destination": "must be non-empty"})
	}
	if in.StartDate.IsZero() {
		return domain.TripDetails{}, apperror.Validation("invalid startDate", map[string]any{"startDate": "must be a valid date"})
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return domain.TripDetails{}, apperror.Validation("invalid endDate", map[string]any{"endDate": "must not precede startDate"})
	}

	now := s.clk.Now()
	t := domain.Trip{
		ID:          s.newTripID(),
		Destination: dest,
		Description: clonePtr(in.Description),
		StartDate:   in.StartDate,
		EndDate:     cloneTimePtr(in.EndDate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.trips.Create(ctx, t); err != nil {
		return domain.TripDetails{}, err
	}
	return domain.TripDetails{Trip: t}, nil
}

// Update patches a trip. Existence is resolved before the role gate so any
// caller gets 404 for an unknown id.
func (s *Service) Update(ctx context.Context, caller domain.UserMetadata, id domain.TripID, in UpdateTripInput) (domain.TripDetails, error) {
	t, err := s.trips.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, triprepo.ErrNotFound) {
			return domain.TripDetails{}, tripNotFound()
		}
		return domain.TripDetails{}, err
	}
	if !authz.CanMutateGlobal(caller.Role) {
		return domain.TripDetails{}, apperror.Forbidden("Only coordinators and administrators may manage trips")
	}

	if in.Destination.IsSpecified() {
		if in.Destination.IsNull() {
			return domain.TripDetails{}, apperror.Validation("invalid destination", map[string]any{"destination": "cannot be null"})
		}
		dest := domain.NormalizeHumanName(in.Destination.Value())
		if dest == "" {
			return domain.TripDetails{}, apperror.Validation("invalid destination", map[string]any{"destination": "must be non-empty"})
		}
		t.Destination = dest
	}
	if in.Description.IsSpecified() {
		if in.Description.IsNull() {
			t.Description = nil
		} else {
			v := in.Description.Value()
			t.Description = &v
		}
	}
	if in.StartDate.IsSpecified() {
		if in.StartDate.IsNull() {
			return domain.TripDetails{}, apperror.Validation("invalid startDate", map[string]any{"startDate": "cannot be null"})
		}
		t.StartDate = in.StartDate.Value().UTC()
	}
	if in.EndDate.IsSpecified() {
		if in.EndDate.IsNull() {
			t.EndDate = nil
		} else {
			v := in.EndDate.Value().UTC()
			t.EndDate = &v
		}
	}
	if t.EndDate != nil && t.EndDate.Before(t.StartDate) {
		return domain.TripDetails{}, apperror.Validation("invalid endDate", map[string]any{"endDate": "must not precede startDate"})
	}

	t.UpdatedAt = s.clk.Now()
	if err := s.trips.Save(ctx, t); err != nil {
		return domain.TripDetails{}, err
	}

	d := domain.TripDetails{Trip: t}
	if err := s.attachRelated(ctx, &d, 0); err != nil {
		return domain.TripDetails{}, err
	}
	return d, nil
}

// Delete removes a trip together with its expenses and participant links.
// The cascade runs as three independent store calls, children first, so a
// failure partway leaves orphan-free children but may keep the trip row.
// There is deliberately no surrounding transaction.
func (s *Service) Delete(ctx context.Context, caller domain.UserMetadata, id domain.TripID) error {
	if _, err := s.trips.GetByID(ctx, id); err != nil {
		if errors.Is(err, triprepo.ErrNotFound) {
			return tripNotFound()
		}
		return err
	}
	if !authz.CanMutateGlobal(caller.Role) {
		return apperror.Forbidden("Only coordinators and administrators may manage trips")
	}

	if err := s.expenses.DeleteByTrip(ctx, id); err != nil {
		return err
	}
	if err := s.links.DeleteByTrip(ctx, id); err != nil {
		return err
	}
	return s.trips.Delete(ctx, id)
}

func (s *Service) attachRelated(ctx context.Context, d *domain.TripDetails, limit int) error {
	es, err := s.expenses.ListByTrip(ctx, d.ID, limit)
	if err != nil {
		return err
	}
	d.Expenses = es

	links, err := s.links.ListByTrip(ctx, d.ID)
	if err != nil {
		return err
	}
	ps := make([]domain.Participant, 0, len(links))
	for _, l := range links {
		if limit > 0 && len(ps) == limit {
			break
		}
		p, err := s.participants.GetByID(ctx, l.ParticipantID)
		if err != nil {
			if errors.Is(err, participantrepo.ErrNotFound) {
				continue
			}
			return err
		}
		ps = append(ps, p)
	}
	d.Participants = ps
	return nil
}

func tripNotFound() *apperror.Error {
	return apperror.NotFound("TRIP_NOT_FOUND", "Trip not found")
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTimePtr(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := p.UTC()
	return &v
}

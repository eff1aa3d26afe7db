package participants

import (
	"context"
	"errors"
	"net/mail"

	"github.com/google/uuid"

	"github.com/wakacyjne/trip-expense-api/internal/app/apperror"
	"github.com/wakacyjne/trip-expense-api/internal/app/authz"
	"github.com/wakacyjne/trip-expense-api/internal/domain"
	clockport "github.com/wakacyjne/trip-expense-api/internal/ports/out/clock"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/participantrepo"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/triplinkrepo"
)

// Service covers the participant resource. Participants are owned by their
// creator; USER-role callers are restricted to the participants they created.
type Service struct {
	participants participantrepo.Repository
	links        triplinkrepo.Repository
	clk          clockport.Clock

	newParticipantID func() domain.ParticipantID
}

func NewService(participants participantrepo.Repository, links triplinkrepo.Repository, clk clockport.Clock) *Service {
	return &Service{
		participants: participants,
		links:        links,
		clk:          clk,
		newParticipantID: func() domain.ParticipantID {
			return domain.ParticipantID(uuid.NewString())
		},
	}
}

// Optional is a tri-state field used to distinguish:
// - unspecified (omitted)
// - specified as null
// - specified with a value
type Optional[T any] struct {
	specified bool
	isNull    bool
	value     T
}

func Unspecified[T any]() Optional[T] { return Optional[T]{} }
func Null[T any]() Optional[T]        { return Optional[T]{specified: true, isNull: true} }
func Some[T any](v T) Optional[T]     { return Optional[T]{specified: true, value: v} }

func (o Optional[T]) IsSpecified() bool { return o.specified }
func (o Optional[T]) IsNull() bool      { return o.specified && o.isNull }
func (o Optional[T]) Value() T          { return o.value }

type CreateParticipantInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     *string
}

type UpdateParticipantInput struct {
	FirstName Optional[string]
	LastName  Optional[string]
	Email     Optional[string]
	Phone     Optional[string]
}

// List returns participants visible to the caller: the full collection for
// elevated roles, only self-created rows for USER. The filter runs in the
// store so foreign ids and counts never leave it.
func (s *Service) List(ctx context.Context, caller domain.UserMetadata) ([]domain.Participant, error) {
	return s.participants.List(ctx, authz.OwnerFilter(caller))
}

func (s *Service) Get(ctx context.Context, caller domain.UserMetadata, id domain.ParticipantID) (domain.Participant, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return domain.Participant{}, err
	}
	if !authz.CanAccessOwned(caller, p.CreatedBy) {
		return domain.Participant{}, forbidden()
	}
	return p, nil
}

// Create records a participant owned by the caller. Ownership is immutable
// afterwards.
func (s *Service) Create(ctx context.Context, caller domain.UserMetadata, in CreateParticipantInput) (domain.Participant, error) {
	first := domain.NormalizeHumanName(in.FirstName)
	last := domain.NormalizeHumanName(in.LastName)
	if first == "" || last == "" {
		return domain.Participant{}, apperror.Validation("invalid name", map[string]any{
			"firstName": "must be non-empty",
			"lastName":  "must be non-empty",
		})
	}
	if err := validateEmail(in.Email); err != nil {
		return domain.Participant{}, apperror.Validation("invalid email", map[string]any{"email": err.Error()})
	}

	now := s.clk.Now()
	owner := caller.UserID
	p := domain.Participant{
		ID:        s.newParticipantID(),
		FirstName: first,
		LastName:  last,
		Email:     in.Email,
		Phone:     clonePtr(in.Phone),
		CreatedBy: &owner,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.participants.Create(ctx, p); err != nil {
		return domain.Participant{}, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, caller domain.UserMetadata, id domain.ParticipantID, in UpdateParticipantInput) (domain.Participant, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return domain.Participant{}, err
	}
	if !authz.CanAccessOwned(caller, p.CreatedBy) {
		return domain.Participant{}, forbidden()
	}

	if in.FirstName.IsSpecified() {
		v := domain.NormalizeHumanName(in.FirstName.Value())
		if in.FirstName.IsNull() || v == "" {
			return domain.Participant{}, apperror.Validation("invalid firstName", map[string]any{"firstName": "must be non-empty"})
		}
		p.FirstName = v
	}
	if in.LastName.IsSpecified() {
		v := domain.NormalizeHumanName(in.LastName.Value())
		if in.LastName.IsNull() || v == "" {
			return domain.Participant{}, apperror.Validation("invalid lastName", map[string]any{"lastName": "must be non-empty"})
		}
		p.LastName = v
	}
	if in.Email.IsSpecified() {
		if in.Email.IsNull() {
			return domain.Participant{}, apperror.Validation("invalid email", map[string]any{"email": "cannot be null"})
		}
		if err := validateEmail(in.Email.Value()); err != nil {
			return domain.Participant{}, apperror.Validation("invalid email", map[string]any{"email": err.Error()})
		}
		p.Email = in.Email.Value()
	}
	if in.Phone.IsSpecified() {
		if in.Phone.IsNull() {
			p.Phone = nil
		} else {
			v := in.Phone.Value()
			p.Phone = &v
		}
	}

	p.UpdatedAt = s.clk.Now()
	if err := s.participants.Save(ctx, p); err != nil {
		return domain.Participant{}, err
	}
	return p, nil
}

// Delete removes a participant and, first, all of their trip links. The two
// store calls are independent; see the trip cascade note for the failure
// window this leaves open.
func (s *Service) Delete(ctx context.Context, caller domain.UserMetadata, id domain.ParticipantID) error {
	p, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanAccessOwned(caller, p.CreatedBy) {
		return forbidden()
	}

	if err := s.links.DeleteByParticipant(ctx, id); err != nil {
		return err
	}
	return s.participants.Delete(ctx, id)
}

func (s *Service) load(ctx context.Context, id domain.ParticipantID) (domain.Participant, error) {
	p, err := s.participants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, participantrepo.ErrNotFound) {
			return domain.Participant{}, apperror.NotFound("PARTICIPANT_NOT_FOUND", "Participant not found")
		}
		return domain.Participant{}, err
	}
	return p, nil
}

func forbidden() *apperror.Error {
	return apperror.Forbidden("You don't have access to this participant")
}

func validateEmail(email string) error {
	if email == "" {
		return errors.New("must be non-empty")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return err
	}
	if addr.Address != email {
		return errors.New("must be a bare email address")
	}
	return nil
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

package users

import (
	"context"
	"errors"

	"github.com/wakacyjne/trip-expense-api/internal/app/apperror"
	"github.com/wakacyjne/trip-expense-api/internal/app/authz"
	"github.com/wakacyjne/trip-expense-api/internal/domain"
	clockport "github.com/wakacyjne/trip-expense-api/internal/ports/out/clock"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/userrepo"
)

// Service covers account administration and profile updates.
type Service struct {
	users userrepo.Repository
	clk   clockport.Clock
}

func NewService(users userrepo.Repository, clk clockport.Clock) *Service {
	return &Service{users: users, clk: clk}
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

type UpdateProfileInput struct {
	Name    Optional[string]
	AboutMe Optional[string]

	// TargetEmail selects another account; only ADMIN may use it.
	TargetEmail *string
}

type Profile struct {
	Email   string
	Name    *string
	AboutMe *string
}

// EnableAccount sets the enabled flag. ADMIN only.
func (s *Service) EnableAccount(ctx context.Context, caller domain.UserMetadata, email string) error {
	return s.setEnabled(ctx, caller, email, true)
}

// DisableAccount clears the enabled flag, blocking future sign-ins. Tokens
// already issued keep validating until they expire (expiry is the only token
// invalidation mechanism). ADMIN only.
func (s *Service) DisableAccount(ctx context.Context, caller domain.UserMetadata, email string) error {
	return s.setEnabled(ctx, caller, email, false)
}

func (s *Service) setEnabled(ctx context.Context, caller domain.UserMetadata, email string, enabled bool) error {
	if !authz.IsAdmin(caller.Role) {
		return apperror.Forbidden("Only administrators may enable or disable accounts")
	}

	u, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return apperror.NotFound("USER_NOT_FOUND", "User not found")
		}
		return err
	}

	u.IsEnabled = enabled
	u.UpdatedAt = s.clk.Now()
	return s.users.Update(ctx, u)
}

// UpdateProfile updates name/aboutMe on the caller's own account, or on
// another account when the caller is ADMIN and TargetEmail is set.
func (s *Service) UpdateProfile(ctx context.Context, caller domain.UserMetadata, in UpdateProfileInput) (Profile, error) {
	email := caller.Email
	if in.TargetEmail != nil {
		if !authz.IsAdmin(caller.Role) {
			return Profile{}, apperror.Forbidden("You don't have permission to update other users' data")
		}
		email = domain.NormalizeEmail(*in.TargetEmail)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return Profile{}, apperror.NotFound("USER_NOT_FOUND", "User not found")
		}
		return Profile{}, err
	}

	applyOptional(&u.Name, in.Name)
	applyOptional(&u.AboutMe, in.AboutMe)
	u.UpdatedAt = s.clk.Now()

	if err := s.users.Update(ctx, u); err != nil {
		return Profile{}, err
	}
	return Profile{Email: u.Email, Name: u.Name, AboutMe: u.AboutMe}, nil
}

// MetadataByEmail resolves a user to caller metadata.
func (s *Service) MetadataByEmail(ctx context.Context, email string) (domain.UserMetadata, error) {
	u, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return domain.UserMetadata{}, apperror.NotFound("USER_NOT_FOUND", "User not found")
		}
		return domain.UserMetadata{}, err
	}
	return domain.UserMetadata{UserID: u.ID, Email: u.Email, Role: u.Role}, nil
}

func applyOptional(dst **string, o Optional[string]) {
	if !o.IsSpecified() {
		return
	}
	if o.IsNull() {
		*dst = nil
		return
	}
	v := o.Value()
	*dst = &v
}

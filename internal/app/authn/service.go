package authn

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/wakacyjne/trip-expense-api/internal/app/apperror"
	"github.com/wakacyjne/trip-expense-api/internal/domain"
	"github.com/wakacyjne/trip-expense-api/internal/platform/token"
	clockport "github.com/wakacyjne/trip-expense-api/internal/ports/out/clock"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/userrepo"
)

const (
	minPasswordLen = 6
	maxPasswordLen = 64
)

// Service issues and validates bearer tokens against the user store. It keeps
// no session state: every validation re-reads the store, so role and enabled
// changes take effect on the next request.
type Service struct {
	users userrepo.Repository
	clk   clockport.Clock

	expiry     time.Duration
	bcryptCost int

	newUserID func() domain.UserID
}

func NewService(users userrepo.Repository, clk clockport.Clock, expiry time.Duration, bcryptCost int) *Service {
	if expiry <= 0 {
		expiry = time.Hour
	}
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		users:      users,
		clk:        clk,
		expiry:     expiry,
		bcryptCost: bcryptCost,
		newUserID: func() domain.UserID {
			return domain.UserID(uuid.NewString())
		},
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     *string
	AboutMe  *string
}

// SignIn validates credentials and returns a fresh token. A missing user, a
// disabled account, and a wrong password are deliberately indistinguishable to
// the caller so error variance cannot be used for user enumeration.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, error) {
	email = domain.NormalizeEmail(email)

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return "", invalidCredentials()
		}
		return "", err
	}
	if !u.IsEnabled {
		return "", invalidCredentials()
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", invalidCredentials()
	}

	return token.Encode(u.Email, s.clk.Now()), nil
}

// Register creates an enabled USER-role account and returns a fresh token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (string, error) {
	email := domain.NormalizeEmail(in.Email)
	if err := validateEmail(email); err != nil {
		return "", apperror.Validation("invalid email", map[string]any{"email": err.Error()})
	}
	if n := len(in.Password); n < minPasswordLen || n > maxPasswordLen {
		return "", apperror.Validation("invalid password", map[string]any{
			"password": "must be between 6 and 64 characters",
		})
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return "", apperror.Conflict("USER_ALREADY_EXISTS", "User already exists")
	} else if !errors.Is(err, userrepo.ErrNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return "", err
	}

	now := s.clk.Now()
	u := domain.User{
		ID:           s.newUserID(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		IsEnabled:    true,
		Name:         clonePtr(in.Name),
		AboutMe:      clonePtr(in.AboutMe),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, userrepo.ErrAlreadyExists) {
			return "", apperror.Conflict("USER_ALREADY_EXISTS", "User already exists")
		}
		return "", err
	}

	return token.Encode(email, now), nil
}

// ValidateToken decodes the token, enforces the expiry window, and resolves
// the embedded email against the user store.
func (s *Service) ValidateToken(ctx context.Context, tok string) (domain.UserMetadata, error) {
	issuedAt, email, err := token.Decode(tok)
	if err != nil {
		return domain.UserMetadata{}, apperror.Unauthorized("MALFORMED_TOKEN", "Invalid token format")
	}
	if s.clk.Now().Sub(issuedAt) > s.expiry {
		return domain.UserMetadata{}, apperror.Unauthorized("TOKEN_EXPIRED", "Token expired")
	}

	u, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return domain.UserMetadata{}, apperror.Unauthorized("USER_NOT_FOUND", "User not found")
		}
		return domain.UserMetadata{}, err
	}

	return domain.UserMetadata{UserID: u.ID, Email: u.Email, Role: u.Role}, nil
}

func invalidCredentials() *apperror.Error {
	return apperror.Unauthorized("INVALID_CREDENTIALS",
		"Invalid email or password, or account disabled by administrator")
}

func validateEmail(email string) error {
	if email == "" {
		return errors.New("must be non-empty")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return err
	}
	// Ensure no "Name <email@x>" format sneaks in.
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

package authn

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/wakacyjne/trip-expense-api/internal/adapters/memory/clock"
	memuserrepo "github.com/wakacyjne/trip-expense-api/internal/adapters/memory/userrepo"
	"github.com/wakacyjne/trip-expense-api/internal/app/apperror"
	"github.com/wakacyjne/trip-expense-api/internal/domain"
	"github.com/wakacyjne/trip-expense-api/internal/platform/token"
)

const testBcryptCost = bcrypt.MinCost

func newTestService(t *testing.T) (*Service, *memuserrepo.Repo, *clock.ManualClock) {
	t.Helper()
	repo := memuserrepo.NewRepo()
	clk := clock.NewManualClock(time.UnixMilli(1_700_000_000_000).UTC())
	return NewService(repo, clk, time.Hour, testBcryptCost), repo, clk
}

func seedUser(t *testing.T, repo *memuserrepo.Repo, email, password string, role domain.Role, enabled bool) domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), testBcryptCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	u := domain.User{
		ID:           domain.UserID("id-" + email),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsEnabled:    enabled,
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func wantAppError(t *testing.T, err error, status int, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %d %s, got nil", status, code)
	}
	ae := (*apperror.Error)(nil)
	if !errors.As(err, &ae) || ae.Status != status || ae.Code != code {
		t.Fatalf("err=%v, want %d %s", err, status, code)
	}
}

func TestSignIn_IssuesValidToken(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t)
	seedUser(t, repo, "alice@example.com", "sekretne1", domain.RoleUser, true)

	tok, err := svc.SignIn(context.Background(), "alice@example.com", "sekretne1")
	if err != nil {
		t.Fatalf("SignIn err=%v", err)
	}

	md, err := svc.ValidateToken(context.Background(), tok)
	if err != nil {
		t.Fatalf("ValidateToken err=%v", err)
	}
	if md.Email != "alice@example.com" || md.Role != domain.RoleUser {
		t.Fatalf("metadata=%+v", md)
	}
}

func TestSignIn_FailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t)
	seedUser(t, repo, "alice@example.com", "sekretne1", domain.RoleUser, true)
	seedUser(t, repo, "user@example.com", "poprawne1", domain.RoleUser, false)

	cases := []struct {
		name            string
		email, password string
	}{
		{"unknown user", "nobody@example.com", "whatever1"},
		{"wrong password", "alice@example.com", "wrong-password"},
		{"disabled account with correct password", "user@example.com", "poprawne1"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.SignIn(context.Background(), tc.email, tc.password)
			wantAppError(t, err, 401, "INVALID_CREDENTIALS")
		})
	}
}

func TestRegister_CreatesEnabledUserRoleAccount(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t)

	tok, err := svc.Register(context.Background(), RegisterInput{
		Email:    "Bob@Example.com",
		Password: "haslo123",
	})
	if err != nil {
		t.Fatalf("Register err=%v", err)
	}
	if tok == "" {
		t.Fatalf("expected a token")
	}

	u, err := repo.GetByEmail(context.Background(), "bob@example.com")
	if err != nil {
		t.Fatalf("GetByEmail err=%v", err)
	}
	if u.Role != domain.RoleUser || !u.IsEnabled {
		t.Fatalf("user=%+v, want enabled USER", u)
	}
	if u.PasswordHash == "haslo123" {
		t.Fatalf("password stored in clear")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)

	in := RegisterInput{Email: "carol@example.com", Password: "haslo123"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first Register err=%v", err)
	}
	_, err := svc.Register(context.Background(), in)
	wantAppError(t, err, 409, "USER_ALREADY_EXISTS")
}

func TestRegister_ValidatesInput(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), RegisterInput{Email: "not-an-email", Password: "haslo123"})
	wantAppError(t, err, 400, "VALIDATION_ERROR")

	_, err = svc.Register(context.Background(), RegisterInput{Email: "short@example.com", Password: "abc"})
	wantAppError(t, err, 400, "VALIDATION_ERROR")
}

func TestValidateToken_Expiry(t *testing.T) {
	t.Parallel()

	svc, repo, clk := newTestService(t)
	seedUser(t, repo, "alice@example.com", "sekretne1", domain.RoleUser, true)

	tok, err := svc.SignIn(context.Background(), "alice@example.com", "sekretne1")
	if err != nil {
		t.Fatalf("SignIn err=%v", err)
	}

	clk.Advance(time.Hour - time.Millisecond)
	if _, err := svc.ValidateToken(context.Background(), tok); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}

	clk.Advance(2 * time.Millisecond)
	_, err = svc.ValidateToken(context.Background(), tok)
	wantAppError(t, err, 401, "TOKEN_EXPIRED")
}

func TestValidateToken_Malformed(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)

	for _, tok := range []string{"", "garbage", "token_123", "token_a:b:c"} {
		_, err := svc.ValidateToken(context.Background(), tok)
		wantAppError(t, err, 401, "MALFORMED_TOKEN")
	}
}

func TestValidateToken_UnresolvableEmail(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t)
	seedUser(t, repo, "alice@example.com", "sekretne1", domain.RoleUser, true)

	// The codec is unsigned, so a structurally valid unexpired token for an
	// unknown email is forgeable; resolution against the store fails closed.
	forged := token.Encode("ghost@example.com", time.UnixMilli(1_700_000_000_000).UTC())
	_, err := svc.ValidateToken(context.Background(), forged)
	wantAppError(t, err, 401, "USER_NOT_FOUND")
}

func TestValidateToken_Idempotent(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t)
	seedUser(t, repo, "alice@example.com", "sekretne1", domain.RoleAdmin, true)

	tok, err := svc.SignIn(context.Background(), "alice@example.com", "sekretne1")
	if err != nil {
		t.Fatalf("SignIn err=%v", err)
	}

	first, err := svc.ValidateToken(context.Background(), tok)
	if err != nil {
		t.Fatalf("first validation err=%v", err)
	}
	second, err := svc.ValidateToken(context.Background(), tok)
	if err != nil {
		t.Fatalf("second validation err=%v", err)
	}
	if first != second {
		t.Fatalf("validations differ: %+v vs %+v", first, second)
	}
}

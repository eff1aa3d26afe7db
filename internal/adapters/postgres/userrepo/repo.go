package userrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/wakacyjne/trip-expense-api/internal/adapters/postgres"
	"github.com/wakacyjne/trip-expense-api/internal/domain"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/userrepo"
)

// Repo is a Postgres implementation of userrepo.Repository. Email is the key
// and is stored lowercased so lookups are case-insensitive.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, u domain.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (
			email, id, password_hash, role, is_enabled, name, about_me,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		emailKey(u.Email),
		string(u.ID),
		u.PasswordHash,
		string(u.Role),
		u.IsEnabled,
		u.Name,
		u.AboutMe,
		u.CreatedAt.UTC(),
		u.UpdatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return userrepo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, u domain.User) error {
	// Email, id and created_at are immutable; everything else follows the
	// given struct.
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password_hash = $2,
		    role          = $3,
		    is_enabled    = $4,
		    name          = $5,
		    about_me      = $6,
		    updated_at    = $7
		WHERE email = $1
	`,
		emailKey(u.Email),
		u.PasswordHash,
		string(u.Role),
		u.IsEnabled,
		u.Name,
		u.AboutMe,
		u.UpdatedAt.UTC(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return userrepo.ErrNotFound
	}
	return nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var (
		u    domain.User
		id   string
		role string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT email, id, password_hash, role, is_enabled, name, about_me,
		       created_at, updated_at
		FROM users
		WHERE email = $1
	`, emailKey(email)).Scan(
		&u.Email, &id, &u.PasswordHash, &role, &u.IsEnabled,
		&u.Name, &u.AboutMe, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, userrepo.ErrNotFound
		}
		return domain.User{}, err
	}
	u.ID = domain.UserID(id)
	u.Role = domain.Role(role)
	return u, nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

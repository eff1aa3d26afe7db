package participantrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/wakacyjne/trip-expense-api/internal/adapters/postgres"
	"github.com/wakacyjne/trip-expense-api/internal/domain"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/participantrepo"
)

// Repo is a Postgres implementation of participantrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, p domain.Participant) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO participants (id, first_name, last_name, email, phone, created_by, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		string(p.ID),
		p.FirstName,
		p.LastName,
		p.Email,
		p.Phone,
		userIDPtr(p.CreatedBy),
		p.CreatedAt.UTC(),
		p.UpdatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return participantrepo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Save persists mutable fields. created_by and created_at never change: the
// owner is recorded once at creation.
func (r *Repo) Save(ctx context.Context, p domain.Participant) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE participants
		SET first_name = $2,
		    last_name  = $3,
		    email      = $4,
		    phone      = $5,
		    updated_at = $6
		WHERE id = $1
	`,
		string(p.ID),
		p.FirstName,
		p.LastName,
		p.Email,
		p.Phone,
		p.UpdatedAt.UTC(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return participantrepo.ErrNotFound
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.ParticipantID) (domain.Participant, error) {
	p, err := scanParticipant(r.pool.QueryRow(ctx, selectParticipants+` WHERE id = $1`, string(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Participant{}, participantrepo.ErrNotFound
		}
		return domain.Participant{}, err
	}
	return p, nil
}

func (r *Repo) List(ctx context.Context, ownedBy *domain.UserID) ([]domain.Participant, error) {
	q := selectParticipants + ` ORDER BY created_at DESC, id`
	args := []any{}
	if ownedBy != nil {
		q = selectParticipants + ` WHERE created_by = $1 ORDER BY created_at DESC, id`
		args = append(args, string(*ownedBy))
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Participant, 0)
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Delete(ctx context.Context, id domain.ParticipantID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM participants WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return participantrepo.ErrNotFound
	}
	return nil
}

const selectParticipants = `
	SELECT id, first_name, last_name, email, phone, created_by, created_at, updated_at
	FROM participants`

func scanParticipant(row pgx.Row) (domain.Participant, error) {
	var (
		p         domain.Participant
		id        string
		createdBy *string
	)
	if err := row.Scan(&id, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &createdBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return domain.Participant{}, err
	}
	p.ID = domain.ParticipantID(id)
	if createdBy != nil {
		owner := domain.UserID(*createdBy)
		p.CreatedBy = &owner
	}
	return p, nil
}

func userIDPtr(id *domain.UserID) *string {
	if id == nil {
		return nil
	}
	s := string(*id)
	return &s
}

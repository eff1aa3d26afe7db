package triprepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/wakacyjne/trip-expense-api/internal/adapters/postgres"
	"github.com/wakacyjne/trip-expense-api/internal/domain"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/triprepo"
)

// Repo is a Postgres implementation of triprepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, t domain.Trip) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO trips (id, destination, description, start_date, end_date, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		string(t.ID),
		t.Destination,
		t.Description,
		t.StartDate.UTC(),
		utcPtr(t.EndDate),
		t.CreatedAt.UTC(),
		t.UpdatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return triprepo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repo) Save(ctx context.Context, t domain.Trip) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE trips
		SET destination = $2,
		    description = $3,
		    start_date  = $4,
		    end_date    = $5,
		    updated_at  = $6
		WHERE id = $1
	`,
		string(t.ID),
		t.Destination,
		t.Description,
		t.StartDate.UTC(),
		utcPtr(t.EndDate),
		t.UpdatedAt.UTC(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return triprepo.ErrNotFound
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.TripID) (domain.Trip, error) {
	t, err := scanTrip(r.pool.QueryRow(ctx, selectTrips+` WHERE id = $1`, string(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, triprepo.ErrNotFound
		}
		return domain.Trip{}, err
	}
	return t, nil
}

func (r *Repo) List(ctx context.Context) ([]domain.Trip, error) {
	rows, err := r.pool.Query(ctx, selectTrips+` ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Trip, 0)
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repo) Delete(ctx context.Context, id domain.TripID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM trips WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return triprepo.ErrNotFound
	}
	return nil
}

const selectTrips = `
	SELECT id, destination, description, start_date, end_date, created_at, updated_at
	FROM trips`

func scanTrip(row pgx.Row) (domain.Trip, error) {
	var (
		t  domain.Trip
		id string
	)
	if err := row.Scan(&id, &t.Destination, &t.Description, &t.StartDate, &t.EndDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return domain.Trip{}, err
	}
	t.ID = domain.TripID(id)
	return t, nil
}

func utcPtr(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := p.UTC()
	return &v
}

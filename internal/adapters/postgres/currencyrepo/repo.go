package currencyrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wakacyjne/trip-expense-api/internal/domain"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/currencyrepo"
)

// Repo is a Postgres implementation of currencyrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Upsert(ctx context.Context, c domain.Currency) (domain.Currency, error) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO currencies (code, rate, updated_at)
		VALUES ($1,$2,$3)
		ON CONFLICT (code) DO UPDATE
		SET rate = EXCLUDED.rate, updated_at = EXCLUDED.updated_at
	`, c.Code, c.Rate, c.UpdatedAt.UTC())
	if err != nil {
		return domain.Currency{}, err
	}
	return c, nil
}

func (r *Repo) GetByCode(ctx context.Context, code string) (domain.Currency, error) {
	var c domain.Currency
	err := r.pool.QueryRow(ctx,
		`SELECT code, rate, updated_at FROM currencies WHERE code = $1`, code,
	).Scan(&c.Code, &c.Rate, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Currency{}, currencyrepo.ErrNotFound
		}
		return domain.Currency{}, err
	}
	return c, nil
}

func (r *Repo) List(ctx context.Context) ([]domain.Currency, error) {
	rows, err := r.pool.Query(ctx, `SELECT code, rate, updated_at FROM currencies ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Currency, 0)
	for rows.Next() {
		var c domain.Currency
		if err := rows.Scan(&c.Code, &c.Rate, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

package paymentrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wakacyjne/trip-expense-api/internal/domain"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/paymentrepo"
)

// Repo is a Postgres implementation of paymentrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, p domain.Payment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO payments (id, amount, currency_code, amount_pln, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, string(p.ID), p.Amount, p.CurrencyCode, p.AmountPLN, p.CreatedAt.UTC())
	return err
}

func (r *Repo) GetByID(ctx context.Context, id domain.PaymentID) (domain.Payment, error) {
	p, err := scanPayment(r.pool.QueryRow(ctx, selectPayments+` WHERE id = $1`, string(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Payment{}, paymentrepo.ErrNotFound
		}
		return domain.Payment{}, err
	}
	return p, nil
}

func (r *Repo) List(ctx context.Context) ([]domain.Payment, error) {
	rows, err := r.pool.Query(ctx, selectPayments+` ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

const selectPayments = `
	SELECT id, amount, currency_code, amount_pln, created_at
	FROM payments`

func scanPayment(row pgx.Row) (domain.Payment, error) {
	var (
		p  domain.Payment
		id string
	)
	if err := row.Scan(&id, &p.Amount, &p.CurrencyCode, &p.AmountPLN, &p.CreatedAt); err != nil {
		return domain.Payment{}, err
	}
	p.ID = domain.PaymentID(id)
	return p, nil
}

package expenserepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/wakacyjne/trip-expense-api/internal/adapters/postgres"
	"github.com/wakacyjne/trip-expense-api/internal/domain"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/expenserepo"
)

// Repo is a Postgres implementation of expenserepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, e domain.Expense) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO expenses (id, trip_id, amount, category, description, created_by, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		string(e.ID),
		string(e.TripID),
		e.Amount,
		string(e.Category),
		e.Description,
		userIDPtr(e.CreatedBy),
		e.CreatedAt.UTC(),
		e.UpdatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return expenserepo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Save persists mutable fields; created_by and created_at never change.
func (r *Repo) Save(ctx context.Context, e domain.Expense) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE expenses
		SET trip_id     = $2,
		    amount      = $3,
		    category    = $4,
		    description = $5,
		    updated_at  = $6
		WHERE id = $1
	`,
		string(e.ID),
		string(e.TripID),
		e.Amount,
		string(e.Category),
		e.Description,
		e.UpdatedAt.UTC(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return expenserepo.ErrNotFound
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.ExpenseID) (domain.Expense, error) {
	e, err := scanExpense(r.pool.QueryRow(ctx, selectExpenses+` WHERE id = $1`, string(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Expense{}, expenserepo.ErrNotFound
		}
		return domain.Expense{}, err
	}
	return e, nil
}

func (r *Repo) List(ctx context.Context, ownedBy *domain.UserID) ([]domain.Expense, error) {
	q := selectExpenses + ` ORDER BY created_at DESC, id`
	args := []any{}
	if ownedBy != nil {
		q = selectExpenses + ` WHERE created_by = $1 ORDER BY created_at DESC, id`
		args = append(args, string(*ownedBy))
	}
	return r.queryExpenses(ctx, q, args...)
}

func (r *Repo) ListByTrip(ctx context.Context, tripID domain.TripID, limit int) ([]domain.Expense, error) {
	q := selectExpenses + ` WHERE trip_id = $1 ORDER BY created_at DESC, id`
	if limit > 0 {
		q += fmt.Sprintf(` LIMIT %d`, limit)
	}
	return r.queryExpenses(ctx, q, string(tripID))
}

func (r *Repo) Delete(ctx context.Context, id domain.ExpenseID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return expenserepo.ErrNotFound
	}
	return nil
}

func (r *Repo) DeleteByTrip(ctx context.Context, tripID domain.TripID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE trip_id = $1`, string(tripID))
	return err
}

func (r *Repo) queryExpenses(ctx context.Context, q string, args ...any) ([]domain.Expense, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

const selectExpenses = `
	SELECT id, trip_id, amount, category, description, created_by, created_at, updated_at
	FROM expenses`

func scanExpense(row pgx.Row) (domain.Expense, error) {
	var (
		e         domain.Expense
		id        string
		tripID    string
		category  string
		createdBy *string
	)
	if err := row.Scan(&id, &tripID, &e.Amount, &category, &e.Description, &createdBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return domain.Expense{}, err
	}
	e.ID = domain.ExpenseID(id)
	e.TripID = domain.TripID(tripID)
	e.Category = domain.ExpenseCategory(category)
	if createdBy != nil {
		owner := domain.UserID(*createdBy)
		e.CreatedBy = &owner
	}
	return e, nil
}

func userIDPtr(id *domain.UserID) *string {
	if id == nil {
		return nil
	}
	s := string(*id)
	return &s
}

package triplinkrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/wakacyjne/trip-expense-api/internal/adapters/postgres"
	"github.com/wakacyjne/trip-expense-api/internal/domain"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/triplinkrepo"
)

// Repo is a Postgres implementation of triplinkrepo.Repository. The composite
// primary key enforces pair uniqueness.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, l domain.TripParticipant) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO trip_participants (trip_id, participant_id, created_at)
		VALUES ($1,$2,$3)
	`,
		string(l.TripID),
		string(l.ParticipantID),
		l.CreatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return triplinkrepo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, tripID domain.TripID, participantID domain.ParticipantID) (domain.TripParticipant, error) {
	l, err := scanLink(r.pool.QueryRow(ctx,
		selectLinks+` WHERE trip_id = $1 AND participant_id = $2`,
		string(tripID), string(participantID)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripParticipant{}, triplinkrepo.ErrNotFound
		}
		return domain.TripParticipant{}, err
	}
	return l, nil
}

func (r *Repo) List(ctx context.Context) ([]domain.TripParticipant, error) {
	return r.queryLinks(ctx, selectLinks+linkOrder)
}

func (r *Repo) ListByTrip(ctx context.Context, tripID domain.TripID) ([]domain.TripParticipant, error) {
	return r.queryLinks(ctx, selectLinks+` WHERE trip_id = $1`+linkOrder, string(tripID))
}

func (r *Repo) ListByParticipant(ctx context.Context, participantID domain.ParticipantID) ([]domain.TripParticipant, error) {
	return r.queryLinks(ctx, selectLinks+` WHERE participant_id = $1`+linkOrder, string(participantID))
}

func (r *Repo) ListByParticipants(ctx context.Context, participantIDs []domain.ParticipantID) ([]domain.TripParticipant, error) {
	if len(participantIDs) == 0 {
		return []domain.TripParticipant{}, nil
	}
	ids := make([]string, 0, len(participantIDs))
	for _, id := range participantIDs {
		ids = append(ids, string(id))
	}
	return r.queryLinks(ctx, selectLinks+` WHERE participant_id = ANY($1)`+linkOrder, ids)
}

func (r *Repo) Delete(ctx context.Context, tripID domain.TripID, participantID domain.ParticipantID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM trip_participants WHERE trip_id = $1 AND participant_id = $2`,
		string(tripID), string(participantID))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return triplinkrepo.ErrNotFound
	}
	return nil
}

func (r *Repo) DeleteByTrip(ctx context.Context, tripID domain.TripID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM trip_participants WHERE trip_id = $1`, string(tripID))
	return err
}

func (r *Repo) DeleteByParticipant(ctx context.Context, participantID domain.ParticipantID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM trip_participants WHERE participant_id = $1`, string(participantID))
	return err
}

func (r *Repo) queryLinks(ctx context.Context, q string, args ...any) ([]domain.TripParticipant, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.TripParticipant, 0)
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

const selectLinks = `
	SELECT trip_id, participant_id, created_at
	FROM trip_participants`

const linkOrder = ` ORDER BY trip_id, participant_id`

func scanLink(row pgx.Row) (domain.TripParticipant, error) {
	var (
		l             domain.TripParticipant
		tripID        string
		participantID string
	)
	if err := row.Scan(&tripID, &participantID, &l.CreatedAt); err != nil {
		return domain.TripParticipant{}, err
	}
	l.TripID = domain.TripID(tripID)
	l.ParticipantID = domain.ParticipantID(participantID)
	return l, nil
}

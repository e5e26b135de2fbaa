package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/spanapp/span-backend/internal/domain"
	"github.com/spanapp/span-backend/internal/repository"
)

type signalRepository struct {
	db *sqlx.DB
}

func NewSignalRepository(db *sqlx.DB) repository.SignalRepository {
	return &signalRepository{db: db}
}

// Insert writes a signal, silently absorbing redelivery of an already
// persisted ID.
func (r *signalRepository) Insert(ctx context.Context, signal *domain.InteractionSignal) error {
	query := `
		INSERT INTO interaction_signals (
			id, user_id, profile_id, dwell_ms, detail_view_opened,
			outcome, tags, timestamp_ms
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := r.db.ExecContext(
		ctx, query,
		signal.ID, signal.UserID, signal.ProfileID, signal.DwellMs,
		signal.DetailViewOpened, signal.Outcome, pq.Array(signal.Tags),
		signal.TimestampMs,
	)
	return err
}

func (r *signalRepository) ListByUser(ctx context.Context, userID string, sinceMs int64) ([]domain.InteractionSignal, error) {
	query := `
		SELECT id, user_id, profile_id, dwell_ms, detail_view_opened,
		       outcome, tags, timestamp_ms
		FROM interaction_signals
		WHERE user_id = $1 AND timestamp_ms > $2
		ORDER BY timestamp_ms ASC
	`
	rows, err := r.db.QueryContext(ctx, query, userID, sinceMs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signals []domain.InteractionSignal
	for rows.Next() {
		var s domain.InteractionSignal
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.ProfileID, &s.DwellMs, &s.DetailViewOpened,
			&s.Outcome, pq.Array(&s.Tags), &s.TimestampMs,
		); err != nil {
			return nil, err
		}
		signals = append(signals, s)
	}
	return signals, rows.Err()
}

func (r *signalRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM interaction_signals WHERE user_id = $1`, userID)
	return err
}

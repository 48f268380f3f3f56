package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"farm-management-system/api/internal/models"
)

type CropEventsRepo struct {
	pool *pgxpool.Pool
}

func NewCropEventsRepo(pool *pgxpool.Pool) *CropEventsRepo {
	return &CropEventsRepo{pool: pool}
}

// Insert is idempotent on event_id so a replayed Kafka message does not
// duplicate the log entry.
func (r *CropEventsRepo) Insert(ctx context.Context, event models.CropEvent) error {
	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO crop_events (event_id, crop_id, event_type, occurred_at, payload)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (event_id) DO NOTHING
	`, event.EventID, event.CropID, event.EventType, event.OccurredAt, event.Payload)
	return err
}

func (r *CropEventsRepo) ListByCrop(ctx context.Context, cropID uuid.UUID, limit int) ([]models.CropEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT event_id, crop_id, event_type, occurred_at, payload
		FROM crop_events
		WHERE crop_id = $1
		ORDER BY occurred_at DESC
		LIMIT $2
	`, cropID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.CropEvent{}
	for rows.Next() {
		var event models.CropEvent
		if err := rows.Scan(&event.EventID, &event.CropID, &event.EventType, &event.OccurredAt, &event.Payload); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

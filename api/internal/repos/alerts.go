package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"farm-management-system/api/internal/models"
)

type AlertsRepo struct {
	pool *pgxpool.Pool
}

func NewAlertsRepo(pool *pgxpool.Pool) *AlertsRepo {
	return &AlertsRepo{pool: pool}
}

func (r *AlertsRepo) Insert(ctx context.Context, db DBTX, alert models.Alert) (models.Alert, error) {
	if alert.AlertID == uuid.Nil {
		alert.AlertID = uuid.New()
	}
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now().UTC()
	}
	if alert.Severity == "" {
		alert.Severity = "low"
	}
	err := db.QueryRow(ctx, `
		INSERT INTO alerts (
			alert_id, crop_id, owner_id, type, title, message, severity, is_read, action_taken, created_at, resolved_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
		RETURNING alert_id, crop_id, owner_id, type, title, message, severity, is_read, action_taken, created_at, resolved_at
	`, alert.AlertID, alert.CropID, alert.OwnerID, alert.Type, alert.Title, alert.Message, alert.Severity, alert.IsRead, alert.ActionTaken, alert.CreatedAt, alert.ResolvedAt).
		Scan(&alert.AlertID, &alert.CropID, &alert.OwnerID, &alert.Type, &alert.Title, &alert.Message, &alert.Severity, &alert.IsRead, &alert.ActionTaken, &alert.CreatedAt, &alert.ResolvedAt)
	return alert, err
}

func (r *AlertsRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]models.Alert, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT alert_id, crop_id, owner_id, type, title, message, severity, is_read, action_taken, created_at, resolved_at
		FROM alerts
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	alerts := []models.Alert{}
	for rows.Next() {
		var alert models.Alert
		if err := rows.Scan(
			&alert.AlertID, &alert.CropID, &alert.OwnerID, &alert.Type, &alert.Title, &alert.Message, &alert.Severity,
			&alert.IsRead, &alert.ActionTaken, &alert.CreatedAt, &alert.ResolvedAt,
		); err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, rows.Err()
}

func (r *AlertsRepo) CountUnread(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM alerts WHERE owner_id = $1 AND is_read = false
	`, ownerID).Scan(&count)
	return count, err
}

func (r *AlertsRepo) MarkRead(ctx context.Context, alertID uuid.UUID, ownerID uuid.UUID) (models.Alert, error) {
	var alert models.Alert
	err := r.pool.QueryRow(ctx, `
		UPDATE alerts SET is_read = true
		WHERE alert_id = $1 AND owner_id = $2
		RETURNING alert_id, crop_id, owner_id, type, title, message, severity, is_read, action_taken, created_at, resolved_at
	`, alertID, ownerID).
		Scan(&alert.AlertID, &alert.CropID, &alert.OwnerID, &alert.Type, &alert.Title, &alert.Message, &alert.Severity, &alert.IsRead, &alert.ActionTaken, &alert.CreatedAt, &alert.ResolvedAt)
	return alert, err
}

func (r *AlertsRepo) Resolve(ctx context.Context, alertID uuid.UUID, ownerID uuid.UUID, actionTaken string) (models.Alert, error) {
	var alert models.Alert
	err := r.pool.QueryRow(ctx, `
		UPDATE alerts SET is_read = true, action_taken = $3, resolved_at = now()
		WHERE alert_id = $1 AND owner_id = $2
		RETURNING alert_id, crop_id, owner_id, type, title, message, severity, is_read, action_taken, created_at, resolved_at
	`, alertID, ownerID, nullIfEmpty(actionTaken)).
		Scan(&alert.AlertID, &alert.CropID, &alert.OwnerID, &alert.Type, &alert.Title, &alert.Message, &alert.Severity, &alert.IsRead, &alert.ActionTaken, &alert.CreatedAt, &alert.ResolvedAt)
	return alert, err
}

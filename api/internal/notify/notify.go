// Package notify is the best-effort alert port. Emit failures are for
// the caller to log and count, never to propagate.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"farm-management-system/api/internal/models"
	"farm-management-system/api/internal/repos"
	"farm-management-system/shared/events"
)

type Sink interface {
	Emit(ctx context.Context, alert models.Alert) (models.Alert, error)
}

// AlertSink persists the alert row and enqueues a fanout event on the
// alerts topic in one transaction.
type AlertSink struct {
	pool   *pgxpool.Pool
	alerts *repos.AlertsRepo
	outbox *repos.OutboxRepo
}

func NewAlertSink(pool *pgxpool.Pool, alerts *repos.AlertsRepo, outbox *repos.OutboxRepo) *AlertSink {
	return &AlertSink{pool: pool, alerts: alerts, outbox: outbox}
}

func (s *AlertSink) Emit(ctx context.Context, alert models.Alert) (models.Alert, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Alert{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	created, err := s.alerts.Insert(ctx, tx, alert)
	if err != nil {
		_ = tx.Rollback(ctx)
		return models.Alert{}, err
	}

	envelope := events.Envelope{
		EventID:       created.AlertID,
		OccurredAt:    time.Now().UTC(),
		AggregateType: events.AggregateTypeAlert,
		AggregateID:   created.AlertID,
		EventType:     events.EventTypeAlertRaised,
	}
	envelope.Payload, err = json.Marshal(map[string]any{
		"alert_id": created.AlertID,
		"owner_id": created.OwnerID,
		"crop_id":  created.CropID,
		"type":     created.Type,
		"title":    created.Title,
		"severity": created.Severity,
	})
	if err != nil {
		_ = tx.Rollback(ctx)
		return models.Alert{}, err
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		_ = tx.Rollback(ctx)
		return models.Alert{}, err
	}

	event := models.OutboxEvent{
		AggregateType: events.AggregateTypeAlert,
		AggregateID:   created.AlertID,
		Topic:         events.TopicAlerts,
		Payload:       payload,
	}
	if _, err = s.outbox.Insert(ctx, tx, event); err != nil {
		_ = tx.Rollback(ctx)
		return models.Alert{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Alert{}, err
	}
	return created, nil
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"farm-management-system/api/internal/models"
	"farm-management-system/api/internal/repos"
	"farm-management-system/shared/config"
	"farm-management-system/shared/dbx"
	"farm-management-system/shared/events"
	"farm-management-system/shared/influxx"
	"farm-management-system/shared/logx"
	"farm-management-system/shared/metricsx"
	"farm-management-system/shared/mqx"
	"farm-management-system/shared/observability"
)

func main() {
	cfg, problems := config.Load("crop-events-consumer", 8082)
	version := strings.TrimSpace(os.Getenv("VERSION"))
	logger := logx.New(cfg.ServiceName, cfg.Env, version, cfg.LogLevel)

	if cfg.DatabaseURL == "" {
		problems = append(problems, config.Problem{Field: "DATABASE_URL", Message: "DATABASE_URL is required"})
	}
	if len(cfg.KafkaBrokers) == 0 {
		problems = append(problems, config.Problem{Field: "KAFKA_BROKERS", Message: "KAFKA_BROKERS is required"})
	}
	if cfg.KafkaGroupID == "" {
		problems = append(problems, config.Problem{Field: "KAFKA_CONSUMER_GROUP", Message: "KAFKA_CONSUMER_GROUP is required"})
	}
	if len(problems) > 0 {
		logger.Error(context.Background(), "config_invalid", "invalid config",
			slog.String("error_code", "FAILED_PRECONDITION"),
			slog.Any("problems", problems),
		)
		os.Exit(1)
	}

	if cfg.OtelEnabled {
		if shutdown, err := observability.InitTracer(context.Background(), observability.TracerConfig{
			ServiceName: cfg.ServiceName,
			Env:         cfg.Env,
			Endpoint:    cfg.OtelEndpoint,
			Insecure:    cfg.OtelInsecure,
			SampleRatio: cfg.OtelSampleRatio,
		}); err == nil {
			defer func() { _ = shutdown(context.Background()) }()
		}
	}

	dbPool, err := dbx.NewPool(cfg)
	if err != nil {
		logger.Error(context.Background(), "db_init_failed", "db init failed",
			slog.String("error_code", "FAILED_PRECONDITION"),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}
	defer dbPool.Close()

	reader, err := mqx.NewConsumer(cfg, events.TopicCropEvents, cfg.KafkaGroupID)
	if err != nil {
		logger.Error(context.Background(), "kafka_init_failed", "kafka reader init failed",
			slog.String("error_code", "FAILED_PRECONDITION"),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}
	defer reader.Close()

	// Influx is optional; without it the consumer still materializes
	// the crop event log.
	var influx *influxx.Client
	if cfg.InfluxURL != "" {
		influx, err = influxx.New(cfg)
		if err != nil {
			logger.Warn(context.Background(), "influx_init_failed", "influx init failed, skipping series writes",
				slog.String("error", err.Error()),
			)
			influx = nil
		} else {
			defer influx.Close()
		}
	}

	cropEventsRepo := repos.NewCropEventsRepo(dbPool)

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	logger.Info(ctx, "consumer_start", "crop events consumer started",
		slog.String("topic", events.TopicCropEvents),
		slog.String("group", cfg.KafkaGroupID),
	)

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			logger.Error(ctx, "kafka_fetch_failed", "failed to fetch message",
				slog.String("error_code", "INTERNAL_ERROR"),
				slog.String("error", err.Error()),
			)
			time.Sleep(500 * time.Millisecond)
			continue
		}

		spanCtx, span := otel.Tracer("mqx").Start(ctx, "kafka.consume")
		span.SetAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", events.TopicCropEvents),
		)
		if err := handleCropEvent(spanCtx, logger, cropEventsRepo, influx, msg.Value); err != nil {
			span.End()
			logger.Error(ctx, "event_handle_failed", "failed to handle event",
				slog.String("error_code", "INTERNAL_ERROR"),
				slog.String("error", err.Error()),
			)
			continue
		}
		span.End()
		if err := reader.CommitMessages(ctx, msg); err != nil {
			logger.Error(ctx, "kafka_commit_failed", "failed to commit message",
				slog.String("error_code", "INTERNAL_ERROR"),
				slog.String("error", err.Error()),
			)
		}
		stats := reader.Stats()
		metricsx.SetKafkaLag(stats.Topic, cfg.KafkaGroupID, stats.Lag)
	}

	logger.Info(context.Background(), "consumer_stop", "crop events consumer stopped")
}

type cropEventPayload struct {
	GrowthStage    string   `json:"growth_stage"`
	HealthScore    *int     `json:"health_score"`
	EstimatedYield *float64 `json:"estimated_yield"`
	ActualYield    *float64 `json:"actual_yield"`
}

func handleCropEvent(ctx context.Context, logger logx.Logger, cropEventsRepo *repos.CropEventsRepo, influx *influxx.Client, raw []byte) error {
	var envelope events.Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return err
	}
	if envelope.EventID == uuid.Nil || envelope.AggregateID == uuid.Nil {
		return errors.New("missing event_id/aggregate_id")
	}

	event := models.CropEvent{
		EventID:    envelope.EventID,
		CropID:     envelope.AggregateID,
		EventType:  envelope.EventType,
		OccurredAt: envelope.OccurredAt,
		Payload:    envelope.Payload,
	}
	if err := cropEventsRepo.Insert(ctx, event); err != nil {
		return err
	}

	if influx == nil {
		return nil
	}
	var payload cropEventPayload
	if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
		return nil
	}
	fields := map[string]any{}
	if payload.HealthScore != nil {
		fields["health_score"] = *payload.HealthScore
	}
	if payload.EstimatedYield != nil {
		fields["estimated_yield"] = *payload.EstimatedYield
	}
	if payload.ActualYield != nil {
		fields["actual_yield"] = *payload.ActualYield
	}
	if len(fields) == 0 {
		return nil
	}
	tags := map[string]string{
		"crop_id":    envelope.AggregateID.String(),
		"event_type": envelope.EventType,
	}
	if payload.GrowthStage != "" {
		tags["growth_stage"] = payload.GrowthStage
	}
	if err := influx.WritePoint(ctx, "crop_health", tags, fields, envelope.OccurredAt); err != nil {
		metricsx.IncInfluxWriteFailure()
		logger.Warn(ctx, "influx_write_failed", "series write failed",
			slog.String("error", err.Error()),
		)
	}
	return nil
}

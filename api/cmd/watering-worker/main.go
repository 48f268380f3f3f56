package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"farm-management-system/api/internal/models"
	"farm-management-system/api/internal/notify"
	"farm-management-system/api/internal/repos"
	"farm-management-system/shared/cachex"
	"farm-management-system/shared/config"
	"farm-management-system/shared/dbx"
	"farm-management-system/shared/lockx"
	"farm-management-system/shared/logx"
	"farm-management-system/shared/metricsx"
	"farm-management-system/shared/observability"
)

const runnerLockKey = "watering:scan:lock"

func main() {
	cfg, problems := config.Load("watering-worker", 8084)
	version := strings.TrimSpace(os.Getenv("VERSION"))
	logger := logx.New(cfg.ServiceName, cfg.Env, version, cfg.LogLevel)

	if cfg.DatabaseURL == "" {
		problems = append(problems, config.Problem{Field: "DATABASE_URL", Message: "DATABASE_URL is required"})
	}
	if cfg.RedisAddr == "" {
		problems = append(problems, config.Problem{Field: "REDIS_ADDR", Message: "REDIS_ADDR is required"})
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

	cache, err := cachex.New(cfg)
	if err != nil {
		logger.Error(context.Background(), "redis_init_failed", "redis init failed",
			slog.String("error_code", "FAILED_PRECONDITION"),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}
	defer cache.Close()

	cropsRepo := repos.NewCropsRepo(dbPool)
	alertsRepo := repos.NewAlertsRepo(dbPool)
	outboxRepo := repos.NewOutboxRepo(dbPool)
	sink := notify.NewAlertSink(dbPool, alertsRepo, outboxRepo)

	scanInterval := time.Duration(cfg.WateringScanSec) * time.Second
	cooldown := time.Duration(cfg.WateringCooldownHours) * time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info(context.Background(), "shutdown_signal", "received signal", slog.String("signal", sig.String()))
		cancel()
	}()

	logger.Info(ctx, "worker_start", "watering worker started",
		slog.Int("scan_interval_seconds", cfg.WateringScanSec),
		slog.Int("cooldown_hours", cfg.WateringCooldownHours),
	)

	ticker := time.NewTicker(scanInterval)
	defer ticker.Stop()

	runScan(ctx, cfg, logger, cache, cropsRepo, sink, scanInterval, cooldown)
	for {
		select {
		case <-ctx.Done():
			logger.Info(context.Background(), "worker_stop", "watering worker stopped")
			return
		case <-ticker.C:
			runScan(ctx, cfg, logger, cache, cropsRepo, sink, scanInterval, cooldown)
		}
	}
}

// runScan is guarded by a Redis lock so overlapping replicas do not
// double-alert the same crops.
func runScan(ctx context.Context, cfg config.Config, logger logx.Logger, cache *cachex.Client, cropsRepo *repos.CropsRepo, sink notify.Sink, scanInterval time.Duration, cooldown time.Duration) {
	lock, acquired, err := lockx.Acquire(ctx, cache.Client(), runnerLockKey, scanInterval)
	if err != nil {
		logger.Error(ctx, "lock_acquire_failed", "failed to acquire scan lock",
			slog.String("error_code", "INTERNAL_ERROR"),
			slog.String("error", err.Error()),
		)
		return
	}
	if !acquired {
		logger.Debug(ctx, "scan_skipped", "another replica holds the scan lock")
		return
	}
	defer func() {
		_ = lockx.Release(ctx, cache.Client(), lock)
	}()

	now := time.Now().UTC()
	crops, err := cropsRepo.ListNeedingWatering(ctx, now, cfg.OutboxBatchSize)
	if err != nil {
		logger.Error(ctx, "watering_scan_failed", "failed to list crops needing watering",
			slog.String("error_code", "INTERNAL_ERROR"),
			slog.String("error", err.Error()),
		)
		return
	}
	if len(crops) == 0 {
		return
	}

	emitted := 0
	for _, crop := range crops {
		key := "watering:alert:" + crop.CropID.String()
		fresh, err := cache.SetNX(ctx, key, strconv.FormatInt(now.Unix(), 10), cooldown)
		if err != nil {
			logger.Warn(ctx, "cooldown_check_failed", "cooldown check failed, alerting anyway",
				slog.String("crop_id", crop.CropID.String()),
				slog.String("error", err.Error()),
			)
		} else if !fresh {
			continue
		}

		alert := models.Alert{
			CropID:   &crop.CropID,
			OwnerID:  crop.OwnerID,
			Type:     "watering-needed",
			Title:    "Watering Needed",
			Message:  fmt.Sprintf("%s in %s needs watering (every %d days)", crop.CropType, crop.Field, crop.WateringFrequencyDays),
			Severity: "medium",
		}
		if _, err := sink.Emit(ctx, alert); err != nil {
			metricsx.IncAlertEmit(alert.Type, false)
			logger.Warn(ctx, "alert_emit_failed", "watering alert failed",
				slog.String("crop_id", crop.CropID.String()),
				slog.String("error", err.Error()),
			)
			// Free the cooldown so the next scan can retry.
			_ = cache.Delete(ctx, key)
			continue
		}
		metricsx.IncAlertEmit(alert.Type, true)
		metricsx.IncWateringAlert()
		emitted++
	}

	logger.Info(ctx, "watering_scan_done", "watering scan complete",
		slog.Int("candidates", len(crops)),
		slog.Int("alerts_emitted", emitted),
	)
}

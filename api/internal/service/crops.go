// Package service implements the crop mutation protocol: validation,
// lifecycle derivation on write events, optimistic-concurrency appends,
// and best-effort alert emission.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"farm-management-system/api/internal/lifecycle"
	"farm-management-system/api/internal/models"
	"farm-management-system/api/internal/notify"
	"farm-management-system/api/internal/repos"
	"farm-management-system/shared/events"
	"farm-management-system/shared/logx"
	"farm-management-system/shared/metricsx"
)

// maxUpdateRetries bounds the read-modify-write loop when concurrent
// appends race on the same crop row.
const maxUpdateRetries = 3

type CropService struct {
	store  CropStore
	sink   notify.Sink
	logger logx.Logger
	now    func() time.Time
}

func NewCropService(store CropStore, sink notify.Sink, logger logx.Logger) *CropService {
	return &CropService{
		store:  store,
		sink:   sink,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

type CreateCropInput struct {
	OwnerID               uuid.UUID
	Field                 string
	CropType              string
	PlantingDate          time.Time
	Area                  float64
	SoilType              string
	WateringFrequencyDays int
}

func (s *CropService) CreateCrop(ctx context.Context, in CreateCropInput) (models.Crop, error) {
	in.Field = strings.TrimSpace(in.Field)
	in.CropType = strings.TrimSpace(in.CropType)

	missing := []string{}
	if in.Field == "" {
		missing = append(missing, "field")
	}
	if in.CropType == "" {
		missing = append(missing, "cropType")
	}
	if in.PlantingDate.IsZero() {
		missing = append(missing, "plantingDate")
	}
	if math.IsNaN(in.Area) || math.IsInf(in.Area, 0) || in.Area <= 0 {
		missing = append(missing, "area")
	}
	if in.OwnerID == uuid.Nil {
		missing = append(missing, "ownerId")
	}
	if len(missing) > 0 {
		return models.Crop{}, &ValidationError{Fields: missing}
	}

	if in.SoilType == "" {
		in.SoilType = "loamy"
	}
	if in.WateringFrequencyDays <= 0 {
		in.WateringFrequencyDays = 3
	}

	now := s.now()
	stage := lifecycle.GrowthStage(in.PlantingDate, now)
	health := lifecycle.HealthScore(stage, nil)
	yield := lifecycle.EstimatedYield(in.Area, stage, health)

	crop := models.Crop{
		CropID:                uuid.New(),
		OwnerID:               in.OwnerID,
		Field:                 in.Field,
		CropType:              in.CropType,
		PlantingDate:          in.PlantingDate,
		Area:                  in.Area,
		SoilType:              in.SoilType,
		WateringFrequencyDays: in.WateringFrequencyDays,
		GrowthStage:           stage,
		HealthScore:           health,
		EstimatedYield:        yield,
		PestIssues:            []models.PestIssue{},
		Activities: []models.Activity{{
			ActivityType: "planted",
			Date:         now,
			Notes:        fmt.Sprintf("Field %s planted with %s", in.Field, in.CropType),
		}},
	}

	event, err := s.cropEvent(events.EventTypeCropCreated, crop, map[string]any{
		"growth_stage":    stage,
		"health_score":    health,
		"estimated_yield": yield,
	})
	if err != nil {
		return models.Crop{}, err
	}

	created, err := s.store.Create(ctx, crop, event)
	if err != nil {
		return models.Crop{}, err
	}
	metricsx.IncCropCreated()

	s.emitAlert(ctx, models.Alert{
		CropID:   &created.CropID,
		OwnerID:  created.OwnerID,
		Type:     "info",
		Title:    "Crop Planted",
		Message:  fmt.Sprintf("%s has been planted in %s", created.CropType, created.Field),
		Severity: "low",
	})
	return created, nil
}

type PestIssueInput struct {
	Label     string
	Severity  string
	Treatment string
}

// AddPestIssue appends the issue and refreshes the health score against
// the stage already stored. The stage itself is not re-derived here, so
// a crop keeps its stage at the time of its last stage-changing event.
func (s *CropService) AddPestIssue(ctx context.Context, cropID uuid.UUID, in PestIssueInput) (models.Crop, error) {
	in.Label = strings.TrimSpace(in.Label)
	if in.Label == "" {
		return models.Crop{}, &ValidationError{Fields: []string{"label"}}
	}
	if in.Treatment == "" {
		in.Treatment = "Pending"
	}

	updated, err := s.retryUpdate(ctx, cropID, func(crop *models.Crop) (*models.OutboxEvent, error) {
		crop.PestIssues = append(crop.PestIssues, models.PestIssue{
			Label:        in.Label,
			DateReported: s.now(),
			Severity:     in.Severity,
			Treatment:    in.Treatment,
			Status:       lifecycle.PestStatusActive,
		})
		crop.HealthScore = lifecycle.HealthScore(crop.GrowthStage, crop.PestIssues)

		event, err := s.cropEvent(events.EventTypePestReported, *crop, map[string]any{
			"label":        in.Label,
			"severity":     in.Severity,
			"health_score": crop.HealthScore,
		})
		if err != nil {
			return nil, err
		}
		return &event, nil
	})
	if err != nil {
		return models.Crop{}, err
	}
	metricsx.IncPestReported()

	s.emitAlert(ctx, models.Alert{
		CropID:   &updated.CropID,
		OwnerID:  updated.OwnerID,
		Type:     "pest-detected",
		Title:    fmt.Sprintf("Pest Detected: %s", in.Label),
		Message:  fmt.Sprintf("%s detected in %s with %s severity", in.Label, updated.Field, in.Severity),
		Severity: in.Severity,
	})
	return updated, nil
}

type ActivityInput struct {
	ActivityType string
	Notes        string
	Performer    string
}

// LogActivity appends the entry without touching any derived field.
func (s *CropService) LogActivity(ctx context.Context, cropID uuid.UUID, in ActivityInput) (models.Crop, error) {
	in.ActivityType = strings.TrimSpace(in.ActivityType)
	if in.ActivityType == "" {
		return models.Crop{}, &ValidationError{Fields: []string{"activityType"}}
	}

	return s.retryUpdate(ctx, cropID, func(crop *models.Crop) (*models.OutboxEvent, error) {
		now := s.now()
		crop.Activities = append(crop.Activities, models.Activity{
			ActivityType: in.ActivityType,
			Date:         now,
			Notes:        in.Notes,
			Performer:    in.Performer,
		})
		if in.ActivityType == "watering" {
			crop.LastWateredAt = &now
		}

		event, err := s.cropEvent(events.EventTypeActivityAdded, *crop, map[string]any{
			"activity_type": in.ActivityType,
			"performer":     in.Performer,
		})
		if err != nil {
			return nil, err
		}
		return &event, nil
	})
}

type HarvestInput struct {
	ActualYield float64
	Quality     string
	Notes       string
	SoldAmount  float64
	Income      float64
}

// RecordHarvest moves the crop into its terminal state and writes the
// immutable harvest record in the same transaction.
func (s *CropService) RecordHarvest(ctx context.Context, cropID uuid.UUID, in HarvestInput) (models.Crop, models.Harvest, error) {
	for attempt := 0; ; attempt++ {
		crop, err := s.store.Get(ctx, cropID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return models.Crop{}, models.Harvest{}, ErrNotFound
			}
			return models.Crop{}, models.Harvest{}, err
		}

		now := s.now()
		expected := crop.Version
		crop.HarvestDate = &now
		crop.ActualYield = &in.ActualYield
		crop.GrowthStage = lifecycle.StageHarvest

		harvest := models.Harvest{
			CropID:      crop.CropID,
			OwnerID:     crop.OwnerID,
			HarvestDate: now,
			ActualYield: in.ActualYield,
			Quality:     in.Quality,
			Notes:       in.Notes,
			SoldAmount:  in.SoldAmount,
			Income:      in.Income,
		}

		event, err := s.cropEvent(events.EventTypeCropHarvested, crop, map[string]any{
			"actual_yield": in.ActualYield,
			"quality":      in.Quality,
		})
		if err != nil {
			return models.Crop{}, models.Harvest{}, err
		}

		updated, created, err := s.store.Harvest(ctx, crop, expected, harvest, event)
		if err != nil {
			if errors.Is(err, repos.ErrVersionConflict) && attempt < maxUpdateRetries {
				continue
			}
			return models.Crop{}, models.Harvest{}, err
		}
		metricsx.IncHarvestRecorded()

		s.emitAlert(ctx, models.Alert{
			CropID:   &updated.CropID,
			OwnerID:  updated.OwnerID,
			Type:     "harvest-complete",
			Title:    "Crop Harvested",
			Message:  fmt.Sprintf("%s in %s has been harvested. Yield: %v", updated.CropType, updated.Field, in.ActualYield),
			Severity: "low",
		})
		return updated, created, nil
	}
}

type UpdateCropInput struct {
	Field                 string
	CropType              string
	Area                  float64
	SoilType              string
	WateringFrequencyDays int
}

// UpdateCrop rewrites descriptive fields only. Derived lifecycle state
// is left exactly as stored.
func (s *CropService) UpdateCrop(ctx context.Context, cropID uuid.UUID, in UpdateCropInput) (models.Crop, error) {
	in.Field = strings.TrimSpace(in.Field)
	in.CropType = strings.TrimSpace(in.CropType)

	missing := []string{}
	if in.Field == "" {
		missing = append(missing, "field")
	}
	if in.CropType == "" {
		missing = append(missing, "cropType")
	}
	if math.IsNaN(in.Area) || math.IsInf(in.Area, 0) || in.Area <= 0 {
		missing = append(missing, "area")
	}
	if len(missing) > 0 {
		return models.Crop{}, &ValidationError{Fields: missing}
	}

	return s.retryUpdate(ctx, cropID, func(crop *models.Crop) (*models.OutboxEvent, error) {
		crop.Field = in.Field
		crop.CropType = in.CropType
		crop.Area = in.Area
		if in.SoilType != "" {
			crop.SoilType = in.SoilType
		}
		if in.WateringFrequencyDays > 0 {
			crop.WateringFrequencyDays = in.WateringFrequencyDays
		}
		return nil, nil
	})
}

func (s *CropService) GetCrop(ctx context.Context, cropID uuid.UUID) (models.Crop, error) {
	crop, err := s.store.Get(ctx, cropID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Crop{}, ErrNotFound
		}
		return models.Crop{}, err
	}
	return crop, nil
}

func (s *CropService) ListCrops(ctx context.Context, ownerID uuid.UUID) ([]models.Crop, error) {
	return s.store.ListByOwner(ctx, ownerID)
}

func (s *CropService) DeleteCrop(ctx context.Context, cropID uuid.UUID) error {
	deleted, err := s.store.Delete(ctx, cropID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// retryUpdate runs a read-modify-write with a version guard, retrying a
// bounded number of times when a concurrent writer wins the race.
func (s *CropService) retryUpdate(ctx context.Context, cropID uuid.UUID, mutate func(*models.Crop) (*models.OutboxEvent, error)) (models.Crop, error) {
	for attempt := 0; ; attempt++ {
		crop, err := s.store.Get(ctx, cropID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return models.Crop{}, ErrNotFound
			}
			return models.Crop{}, err
		}

		expected := crop.Version
		event, err := mutate(&crop)
		if err != nil {
			return models.Crop{}, err
		}

		updated, err := s.store.Update(ctx, crop, expected, event)
		if err != nil {
			if errors.Is(err, repos.ErrVersionConflict) && attempt < maxUpdateRetries {
				continue
			}
			return models.Crop{}, err
		}
		return updated, nil
	}
}

func (s *CropService) cropEvent(eventType string, crop models.Crop, payload map[string]any) (models.OutboxEvent, error) {
	envelope := events.Envelope{
		EventID:       uuid.New(),
		OccurredAt:    s.now(),
		AggregateType: events.AggregateTypeCrop,
		AggregateID:   crop.CropID,
		EventType:     eventType,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return models.OutboxEvent{}, err
	}
	envelope.Payload = raw

	body, err := json.Marshal(envelope)
	if err != nil {
		return models.OutboxEvent{}, err
	}
	return models.OutboxEvent{
		EventID:       envelope.EventID,
		AggregateType: events.AggregateTypeCrop,
		AggregateID:   crop.CropID,
		Topic:         events.TopicCropEvents,
		Payload:       body,
	}, nil
}

// emitAlert is the single best-effort path: one attempt, failures are
// logged and counted, the caller's result is already decided.
func (s *CropService) emitAlert(ctx context.Context, alert models.Alert) {
	if s.sink == nil {
		return
	}
	if _, err := s.sink.Emit(ctx, alert); err != nil {
		metricsx.IncAlertEmit(alert.Type, false)
		s.logger.Warn(ctx, "alert_emit_failed", "alert emission failed",
			slog.String("alert_type", alert.Type),
			slog.String("error", err.Error()),
		)
		return
	}
	metricsx.IncAlertEmit(alert.Type, true)
}

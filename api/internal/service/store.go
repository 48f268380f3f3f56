package service

import (
	"context"

	"github.com/google/uuid"

	"farm-management-system/api/internal/models"
	"farm-management-system/api/internal/repos"
)

// CropStore is what the mutation protocol needs from persistence.
// Writes that change lifecycle state carry an outbox event so the
// record and its event commit together.
type CropStore interface {
	Create(ctx context.Context, crop models.Crop, event models.OutboxEvent) (models.Crop, error)
	Get(ctx context.Context, cropID uuid.UUID) (models.Crop, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Crop, error)
	Update(ctx context.Context, crop models.Crop, expectedVersion int64, event *models.OutboxEvent) (models.Crop, error)
	Harvest(ctx context.Context, crop models.Crop, expectedVersion int64, harvest models.Harvest, event models.OutboxEvent) (models.Crop, models.Harvest, error)
	Delete(ctx context.Context, cropID uuid.UUID) (bool, error)
}

type cropStore struct {
	crops    *repos.CropsRepo
	harvests *repos.HarvestsRepo
	outbox   *repos.OutboxRepo
}

// NewCropStore wires the pgx repos behind the CropStore port.
func NewCropStore(crops *repos.CropsRepo, harvests *repos.HarvestsRepo, outbox *repos.OutboxRepo) CropStore {
	return &cropStore{crops: crops, harvests: harvests, outbox: outbox}
}

func (s *cropStore) Create(ctx context.Context, crop models.Crop, event models.OutboxEvent) (models.Crop, error) {
	return s.crops.InsertWithOutbox(ctx, crop, s.outbox, event)
}

func (s *cropStore) Get(ctx context.Context, cropID uuid.UUID) (models.Crop, error) {
	return s.crops.GetByID(ctx, cropID)
}

func (s *cropStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Crop, error) {
	return s.crops.ListByOwner(ctx, ownerID)
}

func (s *cropStore) Update(ctx context.Context, crop models.Crop, expectedVersion int64, event *models.OutboxEvent) (models.Crop, error) {
	if event == nil {
		return s.crops.UpdateGuardedWithOutbox(ctx, crop, expectedVersion, nil, models.OutboxEvent{})
	}
	return s.crops.UpdateGuardedWithOutbox(ctx, crop, expectedVersion, s.outbox, *event)
}

func (s *cropStore) Harvest(ctx context.Context, crop models.Crop, expectedVersion int64, harvest models.Harvest, event models.OutboxEvent) (models.Crop, models.Harvest, error) {
	return s.crops.RecordHarvest(ctx, crop, expectedVersion, harvest, s.harvests, s.outbox, event)
}

func (s *cropStore) Delete(ctx context.Context, cropID uuid.UUID) (bool, error) {
	return s.crops.Delete(ctx, cropID)
}

package repos

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"farm-management-system/api/internal/models"
)

// ErrVersionConflict signals that a guarded update lost the race against
// a concurrent writer. Callers re-read and retry.
var ErrVersionConflict = errors.New("crop version conflict")

const cropColumns = `crop_id, owner_id, field, crop_type, planting_date, area, soil_type, watering_frequency_days,
	growth_stage, health_score, estimated_yield, pest_issues, activities,
	harvest_date, actual_yield, last_watered_at, version, created_at, updated_at`

type CropsRepo struct {
	pool *pgxpool.Pool
}

func NewCropsRepo(pool *pgxpool.Pool) *CropsRepo {
	return &CropsRepo{pool: pool}
}

func (r *CropsRepo) Insert(ctx context.Context, db DBTX, crop models.Crop) (models.Crop, error) {
	if crop.CropID == uuid.Nil {
		crop.CropID = uuid.New()
	}
	now := time.Now().UTC()
	if crop.CreatedAt.IsZero() {
		crop.CreatedAt = now
	}
	crop.UpdatedAt = crop.CreatedAt

	pests, activities, err := encodeDocs(crop)
	if err != nil {
		return models.Crop{}, err
	}

	row := db.QueryRow(ctx, `
		INSERT INTO crops (
			crop_id, owner_id, field, crop_type, planting_date, area, soil_type, watering_frequency_days,
			growth_stage, health_score, estimated_yield, pest_issues, activities,
			harvest_date, actual_yield, last_watered_at, version, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19
		)
		RETURNING `+cropColumns+`
	`, crop.CropID, crop.OwnerID, crop.Field, crop.CropType, crop.PlantingDate, crop.Area, crop.SoilType, crop.WateringFrequencyDays,
		crop.GrowthStage, crop.HealthScore, crop.EstimatedYield, pests, activities,
		crop.HarvestDate, crop.ActualYield, crop.LastWateredAt, 1, crop.CreatedAt, crop.UpdatedAt)
	return scanCrop(row)
}

// InsertWithOutbox persists the crop and its outbox event in one
// transaction so the event is never emitted without the row.
func (r *CropsRepo) InsertWithOutbox(ctx context.Context, crop models.Crop, outbox *OutboxRepo, event models.OutboxEvent) (models.Crop, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Crop{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	created, err := r.Insert(ctx, tx, crop)
	if err != nil {
		_ = tx.Rollback(ctx)
		return models.Crop{}, err
	}

	if outbox != nil {
		event.AggregateID = created.CropID
		if _, err = outbox.Insert(ctx, tx, event); err != nil {
			_ = tx.Rollback(ctx)
			return models.Crop{}, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Crop{}, err
	}
	return created, nil
}

func (r *CropsRepo) GetByID(ctx context.Context, cropID uuid.UUID) (models.Crop, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+cropColumns+`
		FROM crops
		WHERE crop_id = $1
	`, cropID)
	return scanCrop(row)
}

func (r *CropsRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Crop, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+cropColumns+`
		FROM crops
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	crops := []models.Crop{}
	for rows.Next() {
		crop, err := scanCrop(rows)
		if err != nil {
			return nil, err
		}
		crops = append(crops, crop)
	}
	return crops, rows.Err()
}

// UpdateGuarded rewrites the mutable crop state only when the stored
// version still matches expectedVersion, bumping the version on success.
// Returns ErrVersionConflict when a concurrent writer got there first.
func (r *CropsRepo) UpdateGuarded(ctx context.Context, db DBTX, crop models.Crop, expectedVersion int64) (models.Crop, error) {
	pests, activities, err := encodeDocs(crop)
	if err != nil {
		return models.Crop{}, err
	}

	row := db.QueryRow(ctx, `
		UPDATE crops SET
			field = $3, crop_type = $4, area = $5, soil_type = $6, watering_frequency_days = $7,
			growth_stage = $8, health_score = $9, estimated_yield = $10,
			pest_issues = $11, activities = $12,
			harvest_date = $13, actual_yield = $14, last_watered_at = $15,
			version = version + 1, updated_at = now()
		WHERE crop_id = $1 AND version = $2
		RETURNING `+cropColumns+`
	`, crop.CropID, expectedVersion,
		crop.Field, crop.CropType, crop.Area, crop.SoilType, crop.WateringFrequencyDays,
		crop.GrowthStage, crop.HealthScore, crop.EstimatedYield,
		pests, activities,
		crop.HarvestDate, crop.ActualYield, crop.LastWateredAt)
	updated, err := scanCrop(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Crop{}, ErrVersionConflict
		}
		return models.Crop{}, err
	}
	return updated, nil
}

func (r *CropsRepo) UpdateGuardedWithOutbox(ctx context.Context, crop models.Crop, expectedVersion int64, outbox *OutboxRepo, event models.OutboxEvent) (models.Crop, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Crop{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	updated, err := r.UpdateGuarded(ctx, tx, crop, expectedVersion)
	if err != nil {
		_ = tx.Rollback(ctx)
		return models.Crop{}, err
	}

	if outbox != nil {
		event.AggregateID = updated.CropID
		if _, err = outbox.Insert(ctx, tx, event); err != nil {
			_ = tx.Rollback(ctx)
			return models.Crop{}, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Crop{}, err
	}
	return updated, nil
}

// RecordHarvest commits the terminal crop state, the immutable harvest
// row, and the outbox event atomically.
func (r *CropsRepo) RecordHarvest(ctx context.Context, crop models.Crop, expectedVersion int64, harvest models.Harvest, harvests *HarvestsRepo, outbox *OutboxRepo, event models.OutboxEvent) (models.Crop, models.Harvest, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Crop{}, models.Harvest{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	updated, err := r.UpdateGuarded(ctx, tx, crop, expectedVersion)
	if err != nil {
		_ = tx.Rollback(ctx)
		return models.Crop{}, models.Harvest{}, err
	}

	harvest.CropID = updated.CropID
	created, err := harvests.Insert(ctx, tx, harvest)
	if err != nil {
		_ = tx.Rollback(ctx)
		return models.Crop{}, models.Harvest{}, err
	}

	if outbox != nil {
		event.AggregateID = updated.CropID
		if _, err = outbox.Insert(ctx, tx, event); err != nil {
			_ = tx.Rollback(ctx)
			return models.Crop{}, models.Harvest{}, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Crop{}, models.Harvest{}, err
	}
	return updated, created, nil
}

func (r *CropsRepo) Delete(ctx context.Context, cropID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM crops WHERE crop_id = $1`, cropID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListNeedingWatering returns active crops whose last watering (or
// planting, if never watered) is older than their watering frequency.
func (r *CropsRepo) ListNeedingWatering(ctx context.Context, now time.Time, limit int) ([]models.Crop, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+cropColumns+`
		FROM crops
		WHERE growth_stage <> 'Harvested'
		  AND COALESCE(last_watered_at, planting_date) < $1 - (watering_frequency_days * interval '1 day')
		ORDER BY COALESCE(last_watered_at, planting_date) ASC
		LIMIT $2
	`, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	crops := []models.Crop{}
	for rows.Next() {
		crop, err := scanCrop(rows)
		if err != nil {
			return nil, err
		}
		crops = append(crops, crop)
	}
	return crops, rows.Err()
}

func encodeDocs(crop models.Crop) ([]byte, []byte, error) {
	if crop.PestIssues == nil {
		crop.PestIssues = []models.PestIssue{}
	}
	if crop.Activities == nil {
		crop.Activities = []models.Activity{}
	}
	pests, err := json.Marshal(crop.PestIssues)
	if err != nil {
		return nil, nil, err
	}
	activities, err := json.Marshal(crop.Activities)
	if err != nil {
		return nil, nil, err
	}
	return pests, activities, nil
}

func scanCrop(row pgx.Row) (models.Crop, error) {
	var crop models.Crop
	var pests, activities []byte
	err := row.Scan(
		&crop.CropID, &crop.OwnerID, &crop.Field, &crop.CropType, &crop.PlantingDate, &crop.Area, &crop.SoilType, &crop.WateringFrequencyDays,
		&crop.GrowthStage, &crop.HealthScore, &crop.EstimatedYield, &pests, &activities,
		&crop.HarvestDate, &crop.ActualYield, &crop.LastWateredAt, &crop.Version, &crop.CreatedAt, &crop.UpdatedAt,
	)
	if err != nil {
		return models.Crop{}, err
	}
	if len(pests) > 0 {
		if err := json.Unmarshal(pests, &crop.PestIssues); err != nil {
			return models.Crop{}, err
		}
	}
	if crop.PestIssues == nil {
		crop.PestIssues = []models.PestIssue{}
	}
	if len(activities) > 0 {
		if err := json.Unmarshal(activities, &crop.Activities); err != nil {
			return models.Crop{}, err
		}
	}
	if crop.Activities == nil {
		crop.Activities = []models.Activity{}
	}
	return crop, nil
}

package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"farm-management-system/api/internal/models"
)

type HarvestsRepo struct {
	pool *pgxpool.Pool
}

func NewHarvestsRepo(pool *pgxpool.Pool) *HarvestsRepo {
	return &HarvestsRepo{pool: pool}
}

func (r *HarvestsRepo) Insert(ctx context.Context, db DBTX, harvest models.Harvest) (models.Harvest, error) {
	if harvest.HarvestID == uuid.Nil {
		harvest.HarvestID = uuid.New()
	}
	if harvest.CreatedAt.IsZero() {
		harvest.CreatedAt = time.Now().UTC()
	}
	err := db.QueryRow(ctx, `
		INSERT INTO harvests (
			harvest_id, crop_id, owner_id, harvest_date, actual_yield, quality, notes, sold_amount, income, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
		RETURNING harvest_id, crop_id, owner_id, harvest_date, actual_yield, quality, notes, sold_amount, income, created_at
	`, harvest.HarvestID, harvest.CropID, harvest.OwnerID, harvest.HarvestDate, harvest.ActualYield, harvest.Quality, harvest.Notes, harvest.SoldAmount, harvest.Income, harvest.CreatedAt).
		Scan(&harvest.HarvestID, &harvest.CropID, &harvest.OwnerID, &harvest.HarvestDate, &harvest.ActualYield, &harvest.Quality, &harvest.Notes, &harvest.SoldAmount, &harvest.Income, &harvest.CreatedAt)
	return harvest, err
}

func (r *HarvestsRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Harvest, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT harvest_id, crop_id, owner_id, harvest_date, actual_yield, quality, notes, sold_amount, income, created_at
		FROM harvests
		WHERE owner_id = $1
		ORDER BY harvest_date DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	harvests := []models.Harvest{}
	for rows.Next() {
		var harvest models.Harvest
		if err := rows.Scan(
			&harvest.HarvestID, &harvest.CropID, &harvest.OwnerID, &harvest.HarvestDate, &harvest.ActualYield,
			&harvest.Quality, &harvest.Notes, &harvest.SoldAmount, &harvest.Income, &harvest.CreatedAt,
		); err != nil {
			return nil, err
		}
		harvests = append(harvests, harvest)
	}
	return harvests, rows.Err()
}

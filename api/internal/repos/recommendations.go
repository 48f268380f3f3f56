package repos

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"farm-management-system/api/internal/models"
)

type RecommendationsRepo struct {
	pool *pgxpool.Pool
}

func NewRecommendationsRepo(pool *pgxpool.Pool) *RecommendationsRepo {
	return &RecommendationsRepo{pool: pool}
}

func (r *RecommendationsRepo) GetByCropAndSoil(ctx context.Context, cropType string, soilType string) (models.Recommendation, error) {
	var rec models.Recommendation
	var raw []byte
	err := r.pool.QueryRow(ctx, `
		SELECT recommendation_id, crop_type, soil_type, details, created_at
		FROM crop_recommendations
		WHERE crop_type = $1 AND soil_type = $2
	`, strings.ToLower(strings.TrimSpace(cropType)), strings.ToLower(strings.TrimSpace(soilType))).
		Scan(&rec.RecommendationID, &rec.CropType, &rec.SoilType, &raw, &rec.CreatedAt)
	if err != nil {
		return models.Recommendation{}, err
	}
	if err := json.Unmarshal(raw, &rec.Details); err != nil {
		return models.Recommendation{}, err
	}
	return rec, nil
}

func (r *RecommendationsRepo) List(ctx context.Context) ([]models.Recommendation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT recommendation_id, crop_type, soil_type, details, created_at
		FROM crop_recommendations
		ORDER BY crop_type, soil_type
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []models.Recommendation{}
	for rows.Next() {
		var rec models.Recommendation
		var raw []byte
		if err := rows.Scan(&rec.RecommendationID, &rec.CropType, &rec.SoilType, &raw, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &rec.Details); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *RecommendationsRepo) Upsert(ctx context.Context, rec models.Recommendation) (models.Recommendation, error) {
	if rec.RecommendationID == uuid.Nil {
		rec.RecommendationID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	raw, err := json.Marshal(rec.Details)
	if err != nil {
		return models.Recommendation{}, err
	}
	err = r.pool.QueryRow(ctx, `
		INSERT INTO crop_recommendations (recommendation_id, crop_type, soil_type, details, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (crop_type, soil_type)
		DO UPDATE SET details = EXCLUDED.details
		RETURNING recommendation_id, crop_type, soil_type, created_at
	`, rec.RecommendationID, strings.ToLower(rec.CropType), strings.ToLower(rec.SoilType), raw, rec.CreatedAt).
		Scan(&rec.RecommendationID, &rec.CropType, &rec.SoilType, &rec.CreatedAt)
	return rec, err
}

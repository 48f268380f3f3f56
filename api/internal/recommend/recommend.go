// Package recommend resolves growing advice per crop and soil type.
// Database records win; otherwise a built-in per-crop table answers,
// so the endpoint never comes back empty.
package recommend

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"farm-management-system/api/internal/models"
)

type Store interface {
	GetByCropAndSoil(ctx context.Context, cropType string, soilType string) (models.Recommendation, error)
	List(ctx context.Context) ([]models.Recommendation, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, cropType string, soilType string) (models.Recommendation, error) {
	cropType = strings.ToLower(strings.TrimSpace(cropType))
	soilType = strings.ToLower(strings.TrimSpace(soilType))

	if s.store != nil {
		rec, err := s.store.GetByCropAndSoil(ctx, cropType, soilType)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return models.Recommendation{}, err
		}
	}

	return models.Recommendation{
		CropType: cropType,
		SoilType: soilType,
		Details:  DefaultsFor(cropType),
	}, nil
}

func (s *Service) List(ctx context.Context) ([]models.Recommendation, error) {
	if s.store == nil {
		return []models.Recommendation{}, nil
	}
	return s.store.List(ctx)
}

// DefaultsFor returns the built-in advice for a crop type, or the
// generic fallback for crops not in the table.
func DefaultsFor(cropType string) models.RecommendationDoc {
	if doc, ok := cropDefaults[strings.ToLower(strings.TrimSpace(cropType))]; ok {
		return doc
	}
	return genericDefault
}

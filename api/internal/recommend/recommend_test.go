package recommend

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"

	"farm-management-system/api/internal/models"
)

type fakeStore struct {
	recs map[string]models.Recommendation
}

func key(cropType, soilType string) string { return cropType + "/" + soilType }

func (f *fakeStore) GetByCropAndSoil(_ context.Context, cropType string, soilType string) (models.Recommendation, error) {
	rec, ok := f.recs[key(cropType, soilType)]
	if !ok {
		return models.Recommendation{}, pgx.ErrNoRows
	}
	return rec, nil
}

func (f *fakeStore) List(_ context.Context) ([]models.Recommendation, error) {
	out := []models.Recommendation{}
	for _, rec := range f.recs {
		out = append(out, rec)
	}
	return out, nil
}

func TestGetPrefersStoredRecord(t *testing.T) {
	stored := models.Recommendation{
		CropType: "wheat",
		SoilType: "clay",
		Details:  models.RecommendationDoc{WateringSchedule: "custom schedule"},
	}
	svc := NewService(&fakeStore{recs: map[string]models.Recommendation{key("wheat", "clay"): stored}})

	rec, err := svc.Get(context.Background(), "Wheat", " clay ")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Details.WateringSchedule != "custom schedule" {
		t.Fatalf("expected stored record, got %+v", rec.Details)
	}
}

func TestGetFallsBackToDefaults(t *testing.T) {
	svc := NewService(&fakeStore{recs: map[string]models.Recommendation{}})

	rec, err := svc.Get(context.Background(), "rice", "loamy")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Details.DaysToMaturity != 150 {
		t.Fatalf("expected rice defaults, got %+v", rec.Details)
	}
}

func TestGetUnknownCropUsesGenericDefault(t *testing.T) {
	svc := NewService(&fakeStore{recs: map[string]models.Recommendation{}})

	rec, err := svc.Get(context.Background(), "dragonfruit", "sandy")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Details.ExpectedYieldPerAcre != "40-60 quintals" {
		t.Fatalf("expected generic fallback, got %+v", rec.Details)
	}
}

func TestDefaultsCoverEightCrops(t *testing.T) {
	crops := []string{"wheat", "rice", "corn", "tomato", "potato", "soybean", "cotton", "sugarcane"}
	for _, crop := range crops {
		doc := DefaultsFor(crop)
		if doc.DaysToMaturity == 0 || len(doc.Fertilizers) == 0 {
			t.Fatalf("%s: incomplete defaults", crop)
		}
	}
}

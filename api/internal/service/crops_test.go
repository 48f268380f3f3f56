package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"farm-management-system/api/internal/lifecycle"
	"farm-management-system/api/internal/models"
	"farm-management-system/api/internal/repos"
	"farm-management-system/shared/logx"
)

type fakeStore struct {
	crops     map[uuid.UUID]models.Crop
	harvests  []models.Harvest
	events    []models.OutboxEvent
	conflicts int
}

func newFakeStore() *fakeStore {
	return &fakeStore{crops: map[uuid.UUID]models.Crop{}}
}

func (f *fakeStore) Create(_ context.Context, crop models.Crop, event models.OutboxEvent) (models.Crop, error) {
	if crop.CropID == uuid.Nil {
		crop.CropID = uuid.New()
	}
	crop.Version = 1
	f.crops[crop.CropID] = crop
	f.events = append(f.events, event)
	return crop, nil
}

func (f *fakeStore) Get(_ context.Context, cropID uuid.UUID) (models.Crop, error) {
	crop, ok := f.crops[cropID]
	if !ok {
		return models.Crop{}, pgx.ErrNoRows
	}
	return crop, nil
}

func (f *fakeStore) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]models.Crop, error) {
	out := []models.Crop{}
	for _, crop := range f.crops {
		if crop.OwnerID == ownerID {
			out = append(out, crop)
		}
	}
	return out, nil
}

func (f *fakeStore) Update(_ context.Context, crop models.Crop, expectedVersion int64, event *models.OutboxEvent) (models.Crop, error) {
	if f.conflicts > 0 {
		f.conflicts--
		return models.Crop{}, repos.ErrVersionConflict
	}
	stored, ok := f.crops[crop.CropID]
	if !ok {
		return models.Crop{}, pgx.ErrNoRows
	}
	if stored.Version != expectedVersion {
		return models.Crop{}, repos.ErrVersionConflict
	}
	crop.Version = expectedVersion + 1
	f.crops[crop.CropID] = crop
	if event != nil {
		f.events = append(f.events, *event)
	}
	return crop, nil
}

func (f *fakeStore) Harvest(ctx context.Context, crop models.Crop, expectedVersion int64, harvest models.Harvest, event models.OutboxEvent) (models.Crop, models.Harvest, error) {
	updated, err := f.Update(ctx, crop, expectedVersion, &event)
	if err != nil {
		return models.Crop{}, models.Harvest{}, err
	}
	harvest.HarvestID = uuid.New()
	f.harvests = append(f.harvests, harvest)
	return updated, harvest, nil
}

func (f *fakeStore) Delete(_ context.Context, cropID uuid.UUID) (bool, error) {
	if _, ok := f.crops[cropID]; !ok {
		return false, nil
	}
	delete(f.crops, cropID)
	return true, nil
}

type fakeSink struct {
	alerts []models.Alert
	fail   bool
}

func (f *fakeSink) Emit(_ context.Context, alert models.Alert) (models.Alert, error) {
	if f.fail {
		return models.Alert{}, errors.New("sink unavailable")
	}
	alert.AlertID = uuid.New()
	f.alerts = append(f.alerts, alert)
	return alert, nil
}

func newTestService(store CropStore, sink *fakeSink) *CropService {
	svc := NewCropService(store, sink, logx.New("service-test", "test", "", "error"))
	return svc
}

func fixedNow() time.Time {
	return time.Date(2025, 12, 23, 10, 0, 0, 0, time.UTC)
}

func TestCreateCropValidation(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeSink{})

	_, err := svc.CreateCrop(context.Background(), CreateCropInput{
		OwnerID:      uuid.New(),
		Field:        "North Field",
		CropType:     "wheat",
		PlantingDate: fixedNow(),
		Area:         -1,
	})
	verr, ok := AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	found := false
	for _, field := range verr.Fields {
		if field == "area" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected area in offending fields, got %v", verr.Fields)
	}
	if len(store.crops) != 0 {
		t.Fatalf("nothing should be persisted on validation failure")
	}
}

func TestCreateCropValidationListsAllFields(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeSink{})
	_, err := svc.CreateCrop(context.Background(), CreateCropInput{})
	verr, ok := AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Fields) != 5 {
		t.Fatalf("expected 5 offending fields, got %v", verr.Fields)
	}
}

func TestCreateCropDerivesAndAlerts(t *testing.T) {
	store := newFakeStore()
	sink := &fakeSink{}
	svc := newTestService(store, sink)
	svc.now = fixedNow

	crop, err := svc.CreateCrop(context.Background(), CreateCropInput{
		OwnerID:      uuid.New(),
		Field:        "North Field",
		CropType:     "wheat",
		PlantingDate: fixedNow(),
		Area:         2,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if crop.GrowthStage != lifecycle.StageEarly {
		t.Fatalf("expected EarlyStage, got %s", crop.GrowthStage)
	}
	if crop.HealthScore != 70 {
		t.Fatalf("expected health 70, got %d", crop.HealthScore)
	}
	if crop.EstimatedYield != 0.7 {
		t.Fatalf("expected yield 0.70, got %v", crop.EstimatedYield)
	}
	if crop.SoilType != "loamy" || crop.WateringFrequencyDays != 3 {
		t.Fatalf("expected defaults applied, got %s/%d", crop.SoilType, crop.WateringFrequencyDays)
	}
	if len(crop.Activities) != 1 || crop.Activities[0].ActivityType != "planted" {
		t.Fatalf("expected synthetic planted activity, got %v", crop.Activities)
	}
	if want := "Field North Field planted with wheat"; crop.Activities[0].Notes != want {
		t.Fatalf("expected notes %q, got %q", want, crop.Activities[0].Notes)
	}
	if len(sink.alerts) != 1 || sink.alerts[0].Type != "info" {
		t.Fatalf("expected one creation alert, got %v", sink.alerts)
	}
	if len(store.events) != 1 {
		t.Fatalf("expected one outbox event, got %d", len(store.events))
	}
}

func TestCreateCropAlertFailureSwallowed(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeSink{fail: true})
	svc.now = fixedNow

	crop, err := svc.CreateCrop(context.Background(), CreateCropInput{
		OwnerID:      uuid.New(),
		Field:        "East Field",
		CropType:     "rice",
		PlantingDate: fixedNow(),
		Area:         1,
	})
	if err != nil {
		t.Fatalf("alert failure must not surface: %v", err)
	}
	if _, ok := store.crops[crop.CropID]; !ok {
		t.Fatalf("crop must be persisted despite alert failure")
	}
}

func seedCrop(store *fakeStore, stage string, activePests int) models.Crop {
	issues := []models.PestIssue{}
	for i := 0; i < activePests; i++ {
		issues = append(issues, models.PestIssue{Label: fmt.Sprintf("pest-%d", i), Status: lifecycle.PestStatusActive})
	}
	crop := models.Crop{
		CropID:                uuid.New(),
		OwnerID:               uuid.New(),
		Field:                 "South Field",
		CropType:              "corn",
		PlantingDate:          fixedNow().Add(-40 * 24 * time.Hour),
		Area:                  3,
		SoilType:              "loamy",
		WateringFrequencyDays: 3,
		GrowthStage:           stage,
		HealthScore:           lifecycle.HealthScore(stage, issues),
		PestIssues:            issues,
		Activities:            []models.Activity{},
		Version:               1,
	}
	store.crops[crop.CropID] = crop
	return crop
}

func TestAddPestIssueStickyStage(t *testing.T) {
	store := newFakeStore()
	sink := &fakeSink{}
	svc := newTestService(store, sink)
	svc.now = fixedNow

	crop := seedCrop(store, lifecycle.StageMid, 2)
	updated, err := svc.AddPestIssue(context.Background(), crop.CropID, PestIssueInput{
		Label:    "armyworm",
		Severity: "high",
	})
	if err != nil {
		t.Fatalf("add pest: %v", err)
	}
	if updated.GrowthStage != lifecycle.StageMid {
		t.Fatalf("stage must stay as stored, got %s", updated.GrowthStage)
	}
	if updated.HealthScore != 40 {
		t.Fatalf("expected health 85-45=40, got %d", updated.HealthScore)
	}
	if len(updated.PestIssues) != 3 {
		t.Fatalf("expected 3 pest issues, got %d", len(updated.PestIssues))
	}
	last := updated.PestIssues[2]
	if last.Treatment != "Pending" || last.Status != lifecycle.PestStatusActive {
		t.Fatalf("expected pending active issue, got %+v", last)
	}
	if len(sink.alerts) != 1 || sink.alerts[0].Type != "pest-detected" {
		t.Fatalf("expected pest alert, got %v", sink.alerts)
	}
	if sink.alerts[0].Severity != "high" {
		t.Fatalf("alert severity should follow the issue, got %s", sink.alerts[0].Severity)
	}
}

func TestAddPestIssueNotFound(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeSink{})
	_, err := svc.AddPestIssue(context.Background(), uuid.New(), PestIssueInput{Label: "aphids"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddPestIssueRetriesVersionConflict(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeSink{})
	svc.now = fixedNow

	crop := seedCrop(store, lifecycle.StageLate, 0)
	store.conflicts = 2
	updated, err := svc.AddPestIssue(context.Background(), crop.CropID, PestIssueInput{Label: "rust"})
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if len(updated.PestIssues) != 1 {
		t.Fatalf("expected the append to land exactly once, got %d", len(updated.PestIssues))
	}
}

func TestLogActivityNoRecompute(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeSink{})
	svc.now = fixedNow

	crop := seedCrop(store, lifecycle.StageMid, 1)
	before := store.crops[crop.CropID]
	updated, err := svc.LogActivity(context.Background(), crop.CropID, ActivityInput{
		ActivityType: "fertilizing",
		Notes:        "applied urea",
		Performer:    "Ravi",
	})
	if err != nil {
		t.Fatalf("log activity: %v", err)
	}
	if updated.HealthScore != before.HealthScore || updated.GrowthStage != before.GrowthStage || updated.EstimatedYield != before.EstimatedYield {
		t.Fatalf("activity logging must not touch derived fields")
	}
	if len(updated.Activities) != 1 {
		t.Fatalf("expected appended activity, got %d", len(updated.Activities))
	}
	if updated.LastWateredAt != nil {
		t.Fatalf("non-watering activity must not touch last watered time")
	}
}

func TestLogWateringActivityStampsLastWatered(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeSink{})
	svc.now = fixedNow

	crop := seedCrop(store, lifecycle.StageEarly, 0)
	updated, err := svc.LogActivity(context.Background(), crop.CropID, ActivityInput{ActivityType: "watering"})
	if err != nil {
		t.Fatalf("log activity: %v", err)
	}
	if updated.LastWateredAt == nil || !updated.LastWateredAt.Equal(fixedNow()) {
		t.Fatalf("expected last watered at %v, got %v", fixedNow(), updated.LastWateredAt)
	}
}

func TestRecordHarvestTerminal(t *testing.T) {
	store := newFakeStore()
	sink := &fakeSink{}
	svc := newTestService(store, sink)
	svc.now = fixedNow

	crop := seedCrop(store, lifecycle.StageReady, 0)
	updated, harvest, err := svc.RecordHarvest(context.Background(), crop.CropID, HarvestInput{
		ActualYield: 5.5,
		Quality:     "good",
	})
	if err != nil {
		t.Fatalf("harvest: %v", err)
	}
	if updated.GrowthStage != lifecycle.StageHarvest {
		t.Fatalf("expected Harvested, got %s", updated.GrowthStage)
	}
	if updated.HarvestDate == nil || updated.ActualYield == nil || *updated.ActualYield != 5.5 {
		t.Fatalf("harvest fields not set: %+v", updated)
	}
	if harvest.ActualYield != 5.5 || harvest.Quality != "good" || harvest.CropID != crop.CropID {
		t.Fatalf("unexpected harvest record %+v", harvest)
	}
	if len(sink.alerts) != 1 || sink.alerts[0].Type != "harvest-complete" {
		t.Fatalf("expected harvest alert, got %v", sink.alerts)
	}

	// A later pest report must not revert the terminal stage.
	after, err := svc.AddPestIssue(context.Background(), crop.CropID, PestIssueInput{Label: "weevil"})
	if err != nil {
		t.Fatalf("pest after harvest: %v", err)
	}
	if after.GrowthStage != lifecycle.StageHarvest {
		t.Fatalf("terminal stage reverted to %s", after.GrowthStage)
	}
}

func TestUpdateCropKeepsDerivedState(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeSink{})
	svc.now = fixedNow

	crop := seedCrop(store, lifecycle.StageMid, 1)
	before := store.crops[crop.CropID]
	updated, err := svc.UpdateCrop(context.Background(), crop.CropID, UpdateCropInput{
		Field:    "Renamed Field",
		CropType: "corn",
		Area:     9,
		SoilType: "sandy",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Field != "Renamed Field" || updated.Area != 9 || updated.SoilType != "sandy" {
		t.Fatalf("descriptive fields not applied: %+v", updated)
	}
	if updated.GrowthStage != before.GrowthStage || updated.HealthScore != before.HealthScore || updated.EstimatedYield != before.EstimatedYield {
		t.Fatalf("descriptive update must not re-derive lifecycle state")
	}
}

func TestDeleteCrop(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeSink{})

	crop := seedCrop(store, lifecycle.StageEarly, 0)
	if err := svc.DeleteCrop(context.Background(), crop.CropID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteCrop(context.Background(), crop.CropID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestCreateCropSixtyFiveDaysExample(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeSink{})
	svc.now = fixedNow

	crop, err := svc.CreateCrop(context.Background(), CreateCropInput{
		OwnerID:      uuid.New(),
		Field:        "West Field",
		CropType:     "soybean",
		PlantingDate: fixedNow().Add(-65 * 24 * time.Hour),
		Area:         2.5,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if crop.GrowthStage != lifecycle.StageLate {
		t.Fatalf("expected LateStage, got %s", crop.GrowthStage)
	}
	if crop.HealthScore != 80 {
		t.Fatalf("expected health 80, got %d", crop.HealthScore)
	}
	if crop.EstimatedYield != 3.60 {
		t.Fatalf("expected yield 3.60, got %v", crop.EstimatedYield)
	}
}

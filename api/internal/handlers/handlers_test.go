package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"farm-management-system/api/internal/models"
	"farm-management-system/api/internal/recommend"
	"farm-management-system/api/internal/service"
	"farm-management-system/api/internal/weather"
	"farm-management-system/shared/authx"
	"farm-management-system/shared/logx"
)

type fakeCropStore struct {
	crops map[uuid.UUID]models.Crop
}

func newFakeCropStore() *fakeCropStore {
	return &fakeCropStore{crops: map[uuid.UUID]models.Crop{}}
}

func (s *fakeCropStore) Create(_ context.Context, crop models.Crop, _ models.OutboxEvent) (models.Crop, error) {
	crop.Version = 1
	s.crops[crop.CropID] = crop
	return crop, nil
}

func (s *fakeCropStore) Get(_ context.Context, cropID uuid.UUID) (models.Crop, error) {
	crop, ok := s.crops[cropID]
	if !ok {
		return models.Crop{}, pgx.ErrNoRows
	}
	return crop, nil
}

func (s *fakeCropStore) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]models.Crop, error) {
	out := []models.Crop{}
	for _, crop := range s.crops {
		if crop.OwnerID == ownerID {
			out = append(out, crop)
		}
	}
	return out, nil
}

func (s *fakeCropStore) Update(_ context.Context, crop models.Crop, expectedVersion int64, _ *models.OutboxEvent) (models.Crop, error) {
	stored, ok := s.crops[crop.CropID]
	if !ok || stored.Version != expectedVersion {
		return models.Crop{}, pgx.ErrNoRows
	}
	crop.Version = expectedVersion + 1
	s.crops[crop.CropID] = crop
	return crop, nil
}

func (s *fakeCropStore) Harvest(_ context.Context, crop models.Crop, expectedVersion int64, harvest models.Harvest, _ models.OutboxEvent) (models.Crop, models.Harvest, error) {
	updated, err := s.Update(context.Background(), crop, expectedVersion, nil)
	if err != nil {
		return models.Crop{}, models.Harvest{}, err
	}
	harvest.HarvestID = uuid.New()
	return updated, harvest, nil
}

func (s *fakeCropStore) Delete(_ context.Context, cropID uuid.UUID) (bool, error) {
	if _, ok := s.crops[cropID]; !ok {
		return false, nil
	}
	delete(s.crops, cropID)
	return true, nil
}

type fakeSink struct {
	alerts []models.Alert
}

func (s *fakeSink) Emit(_ context.Context, alert models.Alert) (models.Alert, error) {
	alert.AlertID = uuid.New()
	s.alerts = append(s.alerts, alert)
	return alert, nil
}

func newTestMux(t *testing.T) (*http.ServeMux, *fakeCropStore, uuid.UUID) {
	t.Helper()
	store := newFakeCropStore()
	svc := service.NewCropService(store, &fakeSink{}, logx.New("handlers-test", "test", "", "error"))
	mux := http.NewServeMux()
	(&CropsHandler{Service: svc}).Register(mux)
	return mux, store, uuid.New()
}

func doJSON(t *testing.T, mux *http.ServeMux, ownerID uuid.UUID, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req = req.WithContext(authx.WithAuth(req.Context(), authx.AuthContext{Subject: ownerID.String()}))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCreateCrop(t *testing.T) {
	mux, store, ownerID := newTestMux(t)

	rec := doJSON(t, mux, ownerID, http.MethodPost, "/api/v1/crops", map[string]any{
		"field":        "North Field",
		"cropType":     "wheat",
		"plantingDate": "2025-11-01",
		"area":         2.5,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp cropResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.OwnerID != ownerID {
		t.Fatalf("ownerId = %s, want %s", resp.OwnerID, ownerID)
	}
	if resp.SoilType != "loamy" || resp.WateringFrequencyDays != 3 {
		t.Fatalf("defaults not applied: %s / %d", resp.SoilType, resp.WateringFrequencyDays)
	}
	if resp.GrowthStage == "" || resp.HealthScore == 0 {
		t.Fatalf("derived fields missing: %q / %d", resp.GrowthStage, resp.HealthScore)
	}
	if len(store.crops) != 1 {
		t.Fatalf("stored crops = %d", len(store.crops))
	}
}

func TestCreateCropValidation(t *testing.T) {
	mux, _, ownerID := newTestMux(t)

	rec := doJSON(t, mux, ownerID, http.MethodPost, "/api/v1/crops", map[string]any{
		"field": "North Field",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Code    string `json:"code"`
		Details struct {
			Missing []string `json:"missing"`
		} `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != "INVALID_ARGUMENT" {
		t.Fatalf("code = %s", resp.Code)
	}
	for _, want := range []string{"cropType", "plantingDate", "area"} {
		found := false
		for _, field := range resp.Details.Missing {
			if field == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("missing does not name %s: %v", want, resp.Details.Missing)
		}
	}
}

func TestCreateCropUnauthenticated(t *testing.T) {
	mux, _, _ := newTestMux(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/crops", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestGetCropNotFound(t *testing.T) {
	mux, _, ownerID := newTestMux(t)

	rec := doJSON(t, mux, ownerID, http.MethodGet, "/api/v1/crops/"+uuid.NewString(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = doJSON(t, mux, ownerID, http.MethodGet, "/api/v1/crops/not-a-uuid", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id status = %d", rec.Code)
	}
}

func TestPestAndHarvestFlow(t *testing.T) {
	mux, _, ownerID := newTestMux(t)

	rec := doJSON(t, mux, ownerID, http.MethodPost, "/api/v1/crops", map[string]any{
		"field":        "South Field",
		"cropType":     "rice",
		"plantingDate": time.Now().UTC().AddDate(0, 0, -40).Format("2006-01-02"),
		"area":         1.0,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	var created cropResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = doJSON(t, mux, ownerID, http.MethodPost, "/api/v1/crops/"+created.ID.String()+"/pests", map[string]any{
		"label":    "aphids",
		"severity": "high",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("pest status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var withPest cropResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &withPest); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(withPest.PestIssues) != 1 || withPest.PestIssues[0].Treatment != "Pending" {
		t.Fatalf("pest issues = %+v", withPest.PestIssues)
	}
	if withPest.HealthScore != created.HealthScore-15 {
		t.Fatalf("healthScore = %d, want %d", withPest.HealthScore, created.HealthScore-15)
	}

	rec = doJSON(t, mux, ownerID, http.MethodPost, "/api/v1/crops/"+created.ID.String()+"/harvest", map[string]any{
		"actualYield": 1.8,
		"quality":     "good",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("harvest status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var result struct {
		Crop    cropResponse    `json:"crop"`
		Harvest harvestResponse `json:"harvest"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Crop.GrowthStage != "Harvested" {
		t.Fatalf("growthStage = %s", result.Crop.GrowthStage)
	}
	if result.Harvest.ActualYield != 1.8 {
		t.Fatalf("actualYield = %v", result.Harvest.ActualYield)
	}
}

func TestDeleteCrop(t *testing.T) {
	mux, store, ownerID := newTestMux(t)

	cropID := uuid.New()
	store.crops[cropID] = models.Crop{CropID: cropID, OwnerID: ownerID, Version: 1}

	rec := doJSON(t, mux, ownerID, http.MethodDelete, "/api/v1/crops/"+cropID.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	rec = doJSON(t, mux, ownerID, http.MethodDelete, "/api/v1/crops/"+cropID.String(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d", rec.Code)
	}
}

type fakeUserStore struct {
	users map[string]models.User
}

func (s *fakeUserStore) CreateUser(_ context.Context, name, email, passwordHash, role string) (models.User, error) {
	user := models.User{UserID: uuid.New(), Name: name, Email: email, PasswordHash: passwordHash, Role: role, CreatedAt: time.Now().UTC()}
	s.users[email] = user
	return user, nil
}

func (s *fakeUserStore) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	user, ok := s.users[strings.ToLower(email)]
	if !ok {
		return models.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (s *fakeUserStore) TouchLastLogin(_ context.Context, _ uuid.UUID) error { return nil }

func TestRegisterAndLogin(t *testing.T) {
	issuer, err := authx.NewTokenIssuer("test-secret-test-secret", 1, 0)
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	handler := &AuthHandler{Users: &fakeUserStore{users: map[string]models.User{}}, Issuer: issuer}
	mux := http.NewServeMux()
	handler.Register(mux)

	body, _ := json.Marshal(map[string]string{"name": "Ravi", "email": "Ravi@Farm.example", "password": "sunflower9"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// Same email again, case folded.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register status = %d", rec.Code)
	}

	login, _ := json.Marshal(map[string]string{"email": "ravi@farm.example", "password": "sunflower9"})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(login))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("empty token")
	}
	if _, err := issuer.Verify(context.Background(), resp.Token); err != nil {
		t.Fatalf("verify issued token: %v", err)
	}

	badLogin, _ := json.Marshal(map[string]string{"email": "ravi@farm.example", "password": "wrong-pass"})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(badLogin))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d", rec.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	issuer, _ := authx.NewTokenIssuer("test-secret-test-secret", 1, 0)
	handler := &AuthHandler{Users: &fakeUserStore{users: map[string]models.User{}}, Issuer: issuer}
	mux := http.NewServeMux()
	handler.Register(mux)

	body, _ := json.Marshal(map[string]string{"name": "", "email": "no-at-sign", "password": "short"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Details struct {
			Missing []string `json:"missing"`
		} `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Details.Missing) != 3 {
		t.Fatalf("missing = %v", resp.Details.Missing)
	}
}

type fakeAlertStore struct {
	alerts map[uuid.UUID]models.Alert
}

func (s *fakeAlertStore) ListByOwner(_ context.Context, ownerID uuid.UUID, _ int) ([]models.Alert, error) {
	out := []models.Alert{}
	for _, alert := range s.alerts {
		if alert.OwnerID == ownerID {
			out = append(out, alert)
		}
	}
	return out, nil
}

func (s *fakeAlertStore) CountUnread(_ context.Context, ownerID uuid.UUID) (int, error) {
	count := 0
	for _, alert := range s.alerts {
		if alert.OwnerID == ownerID && !alert.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *fakeAlertStore) MarkRead(_ context.Context, alertID uuid.UUID, ownerID uuid.UUID) (models.Alert, error) {
	alert, ok := s.alerts[alertID]
	if !ok || alert.OwnerID != ownerID {
		return models.Alert{}, pgx.ErrNoRows
	}
	alert.IsRead = true
	s.alerts[alertID] = alert
	return alert, nil
}

func (s *fakeAlertStore) Resolve(_ context.Context, alertID uuid.UUID, ownerID uuid.UUID, actionTaken string) (models.Alert, error) {
	alert, err := s.MarkRead(context.Background(), alertID, ownerID)
	if err != nil {
		return models.Alert{}, err
	}
	now := time.Now().UTC()
	alert.ActionTaken = &actionTaken
	alert.ResolvedAt = &now
	s.alerts[alertID] = alert
	return alert, nil
}

func TestAlerts(t *testing.T) {
	ownerID := uuid.New()
	store := &fakeAlertStore{alerts: map[uuid.UUID]models.Alert{}}
	a1 := models.Alert{AlertID: uuid.New(), OwnerID: ownerID, Type: "info", Title: "Crop Planted"}
	a2 := models.Alert{AlertID: uuid.New(), OwnerID: ownerID, Type: "pest-detected", Title: "Pest Detected: aphids"}
	store.alerts[a1.AlertID] = a1
	store.alerts[a2.AlertID] = a2

	mux := http.NewServeMux()
	(&AlertsHandler{Alerts: store}).Register(mux)

	rec := doJSON(t, mux, ownerID, http.MethodGet, "/api/v1/alerts/unread-count", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var count struct {
		UnreadCount int `json:"unreadCount"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &count); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if count.UnreadCount != 2 {
		t.Fatalf("unreadCount = %d", count.UnreadCount)
	}

	rec = doJSON(t, mux, ownerID, http.MethodPut, "/api/v1/alerts/"+a1.AlertID.String()+"/read", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("mark read status = %d", rec.Code)
	}

	rec = doJSON(t, mux, ownerID, http.MethodPut, "/api/v1/alerts/"+a2.AlertID.String()+"/resolve", map[string]string{"actionTaken": "sprayed neem oil"})
	if rec.Code != http.StatusOK {
		t.Fatalf("resolve status = %d", rec.Code)
	}
	var resolved alertResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resolved); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resolved.ActionTaken == nil || *resolved.ActionTaken != "sprayed neem oil" {
		t.Fatalf("actionTaken = %v", resolved.ActionTaken)
	}

	rec = doJSON(t, mux, ownerID, http.MethodGet, "/api/v1/alerts/unread-count", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &count); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if count.UnreadCount != 0 {
		t.Fatalf("unreadCount after read = %d", count.UnreadCount)
	}

	// Someone else's alert looks like a missing one.
	rec = doJSON(t, mux, uuid.New(), http.MethodPut, "/api/v1/alerts/"+a1.AlertID.String()+"/read", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("cross-owner status = %d", rec.Code)
	}
}

func TestWeather(t *testing.T) {
	mux := http.NewServeMux()
	(&WeatherHandler{Provider: weather.NewStaticProvider()}).Register(mux)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var listing struct {
		Regions []string `json:"regions"`
		Count   int      `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listing); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if listing.Count != 8 || len(listing.Regions) != 8 {
		t.Fatalf("count = %d, regions = %d", listing.Count, len(listing.Regions))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/weather/Punjab", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("report status = %d", rec.Code)
	}
	var report weather.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Region != "Punjab" || len(report.Forecast) == 0 {
		t.Fatalf("report = %+v", report)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/weather/Atlantis", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown region status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Available regions") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestRecommendations(t *testing.T) {
	mux := http.NewServeMux()
	(&RecommendationsHandler{Service: recommend.NewService(nil)}).Register(mux)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/Wheat/Loamy", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		CropType        string                   `json:"cropType"`
		SoilType        string                   `json:"soilType"`
		Recommendations models.RecommendationDoc `json:"recommendations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.CropType != "wheat" || resp.SoilType != "loamy" {
		t.Fatalf("keys not folded: %s / %s", resp.CropType, resp.SoilType)
	}
	if len(resp.Recommendations.BestSeason) == 0 || resp.Recommendations.DaysToMaturity == 0 {
		t.Fatalf("recommendations = %+v", resp.Recommendations)
	}
}

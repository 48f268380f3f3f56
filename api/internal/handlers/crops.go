package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"farm-management-system/api/internal/service"
	"farm-management-system/shared/httpx"
)

type CropsHandler struct {
	Service *service.CropService
}

func (h *CropsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/crops", h.create)
	mux.HandleFunc("GET /api/v1/crops", h.list)
	mux.HandleFunc("GET /api/v1/crops/{id}", h.get)
	mux.HandleFunc("PUT /api/v1/crops/{id}", h.update)
	mux.HandleFunc("DELETE /api/v1/crops/{id}", h.remove)
	mux.HandleFunc("POST /api/v1/crops/{id}/pests", h.addPest)
	mux.HandleFunc("POST /api/v1/crops/{id}/activities", h.logActivity)
	mux.HandleFunc("POST /api/v1/crops/{id}/harvest", h.recordHarvest)
}

type createCropRequest struct {
	Field                 string  `json:"field"`
	CropType              string  `json:"cropType"`
	PlantingDate          string  `json:"plantingDate"`
	Area                  float64 `json:"area"`
	SoilType              string  `json:"soilType"`
	WateringFrequencyDays int     `json:"wateringFrequencyDays"`
}

// parsePlantingDate accepts RFC 3339 or a bare calendar date.
func parsePlantingDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, true
	}
	if ts, err := time.Parse("2006-01-02", raw); err == nil {
		return ts, true
	}
	return time.Time{}, false
}

func (h *CropsHandler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req createCropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, r, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid json body", nil)
		return
	}

	// An unparseable date flows through as zero so validation can name
	// plantingDate alongside any other offending field.
	plantingDate, _ := parsePlantingDate(req.PlantingDate)

	crop, err := h.Service.CreateCrop(r.Context(), service.CreateCropInput{
		OwnerID:               ownerID,
		Field:                 req.Field,
		CropType:              req.CropType,
		PlantingDate:          plantingDate,
		Area:                  req.Area,
		SoilType:              req.SoilType,
		WateringFrequencyDays: req.WateringFrequencyDays,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toCropResponse(crop))
}

func (h *CropsHandler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}
	crops, err := h.Service.ListCrops(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]cropResponse, 0, len(crops))
	for _, crop := range crops {
		out = append(out, toCropResponse(crop))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *CropsHandler) get(w http.ResponseWriter, r *http.Request) {
	cropID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	crop, err := h.Service.GetCrop(r.Context(), cropID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCropResponse(crop))
}

type updateCropRequest struct {
	Field                 string  `json:"field"`
	CropType              string  `json:"cropType"`
	Area                  float64 `json:"area"`
	SoilType              string  `json:"soilType"`
	WateringFrequencyDays int     `json:"wateringFrequencyDays"`
}

func (h *CropsHandler) update(w http.ResponseWriter, r *http.Request) {
	cropID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req updateCropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, r, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid json body", nil)
		return
	}
	crop, err := h.Service.UpdateCrop(r.Context(), cropID, service.UpdateCropInput{
		Field:                 req.Field,
		CropType:              req.CropType,
		Area:                  req.Area,
		SoilType:              req.SoilType,
		WateringFrequencyDays: req.WateringFrequencyDays,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCropResponse(crop))
}

func (h *CropsHandler) remove(w http.ResponseWriter, r *http.Request) {
	cropID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteCrop(r.Context(), cropID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Crop deleted successfully"})
}

type addPestRequest struct {
	Label     string `json:"label"`
	Severity  string `json:"severity"`
	Treatment string `json:"treatment"`
}

func (h *CropsHandler) addPest(w http.ResponseWriter, r *http.Request) {
	cropID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req addPestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, r, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid json body", nil)
		return
	}
	crop, err := h.Service.AddPestIssue(r.Context(), cropID, service.PestIssueInput{
		Label:     req.Label,
		Severity:  req.Severity,
		Treatment: req.Treatment,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCropResponse(crop))
}

type logActivityRequest struct {
	ActivityType string `json:"activityType"`
	Notes        string `json:"notes"`
	Performer    string `json:"performer"`
}

func (h *CropsHandler) logActivity(w http.ResponseWriter, r *http.Request) {
	cropID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req logActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, r, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid json body", nil)
		return
	}
	crop, err := h.Service.LogActivity(r.Context(), cropID, service.ActivityInput{
		ActivityType: req.ActivityType,
		Notes:        req.Notes,
		Performer:    req.Performer,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCropResponse(crop))
}

type recordHarvestRequest struct {
	ActualYield float64 `json:"actualYield"`
	Quality     string  `json:"quality"`
	Notes       string  `json:"notes"`
	SoldAmount  float64 `json:"soldAmount"`
	Income      float64 `json:"income"`
}

func (h *CropsHandler) recordHarvest(w http.ResponseWriter, r *http.Request) {
	cropID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req recordHarvestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, r, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid json body", nil)
		return
	}
	crop, harvest, err := h.Service.RecordHarvest(r.Context(), cropID, service.HarvestInput{
		ActualYield: req.ActualYield,
		Quality:     req.Quality,
		Notes:       req.Notes,
		SoldAmount:  req.SoldAmount,
		Income:      req.Income,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"crop":    toCropResponse(crop),
		"harvest": toHarvestResponse(harvest),
	})
}

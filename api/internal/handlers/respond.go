// Package handlers carries the HTTP surface. Request and response
// shapes use the API's camelCase field names; persistence shapes stay
// in models.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"farm-management-system/api/internal/models"
	"farm-management-system/api/internal/service"
	"farm-management-system/shared/authx"
	"farm-management-system/shared/httpx"
)

type pestIssueResponse struct {
	Label        string    `json:"label"`
	DateReported time.Time `json:"dateReported"`
	Severity     string    `json:"severity"`
	Treatment    string    `json:"treatment"`
	Status       string    `json:"status"`
}

type activityResponse struct {
	ActivityType string    `json:"activityType"`
	Date         time.Time `json:"date"`
	Notes        string    `json:"notes"`
	Performer    string    `json:"performer"`
}

type cropResponse struct {
	ID                    uuid.UUID           `json:"id"`
	OwnerID               uuid.UUID           `json:"ownerId"`
	Field                 string              `json:"field"`
	CropType              string              `json:"cropType"`
	PlantingDate          time.Time           `json:"plantingDate"`
	Area                  float64             `json:"area"`
	SoilType              string              `json:"soilType"`
	WateringFrequencyDays int                 `json:"wateringFrequencyDays"`
	GrowthStage           string              `json:"growthStage"`
	HealthScore           int                 `json:"healthScore"`
	EstimatedYield        float64             `json:"estimatedYield"`
	PestIssues            []pestIssueResponse `json:"pestIssues"`
	Activities            []activityResponse  `json:"activities"`
	HarvestDate           *time.Time          `json:"harvestDate,omitempty"`
	ActualYield           *float64            `json:"actualYield,omitempty"`
	CreatedAt             time.Time           `json:"createdAt"`
	UpdatedAt             time.Time           `json:"updatedAt"`
}

func toCropResponse(crop models.Crop) cropResponse {
	pests := make([]pestIssueResponse, 0, len(crop.PestIssues))
	for _, issue := range crop.PestIssues {
		pests = append(pests, pestIssueResponse{
			Label:        issue.Label,
			DateReported: issue.DateReported,
			Severity:     issue.Severity,
			Treatment:    issue.Treatment,
			Status:       issue.Status,
		})
	}
	activities := make([]activityResponse, 0, len(crop.Activities))
	for _, activity := range crop.Activities {
		activities = append(activities, activityResponse{
			ActivityType: activity.ActivityType,
			Date:         activity.Date,
			Notes:        activity.Notes,
			Performer:    activity.Performer,
		})
	}
	return cropResponse{
		ID:                    crop.CropID,
		OwnerID:               crop.OwnerID,
		Field:                 crop.Field,
		CropType:              crop.CropType,
		PlantingDate:          crop.PlantingDate,
		Area:                  crop.Area,
		SoilType:              crop.SoilType,
		WateringFrequencyDays: crop.WateringFrequencyDays,
		GrowthStage:           crop.GrowthStage,
		HealthScore:           crop.HealthScore,
		EstimatedYield:        crop.EstimatedYield,
		PestIssues:            pests,
		Activities:            activities,
		HarvestDate:           crop.HarvestDate,
		ActualYield:           crop.ActualYield,
		CreatedAt:             crop.CreatedAt,
		UpdatedAt:             crop.UpdatedAt,
	}
}

type harvestResponse struct {
	ID          uuid.UUID `json:"id"`
	CropID      uuid.UUID `json:"cropId"`
	OwnerID     uuid.UUID `json:"ownerId"`
	HarvestDate time.Time `json:"harvestDate"`
	ActualYield float64   `json:"actualYield"`
	Quality     string    `json:"quality"`
	Notes       string    `json:"notes"`
	SoldAmount  float64   `json:"soldAmount"`
	Income      float64   `json:"income"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toHarvestResponse(harvest models.Harvest) harvestResponse {
	return harvestResponse{
		ID:          harvest.HarvestID,
		CropID:      harvest.CropID,
		OwnerID:     harvest.OwnerID,
		HarvestDate: harvest.HarvestDate,
		ActualYield: harvest.ActualYield,
		Quality:     harvest.Quality,
		Notes:       harvest.Notes,
		SoldAmount:  harvest.SoldAmount,
		Income:      harvest.Income,
		CreatedAt:   harvest.CreatedAt,
	}
}

type alertResponse struct {
	ID          uuid.UUID  `json:"id"`
	CropID      *uuid.UUID `json:"cropId,omitempty"`
	OwnerID     uuid.UUID  `json:"ownerId"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	Severity    string     `json:"severity"`
	IsRead      bool       `json:"isRead"`
	ActionTaken *string    `json:"actionTaken,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`
}

func toAlertResponse(alert models.Alert) alertResponse {
	return alertResponse{
		ID:          alert.AlertID,
		CropID:      alert.CropID,
		OwnerID:     alert.OwnerID,
		Type:        alert.Type,
		Title:       alert.Title,
		Message:     alert.Message,
		Severity:    alert.Severity,
		IsRead:      alert.IsRead,
		ActionTaken: alert.ActionTaken,
		CreatedAt:   alert.CreatedAt,
		ResolvedAt:  alert.ResolvedAt,
	}
}

// writeServiceError maps service errors onto the response envelope.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if verr, ok := service.AsValidation(err); ok {
		httpx.WriteError(w, r, http.StatusBadRequest, "INVALID_ARGUMENT", "missing or invalid required fields",
			map[string]any{"missing": verr.Fields})
		return
	}
	if errors.Is(err, service.ErrNotFound) {
		httpx.WriteError(w, r, http.StatusNotFound, "NOT_FOUND", "crop not found", nil)
		return
	}
	httpx.WriteError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
}

// callerID resolves the authenticated user. The auth middleware has
// already verified the token, so a missing or malformed subject is a
// 401, not a 500.
func callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	auth, ok := authx.FromContext(r.Context())
	if !ok {
		httpx.WriteError(w, r, http.StatusUnauthorized, "UNAUTHENTICATED", "missing auth context", nil)
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(auth.Subject)
	if err != nil {
		httpx.WriteError(w, r, http.StatusUnauthorized, "UNAUTHENTICATED", "invalid subject", nil)
		return uuid.Nil, false
	}
	return userID, true
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		httpx.WriteError(w, r, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

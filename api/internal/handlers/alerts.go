package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"farm-management-system/api/internal/models"
	"farm-management-system/shared/httpx"
)

type AlertStore interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]models.Alert, error)
	CountUnread(ctx context.Context, ownerID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, alertID uuid.UUID, ownerID uuid.UUID) (models.Alert, error)
	Resolve(ctx context.Context, alertID uuid.UUID, ownerID uuid.UUID, actionTaken string) (models.Alert, error)
}

type AlertsHandler struct {
	Alerts AlertStore
}

func (h *AlertsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/alerts", h.list)
	mux.HandleFunc("GET /api/v1/alerts/unread-count", h.unreadCount)
	mux.HandleFunc("PUT /api/v1/alerts/{id}/read", h.markRead)
	mux.HandleFunc("PUT /api/v1/alerts/{id}/resolve", h.resolve)
}

func (h *AlertsHandler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}
	alerts, err := h.Alerts.ListByOwner(r.Context(), ownerID, 0)
	if err != nil {
		httpx.WriteError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}
	out := make([]alertResponse, 0, len(alerts))
	for _, alert := range alerts {
		out = append(out, toAlertResponse(alert))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *AlertsHandler) unreadCount(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}
	count, err := h.Alerts.CountUnread(r.Context(), ownerID)
	if err != nil {
		httpx.WriteError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]int{"unreadCount": count})
}

func (h *AlertsHandler) markRead(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}
	alertID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	alert, err := h.Alerts.MarkRead(r.Context(), alertID, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			httpx.WriteError(w, r, http.StatusNotFound, "NOT_FOUND", "alert not found", nil)
			return
		}
		httpx.WriteError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAlertResponse(alert))
}

type resolveAlertRequest struct {
	ActionTaken string `json:"actionTaken"`
}

func (h *AlertsHandler) resolve(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}
	alertID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req resolveAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, r, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid json body", nil)
		return
	}
	alert, err := h.Alerts.Resolve(r.Context(), alertID, ownerID, req.ActionTaken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			httpx.WriteError(w, r, http.StatusNotFound, "NOT_FOUND", "alert not found", nil)
			return
		}
		httpx.WriteError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAlertResponse(alert))
}

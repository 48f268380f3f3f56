package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"farm-management-system/api/internal/models"
	"farm-management-system/shared/httpx"
)

type HarvestStore interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Harvest, error)
}

type HarvestsHandler struct {
	Harvests HarvestStore
}

func (h *HarvestsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/harvests", h.list)
}

func (h *HarvestsHandler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}
	harvests, err := h.Harvests.ListByOwner(r.Context(), ownerID)
	if err != nil {
		httpx.WriteError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}
	out := make([]harvestResponse, 0, len(harvests))
	for _, harvest := range harvests {
		out = append(out, toHarvestResponse(harvest))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

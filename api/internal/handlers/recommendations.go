package handlers

import (
	"net/http"

	"farm-management-system/api/internal/recommend"
	"farm-management-system/shared/httpx"
)

type RecommendationsHandler struct {
	Service *recommend.Service
}

func (h *RecommendationsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/recommendations", h.list)
	mux.HandleFunc("GET /api/v1/recommendations/{cropType}/{soilType}", h.get)
}

func (h *RecommendationsHandler) list(w http.ResponseWriter, r *http.Request) {
	recs, err := h.Service.List(r.Context())
	if err != nil {
		httpx.WriteError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, recs)
}

func (h *RecommendationsHandler) get(w http.ResponseWriter, r *http.Request) {
	cropType := r.PathValue("cropType")
	soilType := r.PathValue("soilType")
	rec, err := h.Service.Get(r.Context(), cropType, soilType)
	if err != nil {
		httpx.WriteError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"cropType":        rec.CropType,
		"soilType":        rec.SoilType,
		"recommendations": rec.Details,
	})
}

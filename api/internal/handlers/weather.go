package handlers

import (
	"net/http"
	"strings"

	"farm-management-system/api/internal/weather"
	"farm-management-system/shared/httpx"
)

type WeatherHandler struct {
	Provider weather.Provider
}

func (h *WeatherHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/weather", h.listRegions)
	mux.HandleFunc("GET /api/v1/weather/{region}", h.report)
}

func (h *WeatherHandler) listRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.Provider.Regions(r.Context())
	if err != nil {
		httpx.WriteError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"regions": regions,
		"count":   len(regions),
	})
}

func (h *WeatherHandler) report(w http.ResponseWriter, r *http.Request) {
	region := r.PathValue("region")
	report, ok, err := h.Provider.Report(r.Context(), region)
	if err != nil {
		httpx.WriteError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}
	if !ok {
		regions, rerr := h.Provider.Regions(r.Context())
		if rerr != nil {
			regions = nil
		}
		httpx.WriteError(w, r, http.StatusBadRequest, "INVALID_ARGUMENT",
			"Region not found. Available regions: "+strings.Join(regions, ", "),
			map[string]any{"availableRegions": regions})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, report)
}

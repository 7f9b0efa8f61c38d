package handlers

import (
	"net/http"

	"github.com/aidsync/aidsync/internal/services"
	pkghttp "github.com/aidsync/aidsync/pkg/http"
)

type DashboardHandler struct {
	service *services.DashboardService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		pkghttp.WriteUnavailable(w, "failed to load dashboard stats")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, stats)
}

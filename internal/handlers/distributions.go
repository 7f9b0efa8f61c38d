package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/aidsync/aidsync/internal/models"
	"github.com/aidsync/aidsync/internal/services"
	"github.com/aidsync/aidsync/internal/session"
	pkghttp "github.com/aidsync/aidsync/pkg/http"
)

type DistributionHandler struct {
	service *services.DistributionService
	guard   *session.Guard
}

func NewDistributionHandler(service *services.DistributionService, guard *session.Guard) *DistributionHandler {
	return &DistributionHandler{service: service, guard: guard}
}

type distributionRequest struct {
	BeneficiaryID int64   `json:"beneficiary_id" validate:"required,gt=0"`
	ItemID        int64   `json:"item_id" validate:"required,gt=0"`
	Quantity      float64 `json:"quantity" validate:"required,gt=0"`
	Remarks       string  `json:"remarks,omitempty" validate:"max=200"`
}

func (h *DistributionHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	list, err := h.service.ListRecent(r.Context(), limit, offset)
	if err != nil {
		pkghttp.WriteUnavailable(w, "failed to list distributions")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, list)
}

func (h *DistributionHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req distributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	var distributedBy int64
	if user := h.guard.CurrentUser(); user != nil {
		distributedBy = user.ID
	}

	created, err := h.service.Record(r.Context(),
		req.BeneficiaryID, req.ItemID, req.Quantity, distributedBy, req.Remarks)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "beneficiary or item not found")
		case errors.Is(err, models.ErrInsufficientStock):
			pkghttp.WriteConflict(w, "insufficient stock")
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteBadRequest(w, err.Error())
		default:
			pkghttp.WriteUnavailable(w, "failed to record distribution")
		}
		return
	}
	pkghttp.WriteJSON(w, http.StatusCreated, created)
}

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
	"github.com/aidsync/aidsync/pkg/security"
	"github.com/go-chi/chi/v5"
)

type InventoryHandler struct {
	service *services.InventoryService
	guard   *session.Guard
}

func NewInventoryHandler(service *services.InventoryService, guard *session.Guard) *InventoryHandler {
	return &InventoryHandler{service: service, guard: guard}
}

type inventoryItemRequest struct {
	Name            string  `json:"name" validate:"required,max=100"`
	Category        string  `json:"category,omitempty" validate:"max=100"`
	UnitOfMeasure   string  `json:"unit_of_measure,omitempty" validate:"max=20"`
	CurrentStock    float64 `json:"current_stock" validate:"gte=0"`
	MinimumStock    float64 `json:"minimum_stock" validate:"gte=0"`
	UnitCost        float64 `json:"unit_cost" validate:"gte=0"`
	StorageLocation string  `json:"storage_location,omitempty" validate:"max=100"`
	Status          string  `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE INACTIVE DISCONTINUED"`
}

type stockMovementRequest struct {
	MovementType string  `json:"movement_type" validate:"required,oneof=IN OUT"`
	Quantity     float64 `json:"quantity" validate:"required,gt=0"`
	Reason       string  `json:"reason,omitempty" validate:"max=200"`
}

func (req *inventoryItemRequest) toModel() *models.InventoryItem {
	return &models.InventoryItem{
		Name:            req.Name,
		Category:        req.Category,
		UnitOfMeasure:   req.UnitOfMeasure,
		CurrentStock:    req.CurrentStock,
		MinimumStock:    req.MinimumStock,
		UnitCost:        req.UnitCost,
		StorageLocation: req.StorageLocation,
		Status:          models.ItemStatus(req.Status),
	}
}

func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	search := q.Get("search")
	if !security.IsInputSafe(search) {
		pkghttp.WriteBadRequest(w, "invalid search input")
		return
	}

	filter := models.InventoryFilter{
		Search:   search,
		Category: q.Get("category"),
		Status:   models.ItemStatus(q.Get("status")),
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	items, err := h.service.List(r.Context(), filter, limit, offset)
	if err != nil {
		pkghttp.WriteUnavailable(w, "failed to list inventory")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, items)
}

func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid item id")
		return
	}

	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "item not found")
			return
		}
		pkghttp.WriteUnavailable(w, "failed to get item")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, item)
}

func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req inventoryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), req.toModel())
	if err != nil {
		writeInventoryError(w, err)
		return
	}
	pkghttp.WriteJSON(w, http.StatusCreated, created)
}

func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid item id")
		return
	}

	var req inventoryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	item := req.toModel()
	if item.Status == "" {
		item.Status = models.ItemActive
	}

	updated, err := h.service.Update(r.Context(), id, item)
	if err != nil {
		writeInventoryError(w, err)
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, updated)
}

// RecordMovement receives or issues stock for one item.
func (h *InventoryHandler) RecordMovement(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid item id")
		return
	}

	var req stockMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	var recordedBy int64
	if user := h.guard.CurrentUser(); user != nil {
		recordedBy = user.ID
	}

	err = h.service.RecordMovement(r.Context(), id,
		models.StockMovementType(req.MovementType), req.Quantity, req.Reason, recordedBy)
	if err != nil {
		writeInventoryError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeInventoryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		pkghttp.WriteNotFound(w, "item not found")
	case errors.Is(err, models.ErrInsufficientStock):
		pkghttp.WriteConflict(w, "insufficient stock")
	case errors.Is(err, models.ErrBadRequest):
		pkghttp.WriteBadRequest(w, err.Error())
	case errors.Is(err, models.ErrConflict):
		pkghttp.WriteConflict(w, "item already exists")
	default:
		pkghttp.WriteUnavailable(w, "inventory operation failed")
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/aidsync/aidsync/internal/models"
	"github.com/aidsync/aidsync/internal/services"
	pkghttp "github.com/aidsync/aidsync/pkg/http"
	"github.com/aidsync/aidsync/pkg/security"
	"github.com/go-chi/chi/v5"
)

type BeneficiaryHandler struct {
	service *services.BeneficiaryService
}

func NewBeneficiaryHandler(service *services.BeneficiaryService) *BeneficiaryHandler {
	return &BeneficiaryHandler{service: service}
}

type beneficiaryRequest struct {
	FullName        string `json:"full_name" validate:"required,max=100"`
	BirthDate       string `json:"birth_date,omitempty"`
	Gender          string `json:"gender,omitempty" validate:"omitempty,oneof=MALE FEMALE PREFER_NOT_TO_SAY"`
	Barangay        string `json:"barangay,omitempty" validate:"max=100"`
	ContactNumber   string `json:"contact_number,omitempty" validate:"max=20"`
	IsHouseholdHead bool   `json:"is_household_head"`
	FamilySize      int    `json:"family_size" validate:"omitempty,gte=1"`
	IsPWD           bool   `json:"is_pwd"`
	IsSeniorCitizen bool   `json:"is_senior_citizen"`
	IsSoloParent    bool   `json:"is_solo_parent"`
	PriorityLevel   int    `json:"priority_level" validate:"omitempty,gte=1,lte=5"`
	Status          string `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (req *beneficiaryRequest) toModel() (*models.Beneficiary, error) {
	b := &models.Beneficiary{
		FullName:        req.FullName,
		Gender:          req.Gender,
		Barangay:        req.Barangay,
		ContactNumber:   req.ContactNumber,
		IsHouseholdHead: req.IsHouseholdHead,
		FamilySize:      req.FamilySize,
		IsPWD:           req.IsPWD,
		IsSeniorCitizen: req.IsSeniorCitizen,
		IsSoloParent:    req.IsSoloParent,
		PriorityLevel:   req.PriorityLevel,
		Status:          models.BeneficiaryStatus(req.Status),
	}
	if req.BirthDate != "" {
		d, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return nil, err
		}
		b.BirthDate = &d
	}
	return b, nil
}

func (h *BeneficiaryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	search := q.Get("search")
	if !security.IsInputSafe(search) {
		pkghttp.WriteBadRequest(w, "invalid search input")
		return
	}

	filter := models.BeneficiaryFilter{
		Search:   search,
		Barangay: q.Get("barangay"),
		Status:   models.BeneficiaryStatus(q.Get("status")),
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	list, err := h.service.List(r.Context(), filter, limit, offset)
	if err != nil {
		pkghttp.WriteUnavailable(w, "failed to list beneficiaries")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, list)
}

func (h *BeneficiaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid beneficiary id")
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "beneficiary not found")
			return
		}
		pkghttp.WriteUnavailable(w, "failed to get beneficiary")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, b)
}

func (h *BeneficiaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req beneficiaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	b, err := req.toModel()
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid birth date, expected YYYY-MM-DD")
		return
	}

	created, err := h.service.Register(r.Context(), b)
	if err != nil {
		writeBeneficiaryError(w, err)
		return
	}
	pkghttp.WriteJSON(w, http.StatusCreated, created)
}

func (h *BeneficiaryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid beneficiary id")
		return
	}

	var req beneficiaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	b, err := req.toModel()
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid birth date, expected YYYY-MM-DD")
		return
	}
	if b.Status == "" {
		b.Status = models.BeneficiaryActive
	}

	updated, err := h.service.Update(r.Context(), id, b)
	if err != nil {
		writeBeneficiaryError(w, err)
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, updated)
}

func (h *BeneficiaryHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid beneficiary id")
		return
	}

	if err := h.service.Deactivate(r.Context(), id); err != nil {
		writeBeneficiaryError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeBeneficiaryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		pkghttp.WriteNotFound(w, "beneficiary not found")
	case errors.Is(err, models.ErrBadRequest):
		pkghttp.WriteBadRequest(w, err.Error())
	case errors.Is(err, models.ErrConflict):
		pkghttp.WriteConflict(w, "beneficiary already exists")
	default:
		pkghttp.WriteUnavailable(w, "beneficiary operation failed")
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/aidsync/aidsync/internal/models"
	"github.com/aidsync/aidsync/internal/services"
	pkgauth "github.com/aidsync/aidsync/pkg/auth"
	pkghttp "github.com/aidsync/aidsync/pkg/http"
	"github.com/aidsync/aidsync/pkg/security"
	"github.com/go-chi/chi/v5"
)

// UserHandler exposes staff account administration.
type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createAccountRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	FullName string `json:"full_name" validate:"required,max=100"`
	Role     string `json:"role" validate:"required"`
}

type updateAccountRequest struct {
	FullName string `json:"full_name" validate:"required,max=100"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Role     string `json:"role" validate:"required"`
	Status   string `json:"status" validate:"required,oneof=ACTIVE INACTIVE LOCKED"`
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	accounts, err := h.service.ListAccounts(r.Context(), limit, offset)
	if err != nil {
		pkghttp.WriteUnavailable(w, "failed to list accounts")
		return
	}

	responses := make([]*accountResponse, 0, len(accounts))
	for _, a := range accounts {
		responses = append(responses, accountToResponse(a))
	}
	pkghttp.WriteJSON(w, http.StatusOK, responses)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}
	if !security.IsValidUsername(req.Username) {
		pkghttp.WriteBadRequest(w, "username must be 3-50 letters, digits or underscores")
		return
	}

	created, err := h.service.CreateAccount(r.Context(),
		req.Username, req.Password, req.Email, req.FullName, models.Role(req.Role))
	if err != nil {
		writeAccountError(w, err)
		return
	}
	pkghttp.WriteJSON(w, http.StatusCreated, accountToResponse(created))
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid account id")
		return
	}

	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	updated, err := h.service.UpdateAccount(r.Context(), id,
		req.FullName, req.Email, models.Role(req.Role), models.AccountStatus(req.Status))
	if err != nil {
		writeAccountError(w, err)
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, accountToResponse(updated))
}

// Unlock clears an account's lockout state.
func (h *UserHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid account id")
		return
	}

	if err := h.service.UnlockAccount(r.Context(), id); err != nil {
		writeAccountError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeAccountError(w http.ResponseWriter, err error) {
	var pwErr *pkgauth.PasswordValidationError
	switch {
	case errors.Is(err, models.ErrConflict):
		pkghttp.WriteConflict(w, "username or email already in use")
	case errors.Is(err, models.ErrNotFound):
		pkghttp.WriteNotFound(w, "account not found")
	case errors.Is(err, models.ErrBadRequest):
		pkghttp.WriteBadRequest(w, err.Error())
	case errors.As(err, &pwErr):
		pkghttp.WriteBadRequest(w, "password does not meet requirements")
	default:
		pkghttp.WriteUnavailable(w, "account operation failed")
	}
}

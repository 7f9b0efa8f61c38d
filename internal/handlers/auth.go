package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/aidsync/aidsync/internal/models"
	"github.com/aidsync/aidsync/internal/services"
	"github.com/aidsync/aidsync/internal/session"
	pkghttp "github.com/aidsync/aidsync/pkg/http"
	"github.com/aidsync/aidsync/pkg/security"
)

// AuthHandler exposes the credential verifier and session guard to the
// desktop frontend.
type AuthHandler struct {
	auth  *services.AuthService
	guard *session.Guard
}

func NewAuthHandler(auth *services.AuthService, guard *session.Guard) *AuthHandler {
	return &AuthHandler{auth: auth, guard: guard}
}

type loginRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=128"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// accountResponse never carries the password hash.
type accountResponse struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email,omitempty"`
	FullName  string  `json:"full_name"`
	Role      string  `json:"role"`
	Status    string  `json:"status"`
	LastLogin *string `json:"last_login,omitempty"`
}

func accountToResponse(acct *models.Account) *accountResponse {
	resp := &accountResponse{
		ID:       acct.ID,
		Username: acct.Username,
		Email:    acct.Email,
		FullName: acct.FullName,
		Role:     string(acct.Role),
		Status:   string(acct.Status),
	}
	if acct.LastLogin != nil {
		s := acct.LastLogin.Format(time.RFC3339)
		resp.LastLogin = &s
	}
	return resp
}

// Login authenticates and starts the single application session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	// Input is screened before it reaches the verifier or any query
	if !security.IsValidUsername(req.Username) || !security.IsInputSafe(req.Username) {
		pkghttp.WriteUnauthorized(w, "invalid username or password")
		return
	}

	acct, err := h.auth.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrAccountLocked):
			pkghttp.WriteError(w, http.StatusForbidden, "account_locked",
				"account is locked, contact an administrator")
		case errors.Is(err, models.ErrInvalidCredentials):
			pkghttp.WriteUnauthorized(w, "invalid username or password")
		default:
			pkghttp.WriteUnavailable(w, "authentication failed, try again")
		}
		return
	}

	h.guard.Login(acct)
	pkghttp.WriteJSON(w, http.StatusOK, accountToResponse(acct))
}

// Logout ends the session. Idempotent.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.guard.Logout()
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the currently authenticated account.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := h.guard.CurrentUser()
	if user == nil {
		pkghttp.WriteUnauthorized(w, "not logged in")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, accountToResponse(user))
}

// ChangePassword re-verifies the current password before replacing it.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := h.guard.CurrentUser()
	if user == nil {
		pkghttp.WriteUnauthorized(w, "not logged in")
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}
	if !security.IsValidPassword(req.NewPassword) {
		pkghttp.WriteBadRequest(w, "new password does not meet requirements")
		return
	}

	err := h.auth.ChangePassword(r.Context(), user.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidCredentials):
			pkghttp.WriteUnauthorized(w, "current password is incorrect")
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "account not found")
		case errors.Is(err, models.ErrUnavailable):
			pkghttp.WriteUnavailable(w, "password change failed, try again")
		default:
			pkghttp.WriteBadRequest(w, "new password does not meet requirements")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

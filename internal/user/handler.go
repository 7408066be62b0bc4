package user

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/transport"
	"github.com/frahmantamala/attendance-management/pkg/logger"
)

type ServiceAPI interface {
	GetByID(userID int64) (*User, error)
	UpdateProfile(userID int64, dto UpdateProfileDTO) (*User, error)
	ListEmployees() ([]*User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// GetCurrentUser handles GET /api/auth/me
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.UserFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.Service.GetByID(principal.ID)
	if err != nil {
		h.Logger.Error("GetCurrentUser: lookup failed", "user_id", principal.ID, "error", err)
		if _, ok := internal.IsAppError(err); !ok {
			err = internal.NewInternalError("internal server error", err)
		}
		h.WriteDomainError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "User retrieved successfully", u)
}

// UpdateProfile handles PUT /api/auth/profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.UserFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteDomainError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	u, err := h.Service.UpdateProfile(principal.ID, dto)
	if err != nil {
		h.Logger.Error("UpdateProfile failed", "user_id", principal.ID, "error", err)
		if _, ok := internal.IsAppError(err); !ok {
			err = internal.NewInternalError("internal server error", err)
		}
		h.WriteDomainError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Profile updated successfully", u)
}

// ListEmployees handles GET /api/auth/users (manager only)
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.ListEmployees()
	if err != nil {
		h.Logger.Error("ListEmployees failed", "error", err)
		h.WriteDomainError(w, internal.NewInternalError("internal server error", err))
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Users retrieved successfully", employees)
}

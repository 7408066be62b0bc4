package dashboard

import (
	"net/http"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/transport"
)

type ServiceAPI interface {
	EmployeeDashboard(userID int64) (*EmployeeDashboard, error)
	ManagerDashboard() (*ManagerDashboard, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) Employee(w http.ResponseWriter, r *http.Request) {
	p, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	payload, err := h.Service.EmployeeDashboard(p.ID)
	if err != nil {
		h.Logger.Error("employee dashboard failed", "error", err, "user_id", p.ID)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Employee dashboard retrieved successfully", payload)
}

func (h *Handler) Manager(w http.ResponseWriter, r *http.Request) {
	payload, err := h.Service.ManagerDashboard()
	if err != nil {
		h.Logger.Error("manager dashboard failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Manager dashboard retrieved successfully", payload)
}

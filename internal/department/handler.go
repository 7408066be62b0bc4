package department

import (
	"net/http"

	"github.com/frahmantamala/attendance-management/internal/transport"
)

type ServiceAPI interface {
	ListDepartments() ([]DepartmentResponse, error)
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

func (h *Handler) GetDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Service.ListDepartments()
	if err != nil {
		h.Logger.Error("GetDepartments: failed to list departments", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get departments")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Departments", DepartmentsResponse{
		Departments: departments,
	})
}

package attendance

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/transport"
	"github.com/frahmantamala/attendance-management/pkg/logger"
)

// ServiceAPI is the handler-facing surface of the attendance service.
type ServiceAPI interface {
	CheckIn(userID int64) (*Record, error)
	CheckOut(userID int64) (*Record, error)
	History(userID int64, f Filter) (HistoryResult, error)
	MonthlySummary(userID int64, month, year int) (MonthlySummary, error)
	TodayStatus(userID int64) (TodayStatus, error)
	TeamHistory(f Filter) (TeamHistoryResult, error)
	EmployeeHistory(employeeUserID int64, start, end *time.Time) (HistoryResult, error)
	TeamSummary(month, year int) (TeamSummary, error)
	TeamTodayStatus() (TeamTodayStatus, error)
	ExportCSV(w io.Writer, f Filter) error
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

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	p, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	rec, err := h.Service.CheckIn(p.ID)
	if err != nil {
		if _, ok := internal.IsAppError(err); !ok {
			h.Logger.Error("check-in failed", "error", err, "user_id", p.ID)
			err = internal.NewInternalError("internal server error", err)
		}
		h.WriteDomainError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusCreated, "Checked in successfully", rec)
}

func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	p, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	rec, err := h.Service.CheckOut(p.ID)
	if err != nil {
		if _, ok := internal.IsAppError(err); !ok {
			h.Logger.Error("check-out failed", "error", err, "user_id", p.ID)
			err = internal.NewInternalError("internal server error", err)
		}
		h.WriteDomainError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Checked out successfully", rec)
}

func (h *Handler) MyHistory(w http.ResponseWriter, r *http.Request) {
	p, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	f, err := filterFromQuery(r)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	result, err := h.Service.History(p.ID, f)
	if err != nil {
		h.Logger.Error("history failed", "error", err, "user_id", p.ID)
		if _, ok := internal.IsAppError(err); !ok {
			err = internal.NewInternalError("internal server error", err)
		}
		h.WriteDomainError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Attendance history", result)
}

func (h *Handler) MySummary(w http.ResponseWriter, r *http.Request) {
	p, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	month, year, err := monthYearFromQuery(r)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	summary, err := h.Service.MonthlySummary(p.ID, month, year)
	if err != nil {
		h.Logger.Error("summary failed", "error", err, "user_id", p.ID)
		if _, ok := internal.IsAppError(err); !ok {
			err = internal.NewInternalError("internal server error", err)
		}
		h.WriteDomainError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Attendance summary", summary)
}

func (h *Handler) Today(w http.ResponseWriter, r *http.Request) {
	p, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	status, err := h.Service.TodayStatus(p.ID)
	if err != nil {
		h.Logger.Error("today status failed", "error", err, "user_id", p.ID)
		if _, ok := internal.IsAppError(err); !ok {
			err = internal.NewInternalError("internal server error", err)
		}
		h.WriteDomainError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Today's attendance status", status)
}

func (h *Handler) All(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	result, err := h.Service.TeamHistory(f)
	if err != nil {
		h.Logger.Error("team history failed", "error", err)
		if _, ok := internal.IsAppError(err); !ok {
			err = internal.NewInternalError("internal server error", err)
		}
		h.WriteDomainError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "All attendance records", result)
}

func (h *Handler) EmployeeHistory(w http.ResponseWriter, r *http.Request) {
	employeeUserID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteDomainError(w, internal.NewValidationError("invalid employee id", internal.ErrCodeValidationFailed))
		return
	}

	f, err := filterFromQuery(r)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	result, err := h.Service.EmployeeHistory(employeeUserID, f.Start, f.End)
	if err != nil {
		h.Logger.Error("employee history failed", "error", err, "employee_user_id", employeeUserID)
		if _, ok := internal.IsAppError(err); !ok {
			err = internal.NewInternalError("internal server error", err)
		}
		h.WriteDomainError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Employee attendance history", result)
}

func (h *Handler) TeamSummary(w http.ResponseWriter, r *http.Request) {
	month, year, err := monthYearFromQuery(r)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	summary, err := h.Service.TeamSummary(month, year)
	if err != nil {
		h.Logger.Error("team summary failed", "error", err)
		if _, ok := internal.IsAppError(err); !ok {
			err = internal.NewInternalError("internal server error", err)
		}
		h.WriteDomainError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Team attendance summary", summary)
}

func (h *Handler) TeamToday(w http.ResponseWriter, r *http.Request) {
	status, err := h.Service.TeamTodayStatus()
	if err != nil {
		h.Logger.Error("team today status failed", "error", err)
		if _, ok := internal.IsAppError(err); !ok {
			err = internal.NewInternalError("internal server error", err)
		}
		h.WriteDomainError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Today's team status", status)
}

// Export writes the CSV report straight to the response; it is the one
// endpoint that does not use the JSON envelope.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", CSVFilename))

	if err := h.Service.ExportCSV(w, f); err != nil {
		// headers already sent; the truncated body is all we can signal
		h.Logger.Error("csv export failed", "error", err)
	}
}

// filterFromQuery parses startDate/endDate (inclusive ISO dates), status
// and department query params. When no explicit range is given, month and
// year params select the whole calendar month instead.
func filterFromQuery(r *http.Request) (Filter, error) {
	var f Filter
	q := r.URL.Query()

	if v := q.Get("startDate"); v != "" {
		t, err := time.ParseInLocation(time.DateOnly, v, time.Local)
		if err != nil {
			return Filter{}, internal.NewValidationError(fmt.Sprintf("invalid startDate: %s", v), internal.ErrCodeInvalidDate)
		}
		f.Start = &t
	}
	if v := q.Get("endDate"); v != "" {
		t, err := time.ParseInLocation(time.DateOnly, v, time.Local)
		if err != nil {
			return Filter{}, internal.NewValidationError(fmt.Sprintf("invalid endDate: %s", v), internal.ErrCodeInvalidDate)
		}
		f.End = &t
	}
	if f.Start != nil && f.End != nil && f.End.Before(*f.Start) {
		return Filter{}, internal.NewValidationError("endDate is before startDate", internal.ErrCodeInvalidDate)
	}

	if f.Start == nil && f.End == nil {
		month, year, err := monthYearFromQuery(r)
		if err != nil {
			return Filter{}, err
		}
		if month != 0 && year != 0 {
			start, end := MonthRange(year, time.Month(month), time.Local)
			f.Start = &start
			f.End = &end
		}
	}

	f.Status = q.Get("status")
	f.Department = q.Get("department")
	return f, nil
}

func monthYearFromQuery(r *http.Request) (month, year int, err error) {
	q := r.URL.Query()
	if v := q.Get("month"); v != "" {
		month, err = strconv.Atoi(v)
		if err != nil || month < 1 || month > 12 {
			return 0, 0, internal.NewValidationError(fmt.Sprintf("invalid month: %s", v), internal.ErrCodeInvalidDate)
		}
	}
	if v := q.Get("year"); v != "" {
		year, err = strconv.Atoi(v)
		if err != nil || year < 0 {
			return 0, 0, internal.NewValidationError(fmt.Sprintf("invalid year: %s", v), internal.ErrCodeInvalidDate)
		}
	}
	return month, year, nil
}

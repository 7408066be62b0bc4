package attendance_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/attendance"
)

// Stub service for handler tests
type stubAttendanceService struct {
	checkInRec  *attendance.Record
	checkInErr  error
	checkOutErr error
	history     attendance.HistoryResult
	historyErr  error
	gotFilter   attendance.Filter
}

func (s *stubAttendanceService) CheckIn(userID int64) (*attendance.Record, error) {
	return s.checkInRec, s.checkInErr
}

func (s *stubAttendanceService) CheckOut(userID int64) (*attendance.Record, error) {
	return s.checkInRec, s.checkOutErr
}

func (s *stubAttendanceService) History(userID int64, f attendance.Filter) (attendance.HistoryResult, error) {
	s.gotFilter = f
	return s.history, s.historyErr
}

func (s *stubAttendanceService) MonthlySummary(userID int64, month, year int) (attendance.MonthlySummary, error) {
	return attendance.MonthlySummary{Month: month, Year: year}, nil
}

func (s *stubAttendanceService) TodayStatus(userID int64) (attendance.TodayStatus, error) {
	return attendance.TodayStatus{}, nil
}

func (s *stubAttendanceService) TeamHistory(f attendance.Filter) (attendance.TeamHistoryResult, error) {
	s.gotFilter = f
	return attendance.TeamHistoryResult{}, nil
}

func (s *stubAttendanceService) EmployeeHistory(employeeUserID int64, start, end *time.Time) (attendance.HistoryResult, error) {
	return s.history, s.historyErr
}

func (s *stubAttendanceService) TeamSummary(month, year int) (attendance.TeamSummary, error) {
	return attendance.TeamSummary{Month: month, Year: year}, nil
}

func (s *stubAttendanceService) TeamTodayStatus() (attendance.TeamTodayStatus, error) {
	return attendance.TeamTodayStatus{}, nil
}

func (s *stubAttendanceService) ExportCSV(w io.Writer, f attendance.Filter) error {
	s.gotFilter = f
	_, err := w.Write([]byte("Date,EmployeeID\n"))
	return err
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func authedRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	principal := &internal.Principal{ID: 1, Email: "andi@mail.com", Name: "Andi", Role: "employee"}
	return req.WithContext(internal.ContextWithUser(req.Context(), principal))
}

var _ = Describe("AttendanceHandler", func() {
	var (
		handler *attendance.Handler
		stub    *stubAttendanceService
	)

	BeforeEach(func() {
		stub = &stubAttendanceService{}
		handler = attendance.NewHandler(stub)
	})

	decode := func(w *httptest.ResponseRecorder) envelope {
		var env envelope
		Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())
		return env
	}

	Describe("CheckIn", func() {
		It("returns 201 with the created record", func() {
			stub.checkInRec = &attendance.Record{ID: 7, UserID: 1, Status: attendance.StatusPresent}

			w := httptest.NewRecorder()
			handler.CheckIn(w, authedRequest(http.MethodPost, "/attendance/checkin"))

			Expect(w.Code).To(Equal(http.StatusCreated))
			env := decode(w)
			Expect(env.Success).To(BeTrue())
			Expect(env.Message).To(Equal("Checked in successfully"))
		})

		It("maps a duplicate check-in to 400", func() {
			stub.checkInErr = attendance.ErrAlreadyCheckedIn

			w := httptest.NewRecorder()
			handler.CheckIn(w, authedRequest(http.MethodPost, "/attendance/checkin"))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			env := decode(w)
			Expect(env.Success).To(BeFalse())
			Expect(env.Message).To(Equal("Already checked in today"))
		})

		It("rejects an unauthenticated request", func() {
			w := httptest.NewRecorder()
			handler.CheckIn(w, httptest.NewRequest(http.MethodPost, "/attendance/checkin", nil))
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("maps unexpected errors to a 500 envelope", func() {
			stub.checkInErr = errors.New("connection reset")

			w := httptest.NewRecorder()
			handler.CheckIn(w, authedRequest(http.MethodPost, "/attendance/checkin"))

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			env := decode(w)
			Expect(env.Success).To(BeFalse())
			Expect(env.Message).To(Equal("internal server error"))
		})
	})

	Describe("CheckOut", func() {
		It("maps a missing check-in to 400", func() {
			stub.checkOutErr = attendance.ErrNoCheckInRecord

			w := httptest.NewRecorder()
			handler.CheckOut(w, authedRequest(http.MethodPost, "/attendance/checkout"))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w).Message).To(Equal("No check-in record found for today"))
		})

		It("maps a double check-out to 400", func() {
			stub.checkOutErr = attendance.ErrAlreadyCheckedOut

			w := httptest.NewRecorder()
			handler.CheckOut(w, authedRequest(http.MethodPost, "/attendance/checkout"))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w).Message).To(Equal("Already checked out today"))
		})
	})

	Describe("MyHistory", func() {
		It("parses the date range filter", func() {
			w := httptest.NewRecorder()
			handler.MyHistory(w, authedRequest(http.MethodGet, "/attendance/my-history?startDate=2026-03-01&endDate=2026-03-31"))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(stub.gotFilter.Start).NotTo(BeNil())
			Expect(stub.gotFilter.End).NotTo(BeNil())
			Expect(stub.gotFilter.Start.Day()).To(Equal(1))
			Expect(stub.gotFilter.End.Day()).To(Equal(31))
		})

		It("rejects a malformed startDate", func() {
			w := httptest.NewRecorder()
			handler.MyHistory(w, authedRequest(http.MethodGet, "/attendance/my-history?startDate=March-1"))
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects an inverted range", func() {
			w := httptest.NewRecorder()
			handler.MyHistory(w, authedRequest(http.MethodGet, "/attendance/my-history?startDate=2026-03-31&endDate=2026-03-01"))
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("translates month and year params into a month range", func() {
			w := httptest.NewRecorder()
			handler.MyHistory(w, authedRequest(http.MethodGet, "/attendance/my-history?month=2&year=2026"))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(stub.gotFilter.Start).NotTo(BeNil())
			Expect(stub.gotFilter.End).NotTo(BeNil())
			Expect(stub.gotFilter.Start.Month()).To(Equal(time.February))
			Expect(stub.gotFilter.Start.Day()).To(Equal(1))
			Expect(stub.gotFilter.End.Month()).To(Equal(time.February))
			Expect(stub.gotFilter.End.Day()).To(Equal(28))
		})

		It("lets an explicit date range win over month and year", func() {
			w := httptest.NewRecorder()
			handler.MyHistory(w, authedRequest(http.MethodGet, "/attendance/my-history?startDate=2026-02-10&endDate=2026-02-12&month=3&year=2026"))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(stub.gotFilter.Start.Day()).To(Equal(10))
			Expect(stub.gotFilter.End.Day()).To(Equal(12))
		})

		It("rejects an out-of-range month used as a range", func() {
			w := httptest.NewRecorder()
			handler.MyHistory(w, authedRequest(http.MethodGet, "/attendance/my-history?month=13&year=2026"))
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("MySummary", func() {
		It("rejects an out-of-range month", func() {
			w := httptest.NewRecorder()
			handler.MySummary(w, authedRequest(http.MethodGet, "/attendance/my-summary?month=13"))
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Export", func() {
		It("sets CSV headers and streams the body", func() {
			w := httptest.NewRecorder()
			handler.Export(w, authedRequest(http.MethodGet, "/attendance/export"))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("text/csv"))
			Expect(w.Header().Get("Content-Disposition")).To(ContainSubstring("attendance_report.csv"))
			Expect(w.Body.String()).To(ContainSubstring("Date,EmployeeID"))
		})
	})
})

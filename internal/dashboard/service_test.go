package dashboard_test

import (
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/attendance-management/internal/attendance"
	"github.com/frahmantamala/attendance-management/internal/dashboard"
	"github.com/frahmantamala/attendance-management/internal/user"
)

// Mock attendance store for testing
type mockStore struct {
	records []*attendance.RecordWithEmployee
	findErr error
}

func (m *mockStore) FindByUserAndDate(userID int64, day time.Time) (*attendance.Record, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, r := range m.records {
		if r.UserID == userID && r.Date.Equal(day) {
			rec := r.Record
			return &rec, nil
		}
	}
	return nil, attendance.ErrRecordNotFound
}

func (m *mockStore) FindByUser(userID int64, f attendance.Filter) ([]*attendance.Record, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []*attendance.Record
	for _, r := range m.records {
		if r.UserID == userID && inRange(&r.Record, f) {
			rec := r.Record
			out = append(out, &rec)
		}
	}
	return out, nil
}

func (m *mockStore) FindAll(f attendance.Filter) ([]*attendance.RecordWithEmployee, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []*attendance.RecordWithEmployee
	for _, r := range m.records {
		if inRange(&r.Record, f) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockStore) FindByDate(day time.Time) ([]*attendance.RecordWithEmployee, error) {
	return m.FindAll(attendance.Filter{Start: &day, End: &day})
}

func inRange(rec *attendance.Record, f attendance.Filter) bool {
	if f.Start != nil && rec.Date.Before(*f.Start) {
		return false
	}
	if f.End != nil && rec.Date.After(*f.End) {
		return false
	}
	return true
}

// Mock employee directory for testing
type mockDirectory struct {
	employees []*user.User
}

func (m *mockDirectory) ListEmployees() ([]*user.User, error) {
	return m.employees, nil
}

func (m *mockDirectory) CountEmployees() (int64, error) {
	return int64(len(m.employees)), nil
}

func record(userID int64, day time.Time, status string, hours float64, dept string) *attendance.RecordWithEmployee {
	checkOut := day.Add(17 * time.Hour)
	return &attendance.RecordWithEmployee{
		Record: attendance.Record{
			UserID:       userID,
			Date:         day,
			CheckInTime:  day.Add(9 * time.Hour),
			CheckOutTime: &checkOut,
			Status:       status,
			TotalHours:   hours,
		},
		Department: dept,
	}
}

var _ = Describe("DashboardService", func() {
	var (
		svc       *dashboard.Service
		store     *mockStore
		directory *mockDirectory
		today     time.Time
	)

	BeforeEach(func() {
		store = &mockStore{}
		directory = &mockDirectory{
			employees: []*user.User{
				{ID: 1, Name: "Andi", EmployeeID: "EMP001", Department: "Engineering"},
				{ID: 2, Name: "Budi", EmployeeID: "EMP002", Department: "Engineering"},
				{ID: 3, Name: "Citra", EmployeeID: "EMP003", Department: "Sales"},
			},
		}
		// Wednesday 2026-03-04 10:00
		now := time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
		today = attendance.DayOf(now)
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = dashboard.NewServiceWithClock(store, directory, logger, func() time.Time { return now })
	})

	Describe("EmployeeDashboard", func() {
		It("reports an empty today status when there is no record", func() {
			payload, err := svc.EmployeeDashboard(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(payload.TodayStatus.CheckedIn).To(BeFalse())
			Expect(payload.TodayStatus.CheckInTime).To(BeNil())
		})

		It("aggregates the month and attaches recent records", func() {
			store.records = []*attendance.RecordWithEmployee{
				record(1, today, attendance.StatusPresent, 8, "Engineering"),
				record(1, today.AddDate(0, 0, -1), attendance.StatusLate, 7.5, "Engineering"),
				record(1, today.AddDate(0, 0, -2), attendance.StatusHalfDay, 3, "Engineering"),
			}

			payload, err := svc.EmployeeDashboard(1)
			Expect(err).NotTo(HaveOccurred())

			Expect(payload.TodayStatus.CheckedIn).To(BeTrue())
			Expect(payload.TodayStatus.CheckedOut).To(BeTrue())
			Expect(payload.TodayStatus.Status).To(Equal(attendance.StatusPresent))

			Expect(payload.MonthStats.Present).To(Equal(1))
			Expect(payload.MonthStats.Late).To(Equal(1))
			Expect(payload.MonthStats.HalfDay).To(Equal(1))
			Expect(payload.MonthStats.TotalHours).To(Equal(18.5))
			// 22 working days in March 2026, 3 recorded
			Expect(payload.MonthStats.Absent).To(Equal(19))

			Expect(payload.RecentAttendance).To(HaveLen(3))
		})
	})

	Describe("ManagerDashboard", func() {
		It("builds the overview and absent roster", func() {
			store.records = []*attendance.RecordWithEmployee{
				record(1, today, attendance.StatusPresent, 8, "Engineering"),
				record(2, today, attendance.StatusLate, 8, "Engineering"),
			}

			payload, err := svc.ManagerDashboard()
			Expect(err).NotTo(HaveOccurred())

			Expect(payload.Overview.TotalEmployees).To(Equal(3))
			Expect(payload.Overview.PresentToday).To(Equal(2))
			Expect(payload.Overview.AbsentToday).To(Equal(1))
			Expect(payload.Overview.LateToday).To(Equal(1))

			Expect(payload.AbsentEmployees).To(HaveLen(1))
			Expect(payload.AbsentEmployees[0].Name).To(Equal("Citra"))
		})

		It("counts check-ins per day for the weekly trend", func() {
			store.records = []*attendance.RecordWithEmployee{
				record(1, today, attendance.StatusPresent, 8, "Engineering"),
				record(2, today, attendance.StatusPresent, 8, "Engineering"),
				record(1, today.AddDate(0, 0, -2), attendance.StatusPresent, 8, "Engineering"),
			}

			payload, err := svc.ManagerDashboard()
			Expect(err).NotTo(HaveOccurred())

			Expect(payload.WeeklyTrend).To(HaveLen(2))
			Expect(payload.WeeklyTrend[0].Date).To(Equal(today.AddDate(0, 0, -2).Format(time.DateOnly)))
			Expect(payload.WeeklyTrend[0].Count).To(Equal(1))
			Expect(payload.WeeklyTrend[1].Date).To(Equal(today.Format(time.DateOnly)))
			Expect(payload.WeeklyTrend[1].Count).To(Equal(2))
		})

		It("groups the month's records by department", func() {
			store.records = []*attendance.RecordWithEmployee{
				record(1, today, attendance.StatusPresent, 8, "Engineering"),
				record(2, today.AddDate(0, 0, -1), attendance.StatusLate, 8, "Engineering"),
				record(3, today, attendance.StatusPresent, 8, "Sales"),
			}

			payload, err := svc.ManagerDashboard()
			Expect(err).NotTo(HaveOccurred())

			Expect(payload.DepartmentStats).To(HaveLen(2))
			Expect(payload.DepartmentStats[0].Department).To(Equal("Engineering"))
			Expect(payload.DepartmentStats[0].TotalAttendance).To(Equal(2))
			Expect(payload.DepartmentStats[0].Present).To(Equal(1))
			Expect(payload.DepartmentStats[0].Late).To(Equal(1))
			Expect(payload.DepartmentStats[1].Department).To(Equal("Sales"))
		})
	})
})

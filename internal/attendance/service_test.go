package attendance_test

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/attendance-management/internal/attendance"
	"github.com/frahmantamala/attendance-management/internal/user"
)

// Mock repository for testing
type mockAttendanceRepo struct {
	records   map[string]*attendance.Record
	employees map[int64]user.User
	nextID    int64
	createErr error
	findErr   error
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{
		records:   make(map[string]*attendance.Record),
		employees: make(map[int64]user.User),
		nextID:    1,
	}
}

func recordKey(userID int64, day time.Time) string {
	return fmt.Sprintf("%d|%s", userID, day.Format(time.DateOnly))
}

func (m *mockAttendanceRepo) FindByUserAndDate(userID int64, day time.Time) (*attendance.Record, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	rec, ok := m.records[recordKey(userID, day)]
	if !ok {
		return nil, attendance.ErrRecordNotFound
	}
	return rec, nil
}

func (m *mockAttendanceRepo) Create(rec *attendance.Record) error {
	if m.createErr != nil {
		return m.createErr
	}
	key := recordKey(rec.UserID, rec.Date)
	if _, exists := m.records[key]; exists {
		return attendance.ErrAlreadyCheckedIn
	}
	rec.ID = m.nextID
	m.nextID++
	m.records[key] = rec
	return nil
}

func (m *mockAttendanceRepo) Update(rec *attendance.Record) error {
	m.records[recordKey(rec.UserID, rec.Date)] = rec
	return nil
}

func (m *mockAttendanceRepo) FindByUser(userID int64, f attendance.Filter) ([]*attendance.Record, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []*attendance.Record
	for _, rec := range m.records {
		if rec.UserID != userID || !matchesFilter(rec, f) {
			continue
		}
		out = append(out, rec)
	}
	sortByDateDesc(out)
	return out, nil
}

func (m *mockAttendanceRepo) FindAll(f attendance.Filter) ([]*attendance.RecordWithEmployee, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []*attendance.RecordWithEmployee
	for _, rec := range m.records {
		if !matchesFilter(rec, f) {
			continue
		}
		emp := m.employees[rec.UserID]
		if f.Department != "" && emp.Department != f.Department {
			continue
		}
		out = append(out, &attendance.RecordWithEmployee{
			Record:       *rec,
			EmployeeName: emp.Name,
			EmployeeID:   emp.EmployeeID,
			Department:   emp.Department,
		})
	}
	return out, nil
}

func (m *mockAttendanceRepo) FindByDate(day time.Time) ([]*attendance.RecordWithEmployee, error) {
	start, end := day, day
	return m.FindAll(attendance.Filter{Start: &start, End: &end})
}

func matchesFilter(rec *attendance.Record, f attendance.Filter) bool {
	if f.Start != nil && rec.Date.Before(*f.Start) {
		return false
	}
	if f.End != nil && rec.Date.After(*f.End) {
		return false
	}
	if f.Status != "" && rec.Status != f.Status {
		return false
	}
	return true
}

func sortByDateDesc(records []*attendance.Record) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
}

// Mock employee directory for testing
type mockDirectory struct {
	employees []*user.User
	listErr   error
}

func (m *mockDirectory) ListEmployees() ([]*user.User, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.employees, nil
}

func (m *mockDirectory) CountEmployees() (int64, error) {
	if m.listErr != nil {
		return 0, m.listErr
	}
	return int64(len(m.employees)), nil
}

var _ = Describe("AttendanceService", func() {
	var (
		svc       *attendance.Service
		repo      *mockAttendanceRepo
		directory *mockDirectory
		current   time.Time
	)

	setClock := func(t time.Time) { current = t }

	BeforeEach(func() {
		repo = newMockAttendanceRepo()
		directory = &mockDirectory{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		// Monday 2026-03-02 09:00 local
		current = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
		svc = attendance.NewServiceWithClock(repo, directory, attendance.DefaultPolicy(), logger,
			func() time.Time { return current })
	})

	Describe("CheckIn", func() {
		It("creates a present record before the cutoff", func() {
			rec, err := svc.CheckIn(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Status).To(Equal(attendance.StatusPresent))
			Expect(rec.CheckOutTime).To(BeNil())
			Expect(rec.Date.Hour()).To(Equal(0))
		})

		It("creates a late record after the cutoff", func() {
			setClock(time.Date(2026, time.March, 2, 9, 45, 0, 0, time.UTC))
			rec, err := svc.CheckIn(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Status).To(Equal(attendance.StatusLate))
		})

		It("rejects a second check-in on the same day", func() {
			_, err := svc.CheckIn(1)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.CheckIn(1)
			Expect(err).To(Equal(attendance.ErrAlreadyCheckedIn))
		})

		It("allows a fresh check-in on the next day", func() {
			_, err := svc.CheckIn(1)
			Expect(err).NotTo(HaveOccurred())

			setClock(current.AddDate(0, 0, 1))
			_, err = svc.CheckIn(1)
			Expect(err).NotTo(HaveOccurred())
		})

		It("surfaces a duplicate-key insert as already checked in", func() {
			repo.createErr = attendance.ErrAlreadyCheckedIn
			_, err := svc.CheckIn(1)
			Expect(err).To(Equal(attendance.ErrAlreadyCheckedIn))
		})
	})

	Describe("CheckOut", func() {
		It("rejects check-out with no check-in record", func() {
			_, err := svc.CheckOut(1)
			Expect(err).To(Equal(attendance.ErrNoCheckInRecord))
		})

		It("closes the record with derived hours and status", func() {
			_, err := svc.CheckIn(1)
			Expect(err).NotTo(HaveOccurred())

			setClock(current.Add(8 * time.Hour))
			rec, err := svc.CheckOut(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.CheckOutTime).NotTo(BeNil())
			Expect(rec.TotalHours).To(Equal(8.0))
			Expect(rec.Status).To(Equal(attendance.StatusPresent))
		})

		It("flips a late check-in to half-day after a 3 hour day", func() {
			setClock(time.Date(2026, time.March, 2, 9, 45, 0, 0, time.UTC))
			rec, err := svc.CheckIn(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Status).To(Equal(attendance.StatusLate))

			setClock(current.Add(3 * time.Hour))
			rec, err = svc.CheckOut(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Status).To(Equal(attendance.StatusHalfDay))
			Expect(rec.TotalHours).To(BeNumerically("~", 3.00, 0.001))
		})

		It("rejects a second check-out", func() {
			_, err := svc.CheckIn(1)
			Expect(err).NotTo(HaveOccurred())

			setClock(current.Add(8 * time.Hour))
			_, err = svc.CheckOut(1)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.CheckOut(1)
			Expect(err).To(Equal(attendance.ErrAlreadyCheckedOut))
		})
	})

	Describe("MonthlySummary", func() {
		It("reports every working day absent when there are no records", func() {
			// June 2026 has 22 working days
			summary, err := svc.MonthlySummary(1, 6, 2026)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Summary.TotalDays).To(Equal(0))
			Expect(summary.Summary.Absent).To(Equal(22))
		})

		It("tallies statuses and total hours", func() {
			_, err := svc.CheckIn(1)
			Expect(err).NotTo(HaveOccurred())
			setClock(current.Add(8 * time.Hour))
			_, err = svc.CheckOut(1)
			Expect(err).NotTo(HaveOccurred())

			setClock(time.Date(2026, time.March, 3, 9, 45, 0, 0, time.UTC))
			_, err = svc.CheckIn(1)
			Expect(err).NotTo(HaveOccurred())
			setClock(current.Add(5 * time.Hour))
			_, err = svc.CheckOut(1)
			Expect(err).NotTo(HaveOccurred())

			summary, err := svc.MonthlySummary(1, 3, 2026)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Summary.TotalDays).To(Equal(2))
			Expect(summary.Summary.Present).To(Equal(1))
			Expect(summary.Summary.Late).To(Equal(1))
			Expect(summary.Summary.TotalHours).To(Equal(13.0))
			// 22 working days in March 2026, 2 recorded
			Expect(summary.Summary.Absent).To(Equal(20))
		})

		It("defaults zero month and year to the current month", func() {
			summary, err := svc.MonthlySummary(1, 0, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Month).To(Equal(3))
			Expect(summary.Year).To(Equal(2026))
		})
	})

	Describe("TodayStatus", func() {
		It("reports not checked in when no record exists", func() {
			status, err := svc.TodayStatus(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(status.CheckedIn).To(BeFalse())
			Expect(status.CheckedOut).To(BeFalse())
			Expect(status.Attendance).To(BeNil())
		})

		It("reports checked in with the open record attached", func() {
			_, err := svc.CheckIn(1)
			Expect(err).NotTo(HaveOccurred())

			status, err := svc.TodayStatus(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(status.CheckedIn).To(BeTrue())
			Expect(status.CheckedOut).To(BeFalse())
			Expect(status.Attendance).NotTo(BeNil())
		})
	})

	Describe("TeamTodayStatus", func() {
		BeforeEach(func() {
			directory.employees = []*user.User{
				{ID: 1, Name: "Andi", EmployeeID: "EMP001", Department: "Engineering"},
				{ID: 2, Name: "Budi", EmployeeID: "EMP002", Department: "Engineering"},
				{ID: 3, Name: "Citra", EmployeeID: "EMP003", Department: "Sales"},
				{ID: 4, Name: "Dina", EmployeeID: "EMP004", Department: "HR"},
				{ID: 5, Name: "Eko", EmployeeID: "EMP005", Department: "Finance"},
			}
			for _, emp := range directory.employees {
				repo.employees[emp.ID] = *emp
			}
		})

		It("partitions 3 of 5 employees with records into present and absent", func() {
			for _, id := range []int64{1, 2, 3} {
				_, err := svc.CheckIn(id)
				Expect(err).NotTo(HaveOccurred())
			}

			status, err := svc.TeamTodayStatus()
			Expect(err).NotTo(HaveOccurred())
			Expect(status.TotalEmployees).To(Equal(5))
			Expect(status.Present).To(Equal(3))
			Expect(status.Absent).To(Equal(2))
			Expect(status.PresentEmployees).To(HaveLen(3))
			Expect(status.AbsentEmployees).To(HaveLen(2))

			absentNames := []string{status.AbsentEmployees[0].Name, status.AbsentEmployees[1].Name}
			Expect(absentNames).To(ConsistOf("Dina", "Eko"))
			for _, absent := range status.AbsentEmployees {
				Expect(absent.Status).To(Equal(attendance.StatusAbsent))
			}
		})

		It("reports the whole roster absent when nobody checked in", func() {
			status, err := svc.TeamTodayStatus()
			Expect(err).NotTo(HaveOccurred())
			Expect(status.Present).To(Equal(0))
			Expect(status.Absent).To(Equal(5))
		})
	})

	Describe("TeamSummary", func() {
		BeforeEach(func() {
			directory.employees = []*user.User{
				{ID: 1, Name: "Andi", EmployeeID: "EMP001", Department: "Engineering"},
				{ID: 2, Name: "Budi", EmployeeID: "EMP002", Department: "Engineering"},
			}
			for _, emp := range directory.employees {
				repo.employees[emp.ID] = *emp
			}
		})

		It("includes employees with no records at full absence", func() {
			_, err := svc.CheckIn(1)
			Expect(err).NotTo(HaveOccurred())

			summary, err := svc.TeamSummary(3, 2026)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Employees).To(HaveLen(2))

			byName := map[string]attendance.EmployeeSummary{}
			for _, row := range summary.Employees {
				byName[row.Employee.Name] = row
			}
			Expect(byName["Andi"].TotalDays).To(Equal(1))
			Expect(byName["Budi"].TotalDays).To(Equal(0))
			Expect(byName["Budi"].Absent).To(Equal(22))
		})
	})

	Describe("History", func() {
		It("filters by status", func() {
			_, err := svc.CheckIn(1)
			Expect(err).NotTo(HaveOccurred())

			setClock(time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC))
			_, err = svc.CheckIn(1)
			Expect(err).NotTo(HaveOccurred())

			result, err := svc.History(1, attendance.Filter{Status: attendance.StatusLate})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Count).To(Equal(1))
			Expect(result.Records[0].Status).To(Equal(attendance.StatusLate))
		})

		It("returns records newest first", func() {
			_, err := svc.CheckIn(1)
			Expect(err).NotTo(HaveOccurred())

			setClock(current.AddDate(0, 0, 1))
			_, err = svc.CheckIn(1)
			Expect(err).NotTo(HaveOccurred())

			result, err := svc.History(1, attendance.Filter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Count).To(Equal(2))
			Expect(result.Records[0].Date.After(result.Records[1].Date)).To(BeTrue())
		})
	})
})

package dashboard

import (
	"log/slog"
	"sort"
	"time"

	"github.com/frahmantamala/attendance-management/internal/attendance"
	"github.com/frahmantamala/attendance-management/internal/user"
)

// AttendanceStore is the subset of the attendance repository the
// dashboards read from.
type AttendanceStore interface {
	FindByUserAndDate(userID int64, day time.Time) (*attendance.Record, error)
	FindByUser(userID int64, f attendance.Filter) ([]*attendance.Record, error)
	FindAll(f attendance.Filter) ([]*attendance.RecordWithEmployee, error)
	FindByDate(day time.Time) ([]*attendance.RecordWithEmployee, error)
}

// EmployeeDirectory enumerates the expected population for absence math.
type EmployeeDirectory interface {
	ListEmployees() ([]*user.User, error)
	CountEmployees() (int64, error)
}

// Service assembles the composite dashboard payloads. It only reads;
// every mutation goes through the attendance service.
type Service struct {
	store  AttendanceStore
	users  EmployeeDirectory
	logger *slog.Logger
	now    func() time.Time
}

func NewService(store AttendanceStore, users EmployeeDirectory, logger *slog.Logger) *Service {
	return NewServiceWithClock(store, users, logger, time.Now)
}

// NewServiceWithClock pins the service's notion of "now" for tests.
func NewServiceWithClock(store AttendanceStore, users EmployeeDirectory, logger *slog.Logger, now func() time.Time) *Service {
	return &Service{
		store:  store,
		users:  users,
		logger: logger,
		now:    now,
	}
}

// EmployeeDashboard combines today's state, the current month's stats and
// the last 7 days of records into one payload.
func (s *Service) EmployeeDashboard(userID int64) (*EmployeeDashboard, error) {
	now := s.now()
	today := attendance.DayOf(now)

	var todayStatus TodayStatus
	rec, err := s.store.FindByUserAndDate(userID, today)
	if err != nil && err != attendance.ErrRecordNotFound {
		s.logger.Error("employee dashboard: today lookup failed", "error", err, "user_id", userID)
		return nil, err
	}
	if rec != nil {
		todayStatus = TodayStatus{
			CheckedIn:    true,
			CheckedOut:   rec.IsCheckedOut(),
			CheckInTime:  &rec.CheckInTime,
			CheckOutTime: rec.CheckOutTime,
			Status:       rec.Status,
		}
	}

	monthStart, monthEnd := attendance.MonthRange(now.Year(), now.Month(), now.Location())
	monthRecords, err := s.store.FindByUser(userID, attendance.Filter{Start: &monthStart, End: &monthEnd})
	if err != nil {
		s.logger.Error("employee dashboard: month query failed", "error", err, "user_id", userID)
		return nil, err
	}

	stats := MonthStats{}
	for _, r := range monthRecords {
		switch r.Status {
		case attendance.StatusPresent:
			stats.Present++
		case attendance.StatusLate:
			stats.Late++
		case attendance.StatusHalfDay:
			stats.HalfDay++
		}
		stats.TotalHours += r.TotalHours
	}
	stats.TotalHours = attendance.RoundHours(stats.TotalHours)
	stats.Absent = attendance.WorkingDays(monthStart, monthEnd) - len(monthRecords)

	weekStart := today.AddDate(0, 0, -7)
	recent, err := s.store.FindByUser(userID, attendance.Filter{Start: &weekStart, End: &today})
	if err != nil {
		s.logger.Error("employee dashboard: recent query failed", "error", err, "user_id", userID)
		return nil, err
	}

	return &EmployeeDashboard{
		TodayStatus:      todayStatus,
		MonthStats:       stats,
		RecentAttendance: recent,
	}, nil
}

// ManagerDashboard combines the today overview, the absent roster, the
// 7-day check-in trend and the month's per-department aggregate.
func (s *Service) ManagerDashboard() (*ManagerDashboard, error) {
	now := s.now()
	today := attendance.DayOf(now)

	totalEmployees, err := s.users.CountEmployees()
	if err != nil {
		s.logger.Error("manager dashboard: roster count failed", "error", err)
		return nil, err
	}

	todayRecords, err := s.store.FindByDate(today)
	if err != nil {
		s.logger.Error("manager dashboard: today query failed", "error", err)
		return nil, err
	}

	lateToday := 0
	presentIDs := make(map[int64]bool, len(todayRecords))
	for _, r := range todayRecords {
		presentIDs[r.UserID] = true
		if r.Status == attendance.StatusLate {
			lateToday++
		}
	}

	employees, err := s.users.ListEmployees()
	if err != nil {
		s.logger.Error("manager dashboard: roster failed", "error", err)
		return nil, err
	}

	absentEmployees := make([]AbsentEmployee, 0)
	for _, emp := range employees {
		if presentIDs[emp.ID] {
			continue
		}
		absentEmployees = append(absentEmployees, AbsentEmployee{
			ID:         emp.ID,
			Name:       emp.Name,
			EmployeeID: emp.EmployeeID,
			Department: emp.Department,
		})
	}

	trend, err := s.weeklyTrend(today)
	if err != nil {
		return nil, err
	}

	deptStats, err := s.departmentStats(now)
	if err != nil {
		return nil, err
	}

	return &ManagerDashboard{
		Overview: Overview{
			TotalEmployees: int(totalEmployees),
			PresentToday:   len(todayRecords),
			AbsentToday:    int(totalEmployees) - len(todayRecords),
			LateToday:      lateToday,
		},
		AbsentEmployees: absentEmployees,
		WeeklyTrend:     trend,
		DepartmentStats: deptStats,
	}, nil
}

// weeklyTrend counts check-ins per day over the trailing 7 days, today
// included; days without records are omitted.
func (s *Service) weeklyTrend(today time.Time) ([]TrendPoint, error) {
	weekStart := today.AddDate(0, 0, -6)
	records, err := s.store.FindAll(attendance.Filter{Start: &weekStart, End: &today})
	if err != nil {
		s.logger.Error("manager dashboard: weekly query failed", "error", err)
		return nil, err
	}

	counts := make(map[string]int, 7)
	for _, r := range records {
		counts[r.Date.Format(time.DateOnly)]++
	}

	trend := make([]TrendPoint, 0, 7)
	for d := weekStart; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format(time.DateOnly)
		if n, ok := counts[key]; ok {
			trend = append(trend, TrendPoint{Date: key, Count: n})
		}
	}
	return trend, nil
}

// departmentStats groups the current month's records by the owning user's
// department, ordered by department name.
func (s *Service) departmentStats(now time.Time) ([]DepartmentStat, error) {
	monthStart, monthEnd := attendance.MonthRange(now.Year(), now.Month(), now.Location())
	records, err := s.store.FindAll(attendance.Filter{Start: &monthStart, End: &monthEnd})
	if err != nil {
		s.logger.Error("manager dashboard: month query failed", "error", err)
		return nil, err
	}

	byDept := make(map[string]*DepartmentStat)
	for _, r := range records {
		stat, ok := byDept[r.Department]
		if !ok {
			stat = &DepartmentStat{Department: r.Department}
			byDept[r.Department] = stat
		}
		stat.TotalAttendance++
		switch r.Status {
		case attendance.StatusPresent:
			stat.Present++
		case attendance.StatusLate:
			stat.Late++
		}
	}

	stats := make([]DepartmentStat, 0, len(byDept))
	for _, stat := range byDept {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Department < stats[j].Department })
	return stats, nil
}

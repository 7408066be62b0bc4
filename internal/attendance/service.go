package attendance

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/attendance-management/internal/user"
)

// Repository is the attendance store. Create must surface a unique-key
// violation on (user, date) as ErrAlreadyCheckedIn: the storage boundary,
// not the read-then-decide check below, is what closes the concurrent
// check-in race.
type Repository interface {
	FindByUserAndDate(userID int64, day time.Time) (*Record, error)
	Create(rec *Record) error
	Update(rec *Record) error
	FindByUser(userID int64, f Filter) ([]*Record, error)
	FindAll(f Filter) ([]*RecordWithEmployee, error)
	FindByDate(day time.Time) ([]*RecordWithEmployee, error)
}

// EmployeeDirectory enumerates the expected population. Absence is never
// inferred from the attendance collection alone.
type EmployeeDirectory interface {
	ListEmployees() ([]*user.User, error)
	CountEmployees() (int64, error)
}

// Service handles attendance business logic
type Service struct {
	repo   Repository
	users  EmployeeDirectory
	policy Policy
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, users EmployeeDirectory, policy Policy, logger *slog.Logger) *Service {
	return NewServiceWithClock(repo, users, policy, logger, time.Now)
}

// NewServiceWithClock pins the service's notion of "now"; everything
// date-sensitive flows through it.
func NewServiceWithClock(repo Repository, users EmployeeDirectory, policy Policy, logger *slog.Logger, now func() time.Time) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		policy: policy,
		logger: logger,
		now:    now,
	}
}

// CheckIn opens today's record for the user. A second check-in on the
// same day fails, either here or on the unique index underneath.
func (s *Service) CheckIn(userID int64) (*Record, error) {
	now := s.now()
	day := DayOf(now)

	existing, err := s.repo.FindByUserAndDate(userID, day)
	if err != nil && err != ErrRecordNotFound {
		s.logger.Error("check-in: lookup failed", "error", err, "user_id", userID)
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyCheckedIn
	}

	rec := &Record{
		UserID:      userID,
		Date:        day,
		CheckInTime: now,
		Status:      s.policy.CheckInStatus(now),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(rec); err != nil {
		if err == ErrAlreadyCheckedIn {
			return nil, err
		}
		s.logger.Error("check-in: insert failed", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("checked in", "user_id", userID, "status", rec.Status, "date", day.Format(time.DateOnly))
	return rec, nil
}

// CheckOut closes today's record, deriving final status and worked hours.
// The transition is terminal: there is no undo path.
func (s *Service) CheckOut(userID int64) (*Record, error) {
	now := s.now()
	day := DayOf(now)

	rec, err := s.repo.FindByUserAndDate(userID, day)
	if err != nil {
		if err == ErrRecordNotFound {
			return nil, ErrNoCheckInRecord
		}
		s.logger.Error("check-out: lookup failed", "error", err, "user_id", userID)
		return nil, err
	}

	if rec.IsCheckedOut() {
		return nil, ErrAlreadyCheckedOut
	}

	status, hours, err := s.policy.CheckOutResult(rec.CheckInTime, now, rec.Status)
	if err != nil {
		return nil, err
	}

	rec.CheckOutTime = &now
	rec.Status = status
	rec.TotalHours = hours
	rec.UpdatedAt = now

	if err := s.repo.Update(rec); err != nil {
		s.logger.Error("check-out: update failed", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("checked out", "user_id", userID, "status", status, "total_hours", hours)
	return rec, nil
}

// History returns the user's own records matching the filter, newest first.
func (s *Service) History(userID int64, f Filter) (HistoryResult, error) {
	records, err := s.repo.FindByUser(userID, f)
	if err != nil {
		s.logger.Error("history query failed", "error", err, "user_id", userID)
		return HistoryResult{}, err
	}
	return HistoryResult{Count: len(records), Records: records}, nil
}

// MonthlySummary aggregates the user's records for one month. Zero
// month/year default to the current month.
func (s *Service) MonthlySummary(userID int64, month, year int) (MonthlySummary, error) {
	month, year = s.resolveMonth(month, year)
	start, end := MonthRange(year, time.Month(month), s.now().Location())

	records, err := s.repo.FindByUser(userID, Filter{Start: &start, End: &end})
	if err != nil {
		s.logger.Error("summary query failed", "error", err, "user_id", userID)
		return MonthlySummary{}, err
	}

	return MonthlySummary{
		Month:   month,
		Year:    year,
		Summary: summarize(records, start, end),
	}, nil
}

// TodayStatus reports whether the user has checked in/out today.
func (s *Service) TodayStatus(userID int64) (TodayStatus, error) {
	rec, err := s.repo.FindByUserAndDate(userID, DayOf(s.now()))
	if err != nil {
		if err == ErrRecordNotFound {
			return TodayStatus{}, nil
		}
		return TodayStatus{}, err
	}

	return TodayStatus{
		CheckedIn:  true,
		CheckedOut: rec.IsCheckedOut(),
		Attendance: rec,
	}, nil
}

// TeamHistory returns org-wide records matching the filter (manager view).
func (s *Service) TeamHistory(f Filter) (TeamHistoryResult, error) {
	records, err := s.repo.FindAll(f)
	if err != nil {
		s.logger.Error("team history query failed", "error", err)
		return TeamHistoryResult{}, err
	}
	return TeamHistoryResult{Count: len(records), Records: records}, nil
}

// EmployeeHistory returns one employee's records for a manager.
func (s *Service) EmployeeHistory(employeeUserID int64, start, end *time.Time) (HistoryResult, error) {
	return s.History(employeeUserID, Filter{Start: start, End: end})
}

// TeamSummary builds the per-employee monthly report. Every employee
// appears, including those with zero records for the month.
func (s *Service) TeamSummary(month, year int) (TeamSummary, error) {
	month, year = s.resolveMonth(month, year)
	start, end := MonthRange(year, time.Month(month), s.now().Location())

	records, err := s.repo.FindAll(Filter{Start: &start, End: &end})
	if err != nil {
		s.logger.Error("team summary query failed", "error", err)
		return TeamSummary{}, err
	}

	employees, err := s.users.ListEmployees()
	if err != nil {
		s.logger.Error("team summary roster failed", "error", err)
		return TeamSummary{}, err
	}

	byUser := make(map[int64][]*Record, len(employees))
	for _, r := range records {
		rec := r.Record
		byUser[r.UserID] = append(byUser[r.UserID], &rec)
	}

	rows := make([]EmployeeSummary, 0, len(employees))
	for _, emp := range employees {
		sum := summarize(byUser[emp.ID], start, end)
		rows = append(rows, EmployeeSummary{
			Employee: EmployeeRef{
				ID:         emp.ID,
				Name:       emp.Name,
				EmployeeID: emp.EmployeeID,
				Department: emp.Department,
			},
			TotalDays:  sum.TotalDays,
			Present:    sum.Present,
			Late:       sum.Late,
			HalfDay:    sum.HalfDay,
			Absent:     sum.Absent,
			TotalHours: sum.TotalHours,
		})
	}

	return TeamSummary{Month: month, Year: year, Employees: rows}, nil
}

// TeamTodayStatus partitions the whole roster into present and absent for
// today. The two reads are independent; a check-in between them can shift
// one employee across the partition, which is accepted.
func (s *Service) TeamTodayStatus() (TeamTodayStatus, error) {
	day := DayOf(s.now())

	records, err := s.repo.FindByDate(day)
	if err != nil {
		s.logger.Error("today status query failed", "error", err)
		return TeamTodayStatus{}, err
	}

	employees, err := s.users.ListEmployees()
	if err != nil {
		s.logger.Error("today status roster failed", "error", err)
		return TeamTodayStatus{}, err
	}

	present := make([]PresentEmployee, 0, len(records))
	presentIDs := make(map[int64]bool, len(records))
	for _, r := range records {
		presentIDs[r.UserID] = true
		present = append(present, PresentEmployee{
			EmployeeRef: EmployeeRef{
				ID:         r.UserID,
				Name:       r.EmployeeName,
				EmployeeID: r.EmployeeID,
				Department: r.Department,
			},
			CheckInTime:  r.CheckInTime,
			CheckOutTime: r.CheckOutTime,
			Status:       r.Status,
		})
	}

	absent := make([]AbsentEmployee, 0)
	for _, emp := range employees {
		if presentIDs[emp.ID] {
			continue
		}
		absent = append(absent, AbsentEmployee{
			EmployeeRef: EmployeeRef{
				ID:         emp.ID,
				Name:       emp.Name,
				EmployeeID: emp.EmployeeID,
				Department: emp.Department,
			},
			Status: StatusAbsent,
		})
	}

	return TeamTodayStatus{
		Date:             day,
		TotalEmployees:   len(employees),
		Present:          len(present),
		Absent:           len(absent),
		PresentEmployees: present,
		AbsentEmployees:  absent,
	}, nil
}

func (s *Service) resolveMonth(month, year int) (int, int) {
	now := s.now()
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	return month, year
}

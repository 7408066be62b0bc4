package attendance

import (
	"time"
)

// Filter narrows record queries. Nil/empty fields are ignored. Start and
// End are inclusive calendar days.
type Filter struct {
	UserID     *int64
	Start      *time.Time
	End        *time.Time
	Status     string
	Department string
}

// Summary is the per-employee aggregate over a date range. Absent is
// derived: workingDays minus recorded days, uniformly across partial
// weeks and month boundaries. It can go negative when records exist on
// weekend days; that anomaly is surfaced, not corrected.
type Summary struct {
	TotalDays  int     `json:"totalDays"`
	Present    int     `json:"present"`
	Late       int     `json:"late"`
	HalfDay    int     `json:"halfDay"`
	Absent     int     `json:"absent"`
	TotalHours float64 `json:"totalHours"`
}

// MonthlySummary wraps a summary with the month it covers.
type MonthlySummary struct {
	Month   int     `json:"month"`
	Year    int     `json:"year"`
	Summary Summary `json:"summary"`
}

// EmployeeRef is the identity projection attached to reporting payloads.
type EmployeeRef struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	EmployeeID string `json:"employeeId"`
	Department string `json:"department"`
}

// EmployeeSummary is one row of the manager team summary.
type EmployeeSummary struct {
	Employee   EmployeeRef `json:"employee"`
	TotalDays  int         `json:"totalDays"`
	Present    int         `json:"present"`
	Late       int         `json:"late"`
	HalfDay    int         `json:"halfDay"`
	Absent     int         `json:"absent"`
	TotalHours float64     `json:"totalHours"`
}

// TeamSummary is the manager monthly report across all employees.
type TeamSummary struct {
	Month     int               `json:"month"`
	Year      int               `json:"year"`
	Employees []EmployeeSummary `json:"employees"`
}

// TodayStatus is the employee's own state for the current day.
type TodayStatus struct {
	CheckedIn  bool    `json:"checkedIn"`
	CheckedOut bool    `json:"checkedOut"`
	Attendance *Record `json:"attendance"`
}

// PresentEmployee is a roster entry with today's record attached.
type PresentEmployee struct {
	EmployeeRef
	CheckInTime  time.Time  `json:"checkInTime"`
	CheckOutTime *time.Time `json:"checkOutTime"`
	Status       string     `json:"status"`
}

// AbsentEmployee is a roster entry with no record today; status is always
// the implied absent.
type AbsentEmployee struct {
	EmployeeRef
	Status string `json:"status"`
}

// TeamTodayStatus partitions the full employee roster for one day.
type TeamTodayStatus struct {
	Date             time.Time         `json:"date"`
	TotalEmployees   int               `json:"totalEmployees"`
	Present          int               `json:"present"`
	Absent           int               `json:"absent"`
	PresentEmployees []PresentEmployee `json:"presentEmployees"`
	AbsentEmployees  []AbsentEmployee  `json:"absentEmployees"`
}

// HistoryResult is a record listing with its count, as returned by the
// history endpoints.
type HistoryResult struct {
	Count   int       `json:"count"`
	Records []*Record `json:"records"`
}

// TeamHistoryResult is the manager-facing variant carrying employee identity.
type TeamHistoryResult struct {
	Count   int                   `json:"count"`
	Records []*RecordWithEmployee `json:"records"`
}

// summarize folds records into a Summary against the working days of the
// inclusive range.
func summarize(records []*Record, start, end time.Time) Summary {
	s := Summary{TotalDays: len(records)}
	for _, r := range records {
		switch r.Status {
		case StatusPresent:
			s.Present++
		case StatusLate:
			s.Late++
		case StatusHalfDay:
			s.HalfDay++
		}
		s.TotalHours += r.TotalHours
	}
	s.TotalHours = RoundHours(s.TotalHours)
	s.Absent = WorkingDays(start, end) - len(records)
	return s
}

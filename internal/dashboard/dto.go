package dashboard

import (
	"time"

	"github.com/frahmantamala/attendance-management/internal/attendance"
)

// TodayStatus is the employee's own state for the current day, flattened
// for the dashboard card.
type TodayStatus struct {
	CheckedIn    bool       `json:"checkedIn"`
	CheckedOut   bool       `json:"checkedOut"`
	CheckInTime  *time.Time `json:"checkInTime"`
	CheckOutTime *time.Time `json:"checkOutTime"`
	Status       string     `json:"status,omitempty"`
}

// MonthStats is the employee's aggregate for the current month.
type MonthStats struct {
	Present    int     `json:"present"`
	Late       int     `json:"late"`
	HalfDay    int     `json:"halfDay"`
	TotalHours float64 `json:"totalHours"`
	Absent     int     `json:"absent"`
}

// EmployeeDashboard is the composite payload behind GET /api/dashboard/employee.
type EmployeeDashboard struct {
	TodayStatus      TodayStatus          `json:"todayStatus"`
	MonthStats       MonthStats           `json:"monthStats"`
	RecentAttendance []*attendance.Record `json:"recentAttendance"`
}

// Overview is the manager headline numbers for today.
type Overview struct {
	TotalEmployees int `json:"totalEmployees"`
	PresentToday   int `json:"presentToday"`
	AbsentToday    int `json:"absentToday"`
	LateToday      int `json:"lateToday"`
}

// AbsentEmployee identifies an employee with no record today.
type AbsentEmployee struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	EmployeeID string `json:"employeeId"`
	Department string `json:"department"`
}

// TrendPoint is one day of the weekly check-in count chart.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DepartmentStat is the month's attendance grouped by department.
type DepartmentStat struct {
	Department      string `json:"department"`
	TotalAttendance int    `json:"totalAttendance"`
	Present         int    `json:"present"`
	Late            int    `json:"late"`
}

// ManagerDashboard is the composite payload behind GET /api/dashboard/manager.
type ManagerDashboard struct {
	Overview        Overview         `json:"overview"`
	AbsentEmployees []AbsentEmployee `json:"absentEmployees"`
	WeeklyTrend     []TrendPoint     `json:"weeklyTrend"`
	DepartmentStats []DepartmentStat `json:"departmentStats"`
}

package attendance

import (
	"time"

	"github.com/frahmantamala/attendance-management/internal"
)

// Attendance status values. Absent is never persisted: a working day with
// no record is absent, derived at query time against the employee roster.
const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusHalfDay = "half-day"
	StatusAbsent  = "absent"
)

// Record is one attendance row per (user, calendar day). The pair is
// protected by a unique index so concurrent check-ins cannot double-write.
type Record struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	UserID       int64      `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:idx_attendance_user_date"`
	Date         time.Time  `json:"date" gorm:"column:date;type:date;not null;uniqueIndex:idx_attendance_user_date"`
	CheckInTime  time.Time  `json:"checkInTime" gorm:"column:check_in_time;not null"`
	CheckOutTime *time.Time `json:"checkOutTime" gorm:"column:check_out_time"`
	Status       string     `json:"status" gorm:"default:present"`
	TotalHours   float64    `json:"totalHours" gorm:"column:total_hours;default:0"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

// TableName returns the table name for GORM
func (Record) TableName() string {
	return "attendance_records"
}

func (r *Record) IsCheckedOut() bool {
	return r.CheckOutTime != nil
}

// RecordWithEmployee is a record joined with the owning user's identity,
// used by manager-facing listings and the CSV export.
type RecordWithEmployee struct {
	Record
	EmployeeName string `json:"employeeName" gorm:"column:employee_name"`
	EmployeeID   string `json:"employeeId" gorm:"column:employee_code"`
	Department   string `json:"department" gorm:"column:department"`
}

// Domain errors, carried as AppError values so the transport layer can map
// them to status codes without per-handler switches.
var (
	ErrAlreadyCheckedIn  = internal.NewValidationError("Already checked in today", internal.ErrCodeAlreadyCheckedIn)
	ErrAlreadyCheckedOut = internal.NewValidationError("Already checked out today", internal.ErrCodeAlreadyCheckedOut)
	ErrNoCheckInRecord   = internal.NewValidationError("No check-in record found for today", internal.ErrCodeNoCheckInRecord)
	ErrRecordNotFound    = internal.NewNotFoundError("Attendance record not found", internal.ErrCodeRecordNotFound)
	ErrNegativeDuration  = internal.NewValidationError("check-out time is before check-in time", internal.ErrCodeInvalidDate)
)

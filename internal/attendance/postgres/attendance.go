package postgres

import (
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/frahmantamala/attendance-management/internal/attendance"
)

const joinedColumns = "attendance_records.*, users.name AS employee_name, users.employee_id AS employee_code, users.department AS department"

// AttendanceRepository implements the attendance.Repository interface using GORM
type AttendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *gorm.DB) attendance.Repository {
	return &AttendanceRepository{db: db}
}

// FindByUserAndDate retrieves the single record for a user on a calendar day.
func (r *AttendanceRepository) FindByUserAndDate(userID int64, day time.Time) (*attendance.Record, error) {
	var rec attendance.Record
	err := r.db.Where("user_id = ? AND date = ?", userID, day).First(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, attendance.ErrRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Create inserts a record. The unique index on (user_id, date) is the last
// line of defense against concurrent check-ins; its violation surfaces as
// ErrAlreadyCheckedIn.
func (r *AttendanceRepository) Create(rec *attendance.Record) error {
	err := r.db.Create(rec).Error
	if err != nil && isUniqueViolation(err) {
		return attendance.ErrAlreadyCheckedIn
	}
	return err
}

// Update persists the record in place
func (r *AttendanceRepository) Update(rec *attendance.Record) error {
	rec.UpdatedAt = time.Now()
	return r.db.Save(rec).Error
}

// FindByUser retrieves one user's records matching the filter, newest first.
func (r *AttendanceRepository) FindByUser(userID int64, f attendance.Filter) ([]*attendance.Record, error) {
	var records []*attendance.Record
	q := applyFilter(r.db.Where("user_id = ?", userID), f)
	err := q.Order("date DESC").Find(&records).Error
	return records, err
}

// FindAll retrieves org-wide records joined with employee identity,
// newest first.
func (r *AttendanceRepository) FindAll(f attendance.Filter) ([]*attendance.RecordWithEmployee, error) {
	var records []*attendance.RecordWithEmployee
	q := r.db.Table("attendance_records").
		Select(joinedColumns).
		Joins("JOIN users ON users.id = attendance_records.user_id")
	q = applyFilter(q, f)
	if f.UserID != nil {
		q = q.Where("attendance_records.user_id = ?", *f.UserID)
	}
	if f.Department != "" {
		q = q.Where("users.department = ?", f.Department)
	}
	err := q.Order("attendance_records.date DESC").Find(&records).Error
	return records, err
}

// FindByDate retrieves every record for one calendar day with employee identity.
func (r *AttendanceRepository) FindByDate(day time.Time) ([]*attendance.RecordWithEmployee, error) {
	var records []*attendance.RecordWithEmployee
	err := r.db.Table("attendance_records").
		Select(joinedColumns).
		Joins("JOIN users ON users.id = attendance_records.user_id").
		Where("attendance_records.date = ?", day).
		Order("attendance_records.check_in_time ASC").
		Find(&records).Error
	return records, err
}

func applyFilter(q *gorm.DB, f attendance.Filter) *gorm.DB {
	if f.Start != nil {
		q = q.Where("attendance_records.date >= ?", *f.Start)
	}
	if f.End != nil {
		q = q.Where("attendance_records.date <= ?", *f.End)
	}
	if f.Status != "" {
		q = q.Where("attendance_records.status = ?", f.Status)
	}
	return q
}

// isUniqueViolation recognizes a duplicate-key error from postgres (23505)
// and from the sqlite driver the repository tests run against.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

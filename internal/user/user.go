package user

import (
	"time"

	"github.com/frahmantamala/attendance-management/internal"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

// Valid reports whether the role is one of the two recognized variants.
// There is no hierarchy between them.
func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleManager
}

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	Role         Role      `json:"role" gorm:"default:employee"`
	EmployeeID   string    `json:"employeeId" gorm:"column:employee_id;not null;uniqueIndex"`
	Department   string    `json:"department"`
	IsActive     bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// Domain errors as AppError values for transport-layer status mapping.
var (
	ErrNotFound          = internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
	ErrEmailTaken        = internal.NewValidationError("Email already in use", internal.ErrCodeEmailTaken)
	ErrInvalidDepartment = internal.NewValidationError("Invalid department", internal.ErrCodeInvalidDepartment)
)

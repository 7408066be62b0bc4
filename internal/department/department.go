package department

import (
	"time"
)

// Department is an organizational unit employees belong to. The set is
// seeded and read-only through the API; deactivation is the only lifecycle.
type Department struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName returns the table name for GORM
func (Department) TableName() string {
	return "departments"
}

func NewDepartment(name, description string) *Department {
	now := time.Now()
	return &Department{
		Name:        name,
		Description: description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

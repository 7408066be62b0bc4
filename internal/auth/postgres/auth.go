package postgres

import (
	"github.com/frahmantamala/attendance-management/internal/user"
	"gorm.io/gorm"
)

// Repository implements the auth.Repository credential store using GORM
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(u *user.User) error {
	return r.db.Create(u).Error
}

func (r *Repository) GetByEmail(email string) (*user.User, error) {
	var u user.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) GetByID(userID int64) (*user.User, error) {
	var u user.User
	err := r.db.Where("id = ? AND is_active = true", userID).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&user.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *Repository) EmployeeIDExists(employeeID string) (bool, error) {
	var count int64
	err := r.db.Model(&user.User{}).Where("employee_id = ?", employeeID).Count(&count).Error
	return count > 0, err
}

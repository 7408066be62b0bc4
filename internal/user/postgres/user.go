package postgres

import (
	"time"

	"github.com/frahmantamala/attendance-management/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements the user.Repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(userID int64) (*user.User, error) {
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

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
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

func (r *UserRepository) Update(u *user.User) error {
	u.UpdatedAt = time.Now()
	return r.db.Save(u).Error
}

func (r *UserRepository) ListEmployees() ([]*user.User, error) {
	var users []*user.User
	err := r.db.Where("role = ? AND is_active = true", user.RoleEmployee).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *UserRepository) CountEmployees() (int64, error) {
	var count int64
	err := r.db.Model(&user.User{}).
		Where("role = ? AND is_active = true", user.RoleEmployee).
		Count(&count).Error
	return count, err
}

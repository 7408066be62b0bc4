package postgres

import (
	"github.com/frahmantamala/attendance-management/internal/department"
	"gorm.io/gorm"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.RepositoryAPI {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) GetAll() ([]*department.Department, error) {
	var departments []*department.Department
	err := r.db.Order("name ASC").Find(&departments).Error
	return departments, err
}

func (r *DepartmentRepository) GetByName(name string) (*department.Department, error) {
	var dept department.Department
	err := r.db.Where("name = ?", name).First(&dept).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &dept, nil
}

func (r *DepartmentRepository) Create(dept *department.Department) error {
	return r.db.Create(dept).Error
}

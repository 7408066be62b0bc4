package user

import (
	"log/slog"
)

type Repository interface {
	GetByID(userID int64) (*User, error)
	GetByEmail(email string) (*User, error)
	Update(u *User) error
	ListEmployees() ([]*User, error)
	CountEmployees() (int64, error)
}

// DepartmentValidator answers whether a department name is a known,
// active one; profile updates gate on it.
type DepartmentValidator interface {
	IsValidDepartment(name string) bool
}

type Service struct {
	repo        Repository
	departments DepartmentValidator
	logger      *slog.Logger
}

func NewService(repo Repository, departments DepartmentValidator, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		departments: departments,
		logger:      logger,
	}
}

func (s *Service) GetByID(userID int64) (*User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", userID)
		return nil, err
	}
	return u, nil
}

// UpdateProfile applies name/email/department changes. Email changes are
// checked for uniqueness before writing; role and employee ID never change
// through this path.
func (s *Service) UpdateProfile(userID int64, dto UpdateProfileDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(userID)
	if err != nil {
		s.logger.Error("profile update: user lookup failed", "error", err, "user_id", userID)
		return nil, err
	}

	if dto.Email != "" && dto.Email != u.Email {
		existing, err := s.repo.GetByEmail(dto.Email)
		if err != nil && err != ErrNotFound {
			return nil, err
		}
		if existing != nil {
			s.logger.Warn("profile update rejected: email in use", "user_id", userID, "email", dto.Email)
			return nil, ErrEmailTaken
		}
		u.Email = dto.Email
	}
	if dto.Name != "" {
		u.Name = dto.Name
	}
	if dto.Department != "" {
		if s.departments != nil && !s.departments.IsValidDepartment(dto.Department) {
			s.logger.Warn("profile update rejected: unknown department", "user_id", userID, "department", dto.Department)
			return nil, ErrInvalidDepartment
		}
		u.Department = dto.Department
	}

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update profile", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("profile updated", "user_id", userID)
	return u, nil
}

// ListEmployees returns all employee-role users sorted by name.
func (s *Service) ListEmployees() ([]*User, error) {
	employees, err := s.repo.ListEmployees()
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, err
	}
	return employees, nil
}

package department

import (
	"log/slog"
)

type RepositoryAPI interface {
	GetAll() ([]*Department, error)
	GetByName(name string) (*Department, error)
	Create(dept *Department) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListDepartments returns the active departments in name order.
func (s *Service) ListDepartments() ([]DepartmentResponse, error) {
	departments, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get departments from repository", "error", err)
		return nil, err
	}

	responses := make([]DepartmentResponse, 0, len(departments))
	for _, dept := range departments {
		if !dept.IsActive {
			continue
		}
		responses = append(responses, DepartmentResponse{ID: dept.ID, Name: dept.Name})
	}
	return responses, nil
}

// IsValidDepartment reports whether an active department with the given
// name exists. Registration and profile updates gate on it.
func (s *Service) IsValidDepartment(name string) bool {
	dept, err := s.repo.GetByName(name)
	if err != nil {
		s.logger.Warn("error checking department validity", "name", name, "error", err)
		return false
	}
	return dept != nil && dept.IsActive
}

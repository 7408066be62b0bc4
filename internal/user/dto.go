package user

import (
	"regexp"
	"strings"

	"github.com/frahmantamala/attendance-management/internal"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UpdateProfileDTO carries the mutable profile fields. Empty fields are
// left unchanged, matching the partial-update behavior of the API.
type UpdateProfileDTO struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

func (dto UpdateProfileDTO) Validate() error {
	if dto.Name == "" && dto.Email == "" && dto.Department == "" {
		return internal.NewValidationError("nothing to update", internal.ErrCodeValidationFailed)
	}
	if dto.Email != "" && !emailPattern.MatchString(strings.TrimSpace(dto.Email)) {
		return internal.NewValidationError("invalid email format", internal.ErrCodeValidationFailed)
	}
	return nil
}

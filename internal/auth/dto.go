package auth

import (
	"regexp"
	"strings"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/user"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterDTO is the transport shape for account registration. Role is
// optional and defaults to employee.
type RegisterDTO struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role,omitempty"`
	EmployeeID string `json:"employeeId"`
	Department string `json:"department"`
}

func (d RegisterDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if d.Email == "" {
		return internal.NewValidationError("email is required", internal.ErrCodeValidationFailed)
	}
	if !emailPattern.MatchString(strings.TrimSpace(d.Email)) {
		return internal.NewValidationError("invalid email format", internal.ErrCodeValidationFailed)
	}
	if len(d.Password) < 6 {
		return internal.NewValidationError("password must be at least 6 characters", internal.ErrCodeValidationFailed)
	}
	if d.EmployeeID == "" {
		return internal.NewValidationError("employee ID is required", internal.ErrCodeValidationFailed)
	}
	if d.Department == "" {
		return internal.NewValidationError("department is required", internal.ErrCodeValidationFailed)
	}
	if d.Role != "" && !user.Role(d.Role).Valid() {
		return internal.NewValidationError("role must be employee or manager", internal.ErrCodeValidationFailed)
	}
	return nil
}

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() error {
	if d.Email == "" {
		return internal.NewValidationError("email is required", internal.ErrCodeValidationFailed)
	}
	if d.Password == "" {
		return internal.NewValidationError("password is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

// RefreshTokenDTO for refresh token requests
type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (d RefreshTokenDTO) Validate() error {
	if d.RefreshToken == "" {
		return internal.NewValidationError("refresh_token is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

// AuthUserResponse is the account payload returned by register and login,
// token included so the client can start a session immediately.
type AuthUserResponse struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       user.Role  `json:"role"`
	EmployeeID string     `json:"employeeId"`
	Department string     `json:"department"`
	Tokens     AuthTokens `json:"tokens"`
}

func NewAuthUserResponse(u *user.User, tokens AuthTokens) AuthUserResponse {
	return AuthUserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		EmployeeID: u.EmployeeID,
		Department: u.Department,
		Tokens:     tokens,
	}
}

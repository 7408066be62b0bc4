package auth

import (
	"time"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/user"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type ServiceAPI interface {
	Register(dto RegisterDTO) (*user.User, AuthTokens, error)
	Authenticate(dto LoginDTO) (*user.User, AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetUserByID(userID int64) (*user.User, error)
}

// Repository is the credential store consumed by the auth service.
type Repository interface {
	Create(u *user.User) error
	GetByEmail(email string) (*user.User, error)
	GetByID(userID int64) (*user.User, error)
	EmailExists(email string) (bool, error)
	EmployeeIDExists(employeeID string) (bool, error)
}

// DepartmentValidator answers whether a department name is one the
// organization actually has; registration gates on it.
type DepartmentValidator interface {
	IsValidDepartment(name string) bool
}

// TokenGenerator creates tokens and expiration times.
type TokenGenerator interface {
	GenerateAccessToken(userID string, email string, role string) (token string, err error)
	GenerateRefreshToken(userID string, email string, role string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims represents JWT token claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

// Domain errors as AppError values; the handlers hand them straight to
// WriteDomainError for status mapping.
var (
	ErrInvalidCredentials = internal.NewUnauthorizedError("Invalid email or password", internal.ErrCodeInvalidCreds)
	ErrInvalidToken       = internal.NewUnauthorizedError("invalid token", internal.ErrCodeInvalidToken)
	ErrTokenExpired       = internal.NewUnauthorizedError("token expired", internal.ErrCodeTokenExpired)
	ErrUserInactive       = internal.NewUnauthorizedError("user is inactive", internal.ErrCodeUserInactiveCode)
	ErrEmailExists        = internal.NewValidationError("User already exists", internal.ErrCodeEmailTaken)
	ErrEmployeeIDExists   = internal.NewValidationError("Employee ID already exists", internal.ErrCodeEmployeeIDTaken)
	ErrInvalidDepartment  = internal.NewValidationError("Invalid department", internal.ErrCodeInvalidDepartment)
)

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/frahmantamala/attendance-management/internal/user"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Service is the main auth service with dependencies
type Service struct {
	repo           Repository
	tokenGenerator TokenGenerator
	departments    DepartmentValidator
	bcryptCost     int
	logger         *slog.Logger
}

func NewService(repo Repository, tokenGen TokenGenerator, departments DepartmentValidator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
		departments:    departments,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

// NewJWTTokenGenerator creates a new JWT token generator
func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	if accessTTL == 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL == 0 {
		refreshTTL = 24 * 7 * time.Hour
	}
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

// Register creates a new account. Email and employee ID must both be
// unused and the department must be a known one; role defaults to
// employee when absent.
func (s *Service) Register(dto RegisterDTO) (*user.User, AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return nil, AuthTokens{}, err
	}

	emailTaken, err := s.repo.EmailExists(dto.Email)
	if err != nil {
		s.logger.Error("register: email lookup failed", "error", err)
		return nil, AuthTokens{}, err
	}
	if emailTaken {
		return nil, AuthTokens{}, ErrEmailExists
	}

	idTaken, err := s.repo.EmployeeIDExists(dto.EmployeeID)
	if err != nil {
		s.logger.Error("register: employee id lookup failed", "error", err)
		return nil, AuthTokens{}, err
	}
	if idTaken {
		return nil, AuthTokens{}, ErrEmployeeIDExists
	}

	if s.departments != nil && !s.departments.IsValidDepartment(dto.Department) {
		return nil, AuthTokens{}, ErrInvalidDepartment
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, AuthTokens{}, err
	}

	role := user.Role(dto.Role)
	if role == "" {
		role = user.RoleEmployee
	}

	now := time.Now()
	u := &user.User{
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: hash,
		Role:         role,
		EmployeeID:   dto.EmployeeID,
		Department:   dto.Department,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("register: failed to create user", "error", err, "email", dto.Email)
		return nil, AuthTokens{}, err
	}

	tokens, err := s.issueTokens(u)
	if err != nil {
		return nil, AuthTokens{}, err
	}

	s.logger.Info("user registered", "user_id", u.ID, "employee_id", u.EmployeeID, "role", u.Role)
	return u, tokens, nil
}

// Authenticate validates credentials and returns the account with tokens
func (s *Service) Authenticate(dto LoginDTO) (*user.User, AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return nil, AuthTokens{}, err
	}

	u, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		return nil, AuthTokens{}, ErrInvalidCredentials
	}

	if !u.IsActive {
		return nil, AuthTokens{}, ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, AuthTokens{}, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(u)
	if err != nil {
		return nil, AuthTokens{}, err
	}

	return u, tokens, nil
}

// RefreshTokens validates refresh token and returns new tokens
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return AuthTokens{}, ErrInvalidToken
	}

	u, err := s.repo.GetByID(userID)
	if err != nil {
		return AuthTokens{}, ErrInvalidToken
	}
	if !u.IsActive {
		return AuthTokens{}, ErrUserInactive
	}

	return s.issueTokens(u)
}

// ValidateAccessToken validates access token and returns claims
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// GetUserByID loads the principal for middleware after token validation.
func (s *Service) GetUserByID(userID int64) (*user.User, error) {
	return s.repo.GetByID(userID)
}

func (s *Service) issueTokens(u *user.User) (AuthTokens, error) {
	id := strconv.FormatInt(u.ID, 10)

	accessToken, err := s.tokenGenerator.GenerateAccessToken(id, u.Email, string(u.Role))
	if err != nil {
		return AuthTokens{}, err
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(id, u.Email, string(u.Role))
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// GenerateAccessToken creates a new access token
func (j *JWTTokenGenerator) GenerateAccessToken(userID, email, role string) (string, error) {
	return j.signToken(userID, email, role, j.AccessTokenTTL, j.AccessTokenSecret)
}

// GenerateRefreshToken creates a new refresh token
func (j *JWTTokenGenerator) GenerateRefreshToken(userID, email, role string) (string, error) {
	return j.signToken(userID, email, role, j.RefreshTokenTTL, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) signToken(userID, email, role string, ttl time.Duration, secret []byte) (string, error) {
	expiresAt := time.Now().Add(ttl)

	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Check signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		// Refresh tokens live longer than the access TTL, so anything with
		// more remaining lifetime must have been signed with the refresh secret.
		if claims, ok := token.Claims.(*Claims); ok {
			if claims.ExpiresAt != nil && time.Until(claims.ExpiresAt.Time) > j.AccessTokenTTL {
				return j.RefreshTokenSecret, nil
			}
		}
		return j.AccessTokenSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/transport"
	"github.com/frahmantamala/attendance-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteDomainError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	u, tokens, err := h.Service.Register(dto)
	if err != nil {
		h.Logger.Error("registration failed", "error", err, "email", dto.Email)
		if _, ok := internal.IsAppError(err); !ok {
			err = internal.NewInternalError("internal server error", err)
		}
		h.WriteDomainError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusCreated, "User registered successfully", NewAuthUserResponse(u, tokens))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteDomainError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	u, tokens, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Error("authentication failed", "error", err)
		if _, ok := internal.IsAppError(err); !ok {
			err = internal.NewInternalError("internal server error", err)
		}
		h.WriteDomainError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Login successful", NewAuthUserResponse(u, tokens))
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteDomainError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteDomainError(w, err)
		return
	}

	tokens, err := h.Service.RefreshTokens(dto.RefreshToken)
	if err != nil {
		h.Logger.Error("token refresh failed", "error", err)
		if _, ok := internal.IsAppError(err); !ok {
			err = internal.NewInternalError("internal server error", err)
		}
		h.WriteDomainError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Token refreshed", tokens)
}

// AuthMiddleware validates the bearer token and loads the principal into
// the request context for downstream handlers.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.Logger.Warn("token validation failed", "error", err)
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		userID, err := strconv.ParseInt(claims.UserID, 10, 64)
		if err != nil {
			h.Logger.Warn("failed to parse user id from token claims", "value", claims.UserID, "error", err)
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		u, err := h.Service.GetUserByID(userID)
		if err != nil {
			h.Logger.Warn("auth middleware: failed to load user", "user_id", userID, "error", err)
			h.WriteError(w, http.StatusUnauthorized, "user not found")
			return
		}

		principal := &internal.Principal{
			ID:    u.ID,
			Email: u.Email,
			Name:  u.Name,
			Role:  string(u.Role),
		}

		ctx := internal.ContextWithUser(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

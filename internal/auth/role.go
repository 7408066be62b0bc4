package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/transport"
)

// RequireManager gates a route group to manager-role principals. Access
// control is a flat two-variant role check, not a permission hierarchy.
func RequireManager(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := internal.UserFromContext(r.Context())
			if !ok || u == nil {
				writeEnvelope(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			if !u.IsManager() {
				logger.Warn("access denied: manager role required",
					"user_id", u.ID,
					"role", u.Role)
				writeEnvelope(w, http.StatusForbidden, "manager access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireEmployee gates check-in/out routes to employee-role principals;
// managers observe, they do not accrue attendance.
func RequireEmployee(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := internal.UserFromContext(r.Context())
			if !ok || u == nil {
				writeEnvelope(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			if u.IsManager() {
				logger.Warn("access denied: employee role required",
					"user_id", u.ID,
					"role", u.Role)
				writeEnvelope(w, http.StatusForbidden, "employee access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeEnvelope(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(transport.APIResponse{Success: false, Message: message})
}

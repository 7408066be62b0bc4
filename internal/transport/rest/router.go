package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/attendance-management/internal/attendance"
	"github.com/frahmantamala/attendance-management/internal/auth"
	"github.com/frahmantamala/attendance-management/internal/dashboard"
	"github.com/frahmantamala/attendance-management/internal/department"
	"github.com/frahmantamala/attendance-management/internal/transport/middleware"
	"github.com/frahmantamala/attendance-management/internal/transport/swagger"
	"github.com/frahmantamala/attendance-management/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	attendanceHandler *attendance.Handler,
	dashboardHandler *dashboard.Handler,
	departmentHandler *department.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/register", authHandler.Register)
				sr.Post("/login", authHandler.Login)
				sr.Post("/refresh", authHandler.RefreshToken)
			})
		}

		// Public departments route (no auth required)
		if departmentHandler != nil {
			r.Get("/departments", departmentHandler.GetDepartments)
		}

		if authHandler == nil {
			return
		}

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			if userHandler != nil {
				pr.Route("/auth", func(ur chi.Router) {
					ur.Get("/me", userHandler.GetCurrentUser)
					ur.Put("/profile", userHandler.UpdateProfile)

					ur.Group(func(mr chi.Router) {
						mr.Use(auth.RequireManager(logger))
						mr.Get("/users", userHandler.ListEmployees)
					})
				})
			}

			if attendanceHandler != nil {
				pr.Route("/attendance", func(ar chi.Router) {
					// Employee routes
					ar.Group(func(er chi.Router) {
						er.Use(auth.RequireEmployee(logger))
						er.Post("/checkin", attendanceHandler.CheckIn)
						er.Post("/checkout", attendanceHandler.CheckOut)
						er.Get("/my-history", attendanceHandler.MyHistory)
						er.Get("/my-summary", attendanceHandler.MySummary)
						er.Get("/today", attendanceHandler.Today)
					})

					// Manager reporting routes
					ar.Group(func(mr chi.Router) {
						mr.Use(auth.RequireManager(logger))
						mr.Get("/all", attendanceHandler.All)
						mr.Get("/employee/{id}", attendanceHandler.EmployeeHistory)
						mr.Get("/summary", attendanceHandler.TeamSummary)
						mr.Get("/export", attendanceHandler.Export)
						mr.Get("/today-status", attendanceHandler.TeamToday)
					})
				})
			}

			if dashboardHandler != nil {
				pr.Route("/dashboard", func(dr chi.Router) {
					dr.Group(func(er chi.Router) {
						er.Use(auth.RequireEmployee(logger))
						er.Get("/employee", dashboardHandler.Employee)
					})

					dr.Group(func(mr chi.Router) {
						mr.Use(auth.RequireManager(logger))
						mr.Get("/manager", dashboardHandler.Manager)
					})
				})
			}
		})
	})
}

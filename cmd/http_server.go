package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/attendance"
	attendancePostgres "github.com/frahmantamala/attendance-management/internal/attendance/postgres"
	"github.com/frahmantamala/attendance-management/internal/auth"
	authPostgres "github.com/frahmantamala/attendance-management/internal/auth/postgres"
	"github.com/frahmantamala/attendance-management/internal/dashboard"
	"github.com/frahmantamala/attendance-management/internal/department"
	departmentPostgres "github.com/frahmantamala/attendance-management/internal/department/postgres"
	"github.com/frahmantamala/attendance-management/internal/transport"
	"github.com/frahmantamala/attendance-management/internal/transport/rest"
	"github.com/frahmantamala/attendance-management/internal/user"
	userPostgres "github.com/frahmantamala/attendance-management/internal/user/postgres"
	"github.com/frahmantamala/attendance-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) error {
	cfg := deps.Config

	// Repositories share the single pooled connection through gorm.
	authRepo := authPostgres.NewRepository(deps.GormDB)
	userRepo := userPostgres.NewUserRepository(deps.GormDB)
	attendanceRepo := attendancePostgres.NewAttendanceRepository(deps.GormDB)
	departmentRepo := departmentPostgres.NewDepartmentRepository(deps.GormDB)

	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)

	cutoffHour, cutoffMinute, err := cfg.Attendance.LateCutoffClock()
	if err != nil {
		return fmt.Errorf("invalid attendance config: %w", err)
	}
	policy := attendance.Policy{
		LateCutoffHour:   cutoffHour,
		LateCutoffMinute: cutoffMinute,
		HalfDayHours:     cfg.Attendance.HalfDayHours,
	}

	departmentService := department.NewService(departmentRepo, deps.Logger)
	authService := auth.NewService(authRepo, tokenGen, departmentService, cfg.Security.BCryptCost, deps.Logger)
	userService := user.NewService(userRepo, departmentService, deps.Logger)
	attendanceService := attendance.NewService(attendanceRepo, userRepo, policy, deps.Logger)
	dashboardService := dashboard.NewService(attendanceRepo, userRepo, deps.Logger)

	baseHandler := transport.NewBaseHandler(deps.Logger)

	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	dashboardHandler := dashboard.NewHandler(baseHandler, dashboardService)
	departmentHandler := department.NewHandler(baseHandler, departmentService)

	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		authHandler,
		userHandler,
		attendanceHandler,
		dashboardHandler,
		departmentHandler,
		deps.Logger,
	)
	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.InitWithOptions(config.Observability.Logging.Level, config.Observability.Logging.Format)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.LoggerWrapper(),
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers the ORM over the already-pooled pgx connection so both
// share one pool.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
}

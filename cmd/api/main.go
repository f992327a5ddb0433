package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/leave-management-go/internal/config"
	appHTTP "github.com/cmlabs-hris/leave-management-go/internal/handler/http"
	"github.com/cmlabs-hris/leave-management-go/internal/pkg/database"
	"github.com/cmlabs-hris/leave-management-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/leave-management-go/internal/repository/postgresql"
	serviceAuth "github.com/cmlabs-hris/leave-management-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/leave-management-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/leave-management-go/internal/service/employee"
	"github.com/cmlabs-hris/leave-management-go/internal/service/leave"
	"github.com/cmlabs-hris/leave-management-go/internal/service/seed"
	"github.com/go-chi/httplog/v3"
	"github.com/spf13/pflag"
)

const shutdownTimeout = 10 * time.Second

func main() {
	envFile := pflag.String("env-file", ".env", "path to an optional dotenv file")
	migrate := pflag.Bool("migrate", true, "apply database migrations on start")
	runSeed := pflag.Bool("seed", true, "create default leave types and the seed admin on start")
	pflag.Parse()

	if err := run(*envFile, *migrate, *runSeed); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(envFile string, migrate, runSeed bool) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	level, _ := cfg.SlogLevel()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "leave-management"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	if cfg.UsesDefaultSecret() {
		slog.Warn("JWT_SECRET is not set, tokens are signed with the built-in default secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{MaxConns: cfg.Database.MaxConns})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if migrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	if runSeed {
		seeder := seed.NewService(employeeRepo, leaveTypeRepo, func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		})
		if err := seeder.Run(ctx, seed.Config{
			AdminEmail:    cfg.Seed.AdminEmail,
			AdminPassword: cfg.Seed.AdminPassword,
		}); err != nil {
			return err
		}
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiration)
	authService := serviceAuth.NewAuthService(employeeRepo, JWTService)
	requestService := leave.NewRequestService(leaveTypeRepo, leaveRequestRepo)
	leaveService := leave.NewLeaveService(leaveTypeRepo, leaveRequestRepo, requestService)
	balanceCalculator := leave.NewBalanceCalculator(leaveTypeRepo, leaveRequestRepo)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.App.CORSAllowedOrigins,
			Logger:         logger,
			LogLevel:       level,
		},
		authService,
		db,
		appHTTP.Handlers{
			Auth:      appHTTP.NewAuthHandler(authService),
			Employee:  appHTTP.NewEmployeeHandler(employeeService.NewEmployeeService(employeeRepo)),
			Profile:   appHTTP.NewProfileHandler(employeeService.NewProfileService(employeeRepo)),
			Leave:     appHTTP.NewLeaveHandler(leaveService, balanceCalculator),
			Dashboard: appHTTP.NewDashboardHandler(dashboardService.NewDashboardService(dashboardRepo)),
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

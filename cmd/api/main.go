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

	"github.com/cmlabs-hris/attendance-summary-go/internal/config"
	appHTTP "github.com/cmlabs-hris/attendance-summary-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/cache"
	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/logger"
	"github.com/cmlabs-hris/attendance-summary-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/attendance-summary-go/internal/service/attendance"
	employeeService "github.com/cmlabs-hris/attendance-summary-go/internal/service/employee"
	"github.com/cmlabs-hris/attendance-summary-go/internal/service/hierarchy"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, logger.Options{
		App:     cfg.App.Name,
		Version: cfg.App.Version,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
	})
	slog.SetDefault(log)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	checkinRepo := postgresql.NewCheckinRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	summaryCache := cache.NewTTLCache(cfg.Attendance.CacheTTL)
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	resolver := hierarchy.NewResolver(employeeRepo, summaryCache)

	attendanceSvc := attendanceService.NewAttendanceService(
		checkinRepo,
		employeeRepo,
		resolver,
		summaryCache,
		cfg.Attendance.HierarchyMaxDepth,
	)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, cfg.Directory)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, cfg.Attendance.Timezone)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:         log,
			LogLevel:       logger.ParseLevel(cfg.App.LogLevel),
			AllowedOrigins: cfg.App.CORSAllowedOrigins,
		},
		JWTService,
		attendanceHandler,
		employeeHandler,
	)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("attendance-cache-sweep", summaryCache.TTL(), func(ctx context.Context) error {
		if removed := summaryCache.PurgeExpired(); removed > 0 {
			slog.Debug("Expired summaries purged", "removed", removed)
		}
		return nil
	})
	scheduler.Start(ctx)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running",
			"addr", server.Addr,
			"cache_ttl", summaryCache.TTL().String(),
			"timezone", cfg.Attendance.Timezone.String(),
			"hierarchy_max_depth", cfg.Attendance.HierarchyMaxDepth)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	scheduler.Wait()
	slog.Info("Server stopped")
}

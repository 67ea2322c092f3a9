package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sims/sims-backend/internal/config"
	"github.com/sims/sims-backend/internal/database"
	"github.com/sims/sims-backend/internal/handler"
	"github.com/sims/sims-backend/internal/logger"
	"github.com/sims/sims-backend/internal/repository"
	"github.com/sims/sims-backend/internal/router"
	"github.com/sims/sims-backend/internal/service"
	"github.com/sims/sims-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting SIMS Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	studentRepo := repository.NewStudentRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	sessionRepo := repository.NewSessionRepository(rdb)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, userRepo, sessionRepo, log)
	userService := service.NewUserService(userRepo, authService, sessionRepo, log)
	studentService := service.NewStudentService(studentRepo, log)
	importService := service.NewImportService(studentRepo, log)
	dashboardService := service.NewDashboardService(studentRepo)

	// ─── Seed Default Admin ───────────────────────────────────────────
	// Runs before the server accepts traffic. Existing accounts are left untouched.
	created, err := userService.EnsureDefaultAdmin(ctx, cfg.DefaultAdmin)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed default admin")
	}
	if created {
		log.Warn().Str("username", cfg.DefaultAdmin.Username).Msg("Default admin created, change its password")
	}

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Student:   handler.NewStudentHandler(studentService, importService, cfg.MaxUploadBytes),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		User:      handler.NewUserHandler(userService),
		System: handler.NewSystemHandler(map[string]handler.HealthCheck{
			"postgres": pool.Ping,
			"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}, log),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(ctx, authService, handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}
	cancel()

	log.Info().Msg("Shutdown complete")
}

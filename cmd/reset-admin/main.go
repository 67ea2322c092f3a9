package main

import (
	"context"
	"fmt"

	"github.com/sims/sims-backend/internal/config"
	"github.com/sims/sims-backend/internal/database"
	"github.com/sims/sims-backend/internal/logger"
	"github.com/sims/sims-backend/internal/repository"
	"github.com/sims/sims-backend/internal/service"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	var sessions service.SessionRevoker
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, existing admin sessions stay valid until they expire")
	} else {
		defer rdb.Close()
		sessions = repository.NewSessionRepository(rdb)
	}

	userRepo := repository.NewUserRepository(pool)
	authService := service.NewAuthService(cfg, userRepo, nil, log)
	userService := service.NewUserService(userRepo, authService, sessions, log)

	fmt.Println("=== Reset Default Admin ===")
	fmt.Printf("This command restores the ADMIN role and the configured password of %q.\n", cfg.DefaultAdmin.Username)

	user, err := userService.ResetAdmin(ctx, cfg.DefaultAdmin)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to reset admin")
	}

	fmt.Printf("\nSuccess! '%s' (ID %d) can sign in with the configured credentials.\n", user.Username, user.ID)
}

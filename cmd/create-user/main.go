package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/sims/sims-backend/internal/config"
	"github.com/sims/sims-backend/internal/database"
	"github.com/sims/sims-backend/internal/logger"
	"github.com/sims/sims-backend/internal/model"
	"github.com/sims/sims-backend/internal/repository"
	"github.com/sims/sims-backend/internal/service"
	"golang.org/x/term"
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

	// ─── Initialize Service ────────────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	authService := service.NewAuthService(cfg, userRepo, nil, log)
	userService := service.NewUserService(userRepo, authService, nil, log)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New User ===")

	fullName := prompt(reader, "Enter Full Name: ")
	if fullName == "" {
		fmt.Println("Error: Full name is required")
		return
	}

	username := prompt(reader, "Enter Username: ")
	if username == "" {
		fmt.Println("Error: Username is required")
		return
	}

	email := prompt(reader, "Enter Email (optional): ")

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	role := model.Role(strings.ToUpper(prompt(reader, "Enter Role [ADMIN/TEACHER/CLERK] (default CLERK): ")))
	if role == "" {
		role = model.RoleClerk
	}
	if !role.Valid() {
		fmt.Printf("Error: unknown role %q\n", role)
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	user, err := userService.Create(ctx, model.CreateUserRequest{
		Username: username,
		Password: password,
		Role:     role,
		FullName: fullName,
		Email:    email,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create user")
	}

	fmt.Printf("\nSuccess! User '%s' (%s) created with ID: %d\n", user.Username, user.Role, user.ID)
}

func prompt(r *bufio.Reader, label string) string {
	fmt.Print(label)
	s, _ := r.ReadString('\n')
	return strings.TrimSpace(s)
}

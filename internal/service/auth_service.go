package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sims/sims-backend/internal/config"
	"github.com/sims/sims-backend/internal/logger"
	"github.com/sims/sims-backend/internal/model"
	"github.com/sims/sims-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionRevoked     = errors.New("session is no longer active")
	ErrPasswordTooLong    = fmt.Errorf("password must be at most %d bytes", maxPasswordBytes)
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	UserID      int64      `json:"user_id"`
	Username    string     `json:"username"`
	Role        model.Role `json:"role"`
	Permissions []string   `json:"permissions"`
}

// AuthService handles authentication, JWT, and session management.
type AuthService struct {
	cfg      *config.Config
	users    UserStore
	sessions SessionStore
	log      zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, users UserStore, sessions SessionStore, log zerolog.Logger) *AuthService {
	return &AuthService{
		cfg:      cfg,
		users:    users,
		sessions: sessions,
		log:      logger.Component(log, "auth_service"),
	}
}

// HashPassword hashes a password with the configured bcrypt cost. Passwords
// longer than bcrypt's input limit fail with ErrPasswordTooLong.
func (s *AuthService) HashPassword(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Login verifies the credentials, issues a token and opens its session.
// Unknown usernames and wrong passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.CheckPassword(user.PasswordHash, password); err != nil {
		s.log.Warn().Str("username", username).Msg("Failed login attempt")
		return nil, err
	}

	token, jti, err := s.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Create(ctx, jti, user.ID, s.cfg.JWTExpiry); err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("User logged in")

	return &model.LoginResponse{
		Message:     "Login successful",
		Token:       token,
		User:        *user,
		Permissions: user.Role.Permissions(),
	}, nil
}

// GenerateToken signs a JWT for the user with its role permissions embedded.
// It returns the token and its ID.
func (s *AuthService) GenerateToken(user *model.User) (string, string, error) {
	jti := uuid.New().String()
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		UserID:      user.ID,
		Username:    user.Username,
		Role:        user.Role,
		Permissions: user.Role.Permissions(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("sign token: %w", err)
	}
	return signed, jti, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// ValidateSession checks that the token has not been logged out.
func (s *AuthService) ValidateSession(ctx context.Context, claims *Claims) error {
	ok, err := s.sessions.Exists(ctx, claims.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSessionRevoked
	}
	return nil
}

// Logout ends the token's session.
func (s *AuthService) Logout(ctx context.Context, claims *Claims) error {
	if err := s.sessions.Delete(ctx, claims.ID, claims.UserID); err != nil {
		return err
	}
	s.log.Info().Int64("user_id", claims.UserID).Msg("User logged out")
	return nil
}

// Me returns the account behind the token.
func (s *AuthService) Me(ctx context.Context, claims *Claims) (*model.User, error) {
	return s.users.GetByID(ctx, claims.UserID)
}

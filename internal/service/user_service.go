package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sims/sims-backend/internal/config"
	"github.com/sims/sims-backend/internal/logger"
	"github.com/sims/sims-backend/internal/model"
	"github.com/sims/sims-backend/internal/repository"
)

// ErrSelfDelete is returned when a user tries to delete their own account.
var ErrSelfDelete = errors.New("cannot delete your own account")

// PasswordHasher turns a plaintext password into a storable hash.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// SessionRevoker ends every login session of a user.
type SessionRevoker interface {
	DeleteByUser(ctx context.Context, userID int64) (int, error)
}

// UserService manages user accounts. Tokens embed the role's permissions, so
// deleting a user or changing their role, username or password revokes their
// sessions.
type UserService struct {
	store    UserStore
	hasher   PasswordHasher
	sessions SessionRevoker
	log      zerolog.Logger
}

// NewUserService creates a new UserService. sessions may be nil for tools
// that only create accounts.
func NewUserService(store UserStore, hasher PasswordHasher, sessions SessionRevoker, log zerolog.Logger) *UserService {
	return &UserService{
		store:    store,
		hasher:   hasher,
		sessions: sessions,
		log:      logger.Component(log, "user_service"),
	}
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.store.List(ctx)
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.store.GetByID(ctx, id)
}

// Create adds a user account with a hashed password.
func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	if err := s.ensureUsernameFree(ctx, req.Username, 0); err != nil {
		return nil, err
	}

	hash, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         req.Role,
		FullName:     req.FullName,
		Email:        req.Email,
	}
	if err := s.store.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("User created")
	return user, nil
}

// Update changes a user's profile. The password is replaced only when the
// request carries one.
func (s *UserService) Update(ctx context.Context, id int64, req model.UpdateUserRequest) (*model.User, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Username != req.Username {
		if err := s.ensureUsernameFree(ctx, req.Username, id); err != nil {
			return nil, err
		}
	}

	// Hash first so a rejected password leaves the account untouched.
	if req.Password != "" {
		hash, err := s.hasher.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	revoke := req.Password != "" || user.Role != req.Role || user.Username != req.Username
	user.Username = req.Username
	user.Role = req.Role
	user.FullName = req.FullName
	user.Email = req.Email
	if err := s.store.Update(ctx, user); err != nil {
		return nil, err
	}

	if revoke {
		if err := s.revokeSessions(ctx, id); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// Delete removes a user and ends their sessions. actorID is the caller, who
// cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return ErrSelfDelete
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("user_id", id).Int64("by", actorID).Msg("User deleted")
	return s.revokeSessions(ctx, id)
}

func (s *UserService) revokeSessions(ctx context.Context, userID int64) error {
	if s.sessions == nil {
		return nil
	}
	n, err := s.sessions.DeleteByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("revoke sessions of user %d: %w", userID, err)
	}
	if n > 0 {
		s.log.Info().Int64("user_id", userID).Int("sessions", n).Msg("Sessions revoked")
	}
	return nil
}

func (s *UserService) ensureUsernameFree(ctx context.Context, username string, selfID int64) error {
	existing, err := s.store.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != selfID:
		return repository.ErrDuplicateUsername
	}
	return nil
}

// EnsureDefaultAdmin creates the configured admin account when no user has
// its username. An existing account is never modified. It reports whether an
// account was created.
func (s *UserService) EnsureDefaultAdmin(ctx context.Context, admin config.DefaultAdmin) (bool, error) {
	_, err := s.store.GetByUsername(ctx, admin.Username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	hash, err := s.hasher.HashPassword(admin.Password)
	if err != nil {
		return false, err
	}
	user := &model.User{
		Username:     admin.Username,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		FullName:     admin.FullName,
	}
	if err := s.store.Create(ctx, user); err != nil {
		// Another instance seeded it first.
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return false, nil
		}
		return false, err
	}

	s.log.Info().Str("username", admin.Username).Msg("Default admin created")
	return true, nil
}

// ResetAdmin re-applies the configured admin credentials, creating the
// account if needed and restoring its ADMIN role and password otherwise.
func (s *UserService) ResetAdmin(ctx context.Context, admin config.DefaultAdmin) (*model.User, error) {
	created, err := s.EnsureDefaultAdmin(ctx, admin)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetByUsername(ctx, admin.Username)
	if err != nil {
		return nil, err
	}
	if created {
		return user, nil
	}

	hash, err := s.hasher.HashPassword(admin.Password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	user.Role = model.RoleAdmin
	if admin.FullName != "" {
		user.FullName = admin.FullName
	}
	if err := s.store.Update(ctx, user); err != nil {
		return nil, err
	}
	if err := s.revokeSessions(ctx, user.ID); err != nil {
		return nil, err
	}

	s.log.Info().Str("username", admin.Username).Msg("Admin credentials reset")
	return user, nil
}

package service

import (
	"context"
	"time"

	"github.com/sims/sims-backend/internal/model"
	"github.com/sims/sims-backend/internal/repository"
)

// StudentStore is the persistence contract for student records.
type StudentStore interface {
	Create(ctx context.Context, s *model.Student) error
	CreateBatch(ctx context.Context, students []*model.Student) error
	GetByID(ctx context.Context, id int64) (*model.Student, error)
	List(ctx context.Context) ([]model.Student, error)
	Search(ctx context.Context, filter model.StudentFilter) ([]model.Student, error)
	Update(ctx context.Context, s *model.Student) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	CountWhere(ctx context.Context, field model.StudentField, value string) (int, error)
	GroupCount(ctx context.Context, field model.StudentField) ([]model.DistributionItem, error)
}

// UserStore is the persistence contract for user accounts.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id int64) error
}

// SessionStore tracks which issued tokens are still logged in.
type SessionStore interface {
	Create(ctx context.Context, jti string, userID int64, ttl time.Duration) error
	Exists(ctx context.Context, jti string) (bool, error)
	Delete(ctx context.Context, jti string, userID int64) error
	DeleteByUser(ctx context.Context, userID int64) (int, error)
}

var (
	_ StudentStore = (*repository.StudentRepository)(nil)
	_ UserStore    = (*repository.UserRepository)(nil)
	_ SessionStore = (*repository.SessionRepository)(nil)
)

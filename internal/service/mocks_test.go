package service

import (
	"context"
	"time"

	"github.com/sims/sims-backend/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockStudentStore is a mock implementation of StudentStore.
type MockStudentStore struct {
	mock.Mock
}

var _ StudentStore = (*MockStudentStore)(nil)

func (m *MockStudentStore) Create(ctx context.Context, s *model.Student) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStudentStore) CreateBatch(ctx context.Context, students []*model.Student) error {
	args := m.Called(ctx, students)
	return args.Error(0)
}

func (m *MockStudentStore) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*model.Student); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStudentStore) List(ctx context.Context) ([]model.Student, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).([]model.Student); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStudentStore) Search(ctx context.Context, filter model.StudentFilter) ([]model.Student, error) {
	args := m.Called(ctx, filter)
	if s, ok := args.Get(0).([]model.Student); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStudentStore) Update(ctx context.Context, s *model.Student) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStudentStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStudentStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockStudentStore) CountWhere(ctx context.Context, field model.StudentField, value string) (int, error) {
	args := m.Called(ctx, field, value)
	return args.Int(0), args.Error(1)
}

func (m *MockStudentStore) GroupCount(ctx context.Context, field model.StudentField) ([]model.DistributionItem, error) {
	args := m.Called(ctx, field)
	if items, ok := args.Get(0).([]model.DistributionItem); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUserStore is a mock implementation of UserStore.
type MockUserStore struct {
	mock.Mock
}

var _ UserStore = (*MockUserStore)(nil)

func (m *MockUserStore) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if u, ok := args.Get(0).([]model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) Update(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSessionStore is a mock implementation of SessionStore.
type MockSessionStore struct {
	mock.Mock
}

var _ SessionStore = (*MockSessionStore)(nil)

func (m *MockSessionStore) Create(ctx context.Context, jti string, userID int64, ttl time.Duration) error {
	args := m.Called(ctx, jti, userID, ttl)
	return args.Error(0)
}

func (m *MockSessionStore) Exists(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionStore) Delete(ctx context.Context, jti string, userID int64) error {
	args := m.Called(ctx, jti, userID)
	return args.Error(0)
}

func (m *MockSessionStore) DeleteByUser(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

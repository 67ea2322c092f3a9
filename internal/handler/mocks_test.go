package handler

import (
	"context"
	"io"

	"github.com/sims/sims-backend/internal/model"
	"github.com/sims/sims-backend/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockStudentService struct {
	mock.Mock
}

func (m *MockStudentService) Search(ctx context.Context, filter model.StudentFilter) ([]model.Student, error) {
	args := m.Called(ctx, filter)
	if s, ok := args.Get(0).([]model.Student); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStudentService) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*model.Student); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStudentService) Create(ctx context.Context, req model.StudentRequest) (*model.Student, error) {
	args := m.Called(ctx, req)
	if s, ok := args.Get(0).(*model.Student); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStudentService) Update(ctx context.Context, id int64, req model.StudentRequest) (*model.Student, error) {
	args := m.Called(ctx, id, req)
	if s, ok := args.Get(0).(*model.Student); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStudentService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStudentService) Export(ctx context.Context, w io.Writer) error {
	args := m.Called(ctx, w)
	if body, ok := args.Get(0).(string); ok {
		_, _ = io.WriteString(w, body)
	}
	return args.Error(1)
}

type MockImporter struct {
	mock.Mock
}

func (m *MockImporter) Import(ctx context.Context, fileName string, r io.Reader) (*model.ImportReport, error) {
	args := m.Called(ctx, fileName, r)
	if rep, ok := args.Get(0).(*model.ImportReport); ok {
		return rep, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	args := m.Called(ctx, username, password)
	if r, ok := args.Get(0).(*model.LoginResponse); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthenticator) Logout(ctx context.Context, claims *service.Claims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

func (m *MockAuthenticator) Me(ctx context.Context, claims *service.Claims) (*model.User, error) {
	args := m.Called(ctx, claims)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if u, ok := args.Get(0).([]model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	args := m.Called(ctx, req)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id int64, req model.UpdateUserRequest) (*model.User, error) {
	args := m.Called(ctx, id, req)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, actorID, id int64) error {
	args := m.Called(ctx, actorID, id)
	return args.Error(0)
}

type MockAggregator struct {
	mock.Mock
}

func (m *MockAggregator) Distribution(ctx context.Context, field model.StudentField) ([]model.DistributionItem, error) {
	args := m.Called(ctx, field)
	if items, ok := args.Get(0).([]model.DistributionItem); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAggregator) Stats(ctx context.Context) (*model.DashboardStats, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(*model.DashboardStats); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAggregator) Demographics(ctx context.Context) (*model.Demographics, error) {
	args := m.Called(ctx)
	if d, ok := args.Get(0).(*model.Demographics); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAggregator) StreamSummary(ctx context.Context) ([]model.DistributionItem, error) {
	args := m.Called(ctx)
	if items, ok := args.Get(0).([]model.DistributionItem); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAggregator) AdmissionStats(ctx context.Context) (*model.AdmissionStats, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(*model.AdmissionStats); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

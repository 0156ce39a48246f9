package usecase_test

import (
	"context"
	"time"

	"talent-marketplace-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}
func (m *MockProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) Update(ctx context.Context, id string, update *domain.ProfileUpdate) (*domain.Profile, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) TouchLastActive(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockTalentRepo struct {
	mock.Mock
}

func (m *MockTalentRepo) Create(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *MockTalentRepo) GetByUserID(ctx context.Context, userID string) (*domain.Talent, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Talent), args.Error(1)
}
func (m *MockTalentRepo) Update(ctx context.Context, userID string, update *domain.ProfileUpdate) error {
	return m.Called(ctx, userID, update).Error(0)
}

type MockClientRepo struct {
	mock.Mock
}

func (m *MockClientRepo) Create(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *MockClientRepo) GetByUserID(ctx context.Context, userID string) (*domain.Client, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientRepo) Update(ctx context.Context, userID string, update *domain.ProfileUpdate) error {
	return m.Called(ctx, userID, update).Error(0)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) Fetch(ctx context.Context, filter domain.JobFilter, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}
func (m *MockJobRepo) FetchByClientID(ctx context.Context, clientID, status string) ([]domain.Job, error) {
	args := m.Called(ctx, clientID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockJobRepo) Update(ctx context.Context, id string, update *domain.JobUpdate) (*domain.Job, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *MockJobRepo) IncrementViewCount(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockJobRepo) IncrementApplicationCount(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockJobRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) CheckExists(ctx context.Context, jobID, talentID string) (bool, error) {
	args := m.Called(ctx, jobID, talentID)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) Fetch(ctx context.Context, filter domain.ApplicationFilter, limit, offset int) ([]domain.Application, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Application), args.Get(1).(int64), args.Error(2)
}
func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id, status string, notes *string) (*domain.Application, error) {
	args := m.Called(ctx, id, status, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) ScheduleInterview(ctx context.Context, id string, at time.Time) (*domain.Application, error) {
	args := m.Called(ctx, id, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

// Mock auth collaborators

type MockAuthProvider struct {
	mock.Mock
}

func (m *MockAuthProvider) SignUp(ctx context.Context, email, password string) (*domain.AuthIdentity, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthIdentity), args.Error(1)
}
func (m *MockAuthProvider) SignIn(ctx context.Context, email, password string) (*domain.AuthIdentity, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthIdentity), args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Sign(userID, email, accountType string) (string, error) {
	args := m.Called(userID, email, accountType)
	return args.String(0), args.Error(1)
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

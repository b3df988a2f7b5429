package mocks

import (
	"context"

	"github.com/cradoe/safetrain/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepo) Insert(ctx context.Context, user *models.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepo) GetOne(ctx context.Context, id int64) (*models.User, bool, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Bool(1), args.Error(2)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Bool(1), args.Error(2)
}

func (m *MockUserRepo) UpdatePasswordByEmail(ctx context.Context, email, hashedPassword string) (bool, error) {
	args := m.Called(ctx, email, hashedPassword)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepo) CompleteTraining(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepo) AdvanceLevel(ctx context.Context, id, courseID int64) error {
	args := m.Called(ctx, id, courseID)
	return args.Error(0)
}

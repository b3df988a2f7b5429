package mocks

import (
	"context"

	"github.com/cradoe/safetrain/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockCourseRepo struct {
	mock.Mock
}

func (m *MockCourseRepo) GetAll(ctx context.Context) ([]models.Course, error) {
	args := m.Called(ctx)
	courses, _ := args.Get(0).([]models.Course)
	return courses, args.Error(1)
}

func (m *MockCourseRepo) GetQuestions(ctx context.Context, courseID int64) ([]models.Question, error) {
	args := m.Called(ctx, courseID)
	questions, _ := args.Get(0).([]models.Question)
	return questions, args.Error(1)
}

type MockProgressRepo struct {
	mock.Mock
}

func (m *MockProgressRepo) GetByUser(ctx context.Context, userID int64) ([]models.UserProgress, error) {
	args := m.Called(ctx, userID)
	progress, _ := args.Get(0).([]models.UserProgress)
	return progress, args.Error(1)
}

func (m *MockProgressRepo) Upsert(ctx context.Context, progress *models.UserProgress) (bool, error) {
	args := m.Called(ctx, progress)
	return args.Bool(0), args.Error(1)
}

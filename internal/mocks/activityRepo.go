package mocks

import (
	"context"

	"github.com/cradoe/safetrain/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockActivityRepo struct {
	mock.Mock
}

func (m *MockActivityRepo) Insert(ctx context.Context, log *models.ActivityLog) (*models.ActivityLog, error) {
	args := m.Called(ctx, log)
	entry, _ := args.Get(0).(*models.ActivityLog)
	return entry, args.Error(1)
}

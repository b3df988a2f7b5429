package mocks

import (
	"context"

	"github.com/cradoe/safetrain/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockKycRepo struct {
	mock.Mock
}

func (m *MockKycRepo) Submit(ctx context.Context, kyc *models.KYC) error {
	args := m.Called(ctx, kyc)
	return args.Error(0)
}

func (m *MockKycRepo) GetByAccountID(ctx context.Context, accountID int64) (*models.KYC, bool, error) {
	args := m.Called(ctx, accountID)
	kyc, _ := args.Get(0).(*models.KYC)
	return kyc, args.Bool(1), args.Error(2)
}

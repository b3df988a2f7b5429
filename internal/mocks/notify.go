package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockMailer records the templates each recipient was sent.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(recipient string, data any, patterns ...string) error {
	args := m.Called(recipient, data, patterns)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, key string, payload any) error {
	args := m.Called(ctx, topic, key, payload)
	return args.Error(0)
}

func (m *MockPublisher) Close() {}

type MockArchiver struct {
	mock.Mock
}

func (m *MockArchiver) Enabled() bool {
	return m.Called().Bool(0)
}

func (m *MockArchiver) UploadBytes(ctx context.Context, publicID string, data []byte) (string, error) {
	args := m.Called(ctx, publicID, data)
	return args.String(0), args.Error(1)
}

package errHandler

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(recipient string, data any, patterns ...string) error {
	args := m.Called(recipient, data, patterns)
	return args.Error(0)
}

func newTestHandler(email string, mailer *mockMailer) (*ErrorHandler, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	return New(email, "http://localhost:4444", mailer, logger), &buf
}

func TestServerError_HidesCauseFromClient(t *testing.T) {
	h, logs := newTestHandler("", nil)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/user/kyc_verification", nil)

	h.ServerError(rr, req, errors.New("kyc upsert failed: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "connection reset")
	assert.Contains(t, rr.Body.String(), "The server encountered a problem")
	assert.Contains(t, logs.String(), "kyc upsert failed: connection reset")
	assert.Contains(t, logs.String(), "/user/kyc_verification")
}

func TestReportServerError_MailsNotificationAddress(t *testing.T) {
	mailer := new(mockMailer)
	mailer.On("Send", "ops@example.com", mock.Anything, []string{"error-notification.tmpl"}).Return(nil)

	h, _ := newTestHandler("ops@example.com", mailer)

	h.ReportServerError(nil, errors.New("level advance failed"))

	mailer.AssertExpectations(t)
	data := mailer.Calls[0].Arguments.Get(1).(map[string]any)
	assert.Equal(t, "background", data["RequestMethod"])
}

func TestErrorStatuses(t *testing.T) {
	h, _ := newTestHandler("", nil)
	req := httptest.NewRequest(http.MethodPost, "/user/signup", nil)

	tests := []struct {
		name   string
		call   func(w http.ResponseWriter)
		status int
		body   string
	}{
		{"validation", func(w http.ResponseWriter) { h.FailedValidation(w, req, []string{"Email is required"}) }, http.StatusBadRequest, "Email is required"},
		{"bad request", func(w http.ResponseWriter) { h.BadRequest(w, req, errors.New("body must not be empty")) }, http.StatusBadRequest, "Body must not be empty"},
		{"conflict", func(w http.ResponseWriter) { h.Conflict(w, req, "Email already exists") }, http.StatusConflict, "Email already exists"},
		{"credentials", func(w http.ResponseWriter) { h.InvalidCredentials(w, req) }, http.StatusUnauthorized, "Invalid credentials"},
		{"not found", func(w http.ResponseWriter) { h.NotFoundWithMessage(w, req, "User not found") }, http.StatusNotFound, "User not found"},
		{"rate limit", func(w http.ResponseWriter) { h.RateLimitExceeded(w, req) }, http.StatusTooManyRequests, "Too many attempts"},
		{"method", func(w http.ResponseWriter) { h.MethodNotAllowed(w, req) }, http.StatusMethodNotAllowed, "The POST method"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			tt.call(rr)

			require.Equal(t, tt.status, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.body)
		})
	}
}

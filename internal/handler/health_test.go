package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cradoe/safetrain/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleHealthCheck(t *testing.T) {
	t.Run("available", func(t *testing.T) {
		h := NewHealthHandler(&HealthHandler{DB: mocks.NewMockDatabase(), ErrHandler: testErrHandler()})

		rr := httptest.NewRecorder()
		h.HandleHealthCheck(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, rr.Code)

		var body healthResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "available", body.Status)
	})

	t.Run("database down", func(t *testing.T) {
		db := mocks.NewMockDatabase()
		db.PingErr = errors.New("dial tcp: connection refused")
		h := NewHealthHandler(&HealthHandler{DB: db, ErrHandler: testErrHandler()})

		rr := httptest.NewRecorder()
		h.HandleHealthCheck(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Equal(t, "Database is unreachable", decodeEnvelope(t, rr).Message)
	})
}

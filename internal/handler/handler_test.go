package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/cradoe/safetrain/internal/cache"
	"github.com/cradoe/safetrain/internal/errHandler"
	"github.com/cradoe/safetrain/internal/helper"
	"github.com/cradoe/safetrain/internal/session"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "http://localhost:4444"

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testErrHandler() *errHandler.ErrorHandler {
	return errHandler.New("", testBaseURL, nil, testLogger())
}

func testHelper(wg *sync.WaitGroup) *helper.HelperRepository {
	return helper.New(testBaseURL, wg, nil)
}

func testSessions(store cache.Store) *session.Manager {
	return session.NewManager(store, session.Options{
		Secret: "test_secret",
		Issuer: testBaseURL,
		TTL:    time.Hour,
	})
}

func newJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeMessage reads the top-level message that confirmations and error envelopes both carry.
func decodeMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Message
}

// decodeEnvelope reads an error body.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.Equal(t, rr.Code, env.Status)
	return env
}

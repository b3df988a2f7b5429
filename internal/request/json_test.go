package request

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func newRequest(body string) (*httptest.ResponseRecorder, *http.Request) {
	return httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/user/login", strings.NewReader(body))
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: `{"email":"a@b.co","password":"secret"}`},
		{name: "unknown fields ignored", body: `{"email":"a@b.co","remember":true}`},
		{name: "empty body", body: ``, wantErr: "body must not be empty"},
		{name: "truncated", body: `{"email":"a@b.co"`, wantErr: "body contains badly-formed JSON"},
		{name: "syntax", body: `{"email" "a@b.co"}`, wantErr: "badly-formed JSON (at character"},
		{name: "wrong type", body: `{"email":42}`, wantErr: `incorrect JSON type for field "email"`},
		{name: "two values", body: `{"email":"a@b.co"}{"email":"c@d.co"}`, wantErr: "single JSON value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, r := newRequest(tt.body)

			var input loginInput
			err := DecodeJSON(w, r, &input)

			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "a@b.co", input.Email)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDecodeJSONStrict_RejectsUnknownFields(t *testing.T) {
	w, r := newRequest(`{"email":"a@b.co","remember":true}`)

	var input loginInput
	err := DecodeJSONStrict(w, r, &input)

	require.Error(t, err)
	assert.Equal(t, `body contains unknown key "remember"`, err.Error())
}

package file

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WithoutCredentialsIsDisabled(t *testing.T) {
	f, err := New("", "", "")
	require.NoError(t, err)
	assert.False(t, f.Enabled())

	_, err = f.UploadBytes(context.Background(), "kyc-1-id-photo", []byte("photo"))
	assert.ErrorIs(t, err, ErrUploaderDisabled)
}

func TestNew_WithCredentials(t *testing.T) {
	f, err := New("demo", "key", "secret")
	require.NoError(t, err)
	assert.True(t, f.Enabled())
}

package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetString(t *testing.T) {
	t.Setenv("SAFETRAIN_TEST_STRING", "value")

	assert.Equal(t, "value", GetString("SAFETRAIN_TEST_STRING", "fallback"))
	assert.Equal(t, "fallback", GetString("SAFETRAIN_TEST_STRING_MISSING", "fallback"))
}

func TestGetTypedValues(t *testing.T) {
	t.Setenv("SAFETRAIN_TEST_INT", "42")
	t.Setenv("SAFETRAIN_TEST_BOOL", "true")
	t.Setenv("SAFETRAIN_TEST_DURATION", "90s")
	t.Setenv("SAFETRAIN_TEST_FLOAT", "0.5")

	assert.Equal(t, 42, GetInt("SAFETRAIN_TEST_INT", 1))
	assert.True(t, GetBool("SAFETRAIN_TEST_BOOL", false))
	assert.Equal(t, 90*time.Second, GetDuration("SAFETRAIN_TEST_DURATION", time.Second))
	assert.InDelta(t, 0.5, GetFloat("SAFETRAIN_TEST_FLOAT", 2), 0.0001)

	assert.Equal(t, 7, GetInt("SAFETRAIN_TEST_INT_MISSING", 7))
}

func TestGetStrings(t *testing.T) {
	t.Setenv("SAFETRAIN_TEST_ORIGINS", "https://a.example, https://b.example,,")

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, GetStrings("SAFETRAIN_TEST_ORIGINS", nil))
	assert.Equal(t, []string{"*"}, GetStrings("SAFETRAIN_TEST_ORIGINS_MISSING", []string{"*"}))
}

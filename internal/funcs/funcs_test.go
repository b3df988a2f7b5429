package funcs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToTitle(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", toTitle("ada lovelace"))
	assert.Equal(t, "", toTitle(""))
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "document", pluralize(1, "document", "documents"))
	assert.Equal(t, "documents", pluralize(0, "document", "documents"))
	assert.Equal(t, "documents", pluralize(2, "document", "documents"))
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-09 14:05", formatTime("2006-01-02 15:04", ts))
}

func TestIncrDecr(t *testing.T) {
	assert.Equal(t, 4, incr(3))
	assert.Equal(t, 2, decr(3))
}

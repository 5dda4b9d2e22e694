package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindow_Tokens(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	cases := map[string]time.Duration{
		"1h":    time.Hour,
		"24h":   24 * time.Hour,
		"week":  7 * 24 * time.Hour,
		"month": 30 * 24 * time.Hour,
	}

	for token, d := range cases {
		cutoff, ok := ParseWindow(token, now)
		require.True(t, ok, token)
		require.NotNil(t, cutoff, token)
		assert.Equal(t, now.Add(-d), *cutoff, token)
	}
}

func TestParseWindow_EmptyAndUnknown(t *testing.T) {
	now := time.Now()

	cutoff, ok := ParseWindow("", now)
	assert.True(t, ok)
	assert.Nil(t, cutoff)

	_, ok = ParseWindow("fortnight", now)
	assert.False(t, ok)
}

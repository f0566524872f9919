package util

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"7d", 7 * 24 * time.Hour, false},
		{"1d", 24 * time.Hour, false},
		{"30m", 30 * time.Minute, false},
		{" 24h ", 24 * time.Hour, false},
		{"90", 90 * time.Second, false},
		{"", 0, true},
		{"xd", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDurationOr(t *testing.T) {
	assert.Equal(t, time.Minute, ParseDurationOr("bad", time.Minute))
	assert.Equal(t, time.Minute, ParseDurationOr("0", time.Minute))
	assert.Equal(t, 2*time.Hour, ParseDurationOr("2h", time.Minute))
}

func TestPasswordHash(t *testing.T) {
	hash, err := GeneratePasswordHash("secret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, "secret-pass", hash)
	assert.True(t, CheckPasswordHash(hash, "secret-pass"))
	assert.False(t, CheckPasswordHash(hash, "secret-pasS"))
}

func TestIsValidPassword(t *testing.T) {
	assert.False(t, IsValidPassword("12345"))
	assert.True(t, IsValidPassword("123456"))
	assert.False(t, IsValidPassword(strings.Repeat("a", 73)))
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "1m30s", FormatUptime(90*time.Second+400*time.Millisecond))
}

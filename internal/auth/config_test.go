package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLifetime(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"", 24 * time.Hour},
		{"1d", 24 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
		{"15m", 15 * time.Minute},
		{"3600", time.Hour},
	}
	for _, c := range cases {
		got, err := ParseLifetime(c.in, 24*time.Hour)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}

	for _, bad := range []string{"abc", "0", "-5", "xd", "-1h"} {
		_, err := ParseLifetime(bad, time.Hour)
		assert.Error(t, err, bad)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := ConfigFromEnv()
	assert.ErrorIs(t, err, ErrMissingSecret)

	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRES_IN", "2h")
	t.Setenv("REFRESH_TOKEN_DAYS", "14")
	t.Setenv("BCRYPT_SALT_ROUNDS", "")
	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), cfg.Secret)
	assert.Equal(t, 2*time.Hour, cfg.AccessTTL)
	assert.Equal(t, 14, cfg.RefreshDays)
	assert.Equal(t, 10, cfg.BcryptCost)
}

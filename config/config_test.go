package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseExpiry(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"7d", 7 * 24 * time.Hour, true},
		{" 1d ", 24 * time.Hour, true},
		{"12h", 12 * time.Hour, true},
		{"30m", 30 * time.Minute, true},
		{"0d", 0, false},
		{"-5m", 0, false},
		{"week", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseExpiry(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_EXPIRES_IN", "not-a-duration")
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co/")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service")
	t.Setenv("SUPABASE_KEY", "anon")
	t.Setenv("RATE_LIMIT_LOGIN_THRESHOLD", "x")

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, "https://abc.supabase.co", cfg.SupabaseUrl)
	assert.Equal(t, "service", cfg.SupabaseKey)
	assert.Equal(t, 10, cfg.RateLimitLoginThreshold)
}

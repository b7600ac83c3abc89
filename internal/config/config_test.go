package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 8*time.Second, cfg.NavStepPeriod)
	assert.Equal(t, 5*time.Second, cfg.VoiceStepPeriod)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5*time.Minute, cfg.WorkerInterval)
	assert.Equal(t, "ack", cfg.Notify.Channel)
	assert.Equal(t, "http://waha:3000", cfg.Notify.Waha.BaseURL)
	assert.False(t, cfg.Production())
}

func TestOverrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"PORT":            "9000",
		"ENV":             "production",
		"DATABASE_URL":    "sqlite://sakhi.db",
		"NAV_STEP_PERIOD": "2s",
		"NOTIFY_CHANNEL":  "whatsapp",
		"SMTP_HOST":       "smtp.example.com",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.Production())
	assert.Equal(t, "sqlite://sakhi.db", cfg.DatabaseURL)
	assert.Equal(t, 2*time.Second, cfg.NavStepPeriod)
	assert.Equal(t, "whatsapp", cfg.Notify.Channel)
	assert.Equal(t, "smtp.example.com", cfg.Notify.Email.Host)
}

func TestBadDuration(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unparsable", key: "SESSION_TTL", value: "soon"},
		{name: "zero", key: "VOICE_STEP_PERIOD", value: "0s"},
		{name: "negative", key: "WORKER_INTERVAL", value: "-1m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(envOf(map[string]string{tt.key: tt.value}))
			assert.ErrorContains(t, err, tt.key)
		})
	}
}

// Package config reads process settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"sakhigps/internal/services"
)

// Config holds every setting the binaries read
type Config struct {
	Port string
	Env  string

	DatabaseURL string
	RedisURL    string

	FirebaseCredentialsPath string
	FirebaseAPIKey          string
	FirebaseAuthDomain      string
	FirebaseProjectID       string

	NavStepPeriod   time.Duration
	VoiceStepPeriod time.Duration
	SessionTTL      time.Duration
	WorkerInterval  time.Duration

	Notify services.NotifierConfig
}

// Production reports whether cookies should be marked secure
func (c Config) Production() bool {
	return c.Env == "production"
}

// Load reads .env when present and then the process environment
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		Port:                    get("PORT", "8080"),
		Env:                     get("ENV", "development"),
		DatabaseURL:             getenv("DATABASE_URL"),
		RedisURL:                getenv("REDIS_URL"),
		FirebaseCredentialsPath: get("FIREBASE_CREDENTIALS_PATH", "./firebase-service-account.json"),
		FirebaseAPIKey:          getenv("FIREBASE_API_KEY"),
		FirebaseAuthDomain:      getenv("FIREBASE_AUTH_DOMAIN"),
		FirebaseProjectID:       getenv("FIREBASE_PROJECT_ID"),
		Notify: services.NotifierConfig{
			Channel: get("NOTIFY_CHANNEL", services.ChannelAck),
			Email: services.EmailConfig{
				Host:     getenv("SMTP_HOST"),
				Port:     getenv("SMTP_PORT"),
				User:     getenv("SMTP_USER"),
				Password: getenv("SMTP_PASS"),
				From:     getenv("EMAIL_FROM"),
			},
			Waha: services.WahaConfig{
				BaseURL:     get("WAHA_BASE_URL", "http://waha:3000"),
				APIKey:      getenv("WAHA_API_KEY"),
				Session:     get("WAHA_SESSION", "default"),
				CountryCode: getenv("WAHA_COUNTRY_CODE"),
			},
		},
	}

	durations := []struct {
		key      string
		fallback string
		dest     *time.Duration
	}{
		{"NAV_STEP_PERIOD", "8s", &cfg.NavStepPeriod},
		{"VOICE_STEP_PERIOD", "5s", &cfg.VoiceStepPeriod},
		{"SESSION_TTL", "2h", &cfg.SessionTTL},
		{"WORKER_INTERVAL", "5m", &cfg.WorkerInterval},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(get(d.key, d.fallback))
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", d.key, err)
		}
		if v <= 0 {
			return Config{}, fmt.Errorf("%s must be positive", d.key)
		}
		*d.dest = v
	}

	return cfg, nil
}

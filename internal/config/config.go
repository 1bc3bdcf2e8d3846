// Package config handles application configuration via environment variables.
package config

import (
	"log"
	"os"
	"time"
)

// Config holds all configurable values for the app.
type Config struct {
	Env  string
	Port string

	DatabaseURL string

	ResendAPIKey  string
	ResendBaseURL string
	EmailFrom     string

	HubSpotAPIKey  string
	HubSpotBaseURL string

	NotifyTimeout time.Duration
	SessionTTL    time.Duration

	AdminAPIToken string
}

// Load reads environment variables and populates a Config struct.
func Load() *Config {
	notifyTimeout, err := time.ParseDuration(getEnv("NOTIFY_TIMEOUT", "10s"))
	if err != nil {
		log.Panicf("Invalid NOTIFY_TIMEOUT: %v", err)
	}

	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "30m"))
	if err != nil {
		log.Panicf("Invalid SESSION_TTL: %v", err)
	}

	return &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DatabaseURL: getEnv("DATABASE_URL", "quotelinker.db"),

		ResendAPIKey:  os.Getenv("RESEND_API_KEY"),
		ResendBaseURL: getEnv("RESEND_BASE_URL", "https://api.resend.com"),
		EmailFrom:     getEnv("EMAIL_FROM", "quotes@quotelinker.com"),

		HubSpotAPIKey:  os.Getenv("HUBSPOT_API_KEY"),
		HubSpotBaseURL: getEnv("HUBSPOT_BASE_URL", "https://api.hubapi.com"),

		NotifyTimeout: notifyTimeout,
		SessionTTL:    sessionTTL,

		AdminAPIToken: os.Getenv("ADMIN_API_TOKEN"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

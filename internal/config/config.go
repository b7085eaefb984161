package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port                 string
	DatabaseURL          string
	BackendURL           string
	BackendTimeout       time.Duration
	SessionSecret        string
	SessionTTL           time.Duration
	SessionSweepInterval time.Duration
	SecureCookies        bool
	RateLimitPerMinute   int
	RateLimitBurst       int
	TrustedProxies       []string
	LogoutCountdown      int
}

func Load() Config {
	port := os.Getenv("PORTAL_PORT")
	if port == "" {
		port = "8080"
	}
	backendURL := os.Getenv("BACKEND_URL")
	if backendURL == "" {
		backendURL = "http://localhost:8081"
	}

	return Config{
		Port:                 port,
		DatabaseURL:          os.Getenv("DB_DSN"),
		BackendURL:           backendURL,
		BackendTimeout:       readDuration("BACKEND_TIMEOUT", 10*time.Second),
		SessionSecret:        os.Getenv("SESSION_SECRET"),
		SessionTTL:           readDuration("SESSION_TTL", 8*time.Hour),
		SessionSweepInterval: readDuration("SESSION_SWEEP_INTERVAL", 10*time.Minute),
		SecureCookies:        os.Getenv("SESSION_SECURE_COOKIES") == "true",
		RateLimitPerMinute:   readInt("PORTAL_RATE_LIMIT_PER_MIN", 30),
		RateLimitBurst:       readInt("PORTAL_RATE_LIMIT_BURST", 10),
		TrustedProxies:       readList("PORTAL_TRUSTED_PROXIES"),
		LogoutCountdown:      readInt("LOGOUT_COUNTDOWN_SECONDS", 5),
	}
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func readList(key string) []string {
	var values []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}

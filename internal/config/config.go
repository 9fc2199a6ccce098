package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Redis (optional; empty means in-memory storage)
	RedisURL string

	// Auth
	AdminPassword string
	JWTSecret     string
	SessionTTL    time.Duration

	// Outbound HTTP
	HTTPTimeout time.Duration

	// Cache
	CacheTTL time.Duration

	// Rate Limiting
	RateLimit      int
	RateLimitBurst int

	// Settings source tiers (optional dotenv file / settings JSON supplied
	// by an embedding integration)
	SettingsEnvFile string
	SettingsFile    string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "6767"),
		Env:  getEnv("ENV", "development"),

		RedisURL: getEnv("REDIS_URL", ""),

		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		JWTSecret:     getEnv("JWT_SECRET", "change-this-in-production"),
		SessionTTL:    getEnvAsDuration("SESSION_TTL", 7*24*time.Hour),

		HTTPTimeout: getEnvAsDuration("HTTP_TIMEOUT", 10*time.Second),

		CacheTTL: getEnvAsDuration("CACHE_TTL", 60*time.Second),

		RateLimit:      getEnvAsInt("RATE_LIMIT", 10),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 20),

		SettingsEnvFile: getEnv("SETTINGS_ENV_FILE", ""),
		SettingsFile:    getEnv("SETTINGS_FILE", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

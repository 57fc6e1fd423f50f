package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	JWTSecret           string
	JWTAccessExpiry     time.Duration
	JWTRefreshExpiry    time.Duration
	DBDriver            string
	DatabaseURL         string
	FirebaseCredentials string
	SweepInterval       time.Duration
	ArchiveRetention    time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	accessExpiry := 15 * time.Minute
	if exp := os.Getenv("JWT_ACCESS_EXPIRY"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			accessExpiry = parsed
		}
	}

	refreshExpiry := 720 * time.Hour // 30 days
	if exp := os.Getenv("JWT_REFRESH_EXPIRY"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			refreshExpiry = parsed
		}
	}

	sweepInterval := 5 * time.Minute
	if iv := os.Getenv("SWEEP_INTERVAL"); iv != "" {
		if parsed, err := time.ParseDuration(iv); err == nil && parsed > 0 {
			sweepInterval = parsed
		}
	}

	retention := 14 * 24 * time.Hour
	if rt := os.Getenv("ARCHIVE_RETENTION"); rt != "" {
		if parsed, err := time.ParseDuration(rt); err == nil && parsed > 0 {
			retention = parsed
		}
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		JWTSecret:           getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTAccessExpiry:     accessExpiry,
		JWTRefreshExpiry:    refreshExpiry,
		DBDriver:            getEnv("DB_DRIVER", "postgres"),
		DatabaseURL:         getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=chorehub port=5432 sslmode=disable"),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),
		SweepInterval:       sweepInterval,
		ArchiveRetention:    retention,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

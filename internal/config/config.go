package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	JWTTTL      time.Duration
	CORSOrigins string
	AlertCron   string // cron schedule for the inventory/health alert scan
	Environment string // "development" or "production"
}

func Load() *Config {
	// Missing .env files are fine, configuration may come from the
	// environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=poultry port=5432 sslmode=disable"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		JWTTTL:      time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		AlertCron:   getEnv("ALERT_CRON", "@hourly"),
		Environment: getEnv("APP_ENV", "development"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set, refusing to start")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters")
	}
	if cfg.Environment == "production" && cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=poultry port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN is using the default value in production")
	}

	return cfg
}

// Development reports whether the app runs in development mode. Error
// responses outside development suppress internal detail.
func (c *Config) Development() bool {
	return c.Environment != "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

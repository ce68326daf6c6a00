package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"insurance-service/internal/db"
	"insurance-service/internal/pkg/jwt"
)

type AppConfig struct {
	// Server
	HTTPAddr        string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string

	// Storage
	Postgres      db.PostgresConfig
	RunMigrations bool
	RedisAddr     string
	RedisPass     string
	RedisDB       int

	// JWT
	JWT jwt.Config

	// Agent account seeded on startup; empty email disables it.
	AgentEmail     string
	AgentPassword  string
	AgentFirstName string
	AgentLastName  string
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8000"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		AllowedOrigins:  getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),

		Postgres: db.PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			Database: getEnv("DB_NAME", "insurance_db"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 1)),
		},
		RunMigrations: strings.ToLower(getEnv("DB_RUN_MIGRATIONS", "true")) == "true",
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:     getEnv("REDIS_PASS", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		JWT: jwt.Config{
			PrivPath: getEnv("JWT_PRIVATE_KEY_PATH", "/app/secrets/jwt_private.pem"),
			PubPath:  getEnv("JWT_PUBLIC_KEY_PATH", "/app/secrets/jwt_public.pem"),
			Issuer:   getEnv("JWT_ISSUER", "insurance-service"),
			Audience: getEnv("JWT_AUDIENCE", "insurance-users"),
			TTL:      getEnvDuration("JWT_TTL", 12*time.Hour),
			KID:      getEnv("JWT_KID", "insurance-key"),
		},

		AgentEmail:     getEnv("BOOTSTRAP_AGENT_EMAIL", ""),
		AgentPassword:  getEnv("BOOTSTRAP_AGENT_PASSWORD", ""),
		AgentFirstName: getEnv("BOOTSTRAP_AGENT_FIRST_NAME", "Default"),
		AgentLastName:  getEnv("BOOTSTRAP_AGENT_LAST_NAME", "Agent"),
	}
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

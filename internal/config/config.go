// Package config provides configuration for the intake service.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service configuration, read once at startup.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// Generation service
	OllamaURL        string
	ModelName        string
	ModelTemperature float64
	LLMTimeout       time.Duration

	// CORS
	CORSOrigins []string

	// Logging
	Debug    bool
	LogLevel string
}

// Load loads configuration from the environment, with a best-effort .env
// file read first.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:         getEnvInt("HTTP_PORT", 8000),
		DatabaseURL:      getEnv("DATABASE_URL", "file:intake.db?cache=shared&mode=rwc"),
		OllamaURL:        getEnv("OLLAMA_URL", "http://localhost:11434"),
		ModelName:        getEnv("MODEL_NAME", "tinyllama"),
		ModelTemperature: getEnvFloat("MODEL_TEMPERATURE", 0.2),
		LLMTimeout:       time.Duration(getEnvInt("LLM_TIMEOUT_MS", 60000)) * time.Millisecond,
		CORSOrigins:      splitOrigins(getEnv("CORS_ORIGINS", "*")),
		Debug:            getEnvBool("DEBUG", false),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func splitOrigins(raw string) []string {
	if raw == "*" {
		return []string{"*"}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if floatVal, err := strconv.ParseFloat(val, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return strings.EqualFold(val, "true")
	}
	return defaultVal
}

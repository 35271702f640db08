package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if it exists (ignores error if not found)
	godotenv.Load()
}

type Config struct {
	Port          string
	APIBaseURL    string // backend REST API the panel is a client of
	DatabasePath  string // sqlite file holding the persisted session slot
	StagingPath   string // scratch dir for staged cover uploads + previews
	SessionSecret string // key material for sealing the token at rest
	MaxUploadSize int64
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8006"),
		APIBaseURL:    getEnv("API_BASE_URL", "http://localhost:8000"),
		DatabasePath:  getEnv("DATABASE_PATH", "./data/galleryadmin.db"),
		StagingPath:   getEnv("STAGING_PATH", "./data/staging"),
		SessionSecret: getEnv("SESSION_SECRET", "dev-only-secret"),
		MaxUploadSize: getEnvAsInt64("MAX_UPLOAD_SIZE", 25<<20), // 25MB default
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

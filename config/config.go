// Package config builds application configuration from the environment.
// main.go loads a .env file first, so local overrides work without exporting.
package config

import (
	"fmt"
	"os"
	"strconv"

	"promptforge/prompt/ingest"
)

// Config holds everything the application needs at startup.
type Config struct {
	GeminiAPIKey string
	GeminiModel  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// HistoryPath backs the file store used when RedisAddr is unset.
	HistoryPath string

	Limits ingest.Limits

	LogPath string
}

// FromEnv reads configuration from environment variables. The API key is the
// only required value.
func FromEnv() (Config, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return Config{}, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	limits := ingest.DefaultLimits()
	if v := getEnvInt("MAX_FILES", 0); v > 0 {
		limits.MaxFiles = v
	}
	if v := getEnvInt("MAX_FILE_SIZE_MB", 0); v > 0 {
		limits.MaxFileSize = int64(v) << 20
	}

	home, _ := os.UserHomeDir()

	return Config{
		GeminiAPIKey:  apiKey,
		GeminiModel:   os.Getenv("GEMINI_MODEL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		HistoryPath:   getEnvString("HISTORY_PATH", home+"/.promptforge"),
		Limits:        limits,
		LogPath:       getEnvString("LOG_PATH", ""),
	}, nil
}

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

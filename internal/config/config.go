package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string

	// RosterPath is the well-known roster file auto-loaded at startup.
	RosterPath     string
	ReportTitle    string
	MaxUploadBytes int64

	// UploadRate is the number of manual roster uploads allowed per IP per minute.
	UploadRate int

	// RedisURL backs the shared clipboard. Empty disables it.
	RedisURL     string
	ClipboardKey string
	ClipboardTTL time.Duration

	// AllowedOrigins controls HTTP CORS and WebSocket origin validation.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "pretty"),
		RosterPath:     getEnv("ROSTER_PATH", "humans.json"),
		ReportTitle:    getEnv("REPORT_TITLE", "ATTENDANCE REPORT"),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_SIZE_MB", 5)) * 1024 * 1024,
		UploadRate:     getEnvInt("UPLOAD_RATE_PER_MINUTE", 30),
		RedisURL:       getEnv("REDIS_URL", ""),
		ClipboardKey:   getEnv("CLIPBOARD_KEY", "rollcall:clipboard"),
		ClipboardTTL:   time.Duration(getEnvInt("CLIPBOARD_TTL_SECONDS", 3600)) * time.Second,
		AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

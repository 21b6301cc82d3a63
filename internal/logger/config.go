package logger

import (
	"io"
	"os"
	"strconv"
)

// EnvConfig holds the env-driven logger settings, including file rotation
// for deployed environments.
type EnvConfig struct {
	Level       string
	Format      string
	Output      io.Writer // overrides file/stdout wiring when set
	ServiceName string

	Environment string // local, dev, prod

	LogFile     string
	LogFileOnly bool // skip stdout when logging to a file

	MaxSize    int // MB before rotation
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// LoadFromEnv reads logger settings from environment variables, with
// defaults suitable for local development.
func LoadFromEnv() *EnvConfig {
	return &EnvConfig{
		Level:       envString("LOG_LEVEL", "info"),
		Format:      envString("LOG_FORMAT", "json"),
		ServiceName: envString("SERVICE_NAME", "dentalcare"),
		Environment: envString("APP_ENV", "local"),

		LogFile:     envString("LOG_FILE", "/var/log/dentalcare/app.log"),
		LogFileOnly: envBool("LOG_FILE_ONLY", false),

		MaxSize:    envInt("LOG_MAX_SIZE", 100),
		MaxBackups: envInt("LOG_MAX_BACKUPS", 7),
		MaxAge:     envInt("LOG_MAX_AGE", 30),
		Compress:   envBool("LOG_COMPRESS", true),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

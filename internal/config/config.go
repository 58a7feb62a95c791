package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mangaview/mangaview/internal/constants"
)

// Config holds all application configuration
type Config struct {
	Port            string
	DBPath          string
	CatalogURL      string
	UploadsURL      string
	CatalogMock     bool
	CacheClear      bool
	DefaultLanguage string
	DefaultR18      bool
	CacheTTL        time.Duration
	RequestGap      time.Duration
	CommentLimit    int
	CommentWindow   time.Duration
	LogLevel        string
	LogFormat       string
}

// Load reads an optional .env file, then builds the configuration from
// environment variables with defaults. Variables already set in the
// environment win over the file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", constants.DefaultPort),
		DBPath:          getEnv("DB_PATH", constants.DefaultDBPath),
		CatalogURL:      getEnv("CATALOG_URL", constants.DefaultCatalogURL),
		UploadsURL:      getEnv("UPLOADS_URL", constants.DefaultUploadsURL),
		CatalogMock:     getEnvBool("CATALOG_MOCK", false),
		CacheClear:      getEnvBool("CACHE_CLEAR", false),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", constants.DefaultLanguage),
		DefaultR18:      getEnvBool("DEFAULT_R18", false),
		CacheTTL:        getEnvDuration("CACHE_TTL", constants.DefaultCacheTTL),
		RequestGap:      getEnvDuration("CATALOG_REQUEST_GAP", constants.DefaultRequestGap),
		CommentLimit:    getEnvInt("COMMENT_RATE_LIMIT", constants.DefaultCommentLimit),
		CommentWindow:   getEnvDuration("COMMENT_RATE_WINDOW", constants.DefaultCommentEvery),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
	}
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	// Validate Port
	if c.Port == "" {
		errors = append(errors, "PORT cannot be empty")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("PORT must be a valid number, got: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("PORT must be between 1 and 65535, got: %d", port))
		}
	}

	if c.DBPath == "" {
		errors = append(errors, "DB_PATH cannot be empty")
	}

	for name, raw := range map[string]string{"CATALOG_URL": c.CatalogURL, "UPLOADS_URL": c.UploadsURL} {
		if raw == "" {
			errors = append(errors, fmt.Sprintf("%s cannot be empty", name))
			continue
		}
		if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
			errors = append(errors, fmt.Sprintf("%s is not a valid URL: %s", name, raw))
		}
	}

	if c.DefaultLanguage == "" {
		errors = append(errors, "DEFAULT_LANGUAGE cannot be empty")
	} else if !slices.Contains(constants.SupportedLanguages, c.DefaultLanguage) {
		errors = append(errors, fmt.Sprintf("DEFAULT_LANGUAGE must be one of: %s, got: %s",
			strings.Join(constants.SupportedLanguages, ", "), c.DefaultLanguage))
	}

	if c.CacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("CACHE_TTL cannot be negative, got: %s", c.CacheTTL))
	}

	if c.CommentLimit < 1 {
		errors = append(errors, fmt.Sprintf("COMMENT_RATE_LIMIT must be at least 1, got: %d", c.CommentLimit))
	}
	if c.CommentWindow <= 0 {
		errors = append(errors, fmt.Sprintf("COMMENT_RATE_WINDOW must be positive, got: %s", c.CommentWindow))
	}

	// Validate LogLevel
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", c.LogLevel))
	}

	// Validate LogFormat
	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.LogFormat] {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

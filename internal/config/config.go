package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Site identity used for canonical URLs and metadata
	Site SiteConfig

	// Admin authentication configuration
	Auth AuthConfig

	// Media upload configuration
	Upload UploadConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// SiteConfig holds the public identity of the site
type SiteConfig struct {
	Name        string
	Origin      string // canonical origin, e.g. https://example.com, no trailing slash
	Description string
	TwitterUser string
}

// AuthConfig holds admin account and session settings
type AuthConfig struct {
	SessionTTL time.Duration
	BcryptCost int
	CookieName string
	// AdminEmail/AdminPassword provision the bootstrap admin account at
	// startup. An empty pair skips provisioning.
	AdminEmail    string
	AdminPassword string
}

// UploadConfig holds media upload settings
type UploadConfig struct {
	Dir           string
	MaxImageSize  int64 // in bytes
	MaxVideoSize  int64 // in bytes
	ImageMIMEs    []string
	VideoMIMEs    []string
	PublicBaseURL string // URL prefix stored objects are served under
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Name:         getEnv("DB_NAME", "brand_site"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Site: SiteConfig{
			Name:        getEnv("SITE_NAME", "The Brand"),
			Origin:      strings.TrimRight(getEnv("SITE_ORIGIN", "https://example.com"), "/"),
			Description: getEnv("SITE_DESCRIPTION", "Articles, news and podcast episodes"),
			TwitterUser: getEnv("SITE_TWITTER_USER", ""),
		},
		Auth: AuthConfig{
			SessionTTL:    getDurationEnv("AUTH_SESSION_TTL", 24*time.Hour),
			BcryptCost:    getIntEnv("AUTH_BCRYPT_COST", 10),
			CookieName:    getEnv("AUTH_COOKIE_NAME", "admin_session"),
			AdminEmail:    getEnv("ADMIN_EMAIL", ""),
			AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		},
		Upload: UploadConfig{
			Dir:           getEnv("UPLOAD_DIR", "./data/uploads"),
			MaxImageSize:  getInt64Env("MAX_IMAGE_SIZE", 5*1024*1024),
			MaxVideoSize:  getInt64Env("MAX_VIDEO_SIZE", 200*1024*1024),
			ImageMIMEs:    getListEnv("UPLOAD_IMAGE_MIMES", []string{"image/jpeg", "image/png", "image/webp", "image/gif"}),
			VideoMIMEs:    getListEnv("UPLOAD_VIDEO_MIMES", []string{"video/mp4", "video/webm", "video/quicktime"}),
			PublicBaseURL: getEnv("UPLOAD_PUBLIC_BASE_URL", "/uploads"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if !strings.HasPrefix(c.Site.Origin, "http") {
		return fmt.Errorf("SITE_ORIGIN must be an absolute http(s) URL, got %q", c.Site.Origin)
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("AUTH_SESSION_TTL must be positive")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds every runtime setting of the service.
type Config struct {
	Port string

	DatabaseDriver     string // "postgres" | "sqlite"
	DatabaseURL        string
	DatabaseReplicaURL string

	SessionSecret string

	MediaBackend   string // "local" | "minio"
	MediaDir       string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	RedisURL     string
	FeedCacheTTL time.Duration

	LogLevel string
	LogFile  string

	MaxUploadMB int64

	AdminPassword     string
	AdminUsernames    []string
	ReconcileSchedule string

	SecureCookies bool
}

// Load reads a .env file when one exists and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Port:               getEnv("PORT", "5001"),
		DatabaseDriver:     getEnv("DATABASE_DRIVER", "sqlite"),
		DatabaseURL:        getEnv("DATABASE_URL", "./reels.db"),
		DatabaseReplicaURL: os.Getenv("DATABASE_REPLICA_URL"),
		SessionSecret:      getEnv("SESSION_SECRET", "dev-secret-key"),
		MediaBackend:       getEnv("MEDIA_BACKEND", "local"),
		MediaDir:           getEnv("MEDIA_DIR", "videos"),
		MinioEndpoint:      getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:     os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:     os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:        getEnv("MINIO_BUCKET", "videos"),
		RedisURL:           os.Getenv("REDIS_URL"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFile:            os.Getenv("LOG_FILE"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
		ReconcileSchedule:  getEnv("RECONCILE_SCHEDULE", "@every 1h"),
	}

	var err error
	if cfg.MinioUseSSL, err = getBool("MINIO_USE_SSL", false); err != nil {
		return nil, err
	}
	if cfg.FeedCacheTTL, err = getDuration("FEED_CACHE_TTL", 0); err != nil {
		return nil, err
	}
	if cfg.MaxUploadMB, err = getInt("MAX_UPLOAD_MB", 100); err != nil {
		return nil, err
	}
	if cfg.SecureCookies, err = getBool("SECURE_COOKIES", false); err != nil {
		return nil, err
	}
	for _, name := range strings.Split(getEnv("ADMIN_USERNAMES", "admin"), ",") {
		if name = strings.TrimSpace(name); name != "" {
			cfg.AdminUsernames = append(cfg.AdminUsernames, name)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("invalid DATABASE_DRIVER %q: must be postgres or sqlite", c.DatabaseDriver)
	}
	switch c.MediaBackend {
	case "local", "minio":
	default:
		return fmt.Errorf("invalid MEDIA_BACKEND %q: must be local or minio", c.MediaBackend)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

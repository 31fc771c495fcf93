package config

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	ArchiveNone     = ""
	ArchivePostgres = "postgres"
	ArchiveSQLite   = "sqlite"
)

const defaultViewTokenSecret = "change-this-view-token-secret"

type Config struct {
	Port           string   `env:"PORT" envDefault:"8080"`
	FrontendURL    string   `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// Result archive
	ArchiveDriver        string        `env:"ARCHIVE_DRIVER"`
	DatabaseURL          string        `env:"DATABASE_URL"`
	DBMaxOpenConns       int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns       int           `env:"DB_MAX_IDLE_CONNS" envDefault:"25"`
	DBConnMaxLifetime    time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	ArchiveRetentionDays int           `env:"ARCHIVE_RETENTION_DAYS" envDefault:"30"`

	// Snapshot cache
	RedisURL      string        `env:"REDIS_URL"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	SnapshotTTL   time.Duration `env:"SNAPSHOT_TTL" envDefault:"1h"`

	// View tokens
	ViewTokenSecret string        `env:"VIEW_TOKEN_SECRET" envDefault:"change-this-view-token-secret"`
	ViewTokenTTL    time.Duration `env:"VIEW_TOKEN_TTL" envDefault:"24h"`

	// Session housekeeping
	SessionIdleTimeout       time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`
	FinishedSessionRetention time.Duration `env:"FINISHED_SESSION_RETENTION" envDefault:"10m"`
	CleanupInterval          time.Duration `env:"CLEANUP_INTERVAL" envDefault:"5m"`
}

// LoadDotEnv loads the first .env file found among paths. Missing files are
// not an error.
func LoadDotEnv(paths ...string) {
	for _, path := range paths {
		if err := godotenv.Load(path); err == nil {
			log.Printf("[CONFIG] Loaded environment from %s", path)
			return
		}
	}
	log.Println("[CONFIG] No .env file found, using environment variables")
}

// LoadConfig parses the server configuration from the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.ViewTokenSecret == defaultViewTokenSecret {
		log.Println("[CONFIG] Warning: VIEW_TOKEN_SECRET is not set, using the built-in default. View tokens can be forged.")
	}

	cfg.ArchiveDriver = strings.ToLower(strings.TrimSpace(cfg.ArchiveDriver))
	switch cfg.ArchiveDriver {
	case ArchiveNone, ArchivePostgres, ArchiveSQLite:
	default:
		return nil, fmt.Errorf("unsupported ARCHIVE_DRIVER %q", cfg.ArchiveDriver)
	}
	if cfg.ArchiveDriver != ArchiveNone && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when ARCHIVE_DRIVER=%s", cfg.ArchiveDriver)
	}
	if cfg.ArchiveDriver == ArchivePostgres {
		cfg.DatabaseURL = withDefaultSSLMode(cfg.DatabaseURL)
	}

	// Frontend URL + localhost + CSV values
	origins := []string{cfg.FrontendURL}
	for _, origin := range cfg.AllowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" && trimmed != cfg.FrontendURL {
			origins = append(origins, trimmed)
		}
	}
	cfg.AllowedOrigins = origins

	return cfg, nil
}

// withDefaultSSLMode appends sslmode=disable to postgres URLs that do not set
// one, which lib/pq otherwise defaults to "require".
func withDefaultSSLMode(dbURL string) string {
	u, err := url.Parse(dbURL)
	if err != nil || u.Scheme == "" {
		return dbURL
	}

	q := u.Query()
	if q.Get("sslmode") == "" {
		q.Set("sslmode", "disable")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

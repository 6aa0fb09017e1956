// Package config loads the process configuration from the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret    string        `env:"JWT_SECRET, required"`
	TokenTTL     time.Duration `env:"TOKEN_TTL, default=24h"`
	CookieSecure bool          `env:"COOKIE_SECURE, default=false"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=http://localhost:5173"`
	MediaBucket        string   `env:"MEDIA_BUCKET, default=media"`

	Mongo     MongoConfig
	Redis     RedisConfig
	JobFeed   JobFeedConfig
	RateLimit RateLimitConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, required"`
	Database string `env:"MONGO_DB,  default=jobportal"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// JobFeedConfig points at the RapidAPI job-search endpoint.
type JobFeedConfig struct {
	APIKey         string        `env:"RAPIDAPI_KEY, required"`
	BaseURL        string        `env:"JOB_FEED_BASE_URL, default=https://linkedin-jobs-api2.p.rapidapi.com"`
	Host           string        `env:"JOB_FEED_HOST, default=linkedin-jobs-api2.p.rapidapi.com"`
	Path           string        `env:"JOB_FEED_PATH, default=/active-jb-24h"`
	TitleFilter    string        `env:"JOB_FEED_TITLE_FILTER, default=Data Engineer"`
	LocationFilter string        `env:"JOB_FEED_LOCATION_FILTER, default=United States"`
	Timeout        time.Duration `env:"JOB_FEED_TIMEOUT, default=30s"`
	// Schedule is a cron spec such as "@every 24h". Empty disables
	// background ingestion.
	Schedule string        `env:"JOB_FEED_SCHEDULE"`
	LockTTL  time.Duration `env:"JOB_FEED_LOCK_TTL, default=5m"`
}

// RateLimitConfig applies to the public auth and ingest routes.
type RateLimitConfig struct {
	Requests int           `env:"RATE_LIMIT_REQUESTS, default=20"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW, default=1m"`
}

// Load reads an optional .env file, then the environment. The result is
// validated before it is returned.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith processes the configuration from an arbitrary lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Port) == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if c.JobFeed.Timeout <= 0 {
		errs = append(errs, errors.New("JOB_FEED_TIMEOUT must be positive"))
	}
	if c.RateLimit.Requests < 0 || c.RateLimit.Window < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must not be negative"))
	}
	if c.JobFeed.Schedule != "" {
		if _, err := cron.ParseStandard(c.JobFeed.Schedule); err != nil {
			errs = append(errs, fmt.Errorf("JOB_FEED_SCHEDULE: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

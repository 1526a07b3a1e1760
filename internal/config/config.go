package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(NewConfig),
)

// Config holds all application configuration
type Config struct {
	// Server settings
	ServerPort    int      `env:"SERVER_PORT" envDefault:"3000"`
	ServerAddress string   `env:"SERVER_ADDRESS" envDefault:"0.0.0.0"`
	Environment   string   `env:"GO_ENV" envDefault:"development"`
	Debug         bool     `env:"DEBUG" envDefault:"false"`
	LogLevel      string   `env:"LOG_LEVEL" envDefault:"info"`
	CORSOrigins   []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`

	Database DatabaseConfig
	Auth     AuthConfig
	Cache    CacheConfig
	Import   ImportConfig
	Admin    AdminConfig

	// Server timeouts
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	// URL overrides the individual POSTGRES_* parts when set.
	URL          string        `env:"DATABASE_URL"`
	Host         string        `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port         int           `env:"POSTGRES_PORT" envDefault:"5432"`
	User         string        `env:"POSTGRES_USER" envDefault:"phimmoi"`
	Password     string        `env:"POSTGRES_PASSWORD" envDefault:""`
	Database     string        `env:"POSTGRES_DB" envDefault:"phimmoi"`
	SSLMode      string        `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	MaxIdleTime  time.Duration `env:"DB_MAX_IDLE_TIME" envDefault:"5m"`
	QueryDebug   bool          `env:"DB_QUERY_DEBUG" envDefault:"false"`
}

// DSN returns the PostgreSQL connection string
func (d *DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Database,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

// AuthConfig holds token and password hashing settings
type AuthConfig struct {
	JWTSecret    string        `env:"JWT_SECRET"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN" envDefault:"168h"`
	BcryptCost   int           `env:"BCRYPT_COST" envDefault:"10"`
	// Login attempts per client IP per minute; 0 disables the throttle.
	LoginRatePerMinute int `env:"LOGIN_RATE_PER_MINUTE" envDefault:"20"`
}

// CacheConfig holds the optional Redis cache settings
type CacheConfig struct {
	RedisURL string        `env:"REDIS_URL"`
	TTL      time.Duration `env:"CACHE_TTL" envDefault:"5m"`
}

// IsEnabled returns true if a Redis URL is configured
func (c *CacheConfig) IsEnabled() bool {
	return c.RedisURL != ""
}

// ImportConfig holds bulk import settings shared by the CLI and the scheduler
type ImportConfig struct {
	Dir           string        `env:"IMPORT_DIR" envDefault:"data"`
	FilePattern   string        `env:"IMPORT_FILE_PATTERN" envDefault:"movie_details_%d.json"`
	FirstFile     int           `env:"IMPORT_FIRST_FILE" envDefault:"1"`
	LastFile      int           `env:"IMPORT_LAST_FILE" envDefault:"114"`
	BatchSize     int           `env:"IMPORT_BATCH_SIZE" envDefault:"10"`
	ProgressEvery int           `env:"IMPORT_PROGRESS_EVERY" envDefault:"10"`
	MovieTimeout  time.Duration `env:"IMPORT_MOVIE_TIMEOUT" envDefault:"2m"`
	// Schedule is a cron expression (with seconds). Empty disables scheduled imports.
	Schedule string `env:"IMPORT_SCHEDULE"`
}

// AdminConfig holds the bootstrap admin account. Bootstrap is skipped when
// Email or Password is empty.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
	Name     string `env:"ADMIN_NAME" envDefault:"Admin"`
}

// IsConfigured returns true if both email and password are set
func (a *AdminConfig) IsConfigured() bool {
	return a.Email != "" && a.Password != ""
}

// IsProduction returns true when GO_ENV=production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Validate checks settings that have no safe default.
func (c *Config) Validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.Auth.BcryptCost))
	}
	if c.Import.BatchSize < 1 {
		errs = append(errs, fmt.Errorf("IMPORT_BATCH_SIZE must be positive, got %d", c.Import.BatchSize))
	}
	return errors.Join(errs...)
}

// Load parses the environment without validation or logging. CLIs that do
// not need every setting use it directly.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// NewConfig loads configuration from environment variables
func NewConfig(log *slog.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log.Info("configuration loaded",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.ServerPort),
		slog.String("db_host", cfg.Database.Host),
		slog.Bool("cache_enabled", cfg.Cache.IsEnabled()),
	)

	return cfg, nil
}

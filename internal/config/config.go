package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Supported store drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

const defaultMongoDatabase = "ecommerce"

// Config holds all application configuration.
type Config struct {
	Environment Environment `env:"APP_ENV" envDefault:"development"`
	Server      ServerConfig
	Database    DatabaseConfig
	Logger      LoggerConfig
	CORS        CORSConfig
	Events      EventsConfig
	Seed        SeedConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"PORT" envDefault:"3000"`
}

// DatabaseConfig selects the store and holds its connection settings.
type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER" envDefault:"mongo"`

	MongoURI      string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017/ecommerce"`
	MongoDatabase string `env:"MONGODB_DATABASE"`

	Host            string `env:"DB_HOST" envDefault:"localhost"`
	Port            int    `env:"DB_PORT" envDefault:"5432"`
	User            string `env:"DB_USER" envDefault:"postgres"`
	Password        string `env:"DB_PASSWORD"`
	Name            string `env:"DB_NAME" envDefault:"catalog"`
	MaxConnections  int    `env:"DB_MAX_CONNECTIONS" envDefault:"25"`
	MinConnections  int    `env:"DB_MIN_CONNECTIONS" envDefault:"5"`
	MaxConnLifetime int    `env:"DB_MAX_CONN_LIFETIME" envDefault:"300"` // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"` // "json" or "console"
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	FrontendURL string `env:"FRONTEND_URL"`
	DevOrigin   string `env:"DEV_ORIGIN" envDefault:"http://localhost:5173"`
}

// EventsConfig configures rating-updated event publishing.
type EventsConfig struct {
	Brokers     []string `env:"KAFKA_BROKERS" envSeparator:","`
	RatingTopic string   `env:"KAFKA_RATING_TOPIC" envDefault:"catalog.product.rating-updated"`
}

// SeedConfig configures the optional catalog seed file, read from S3 with a
// local file system fallback.
type SeedConfig struct {
	File      string `env:"CATALOG_SEED_FILE"`
	S3Enabled bool   `env:"S3_ENABLED" envDefault:"false"`
	S3Bucket  string `env:"S3_BUCKET"`
	S3Region  string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Prefix  string `env:"S3_PREFIX" envDefault:"catalog/"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// IsProduction reports whether the API runs in production.
func (c *Config) IsProduction() bool {
	return c.Environment.IsProduction()
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !c.Environment.valid() {
		return fmt.Errorf("invalid environment: %s (must be development, test, or production)", c.Environment)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if err := c.Database.validate(); err != nil {
		return err
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.IsProduction() && c.CORS.FrontendURL == "" {
		return fmt.Errorf("FRONTEND_URL is required in production")
	}

	if c.Events.Enabled() && c.Events.RatingTopic == "" {
		return fmt.Errorf("Kafka rating topic is required when brokers are configured")
	}

	if c.Seed.S3Enabled {
		if c.Seed.S3Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.Seed.S3Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	return nil
}

func (c *DatabaseConfig) validate() error {
	switch c.Driver {
	case DriverMemory:
		return nil
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MongoDB URI is required when the driver is mongo")
		}
		return nil
	case DriverPostgres:
	default:
		return fmt.Errorf("invalid database driver: %s (must be mongo, postgres, or memory)", c.Driver)
	}

	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Name == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// MongoDatabaseName returns MONGODB_DATABASE, else the database named in
// the URI path, else "ecommerce".
func (c *DatabaseConfig) MongoDatabaseName() string {
	if c.MongoDatabase != "" {
		return c.MongoDatabase
	}
	if u, err := url.Parse(c.MongoURI); err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return defaultMongoDatabase
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AllowedOrigins returns the CORS allow-list for the environment.
func (c *CORSConfig) AllowedOrigins(production bool) []string {
	if production {
		return []string{c.FrontendURL}
	}
	return []string{c.DevOrigin}
}

// Enabled reports whether any Kafka broker is configured.
func (c *EventsConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

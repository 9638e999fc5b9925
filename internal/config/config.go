package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	S3        S3Config
	Kafka     KafkaConfig
	Orders    OrderConfig
	PriceFeed PriceFeedConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string `envconfig:"DB_HOST" default:"localhost"`
	Port            int    `envconfig:"DB_PORT" default:"5432"`
	User            string `envconfig:"DB_USER" default:"postgres"`
	Password        string `envconfig:"DB_PASSWORD"`
	Database        string `envconfig:"DB_NAME" default:"storefront"`
	MaxConnections  int    `envconfig:"DB_MAX_CONNECTIONS" default:"25"`
	MinConnections  int    `envconfig:"DB_MIN_CONNECTIONS" default:"5"`
	MaxConnLifetime int    `envconfig:"DB_MAX_CONN_LIFETIME" default:"300"` // seconds
	AutoMigrate     bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"` // "json" or "console"
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	APIKey string `envconfig:"API_KEY"`
}

// S3Config holds AWS S3 configuration for price feed files.
type S3Config struct {
	Enabled bool   `envconfig:"S3_ENABLED" default:"false"`
	Bucket  string `envconfig:"S3_BUCKET"`
	Region  string `envconfig:"S3_REGION" default:"us-east-1"`
	Prefix  string `envconfig:"S3_PREFIX" default:"pricefeeds/"` // Path prefix within bucket
}

// KafkaConfig holds the change event publisher configuration.
type KafkaConfig struct {
	Enabled      bool          `envconfig:"KAFKA_ENABLED" default:"false"`
	Brokers      []string      `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	Topic        string        `envconfig:"KAFKA_TOPIC" default:"storefront.pricing"`
	WriteTimeout time.Duration `envconfig:"KAFKA_WRITE_TIMEOUT" default:"5s"`
}

// OrderConfig holds order numbering configuration.
type OrderConfig struct {
	NumberOffset int64 `envconfig:"ORDER_NUMBER_OFFSET" default:"12345"`
}

// PriceFeedConfig lists the reprice/restock files imported by cmd/pricefeed.
type PriceFeedConfig struct {
	Files []string `envconfig:"PRICEFEED_FILES" default:"data/pricefeed/feed.csv.gz"`
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first when present; real variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	checks := []func() error{
		c.Server.validate,
		c.Database.validate,
		c.Auth.validate,
		c.Logger.validate,
		c.S3.validate,
		c.Kafka.validate,
		c.Orders.validate,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func validPort(p int) bool { return p >= 1 && p <= 65535 }

func (c *ServerConfig) validate() error {
	if !validPort(c.Port) {
		return fmt.Errorf("invalid server port: %d", c.Port)
	}
	return nil
}

func (c *DatabaseConfig) validate() error {
	switch {
	case c.Host == "":
		return errors.New("database host is required")
	case !validPort(c.Port):
		return fmt.Errorf("invalid database port: %d", c.Port)
	case c.User == "":
		return errors.New("database user is required")
	case c.Database == "":
		return errors.New("database name is required")
	case c.MaxConnections < 1:
		return errors.New("database max connections must be at least 1")
	case c.MinConnections < 1:
		return errors.New("database min connections must be at least 1")
	case c.MinConnections > c.MaxConnections:
		return errors.New("database min connections cannot exceed max connections")
	}
	return nil
}

func (c *AuthConfig) validate() error {
	if c.APIKey == "" {
		return errors.New("API key is required")
	}
	return nil
}

func (c *LoggerConfig) validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Format)
	}
	return nil
}

// S3 settings only matter to the price feed importer.
func (c *S3Config) validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Bucket == "" {
		return errors.New("S3 bucket is required when S3 is enabled")
	}
	if c.Region == "" {
		return errors.New("S3 region is required when S3 is enabled")
	}
	return nil
}

func (c *KafkaConfig) validate() error {
	if !c.Enabled {
		return nil
	}
	if len(c.Brokers) == 0 {
		return errors.New("kafka brokers are required when kafka is enabled")
	}
	if c.Topic == "" {
		return errors.New("kafka topic is required when kafka is enabled")
	}
	return nil
}

func (c *OrderConfig) validate() error {
	if c.NumberOffset < 0 {
		return errors.New("order number offset cannot be negative")
	}
	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the application's configuration values.
// Tags like `envconfig:"APP_PORT"` specify the environment variable name.
// `default:""` provides a default value if the env var is not set.
// `required:"true"` makes an environment variable mandatory.
type Config struct {
	AppEnv     string `envconfig:"APP_ENV" default:"development"` // e.g., development, staging, production
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`      // e.g., debug, info, warn, error
	HttpServer ServerConfig
	GrpcServer GrpcServerConfig
	Postgres   PostgresConfig
	S3         S3Config
	Listing    ListingConfig
}

// ServerConfig holds HTTP server-specific configurations.
type ServerConfig struct {
	Port         string        `envconfig:"HTTP_SERVER_PORT" default:"8080"`
	TimeoutRead  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_READ" default:"15s"`
	TimeoutWrite time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_WRITE" default:"15s"`
	TimeoutIdle  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_IDLE" default:"60s"`
}

// GrpcServerConfig holds gRPC server-specific configurations.
type GrpcServerConfig struct {
	Port string `envconfig:"GRPC_SERVER_PORT" default:"9090"`
}

// PostgresConfig holds PostgreSQL database connection details.
type PostgresConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" required:"true"`
	Port     string `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" required:"true"`
	Password string `envconfig:"POSTGRES_PASSWORD" required:"true"`
	DBName   string `envconfig:"POSTGRES_DBNAME" required:"true"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"POSTGRES_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"POSTGRES_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"POSTGRES_CONN_MAX_LIFETIME" default:"5m"`
}

// S3Config holds the image bucket settings. An empty endpoint disables
// presigning and image references are served as stored.
type S3Config struct {
	Endpoint        string        `envconfig:"S3_ENDPOINT"`
	Region          string        `envconfig:"S3_REGION" default:"us-east-1"`
	AccessKeyID     string        `envconfig:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string        `envconfig:"S3_SECRET_ACCESS_KEY"`
	Bucket          string        `envconfig:"S3_BUCKET" default:"bitary-images"`
	UseSSL          bool          `envconfig:"S3_USE_SSL" default:"true"`
	PresignExpiry   time.Duration `envconfig:"S3_PRESIGN_EXPIRY" default:"1h"`
}

// ListingConfig tunes the shop and clinics listing pipelines.
type ListingConfig struct {
	ShopPageSize      int     `envconfig:"LISTING_SHOP_PAGE_SIZE" default:"10"`
	PremiumThreshold  float64 `envconfig:"LISTING_PREMIUM_THRESHOLD" default:"4.5"`
	Collation         string  `envconfig:"LISTING_COLLATION" default:"en"`
	ActiveClinicsOnly bool    `envconfig:"LISTING_ACTIVE_CLINICS_ONLY" default:"false"`
}

// DSN constructs the Data Source Name string for connecting to PostgreSQL.
func (pc *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		pc.Host, pc.Port, pc.User, pc.Password, pc.DBName, pc.SSLMode)
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.AppEnv {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("invalid APP_ENV: %s", c.AppEnv)
	}
	if c.Listing.ShopPageSize <= 0 {
		return fmt.Errorf("invalid LISTING_SHOP_PAGE_SIZE: %d", c.Listing.ShopPageSize)
	}
	if c.Listing.PremiumThreshold < 0 || c.Listing.PremiumThreshold > 5 {
		return fmt.Errorf("invalid LISTING_PREMIUM_THRESHOLD: %v", c.Listing.PremiumThreshold)
	}
	return nil
}

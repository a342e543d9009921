package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type Config struct {
	HTTPPort        string        `envconfig:"HTTP_PORT"        default:":8080"`
	GrpcPort        string        `envconfig:"GRPC_PORT"        default:":50051"`
	LogLevel        string        `envconfig:"LOG_LEVEL"        default:"info"`
	StoreDriver     string        `envconfig:"STORE_DRIVER"     default:"postgres"`
	DatabaseURL     string        `envconfig:"DATABASE_URL"`
	SQLitePath      string        `envconfig:"SQLITE_PATH"      default:"catalog.db"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	BcryptCost      int           `envconfig:"BCRYPT_COST"      default:"10"`
}

var (
	config Config
	once   sync.Once
)

// LoadConfig reads .env (when present) and the environment once per process.
func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		cfg, err := load()
		if err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}
		config = *cfg

		logger.Infof("Configuration loaded: HTTP Port=%s, GRPC Port=%s, Store=%s, LogLevel=%s",
			config.HTTPPort, config.GrpcPort, config.StoreDriver, config.LogLevel)
	})
	return &config
}

func load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s store", DriverPostgres)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the %s store", DriverSQLite)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER '%s'", c.StoreDriver)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

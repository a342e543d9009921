package main

import (
	"context"
	"os"

	"catalog_service/config"
	"catalog_service/internal/seed"
	"catalog_service/pkg/db"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := setupLogger("info")

	cmd := &cli.Command{
		Name:  "catalog",
		Usage: "Product catalog service",
		Action: func(ctx context.Context, c *cli.Command) error {
			return serve(ctx, loadConfig(logger), logger)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the HTTP API and the gRPC health service",
				Action: func(ctx context.Context, c *cli.Command) error {
					return serve(ctx, loadConfig(logger), logger)
				},
			},
			{
				Name:  "migrate",
				Usage: "Apply the database schema",
				Action: func(ctx context.Context, c *cli.Command) error {
					return migrateSchema(ctx, loadConfig(logger), logger)
				},
			},
			{
				Name:  "seed",
				Usage: "Load the demo catalog into an empty store",
				Action: func(ctx context.Context, c *cli.Command) error {
					return seedStore(ctx, loadConfig(logger), logger)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("Catalog service failed: %v", err)
	}
}

func setupLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logger.Warnf("Invalid log level '%s', using default 'info'. Error: %v", level, err)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return logger
}

func loadConfig(logger *logrus.Logger) *config.Config {
	cfg := config.LoadConfig(logger)

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s' in config, using default 'info'. Error: %v", cfg.LogLevel, err)
	} else {
		logger.SetLevel(logLevel)
	}
	return cfg
}

func migrateSchema(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	if cfg.StoreDriver == config.DriverPostgres {
		return db.Migrate(cfg.DatabaseURL, logger)
	}

	// the sqlite schema is migrated when the store is opened
	s, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer s.close()
	logger.Infof("Migrations: %s store is ready", cfg.StoreDriver)
	return nil
}

func seedStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	s, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer s.close()
	return seed.Run(ctx, s.categories, s.products, logger)
}

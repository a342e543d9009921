package main

import (
	"context"
	"fmt"

	"catalog_service/config"
	"catalog_service/internal/domain"
	"catalog_service/internal/repository"
	"catalog_service/pkg/db"

	"github.com/sirupsen/logrus"
)

// store bundles the repositories of one backend with its lifecycle hooks.
type store struct {
	categories domain.CategoryRepository
	products   domain.ProductRepository
	users      domain.UserRepository
	ping       func(ctx context.Context) error
	close      func() error
}

func openStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		logger.Info("Database connection established.")
		return &store{
			categories: repository.NewPostgresCategoryRepository(database, logger),
			products:   repository.NewPostgresProductRepository(database, logger),
			users:      repository.NewPostgresUserRepository(database, logger),
			ping:       database.PingContext,
			close:      database.Close,
		}, nil

	case config.DriverSQLite:
		gormDB, err := db.OpenSQLite(cfg.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		if err := repository.AutoMigrateGorm(gormDB); err != nil {
			return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access sqlite connection pool: %w", err)
		}
		logger.Infof("SQLite database opened at %s", cfg.SQLitePath)
		return &store{
			categories: repository.NewGormCategoryRepository(gormDB, logger),
			products:   repository.NewGormProductRepository(gormDB, logger),
			users:      repository.NewGormUserRepository(gormDB, logger),
			ping:       sqlDB.PingContext,
			close:      sqlDB.Close,
		}, nil

	case config.DriverMemory:
		mem := repository.NewMemoryStore(logger)
		logger.Warn("Using the in-memory store; data is lost on exit")
		return &store{
			categories: mem.Categories(),
			products:   mem.Products(),
			users:      mem.Users(),
			ping:       func(context.Context) error { return nil },
			close:      func() error { return nil },
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver '%s'", cfg.StoreDriver)
	}
}

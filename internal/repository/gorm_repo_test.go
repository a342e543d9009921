package repository_test

import (
	"path/filepath"
	"testing"

	"catalog_service/internal/repository"
	"catalog_service/pkg/db"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestGormSQLiteStore(t *testing.T) {
	suite.Run(t, &StoreSuite{
		open: func(t *testing.T) repositories {
			logger := newTestLogger()
			gormDB, err := db.OpenSQLite(filepath.Join(t.TempDir(), "catalog.db"), logger)
			require.NoError(t, err)
			require.NoError(t, repository.AutoMigrateGorm(gormDB))

			sqlDB, err := gormDB.DB()
			require.NoError(t, err)
			t.Cleanup(func() { _ = sqlDB.Close() })

			return repositories{
				categories: repository.NewGormCategoryRepository(gormDB, logger),
				products:   repository.NewGormProductRepository(gormDB, logger),
				users:      repository.NewGormUserRepository(gormDB, logger),
			}
		},
	})
}

package relational

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lamassuiot/authping/core/pkg/config"
	"github.com/lamassuiot/authping/core/pkg/models"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// schemaMigrations lists the versioned schema changes. Versions must never be reused.
func schemaMigrations(db *gorm.DB) []*goose.Migration {
	return []*goose.Migration{
		goose.NewGoMigration(1,
			&goose.GoFunc{RunDB: func(ctx context.Context, _ *sql.DB) error {
				return db.WithContext(ctx).Migrator().CreateTable(&models.User{})
			}},
			&goose.GoFunc{RunDB: func(ctx context.Context, _ *sql.DB) error {
				return db.WithContext(ctx).Migrator().DropTable(&models.User{})
			}},
		),
		goose.NewGoMigration(2,
			&goose.GoFunc{RunDB: func(ctx context.Context, _ *sql.DB) error {
				return db.WithContext(ctx).Migrator().CreateTable(&models.BlacklistedToken{})
			}},
			&goose.GoFunc{RunDB: func(ctx context.Context, _ *sql.DB) error {
				return db.WithContext(ctx).Migrator().DropTable(&models.BlacklistedToken{})
			}},
		),
	}
}

func gooseDialect(provider config.StorageProvider) (goose.Dialect, error) {
	switch provider {
	case config.Postgres:
		return goose.DialectPostgres, nil
	case config.SQLite:
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("no migration dialect for storage provider %s", provider)
	}
}

// migrate brings the schema up to the latest version, recording applied versions in goose's own table.
func migrate(ctx context.Context, logger *logrus.Entry, provider config.StorageProvider, db *gorm.DB) error {
	dialect, err := gooseDialect(provider)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("could not get db connection: %w", err)
	}

	migrator, err := goose.NewProvider(dialect, sqlDB, nil,
		goose.WithDisableGlobalRegistry(true),
		goose.WithGoMigrations(schemaMigrations(db)...),
	)
	if err != nil {
		return fmt.Errorf("could not create migrator: %w", err)
	}

	results, err := migrator.Up(ctx)
	if err != nil {
		return fmt.Errorf("could not apply migrations: %w", err)
	}

	for _, result := range results {
		logger.Infof("applied migration %d in %s", result.Source.Version, result.Duration)
	}

	return nil
}

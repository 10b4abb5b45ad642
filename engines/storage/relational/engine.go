package relational

import (
	"context"
	"errors"
	"fmt"

	"github.com/lamassuiot/authping/core/pkg/config"
	"github.com/lamassuiot/authping/core/pkg/engines/storage"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"
)

// StorageEngine serves every repository from a single gorm connection.
// Dialect specific packages open the connection and hand it over.
type StorageEngine struct {
	storage.CommonStorageEngine
	provider config.StorageProvider
	db       *gorm.DB
	logger   *logrus.Entry
}

func NewStorageEngine(logger *logrus.Entry, provider config.StorageProvider, db *gorm.DB) (*StorageEngine, error) {
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil && !errors.Is(err, gorm.ErrRegistered) {
		return nil, fmt.Errorf("could not install tracing plugin: %w", err)
	}

	logger.Infof("migrating %s schema", provider)
	if err := migrate(context.Background(), logger, provider, db); err != nil {
		return nil, fmt.Errorf("could not migrate %s schema: %w", provider, err)
	}

	return &StorageEngine{
		provider: provider,
		db:       db,
		logger:   logger,
	}, nil
}

func (s *StorageEngine) GetProvider() config.StorageProvider {
	return s.provider
}

func (s *StorageEngine) GetUserStorage() (storage.UserRepo, error) {
	if s.Users == nil {
		s.Users = NewUserRepository(s.db)
	}

	return s.Users, nil
}

func (s *StorageEngine) GetTokenBlacklistStorage() (storage.TokenBlacklistRepo, error) {
	if s.Blacklist == nil {
		s.Blacklist = NewTokenBlacklistRepository(s.db)
	}

	return s.Blacklist, nil
}

func (s *StorageEngine) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

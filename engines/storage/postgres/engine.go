package postgres

import (
	"fmt"

	"github.com/lamassuiot/authping/core/pkg/config"
	"github.com/lamassuiot/authping/core/pkg/engines/storage"
	"github.com/lamassuiot/authping/engines/storage/relational"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const DefaultDatabase = "authping"

func Register() {
	storage.RegisterStorageEngine(config.Postgres, func(logger *log.Entry, conf config.PluggableStorageEngine) (storage.StorageEngine, error) {
		return NewStorageEngine(logger, conf.Postgres)
	})
}

func NewStorageEngine(logger *log.Entry, conf config.PostgresPSEConfig) (storage.StorageEngine, error) {
	db, err := CreatePostgresDBConnection(logger, conf)
	if err != nil {
		return nil, fmt.Errorf("could not create postgres client: %w", err)
	}

	engine, err := relational.NewStorageEngine(logger, config.Postgres, db)
	if err != nil {
		return nil, err
	}

	return engine, nil
}

func BuildDSN(conf config.PostgresPSEConfig) string {
	database := conf.Database
	if database == "" {
		database = DefaultDatabase
	}

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable", conf.Hostname, conf.Username, conf.Password, database, conf.Port)
}

func CreatePostgresDBConnection(logger *log.Entry, conf config.PostgresPSEConfig) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(BuildDSN(conf)), &gorm.Config{
		Logger: relational.NewGormLogger(logger),
	})
}

package sqlite

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lamassuiot/authping/core/pkg/config"
	"github.com/lamassuiot/authping/core/pkg/engines/storage"
	"github.com/lamassuiot/authping/engines/storage/relational"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Register() {
	storage.RegisterStorageEngine(config.SQLite, func(logger *log.Entry, conf config.PluggableStorageEngine) (storage.StorageEngine, error) {
		return NewStorageEngine(logger, conf.SQLite)
	})
}

func NewStorageEngine(logger *log.Entry, conf config.SQLitePSEConfig) (storage.StorageEngine, error) {
	db, err := CreateDBConnection(logger, conf)
	if err != nil {
		return nil, fmt.Errorf("could not create sqlite client: %w", err)
	}

	engine, err := relational.NewStorageEngine(logger, config.SQLite, db)
	if err != nil {
		return nil, err
	}

	return engine, nil
}

func CreateDBConnection(logger *log.Entry, conf config.SQLitePSEConfig) (*gorm.DB, error) {
	dsn := conf.DatabasePath
	if conf.InMemory {
		// every in-memory engine gets its own named database shared by the pool connections
		dsn = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	} else if dsn == "" {
		return nil, fmt.Errorf("sqlite database path not set")
	}

	logger.Debugf("opening sqlite database %s", dsn)
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: relational.NewGormLogger(logger),
	})
}

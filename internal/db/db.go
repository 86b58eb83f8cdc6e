// Package db opens the gorm connection for the configured engine and migrates the schema.
package db

import (
	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ContractFlow/ContractFlow-Admin/internal/config"
	"github.com/ContractFlow/ContractFlow-Admin/internal/db/dsn"
	"github.com/ContractFlow/ContractFlow-Admin/internal/db/models"
	"github.com/ContractFlow/ContractFlow-Admin/internal/logger/adapter/gormlog"
)

// ErrConfigNil is returned when Open is called without configuration.
var ErrConfigNil = errors.New("config is nil")

// Open connects to the database described by cfg.DB.
func Open(cfg *config.Config) (*gorm.DB, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	var dialector gorm.Dialector

	switch cfg.DB.Engine {
	case config.EngineMySQL:
		dialector = mysql.Open(dsn.Create(cfg))
	case config.EnginePostgres:
		dialector = postgres.Open(dsn.Create(cfg))
	case config.EngineSQLite:
		dialector = sqlite.Open(dsn.Create(cfg))
	default:
		return nil, errors.Wrap(config.ErrUnknownDBEngine, cfg.DB.Engine)
	}

	gormLogger := gormlog.New(cfg.Log)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger.LogMode(gormLogLevel(cfg)),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect %s database", cfg.DB.Engine)
	}

	return db, nil
}

// Migrate creates or updates the tables roles and users.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Role{}, &models.User{}); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	return nil
}

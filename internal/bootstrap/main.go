// Package bootstrap wires configuration, logging and the database into the
// role registry and user service used by the commands.
package bootstrap

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/ContractFlow/ContractFlow-Admin/internal/config"
	"github.com/ContractFlow/ContractFlow-Admin/internal/db"
	"github.com/ContractFlow/ContractFlow-Admin/internal/db/controller/role"
	"github.com/ContractFlow/ContractFlow-Admin/internal/db/controller/user"
	"github.com/ContractFlow/ContractFlow-Admin/internal/logger"
)

// Env holds everything a command needs.
type Env struct {
	Config *config.Config
	DB     *gorm.DB
	Roles  *role.Registry
	Users  *user.Service
}

// New initializes the logger, opens and migrates the database and builds the services.
func New(cfg *config.Config) (*Env, error) {
	if cfg == nil {
		return nil, db.ErrConfigNil
	}

	if err := logger.Init(cfg.Log); err != nil {
		return nil, errors.Wrap(err, "failed to init logger")
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(gdb); err != nil {
		return nil, err
	}

	log.Debug().Str("engine", cfg.DB.Engine).Str("db", cfg.DB.Name).Msg("database ready")

	return FromDB(cfg, gdb), nil
}

// FromDB builds the services on an already opened database.
func FromDB(cfg *config.Config, gdb *gorm.DB) *Env {
	roles := role.New(gdb)

	return &Env{
		Config: cfg,
		DB:     gdb,
		Roles:  roles,
		Users:  user.NewService(gdb, roles),
	}
}

// Close releases the database connection.
func (e *Env) Close() error {
	sqlDB, err := e.DB.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql db")
	}

	return sqlDB.Close() //nolint:wrapcheck
}

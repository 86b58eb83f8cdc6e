package db

import (
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ContractFlow/ContractFlow-Admin/internal/config"
)

// gormLogLevel maps the configured zerolog level onto gorm's levels:
// statements are traced at debug/trace, dev mode always shows them.
func gormLogLevel(cfg *config.Config) gormlogger.LogLevel {
	if cfg.DevMode {
		return gormlogger.Info
	}

	level, err := zerolog.ParseLevel(cfg.Log.LogLevel)
	if err != nil {
		return gormlogger.Warn
	}

	switch {
	case level == zerolog.Disabled:
		return gormlogger.Silent
	case level <= zerolog.DebugLevel:
		return gormlogger.Info
	case level >= zerolog.ErrorLevel && level != zerolog.NoLevel:
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}

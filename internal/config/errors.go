package config

import (
	"errors"
)

var (
	// ErrUnknownDBEngine error if config db.engine is not mysql, postgres or sqlite.
	ErrUnknownDBEngine = errors.New("toml config db.engine is not supported")

	// ErrEmptyDBName error if config db.name is empty.
	ErrEmptyDBName = errors.New("toml config db.name can not be empty")

	// ErrEmptyDBHost error if config db.host is empty for a networked engine.
	ErrEmptyDBHost = errors.New("toml config db.host can not be empty")
)

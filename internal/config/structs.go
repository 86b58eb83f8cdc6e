package config

import (
	"github.com/ContractFlow/ContractFlow-Admin/internal/logger"
)

// Seed settings for the initial admin account.
type Seed struct {
	AdminUsername string
	AdminEmail    string
}

// Config overall data structure.
type Config struct {
	DevMode bool // enable dev mode for development
	DB      DB
	Log     logger.Log
	Seed    Seed
	Title   string
}

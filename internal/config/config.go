// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvConfigJSON names the env var holding a JSON document merged over the TOML file.
	EnvConfigJSON = "CONTRACTFLOW_ADMIN_CONFIG_JSON"

	defaultPath = "./etc/"
	fileName    = "main.toml"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var c Config

	// Read main configuration
	if path == "" {
		path = defaultPath
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path + fileName)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	if JSONConfigEnv := os.Getenv(EnvConfigJSON); JSONConfigEnv != "" {
		v.SetConfigType("json")

		if err := v.MergeConfig(strings.NewReader(JSONConfigEnv)); err != nil {
			return Config{}, errors.Wrap(err, "failed to merge "+EnvConfigJSON)
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}

	return c, validate(&c)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("Title", "ContractFlow-Admin")
	v.SetDefault("DB.Engine", EngineSQLite)
	v.SetDefault("DB.Name", "contractflow.db")
	v.SetDefault("Log.LogLevel", "info")
	v.SetDefault("Log.AppName", "contractflow-admin")
	v.SetDefault("Log.ServiceName", "roles")
	v.SetDefault("Log.Console.Enabled", true)
	v.SetDefault("Log.SlowQueryMs", 200) //nolint:mnd
	v.SetDefault("Seed.AdminUsername", "admin")
	v.SetDefault("Seed.AdminEmail", "admin@localhost")
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate minimal config settings.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	switch c.DB.Engine {
	case EngineMySQL, EnginePostgres, EngineSQLite:
	default:
		return errors.Wrap(ErrUnknownDBEngine, invalidErrMessage+": "+c.DB.Engine)
	}

	if c.DB.Name == "" {
		return errors.Wrap(ErrEmptyDBName, invalidErrMessage)
	}

	if c.DB.Engine != EngineSQLite && c.DB.Host == "" {
		return errors.Wrap(ErrEmptyDBHost, invalidErrMessage)
	}

	return nil
}

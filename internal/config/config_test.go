package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectConfigPath(t *testing.T) string {
	t.Helper()

	// Get the project root by going up from internal/config
	projectRoot, err := filepath.Abs("../../")
	require.NoError(t, err, "failed to get project root")

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	assert.Equal(t, "ContractFlow-Admin", cfg.Title)
	assert.Equal(t, EngineSQLite, cfg.DB.Engine)
	assert.Equal(t, "contractflow.db", cfg.DB.Name)
	assert.Equal(t, "_pragma=foreign_keys(1)", cfg.DB.Extras)

	assert.Equal(t, "info", cfg.Log.LogLevel)
	assert.Equal(t, "contractflow-admin", cfg.Log.AppName)
	assert.Equal(t, "roles", cfg.Log.ServiceName)
	assert.True(t, cfg.Log.Console.Enabled)
	assert.True(t, cfg.Log.Console.UseConsoleWriter)
	assert.Equal(t, 200, cfg.Log.SlowQueryMs)

	assert.False(t, cfg.Log.File.Enabled)
	assert.Equal(t, "error.log", cfg.Log.File.ErrorLog)
	assert.Equal(t, 10, cfg.Log.File.InfoMaxSize)
	assert.Equal(t, 28, cfg.Log.File.WarnMaxAge)

	assert.Equal(t, "admin", cfg.Seed.AdminUsername)
}

func TestReadConfigDefaults(t *testing.T) {
	dir := t.TempDir() + string(filepath.Separator)
	require.NoError(t, os.WriteFile(dir+"main.toml", []byte("Title = \"Minimal\"\n"), 0o600))

	cfg, err := ReadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "Minimal", cfg.Title)
	assert.Equal(t, EngineSQLite, cfg.DB.Engine)
	assert.Equal(t, "contractflow.db", cfg.DB.Name)
	assert.Equal(t, "info", cfg.Log.LogLevel)
	assert.Equal(t, "admin@localhost", cfg.Seed.AdminEmail)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(t.TempDir() + string(filepath.Separator))
	require.Error(t, err)
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Title":"Test Override","DB":{"Name":"override.db"},"Log":{"LogLevel":"debug"}}`)

	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	assert.Equal(t, "Test Override", cfg.Title)
	assert.Equal(t, "override.db", cfg.DB.Name)
	assert.Equal(t, "debug", cfg.Log.LogLevel)
	// untouched keys keep the file values
	assert.Equal(t, EngineSQLite, cfg.DB.Engine)
	assert.Equal(t, "roles", cfg.Log.ServiceName)
}

func TestReadConfigWithBrokenJSONOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Title":`)

	_, err := ReadConfig(projectConfigPath(t))
	require.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:   "sqlite",
			config: Config{DB: DB{Engine: EngineSQLite, Name: "roles.db"}},
		},
		{
			name:   "postgres",
			config: Config{DB: DB{Engine: EnginePostgres, Host: "db", Name: "roles"}},
		},
		{
			name:    "unknown engine",
			config:  Config{DB: DB{Engine: "oracle", Name: "roles"}},
			wantErr: ErrUnknownDBEngine,
		},
		{
			name:    "missing name",
			config:  Config{DB: DB{Engine: EngineSQLite}},
			wantErr: ErrEmptyDBName,
		},
		{
			name:    "mysql without host",
			config:  Config{DB: DB{Engine: EngineMySQL, Name: "roles"}},
			wantErr: ErrEmptyDBHost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(&tt.config)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDumpConfig(t *testing.T) {
	cfg := Config{
		Title: "Test",
		DB:    DB{Engine: EngineMySQL, Host: "db", Name: "roles", Password: "secret"},
	}

	tomlStr, err := DumpConfig(&cfg)
	require.NoError(t, err)
	assert.Contains(t, tomlStr, "Test")
	assert.Contains(t, tomlStr, "roles")
	assert.NotContains(t, tomlStr, "secret")

	jsonStr, err := DumpConfigJSON(&cfg)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(jsonStr, "{"))
	assert.Contains(t, jsonStr, `"Title": "Test"`)
	assert.NotContains(t, jsonStr, "secret")
}

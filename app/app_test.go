package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ContractFlow/ContractFlow-Admin/internal/db/controller/role"
	"github.com/ContractFlow/ContractFlow-Admin/internal/db/controller/user"
	"github.com/ContractFlow/ContractFlow-Admin/internal/db/models"
)

const testConfig = `Title = "test"

[DB]
Engine = "sqlite"
Name = %q
Password = "hunter2"

[Log]
LogLevel = "disabled"
AppName = "test"
ServiceName = "test"

[Seed]
AdminUsername = "root"
AdminEmail = "root@example.com"
`

// writeConfig returns a config directory pointing at a fresh sqlite file.
func writeConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	content := fmt.Sprintf(testConfig, filepath.Join(dir, "test.db"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.toml"), []byte(content), 0o600))

	return dir + string(os.PathSeparator)
}

func execute(t *testing.T, configDir string, args ...string) ([]byte, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", configDir}, args...))

	err := cmd.Execute()

	return out.Bytes(), err
}

func mustExecute(t *testing.T, configDir string, v interface{}, args ...string) {
	t.Helper()

	out, err := execute(t, configDir, args...)
	require.NoError(t, err, string(out))

	if v != nil {
		require.NoError(t, json.Unmarshal(out, v), string(out))
	}
}

func TestRoleLifecycle(t *testing.T) {
	dir := writeConfig(t)

	var created models.Role
	mustExecute(t, dir, &created, "role", "create",
		"--name", "  Reviewer ",
		"--display-name", "Contract Reviewer",
		"--color", "teal",
		"--grant", string(models.CapViewAllContracts),
		"--grant", string(models.CapApproveContract),
		"--grant", string(models.CapRejectContract),
		"--revoke", string(models.CapViewDashboard),
		"--created-by", "7",
	)

	assert.Equal(t, "reviewer", created.Name)
	assert.True(t, created.IsActive)
	assert.Equal(t, models.ColorTeal, created.Color)
	require.NotNil(t, created.CreatedBy)
	assert.Equal(t, uint64(7), *created.CreatedBy)
	assert.ElementsMatch(t, []models.Capability{
		models.CapApproveContract,
		models.CapRejectContract,
		models.CapViewOwnContracts,
		models.CapViewAllContracts,
	}, created.DefaultPermissions.Granted())

	var shown models.Role
	mustExecute(t, dir, &shown, "role", "show", "REVIEWER")
	assert.Equal(t, created.ID, shown.ID)

	var updated models.Role
	mustExecute(t, dir, &updated, "role", "update", "reviewer",
		"--description", "Reviews submitted contracts",
		"--grant", string(models.CapViewReports),
	)
	assert.Equal(t, "Reviews submitted contracts", updated.Description)
	assert.Equal(t, "Contract Reviewer", updated.DisplayName)
	assert.True(t, updated.DefaultPermissions.CanViewReports)
	assert.True(t, updated.DefaultPermissions.CanApproveContract)

	var deactivated models.Role
	mustExecute(t, dir, &deactivated, "role", "deactivate", fmt.Sprint(created.ID))
	assert.False(t, deactivated.IsActive)

	var active []models.Role
	mustExecute(t, dir, &active, "role", "list")
	assert.Empty(t, active)

	var all []models.Role
	mustExecute(t, dir, &all, "role", "list", "--all", "--keyword", "review")
	require.Len(t, all, 1)

	var activated models.Role
	mustExecute(t, dir, &activated, "role", "activate", "reviewer")
	assert.True(t, activated.IsActive)

	mustExecute(t, dir, nil, "role", "delete", "reviewer")

	_, err := execute(t, dir, "role", "show", "reviewer")
	require.ErrorIs(t, err, role.ErrRoleNotFound)
}

func TestRoleCreateErrors(t *testing.T) {
	dir := writeConfig(t)

	mustExecute(t, dir, nil, "role", "create", "--name", "auditor", "--display-name", "Auditor")

	tests := []struct {
		name string
		args []string
		want error
	}{
		{
			name: "duplicate name",
			args: []string{"--name", "AUDITOR", "--display-name", "Other"},
			want: role.ErrRoleNameTaken,
		},
		{
			name: "unknown color",
			args: []string{"--name", "x", "--display-name", "X", "--color", "magenta"},
			want: role.ErrValidation,
		},
		{
			name: "unknown capability",
			args: []string{"--name", "x", "--display-name", "X", "--grant", "canFly"},
			want: role.ErrValidation,
		},
		{
			name: "grant and revoke",
			args: []string{"--name", "x", "--display-name", "X", "--grant", "canSignContract", "--revoke", "canSignContract"},
			want: ErrConflictingGrant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, dir, append([]string{"role", "create"}, tt.args...)...)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSeedAndUsers(t *testing.T) {
	dir := writeConfig(t)

	mustExecute(t, dir, nil, "seed")

	var admin models.User
	mustExecute(t, dir, &admin, "user", "show", "1")
	assert.Equal(t, "root", admin.Username)
	assert.Equal(t, models.FullPermissions(), admin.Permissions)

	var u models.User
	mustExecute(t, dir, &u, "user", "create", "--username", "jane", "--email", "jane@example.com", "--role", "user")
	assert.Equal(t, models.DefaultPermissions(), u.Permissions)

	mustExecute(t, dir, &u, "user", "assign", fmt.Sprint(u.ID), "--role", "admin")
	assert.True(t, u.Permissions.CanManageRoles)

	_, err := execute(t, dir, "role", "delete", "admin")
	require.ErrorIs(t, err, role.ErrRoleProtected)

	_, err = execute(t, dir, "role", "update", "user", "--name", "member")
	require.ErrorIs(t, err, role.ErrRoleProtected)

	_, err = execute(t, dir, "user", "create", "--username", "jane", "--role", "user")
	require.ErrorIs(t, err, user.ErrUserExists)

	_, err = execute(t, dir, "user", "show", "abc")
	require.Error(t, err)
}

func TestMigrate(t *testing.T) {
	dir := writeConfig(t)

	var s status
	mustExecute(t, dir, &s, "migrate")
	assert.Equal(t, "migrated", s.Status)
}

func TestConfigDump(t *testing.T) {
	dir := writeConfig(t)

	out, err := execute(t, dir, "config", "dump")
	require.NoError(t, err)
	assert.Contains(t, string(out), "[DB]")
	assert.NotContains(t, string(out), "hunter2")

	out, err = execute(t, dir, "config", "dump", "--json")
	require.NoError(t, err)
	assert.Contains(t, string(out), `"Title": "test"`)
	assert.NotContains(t, string(out), "hunter2")
}

func TestMissingConfig(t *testing.T) {
	_, err := execute(t, t.TempDir()+string(os.PathSeparator), "migrate")
	require.Error(t, err)
}

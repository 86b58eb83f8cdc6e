package bootstrap

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ContractFlow/ContractFlow-Admin/internal/db/controller/role"
	"github.com/ContractFlow/ContractFlow-Admin/internal/db/controller/user"
	"github.com/ContractFlow/ContractFlow-Admin/internal/db/models"
)

const (
	// AdminRole is the system role holding every capability.
	AdminRole = "admin"
	// UserRole is the system role holding the default capabilities.
	UserRole = "user"
)

func systemRoles() []role.Input {
	return []role.Input{
		{
			Name:        AdminRole,
			DisplayName: "Administrator",
			Description: "Full access to contracts, users, roles and workflow settings",
			Color:       models.ColorRed,
			IsSystem:    true,
			Permissions: permissionMap(models.FullPermissions()),
		},
		{
			Name:        UserRole,
			DisplayName: "User",
			Description: "Can view own contracts and the dashboard",
			Color:       models.ColorGray,
			IsSystem:    true,
		},
	}
}

// Seed creates the system roles and the admin user when they are missing.
// Existing rows are left untouched.
func (e *Env) Seed(ctx context.Context) error {
	for _, in := range systemRoles() {
		_, err := e.Roles.GetByName(ctx, in.Name)

		switch {
		case err == nil:
			continue
		case !errors.Is(err, role.ErrRoleNotFound):
			return err
		}

		if _, err = e.Roles.Create(ctx, in); err != nil {
			return errors.Wrapf(err, "failed to seed role %s", in.Name)
		}
	}

	var count int64
	if err := e.DB.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to count users")
	}

	if count > 0 {
		return nil
	}

	u, err := e.Users.Create(ctx, user.Input{
		Username: e.Config.Seed.AdminUsername,
		Email:    e.Config.Seed.AdminEmail,
		RoleName: AdminRole,
	})
	if err != nil {
		return errors.Wrap(err, "failed to seed admin user")
	}

	log.Info().Uint64("user_id", u.ID).Str("username", u.Username).Msg("admin user seeded")

	return nil
}

func permissionMap(p models.Permissions) map[models.Capability]bool {
	out := make(map[models.Capability]bool, len(models.Capabilities))
	for _, c := range models.Capabilities {
		out[c] = p.Has(c)
	}

	return out
}

package app

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ContractFlow/ContractFlow-Admin/internal/bootstrap"
	"github.com/ContractFlow/ContractFlow-Admin/internal/db/controller/role"
	"github.com/ContractFlow/ContractFlow-Admin/internal/db/models"
)

// ErrConflictingGrant is returned when a capability is both granted and revoked.
var ErrConflictingGrant = errors.New("capability both granted and revoked")

// roleFlags are shared by role create and role update.
type roleFlags struct {
	name        string
	displayName string
	description string
	color       string
	system      bool
	active      bool
	createdBy   uint64
	grant       []string
	revoke      []string
}

func (f *roleFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.name, "name", "", "Unique role name")
	fs.StringVar(&f.displayName, "display-name", "", "Human readable name")
	fs.StringVar(&f.description, "description", "", "Role description")
	fs.StringVar(&f.color, "color", "", "Badge color")
	fs.BoolVar(&f.system, "system", false, "Mark as a system role")
	fs.StringArrayVar(&f.grant, "grant", nil, "Grant a capability (repeatable)")
	fs.StringArrayVar(&f.revoke, "revoke", nil, "Revoke a capability (repeatable)")
}

func (f *roleFlags) permissions() (map[models.Capability]bool, error) {
	if len(f.grant) == 0 && len(f.revoke) == 0 {
		return nil, nil //nolint:nilnil
	}

	perms := make(map[models.Capability]bool, len(f.grant)+len(f.revoke))
	for _, c := range f.grant {
		perms[models.Capability(c)] = true
	}

	for _, c := range f.revoke {
		if perms[models.Capability(c)] {
			return nil, errors.Wrap(ErrConflictingGrant, c)
		}

		perms[models.Capability(c)] = false
	}

	return perms, nil
}

func newRoleCmd(opts *options) *cobra.Command {
	roleCmd := &cobra.Command{
		Use:   "role",
		Short: "Manage roles",
	}

	roleCmd.AddCommand(
		newRoleCreateCmd(opts),
		newRoleListCmd(opts),
		newRoleShowCmd(opts),
		newRoleUpdateCmd(opts),
		newRoleToggleCmd(opts, "activate", "Make a role assignable again", (*role.Registry).Activate),
		newRoleToggleCmd(opts, "deactivate", "Stop new assignments of a role", (*role.Registry).Deactivate),
		newRoleDeleteCmd(opts),
	)

	return roleCmd
}

func newRoleCreateCmd(opts *options) *cobra.Command {
	f := &roleFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			perms, err := f.permissions()
			if err != nil {
				return err
			}

			in := role.Input{
				Name:        f.name,
				DisplayName: f.displayName,
				Description: f.description,
				Color:       models.Color(f.color),
				IsSystem:    f.system,
				Permissions: perms,
			}

			if cmd.Flags().Changed("created-by") {
				in.CreatedBy = &f.createdBy
			}

			return opts.run(cmd, func(ctx context.Context, env *bootstrap.Env) error {
				r, err := env.Roles.Create(ctx, in)
				if err != nil {
					return err
				}

				return printJSON(cmd, r)
			})
		},
	}

	f.register(cmd)
	cmd.Flags().Uint64Var(&f.createdBy, "created-by", 0, "Id of the creating user")

	return cmd
}

func newRoleListCmd(opts *options) *cobra.Command {
	var filter role.Filter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List roles ordered by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, env *bootstrap.Env) error {
				roles, err := env.Roles.List(ctx, filter)
				if err != nil {
					return err
				}

				return printJSON(cmd, roles)
			})
		},
	}

	cmd.Flags().BoolVar(&filter.IncludeInactive, "all", false, "Include inactive roles")
	cmd.Flags().StringVar(&filter.Keyword, "keyword", "", "Match name or display name")

	return cmd
}

func newRoleShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id|name>",
		Short: "Show a role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, env *bootstrap.Env) error {
				r, err := lookupRole(ctx, env.Roles, args[0])
				if err != nil {
					return err
				}

				return printJSON(cmd, r)
			})
		},
	}
}

func newRoleUpdateCmd(opts *options) *cobra.Command {
	f := &roleFlags{}

	cmd := &cobra.Command{
		Use:   "update <id|name>",
		Short: "Change a role; only the given flags are applied",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			perms, err := f.permissions()
			if err != nil {
				return err
			}

			upd := role.Update{Permissions: perms}
			fs := cmd.Flags()

			if fs.Changed("name") {
				upd.Name = &f.name
			}

			if fs.Changed("display-name") {
				upd.DisplayName = &f.displayName
			}

			if fs.Changed("description") {
				upd.Description = &f.description
			}

			if fs.Changed("color") {
				c := models.Color(f.color)
				upd.Color = &c
			}

			if fs.Changed("system") {
				upd.IsSystem = &f.system
			}

			if fs.Changed("active") {
				upd.IsActive = &f.active
			}

			return opts.run(cmd, func(ctx context.Context, env *bootstrap.Env) error {
				r, err := lookupRole(ctx, env.Roles, args[0])
				if err != nil {
					return err
				}

				if r, err = env.Roles.Update(ctx, r.ID, upd); err != nil {
					return err
				}

				return printJSON(cmd, r)
			})
		},
	}

	f.register(cmd)
	cmd.Flags().BoolVar(&f.active, "active", true, "Set whether the role is assignable")

	return cmd
}

type toggleFunc func(*role.Registry, context.Context, uint) (*models.Role, error)

func newRoleToggleCmd(opts *options, use, short string, toggle toggleFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id|name>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, env *bootstrap.Env) error {
				r, err := lookupRole(ctx, env.Roles, args[0])
				if err != nil {
					return err
				}

				if r, err = toggle(env.Roles, ctx, r.ID); err != nil {
					return err
				}

				return printJSON(cmd, r)
			})
		},
	}
}

func newRoleDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id|name>",
		Short: "Delete a role that is neither a system role nor held by users",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, env *bootstrap.Env) error {
				r, err := lookupRole(ctx, env.Roles, args[0])
				if err != nil {
					return err
				}

				if err = env.Roles.Delete(ctx, r.ID); err != nil {
					return err
				}

				return printJSON(cmd, status{Status: "deleted"})
			})
		},
	}
}

// lookupRole accepts a numeric id or a role name.
func lookupRole(ctx context.Context, roles *role.Registry, ref string) (*models.Role, error) {
	if id, err := strconv.ParseUint(ref, 10, 0); err == nil {
		return roles.Get(ctx, uint(id))
	}

	return roles.GetByName(ctx, ref)
}

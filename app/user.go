package app

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ContractFlow/ContractFlow-Admin/internal/bootstrap"
	"github.com/ContractFlow/ContractFlow-Admin/internal/db/controller/user"
)

func newUserCmd(opts *options) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users and their roles",
	}

	userCmd.AddCommand(
		newUserCreateCmd(opts),
		newUserAssignCmd(opts),
		newUserShowCmd(opts),
	)

	return userCmd
}

func newUserCreateCmd(opts *options) *cobra.Command {
	var in user.Input

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user holding an active role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, env *bootstrap.Env) error {
				u, err := env.Users.Create(ctx, in)
				if err != nil {
					return err
				}

				return printJSON(cmd, u)
			})
		},
	}

	cmd.Flags().StringVar(&in.Username, "username", "", "Unique username")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&in.RoleName, "role", "", "Role name")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func newUserAssignCmd(opts *options) *cobra.Command {
	var roleName string

	cmd := &cobra.Command{
		Use:   "assign <user-id>",
		Short: "Give a user another role and reset their permissions to its defaults",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUserID(args[0])
			if err != nil {
				return err
			}

			return opts.run(cmd, func(ctx context.Context, env *bootstrap.Env) error {
				u, err := env.Users.AssignRole(ctx, id, roleName)
				if err != nil {
					return err
				}

				return printJSON(cmd, u)
			})
		},
	}

	cmd.Flags().StringVar(&roleName, "role", "", "Role name")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func newUserShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <user-id>",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUserID(args[0])
			if err != nil {
				return err
			}

			return opts.run(cmd, func(ctx context.Context, env *bootstrap.Env) error {
				u, err := env.Users.Get(ctx, id)
				if err != nil {
					return err
				}

				return printJSON(cmd, u)
			})
		},
	}
}

func parseUserID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)

	return id, errors.Wrapf(err, "invalid user id %q", s)
}

package app

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ContractFlow/ContractFlow-Admin/internal/bootstrap"
)

type status struct {
	Status string `json:"status"`
}

func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// bootstrap migrates on open
			return opts.run(cmd, func(_ context.Context, _ *bootstrap.Env) error {
				return printJSON(cmd, status{Status: "migrated"})
			})
		},
	}
}

func newSeedCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the system roles and the admin user if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, env *bootstrap.Env) error {
				if err := env.Seed(ctx); err != nil {
					return err
				}

				return printJSON(cmd, status{Status: "seeded"})
			})
		},
	}
}

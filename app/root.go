// Package app implements the contractflow-admin commands.
package app

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ContractFlow/ContractFlow-Admin/internal/bootstrap"
	"github.com/ContractFlow/ContractFlow-Admin/internal/config"
)

type options struct {
	configPath string // directory holding main.toml
	devMode    bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "contractflow-admin",
		Short: "ContractFlow-Admin manages the roles and permissions of ContractFlow",
		Long: `ContractFlow-Admin manages the role registry of the ContractFlow
contract-management application: roles, their default permissions and the
users holding them.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "./etc/", "Directory holding main.toml")
	rootCmd.PersistentFlags().BoolVar(&opts.devMode, "dev", false, "Enable dev mode")

	rootCmd.AddCommand(
		newMigrateCmd(opts),
		newSeedCmd(opts),
		newRoleCmd(opts),
		newUserCmd(opts),
		newConfigCmd(opts),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute() //nolint:wrapcheck
}

func (o *options) readConfig() (*config.Config, error) {
	cfg, err := config.ReadConfig(o.configPath)
	if err != nil {
		return nil, err
	}

	if o.devMode {
		cfg.DevMode = true
	}

	return &cfg, nil
}

// run opens the environment, hands it to fn and closes it afterwards.
func (o *options) run(cmd *cobra.Command, fn func(ctx context.Context, env *bootstrap.Env) error) error {
	cfg, err := o.readConfig()
	if err != nil {
		return err
	}

	env, err := bootstrap.New(cfg)
	if err != nil {
		return err
	}

	defer func() { _ = env.Close() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return fn(ctx, env)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return errors.Wrap(enc.Encode(v), "failed to write output")
}

package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ContractFlow/ContractFlow-Admin/internal/config"
)

func newConfigCmd(opts *options) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	var asJSON bool

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the effective configuration without secrets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.readConfig()
			if err != nil {
				return err
			}

			dump := config.DumpConfig
			if asJSON {
				dump = config.DumpConfigJSON
			}

			out, err := dump(cfg)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)

			return err //nolint:wrapcheck
		},
	}

	dumpCmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON instead of TOML")
	configCmd.AddCommand(dumpCmd)

	return configCmd
}

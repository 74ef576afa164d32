package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sigkit/config"
)

func newFetchCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download the Maven annotation jars named in the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOptional(opts.configFile)
			if err != nil {
				return err
			}
			paths, err := fetchArchives(cmd.Context(), cfg)
			for _, path := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return err
		},
	}
}

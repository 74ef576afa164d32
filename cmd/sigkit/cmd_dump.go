package main

import (
	"github.com/spf13/cobra"
)

func newDumpCmd(opts *globalOptions) *cobra.Command {
	var run runOptions
	var dumpFormat string

	cmd := &cobra.Command{
		Use:   "dump <path>",
		Short: "Compile the method signatures of a .class file, jar, zip or directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, &run)
			if err != nil {
				return err
			}
			if dumpFormat != "" {
				cfg.Format = dumpFormat
			}
			enc, err := newEncoder(cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			classes, err := compileClasses(cmd.Context(), cfg, run.metricsFile, args[0])
			if err != nil {
				return err
			}
			return encodeAll(enc, classes)
		},
	}

	addRunFlags(cmd, &run)
	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "", "output format (text, json); overrides the config file")

	return cmd
}

func addRunFlags(cmd *cobra.Command, run *runOptions) {
	cmd.Flags().IntVarP(&run.workers, "workers", "j", 0, "methods compiled in parallel")
	cmd.Flags().BoolVarP(&run.all, "all", "a", false, "include non-public, synthetic and bridge methods")
	cmd.Flags().StringVar(&run.metricsFile, "metrics-file", "", "write Prometheus metrics in text format to this file")
}

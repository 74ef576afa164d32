package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sigkit/format"
)

func newLayoutCmd(opts *globalOptions) *cobra.Command {
	var run runOptions
	var qualified bool

	cmd := &cobra.Command{
		Use:   "layout <path>",
		Short: "Generate lparams helpers for the LayoutParams classes in a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, &run)
			if err != nil {
				return err
			}
			classes, err := compileClasses(cmd.Context(), cfg, run.metricsFile, args[0])
			if err != nil {
				return err
			}

			enc := format.NewLayoutParamsEncoder(os.Stdout)
			if !qualified {
				enc.Render = format.ShortKotlinNames
			}
			return encodeAll(enc, classes)
		},
	}

	addRunFlags(cmd, &run)
	cmd.Flags().BoolVar(&qualified, "qualified", false, "print kotlin types fully qualified")

	return cmd
}

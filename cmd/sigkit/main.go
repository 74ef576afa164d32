package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("sigkit.cli")

func main() {
	var opts globalOptions

	rootCmd := &cobra.Command{
		Use:          "sigkit",
		Short:        "Compile JVM method signatures into Kotlin-facing descriptions",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var path *string
			if opts.logFile != "" {
				path = &opts.logFile
			}
			commonlog.Configure(opts.verbose, path)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "sigkit.yaml", "configuration file")
	rootCmd.PersistentFlags().CountVarP(&opts.verbose, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newDumpCmd(&opts))
	rootCmd.AddCommand(newLayoutCmd(&opts))
	rootCmd.AddCommand(newKeyCmd())
	rootCmd.AddCommand(newFetchCmd(&opts))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"github.com/spf13/cobra"
)

// globalOptions are shared by every subcommand.
type globalOptions struct {
	configPath string
	logDir     string
	verbose    bool
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "inbetween",
		Short:         "Cel animation inbetween generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML parameter file")
	rootCmd.PersistentFlags().StringVar(&opts.logDir, "log-dir", "", "Directory for rotating JSON logs")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log pipeline states (debug level)")

	rootCmd.AddCommand(newInbetweenCommand(opts))

	return rootCmd
}

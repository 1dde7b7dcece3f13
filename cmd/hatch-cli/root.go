package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-hatch/internal/logging"
	"github.com/goliatone/go-hatch/internal/version"
)

var (
	verbosity int

	rootCmd = &cobra.Command{
		Use:   "hatch-cli",
		Short: "Generate Python project scaffolding from a declarative configuration",
		Long: `hatch-cli generates complete Python packages, plugins, and plugin hosts
from a single TOML configuration. It composes layered templates, writes the
project tree, and optionally initializes version control.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(configCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hatch-cli version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}

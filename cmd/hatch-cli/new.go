package main

import (
	"errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-hatch/internal/logging"
	"github.com/goliatone/go-hatch/pkg/config"
	"github.com/goliatone/go-hatch/pkg/orchestrator"
)

var (
	newConfigPath string
	newOutputDir  string
	newNoVCS      bool

	newCmd = &cobra.Command{
		Use:   "new",
		Short: "Generate packages from a configuration file",
		Long: `Read the configuration file, generate every declared package into the
output directory, and report a per-package summary. Generation failures for
one package do not stop the remaining packages.`,
		RunE: runNew,
	}
)

func init() {
	newCmd.Flags().StringVarP(&newConfigPath, "config", "c", "hatch.toml", "Configuration file to read")
	newCmd.Flags().StringVarP(&newOutputDir, "output-dir", "o", "", "Override the configured output directory")
	newCmd.Flags().BoolVar(&newNoVCS, "no-vcs", false, "Skip version control setup even when configured")
}

func runNew(cmd *cobra.Command, args []string) error {
	logger := logging.GetLogger("new")

	cfg, err := config.ParseFile(newConfigPath)
	if err != nil {
		pterm.Error.Printfln("Invalid configuration: %v", err)
		return err
	}
	if newOutputDir != "" {
		cfg.OutputDir = newOutputDir
	}

	options := []orchestrator.Option{orchestrator.WithLogger(logger)}
	if newNoVCS {
		options = append(options, orchestrator.WithVCS(nil))
	}

	gen := orchestrator.New(options...)
	summary, err := gen.GenerateAll(cmd.Context(), cfg)
	reportSummary(summary)
	if err != nil {
		pterm.Error.Printfln("Generation aborted: %v", err)
		return err
	}
	if summary.Failed() {
		return errors.New("one or more packages failed to generate")
	}
	return nil
}

func reportSummary(summary orchestrator.Summary) {
	for _, result := range summary.Results {
		switch result.Status {
		case orchestrator.StatusGenerated:
			pterm.Success.Printfln("%s (%s): %d files written", result.Package, result.Role, len(result.Written))
		case orchestrator.StatusVCSFailed:
			pterm.Warning.Printfln("%s (%s): files written, version control setup failed: %v", result.Package, result.Role, result.Err)
		case orchestrator.StatusGenerationFailed:
			pterm.Error.Printfln("%s (%s): %v", result.Package, result.Role, result.Err)
		default:
			pterm.Error.Printfln("%s (%s): unknown status %q", result.Package, result.Role, result.Status)
		}
	}
	if len(summary.Results) > 0 {
		fmt.Println()
	}
}

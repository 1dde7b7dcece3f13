package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-hatch/pkg/config"
	"github.com/goliatone/go-hatch/pkg/configgen"
	"github.com/goliatone/go-hatch/pkg/prompts"
)

var (
	configRole        string
	configOutput      string
	configInteractive bool

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Write an example configuration file",
		Long: `Render an example configuration for a package type. By default the
document is printed to stdout; use --output to write it to a file, or
--interactive to answer questions instead of editing placeholders.`,
		RunE: runConfig,
	}
)

func init() {
	configCmd.Flags().StringVarP(&configRole, "type", "t", "package", "Package type: package, plugin, or plugin-host")
	configCmd.Flags().StringVarP(&configOutput, "output", "o", "", "File to write instead of stdout")
	configCmd.Flags().BoolVarP(&configInteractive, "interactive", "i", false, "Collect values through prompts")
}

func runConfig(cmd *cobra.Command, args []string) error {
	var (
		role   config.Role
		params configgen.Params
		err    error
	)

	if configInteractive {
		role, params, err = prompts.NewWizard().Run()
		if err != nil {
			return err
		}
	} else {
		role, err = configgen.RoleFromString(configRole)
		if err != nil {
			return err
		}
		params.UseVCS = true
	}

	gen, err := configgen.NewGenerator()
	if err != nil {
		return err
	}

	if configOutput != "" {
		if err := gen.Write(role, configOutput, params); err != nil {
			return err
		}
		pterm.Success.Printfln("Wrote %s configuration to %s", role, configOutput)
		return nil
	}

	content, err := gen.Generate(role, params)
	if err != nil {
		return err
	}
	fmt.Print(content)
	return nil
}

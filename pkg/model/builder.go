package model

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-hatch/pkg/config"
)

// NamingError reports a distribution name whose derived import name is not a
// valid Python identifier. The package cannot be generated under that name.
type NamingError struct {
	Name       string
	ImportName string
}

func (e *NamingError) Error() string {
	return fmt.Sprintf("model: distribution name %q derives import name %q which is not a valid identifier", e.Name, e.ImportName)
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Build derives the render context for one package. It fails with a
// *NamingError when the import name is not usable and never mutates cfg.
func Build(cfg *config.Config, name string, role config.Role) (Context, error) {
	importName := strings.ReplaceAll(name, "-", "_")
	if !identifierPattern.MatchString(importName) {
		return Context{}, &NamingError{Name: name, ImportName: importName}
	}

	ctx := Context{
		Name:             name,
		ImportName:       importName,
		PluginImportName: importName,
		Role:             role,
		Author:           cfg.Author,
		Package:          cfg.Package,
		Dependencies:     cfg.Dependencies,
		Features:         cfg.Features,
		VersionInfo:      cfg.VersionSpec(),
	}

	if role == config.RolePlugin {
		ctx.PluginHost = cfg.PluginHost
		ctx.PluginImportName = pluginImportName(importName, cfg.PluginHost)
	}

	return ctx, nil
}

// pluginImportName strips the plugin host prefix from a plugin's import name
// so the plugin registers under its short name, e.g. "core-app-ext" hosted by
// "core-app" becomes "ext".
func pluginImportName(importName, host string) string {
	hostImport := strings.ReplaceAll(host, "-", "_")
	short := strings.TrimPrefix(importName, hostImport+"_")
	if short == importName {
		short = strings.TrimPrefix(importName, hostImport)
		short = strings.TrimPrefix(short, "_")
	}
	if short == "" || !identifierPattern.MatchString(short) {
		return importName
	}
	return short
}

// Package model defines the render context templates are evaluated against
// and the builder that derives it from a validated configuration. Building is
// deterministic: identical inputs produce identical contexts, and nothing in
// the context depends on the clock, the environment, or randomness.
package model

import (
	"strings"

	"github.com/goliatone/go-hatch/pkg/config"
)

// Context is the flat mapping one package's templates render against. It is
// rebuilt per package and carries no hidden mutable state.
type Context struct {
	// Name is the hyphenated distribution name, e.g. "demo-pkg".
	Name string

	// ImportName is Name with hyphens replaced by underscores. It is always a
	// valid Python identifier; Build fails otherwise.
	ImportName string

	// PluginImportName is the short import name a plugin registers under: the
	// import name with the plugin host prefix stripped. Equals ImportName for
	// non-plugins.
	PluginImportName string

	Role       config.Role
	PluginHost string

	Author       config.Author
	Package      config.PackageSettings
	Dependencies config.Dependencies
	Features     config.Features
	VersionInfo  config.VersionSpec
}

// TemplateData flattens the context into the key/value mapping the template
// engine consumes. Keys are stable; templates depend on them by name.
func (c Context) TemplateData() map[string]any {
	data := map[string]any{
		"name":                c.Name,
		"import_name":         c.ImportName,
		"plugin_import_name":  c.PluginImportName,
		"is_plugin":           c.Role == config.RolePlugin,
		"is_plugin_host":      c.Role == config.RolePluginHost,
		"author_name":         c.Author.Name,
		"author_email":        c.Author.Email,
		"github_username":     c.Author.GithubUsername,
		"min_python":          c.Package.MinPython,
		"max_python":          c.Package.MaxPython,
		"license":             c.Package.License,
		"development_status":  c.Package.DevelopmentStatus,
		"dependencies":        stringList(c.Dependencies.Runtime),
		"plugin_dependencies": stringList(c.Dependencies.PluginExtra),
		"dev_dependencies":    stringList(c.Dependencies.Dev),
		"test_dependencies":   stringList(c.Dependencies.Test),
		"use_mkdocs":          c.Features.MkDocs,
		"use_semver":          c.Features.SemVer,
		"use_vcs":             c.Features.VCS,
		"python_version_info": c.VersionInfo.ContextMap(),
	}
	if c.Role == config.RolePlugin {
		data["plugin_host"] = c.PluginHost
		data["plugin_host_import_name"] = strings.ReplaceAll(c.PluginHost, "-", "_")
	}
	return data
}

func stringList(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// Package config parses and validates the TOML document that drives package
// generation. Validation is strict and front-loaded: a Config that survives
// Parse is internally consistent, and every derived value (roles, version
// specs) is a pure function of it.
package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Role classifies a package being generated. The set is closed; resolution
// code treats any other value as a configuration error rather than falling
// back to a default.
type Role string

const (
	// RolePackage is a standalone package.
	RolePackage Role = "package"
	// RolePlugin is a package generated against a plugin host.
	RolePlugin Role = "plugin"
	// RolePluginHost is a package that discovers and loads plugins.
	RolePluginHost Role = "plugin_host"
)

// Author identifies who the generated packages belong to.
type Author struct {
	Name           string `toml:"name"`
	Email          string `toml:"email"`
	GithubUsername string `toml:"github_username"`
}

// PackageSettings carries per-package metadata shared by every generated
// package in the run.
type PackageSettings struct {
	MinPython         string `toml:"min_python"`
	MaxPython         string `toml:"max_python,omitempty"`
	License           string `toml:"license"`
	DevelopmentStatus string `toml:"development_status"`
}

// Dependencies groups requirement specifiers by the dependency class they end
// up in. Each list is deduplicated with insertion order preserved so the
// rendered project files stay deterministic.
type Dependencies struct {
	Runtime     []string `toml:"runtime,omitempty"`
	PluginExtra []string `toml:"plugin_extra,omitempty"`
	Dev         []string `toml:"dev,omitempty"`
	Test        []string `toml:"test,omitempty"`
}

// Features toggles optional template layers and behaviours.
type Features struct {
	MkDocs bool `toml:"mkdocs"`
	SemVer bool `toml:"semver"`
	VCS    bool `toml:"vcs"`
	// IsPluginHost marks a single-package configuration as a plugin host
	// even though no plugins are declared alongside it yet.
	IsPluginHost bool `toml:"is_plugin_host"`
}

// Config is the validated model of one generation run. Construct it through
// Parse or ParseFile; a zero Config is not valid.
type Config struct {
	Packages   []string
	PluginHost string
	OutputDir  string

	Author       Author
	Package      PackageSettings
	Dependencies Dependencies
	Features     Features

	minVer PyVer
	maxVer *PyVer
}

// document mirrors the on-disk TOML shape. Unknown top-level tables are
// ignored; unknown keys inside the known tables fail validation so typos
// surface instead of silently dropping input.
type document struct {
	Project struct {
		Packages   []string `toml:"packages"`
		PluginHost string   `toml:"plugin_host,omitempty"`
		OutputDir  string   `toml:"output_dir,omitempty"`
	} `toml:"project"`
	Author       Author          `toml:"author"`
	Package      PackageSettings `toml:"package"`
	Dependencies Dependencies    `toml:"dependencies"`
	Features     struct {
		MkDocs       *bool `toml:"mkdocs"`
		SemVer       *bool `toml:"semver"`
		VCS          *bool `toml:"vcs"`
		IsPluginHost *bool `toml:"is_plugin_host"`
	} `toml:"features"`
}

var knownKeys = map[string][]string{
	"project":      {"packages", "plugin_host", "output_dir"},
	"author":       {"name", "email", "github_username"},
	"package":      {"min_python", "max_python", "license", "development_status"},
	"dependencies": {"runtime", "plugin_extra", "dev", "test"},
	"features":     {"mkdocs", "semver", "vcs", "is_plugin_host"},
}

// requirementPattern accepts a PEP 508 style requirement: a distribution name,
// optional extras, and an optional comma-separated version specifier set.
var requirementPattern = regexp.MustCompile(
	`^[A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?` +
		`(?:\[[A-Za-z0-9](?:[A-Za-z0-9._, -]*[A-Za-z0-9])?\])?` +
		`(?:\s*(?:===|==|!=|~=|<=|>=|<|>)\s*[A-Za-z0-9.*+!_-]+` +
		`(?:\s*,\s*(?:===|==|!=|~=|<=|>=|<|>)\s*[A-Za-z0-9.*+!_-]+)*)?$`)

var distNamePattern = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$`)

// ParseFile reads and parses a configuration document from disk.
func ParseFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes and validates a TOML configuration document. Any shortcoming
// is reported as a *ValidationError; no partially valid Config escapes.
func Parse(raw []byte) (*Config, error) {
	var doc document
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return nil, newValidationError("", "decode toml: %v", err)
	}
	if err := rejectUnknownKeys(raw); err != nil {
		return nil, err
	}

	cfg := &Config{
		Packages:   doc.Project.Packages,
		PluginHost: strings.TrimSpace(doc.Project.PluginHost),
		OutputDir:  strings.TrimSpace(doc.Project.OutputDir),
		Author:     doc.Author,
		Package:    doc.Package,
		Dependencies: Dependencies{
			Runtime:     dedupe(doc.Dependencies.Runtime),
			PluginExtra: dedupe(doc.Dependencies.PluginExtra),
			Dev:         dedupe(doc.Dependencies.Dev),
			Test:        dedupe(doc.Dependencies.Test),
		},
		Features: Features{
			MkDocs:       boolOr(doc.Features.MkDocs, false),
			SemVer:       boolOr(doc.Features.SemVer, false),
			VCS:          boolOr(doc.Features.VCS, true),
			IsPluginHost: boolOr(doc.Features.IsPluginHost, false),
		},
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.Packages) == 0 {
		return newValidationError("project.packages", "at least one package is required")
	}
	seen := make(map[string]struct{}, len(c.Packages))
	for _, name := range c.Packages {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return newValidationError("project.packages", "package names must not be empty")
		}
		if !distNamePattern.MatchString(trimmed) {
			return newValidationError("project.packages", "invalid distribution name %q", trimmed)
		}
		if _, dup := seen[trimmed]; dup {
			return newValidationError("project.packages", "duplicate package %q", trimmed)
		}
		seen[trimmed] = struct{}{}
	}
	if c.PluginHost != "" {
		if _, ok := seen[c.PluginHost]; !ok {
			return newValidationError("project.plugin_host", "plugin host %q is not listed in project.packages", c.PluginHost)
		}
	}

	for field, value := range map[string]string{
		"author.name":            c.Author.Name,
		"author.email":           c.Author.Email,
		"author.github_username": c.Author.GithubUsername,
	} {
		if strings.TrimSpace(value) == "" {
			return newValidationError(field, "value is required")
		}
	}

	if strings.TrimSpace(c.Package.License) == "" {
		return newValidationError("package.license", "value is required")
	}
	if strings.TrimSpace(c.Package.DevelopmentStatus) == "" {
		return newValidationError("package.development_status", "value is required")
	}
	if strings.TrimSpace(c.Package.MinPython) == "" {
		return newValidationError("package.min_python", "value is required")
	}

	minVer, err := ParsePyVer(c.Package.MinPython)
	if err != nil {
		return newValidationError("package.min_python", "%v", err)
	}
	c.minVer = minVer

	if c.Package.MaxPython != "" {
		maxVer, err := ParsePyVer(c.Package.MaxPython)
		if err != nil {
			return newValidationError("package.max_python", "%v", err)
		}
		if maxVer.Before(minVer) {
			return newValidationError("package.max_python", "%s is lower than min_python %s", maxVer, minVer)
		}
		if maxVer.Major != minVer.Major {
			return newValidationError("package.max_python", "%s must share the major version of min_python %s", maxVer, minVer)
		}
		c.maxVer = &maxVer
	}

	for field, deps := range map[string][]string{
		"dependencies.runtime":      c.Dependencies.Runtime,
		"dependencies.plugin_extra": c.Dependencies.PluginExtra,
		"dependencies.dev":          c.Dependencies.Dev,
		"dependencies.test":         c.Dependencies.Test,
	} {
		for _, dep := range deps {
			if !requirementPattern.MatchString(strings.TrimSpace(dep)) {
				return newValidationError(field, "invalid requirement specifier %q", dep)
			}
		}
	}

	return nil
}

// RoleOf derives the role for a declared package. The result is a pure
// function of the validated configuration and the package identity; it cannot
// change for the duration of a run.
func (c *Config) RoleOf(name string) (Role, error) {
	if !c.declares(name) {
		return "", NewConfigurationError("package %q is not declared in the configuration", name)
	}
	if c.PluginHost != "" {
		if name == c.PluginHost {
			return RolePluginHost, nil
		}
		return RolePlugin, nil
	}
	if c.Features.IsPluginHost && len(c.Packages) == 1 {
		return RolePluginHost, nil
	}
	return RolePackage, nil
}

// VersionSpec derives the Python version spec for this configuration.
func (c *Config) VersionSpec() VersionSpec {
	return NewVersionSpec(c.minVer, c.maxVer)
}

// MinPython returns the validated minimum version.
func (c *Config) MinPython() PyVer { return c.minVer }

// MaxPython returns the validated maximum version, or nil when unset.
func (c *Config) MaxPython() *PyVer { return c.maxVer }

func (c *Config) declares(name string) bool {
	for _, pkg := range c.Packages {
		if pkg == name {
			return true
		}
	}
	return false
}

func rejectUnknownKeys(raw []byte) error {
	var tree map[string]any
	if err := toml.Unmarshal(raw, &tree); err != nil {
		return newValidationError("", "decode toml: %v", err)
	}
	for table, allowed := range knownKeys {
		section, ok := tree[table]
		if !ok {
			continue
		}
		fields, ok := section.(map[string]any)
		if !ok {
			return newValidationError(table, "expected a table")
		}
		var unknown []string
		for key := range fields {
			if !contains(allowed, key) {
				unknown = append(unknown, key)
			}
		}
		if len(unknown) > 0 {
			sort.Strings(unknown)
			return newValidationError(table, "unknown keys: %s", joinFields(unknown))
		}
	}
	return nil
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

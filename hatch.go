// Package hatch generates Python project scaffolding from a declarative
// configuration. The root package re-exports the orchestrator entry points so
// library callers do not have to import the internal packages individually.
package hatch

import (
	"context"

	"github.com/goliatone/go-hatch/pkg/config"
	"github.com/goliatone/go-hatch/pkg/orchestrator"
	"github.com/goliatone/go-hatch/pkg/vcs"
)

// Config is the parsed generation configuration.
type Config = config.Config

// Role classifies a package as standalone, plugin, or plugin host.
type Role = config.Role

// Result records the outcome for one generated package.
type Result = orchestrator.Result

// Summary accumulates per-package results for one run.
type Summary = orchestrator.Summary

// Option configures the orchestrator.
type Option = orchestrator.Option

// ParseConfig parses and validates a configuration document.
func ParseConfig(data []byte) (*Config, error) {
	return config.Parse(data)
}

// ParseConfigFile reads, parses, and validates a configuration file.
func ParseConfigFile(path string) (*Config, error) {
	return config.ParseFile(path)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate parses the configuration file at path and generates every package
// it declares. It is the simplest entry point for callers that just want
// projects on disk.
func Generate(ctx context.Context, configPath string, options ...Option) (Summary, error) {
	cfg, err := config.ParseFile(configPath)
	if err != nil {
		return Summary{}, err
	}
	gen := orchestrator.New(options...)
	return gen.GenerateAll(ctx, cfg)
}

// WithVCS passes a version-control collaborator through to the orchestrator.
// Pass nil to disable repository setup entirely.
func WithVCS(initializer vcs.Initializer) Option {
	return orchestrator.WithVCS(initializer)
}

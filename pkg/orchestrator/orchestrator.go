// Package orchestrator drives the full pipeline for every package in a
// configuration: role derivation, context building, layer resolution,
// composition, materialization, and version-control setup through the
// injected collaborator.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-hatch/pkg/compose"
	"github.com/goliatone/go-hatch/pkg/config"
	"github.com/goliatone/go-hatch/pkg/materialize"
	"github.com/goliatone/go-hatch/pkg/model"
	"github.com/goliatone/go-hatch/pkg/themes"
	"github.com/goliatone/go-hatch/pkg/vcs"
)

// CommitMessage is the message used for the initial commit of a freshly
// generated package.
const CommitMessage = "Initial commit"

// Status classifies the outcome of one package's generation.
type Status string

const (
	// StatusGenerated means every file materialized and, when requested, VCS
	// setup completed.
	StatusGenerated Status = "generated"
	// StatusGenerationFailed means composition or materialization failed.
	StatusGenerationFailed Status = "generation-failed"
	// StatusVCSFailed means files exist but version-control setup did not
	// complete. Generation itself is not considered failed.
	StatusVCSFailed Status = "vcs-failed"
)

// Result records the outcome for one package.
type Result struct {
	Package string
	Role    config.Role
	Status  Status
	Written []string
	Err     error
}

// Summary accumulates per-package results for one run.
type Summary struct {
	Results []Result
}

// Failed reports whether any package failed to generate. VCS failures do not
// count; the files exist even when the tool did not complete.
func (s Summary) Failed() bool {
	for _, result := range s.Results {
		if result.Status == StatusGenerationFailed {
			return true
		}
	}
	return false
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithResolver injects a custom theme resolver.
func WithResolver(resolver *themes.Resolver) Option {
	return func(o *Orchestrator) {
		o.resolver = resolver
	}
}

// WithComposer injects a custom template composer.
func WithComposer(composer *compose.Composer) Option {
	return func(o *Orchestrator) {
		o.composer = composer
	}
}

// WithMaterializer injects a custom materializer.
func WithMaterializer(materializer *materialize.Materializer) Option {
	return func(o *Orchestrator) {
		o.materializer = materializer
	}
}

// WithVCS injects the version-control collaborator. Pass nil to disable VCS
// setup regardless of the configured feature flag.
func WithVCS(initializer vcs.Initializer) Option {
	return func(o *Orchestrator) {
		o.vcsInit = initializer
		o.vcsSpecified = true
	}
}

// WithLogger attaches a logger used across the pipeline.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates package generation. Missing collaborators are
// initialised with the built-in implementations so callers can start with a
// single constructor call. Lifecycle is scoped to one GenerateAll invocation;
// the orchestrator holds no cross-run state.
type Orchestrator struct {
	resolver     *themes.Resolver
	composer     *compose.Composer
	materializer *materialize.Materializer
	vcsInit      vcs.Initializer
	vcsSpecified bool
	logger       zerolog.Logger

	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.resolver == nil {
		resolver, err := themes.NewResolver()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default resolver: %w", err)
		} else {
			o.resolver = resolver
		}
	}
	if o.composer == nil {
		o.composer = compose.NewComposer(compose.WithLogger(o.logger))
	}
	if o.materializer == nil {
		o.materializer = materialize.NewMaterializer(materialize.WithLogger(o.logger))
	}
	if o.vcsInit == nil && !o.vcsSpecified {
		o.vcsInit = vcs.NewGit(vcs.WithLogger(o.logger))
	}

	o.defaultsApplied = true
}

// GenerateAll generates every package the configuration declares. The plugin
// host, when declared, is generated first; the remaining packages follow in
// declared order. A failure generating one package is recorded and does not
// prevent attempting the next; configuration-level inconsistencies abort the
// whole run.
func (o *Orchestrator) GenerateAll(ctx context.Context, cfg *config.Config) (Summary, error) {
	if ctx == nil {
		return Summary{}, errors.New("orchestrator: context is required")
	}
	if cfg == nil {
		return Summary{}, errors.New("orchestrator: configuration is required")
	}
	if err := o.initialiseErr; err != nil {
		return Summary{}, err
	}

	var summary Summary
	for _, name := range generationOrder(cfg) {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result, fatal := o.generatePackage(ctx, cfg, name)
		if fatal != nil {
			return summary, fatal
		}
		summary.Results = append(summary.Results, result)
	}
	return summary, nil
}

// generatePackage runs the pipeline for a single package. The second return
// value is non-nil only for configuration-level errors that must abort the
// run; per-package failures come back inside the Result.
func (o *Orchestrator) generatePackage(ctx context.Context, cfg *config.Config, name string) (Result, error) {
	role, err := cfg.RoleOf(name)
	if err != nil {
		return Result{}, err
	}

	result := Result{Package: name, Role: role}
	logger := o.logger.With().Str("package", name).Str("role", string(role)).Logger()

	pkgCtx, err := model.Build(cfg, name, role)
	if err != nil {
		logger.Error().Err(err).Msg("context build failed")
		result.Status = StatusGenerationFailed
		result.Err = err
		return result, nil
	}

	layers, err := o.resolver.Resolve(role, cfg.Features)
	if err != nil {
		// Unknown role: resolved state is inconsistent, abort the run.
		var cfgErr *config.ConfigurationError
		if errors.As(err, &cfgErr) {
			return Result{}, err
		}
		result.Status = StatusGenerationFailed
		result.Err = err
		return result, nil
	}

	tree, err := o.composer.Compose(layers, pkgCtx)
	if err != nil {
		logger.Error().Err(err).Msg("composition failed")
		result.Status = StatusGenerationFailed
		result.Err = err
		return result, nil
	}

	pkgDir := filepath.Join(cfg.OutputDir, name)
	if err := os.MkdirAll(pkgDir, 0o755); err != nil {
		result.Status = StatusGenerationFailed
		result.Err = &materialize.FileSystemError{Path: pkgDir, Err: err}
		return result, nil
	}

	written, err := o.materializer.Materialize(tree, pkgDir, pkgCtx.ImportName)
	result.Written = written
	if err != nil {
		// No rollback: already-written files stay in place, the package is
		// reported failed, and VCS setup is skipped.
		logger.Error().Err(err).Msg("materialization failed")
		result.Status = StatusGenerationFailed
		result.Err = err
		return result, nil
	}

	logger.Info().Int("files", len(written)).Msg("package generated")

	if cfg.Features.VCS && o.vcsInit != nil {
		if err := o.setupVCS(ctx, cfg, pkgCtx, pkgDir); err != nil {
			logger.Warn().Err(err).Msg("version control setup failed")
			result.Status = StatusVCSFailed
			result.Err = err
			return result, nil
		}
	}

	result.Status = StatusGenerated
	return result, nil
}

func (o *Orchestrator) setupVCS(ctx context.Context, cfg *config.Config, pkgCtx model.Context, pkgDir string) error {
	if err := o.vcsInit.Initialize(ctx, pkgDir); err != nil {
		return err
	}
	if err := o.vcsInit.Commit(ctx, pkgDir, CommitMessage); err != nil {
		return err
	}
	if owner := cfg.Author.GithubUsername; owner != "" {
		if err := o.vcsInit.CreateRemote(ctx, pkgDir, owner, pkgCtx.ImportName); err != nil {
			return err
		}
	}
	return nil
}

// generationOrder puts the plugin host first when one is declared, then the
// remaining packages in declared order. Output correctness does not depend on
// the order, only log and summary determinism does.
func generationOrder(cfg *config.Config) []string {
	if cfg.PluginHost == "" {
		return cfg.Packages
	}
	order := make([]string, 0, len(cfg.Packages))
	order = append(order, cfg.PluginHost)
	for _, name := range cfg.Packages {
		if name != cfg.PluginHost {
			order = append(order, name)
		}
	}
	return order
}

package vcs

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultBranch is the branch name new repositories are renamed to.
const DefaultBranch = "main"

// Runner executes an external command in a working directory and returns its
// combined output. Injectable so tests can observe invocations without the
// real tools installed.
type Runner func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

// Option customises the Git initializer.
type Option func(*Git)

// WithRunner injects a command runner.
func WithRunner(runner Runner) Option {
	return func(g *Git) {
		g.run = runner
	}
}

// WithLogger attaches a logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Git) {
		g.logger = logger
	}
}

// Git implements Initializer by shelling out to git and the gh CLI.
type Git struct {
	run    Runner
	logger zerolog.Logger
}

var _ Initializer = (*Git)(nil)

// NewGit constructs a Git initializer with the real subprocess runner unless
// one is injected.
func NewGit(options ...Option) *Git {
	g := &Git{
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	if g.run == nil {
		g.run = execRunner
	}
	return g
}

// Initialize runs git init and renames the default branch.
func (g *Git) Initialize(ctx context.Context, dir string) error {
	if _, err := g.run(ctx, dir, "git", "init"); err != nil {
		return &ExternalToolError{Tool: "git init", Err: err}
	}
	if _, err := g.run(ctx, dir, "git", "branch", "-M", DefaultBranch); err != nil {
		return &ExternalToolError{Tool: "git branch", Err: err}
	}
	g.logger.Debug().Str("dir", dir).Str("branch", DefaultBranch).Msg("initialized repository")
	return nil
}

// Commit stages the whole tree and records a commit with the given message.
func (g *Git) Commit(ctx context.Context, dir, message string) error {
	if _, err := g.run(ctx, dir, "git", "add", "."); err != nil {
		return &ExternalToolError{Tool: "git add", Err: err}
	}
	if _, err := g.run(ctx, dir, "git", "commit", "-m", message); err != nil {
		return &ExternalToolError{Tool: "git commit", Err: err}
	}
	g.logger.Debug().Str("dir", dir).Msg("created commit")
	return nil
}

// CreateRemote creates a public hosted repository via the gh CLI, wires it as
// origin, and pushes.
func (g *Git) CreateRemote(ctx context.Context, dir, owner, name string) error {
	repo := fmt.Sprintf("%s/%s", owner, name)
	args := []string{"repo", "create", repo, "--public", "--source", dir, "--remote=origin", "--push"}
	if _, err := g.run(ctx, dir, "gh", args...); err != nil {
		return &ExternalToolError{Tool: "gh repo create", Err: err}
	}
	g.logger.Debug().Str("repo", repo).Msg("created remote repository")
	return nil
}

func execRunner(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		trimmed := strings.TrimSpace(string(out))
		if trimmed != "" {
			return out, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, trimmed)
		}
		return out, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return out, nil
}

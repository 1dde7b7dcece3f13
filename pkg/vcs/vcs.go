// Package vcs models version-control setup as an injected capability at the
// orchestrator boundary. The core never shells out directly; tests exercise
// the orchestrator with a stub and never require git or network access.
package vcs

import (
	"context"
	"fmt"
)

// ExternalToolError reports a failed external tool invocation. It is always
// recoverable at the package level: generated files exist even when VCS setup
// did not complete.
type ExternalToolError struct {
	Tool string
	Err  error
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("vcs: %s: %v", e.Tool, e.Err)
}

func (e *ExternalToolError) Unwrap() error { return e.Err }

// Initializer sets up version control for one materialized package
// directory. Implementations apply their own timeout policy via ctx.
type Initializer interface {
	// Initialize creates a repository in dir and names the default branch.
	Initialize(ctx context.Context, dir string) error

	// Commit stages everything under dir and records a commit.
	Commit(ctx context.Context, dir, message string) error

	// CreateRemote creates a hosted repository owned by owner, links it to
	// dir, and pushes the current branch.
	CreateRemote(ctx context.Context, dir, owner, name string) error
}

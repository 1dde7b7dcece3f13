// Package materialize writes a rendered tree onto the filesystem, applying
// the path renaming rules that keep template sources friendly to tooling:
// placeholder segments become the package import name, and the hidden-file
// prefix becomes a leading dot so templates never ship as dot-files.
package materialize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-hatch/pkg/compose"
	"github.com/goliatone/go-hatch/pkg/themes"
)

const (
	// PackagePlaceholder is the reserved path segment replaced by the
	// package's import name.
	PackagePlaceholder = "__package_name__"

	// HiddenPrefix marks files and directories that materialize with a
	// leading dot. Templates avoid authoring real dot-files because tooling
	// tends to special-case them.
	HiddenPrefix = "hidden."
)

// FileSystemError reports a failed write, carrying the path that failed.
// Already-written files for the package are left in place; the orchestrator
// records the package as failed.
type FileSystemError struct {
	Path string
	Err  error
}

func (e *FileSystemError) Error() string {
	return fmt.Sprintf("materialize: %s: %v", e.Path, e.Err)
}

func (e *FileSystemError) Unwrap() error { return e.Err }

// Option customises the materializer.
type Option func(*Materializer)

// WithLogger attaches a logger for per-file debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Materializer) {
		m.logger = logger
	}
}

// Materializer flushes rendered trees to disk. Directory creation is
// implicit and idempotent.
type Materializer struct {
	logger zerolog.Logger
}

// NewMaterializer constructs a Materializer.
func NewMaterializer(options ...Option) *Materializer {
	m := &Materializer{
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m
}

// Materialize writes every file in the tree under outputRoot, transforming
// paths with TransformPath. Paths are visited in lexical order so repeated
// runs touch the filesystem identically. On a failed write the files already
// written stay in place and the error reports the failing path.
func (m *Materializer) Materialize(tree compose.RenderedTree, outputRoot, importName string) ([]string, error) {
	written := make([]string, 0, len(tree))

	for _, relPath := range tree.Paths() {
		target := TransformPath(relPath, importName)
		fullPath := filepath.Join(outputRoot, filepath.FromSlash(target))

		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			return written, &FileSystemError{Path: fullPath, Err: err}
		}
		if err := os.WriteFile(fullPath, tree[relPath], 0o644); err != nil {
			return written, &FileSystemError{Path: fullPath, Err: err}
		}

		written = append(written, target)
		m.logger.Debug().Str("path", target).Msg("wrote file")
	}

	return written, nil
}

// TransformPath applies the renaming rules to a slash-separated relative
// path, in order: placeholder segments are replaced by the import name, the
// hidden prefix becomes a leading dot, and the template suffix is stripped
// from the filename.
func TransformPath(relPath, importName string) string {
	segments := strings.Split(relPath, "/")
	for i, segment := range segments {
		if segment == PackagePlaceholder {
			segments[i] = importName
			continue
		}
		if strings.HasPrefix(segment, HiddenPrefix) {
			segments[i] = "." + strings.TrimPrefix(segment, HiddenPrefix)
		}
	}

	last := len(segments) - 1
	segments[last] = strings.TrimSuffix(segments[last], themes.TemplateExt)

	return strings.Join(segments, "/")
}

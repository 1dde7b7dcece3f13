// Package compose renders resolved theme layers against a package context
// and merges the results into an in-memory tree. Later layers replace earlier
// layers' files at the same relative path; file contents are never merged
// across layers. Nothing in this package touches the filesystem, so a failed
// composition leaves no partial output behind.
package compose

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-hatch/pkg/model"
	"github.com/goliatone/go-hatch/pkg/template"
	"github.com/goliatone/go-hatch/pkg/template/gotemplate"
	"github.com/goliatone/go-hatch/pkg/themes"
)

// RenderError reports a template that failed to render, identifying the layer
// and the relative path of the offending file. Composition aborts for the
// package; nothing has been written yet.
type RenderError struct {
	Layer string
	Path  string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("compose: layer %q: template %q: %v", e.Layer, e.Path, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// RenderedTree maps relative output paths to rendered content. It is owned by
// the orchestrator for the duration of one package's generation and discarded
// after being flushed to disk.
type RenderedTree map[string][]byte

// Paths lists the tree's relative paths in lexical order, for deterministic
// iteration.
func (t RenderedTree) Paths() []string {
	paths := make([]string, 0, len(t))
	for p := range t {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// EngineFactory builds a template engine over a file system. The composer
// constructs one engine per layer so include resolution only ever sees the
// current layer and the layers below it.
type EngineFactory func(source fs.FS) (template.Renderer, error)

// Option customises the composer configuration.
type Option func(*Composer)

// WithEngineFactory injects a custom template engine constructor.
func WithEngineFactory(factory EngineFactory) Option {
	return func(c *Composer) {
		c.newEngine = factory
	}
}

// WithLogger attaches a logger. The composer logs at debug level only.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Composer) {
		c.logger = logger
	}
}

// Composer renders layer stacks. It is stateless after construction and safe
// to reuse across packages within a run.
type Composer struct {
	newEngine EngineFactory
	logger    zerolog.Logger
}

// NewComposer constructs a Composer, defaulting to the pongo2-backed engine.
func NewComposer(options ...Option) *Composer {
	c := &Composer{
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.newEngine == nil {
		c.newEngine = func(source fs.FS) (template.Renderer, error) {
			return gotemplate.New(
				gotemplate.WithFS(source),
				gotemplate.WithExtension(themes.TemplateExt),
			)
		}
	}
	return c
}

// Compose renders each layer in priority order against the context and merges
// the results, last layer winning at identical relative paths. Snippet-only
// layers contribute no output files but stay visible to include resolution in
// higher layers.
func (c *Composer) Compose(layers []themes.Layer, ctx model.Context) (RenderedTree, error) {
	data := ctx.TemplateData()
	tree := make(RenderedTree)

	for i, layer := range layers {
		if layer.SnippetsOnly {
			continue
		}

		engine, err := c.newEngine(newOverlay(layers[:i+1]))
		if err != nil {
			return nil, fmt.Errorf("compose: engine for layer %q: %w", layer.Name, err)
		}

		paths, err := layer.Templates()
		if err != nil {
			return nil, &RenderError{Layer: layer.Name, Path: ".", Err: err}
		}

		for _, templatePath := range paths {
			content, err := engine.RenderTemplate(templatePath, data)
			if err != nil {
				return nil, &RenderError{Layer: layer.Name, Path: templatePath, Err: err}
			}

			outputPath, err := renderPath(engine, templatePath, data)
			if err != nil {
				return nil, &RenderError{Layer: layer.Name, Path: templatePath, Err: err}
			}

			tree[outputPath] = []byte(content)
		}

		c.logger.Debug().
			Str("layer", layer.Name).
			Int("templates", len(paths)).
			Msg("rendered layer")
	}

	return tree, nil
}

// renderPath treats a template path carrying placeholder syntax as a template
// itself, so directory and file names can depend on the context. Plain paths
// pass through unchanged.
func renderPath(engine template.Renderer, templatePath string, data map[string]any) (string, error) {
	if !strings.Contains(templatePath, "{{") && !strings.Contains(templatePath, "{%") {
		return templatePath, nil
	}

	rendered, err := engine.RenderString(templatePath, data)
	if err != nil {
		return "", fmt.Errorf("render path: %w", err)
	}

	cleaned := path.Clean(strings.TrimSpace(rendered))
	if cleaned == "" || cleaned == "." || strings.HasPrefix(cleaned, "..") || path.IsAbs(cleaned) {
		return "", fmt.Errorf("render path: %q resolves outside the output tree", rendered)
	}
	return cleaned, nil
}

// overlay stacks layer file systems so lookups hit the highest-priority layer
// that carries the path. Include directives therefore resolve within the
// current layer or any lower one, never a higher one.
type overlay []fs.FS

func newOverlay(layers []themes.Layer) fs.FS {
	stack := make(overlay, 0, len(layers))
	for i := len(layers) - 1; i >= 0; i-- {
		stack = append(stack, layers[i].Source)
	}
	return stack
}

func (o overlay) Open(name string) (fs.File, error) {
	for _, source := range o {
		file, err := source.Open(name)
		if err == nil {
			return file, nil
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

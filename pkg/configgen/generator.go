// Package configgen renders example configuration documents for a package
// role. It shares the theme tree and template engine with the composition
// pipeline but never invokes the orchestrator; the output is a starting
// point users edit before running generation.
package configgen

import (
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-hatch/pkg/config"
	"github.com/goliatone/go-hatch/pkg/template"
	"github.com/goliatone/go-hatch/pkg/template/gotemplate"
	"github.com/goliatone/go-hatch/pkg/themes"
)

// Params seeds the generated document. Zero values fall back to documented
// placeholders so the preview is always complete and parseable.
type Params struct {
	Name       string
	PluginHost string

	AuthorName     string
	AuthorEmail    string
	GithubUsername string

	MinPython         string
	MaxPython         string
	License           string
	DevelopmentStatus string

	Dependencies       []string
	PluginDependencies []string
	DevDependencies    []string
	TestDependencies   []string

	UseMkDocs bool
	UseSemVer bool
	UseVCS    bool
}

func (p Params) withDefaults(role config.Role) Params {
	if p.Name == "" {
		switch role {
		case config.RolePlugin:
			p.Name = "my-plugin"
		case config.RolePluginHost:
			p.Name = "my-plugin-host"
		default:
			p.Name = "my-package"
		}
	}
	if role == config.RolePlugin && p.PluginHost == "" {
		p.PluginHost = "my-plugin-host"
	}
	if p.AuthorName == "" {
		p.AuthorName = "AUTHOR_NAME"
	}
	if p.AuthorEmail == "" {
		p.AuthorEmail = "author@example.com"
	}
	if p.GithubUsername == "" {
		p.GithubUsername = "github_username"
	}
	if p.MinPython == "" {
		p.MinPython = "3.10"
	}
	if p.License == "" {
		p.License = "MIT"
	}
	if p.DevelopmentStatus == "" {
		p.DevelopmentStatus = "4 - Beta"
	}
	return p
}

// Option customises the generator.
type Option func(*Generator)

// WithEngine injects a custom template engine.
func WithEngine(engine template.Renderer) Option {
	return func(g *Generator) {
		g.engine = engine
	}
}

// Generator renders role-specific configuration previews from the embedded
// theme tree.
type Generator struct {
	engine template.Renderer
}

// NewGenerator constructs a Generator over the embedded templates.
func NewGenerator(options ...Option) (*Generator, error) {
	g := &Generator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	if g.engine == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(themes.EmbeddedFS()),
			gotemplate.WithExtension(themes.TemplateExt),
		)
		if err != nil {
			return nil, fmt.Errorf("configgen: build engine: %w", err)
		}
		g.engine = engine
	}
	return g, nil
}

// Generate renders the example document for a role and verifies that the
// result round-trips through config.Parse, so a preview can never suggest an
// invalid configuration.
func (g *Generator) Generate(role config.Role, params Params) (string, error) {
	templateName, err := templateFor(role)
	if err != nil {
		return "", err
	}

	params = params.withDefaults(role)
	content, err := g.engine.RenderTemplate(templateName, contextFor(params))
	if err != nil {
		return "", fmt.Errorf("configgen: render %s: %w", templateName, err)
	}

	if _, err := config.Parse([]byte(content)); err != nil {
		return "", fmt.Errorf("configgen: generated preview does not validate: %w", err)
	}
	return content, nil
}

// Write renders the example document and writes it to path.
func (g *Generator) Write(role config.Role, path string, params Params) error {
	content, err := g.Generate(role, params)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("configgen: write %s: %w", path, err)
	}
	return nil
}

func templateFor(role config.Role) (string, error) {
	switch role {
	case config.RolePackage:
		return "configgen/package.toml", nil
	case config.RolePlugin:
		return "configgen/plugin.toml", nil
	case config.RolePluginHost:
		return "configgen/plugin_host.toml", nil
	default:
		return "", config.NewConfigurationError("no configuration template for role %q", string(role))
	}
}

func contextFor(params Params) map[string]any {
	return map[string]any{
		"name":                params.Name,
		"plugin_host":         params.PluginHost,
		"author_name":         params.AuthorName,
		"author_email":        params.AuthorEmail,
		"github_username":     params.GithubUsername,
		"min_python":          params.MinPython,
		"max_python":          params.MaxPython,
		"license":             params.License,
		"development_status":  params.DevelopmentStatus,
		"dependencies":        params.Dependencies,
		"plugin_dependencies": params.PluginDependencies,
		"dev_dependencies":    params.DevDependencies,
		"test_dependencies":   params.TestDependencies,
		"use_mkdocs":          params.UseMkDocs,
		"use_semver":          params.UseSemVer,
		"use_vcs":             params.UseVCS,
	}
}

// RoleFromString maps the CLI-facing role names onto config roles. Both the
// underscore and hyphen spellings of plugin host are accepted.
func RoleFromString(raw string) (config.Role, error) {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "package":
		return config.RolePackage, nil
	case "plugin":
		return config.RolePlugin, nil
	case "plugin_host", "plugin-host":
		return config.RolePluginHost, nil
	default:
		return "", fmt.Errorf("configgen: unknown package type %q", raw)
	}
}

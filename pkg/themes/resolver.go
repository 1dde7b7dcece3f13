// Package themes resolves which template layers apply to a package role and
// feature set, and in which order they override one another. Resolution is
// pure: the same role and features always produce the same ordered list.
package themes

import (
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-hatch/pkg/config"
)

// Layer names shipped with the distribution. The shared layer carries include
// snippets only and always resolves first, at the lowest priority.
const (
	LayerShared     = "shared"
	LayerDefault    = "default"
	LayerPackage    = "package"
	LayerPlugin     = "plugin"
	LayerPluginHost = "plugin_host"
	LayerMkDocs     = "mkdocs"
)

var roleLayers = map[config.Role]string{
	config.RolePackage:    LayerPackage,
	config.RolePlugin:     LayerPlugin,
	config.RolePluginHost: LayerPluginHost,
}

// featureLayers fixes the order feature layers append in. Only mkdocs is
// defined at present; new features extend this list.
var featureLayers = []struct {
	name    string
	enabled func(config.Features) bool
}{
	{name: LayerMkDocs, enabled: func(f config.Features) bool { return f.MkDocs }},
}

// Option customises resolver construction.
type Option func(*Resolver)

// WithSourceFS overrides the embedded theme tree, mainly for tests.
func WithSourceFS(source fs.FS) Option {
	return func(r *Resolver) {
		r.source = source
	}
}

// Resolver maps (role, features) to an ordered sequence of layers. It also
// implements go-theme's ThemeSelector so callers can look individual layers
// up by name.
type Resolver struct {
	source fs.FS
	layers map[string]Layer
}

var _ theme.ThemeSelector = (*Resolver)(nil)

// NewResolver indexes the theme tree and fails if any distribution layer is
// missing from it.
func NewResolver(options ...Option) (*Resolver, error) {
	r := &Resolver{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.source == nil {
		r.source = EmbeddedFS()
	}

	r.layers = make(map[string]Layer)
	for _, name := range []string{LayerShared, LayerDefault, LayerPackage, LayerPlugin, LayerPluginHost, LayerMkDocs} {
		sub, err := fs.Sub(r.source, name)
		if err != nil {
			return nil, fmt.Errorf("themes: layer %q: %w", name, err)
		}
		if _, err := fs.Stat(sub, "."); err != nil {
			return nil, fmt.Errorf("themes: layer %q missing from theme tree: %w", name, err)
		}
		manifest, err := buildManifest(name, sub)
		if err != nil {
			return nil, err
		}
		r.layers[name] = Layer{
			Name:         name,
			Source:       sub,
			SnippetsOnly: name == LayerShared,
			Manifest:     manifest,
		}
	}
	return r, nil
}

// Resolve returns the layers applying to the given role and features, lowest
// priority first: shared, then default, then the role layer, then each
// enabled feature layer in declared order. An unknown role fails fast; no
// role silently falls back to the standalone package layer.
func (r *Resolver) Resolve(role config.Role, features config.Features) ([]Layer, error) {
	roleLayer, ok := roleLayers[role]
	if !ok {
		return nil, config.NewConfigurationError("unknown package role %q", string(role))
	}

	names := []string{LayerShared, LayerDefault, roleLayer}
	for _, feature := range featureLayers {
		if feature.enabled(features) {
			names = append(names, feature.name)
		}
	}

	layers := make([]Layer, 0, len(names))
	for _, name := range names {
		layers = append(layers, r.layers[name])
	}
	return layers, nil
}

// Select implements theme.ThemeSelector over the layer index. Variants are
// not used by the shipped layers; the value is echoed back in the selection.
func (r *Resolver) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	layer, ok := r.layers[name]
	if !ok {
		return nil, fmt.Errorf("themes: unknown layer %q", name)
	}
	return &theme.Selection{
		Theme:    layer.Name,
		Variant:  variant,
		Manifest: layer.Manifest,
	}, nil
}

// Layers lists every indexed layer name, resolution-order stable.
func (r *Resolver) Layers() []string {
	return []string{LayerShared, LayerDefault, LayerPackage, LayerPlugin, LayerPluginHost, LayerMkDocs}
}

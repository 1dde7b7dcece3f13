package themes

import (
	"fmt"
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// TemplateExt is the suffix identifying template files inside a layer. The
// materializer strips it from output paths.
const TemplateExt = ".tpl"

// Layer is one named, ordered source of template files contributing to a
// package's output. Layers are computed per render invocation and never
// persisted.
type Layer struct {
	// Name is the layer's directory name, e.g. "default" or "mkdocs".
	Name string

	// Source is the layer's template tree, rooted at the layer directory.
	Source fs.FS

	// SnippetsOnly marks a layer that only supplies fragments for other
	// layers to include. The composer skips its files when enumerating
	// output, but keeps them reachable for include resolution.
	SnippetsOnly bool

	// Manifest describes the layer in go-theme terms: template paths keyed by
	// the relative output path they produce.
	Manifest *theme.Manifest
}

// Templates enumerates the layer's template files in lexical order as paths
// relative to the layer root.
func (l Layer) Templates() ([]string, error) {
	var paths []string
	err := fs.WalkDir(l.Source, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(path, TemplateExt) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("themes: walk layer %q: %w", l.Name, err)
	}
	return paths, nil
}

func buildManifest(name string, source fs.FS) (*theme.Manifest, error) {
	templates := map[string]string{}
	err := fs.WalkDir(source, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(path, TemplateExt) {
			return nil
		}
		templates[strings.TrimSuffix(path, TemplateExt)] = path
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("themes: index layer %q: %w", name, err)
	}
	return &theme.Manifest{
		Name:      name,
		Version:   "1.0.0",
		Templates: templates,
	}, nil
}

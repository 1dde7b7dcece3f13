package themes_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-hatch/pkg/config"
	"github.com/goliatone/go-hatch/pkg/themes"
)

func layerNames(layers []themes.Layer) []string {
	names := make([]string, 0, len(layers))
	for _, layer := range layers {
		names = append(names, layer.Name)
	}
	return names
}

func TestResolveOrderPerRole(t *testing.T) {
	resolver, err := themes.NewResolver()
	if err != nil {
		t.Fatalf("NewResolver returned error: %v", err)
	}

	cases := []struct {
		name     string
		role     config.Role
		features config.Features
		want     []string
	}{
		{
			name: "standalone package",
			role: config.RolePackage,
			want: []string{"shared", "default", "package"},
		},
		{
			name: "plugin",
			role: config.RolePlugin,
			want: []string{"shared", "default", "plugin"},
		},
		{
			name: "plugin host",
			role: config.RolePluginHost,
			want: []string{"shared", "default", "plugin_host"},
		},
		{
			name:     "package with mkdocs",
			role:     config.RolePackage,
			features: config.Features{MkDocs: true},
			want:     []string{"shared", "default", "package", "mkdocs"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			layers, err := resolver.Resolve(tc.role, tc.features)
			if err != nil {
				t.Fatalf("Resolve returned error: %v", err)
			}
			if diff := cmp.Diff(tc.want, layerNames(layers)); diff != "" {
				t.Errorf("layer order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveUnknownRole(t *testing.T) {
	resolver, err := themes.NewResolver()
	if err != nil {
		t.Fatalf("NewResolver returned error: %v", err)
	}

	_, err = resolver.Resolve(config.Role("library"), config.Features{})
	var cfgErr *config.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Resolve(library) = %v, want ConfigurationError", err)
	}
}

func TestResolveIsRepeatable(t *testing.T) {
	resolver, err := themes.NewResolver()
	if err != nil {
		t.Fatalf("NewResolver returned error: %v", err)
	}

	first, err := resolver.Resolve(config.RolePlugin, config.Features{MkDocs: true})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	second, err := resolver.Resolve(config.RolePlugin, config.Features{MkDocs: true})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if diff := cmp.Diff(layerNames(first), layerNames(second)); diff != "" {
		t.Errorf("repeated resolution differs (-first +second):\n%s", diff)
	}
}

func TestSharedLayerIsSnippetsOnly(t *testing.T) {
	resolver, err := themes.NewResolver()
	if err != nil {
		t.Fatalf("NewResolver returned error: %v", err)
	}

	layers, err := resolver.Resolve(config.RolePackage, config.Features{})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	for _, layer := range layers {
		if got, want := layer.SnippetsOnly, layer.Name == themes.LayerShared; got != want {
			t.Errorf("layer %q snippets-only = %v, want %v", layer.Name, got, want)
		}
	}
}

func TestLayerTemplates(t *testing.T) {
	resolver, err := themes.NewResolver()
	if err != nil {
		t.Fatalf("NewResolver returned error: %v", err)
	}

	layers, err := resolver.Resolve(config.RolePackage, config.Features{})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	defaultLayer := layers[1]
	paths, err := defaultLayer.Templates()
	if err != nil {
		t.Fatalf("Templates returned error: %v", err)
	}
	if len(paths) == 0 {
		t.Fatal("default layer has no templates")
	}

	found := false
	for _, p := range paths {
		if p == "pyproject.toml.tpl" {
			found = true
		}
	}
	if !found {
		t.Errorf("default layer templates %v do not include pyproject.toml.tpl", paths)
	}
}

func TestSelect(t *testing.T) {
	resolver, err := themes.NewResolver()
	if err != nil {
		t.Fatalf("NewResolver returned error: %v", err)
	}

	selection, err := resolver.Select(themes.LayerDefault, "")
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if selection.Theme != themes.LayerDefault {
		t.Errorf("selection theme = %q", selection.Theme)
	}
	if selection.Manifest == nil || len(selection.Manifest.Templates) == 0 {
		t.Error("selection manifest is empty")
	}
	if _, ok := selection.Manifest.Templates["pyproject.toml"]; !ok {
		t.Error("manifest does not key templates by output path")
	}

	if _, err := resolver.Select("nonexistent", ""); err == nil {
		t.Error("Select should fail for unknown layers")
	}
}

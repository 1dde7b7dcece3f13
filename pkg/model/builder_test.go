package model_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-hatch/pkg/config"
	"github.com/goliatone/go-hatch/pkg/model"
)

func parseConfig(t *testing.T, doc string) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	return cfg
}

const standaloneDoc = `
[project]
packages = ["demo-pkg"]

[author]
name = "Jordan Vale"
email = "jordan@example.com"
github_username = "jordanvale"

[package]
min_python = "3.10"
license = "MIT"
development_status = "4 - Beta"

[dependencies]
runtime = ["httpx>=0.27"]
`

const pluginDoc = `
[project]
packages = ["core-app", "core-app-ext"]
plugin_host = "core-app"

[author]
name = "Jordan Vale"
email = "jordan@example.com"
github_username = "jordanvale"

[package]
min_python = "3.10"
license = "MIT"
development_status = "4 - Beta"
`

func TestBuildStandalonePackage(t *testing.T) {
	cfg := parseConfig(t, standaloneDoc)

	ctx, err := model.Build(cfg, "demo-pkg", config.RolePackage)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	if ctx.Name != "demo-pkg" {
		t.Errorf("name = %q", ctx.Name)
	}
	if ctx.ImportName != "demo_pkg" {
		t.Errorf("import name = %q", ctx.ImportName)
	}
	if ctx.PluginImportName != "demo_pkg" {
		t.Errorf("plugin import name = %q, want the import name for non-plugins", ctx.PluginImportName)
	}
	if ctx.PluginHost != "" {
		t.Errorf("plugin host = %q, want empty", ctx.PluginHost)
	}
}

func TestBuildRejectsInvalidImportName(t *testing.T) {
	cfg := parseConfig(t, standaloneDoc)

	_, err := model.Build(cfg, "123-bad", config.RolePackage)
	var nerr *model.NamingError
	if !errors.As(err, &nerr) {
		t.Fatalf("Build(123-bad) = %v, want NamingError", err)
	}
	if nerr.Name != "123-bad" || nerr.ImportName != "123_bad" {
		t.Errorf("NamingError = %+v", nerr)
	}
}

func TestBuildPluginStripsHostPrefix(t *testing.T) {
	cfg := parseConfig(t, pluginDoc)

	ctx, err := model.Build(cfg, "core-app-ext", config.RolePlugin)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if ctx.ImportName != "core_app_ext" {
		t.Errorf("import name = %q", ctx.ImportName)
	}
	if ctx.PluginImportName != "ext" {
		t.Errorf("plugin import name = %q, want the host prefix stripped", ctx.PluginImportName)
	}
	if ctx.PluginHost != "core-app" {
		t.Errorf("plugin host = %q", ctx.PluginHost)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	cfg := parseConfig(t, standaloneDoc)

	first, err := model.Build(cfg, "demo-pkg", config.RolePackage)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	second, err := model.Build(cfg, "demo-pkg", config.RolePackage)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if diff := cmp.Diff(first.TemplateData(), second.TemplateData()); diff != "" {
		t.Errorf("repeated builds differ (-first +second):\n%s", diff)
	}
}

func TestTemplateDataKeys(t *testing.T) {
	cfg := parseConfig(t, pluginDoc)

	ctx, err := model.Build(cfg, "core-app-ext", config.RolePlugin)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	data := ctx.TemplateData()

	if data["is_plugin"] != true {
		t.Error("is_plugin should be true")
	}
	if data["is_plugin_host"] != false {
		t.Error("is_plugin_host should be false")
	}
	if data["plugin_host"] != "core-app" {
		t.Errorf("plugin_host = %v", data["plugin_host"])
	}
	if data["plugin_host_import_name"] != "core_app" {
		t.Errorf("plugin_host_import_name = %v", data["plugin_host_import_name"])
	}
	if data["plugin_import_name"] != "ext" {
		t.Errorf("plugin_import_name = %v", data["plugin_import_name"])
	}

	// Dependency lists render as empty slices rather than nil so loops in the
	// templates never hit a missing value.
	if deps, ok := data["dependencies"].([]string); !ok || deps == nil {
		t.Errorf("dependencies = %#v, want an empty slice", data["dependencies"])
	}

	hostCtx, err := model.Build(cfg, "core-app", config.RolePluginHost)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	hostData := hostCtx.TemplateData()
	if _, ok := hostData["plugin_host"]; ok {
		t.Error("plugin_host should only appear for plugins")
	}
	if hostData["is_plugin_host"] != true {
		t.Error("is_plugin_host should be true for the host")
	}
}

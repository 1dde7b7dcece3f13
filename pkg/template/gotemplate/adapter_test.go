package gotemplate_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-hatch/pkg/template/gotemplate"
)

func newEngine(t *testing.T, files map[string]string, options ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()
	fsys := fstest.MapFS{}
	for path, content := range files {
		fsys[path] = &fstest.MapFile{Data: []byte(content)}
	}
	opts := append([]gotemplate.Option{gotemplate.WithFS(fsys)}, options...)
	engine, err := gotemplate.New(opts...)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return engine
}

func TestNewRequiresASource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Error("New without a source should fail")
	}
}

func TestRenderTemplateAppendsExtension(t *testing.T) {
	engine := newEngine(t, map[string]string{
		"greeting.tpl": "hello {{ name }}",
	})

	out, err := engine.RenderTemplate("greeting", map[string]any{"name": "world"})
	if err != nil {
		t.Fatalf("RenderTemplate returned error: %v", err)
	}
	if out != "hello world" {
		t.Errorf("rendered %q", out)
	}

	// The full path works too.
	out, err = engine.RenderTemplate("greeting.tpl", map[string]any{"name": "again"})
	if err != nil {
		t.Fatalf("RenderTemplate returned error: %v", err)
	}
	if out != "hello again" {
		t.Errorf("rendered %q", out)
	}
}

func TestRenderTemplateResolvesIncludes(t *testing.T) {
	engine := newEngine(t, map[string]string{
		"page.tpl":            "{% include \"snippets/header.tpl\" %} body",
		"snippets/header.tpl": "[{{ title }}]",
	})

	out, err := engine.RenderTemplate("page", map[string]any{"title": "docs"})
	if err != nil {
		t.Fatalf("RenderTemplate returned error: %v", err)
	}
	if out != "[docs] body" {
		t.Errorf("rendered %q", out)
	}
}

func TestRenderString(t *testing.T) {
	engine := newEngine(t, map[string]string{"unused.tpl": ""})

	out, err := engine.RenderString("{{ a }} and {{ b }}", map[string]any{"a": "x", "b": "y"})
	if err != nil {
		t.Fatalf("RenderString returned error: %v", err)
	}
	if out != "x and y" {
		t.Errorf("rendered %q", out)
	}
}

func TestRenderDispatchesOnContent(t *testing.T) {
	engine := newEngine(t, map[string]string{
		"doc.tpl": "from file",
	})

	out, err := engine.Render("doc", nil)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if out != "from file" {
		t.Errorf("rendered %q", out)
	}

	out, err = engine.Render("inline {{ v }}", map[string]any{"v": "value"})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if out != "inline value" {
		t.Errorf("rendered %q", out)
	}
}

func TestGlobalData(t *testing.T) {
	engine := newEngine(t, map[string]string{"unused.tpl": ""},
		gotemplate.WithGlobalData(map[string]any{"project": "hatch"}))

	out, err := engine.RenderString("{{ project }}/{{ local }}", map[string]any{"local": "pkg"})
	if err != nil {
		t.Fatalf("RenderString returned error: %v", err)
	}
	if out != "hatch/pkg" {
		t.Errorf("rendered %q", out)
	}
}

func TestSplitFilter(t *testing.T) {
	engine := newEngine(t, map[string]string{"unused.tpl": ""})

	out, err := engine.RenderString(
		`{% for part in value|split:"." %}[{{ part }}]{% endfor %}`,
		map[string]any{"value": "3.10"})
	if err != nil {
		t.Fatalf("RenderString returned error: %v", err)
	}
	if out != "[3][10]" {
		t.Errorf("rendered %q", out)
	}
}

func TestRenderStringWriterOutput(t *testing.T) {
	engine := newEngine(t, map[string]string{"unused.tpl": ""})

	var sb strings.Builder
	out, err := engine.RenderString("{{ v }}", map[string]any{"v": "copy"}, &sb)
	if err != nil {
		t.Fatalf("RenderString returned error: %v", err)
	}
	if out != "copy" || sb.String() != "copy" {
		t.Errorf("rendered %q, writer captured %q", out, sb.String())
	}
}

func TestUnsupportedContextType(t *testing.T) {
	engine := newEngine(t, map[string]string{"unused.tpl": ""})

	if _, err := engine.RenderString("{{ v }}", 42); err == nil {
		t.Error("non-map context should fail")
	}
}

func TestMissingTemplate(t *testing.T) {
	engine := newEngine(t, map[string]string{"present.tpl": "here"})

	if _, err := engine.RenderTemplate("absent", nil); err == nil {
		t.Error("missing template should fail")
	}
}

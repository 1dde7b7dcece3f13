package prompts_test

import (
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2"

	"github.com/goliatone/go-hatch/pkg/config"
	"github.com/goliatone/go-hatch/pkg/prompts"
)

// scriptedAsk answers prompts from a queue, falling back to each prompt's
// default when the queued answer is nil.
func scriptedAsk(t *testing.T, answers []any) prompts.AskFunc {
	t.Helper()
	i := 0
	return func(prompt survey.Prompt, response any, _ ...survey.AskOpt) error {
		if i >= len(answers) {
			t.Fatalf("unexpected prompt %#v", prompt)
		}
		answer := answers[i]
		i++
		switch target := response.(type) {
		case *string:
			if answer != nil {
				*target = answer.(string)
			}
		case *bool:
			if answer != nil {
				*target = answer.(bool)
			}
		default:
			t.Fatalf("unsupported response type %T", response)
		}
		return nil
	}
}

func TestWizardCollectsPluginAnswers(t *testing.T) {
	answers := []any{
		"plugin",        // package type
		"core-app-ext",  // name
		"core-app",      // plugin host
		"Jordan Vale",   // author name
		"j@example.com", // author email
		"jordanvale",    // github username
		"3.10",          // min python
		"3.12",          // max python
		"MIT",           // license
		"4 - Beta",      // development status
		true,            // mkdocs
		false,           // semver
		true,            // vcs
	}

	wizard := prompts.NewWizard(prompts.WithAskFunc(scriptedAsk(t, answers)))
	role, params, err := wizard.Run()
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if role != config.RolePlugin {
		t.Errorf("role = %v", role)
	}
	if params.Name != "core-app-ext" || params.PluginHost != "core-app" {
		t.Errorf("name = %q, host = %q", params.Name, params.PluginHost)
	}
	if params.AuthorName != "Jordan Vale" || params.GithubUsername != "jordanvale" {
		t.Errorf("author fields = %+v", params)
	}
	if !params.UseMkDocs || params.UseSemVer || !params.UseVCS {
		t.Errorf("feature flags = mkdocs=%v semver=%v vcs=%v", params.UseMkDocs, params.UseSemVer, params.UseVCS)
	}
}

func TestWizardSkipsHostForPackages(t *testing.T) {
	answers := []any{
		"package",
		"demo-pkg",
		"Jordan Vale",
		"j@example.com",
		"jordanvale",
		"3.10",
		"", // no max python
		"MIT",
		"4 - Beta",
		false,
		false,
		true,
	}

	wizard := prompts.NewWizard(prompts.WithAskFunc(scriptedAsk(t, answers)))
	role, params, err := wizard.Run()
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if role != config.RolePackage {
		t.Errorf("role = %v", role)
	}
	if params.PluginHost != "" {
		t.Errorf("plugin host should stay empty for packages, got %q", params.PluginHost)
	}
	if params.MaxPython != "" {
		t.Errorf("max python = %q", params.MaxPython)
	}
}

func TestWizardPropagatesPromptErrors(t *testing.T) {
	failure := errors.New("terminal closed")
	wizard := prompts.NewWizard(prompts.WithAskFunc(
		func(survey.Prompt, any, ...survey.AskOpt) error { return failure },
	))

	_, _, err := wizard.Run()
	if !errors.Is(err, failure) {
		t.Fatalf("Run = %v, want wrapped prompt error", err)
	}
}

func TestWizardRejectsUnknownType(t *testing.T) {
	wizard := prompts.NewWizard(prompts.WithAskFunc(scriptedAsk(t, []any{"library"})))
	if _, _, err := wizard.Run(); err == nil {
		t.Fatal("unknown package type should fail")
	}
}

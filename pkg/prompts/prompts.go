// Package prompts implements the interactive configuration wizard. It only
// collects answers; rendering and validation stay in configgen so the wizard
// and the flag-driven path share one code path.
package prompts

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"

	"github.com/goliatone/go-hatch/pkg/config"
	"github.com/goliatone/go-hatch/pkg/configgen"
)

// AskFunc matches survey.AskOne, injectable so tests run without a terminal.
type AskFunc func(prompt survey.Prompt, response any, opts ...survey.AskOpt) error

// Option customises the wizard.
type Option func(*Wizard)

// WithAskFunc injects a prompt function.
func WithAskFunc(ask AskFunc) Option {
	return func(w *Wizard) {
		w.ask = ask
	}
}

// Wizard drives the interactive prompt flow and produces the parameters for
// a configuration preview.
type Wizard struct {
	ask AskFunc
}

// NewWizard constructs a Wizard backed by survey unless a prompt function is
// injected.
func NewWizard(options ...Option) *Wizard {
	w := &Wizard{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	if w.ask == nil {
		w.ask = survey.AskOne
	}
	return w
}

// Run walks the user through the configuration questions and returns the
// selected role with the collected parameters.
func (w *Wizard) Run() (config.Role, configgen.Params, error) {
	var params configgen.Params

	roleName := "package"
	if err := w.ask(&survey.Select{
		Message: "Package type:",
		Options: []string{"package", "plugin", "plugin-host"},
		Default: "package",
	}, &roleName); err != nil {
		return "", params, fmt.Errorf("prompts: package type: %w", err)
	}
	role, err := configgen.RoleFromString(roleName)
	if err != nil {
		return "", params, err
	}

	if err := w.ask(&survey.Input{
		Message: "Package name:",
		Default: defaultName(role),
	}, &params.Name); err != nil {
		return "", params, fmt.Errorf("prompts: package name: %w", err)
	}

	if role == config.RolePlugin {
		if err := w.ask(&survey.Input{
			Message: "Plugin host package name:",
			Default: "my-plugin-host",
		}, &params.PluginHost); err != nil {
			return "", params, fmt.Errorf("prompts: plugin host: %w", err)
		}
	}

	questions := []struct {
		prompt survey.Prompt
		target *string
	}{
		{&survey.Input{Message: "Author name:", Default: "Your Name"}, &params.AuthorName},
		{&survey.Input{Message: "Author email:", Default: "your.email@example.com"}, &params.AuthorEmail},
		{&survey.Input{Message: "GitHub username:", Default: "yourusername"}, &params.GithubUsername},
		{&survey.Input{Message: "Minimum Python version:", Default: "3.10"}, &params.MinPython},
		{&survey.Input{Message: "Maximum Python version (empty for none):"}, &params.MaxPython},
		{&survey.Input{Message: "License:", Default: "MIT"}, &params.License},
		{&survey.Input{Message: "Development status:", Default: "4 - Beta"}, &params.DevelopmentStatus},
	}
	for _, q := range questions {
		if err := w.ask(q.prompt, q.target); err != nil {
			return "", params, fmt.Errorf("prompts: %w", err)
		}
	}

	flags := []struct {
		message string
		def     bool
		target  *bool
	}{
		{"Use MkDocs documentation?", false, &params.UseMkDocs},
		{"Use semantic versioning from VCS tags?", false, &params.UseSemVer},
		{"Initialize version control?", true, &params.UseVCS},
	}
	for _, f := range flags {
		if err := w.ask(&survey.Confirm{Message: f.message, Default: f.def}, f.target); err != nil {
			return "", params, fmt.Errorf("prompts: %w", err)
		}
	}

	return role, params, nil
}

func defaultName(role config.Role) string {
	switch role {
	case config.RolePlugin:
		return "my-plugin"
	case config.RolePluginHost:
		return "my-plugin-host"
	default:
		return "my-package"
	}
}

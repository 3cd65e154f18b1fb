// Package report renders the onboarding guide written next to the project
// and optionally converts it to a secondary format.
package report

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"text/template"
	"time"

	"github.com/hammashamzah/git-autopush/internal/config"
	"github.com/hammashamzah/git-autopush/internal/github"
	"github.com/hammashamzah/git-autopush/internal/runner"
)

//go:embed guide.md.tmpl
var guideTemplate string

var guide = template.Must(template.New("guide").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(guideTemplate))

// ErrConverterUnavailable is returned when no converter is configured or its
// binary is not on PATH
var ErrConverterUnavailable = errors.New("converter not available")

// Input is everything the guide needs
type Input struct {
	Project       string
	Location      string
	Date          time.Time
	Host          string
	Account       string
	Repo          string
	Branch        string
	Visibility    string
	License       github.License
	CommitMessage string
	CreatedByCLI  bool

	// Ignored lists the generated files kept out of the repository
	Ignored []string

	// Actions are the completed actions, in the order they happened
	Actions []string
}

// WebURL returns the repository page
func (in Input) WebURL() string {
	return github.WebURL(in.Host, in.Account, in.Repo)
}

// CloneURL returns the https remote URL
func (in Input) CloneURL() string {
	return github.RepoURL(in.Host, in.Account, in.Repo)
}

// TokensURL returns the personal access token page
func (in Input) TokensURL() string {
	return github.TokensURL(in.Host)
}

func (in Input) withDefaults() Input {
	if in.Host == "" {
		in.Host = "github.com"
	}
	if in.Branch == "" {
		in.Branch = "main"
	}
	if in.Visibility == "" {
		in.Visibility = config.VisibilityPublic
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}
	if in.CommitMessage == "" {
		in.CommitMessage = "Initial commit: " + in.Project
	}
	return in
}

// Generate renders the markdown guide
func Generate(in Input) (string, error) {
	var buf bytes.Buffer
	if err := guide.Execute(&buf, in.withDefaults()); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}

// Write renders the guide and saves it to path
func Write(path string, in Input) error {
	content, err := Generate(in)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Convert runs the configured converter on input, producing output.
// It returns ErrConverterUnavailable when conversion cannot be attempted.
func Convert(ctx context.Context, r runner.Runner, conv config.Converter, dir, input, output string) error {
	if !conv.Enabled() || !r.LookPath(conv.Command) {
		return ErrConverterUnavailable
	}

	res := r.Run(ctx, dir, conv.Command, conv.Expand(input, output)...)
	if !res.OK() {
		if res.Output != "" {
			return fmt.Errorf("%s exited with status %d: %s", conv.Command, res.Code, res.Output)
		}
		return fmt.Errorf("%s exited with status %d", conv.Command, res.Code)
	}
	return nil
}

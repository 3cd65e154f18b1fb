package github

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/hammashamzah/git-autopush/internal/runner"
)

// Status is the availability of the gh CLI
type Status int

const (
	StatusNotInstalled Status = iota
	StatusNotAuthenticated
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAuthenticated:
		return "authenticated"
	case StatusNotAuthenticated:
		return "not_authenticated"
	default:
		return "not_installed"
	}
}

// CLI wraps the gh CLI
type CLI struct {
	runner runner.Runner
	dir    string
}

// NewCLI creates a gh wrapper running in dir
func NewCLI(r runner.Runner, dir string) *CLI {
	return &CLI{runner: r, dir: dir}
}

// Version returns the first line of `gh --version`, or "" if gh is missing
func (c *CLI) Version(ctx context.Context) string {
	res := c.runner.Run(ctx, c.dir, "gh", "--version")
	if !res.OK() {
		return ""
	}
	line, _, _ := strings.Cut(res.Output, "\n")
	return line
}

// Status checks if gh is installed and authenticated.
// Both probes rely on exit status only.
func (c *CLI) Status(ctx context.Context) Status {
	if res := c.runner.Run(ctx, c.dir, "gh", "--version"); !res.OK() {
		return StatusNotInstalled
	}
	if res := c.runner.Run(ctx, c.dir, "gh", "auth", "status"); !res.OK() {
		return StatusNotAuthenticated
	}
	return StatusAuthenticated
}

// Login runs `gh auth login` attached to the terminal
func (c *CLI) Login(ctx context.Context) runner.Result {
	return c.runner.RunInteractive(ctx, c.dir, "gh", "auth", "login")
}

// CreateOptions describes a repository to create
type CreateOptions struct {
	Name       string
	Visibility string // "public" or "private"
	License    License
}

// CreateArgs builds the `gh repo create` arguments.
// README and .gitignore are never requested, the local folder has its own.
func CreateArgs(opts CreateOptions) []string {
	visibility := opts.Visibility
	if visibility == "" {
		visibility = "public"
	}
	args := []string{"repo", "create", opts.Name, "--" + visibility}
	if id := opts.License.ID(); id != "" {
		args = append(args, "--license", id)
	}
	return append(args, "--disable-wiki", "--confirm")
}

// CreateRepo creates the remote repository
func (c *CLI) CreateRepo(ctx context.Context, opts CreateOptions) runner.Result {
	return c.runner.Run(ctx, c.dir, "gh", CreateArgs(opts)...)
}

// RepoURL returns the https clone URL
func RepoURL(host, owner, repo string) string {
	return fmt.Sprintf("https://%s/%s/%s.git", host, owner, repo)
}

// WebURL returns the browser URL of a repository
func WebURL(host, owner, repo string) string {
	return fmt.Sprintf("https://%s/%s/%s", host, owner, repo)
}

// NewRepoURL returns the page for creating a repository by hand
func NewRepoURL(host string) string {
	return fmt.Sprintf("https://%s/new", host)
}

// TokensURL returns the personal access token settings page
func TokensURL(host string) string {
	return fmt.Sprintf("https://%s/settings/tokens", host)
}

// ParseURL extracts owner and repo from SSH or HTTPS remote URLs on host
func ParseURL(host, url string) (owner, repo string, err error) {
	h := regexp.QuoteMeta(host)

	// SSH format: git@github.com:owner/repo.git
	sshRegex := regexp.MustCompile(`git@` + h + `:([^/]+)/([^/]+?)(?:\.git)?$`)
	if matches := sshRegex.FindStringSubmatch(url); len(matches) == 3 {
		return matches[1], matches[2], nil
	}

	// HTTPS format: https://github.com/owner/repo.git
	httpsRegex := regexp.MustCompile(`https://(?:[^@/]+@)?` + h + `/([^/]+)/([^/]+?)(?:\.git)?/?$`)
	if matches := httpsRegex.FindStringSubmatch(url); len(matches) == 3 {
		return matches[1], matches[2], nil
	}

	return "", "", fmt.Errorf("could not parse %s URL: %s", host, url)
}

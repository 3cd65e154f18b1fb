package gitrepo

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/hammashamzah/git-autopush/internal/runner"
	"github.com/hashicorp/go-version"
)

// unrelatedHistoriesSince is the first git release with --allow-unrelated-histories
var unrelatedHistoriesSince = version.Must(version.NewVersion("2.9.0"))

var versionPattern = regexp.MustCompile(`(\d+(?:\.\d+)+)`)

// Version runs `git --version`
func (g *Repo) Version(ctx context.Context) runner.Result {
	return g.git(ctx, "--version")
}

// ParseVersion extracts the numeric version from `git --version` style output,
// e.g. "git version 2.42.0.windows.2" or "gh version 2.40.1 (2023-12-13)"
func ParseVersion(output string) (*version.Version, error) {
	m := versionPattern.FindString(output)
	if m == "" {
		return nil, fmt.Errorf("no version found in %q", output)
	}
	v, err := version.NewVersion(m)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", m, err)
	}
	return v, nil
}

// SupportsUnrelatedHistories reports whether git v can merge unrelated histories
func SupportsUnrelatedHistories(v *version.Version) bool {
	return v != nil && v.GreaterThanOrEqual(unrelatedHistoriesSince)
}

// Init runs `git init`
func (g *Repo) Init(ctx context.Context) runner.Result {
	return g.git(ctx, "init")
}

// RenameBranch renames the current branch
func (g *Repo) RenameBranch(ctx context.Context, branch string) runner.Result {
	return g.git(ctx, "branch", "-m", branch)
}

// SetHeadBranch points HEAD at branch. Unlike RenameBranch it works on an
// unborn branch with any git version.
func (g *Repo) SetHeadBranch(ctx context.Context, branch string) runner.Result {
	return g.git(ctx, "symbolic-ref", "HEAD", "refs/heads/"+branch)
}

// AddAll stages everything in the working tree
func (g *Repo) AddAll(ctx context.Context) runner.Result {
	return g.git(ctx, "add", ".")
}

// StagedFiles returns the names of staged files
func (g *Repo) StagedFiles(ctx context.Context) []string {
	res := g.git(ctx, "diff", "--cached", "--name-only")
	if !res.OK() || res.Output == "" {
		return nil
	}
	var files []string
	for _, line := range strings.Split(res.Output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	return files
}

// Commit creates a commit with the given message
func (g *Repo) Commit(ctx context.Context, message string) runner.Result {
	return g.git(ctx, "commit", "-m", message)
}

// AddRemote adds a named remote
func (g *Repo) AddRemote(ctx context.Context, name, url string) runner.Result {
	return g.git(ctx, "remote", "add", name, url)
}

// RemoveRemote removes a named remote
func (g *Repo) RemoveRemote(ctx context.Context, name string) runner.Result {
	return g.git(ctx, "remote", "remove", name)
}

// SetPullMerge makes pull always merge, never rebase
func (g *Repo) SetPullMerge(ctx context.Context) runner.Result {
	return g.git(ctx, "config", "pull.rebase", "false")
}

// PullUnrelated merges a remote branch whose history shares no ancestor with ours
func (g *Repo) PullUnrelated(ctx context.Context, remote, branch string) runner.Result {
	return g.git(ctx, "pull", remote, branch, "--allow-unrelated-histories")
}

// PushUpstream pushes with upstream tracking. Output is not captured so
// credential prompts stay interactive.
func (g *Repo) PushUpstream(ctx context.Context, remote, branch string) runner.Result {
	return g.runner.RunInteractive(ctx, g.dir, "git", "push", "-u", remote, branch)
}

func (g *Repo) git(ctx context.Context, args ...string) runner.Result {
	return g.runner.Run(ctx, g.dir, "git", args...)
}

// Package gitrepo probes and mutates a local git repository by shelling out
// to the git binary through a runner.Runner.
//
// Every probe re-invokes git and parses its line-oriented output; nothing is
// cached, so a Repo can be queried repeatedly while the orchestrator mutates
// the working tree between calls.
package gitrepo

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/hammashamzah/git-autopush/internal/runner"
)

// OriginRemote is the remote name that qualifies as "connected"
const OriginRemote = "origin"

// Repo wraps git invocations for one working directory
type Repo struct {
	runner runner.Runner
	dir    string
	host   string
}

// New creates a Repo for dir. host is the hosting domain, e.g. github.com.
func New(r runner.Runner, dir, host string) *Repo {
	return &Repo{runner: r, dir: dir, host: host}
}

// IsRepository checks if a .git marker exists directly under path
func IsRepository(path string) bool {
	_, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil
}

// IsRepository checks the Repo's own directory
func (g *Repo) IsRepository() bool {
	return IsRepository(g.dir)
}

// Remote is one line of `git remote -v`
type Remote struct {
	Name string
	URL  string
	Kind string // "fetch" or "push"
}

// ParseRemotes parses `git remote -v` output
func ParseRemotes(listing string) []Remote {
	var remotes []Remote
	for _, line := range strings.Split(listing, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		r := Remote{Name: fields[0], URL: fields[1]}
		if len(fields) > 2 {
			r.Kind = strings.Trim(fields[2], "()")
		}
		remotes = append(remotes, r)
	}
	return remotes
}

// ParseRemoteStatus decides whether a listing shows a qualifying remote: one
// named origin whose URL contains host. Other remotes pointing at host do
// not count.
func ParseRemoteStatus(listing, host string) (connected bool, url string) {
	for _, r := range ParseRemotes(listing) {
		if r.Name == OriginRemote && strings.Contains(r.URL, host) {
			return true, r.URL
		}
	}
	return false, ""
}

// RemoteList returns the raw `git remote -v` listing
func (g *Repo) RemoteList(ctx context.Context) runner.Result {
	return g.git(ctx, "remote", "-v")
}

// RemoteStatus reports whether origin points at the hosting domain
func (g *Repo) RemoteStatus(ctx context.Context) (connected bool, url string) {
	res := g.RemoteList(ctx)
	if !res.OK() || res.Output == "" {
		return false, ""
	}
	return ParseRemoteStatus(res.Output, g.host)
}

// HasRemote checks if a remote with the given name is configured
func (g *Repo) HasRemote(ctx context.Context, name string) bool {
	res := g.RemoteList(ctx)
	if !res.OK() {
		return false
	}
	for _, r := range ParseRemotes(res.Output) {
		if r.Name == name {
			return true
		}
	}
	return false
}

// Status returns the porcelain status listing
func (g *Repo) Status(ctx context.Context) runner.Result {
	return g.git(ctx, "status", "--porcelain")
}

// HasUncommittedChanges checks if the working tree status listing is non-empty
func (g *Repo) HasUncommittedChanges(ctx context.Context) bool {
	res := g.Status(ctx)
	return res.OK() && res.Output != ""
}

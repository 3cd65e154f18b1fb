// Package testutil provides test doubles for git-autopush: a scripted command
// runner that never spawns processes and a scripted prompter that never reads
// stdin, plus helpers for throwaway project folders.
package testutil

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hammashamzah/git-autopush/internal/runner"
)

// OK returns a successful result with the given output
func OK(output string) runner.Result {
	return runner.Result{Output: output}
}

// Fail returns a failed result with the given status and output
func Fail(code int, output string) runner.Result {
	return runner.Result{Output: output, Code: code}
}

// Call records one invocation seen by FakeRunner
type Call struct {
	Dir         string
	Cmdline     string
	Interactive bool
}

type rule struct {
	prefix  string
	results []runner.Result
}

type hook struct {
	prefix string
	fn     func()
}

// FakeRunner implements runner.Runner with scripted results.
// Commands are matched by command-line prefix; the longest prefix wins and,
// among equal prefixes, the most recent registration wins.
type FakeRunner struct {
	rules []*rule
	hooks []hook

	// Calls lists every invocation in order
	Calls []Call

	// Installed controls LookPath
	Installed map[string]bool

	// Default is returned for commands no rule matches
	Default runner.Result
}

// NewFakeRunner creates a FakeRunner where only git is installed
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Installed: map[string]bool{"git": true},
	}
}

// On scripts the results for commands starting with prefix. Results are
// consumed in order and the last one repeats.
func (f *FakeRunner) On(prefix string, results ...runner.Result) *FakeRunner {
	if len(results) == 0 {
		results = []runner.Result{OK("")}
	}
	f.rules = append(f.rules, &rule{prefix: prefix, results: results})
	return f
}

// Do registers fn to run after every command starting with prefix
func (f *FakeRunner) Do(prefix string, fn func()) *FakeRunner {
	f.hooks = append(f.hooks, hook{prefix: prefix, fn: fn})
	return f
}

// Run implements runner.Runner
func (f *FakeRunner) Run(_ context.Context, dir, name string, args ...string) runner.Result {
	return f.call(dir, runner.CommandLine(name, args...), false)
}

// RunInteractive implements runner.Runner. Output is always empty.
func (f *FakeRunner) RunInteractive(_ context.Context, dir, name string, args ...string) runner.Result {
	res := f.call(dir, runner.CommandLine(name, args...), true)
	res.Output = ""
	return res
}

// LookPath implements runner.Runner
func (f *FakeRunner) LookPath(name string) bool {
	return f.Installed[name]
}

func (f *FakeRunner) call(dir, cmdline string, interactive bool) runner.Result {
	f.Calls = append(f.Calls, Call{Dir: dir, Cmdline: cmdline, Interactive: interactive})

	res := f.Default
	var best *rule
	for _, r := range f.rules {
		if !strings.HasPrefix(cmdline, r.prefix) {
			continue
		}
		if best == nil || len(r.prefix) >= len(best.prefix) {
			best = r
		}
	}
	if best != nil {
		res = best.results[0]
		if len(best.results) > 1 {
			best.results = best.results[1:]
		}
	}

	for _, h := range f.hooks {
		if strings.HasPrefix(cmdline, h.prefix) {
			h.fn()
		}
	}
	return res
}

// Commands returns every command line in order
func (f *FakeRunner) Commands() []string {
	out := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		out[i] = c.Cmdline
	}
	return out
}

// Count returns how many commands started with prefix
func (f *FakeRunner) Count(prefix string) int {
	n := 0
	for _, c := range f.Calls {
		if strings.HasPrefix(c.Cmdline, prefix) {
			n++
		}
	}
	return n
}

// Ran reports whether any command started with prefix
func (f *FakeRunner) Ran(prefix string) bool {
	return f.Count(prefix) > 0
}

// Index returns the position of the first command starting with prefix, or -1
func (f *FakeRunner) Index(prefix string) int {
	for i, c := range f.Calls {
		if strings.HasPrefix(c.Cmdline, prefix) {
			return i
		}
	}
	return -1
}

// Find returns the first call starting with prefix
func (f *FakeRunner) Find(prefix string) (Call, bool) {
	if i := f.Index(prefix); i >= 0 {
		return f.Calls[i], true
	}
	return Call{}, false
}

// Prompter answers questions from a fixed script.
// An empty scripted answer selects the question's default; once the script is
// exhausted Ask returns the default together with io.EOF. A done context wins
// over the script, as it does for a real prompter blocked on input.
type Prompter struct {
	answers []string

	// Questions lists every question asked, in order
	Questions []string

	// OnAsk, when set, runs as each question is asked
	OnAsk func(question string)
}

// NewPrompter creates a Prompter with the given answers
func NewPrompter(answers ...string) *Prompter {
	return &Prompter{answers: answers}
}

// Ask implements prompt.Prompter
func (p *Prompter) Ask(ctx context.Context, question, def string) (string, error) {
	p.Questions = append(p.Questions, question)
	if p.OnAsk != nil {
		p.OnAsk(question)
	}
	if err := ctx.Err(); err != nil {
		return def, err
	}
	if len(p.answers) == 0 {
		return def, io.EOF
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	if strings.TrimSpace(a) == "" {
		return def, nil
	}
	return strings.TrimSpace(a), nil
}

// Remaining returns the number of unused answers
func (p *Prompter) Remaining() int {
	return len(p.answers)
}

// Asked reports whether any question contained substr
func (p *Prompter) Asked(substr string) bool {
	for _, q := range p.Questions {
		if strings.Contains(q, substr) {
			return true
		}
	}
	return false
}

// NewProject creates an empty folder with the given name inside a temp dir
func NewProject(t *testing.T, name string) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create project dir: %v", err)
	}
	return dir
}

// MakeRepo creates the .git marker directory inside dir
func MakeRepo(t *testing.T, dir string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0755); err != nil {
		t.Fatalf("failed to create .git: %v", err)
	}
}

// WriteFile writes content to dir/name
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// ReadFile returns the content of dir/name, or "" if it does not exist
func ReadFile(t *testing.T, dir, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return ""
		}
		t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(data)
}

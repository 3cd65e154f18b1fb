// Package onboard runs the fixed sequence of stages that takes a local folder
// to a pushed GitHub repository.
//
// Each stage is a handler returning an Outcome. Stages never call os.Exit and
// never panic on tool failures: recoverable problems are recorded and the run
// moves on, while the few fatal conditions surface as sentinel errors from Run.
package onboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hammashamzah/git-autopush/internal/config"
	"github.com/hammashamzah/git-autopush/internal/github"
	"github.com/hammashamzah/git-autopush/internal/gitrepo"
	"github.com/hammashamzah/git-autopush/internal/prompt"
	"github.com/hammashamzah/git-autopush/internal/recorder"
	"github.com/hammashamzah/git-autopush/internal/runner"
	"github.com/hammashamzah/git-autopush/internal/styles"
	"github.com/hashicorp/go-version"
)

// OutcomeKind tags the result of a stage
type OutcomeKind int

const (
	Continue OutcomeKind = iota
	SkipRemaining
	Fatal
)

func (k OutcomeKind) String() string {
	switch k {
	case SkipRemaining:
		return "skip_remaining"
	case Fatal:
		return "fatal"
	default:
		return "continue"
	}
}

// Outcome is what a stage tells the orchestrator to do next
type Outcome struct {
	Kind OutcomeKind
	Err  error
}

func next() Outcome {
	return Outcome{Kind: Continue}
}

func skipRemaining() Outcome {
	return Outcome{Kind: SkipRemaining}
}

func fatal(err error) Outcome {
	return Outcome{Kind: Fatal, Err: err}
}

// Stage is one named step of the run
type Stage struct {
	Name string
	Run  func(ctx context.Context) Outcome
}

// Options configures an Orchestrator
type Options struct {
	// Dir is the target folder; relative paths are resolved
	Dir      string
	Config   *config.Config
	Runner   runner.Runner
	Prompter prompt.Prompter
	Out      io.Writer
	Styles   *styles.Styles
	Clock    func() time.Time

	// Pre-seeded answers; a non-empty value skips its prompt
	Account string
	Name    string
	License string
	Private bool
}

// Orchestrator runs the onboarding stages for one folder
type Orchestrator struct {
	session  *Session
	rec      *recorder.Recorder
	styles   *styles.Styles
	cfg      *config.Config
	runner   runner.Runner
	git      *gitrepo.Repo
	gh       *github.CLI
	prompter prompt.Prompter
	now      func() time.Time
	opts     Options

	gitVersion   *version.Version
	wasRepo      bool
	remote       *RemoteInfo
	createdByCLI bool
	pushed       bool
	connectedURL string
}

// New creates an Orchestrator. The target directory must exist.
func New(opts Options) (*Orchestrator, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("target directory not found: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("target is not a directory: %s", abs)
	}

	if opts.Runner == nil {
		return nil, errors.New("runner is required")
	}
	if opts.Prompter == nil {
		return nil, errors.New("prompter is required")
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	s := opts.Styles
	if s == nil {
		s = styles.DefaultStyles()
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}

	rec := recorder.New(opts.Out, s)
	rec.SetClock(now)

	r := runner.Observe(opts.Runner, func(cmdline string) {
		rec.Detail("Running: %s", cmdline)
	})

	return &Orchestrator{
		session:  NewSession(abs, rec),
		rec:      rec,
		styles:   s,
		cfg:      cfg,
		runner:   r,
		git:      gitrepo.New(r, abs, cfg.Host),
		gh:       github.NewCLI(r, abs),
		prompter: opts.Prompter,
		now:      now,
		opts:     opts,
	}, nil
}

// Session returns the run state
func (o *Orchestrator) Session() *Session {
	return o.session
}

// Remote returns the gathered remote info, or nil if that stage was not reached
func (o *Orchestrator) Remote() *RemoteInfo {
	return o.remote
}

// AlreadyConnected reports whether the run stopped because origin was already
// on the hosting service
func (o *Orchestrator) AlreadyConnected() bool {
	return o.connectedURL != ""
}

// Pushed reports whether the final push succeeded
func (o *Orchestrator) Pushed() bool {
	return o.pushed
}

// Stages returns the ordered stage handlers
func (o *Orchestrator) Stages() []Stage {
	return []Stage{
		{Name: "Checking if folder is a Git repository", Run: o.checkRepository},
		{Name: "Checking for GitHub remote connection", Run: o.checkRemote},
		{Name: "Creating .gitignore file", Run: o.ensureIgnore},
		{Name: "Making initial commit", Run: o.commit},
		{Name: "Getting GitHub repository information", Run: o.gatherRemoteInfo},
		{Name: "Adding GitHub remote", Run: o.addRemote},
		{Name: "Creating GitHub repository and pushing", Run: o.publish},
		{Name: "Generating documentation", Run: o.writeReport},
	}
}

// Run executes every stage in order. It returns nil on success, including the
// already-connected short-circuit, and a wrapped sentinel error on fatal paths.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.rec.Println("")
	o.rec.Println(o.styles.RenderBanner(o.styles.Banner, "Git AutoPush - Automatic GitHub Repository Setup"))
	o.rec.Println("")

	o.rec.Info("Target directory: %s", o.session.Path)
	o.rec.Info("Started at: %s", o.now().Format("2006-01-02 15:04:05"))

	if err := o.checkGit(ctx); err != nil {
		o.saveLog()
		return err
	}
	o.rec.Println("")

	for _, stage := range o.Stages() {
		if err := ctx.Err(); err != nil {
			return o.interrupted(err)
		}

		o.session.NextStep(stage.Name)
		out := stage.Run(ctx)
		o.rec.Println("")

		switch out.Kind {
		case SkipRemaining:
			o.session.Complete()
			return nil
		case Fatal:
			if err := ctx.Err(); err != nil {
				return o.interrupted(err)
			}
			o.saveLog()
			return out.Err
		}
	}

	o.saveLog()
	o.summary()
	return nil
}

// checkGit verifies the git binary and warns when it is too old for
// --allow-unrelated-histories
func (o *Orchestrator) checkGit(ctx context.Context) error {
	o.rec.Info("Checking if Git is installed...")

	res := o.git.Version(ctx)
	if !res.OK() {
		o.rec.Error("Git is not installed!")
		o.rec.Detail("Install Git: sudo apt install git (Linux) or https://git-scm.com/downloads")
		return ErrGitMissing
	}
	o.rec.Detail("Found: %s", res.Output)

	v, err := gitrepo.ParseVersion(res.Output)
	if err != nil {
		o.rec.Detail("Could not determine git version: %v", err)
		return nil
	}
	o.gitVersion = v
	if !gitrepo.SupportsUnrelatedHistories(v) {
		o.rec.Warning("Git %s is older than 2.9; pulling a remote LICENSE may fail", v)
	}
	return nil
}

func (o *Orchestrator) interrupted(err error) error {
	o.rec.Error("Interrupted: %v", err)
	o.saveLog()
	return fmt.Errorf("interrupted: %w", err)
}

func (o *Orchestrator) saveLog() {
	path := filepath.Join(o.session.Path, o.cfg.Files.Log)
	if err := o.rec.Save(path); err != nil {
		fmt.Fprintf(o.rec.Out(), "Warning: %v\n", err)
	}
}

func (o *Orchestrator) summary() {
	s := o.styles
	o.rec.Println("")
	if o.pushed {
		o.rec.Println(s.RenderBanner(s.BannerOK, "✓ Successfully pushed to GitHub!"))
	} else {
		o.rec.Println(s.RenderBanner(s.Warning, "⚠ Setup finished, the push still needs attention"))
	}
	o.rec.Println("")

	if o.remote != nil {
		o.rec.Println("Repository: " + s.Command.Render(o.remote.WebURL()))
	}
	o.rec.Println("Documentation: " + s.Command.Render(o.cfg.Files.Report))
	o.rec.Println("Log file: " + s.Command.Render(o.cfg.Files.Log))
	o.rec.Println("")
}

// ask wraps the prompter: closed input yields def and only a cancelled prompt
// or a done context is an error
func (o *Orchestrator) ask(ctx context.Context, question, def string) (string, error) {
	answer, err := o.prompter.Ask(ctx, question, def)
	if prompt.Aborted(err) {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		answer = def
	}
	return answer, nil
}

func (o *Orchestrator) section(title string) {
	o.rec.Println("")
	o.rec.Println(o.styles.RenderSection(title))
}

package onboard

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hammashamzah/git-autopush/internal/github"
	"github.com/hammashamzah/git-autopush/internal/ignore"
	"github.com/hammashamzah/git-autopush/internal/prompt"
	"github.com/hammashamzah/git-autopush/internal/recorder"
	"github.com/hammashamzah/git-autopush/internal/runner"
	"github.com/hammashamzah/git-autopush/internal/styles"
	"github.com/hammashamzah/git-autopush/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const connectedRemotes = "origin\thttps://github.com/alice/demo.git (fetch)\norigin\thttps://github.com/alice/demo.git (push)"

func init() {
	styles.DisableColor()
}

func fixedClock() time.Time {
	return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
}

// setup creates an empty "demo" folder and a runner where git works and gh is
// not installed
func setup(t *testing.T) (string, *testutil.FakeRunner) {
	t.Helper()

	dir := testutil.NewProject(t, "demo")
	fake := testutil.NewFakeRunner()
	fake.On("git --version", testutil.OK("git version 2.43.0"))
	fake.On("gh", testutil.Fail(runner.ExitNotFound, "gh: executable file not found in $PATH"))
	return dir, fake
}

func newOrchestrator(t *testing.T, dir string, r runner.Runner, p prompt.Prompter, mutate ...func(*Options)) (*Orchestrator, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	opts := Options{
		Dir:      dir,
		Runner:   r,
		Prompter: p,
		Out:      &out,
		Clock:    fixedClock,
	}
	for _, fn := range mutate {
		fn(&opts)
	}

	o, err := New(opts)
	require.NoError(t, err)
	return o, &out
}

func ghAuthenticated(fake *testutil.FakeRunner) {
	fake.On("gh", testutil.OK("gh version 2.40.0 (2023-12-07)"))
}

func ghNotAuthenticated(fake *testutil.FakeRunner, status ...runner.Result) {
	fake.On("gh", testutil.OK("gh version 2.40.0 (2023-12-07)"))
	if len(status) == 0 {
		status = []runner.Result{testutil.Fail(1, "You are not logged into any GitHub hosts")}
	}
	fake.On("gh auth status", status...)
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(Options{
		Dir:      filepath.Join(t.TempDir(), "nope"),
		Runner:   testutil.NewFakeRunner(),
		Prompter: testutil.NewPrompter(),
	})

	assert.Error(t, err)
}

func TestNew_FileIsNotDirectory(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "file.txt", "x")

	_, err := New(Options{Dir: path, Runner: testutil.NewFakeRunner(), Prompter: testutil.NewPrompter()})

	assert.Error(t, err)
}

func TestRun_EmptyFolderScenario(t *testing.T) {
	dir, fake := setup(t)
	fake.On("git diff --cached --name-only", testutil.OK(".gitignore\nmain.go"))
	p := testutil.NewPrompter("alice", "", "1", "")
	o, _ := newOrchestrator(t, dir, fake, p)

	err := o.Run(context.Background())
	require.NoError(t, err)

	// repository initialized, then branch renamed
	initAt := fake.Index("git init")
	require.GreaterOrEqual(t, initAt, 0)
	assert.Equal(t, initAt+1, fake.Index("git branch -m main"))

	actions := o.Session().Actions.Items()
	require.GreaterOrEqual(t, len(actions), 2)
	assert.Equal(t, "Initialized Git repository with `git init`", actions[0])
	assert.Equal(t, "Set default branch to 'main'", actions[1])

	// ignore-file from template
	assert.Equal(t, ignore.Template([]string{"autopush.log", "AUTOPUSH_GUIDE.pdf"}), testutil.ReadFile(t, dir, ".gitignore"))

	// exactly one commit naming the folder
	assert.Equal(t, 1, fake.Count("git commit"))
	assert.True(t, fake.Ran(`git commit -m "Initial commit: demo"`))
	assert.Contains(t, actions, "Created initial commit with message: 'Initial commit: demo'")

	// remote at the derived URL
	assert.True(t, fake.Ran("git remote add origin https://github.com/alice/demo.git"))
	require.NotNil(t, o.Remote())
	assert.Equal(t, "https://github.com/alice/demo.git", o.Remote().URL)
	assert.Equal(t, github.LicenseMIT, o.Remote().License)
	assert.Equal(t, "demo", o.Remote().Name)

	// reconciliation pull before push
	pull := fake.Index("git pull origin main --allow-unrelated-histories")
	push := fake.Index("git push -u origin main")
	require.GreaterOrEqual(t, pull, 0)
	assert.Less(t, pull, push)
	assert.Less(t, fake.Index("git config pull.rebase false"), pull)

	assert.Equal(t, TotalSteps, o.Session().Step)
	assert.True(t, o.Pushed())
	assert.Contains(t, testutil.ReadFile(t, dir, "AUTOPUSH_GUIDE.md"), "https://github.com/alice/demo")
	assert.Contains(t, testutil.ReadFile(t, dir, "autopush.log"), "[STEP] STEP 8/8: Generating documentation")
}

func TestRun_AlreadyConnected(t *testing.T) {
	dir, fake := setup(t)
	testutil.MakeRepo(t, dir)
	fake.On("git remote -v", testutil.OK(connectedRemotes))
	p := testutil.NewPrompter()
	o, out := newOrchestrator(t, dir, fake, p)

	err := o.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"git --version", "git remote -v"}, fake.Commands())
	assert.Empty(t, p.Questions)
	assert.Zero(t, o.Session().Actions.Len())
	assert.True(t, o.AlreadyConnected())
	assert.Equal(t, TotalSteps, o.Session().Step)
	assert.Contains(t, out.String(), "already on GitHub")
	assert.Contains(t, out.String(), "Repository: alice/demo")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".git", entries[0].Name())
}

func TestRun_OtherRemoteOnGitHubIsNotConnected(t *testing.T) {
	dir, fake := setup(t)
	testutil.MakeRepo(t, dir)
	fake.On("git remote -v", testutil.OK("upstream\thttps://github.com/bob/demo.git (fetch)\nupstream\thttps://github.com/bob/demo.git (push)"))
	o, _ := newOrchestrator(t, dir, fake, testutil.NewPrompter("alice", "", "1", ""))

	require.NoError(t, o.Run(context.Background()))

	assert.False(t, o.AlreadyConnected())
	assert.True(t, o.rec.Contains(recorder.LevelWarning, "Remote exists but not GitHub origin"))
	assert.False(t, fake.Ran("git remote remove origin"))
	assert.True(t, fake.Ran("git remote add origin https://github.com/alice/demo.git"))
}

func TestRun_ForeignOriginIsReplaced(t *testing.T) {
	dir, fake := setup(t)
	testutil.MakeRepo(t, dir)
	fake.On("git remote -v", testutil.OK("origin\tgit@gitlab.com:alice/demo.git (fetch)\norigin\tgit@gitlab.com:alice/demo.git (push)"))
	o, _ := newOrchestrator(t, dir, fake, testutil.NewPrompter("alice", "", "1", ""))

	require.NoError(t, o.Run(context.Background()))

	remove := fake.Index("git remote remove origin")
	add := fake.Index("git remote add origin")
	require.GreaterOrEqual(t, remove, 0)
	assert.Less(t, remove, add)
	assert.True(t, o.rec.Contains(recorder.LevelWarning, "Remote 'origin' already exists"))
}

func TestRun_CommitRules(t *testing.T) {
	tests := []struct {
		name        string
		existing    bool
		status      string
		wantCommits int
	}{
		{"no repository before the run", false, "", 1},
		{"repository with changes", true, " M main.go", 1},
		{"clean repository", true, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, fake := setup(t)
			if tt.existing {
				testutil.MakeRepo(t, dir)
			}
			fake.On("git status --porcelain", testutil.OK(tt.status))
			o, _ := newOrchestrator(t, dir, fake, testutil.NewPrompter("alice", "", "1", ""))

			require.NoError(t, o.Run(context.Background()))

			commits := 0
			for _, a := range o.Session().Actions.Items() {
				if a == "Created initial commit with message: 'Initial commit: demo'" {
					commits++
				}
			}
			assert.Equal(t, tt.wantCommits, commits)
			assert.Equal(t, tt.wantCommits, fake.Count("git commit"))
			assert.Equal(t, TotalSteps, o.Session().Step)
		})
	}
}

func TestRun_ExistingRepositoryIsNotInitialized(t *testing.T) {
	dir, fake := setup(t)
	testutil.MakeRepo(t, dir)
	o, _ := newOrchestrator(t, dir, fake, testutil.NewPrompter("alice", "", "1", ""))

	require.NoError(t, o.Run(context.Background()))

	assert.False(t, fake.Ran("git init"))
	assert.False(t, fake.Ran("git branch -m"))
}

func TestRun_CommitFailureIsNotFatal(t *testing.T) {
	dir, fake := setup(t)
	fake.On("git commit", testutil.Fail(1, "nothing to commit, working tree clean"))
	o, _ := newOrchestrator(t, dir, fake, testutil.NewPrompter("alice", "", "1", ""))

	require.NoError(t, o.Run(context.Background()))

	assert.True(t, o.rec.Contains(recorder.LevelError, "Failed to commit: nothing to commit"))
	assert.NotContains(t, o.Session().Actions.Items(), "Created initial commit with message: 'Initial commit: demo'")
	assert.True(t, fake.Ran("git push -u origin main"))
	assert.Equal(t, TotalSteps, o.Session().Step)
}

func TestRun_BranchRenameFallsBackToSymbolicRef(t *testing.T) {
	dir, fake := setup(t)
	fake.On("git branch -m", testutil.Fail(128, "fatal: not a valid object name: 'master'"))
	o, _ := newOrchestrator(t, dir, fake, testutil.NewPrompter("alice", "", "1", ""))

	require.NoError(t, o.Run(context.Background()))

	assert.Equal(t, fake.Index("git branch -m main")+1, fake.Index("git symbolic-ref HEAD refs/heads/main"))
	assert.Equal(t, "Set default branch to 'main'", o.Session().Actions.Items()[1])
}

func TestRun_GitMissing(t *testing.T) {
	dir, fake := setup(t)
	fake.On("git --version", testutil.Fail(runner.ExitNotFound, "exec: \"git\": executable file not found in $PATH"))
	o, out := newOrchestrator(t, dir, fake, testutil.NewPrompter())

	err := o.Run(context.Background())

	assert.ErrorIs(t, err, ErrGitMissing)
	assert.Equal(t, []string{"git --version"}, fake.Commands())
	assert.Zero(t, o.Session().Step)
	assert.Contains(t, out.String(), "Git is not installed!")
}

func TestRun_InitFailureIsFatal(t *testing.T) {
	dir, fake := setup(t)
	fake.On("git init", testutil.Fail(128, "permission denied"))
	o, _ := newOrchestrator(t, dir, fake, testutil.NewPrompter("alice"))

	err := o.Run(context.Background())

	assert.ErrorIs(t, err, ErrInitFailed)
	assert.Contains(t, err.Error(), "permission denied")
	assert.False(t, fake.Ran("git branch"))
	assert.False(t, fake.Ran("git remote"))
	assert.Equal(t, 1, o.Session().Step)
	assert.Contains(t, testutil.ReadFile(t, dir, "autopush.log"), "Failed to initialize Git: permission denied")
}

func TestRun_AccountRequired(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
	}{
		{"empty answer", []string{""}},
		{"closed input", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, fake := setup(t)
			o, _ := newOrchestrator(t, dir, fake, testutil.NewPrompter(tt.answers...))

			err := o.Run(context.Background())

			assert.ErrorIs(t, err, ErrAccountRequired)
			assert.False(t, fake.Ran("git remote add"))
			assert.False(t, fake.Ran("git push"))
			assert.Equal(t, 5, o.Session().Step)
			assert.Empty(t, testutil.ReadFile(t, dir, "AUTOPUSH_GUIDE.md"))
		})
	}
}

func TestRun_PreseededAnswersSkipPrompts(t *testing.T) {
	dir, fake := setup(t)
	p := testutil.NewPrompter("")
	o, _ := newOrchestrator(t, dir, fake, p, func(opts *Options) {
		opts.Account = "bob"
		opts.Name = "tools"
		opts.License = "gpl-3.0"
		opts.Private = true
	})

	require.NoError(t, o.Run(context.Background()))

	assert.False(t, p.Asked("GitHub username"))
	assert.False(t, p.Asked("Repository name"))
	assert.False(t, p.Asked("License"))
	assert.Equal(t, "https://github.com/bob/tools.git", o.Remote().URL)
	assert.Equal(t, github.LicenseGPL, o.Remote().License)
	assert.Equal(t, "private", o.Remote().Visibility)
}

func TestRun_LicenseSelection(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     github.License
		wantPull bool
	}{
		{"empty selects MIT", "", github.LicenseMIT, true},
		{"apache", "2", github.LicenseApache, true},
		{"none", "4", github.LicenseNone, false},
		{"unknown falls back to MIT", "9", github.LicenseMIT, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, fake := setup(t)
			o, _ := newOrchestrator(t, dir, fake, testutil.NewPrompter("alice", "", tt.input, ""))

			require.NoError(t, o.Run(context.Background()))

			assert.Equal(t, tt.want, o.Remote().License)
			assert.Equal(t, tt.wantPull, fake.Ran("git pull"))

			guide := testutil.ReadFile(t, dir, "AUTOPUSH_GUIDE.md")
			assert.Equal(t, tt.wantPull, bytes.Contains([]byte(guide), []byte("Pulled LICENSE from GitHub")))
			assert.Equal(t, TotalSteps, o.Session().Step)
		})
	}
}

func TestRun_AddRemoteFailureIsFatal(t *testing.T) {
	dir, fake := setup(t)
	fake.On("git remote add", testutil.Fail(3, "error: remote origin already exists."))
	o, _ := newOrchestrator(t, dir, fake, testutil.NewPrompter("alice", "", "1"))

	err := o.Run(context.Background())

	assert.ErrorIs(t, err, ErrRemoteFailed)
	assert.False(t, fake.Ran("git push"))
	assert.Equal(t, 6, o.Session().Step)
}

func TestRun_ManualGuideWithoutCLI(t *testing.T) {
	dir, fake := setup(t)
	p := testutil.NewPrompter("alice", "", "1", "")
	o, out := newOrchestrator(t, dir, fake, p)

	require.NoError(t, o.Run(context.Background()))

	assert.Contains(t, out.String(), "GitHub CLI Not Installed")
	assert.Contains(t, out.String(), "1. Go to: https://github.com/new")
	assert.Contains(t, out.String(), "☑ Choose a license: MIT")
	assert.True(t, p.Asked("Press ENTER"))
	assert.False(t, fake.Ran("gh repo create"))
	assert.True(t, fake.Ran("git push -u origin main"))
}

func TestRun_CLICreatesRepository(t *testing.T) {
	dir, fake := setup(t)
	ghAuthenticated(fake)
	p := testutil.NewPrompter("alice", "", "1", "")
	o, _ := newOrchestrator(t, dir, fake, p)

	require.NoError(t, o.Run(context.Background()))

	assert.True(t, fake.Ran("gh repo create demo --public --license mit --disable-wiki --confirm"))
	assert.False(t, p.Asked("Press ENTER"))
	assert.Contains(t, o.Session().Actions.Items(), "Created GitHub repository using gh CLI")

	create := fake.Index("gh repo create")
	assert.Less(t, create, fake.Index("git push"))
	assert.Equal(t, 2, fake.Count("git remote add origin https://github.com/alice/demo.git"))
	assert.Contains(t, testutil.ReadFile(t, dir, "AUTOPUSH_GUIDE.md"), "Ran `gh repo create demo`")
}

func TestRun_CLICreationFailureFallsBackToManualGuide(t *testing.T) {
	dir, fake := setup(t)
	ghAuthenticated(fake)
	fake.On("gh repo create", testutil.Fail(1, "HTTP 422: Name already exists on this account"))
	p := testutil.NewPrompter("alice", "", "1", "", "")
	o, out := newOrchestrator(t, dir, fake, p)

	require.NoError(t, o.Run(context.Background()))

	assert.True(t, o.rec.Contains(recorder.LevelWarning, "Failed to create repository with gh CLI: HTTP 422"))
	assert.True(t, o.rec.Contains(recorder.LevelWarning, "Falling back to manual repository creation"))
	assert.Contains(t, out.String(), "Manual GitHub Repository Setup")
	assert.True(t, p.Asked("Press ENTER"))
	assert.Less(t, fake.Index("gh repo create"), fake.Index("git push -u origin main"))
	assert.Equal(t, TotalSteps, o.Session().Step)
}

func TestRun_CLICreationDeclined(t *testing.T) {
	dir, fake := setup(t)
	ghAuthenticated(fake)
	p := testutil.NewPrompter("alice", "", "4", "n", "")
	o, out := newOrchestrator(t, dir, fake, p)

	require.NoError(t, o.Run(context.Background()))

	assert.False(t, fake.Ran("gh repo create"))
	assert.Contains(t, out.String(), "☐ Choose a license: None")
	assert.True(t, fake.Ran("git push -u origin main"))
}

func TestRun_LoginThenCreate(t *testing.T) {
	dir, fake := setup(t)
	ghNotAuthenticated(fake, testutil.Fail(1, "not logged in"), testutil.OK("Logged in to github.com"))
	p := testutil.NewPrompter("alice", "", "1", "y")
	o, _ := newOrchestrator(t, dir, fake, p)

	require.NoError(t, o.Run(context.Background()))

	login, ok := fake.Find("gh auth login")
	require.True(t, ok)
	assert.True(t, login.Interactive)
	assert.Equal(t, 2, fake.Count("gh auth status"))
	assert.Less(t, fake.Index("gh auth login"), fake.Index("gh repo create"))
	assert.False(t, p.Asked("Press ENTER"))
}

func TestRun_LoginFails(t *testing.T) {
	dir, fake := setup(t)
	ghNotAuthenticated(fake)
	p := testutil.NewPrompter("alice", "", "1", "yes", "")
	o, _ := newOrchestrator(t, dir, fake, p)

	require.NoError(t, o.Run(context.Background()))

	assert.True(t, fake.Ran("gh auth login"))
	assert.True(t, o.rec.Contains(recorder.LevelWarning, "Authentication unsuccessful"))
	assert.False(t, fake.Ran("gh repo create"))
	assert.True(t, p.Asked("Press ENTER"))
	assert.True(t, fake.Ran("git push"))
}

func TestRun_LoginDeclinedByDefault(t *testing.T) {
	dir, fake := setup(t)
	ghNotAuthenticated(fake)
	p := testutil.NewPrompter("alice", "", "1", "", "")
	o, _ := newOrchestrator(t, dir, fake, p)

	require.NoError(t, o.Run(context.Background()))

	assert.True(t, p.Asked("Authenticate now? [y/N]"))
	assert.False(t, fake.Ran("gh auth login"))
	assert.True(t, p.Asked("Press ENTER"))
}

func TestRun_PushFailureStillWritesReport(t *testing.T) {
	dir, fake := setup(t)
	fake.On("git push", testutil.Fail(128, ""))
	fake.On("git pull", testutil.Fail(1, "fatal: couldn't find remote ref main"))
	o, out := newOrchestrator(t, dir, fake, testutil.NewPrompter("alice", "", "1", ""))

	require.NoError(t, o.Run(context.Background()))

	assert.False(t, o.Pushed())
	assert.True(t, o.rec.Contains(recorder.LevelWarning, "Pull returned: fatal: couldn't find remote ref main"))
	assert.True(t, o.rec.Contains(recorder.LevelError, "Failed to push to GitHub"))
	assert.True(t, o.rec.Contains(recorder.LevelDetail, "Personal Access Token"))
	assert.NotContains(t, o.Session().Actions.Items(), "Pushed all commits to GitHub")
	assert.NotEmpty(t, testutil.ReadFile(t, dir, "AUTOPUSH_GUIDE.md"))
	assert.Contains(t, out.String(), "the push still needs attention")
	assert.Equal(t, TotalSteps, o.Session().Step)
}

func TestRun_PDFConversion(t *testing.T) {
	t.Run("converter installed", func(t *testing.T) {
		dir, fake := setup(t)
		fake.Installed["pandoc"] = true
		o, _ := newOrchestrator(t, dir, fake, testutil.NewPrompter("alice", "", "1", ""))

		require.NoError(t, o.Run(context.Background()))

		md := filepath.Join(dir, "AUTOPUSH_GUIDE.md")
		pdf := filepath.Join(dir, "AUTOPUSH_GUIDE.pdf")
		assert.True(t, fake.Ran("pandoc "+md+" -o "+pdf))
		assert.True(t, o.rec.Contains(recorder.LevelSuccess, "PDF generated"))
	})

	t.Run("converter fails", func(t *testing.T) {
		dir, fake := setup(t)
		fake.Installed["pandoc"] = true
		fake.On("pandoc", testutil.Fail(43, "pdflatex not found"))
		o, _ := newOrchestrator(t, dir, fake, testutil.NewPrompter("alice", "", "1", ""))

		require.NoError(t, o.Run(context.Background()))

		assert.True(t, o.rec.Contains(recorder.LevelWarning, "PDF conversion failed"))
		assert.Equal(t, TotalSteps, o.Session().Step)
	})

	t.Run("converter missing", func(t *testing.T) {
		dir, fake := setup(t)
		o, _ := newOrchestrator(t, dir, fake, testutil.NewPrompter("alice", "", "1", ""))

		require.NoError(t, o.Run(context.Background()))

		assert.False(t, fake.Ran("pandoc"))
		assert.False(t, o.rec.Contains(recorder.LevelWarning, "PDF"))
	})
}

func TestRun_StepHeaders(t *testing.T) {
	dir, fake := setup(t)
	o, _ := newOrchestrator(t, dir, fake, testutil.NewPrompter("alice", "", "1", ""))

	require.NoError(t, o.Run(context.Background()))

	var steps []string
	for _, e := range o.rec.Entries() {
		if e.Level == recorder.LevelStep {
			steps = append(steps, e.Message)
		}
	}
	require.Len(t, steps, TotalSteps)
	assert.Equal(t, "STEP 1/8: Checking if folder is a Git repository", steps[0])
	assert.Equal(t, "STEP 8/8: Generating documentation", steps[7])
}

func TestRun_CommandsAreRecorded(t *testing.T) {
	dir, fake := setup(t)
	o, _ := newOrchestrator(t, dir, fake, testutil.NewPrompter("alice", "", "1", ""))

	require.NoError(t, o.Run(context.Background()))

	assert.True(t, o.rec.Contains(recorder.LevelDetail, "Running: git init"))
	assert.True(t, o.rec.Contains(recorder.LevelDetail, `Running: git commit -m "Initial commit: demo"`))
	for _, c := range fake.Calls {
		assert.Equal(t, dir, c.Dir)
	}
}

type cancellingPrompter struct{}

func (cancellingPrompter) Ask(context.Context, string, string) (string, error) {
	return "", prompt.ErrCancelled
}

func TestRun_PromptCancelled(t *testing.T) {
	dir, fake := setup(t)
	o, _ := newOrchestrator(t, dir, fake, cancellingPrompter{})

	err := o.Run(context.Background())

	assert.ErrorIs(t, err, prompt.ErrCancelled)
	assert.False(t, fake.Ran("git remote add"))
}

func TestRun_ContextCancelled(t *testing.T) {
	dir, fake := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	o, _ := newOrchestrator(t, dir, fake, testutil.NewPrompter())

	err := o.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, fake.Ran("git init"))
}

func TestRun_InterruptedAtPrompt(t *testing.T) {
	dir, fake := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p := testutil.NewPrompter("alice", "", "1", "")
	p.OnAsk = func(string) { cancel() }
	o, _ := newOrchestrator(t, dir, fake, p)

	err := o.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"GitHub username: "}, p.Questions)
	assert.False(t, fake.Ran("git remote add"))
	assert.False(t, fake.Ran("gh"))
	assert.False(t, fake.Ran("git push"))
	assert.True(t, o.rec.Contains(recorder.LevelError, "Interrupted"))
	assert.Equal(t, 5, o.Session().Step)
}

func TestRun_InterruptedDuringLogin(t *testing.T) {
	dir, fake := setup(t)
	ghNotAuthenticated(fake)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fake.Do("gh auth login", cancel)
	p := testutil.NewPrompter("alice", "", "1", "y", "")
	o, _ := newOrchestrator(t, dir, fake, p)

	err := o.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, fake.Count("gh auth status"))
	assert.False(t, fake.Ran("gh repo create"))
	assert.False(t, fake.Ran("git pull"))
	assert.False(t, fake.Ran("git push"))
	assert.False(t, p.Asked("Press ENTER"))
	assert.NoFileExists(t, filepath.Join(dir, "AUTOPUSH_GUIDE.md"))
}

func TestRun_OldGitWarns(t *testing.T) {
	dir, fake := setup(t)
	fake.On("git --version", testutil.OK("git version 2.7.4"))
	o, _ := newOrchestrator(t, dir, fake, testutil.NewPrompter("alice", "", "4", ""))

	require.NoError(t, o.Run(context.Background()))

	assert.True(t, o.rec.Contains(recorder.LevelWarning, "older than 2.9"))
}

func TestSession_StepNeverExceedsTotal(t *testing.T) {
	s := NewSession("/work/demo", recorder.New(&bytes.Buffer{}, nil))

	for i := 0; i < TotalSteps+3; i++ {
		s.NextStep("stage")
	}

	assert.Equal(t, TotalSteps, s.Step)
	assert.Equal(t, "demo", s.Name())
}

func TestActionLog(t *testing.T) {
	var log ActionLog
	log.Add("Added GitHub remote: %s", "https://github.com/alice/demo.git")
	log.Add("Pushed all commits to GitHub")

	items := log.Items()
	items[0] = "mutated"

	assert.Equal(t, 2, log.Len())
	assert.Equal(t, "Added GitHub remote: https://github.com/alice/demo.git", log.Items()[0])
}

func TestNewRemoteInfo(t *testing.T) {
	info := NewRemoteInfo("github.com", "alice", "demo", github.LicenseNone, "public")

	assert.Equal(t, "https://github.com/alice/demo.git", info.URL)
	assert.Equal(t, "https://github.com/alice/demo", info.WebURL())
}

package onboard

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/hammashamzah/git-autopush/internal/github"
	"github.com/hammashamzah/git-autopush/internal/gitrepo"
	"github.com/hammashamzah/git-autopush/internal/prompt"
	"github.com/hammashamzah/git-autopush/internal/report"
)

// publish gets the remote repository created, by gh or by hand, then pushes.
// Creation problems are warnings: the manual path cannot be verified anyway.
func (o *Orchestrator) publish(ctx context.Context) Outcome {
	var err error

	switch o.gh.Status(ctx) {
	case github.StatusAuthenticated:
		err = o.publishAuthenticated(ctx)
	case github.StatusNotAuthenticated:
		err = o.publishUnauthenticated(ctx)
	default:
		err = o.publishWithoutCLI(ctx)
	}
	if err != nil {
		return fatal(err)
	}
	if err := ctx.Err(); err != nil {
		return fatal(err)
	}

	o.push(ctx)
	return next()
}

func (o *Orchestrator) publishAuthenticated(ctx context.Context) error {
	s := o.styles
	o.rec.Success("GitHub CLI detected and authenticated!")

	o.section("GitHub Repository Creation")
	o.rec.Println(s.Success.Render("✓ GitHub CLI (gh) is installed and authenticated"))
	o.rec.Println("")
	o.rec.Println("I can automatically create the repository for you!")
	o.rec.Println("")

	ok, err := prompt.Confirm(ctx, o.prompter, "Create repository automatically?", true)
	if err != nil {
		return err
	}
	if !ok {
		o.rec.Info("Automatic creation declined")
		return o.manualGuide(ctx)
	}
	return o.createOrGuide(ctx)
}

func (o *Orchestrator) publishUnauthenticated(ctx context.Context) error {
	s := o.styles
	o.section("GitHub CLI Detected")
	o.rec.Println(s.Warning.Render("⚠ GitHub CLI (gh) is installed but not authenticated"))
	o.rec.Println("")
	o.rec.Println("To enable automatic repository creation:")
	o.rec.Println("  1. Run: " + s.Command.Render("gh auth login"))
	o.rec.Println("  2. Follow the prompts to authenticate")
	o.rec.Println("  3. Run git-autopush again")
	o.rec.Println("")

	ok, err := prompt.Confirm(ctx, o.prompter, "Authenticate now?", false)
	if err != nil {
		return err
	}
	if !ok {
		return o.manualGuide(ctx)
	}

	o.rec.Info("Launching GitHub CLI authentication...")
	o.gh.Login(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}

	if o.gh.Status(ctx) != github.StatusAuthenticated {
		o.rec.Warning("Authentication unsuccessful, using manual creation")
		return o.manualGuide(ctx)
	}
	o.rec.Success("GitHub CLI authenticated")
	return o.createOrGuide(ctx)
}

func (o *Orchestrator) publishWithoutCLI(ctx context.Context) error {
	s := o.styles
	o.section("GitHub CLI Not Installed")
	o.rec.Println(s.Warning.Render("⚠ GitHub CLI (gh) is not installed"))
	o.rec.Println("")
	o.rec.Println("For automatic repository creation, install GitHub CLI:")
	o.rec.Println("  Ubuntu/Debian: " + s.Command.Render("sudo apt install gh"))
	o.rec.Println("  macOS: " + s.Command.Render("brew install gh"))
	o.rec.Println("  Or visit: " + s.Command.Render("https://cli.github.com/"))
	o.rec.Println("")
	o.rec.Println("Continuing with manual repository creation...")

	return o.manualGuide(ctx)
}

// createOrGuide tries gh repo create and falls back to the manual guide
func (o *Orchestrator) createOrGuide(ctx context.Context) error {
	if o.createRepository(ctx) {
		return nil
	}
	o.rec.Warning("Falling back to manual repository creation")
	return o.manualGuide(ctx)
}

func (o *Orchestrator) createRepository(ctx context.Context) bool {
	info := o.remote
	o.rec.Info("Attempting to create repository using GitHub CLI...")

	res := o.gh.CreateRepo(ctx, github.CreateOptions{
		Name:       info.Name,
		Visibility: info.Visibility,
		License:    info.License,
	})
	if !res.OK() {
		o.rec.Warning("Failed to create repository with gh CLI: %s", res.Output)
		return false
	}

	o.rec.Success("Repository created on GitHub: %s", info.Name)
	o.session.Actions.Add("Created GitHub repository using gh CLI")
	o.createdByCLI = true

	// gh may have touched origin; point it back at the expected URL
	o.git.RemoveRemote(ctx, gitrepo.OriginRemote)
	if res := o.git.AddRemote(ctx, gitrepo.OriginRemote, info.URL); !res.OK() {
		o.rec.Warning("Failed to re-add remote: %s", res.Output)
	}
	return true
}

// manualGuide shows the web creation steps and waits for confirmation
func (o *Orchestrator) manualGuide(ctx context.Context) error {
	s := o.styles
	info := o.remote
	o.rec.Info("Showing manual repository creation instructions")

	o.section("Manual GitHub Repository Setup")
	o.rec.Println("Please create the repository manually:")
	o.rec.Println("")
	o.rec.Println("1. Go to: " + s.Command.Render(github.NewRepoURL(info.Host)))
	o.rec.Println("2. Repository name: " + s.Value.Render(info.Name))
	o.rec.Println("3. Options:")
	o.rec.Println("   " + s.Unchecked.Render("☐ Don't") + " check 'Add a README file'")
	o.rec.Println("   " + s.Unchecked.Render("☐ Don't") + " check 'Add .gitignore'")
	if info.License.Selected() {
		o.rec.Println("   " + s.Checked.Render("☑") + " Choose a license: " + s.Value.Render(info.License.String()))
	} else {
		o.rec.Println("   " + s.Placeholder.Render("☐") + " Choose a license: None")
	}
	o.rec.Println("   Visibility: " + s.Value.Render(info.Visibility))
	o.rec.Println("4. Click 'Create repository'")
	o.rec.Println("")

	return prompt.Wait(ctx, o.prompter, "Press ENTER when you've created the repository on GitHub...")
}

// push merges a remote LICENSE when one was requested, then pushes with
// upstream tracking. Failures are reported, never fatal.
func (o *Orchestrator) push(ctx context.Context) {
	info := o.remote
	branch := o.cfg.Branch

	o.rec.Detail("Setting pull strategy to merge")
	if res := o.git.SetPullMerge(ctx); !res.OK() {
		o.rec.Warning("Failed to set pull strategy: %s", res.Output)
	}

	if info.License.Selected() && ctx.Err() == nil {
		o.rec.Detail("Pulling LICENSE file from GitHub...")
		res := o.git.PullUnrelated(ctx, gitrepo.OriginRemote, branch)
		if res.OK() {
			o.rec.Success("Pulled LICENSE from GitHub")
			o.session.Actions.Add("Pulled LICENSE file from GitHub and merged")
		} else {
			o.rec.Warning("Pull returned: %s", res.Output)
		}
	}

	if err := ctx.Err(); err != nil {
		o.rec.Warning("Push skipped: %v", err)
		return
	}
	o.rec.Detail("Pushing to GitHub...")
	res := o.git.PushUpstream(ctx, gitrepo.OriginRemote, branch)
	if res.OK() {
		o.rec.Success("Successfully pushed to GitHub!")
		o.session.Actions.Add("Pushed all commits to GitHub")
		o.pushed = true
		return
	}

	o.rec.Error("Failed to push to GitHub")
	o.rec.Detail("Common issues:")
	o.rec.Detail("- Authentication: use a Personal Access Token instead of your GitHub password (%s)", github.TokensURL(info.Host))
	o.rec.Detail("- Missing repository: create %s/%s at %s", info.Account, info.Name, github.NewRepoURL(info.Host))
	o.rec.Detail("- Network: check your connection to %s", info.Host)
	o.rec.Detail("Retry with: git push -u %s %s", gitrepo.OriginRemote, branch)
	o.rec.Warning("Push failed - you may need to complete manually")
}

// writeReport always lets the run finish; every failure is a warning
func (o *Orchestrator) writeReport(ctx context.Context) Outcome {
	o.rec.Info("Generating documentation...")

	info := o.remote
	in := report.Input{
		Project:       o.session.Name(),
		Location:      o.session.Path,
		Date:          o.now(),
		Host:          info.Host,
		Account:       info.Account,
		Repo:          info.Name,
		Branch:        o.cfg.Branch,
		Visibility:    info.Visibility,
		License:       info.License,
		CommitMessage: CommitMessage(o.session.Name()),
		CreatedByCLI:  o.createdByCLI,
		Ignored:       o.generatedFiles(),
		Actions:       o.session.Actions.Items(),
	}

	mdPath := filepath.Join(o.session.Path, o.cfg.Files.Report)
	if err := report.Write(mdPath, in); err != nil {
		o.rec.Warning("Failed to write documentation: %v", err)
		return next()
	}
	o.rec.Success("Documentation saved: %s", mdPath)

	if o.cfg.Files.PDF == "" {
		return next()
	}
	pdfPath := filepath.Join(o.session.Path, o.cfg.Files.PDF)
	o.rec.Detail("Converting to PDF...")
	err := report.Convert(ctx, o.runner, o.cfg.Converter, o.session.Path, mdPath, pdfPath)
	switch {
	case err == nil:
		o.rec.Success("PDF generated: %s", pdfPath)
	case errors.Is(err, report.ErrConverterUnavailable):
		o.rec.Detail("Skipping PDF conversion (%s not available)", o.cfg.Converter.Command)
	default:
		o.rec.Warning("PDF conversion failed: %v", err)
	}
	return next()
}

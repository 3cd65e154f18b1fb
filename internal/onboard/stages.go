package onboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/hammashamzah/git-autopush/internal/config"
	"github.com/hammashamzah/git-autopush/internal/github"
	"github.com/hammashamzah/git-autopush/internal/gitrepo"
	"github.com/hammashamzah/git-autopush/internal/ignore"
)

func (o *Orchestrator) checkRepository(ctx context.Context) Outcome {
	o.rec.Detail("Searching for .git directory...")

	if o.git.IsRepository() {
		o.rec.Detail("Found: .git directory exists")
		o.rec.Success("This is already a Git repository")
		o.wasRepo = true
		return next()
	}
	o.rec.Detail("Not found: .git directory does not exist")
	o.rec.Warning("This is NOT a Git repository")

	o.rec.Info("Initializing Git repository")
	res := o.git.Init(ctx)
	if !res.OK() {
		o.rec.Error("Failed to initialize Git: %s", res.Output)
		return fatal(fmt.Errorf("%w: %s", ErrInitFailed, res.Output))
	}
	o.rec.Success("Git repository initialized")
	o.session.Actions.Add("Initialized Git repository with `git init`")

	branch := o.cfg.Branch
	o.rec.Detail("Renaming default branch to '%s'", branch)
	if res := o.git.RenameBranch(ctx, branch); !res.OK() {
		o.rec.Detail("Branch rename failed (%s), pointing HEAD instead", res.Output)
		if res := o.git.SetHeadBranch(ctx, branch); !res.OK() {
			o.rec.Warning("Could not set default branch to '%s': %s", branch, res.Output)
			return next()
		}
	}
	o.rec.Success("Default branch set to '%s'", branch)
	o.session.Actions.Add("Set default branch to '%s'", branch)
	return next()
}

func (o *Orchestrator) checkRemote(ctx context.Context) Outcome {
	res := o.git.RemoteList(ctx)
	if !res.OK() || res.Output == "" {
		o.rec.Detail("No remotes configured")
		o.rec.Warning("Not connected to any remote")
		return next()
	}
	o.rec.Detail("Remotes found:\n%s", res.Output)

	connected, url := gitrepo.ParseRemoteStatus(res.Output, o.cfg.Host)
	if !connected {
		o.rec.Warning("Remote exists but not GitHub origin")
		return next()
	}

	o.rec.Success("Already connected to GitHub: %s", url)
	o.connectedURL = url
	o.alreadyConnected(url)
	return skipRemaining()
}

func (o *Orchestrator) alreadyConnected(url string) {
	s := o.styles
	o.rec.Info("Project is already on GitHub: %s", url)

	o.rec.Println("")
	o.rec.Println(s.RenderBanner(s.BannerOK, "✓ This project is already on GitHub!"))
	o.rec.Println("")
	o.rec.Println("Repository URL: " + s.Command.Render(url))
	if owner, repo, err := github.ParseURL(o.cfg.Host, url); err == nil {
		o.rec.Println("Repository: " + s.Value.Render(owner+"/"+repo))
	}
	o.rec.Println("")
	o.rec.Println("No action needed. Use normal Git workflow:")
	o.rec.Println("  " + s.Placeholder.Render("git add ."))
	o.rec.Println("  " + s.Placeholder.Render(`git commit -m "message"`))
	o.rec.Println("  " + s.Placeholder.Render("git push"))
}

// generatedFiles lists the artifacts this tool writes that must stay untracked
func (o *Orchestrator) generatedFiles() []string {
	var files []string
	for _, name := range []string{o.cfg.Files.Log, o.cfg.Files.PDF} {
		if name != "" {
			files = append(files, name)
		}
	}
	return files
}

func (o *Orchestrator) ensureIgnore(_ context.Context) Outcome {
	entries := o.generatedFiles()
	res, err := ignore.Ensure(o.session.Path, entries)
	if err != nil {
		o.rec.Warning("Could not update .gitignore: %v", err)
		return next()
	}

	switch {
	case res.Created:
		o.rec.Success("Created .gitignore file")
		o.rec.Detail("Location: %s", res.Path)
		o.session.Actions.Add("Created .gitignore file from template")
	case len(res.Added) > 0:
		added := strings.Join(res.Added, ", ")
		o.rec.Info(".gitignore already exists")
		o.rec.Success("Added %s to .gitignore", added)
		o.session.Actions.Add("Updated .gitignore to exclude %s", added)
	default:
		o.rec.Info(".gitignore already exists")
		o.rec.Detail("Already excludes %s", strings.Join(entries, ", "))
	}
	return next()
}

func (o *Orchestrator) commit(ctx context.Context) Outcome {
	if o.wasRepo {
		if !o.git.HasUncommittedChanges(ctx) {
			o.rec.Info("No uncommitted changes, nothing to commit")
			return next()
		}
		o.rec.Warning("Found uncommitted changes")
	}

	o.rec.Detail("Staging all files...")
	if res := o.git.AddAll(ctx); !res.OK() {
		o.rec.Warning("Failed to stage files: %s", res.Output)
	}

	files := o.git.StagedFiles(ctx)
	o.rec.Detail("Staged %d files", len(files))

	msg := CommitMessage(o.session.Name())
	o.rec.Detail("Creating commit: '%s'", msg)
	res := o.git.Commit(ctx, msg)
	if !res.OK() {
		o.rec.Error("Failed to commit: %s", res.Output)
		return next()
	}

	o.rec.Success("Initial commit created")
	o.session.Actions.Add("Created initial commit with message: '%s'", msg)
	return next()
}

func (o *Orchestrator) gatherRemoteInfo(ctx context.Context) Outcome {
	o.section("GitHub Repository Setup")

	account := strings.TrimSpace(o.opts.Account)
	if account == "" {
		account = strings.TrimSpace(o.cfg.Account)
	}
	if account != "" {
		o.rec.Detail("Using GitHub username: %s", account)
	} else {
		answer, err := o.ask(ctx, "GitHub username: ", "")
		if err != nil {
			return fatal(err)
		}
		account = answer
	}
	if account == "" {
		o.rec.Error("Username is required")
		return fatal(ErrAccountRequired)
	}

	name := strings.TrimSpace(o.opts.Name)
	if name == "" {
		def := o.session.Name()
		answer, err := o.ask(ctx, fmt.Sprintf("Repository name [%s]: ", def), def)
		if err != nil {
			return fatal(err)
		}
		name = answer
	}

	license, err := o.chooseLicense(ctx)
	if err != nil {
		return fatal(err)
	}

	visibility := o.cfg.Visibility
	if o.opts.Private {
		visibility = config.VisibilityPrivate
	}

	info := NewRemoteInfo(o.cfg.Host, account, name, license, visibility)
	o.remote = &info

	o.rec.Detail("Repository: %s/%s", info.Account, info.Name)
	o.rec.Detail("URL: %s", info.URL)
	o.rec.Detail("License: %s", info.License)
	o.rec.Detail("Visibility: %s", info.Visibility)
	return next()
}

func (o *Orchestrator) chooseLicense(ctx context.Context) (github.License, error) {
	preset := strings.TrimSpace(o.opts.License)
	if preset == "" {
		preset = strings.TrimSpace(o.cfg.License)
	}
	if preset != "" {
		return github.ParseLicense(preset), nil
	}

	o.rec.Println("")
	o.rec.Println(o.styles.Prompt.Render("Choose a license:"))
	for _, c := range github.LicenseChoices {
		o.rec.Println(fmt.Sprintf("  %s. %s", c.Key, c.Description))
	}

	answer, err := o.ask(ctx, fmt.Sprintf("License [%s]: ", github.DefaultLicenseKey), github.DefaultLicenseKey)
	if err != nil {
		return github.LicenseNone, err
	}
	return github.ParseLicense(answer), nil
}

func (o *Orchestrator) addRemote(ctx context.Context) Outcome {
	url := o.remote.URL

	if o.git.HasRemote(ctx, gitrepo.OriginRemote) {
		o.rec.Warning("Remote 'origin' already exists")
		o.rec.Detail("Removing existing remote...")
		if res := o.git.RemoveRemote(ctx, gitrepo.OriginRemote); !res.OK() {
			o.rec.Warning("Failed to remove remote: %s", res.Output)
		}
	}

	o.rec.Detail("Adding remote: %s", url)
	res := o.git.AddRemote(ctx, gitrepo.OriginRemote, url)
	if !res.OK() {
		o.rec.Error("Failed to add remote: %s", res.Output)
		return fatal(fmt.Errorf("%w: %s", ErrRemoteFailed, res.Output))
	}
	o.rec.Success("Remote 'origin' added: %s", url)
	o.session.Actions.Add("Added GitHub remote: %s", url)

	if v := o.git.RemoteList(ctx); v.OK() {
		o.rec.Detail("Verification:\n%s", v.Output)
	}
	return next()
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hammashamzah/git-autopush/internal/config"
	"github.com/hammashamzah/git-autopush/internal/onboard"
	"github.com/hammashamzah/git-autopush/internal/prompt"
	"github.com/hammashamzah/git-autopush/internal/runner"
	"github.com/hammashamzah/git-autopush/internal/styles"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	configFile  string
	flagAccount string
	flagName    string
	flagLicense string
	flagPrivate bool
	noColor     bool
	plainPrompt bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "git-autopush [directory]",
	Short: "Put a local folder on GitHub in one run",
	Long: `git-autopush turns a local folder into a GitHub repository.

It initializes git if needed, writes a .gitignore, makes the initial commit,
creates the repository with the GitHub CLI (or walks you through creating it
on the website), pushes, and writes AUTOPUSH_GUIDE.md explaining every step.

Running it again on a folder that is already on GitHub changes nothing.`,
	Example: `  # Push the current directory
  git-autopush

  # Push a specific directory
  git-autopush ~/code/my-project

  # Skip the prompts
  git-autopush --account alice --license none --private`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAutopush,
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "config", "", "Config file (default: ~/.config/git-autopush/config.yaml)")
	rootCmd.Flags().StringVarP(&flagAccount, "account", "a", "", "GitHub username (skips the prompt)")
	rootCmd.Flags().StringVarP(&flagName, "name", "n", "", "Repository name (skips the prompt)")
	rootCmd.Flags().StringVarP(&flagLicense, "license", "l", "", "License: 1-4, mit, apache-2.0, gpl-3.0 or none (skips the prompt)")
	rootCmd.Flags().BoolVar(&flagPrivate, "private", false, "Create a private repository")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.Flags().BoolVar(&plainPrompt, "plain", false, "Use plain line prompts instead of the interactive input")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func runAutopush(cmd *cobra.Command, args []string) error {
	if noColor {
		styles.DisableColor()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	s := styles.DefaultStyles()
	o, err := onboard.New(onboard.Options{
		Dir:      dir,
		Config:   cfg,
		Runner:   runner.New(),
		Prompter: prompt.New(os.Stdin, os.Stdout, s, plainPrompt),
		Out:      os.Stdout,
		Styles:   s,
		Account:  flagAccount,
		Name:     flagName,
		License:  flagLicense,
		Private:  flagPrivate,
	})
	if err != nil {
		return err
	}

	return o.Run(cmd.Context())
}

func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.LoadFile(configFile)
	}
	return config.Load()
}

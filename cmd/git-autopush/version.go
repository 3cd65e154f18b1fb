package main

import (
	"fmt"

	"github.com/hammashamzah/git-autopush/internal/github"
	"github.com/hammashamzah/git-autopush/internal/gitrepo"
	"github.com/hammashamzah/git-autopush/internal/runner"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information and the detected git and gh versions",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "git-autopush version %s\n", version)

		r := runner.New()
		ctx := cmd.Context()

		if res := gitrepo.New(r, ".", "").Version(ctx); res.OK() {
			line := toolVersion(res.Output)
			if v, err := gitrepo.ParseVersion(res.Output); err == nil && !gitrepo.SupportsUnrelatedHistories(v) {
				line += " (2.9+ needed to merge a remote LICENSE)"
			}
			fmt.Fprintf(out, "git: %s\n", line)
		} else {
			fmt.Fprintln(out, "git: not installed")
		}

		if raw := github.NewCLI(r, ".").Version(ctx); raw != "" {
			fmt.Fprintf(out, "gh: %s\n", toolVersion(raw))
		} else {
			fmt.Fprintln(out, "gh: not installed")
		}
	},
}

// toolVersion extracts the version number from a `--version` line, falling
// back to the raw line
func toolVersion(line string) string {
	v, err := gitrepo.ParseVersion(line)
	if err != nil {
		return line
	}
	return v.String()
}

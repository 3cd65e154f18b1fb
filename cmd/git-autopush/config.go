package main

import (
	"fmt"

	"github.com/hammashamzah/git-autopush/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the git-autopush configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long:  "Creates ~/.config/git-autopush/config.yaml (or $GIT_AUTOPUSH_CONFIG_DIR/config.yaml) with default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ConfigPath()
		if err != nil {
			return fmt.Errorf("failed to determine config path: %w", err)
		}
		if config.Exists() {
			return fmt.Errorf("config already exists at %s", path)
		}

		if err := config.Init(); err != nil {
			return fmt.Errorf("failed to initialize: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Config written to %s\n", path)
		fmt.Fprintln(out, "\nNext steps:")
		fmt.Fprintln(out, "  Set 'account' to your GitHub username to skip that prompt")
		fmt.Fprintln(out, "  git-autopush              # Push the current directory")
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ConfigPath()
		if err != nil {
			return fmt.Errorf("failed to determine config path: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
}

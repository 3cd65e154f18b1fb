package config

import (
	"fmt"
	"strings"
)

// Visibility values accepted by the hosting CLI
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Config represents the user-level git-autopush configuration
type Config struct {
	Version    int       `yaml:"version"`
	Account    string    `yaml:"account,omitempty"`
	License    string    `yaml:"license,omitempty"`
	Visibility string    `yaml:"visibility"`
	Host       string    `yaml:"host"`
	Branch     string    `yaml:"branch"`
	Files      Files     `yaml:"files"`
	Converter  Converter `yaml:"converter"`
}

// Files names the artifacts written into the target directory
type Files struct {
	Log    string `yaml:"log"`
	Report string `yaml:"report"`
	PDF    string `yaml:"pdf"`
}

// Converter is the external command turning the markdown report into a
// secondary format. {input} and {output} in Args are substituted.
type Converter struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// ConverterDisabled is the command value that turns conversion off
const ConverterDisabled = "none"

// Enabled reports whether a converter command is configured
func (c Converter) Enabled() bool {
	cmd := strings.TrimSpace(c.Command)
	return cmd != "" && cmd != ConverterDisabled
}

// Expand returns Args with the placeholders substituted
func (c Converter) Expand(input, output string) []string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		a = strings.ReplaceAll(a, "{input}", input)
		args[i] = strings.ReplaceAll(a, "{output}", output)
	}
	return args
}

// NewConfig creates a new config with defaults
func NewConfig() *Config {
	return &Config{
		Version:    1,
		Visibility: VisibilityPublic,
		Host:       "github.com",
		Branch:     "main",
		Files: Files{
			Log:    "autopush.log",
			Report: "AUTOPUSH_GUIDE.md",
			PDF:    "AUTOPUSH_GUIDE.pdf",
		},
		Converter: Converter{
			Command: "pandoc",
			Args:    []string{"{input}", "-o", "{output}"},
		},
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Visibility != VisibilityPublic && c.Visibility != VisibilityPrivate {
		return fmt.Errorf("visibility must be '%s' or '%s', got '%s'", VisibilityPublic, VisibilityPrivate, c.Visibility)
	}
	if strings.TrimSpace(c.Host) == "" {
		return fmt.Errorf("host must not be empty")
	}
	if strings.TrimSpace(c.Branch) == "" {
		return fmt.Errorf("branch must not be empty")
	}
	if c.Files.Log == "" || c.Files.Report == "" {
		return fmt.Errorf("log and report file names must not be empty")
	}
	return nil
}

// fillDefaults replaces zero values with defaults so partial files work
func (c *Config) fillDefaults() {
	d := NewConfig()
	if c.Version == 0 {
		c.Version = d.Version
	}
	if c.Visibility == "" {
		c.Visibility = d.Visibility
	}
	if c.Host == "" {
		c.Host = d.Host
	}
	if c.Branch == "" {
		c.Branch = d.Branch
	}
	if c.Files.Log == "" {
		c.Files.Log = d.Files.Log
	}
	if c.Files.Report == "" {
		c.Files.Report = d.Files.Report
	}
	if c.Files.PDF == "" {
		c.Files.PDF = d.Files.PDF
	}
	if c.Converter.Command == "" && len(c.Converter.Args) == 0 {
		c.Converter = d.Converter
	}
}

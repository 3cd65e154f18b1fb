// Package ignore writes or extends the .gitignore of an onboarded folder.
package ignore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the ignore-file at the repository root
const FileName = ".gitignore"

// SectionHeader marks the entries appended to an existing ignore-file
const SectionHeader = "# Git AutoPush generated files"

// Result describes what Ensure did
type Result struct {
	Path    string
	Created bool
	Added   []string
}

// Changed reports whether the file was written
func (r Result) Changed() bool {
	return r.Created || len(r.Added) > 0
}

// Template returns the ignore-file written when none exists.
// entries are the generated artifacts that must never be committed.
func Template(entries []string) string {
	var b strings.Builder
	b.WriteString(`# Python
__pycache__/
*.py[cod]
*$py.class
*.so
.Python
build/
dist/
*.egg-info/
venv/
env/
ENV/

# Go
*.test
*.out
vendor/

# Node
node_modules/

# IDE
.vscode/
.idea/
*.swp
*~

# OS
.DS_Store
Thumbs.db

# Git AutoPush
`)
	for _, e := range entries {
		b.WriteString(e)
		b.WriteString("\n")
	}
	return b.String()
}

// Ensure makes sure dir/.gitignore excludes every entry. An existing file only
// gets the missing entries appended inside a marked section; an absent file is
// written from Template. Running it twice never duplicates entries.
func Ensure(dir string, entries []string) (Result, error) {
	path := filepath.Join(dir, FileName)
	res := Result{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return res, fmt.Errorf("failed to read %s: %w", FileName, err)
		}
		if err := os.WriteFile(path, []byte(Template(entries)), 0644); err != nil {
			return res, fmt.Errorf("failed to write %s: %w", FileName, err)
		}
		res.Created = true
		return res, nil
	}

	existing := make(map[string]bool)
	for _, line := range strings.Split(string(data), "\n") {
		if p := pattern(line); p != "" {
			existing[p] = true
		}
	}
	for _, e := range entries {
		if !existing[e] {
			res.Added = append(res.Added, e)
			existing[e] = true
		}
	}
	if len(res.Added) == 0 {
		return res, nil
	}

	var b strings.Builder
	if len(data) > 0 && !strings.HasSuffix(string(data), "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n" + SectionHeader + "\n")
	for _, e := range res.Added {
		b.WriteString(e + "\n")
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return res, fmt.Errorf("failed to open %s: %w", FileName, err)
	}
	defer f.Close()

	if _, err := f.WriteString(b.String()); err != nil {
		return res, fmt.Errorf("failed to append to %s: %w", FileName, err)
	}
	return res, nil
}

// pattern reduces an ignore line to the bare name it excludes. Comments and
// negations yield "". A leading "/" or "**/" and trailing notes are dropped,
// so "/autopush.log  # tool log" counts as autopush.log.
func pattern(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	p := fields[0]
	if strings.HasPrefix(p, "#") || strings.HasPrefix(p, "!") {
		return ""
	}
	p = strings.TrimPrefix(p, "**/")
	return strings.TrimPrefix(p, "/")
}

// Package recorder collects the timestamped, leveled events of one run.
// Every event is mirrored to the console with a symbol and color, and the
// full sequence can be persisted as a plain-text log at the end of the run.
package recorder

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/hammashamzah/git-autopush/internal/styles"
)

// timestampLayout is the layout used in the persisted log
const timestampLayout = "2006-01-02 15:04:05"

// Level is the severity of a recorded event
type Level string

const (
	LevelStep    Level = "STEP"
	LevelSuccess Level = "SUCCESS"
	LevelError   Level = "ERROR"
	LevelWarning Level = "WARNING"
	LevelInfo    Level = "INFO"
	LevelDetail  Level = "DETAIL"
)

// Entry is one recorded event
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
}

// String renders the entry as a log file line
func (e Entry) String() string {
	return fmt.Sprintf("[%s] [%s] %s", e.Time.Format(timestampLayout), e.Level, e.Message)
}

// Recorder accumulates entries for a single run.
// It is not safe for concurrent use; runs are strictly sequential.
type Recorder struct {
	out     io.Writer
	styles  *styles.Styles
	entries []Entry
	now     func() time.Time
}

// New creates a Recorder writing styled output to out
func New(out io.Writer, s *styles.Styles) *Recorder {
	if out == nil {
		out = os.Stdout
	}
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Recorder{
		out:    out,
		styles: s,
		now:    time.Now,
	}
}

// SetClock replaces the time source (for tests)
func (r *Recorder) SetClock(now func() time.Time) {
	r.now = now
}

// Out returns the console writer
func (r *Recorder) Out() io.Writer {
	return r.out
}

// Step records a step header
func (r *Recorder) Step(num, total int, text string) {
	r.record(LevelStep, fmt.Sprintf("STEP %d/%d: %s", num, total, text))
	r.println(r.styles.Step, fmt.Sprintf("[STEP %d/%d] %s", num, total, text))
}

// Success records a success message
func (r *Recorder) Success(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.record(LevelSuccess, msg)
	r.println(r.styles.Success, "✓ "+msg)
}

// Error records an error message
func (r *Recorder) Error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.record(LevelError, msg)
	r.println(r.styles.Error, "✗ "+msg)
}

// Warning records a warning message
func (r *Recorder) Warning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.record(LevelWarning, msg)
	r.println(r.styles.Warning, "⚠ "+msg)
}

// Info records an informational message
func (r *Recorder) Info(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.record(LevelInfo, msg)
	r.println(r.styles.Info, "ℹ "+msg)
}

// Detail records an indented detail line
func (r *Recorder) Detail(format string, args ...any) {
	msg := "  → " + fmt.Sprintf(format, args...)
	r.record(LevelDetail, msg)
	r.println(r.styles.Detail, msg)
}

// Print writes to the console without recording
func (r *Recorder) Print(text string) {
	fmt.Fprint(r.out, text)
}

// Println writes a line to the console without recording
func (r *Recorder) Println(text string) {
	fmt.Fprintln(r.out, text)
}

// Entries returns a copy of the recorded entries
func (r *Recorder) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Count returns the number of entries at the given level
func (r *Recorder) Count(level Level) int {
	n := 0
	for _, e := range r.entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Contains reports whether any entry at level contains substr
func (r *Recorder) Contains(level Level, substr string) bool {
	for _, e := range r.entries {
		if e.Level == level && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// Save writes all entries to path, one per line
func (r *Recorder) Save(path string) error {
	lines := make([]string, len(r.entries))
	for i, e := range r.entries {
		lines[i] = e.String()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write log: %w", err)
	}

	r.Println("")
	r.println(r.styles.Info, "ℹ Log saved to: "+path)
	return nil
}

func (r *Recorder) record(level Level, msg string) {
	r.entries = append(r.entries, Entry{Time: r.now(), Level: level, Message: msg})
}

func (r *Recorder) println(style lipgloss.Style, text string) {
	fmt.Fprintln(r.out, style.Render(text))
}

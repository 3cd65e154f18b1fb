package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/hammashamzah/git-autopush/internal/styles"
	"github.com/mattn/go-isatty"
)

// ErrCancelled is returned when the user aborts a prompt (Ctrl-C / Esc)
var ErrCancelled = errors.New("prompt cancelled")

// Prompter asks the user one question at a time.
// An empty answer yields def. At end of input Ask returns def with io.EOF.
// When ctx is done Ask returns def with ctx.Err() without waiting for input.
type Prompter interface {
	Ask(ctx context.Context, question, def string) (string, error)
}

// Aborted reports whether err ends the run: a cancelled prompt or a done
// context. Closed input is not an abort.
func Aborted(err error) bool {
	return errors.Is(err, ErrCancelled) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// Confirm asks a yes/no question. Only y/yes count as yes; an empty answer or
// closed input selects def.
func Confirm(ctx context.Context, p Prompter, question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	answer, err := p.Ask(ctx, fmt.Sprintf("%s %s: ", question, hint), "")
	if err != nil {
		if Aborted(err) {
			return false, err
		}
		return def, nil
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Wait blocks until the user presses enter
func Wait(ctx context.Context, p Prompter, message string) error {
	_, err := p.Ask(ctx, message, "")
	if Aborted(err) {
		return err
	}
	return nil
}

// LinePrompter reads answers line by line. A single goroutine owns the
// reader so an Ask abandoned on cancellation never races the next one.
type LinePrompter struct {
	in     *bufio.Reader
	out    io.Writer
	styles *styles.Styles

	start sync.Once
	lines chan readResult
}

type readResult struct {
	line string
	err  error
}

// NewLinePrompter creates a prompter reading from in and writing questions to out
func NewLinePrompter(in io.Reader, out io.Writer, s *styles.Styles) *LinePrompter {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &LinePrompter{in: bufio.NewReader(in), out: out, styles: s}
}

// readLoop feeds lines until the first read error, then closes the channel
func (p *LinePrompter) readLoop() {
	defer close(p.lines)
	for {
		line, err := p.in.ReadString('\n')
		p.lines <- readResult{line: strings.TrimSpace(line), err: err}
		if err != nil {
			return
		}
	}
}

// Ask implements Prompter
func (p *LinePrompter) Ask(ctx context.Context, question, def string) (string, error) {
	if err := ctx.Err(); err != nil {
		return def, err
	}
	p.start.Do(func() {
		p.lines = make(chan readResult, 1)
		go p.readLoop()
	})

	fmt.Fprint(p.out, p.styles.Prompt.Render(question))

	var res readResult
	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return def, ctx.Err()
	case r, ok := <-p.lines:
		if !ok {
			r = readResult{err: io.EOF}
		}
		res = r
	}

	if res.err != nil {
		if !errors.Is(res.err, io.EOF) {
			return def, res.err
		}
		fmt.Fprintln(p.out)
		if res.line == "" {
			return def, io.EOF
		}
	}
	if res.line == "" {
		return def, nil
	}
	return res.line, nil
}

// New returns the interactive bubbletea prompter when stdin is a terminal and
// plain is false, otherwise a LinePrompter
func New(in *os.File, out io.Writer, s *styles.Styles, plain bool) Prompter {
	if !plain && IsTerminal(in) {
		return NewTUIPrompter(in, out, s)
	}
	return NewLinePrompter(in, out, s)
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
)

const (
	// ExitNotFound is the status reported when the binary could not be started
	ExitNotFound = 127
	// ExitInterrupted is reported when the context was done before or while
	// the command ran
	ExitInterrupted = 130
)

// Result is the outcome of one external invocation
type Result struct {
	Output string
	Code   int
}

// OK reports whether the command exited with status 0
func (r Result) OK() bool {
	return r.Code == 0
}

// Runner executes external commands in a working directory.
// Failures are reported through Result.Code, never as Go errors.
type Runner interface {
	// Run executes the command with output captured and trimmed
	Run(ctx context.Context, dir, name string, args ...string) Result

	// RunInteractive executes the command attached to the terminal
	RunInteractive(ctx context.Context, dir, name string, args ...string) Result

	// LookPath reports whether a binary is available on PATH
	LookPath(name string) bool
}

// Observer is notified with the full command line before each invocation
type Observer func(cmdline string)

// Observe wraps r so that fn sees every command line before it runs
func Observe(r Runner, fn Observer) Runner {
	if fn == nil {
		return r
	}
	return &observed{inner: r, fn: fn}
}

type observed struct {
	inner Runner
	fn    Observer
}

func (o *observed) Run(ctx context.Context, dir, name string, args ...string) Result {
	o.fn(CommandLine(name, args...))
	return o.inner.Run(ctx, dir, name, args...)
}

func (o *observed) RunInteractive(ctx context.Context, dir, name string, args ...string) Result {
	o.fn(CommandLine(name, args...))
	return o.inner.RunInteractive(ctx, dir, name, args...)
}

func (o *observed) LookPath(name string) bool {
	return o.inner.LookPath(name)
}

// ExecRunner is the os/exec backed Runner
type ExecRunner struct {
	stdin  *os.File
	stdout *os.File
	stderr *os.File
}

// New creates an ExecRunner attached to the process stdio
func New() *ExecRunner {
	return &ExecRunner{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Run implements Runner.Run
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) Result {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = BuildEnv(true)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return Result{Output: strings.TrimSpace(stdout.String()), Code: 0}
	}

	// Prefer stderr on failure, git and gh write diagnostics there
	text := strings.TrimSpace(stderr.String())
	if text == "" {
		text = strings.TrimSpace(stdout.String())
	}
	if ctx.Err() != nil {
		return Result{Output: ctx.Err().Error(), Code: ExitInterrupted}
	}
	code := exitCode(err)
	if text == "" && code == ExitNotFound {
		text = err.Error()
	}
	return Result{Output: text, Code: code}
}

// RunInteractive implements Runner.RunInteractive
func (r *ExecRunner) RunInteractive(ctx context.Context, dir, name string, args ...string) Result {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = BuildEnv(false)
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return Result{Output: ctx.Err().Error(), Code: ExitInterrupted}
		}
		code := exitCode(err)
		if code == ExitNotFound {
			return Result{Output: err.Error(), Code: code}
		}
		return Result{Code: code}
	}
	return Result{}
}

// LookPath implements Runner.LookPath
func (r *ExecRunner) LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// CommandLine renders a command the way a user would type it
func CommandLine(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\"'") {
			a = `"` + strings.ReplaceAll(a, `"`, `\"`) + `"`
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return code
		}
		// Killed by a signal
		return 1
	}
	// Binary missing or not executable
	return ExitNotFound
}

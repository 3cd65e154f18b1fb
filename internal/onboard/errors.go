package onboard

import "errors"

// Fatal conditions. Every other failure is logged and the run continues.
var (
	ErrGitMissing      = errors.New("git is not installed")
	ErrInitFailed      = errors.New("failed to initialize git repository")
	ErrAccountRequired = errors.New("username is required")
	ErrRemoteFailed    = errors.New("failed to add remote")
)

package onboard

import (
	"fmt"
	"path/filepath"

	"github.com/hammashamzah/git-autopush/internal/github"
	"github.com/hammashamzah/git-autopush/internal/recorder"
)

// TotalSteps is the fixed number of stages in a run
const TotalSteps = 8

// ActionLog is the append-only list of completed setup actions
type ActionLog struct {
	items []string
}

// Add appends an action description
func (a *ActionLog) Add(format string, args ...any) {
	a.items = append(a.items, fmt.Sprintf(format, args...))
}

// Items returns a copy of the actions in recorded order
func (a *ActionLog) Items() []string {
	out := make([]string, len(a.items))
	copy(out, a.items)
	return out
}

// Len returns the number of recorded actions
func (a *ActionLog) Len() int {
	return len(a.items)
}

// Session is the state of one run against one target directory
type Session struct {
	Path     string
	Recorder *recorder.Recorder
	Actions  ActionLog
	Step     int
	Total    int
}

// NewSession creates a session for an absolute path
func NewSession(path string, rec *recorder.Recorder) *Session {
	return &Session{
		Path:     path,
		Recorder: rec,
		Total:    TotalSteps,
	}
}

// Name returns the folder name
func (s *Session) Name() string {
	return filepath.Base(s.Path)
}

// NextStep advances the step counter and records the step header.
// The counter never exceeds Total.
func (s *Session) NextStep(text string) {
	if s.Step < s.Total {
		s.Step++
	}
	s.Recorder.Step(s.Step, s.Total, text)
}

// Complete fast-forwards the counter to Total
func (s *Session) Complete() {
	s.Step = s.Total
}

// RemoteInfo describes the destination repository on the hosting service
type RemoteInfo struct {
	Account    string
	Name       string
	License    github.License
	Visibility string
	Host       string
	URL        string
}

// NewRemoteInfo builds a RemoteInfo and derives its clone URL
func NewRemoteInfo(host, account, name string, license github.License, visibility string) RemoteInfo {
	return RemoteInfo{
		Account:    account,
		Name:       name,
		License:    license,
		Visibility: visibility,
		Host:       host,
		URL:        github.RepoURL(host, account, name),
	}
}

// WebURL returns the repository page
func (r RemoteInfo) WebURL() string {
	return github.WebURL(r.Host, r.Account, r.Name)
}

// CommitMessage returns the message of the initial commit for a folder
func CommitMessage(folder string) string {
	return "Initial commit: " + folder
}

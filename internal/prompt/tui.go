package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hammashamzah/git-autopush/internal/styles"
)

// keyMap defines the prompt keybindings
type keyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns keybindings for the short help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// inputModel is a single-line inline question
type inputModel struct {
	question  string
	def       string
	input     textinput.Model
	keys      keyMap
	help      help.Model
	styles    *styles.Styles
	answer    string
	done      bool
	cancelled bool
}

func newInputModel(question, def string, s *styles.Styles) inputModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = def
	ti.CharLimit = 200
	ti.Width = 50
	ti.Focus()

	return inputModel{
		question: question,
		def:      def,
		input:    ti,
		keys:     defaultKeyMap(),
		help:     help.New(),
		styles:   s,
	}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Submit):
			m.answer = strings.TrimSpace(m.input.Value())
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel):
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	q := m.styles.Prompt.Render(m.question)
	if m.done {
		return q + m.styles.Value.Render(m.value()) + "\n"
	}
	if m.cancelled {
		return q + m.styles.PromptHint.Render("(cancelled)") + "\n"
	}
	return q + m.input.View() + "\n" + m.help.View(m.keys)
}

// value is the effective answer, the default when nothing was typed
func (m inputModel) value() string {
	if m.answer == "" {
		return m.def
	}
	return m.answer
}

// TUIPrompter asks questions with an inline bubbletea text input
type TUIPrompter struct {
	in     io.Reader
	out    io.Writer
	styles *styles.Styles
}

// NewTUIPrompter creates a bubbletea backed prompter
func NewTUIPrompter(in io.Reader, out io.Writer, s *styles.Styles) *TUIPrompter {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &TUIPrompter{in: in, out: out, styles: s}
}

// Ask implements Prompter
func (p *TUIPrompter) Ask(ctx context.Context, question, def string) (string, error) {
	if err := ctx.Err(); err != nil {
		return def, err
	}
	m := newInputModel(question, def, p.styles)
	prog := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := prog.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return def, ctx.Err()
		}
		return def, fmt.Errorf("prompt failed: %w", err)
	}

	fm, ok := final.(inputModel)
	if !ok {
		return def, fmt.Errorf("prompt failed: unexpected model %T", final)
	}
	if fm.cancelled {
		return def, ErrCancelled
	}
	return fm.value(), nil
}

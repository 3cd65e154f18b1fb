package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Colors
var (
	HighlightColor = lipgloss.Color("#00d4aa")
	WhiteColor     = lipgloss.Color("#ffffff")
	MutedColor     = lipgloss.Color("#6b7280")
	BorderColor    = lipgloss.Color("#3f3f46")

	// Status colors
	SuccessColor = lipgloss.Color("#10b981")
	ErrorColor   = lipgloss.Color("#ef4444")
	WarningColor = lipgloss.Color("#f59e0b")
	InfoColor    = lipgloss.Color("#22d3ee")
	StepColor    = lipgloss.Color("#3b82f6")
)

// Styles holds every style used on the console
type Styles struct {
	// Banners
	Banner      lipgloss.Style
	BannerOK    lipgloss.Style
	Section     lipgloss.Style
	SectionRule lipgloss.Style

	// Recorder levels
	Step    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Detail  lipgloss.Style

	// Prompts
	Prompt      lipgloss.Style
	PromptHint  lipgloss.Style
	Value       lipgloss.Style
	Command     lipgloss.Style
	Unchecked   lipgloss.Style
	Checked     lipgloss.Style
	Placeholder lipgloss.Style
}

// DefaultStyles returns the default console styles
func DefaultStyles() *Styles {
	s := &Styles{}

	s.Banner = lipgloss.NewStyle().
		Bold(true).
		Foreground(StepColor)

	s.BannerOK = lipgloss.NewStyle().
		Bold(true).
		Foreground(SuccessColor)

	s.Section = lipgloss.NewStyle().
		Bold(true).
		Foreground(WhiteColor)

	s.SectionRule = lipgloss.NewStyle().
		Foreground(BorderColor)

	s.Step = lipgloss.NewStyle().
		Bold(true).
		Foreground(StepColor)

	s.Success = lipgloss.NewStyle().
		Foreground(SuccessColor)

	s.Error = lipgloss.NewStyle().
		Foreground(ErrorColor)

	s.Warning = lipgloss.NewStyle().
		Foreground(WarningColor)

	s.Info = lipgloss.NewStyle().
		Foreground(InfoColor)

	s.Detail = lipgloss.NewStyle().
		Foreground(MutedColor)

	s.Prompt = lipgloss.NewStyle().
		Foreground(InfoColor)

	s.PromptHint = lipgloss.NewStyle().
		Foreground(MutedColor)

	s.Value = lipgloss.NewStyle().
		Foreground(SuccessColor)

	s.Command = lipgloss.NewStyle().
		Foreground(HighlightColor)

	s.Unchecked = lipgloss.NewStyle().
		Foreground(ErrorColor)

	s.Checked = lipgloss.NewStyle().
		Foreground(SuccessColor)

	s.Placeholder = lipgloss.NewStyle().
		Foreground(WarningColor)

	return s
}

// DisableColor forces plain ASCII output for every style
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// RenderBanner renders a boxed title between two rules
func (s *Styles) RenderBanner(style lipgloss.Style, title string) string {
	rule := strings.Repeat("=", 60)
	return style.Render(rule) + "\n" + style.Render("  "+title) + "\n" + style.Render(rule)
}

// RenderSection renders a section heading with an underline
func (s *Styles) RenderSection(title string) string {
	return s.Section.Render(title) + "\n" + s.SectionRule.Render(strings.Repeat("=", 50))
}

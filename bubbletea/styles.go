package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/scout"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	UserMsg     lipgloss.Style
	ModelMsg    lipgloss.Style
	Thinking    lipgloss.Style
	Source      lipgloss.Style
	SourceTitle lipgloss.Style
	Error       lipgloss.Style
	Muted       lipgloss.Style
	Accent      lipgloss.Style
	UserBody    lipgloss.Style
	ErrorBanner lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t scout.Theme) Styles {
	return Styles{
		UserMsg:     lipgloss.NewStyle().Foreground(ansiColor(t.UserMsg)).Bold(true),
		ModelMsg:    lipgloss.NewStyle().Foreground(ansiColor(t.ModelMsg)).Bold(true),
		Thinking:    lipgloss.NewStyle().Foreground(ansiColor(t.Thinking)),
		Source:      lipgloss.NewStyle().Foreground(ansiColor(t.Source)),
		SourceTitle: lipgloss.NewStyle().Bold(true),
		Error:       lipgloss.NewStyle().Foreground(ansiColor(t.Error)).Bold(true),
		Muted:       lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:      lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		UserBody: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(ansiColor(t.UserMsg)).
			PaddingLeft(1),
		ErrorBanner: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ansiColor(t.Error)).
			Foreground(ansiColor(t.Error)).
			Padding(0, 1),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

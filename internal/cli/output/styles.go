package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used in text mode.
type Styles struct {
	Header1  lipgloss.Style
	Header2  lipgloss.Style
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Info     lipgloss.Style
	Error    lipgloss.Style
	FilePath lipgloss.Style
}

func newStyles(lr *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1:  lr.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")),
		Header2:  lr.NewStyle().Bold(true).Underline(true),
		Bold:     lr.NewStyle().Bold(true),
		Muted:    lr.NewStyle().Foreground(lipgloss.Color("#888888")),
		Success:  lr.NewStyle().Foreground(lipgloss.Color("#3FB950")),
		Warning:  lr.NewStyle().Foreground(lipgloss.Color("#D29922")),
		Info:     lr.NewStyle().Foreground(lipgloss.Color("#58A6FF")),
		Error:    lr.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
		FilePath: lr.NewStyle().Bold(true).Foreground(lipgloss.Color("#A371F7")),
	}
}

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"slackwatch-agent/src/parse"
)

// StyleConfig holds the customizable colors for the watch dashboard.
type StyleConfig struct {
	Title     lipgloss.Style
	Help      lipgloss.Style
	Dim       lipgloss.Style
	Workflow  lipgloss.Style
	Succeeded lipgloss.Style
	Failed    lipgloss.Style
	Running   lipgloss.Style
	Cancelled lipgloss.Style
	Unknown   lipgloss.Style
}

// DefaultStyles returns the default palette.
func DefaultStyles() *StyleConfig {
	return &StyleConfig{
		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color("#8AB4F8")).Bold(true).Padding(0, 1),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("#9AA0A6")).Padding(0, 1),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("#9AA0A6")),
		Workflow:  lipgloss.NewStyle().Foreground(lipgloss.Color("#A142F4")),
		Succeeded: lipgloss.NewStyle().Foreground(lipgloss.Color("#34A853")),
		Failed:    lipgloss.NewStyle().Foreground(lipgloss.Color("#EA4335")).Bold(true),
		Running:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FBBC04")),
		Cancelled: lipgloss.NewStyle().Foreground(lipgloss.Color("#9AA0A6")),
		Unknown:   lipgloss.NewStyle().Foreground(lipgloss.Color("#5F6368")),
	}
}

// StatusStyle returns the style for a build status.
func (s *StyleConfig) StatusStyle(status parse.BuildStatus) lipgloss.Style {
	switch status {
	case parse.StatusSucceeded:
		return s.Succeeded
	case parse.StatusFailed:
		return s.Failed
	case parse.StatusRunning:
		return s.Running
	case parse.StatusCancelled:
		return s.Cancelled
	default:
		return s.Unknown
	}
}

// statusGlyph is the single-cell marker rendered before each row.
func statusGlyph(status parse.BuildStatus) string {
	switch status {
	case parse.StatusSucceeded:
		return "✔"
	case parse.StatusFailed:
		return "✘"
	case parse.StatusRunning:
		return "▶"
	case parse.StatusCancelled:
		return "■"
	default:
		return "·"
	}
}

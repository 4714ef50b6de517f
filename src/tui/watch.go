// Package tui renders recent build notifications from a Slack channel as
// an interactive terminal dashboard.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"slackwatch-agent/src/parse"
	"slackwatch-agent/src/pipeline"
)

// fetchTimeout bounds a single refresh round-trip to the Slack API.
const fetchTimeout = 30 * time.Second

// buildsMsg carries the result of one refresh.
type buildsMsg struct {
	builds []parse.ParsedBuild
	err    error
}

// model is the bubbletea model for the watch dashboard.
type model struct {
	source  pipeline.Source
	channel string
	opts    pipeline.Options

	spinner spinner.Model
	styles  *StyleConfig

	builds  []parse.ParsedBuild
	err     error
	loading bool
	width   int
}

func newModel(source pipeline.Source, channel string, opts pipeline.Options) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return model{
		source:  source,
		channel: channel,
		opts:    opts,
		spinner: sp,
		styles:  DefaultStyles(),
		loading: true,
		width:   80,
	}
}

// Start runs the dashboard until the user quits.
func Start(source pipeline.Source, channel string, opts pipeline.Options) error {
	p := tea.NewProgram(newModel(source, channel, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

// fetch loads the latest builds off the UI loop.
func (m model) fetch() tea.Cmd {
	source, channel, opts := m.source, m.channel, m.opts
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		builds, err := pipeline.Recent(ctx, source, channel, opts)
		return buildsMsg{builds: builds, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if !m.loading {
				m.loading = true
				m.err = nil
				return m, tea.Batch(m.spinner.Tick, m.fetch())
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case buildsMsg:
		m.loading = false
		m.builds = msg.builds
		m.err = msg.err

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m model) View() string {
	header := m.styles.Title.Render(fmt.Sprintf("slackwatch · #%s", m.channel))
	if m.opts.Workflow != "" {
		header += m.styles.Dim.Render(fmt.Sprintf(" (workflow ~ %q)", m.opts.Workflow))
	}
	out := header + "\n\n"

	switch {
	case m.loading:
		out += fmt.Sprintf("  %s fetching notifications...\n", m.spinner.View())
	case m.err != nil:
		out += m.styles.Failed.Render(fmt.Sprintf("  error: %v", m.err)) + "\n"
	case len(m.builds) == 0:
		out += m.styles.Dim.Render("  no build notifications found") + "\n"
	default:
		for _, b := range m.builds {
			out += m.renderRow(b) + "\n"
		}
	}

	out += "\n" + m.styles.Help.Render("r refresh · q quit")
	return out
}

// renderRow formats one build as a single aligned line.
func (m model) renderRow(b parse.ParsedBuild) string {
	status := m.styles.StatusStyle(b.Status)

	workflow := b.Workflow
	if workflow == "" {
		workflow = "-"
	}

	duration := "-"
	if b.Duration != nil {
		duration = b.Duration.Formatted
	}

	textWidth := m.width - 46
	if textWidth < 10 {
		textWidth = 10
	}

	return fmt.Sprintf(" %s %s %s %s  %s",
		status.Render(statusGlyph(b.Status)),
		status.Render(padCell(string(b.Status), 9)),
		m.styles.Workflow.Render(padCell(workflow, 18)),
		m.styles.Dim.Render(padCell(duration, 8)),
		truncateCell(b.Text, textWidth),
	)
}

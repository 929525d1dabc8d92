// Package tui renders live download progress with Bubble Tea.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/halcyon-labs/drivealbum-cli/internal/download"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)

const maxLogLines = 8

// EventMsg delivers a download progress event to the UI. Send these via
// Program.Send from the manager's progress callback.
type EventMsg download.Event

// DoneMsg signals that all downloads finished.
type DoneMsg struct {
	Stats download.Stats
	Err   error
}

type logEntry struct {
	message string
	level   download.Level
}

// Model shows a progress bar, running counters and a short log tail for
// one album download.
type Model struct {
	album  string
	total  int
	cancel context.CancelFunc

	bar       progress.Model
	completed int
	skipped   int
	failed    int
	bytes     int64
	logs      []logEntry

	done  bool
	stats download.Stats
	err   error
	width int
}

// New creates a progress model for an album with a known image count.
// cancel is invoked when the user interrupts the download.
func New(album string, total int, cancel context.CancelFunc) Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 50

	return Model{
		album:  album,
		total:  total,
		cancel: cancel,
		bar:    bar,
	}
}

// Stats returns the final statistics once the download is done.
func (m Model) Stats() download.Stats {
	return m.stats
}

// Err returns the terminal error, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = msg.Width - 10
		if m.bar.Width > 80 {
			m.bar.Width = 80
		}
		if m.bar.Width < 20 {
			m.bar.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}

	case EventMsg:
		if msg.Result != nil {
			m.completed++
			switch {
			case msg.Result.Skipped:
				m.skipped++
				m.bytes += msg.Result.Size
			case msg.Result.Success:
				m.bytes += msg.Result.Size
			default:
				m.failed++
			}
		}
		m.logs = append(m.logs, logEntry{message: msg.Message, level: msg.Level})
		if len(m.logs) > maxLogLines {
			m.logs = m.logs[len(m.logs)-maxLogLines:]
		}
		return m, nil

	case DoneMsg:
		m.done = true
		m.stats = msg.Stats
		m.err = msg.Err
		return m, tea.Quit

	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Downloading: " + m.album))
	b.WriteString("\n\n")

	var percent float64
	if m.total > 0 {
		percent = float64(m.completed) / float64(m.total)
	}
	b.WriteString(m.bar.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Files: %d/%d | Skipped: %d | Failed: %d | %s",
		m.completed, m.total, m.skipped, m.failed, download.FormatSize(m.bytes),
	)))
	b.WriteString("\n\n")

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.level {
		case download.LevelError:
			style = errorStyle
			prefix = "✗"
		case download.LevelWarning:
			style = warningStyle
			prefix = "!"
		case download.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case download.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("ctrl+c: cancel"))
	b.WriteString("\n")

	return b.String()
}

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxLogLines = 8

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true)
	statStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	logStyle     = lipgloss.NewStyle().Faint(true)
	panelStyle   = lipgloss.NewStyle().Padding(1, 2)
	helpStyle    = lipgloss.NewStyle().Faint(true).Italic(true)
	defaultWidth = 60
)

// Messages sent into the TUI by the pipeline.

type setTotalMsg int

type jobQueuedMsg struct {
	id       string
	filename string
}

type jobDoneMsg struct {
	id   string
	size int64
	err  error
}

type logMsg struct {
	level string
	text  string
}

// model is the bubbletea model for the live download view.
type model struct {
	spinner  spinner.Model
	progress progress.Model

	total     int
	queued    int
	completed int
	failed    int

	logLines []string
	width    int
	quitting bool
}

func newModel() model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))

	p := progress.New(progress.WithDefaultGradient())
	p.Width = defaultWidth

	return model{
		spinner:  s,
		progress: p,
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 10
		if w > 0 && w < defaultWidth {
			m.progress.Width = w
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case setTotalMsg:
		m.total = int(msg)
		return m, nil

	case jobQueuedMsg:
		m.queued++
		return m, nil

	case jobDoneMsg:
		if msg.err != nil {
			m.failed++
			m.addLog(failStyle.Render("✗ ") + msg.id + logStyle.Render(" "+msg.err.Error()))
		} else {
			m.completed++
			m.addLog(okStyle.Render("✓ ") + msg.id + logStyle.Render(fmt.Sprintf(" %d bytes", msg.size)))
		}
		return m, nil

	case logMsg:
		style := logStyle
		if msg.level == "error" {
			style = failStyle
		}
		m.addLog(style.Render(msg.text))
		return m, nil
	}

	return m, nil
}

func (m *model) addLog(line string) {
	m.logLines = append(m.logLines, line)
	if len(m.logLines) > maxLogLines {
		m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
	}
}

// View implements tea.Model.
func (m model) View() string {
	if m.quitting {
		return ""
	}

	done := m.completed + m.failed
	pct := 0.0
	if m.total > 0 {
		pct = float64(done) / float64(m.total)
	}

	header := fmt.Sprintf("%s %s", m.spinner.View(), titleStyle.Render("bingrab — downloading images"))
	stats := statStyle.Render(fmt.Sprintf("queued %d  ok %d  failed %d  total %d",
		m.queued, m.completed, m.failed, m.total))

	body := header + "\n\n" +
		m.progress.ViewAs(pct) + "\n" +
		stats + "\n\n"

	for _, line := range m.logLines {
		body += line + "\n"
	}

	body += "\n" + helpStyle.Render("press q to quit")

	return panelStyle.Render(body)
}

// Package tui provides an optional live terminal view of a download run,
// built on bubbletea. The pipeline talks to it through the ui.TUI
// interface and never imports the framework directly.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// TUI drives the bubbletea program and satisfies ui.TUI.
type TUI struct {
	program *tea.Program
}

// New creates a new TUI instance.
func New() *TUI {
	return &TUI{
		program: tea.NewProgram(newModel(), tea.WithAltScreen()),
	}
}

// Start runs the TUI until Stop is called or the user quits. It blocks,
// so callers run it on its own goroutine.
func (t *TUI) Start() error {
	_, err := t.program.Run()
	return err
}

// Stop shuts the TUI down gracefully.
func (t *TUI) Stop() {
	t.program.Quit()
}

// SetTotal tells the view how many downloads to expect.
func (t *TUI) SetTotal(total int) {
	t.program.Send(setTotalMsg(total))
}

// JobQueued records a newly dispatched download.
func (t *TUI) JobQueued(id, filename string) {
	t.program.Send(jobQueuedMsg{id: id, filename: filename})
}

// JobCompleted records a successful download.
func (t *TUI) JobCompleted(id string, size int64) {
	t.program.Send(jobDoneMsg{id: id, size: size})
}

// JobFailed records a failed download.
func (t *TUI) JobFailed(id string, err error) {
	t.program.Send(jobDoneMsg{id: id, err: err})
}

// LogInfo adds an informational line to the view's log tail.
func (t *TUI) LogInfo(format string, args ...interface{}) {
	t.program.Send(logMsg{level: "info", text: fmt.Sprintf(format, args...)})
}

// LogError adds an error line to the view's log tail.
func (t *TUI) LogError(format string, args ...interface{}) {
	t.program.Send(logMsg{level: "error", text: fmt.Sprintf(format, args...)})
}

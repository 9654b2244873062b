package ui

import (
	"fmt"
	"strings"
	"time"
)

const (
	progressBar   = "█"
	progressEmpty = "░"
	barWidth      = 20
)

// StatusTracker keeps track of download progress for a run.
type StatusTracker struct {
	Total     int
	Completed int
	Failed    int
	StartTime time.Time
}

// NewStatusTracker creates a tracker expecting total downloads.
func NewStatusTracker(total int) *StatusTracker {
	return &StatusTracker{
		Total:     total,
		StartTime: time.Now(),
	}
}

// IncrementCompleted records one successful download.
func (st *StatusTracker) IncrementCompleted() {
	st.Completed++
}

// IncrementFailed records one failed download.
func (st *StatusTracker) IncrementFailed() {
	st.Failed++
}

// Done returns the number of finished downloads, successful or not.
func (st *StatusTracker) Done() int {
	return st.Completed + st.Failed
}

// Bar returns a formatted progress bar for the run.
func (st *StatusTracker) Bar() string {
	if st.Total <= 0 {
		return fmt.Sprintf("[%s] %d", strings.Repeat(progressEmpty, barWidth), st.Done())
	}

	progress := float64(st.Done()) / float64(st.Total)
	filled := int(progress * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}

	bar := strings.Repeat(progressBar, filled) +
		strings.Repeat(progressEmpty, barWidth-filled)

	return fmt.Sprintf("[%s] %d/%d", bar, st.Done(), st.Total)
}

// Rate returns the average download rate in items per second.
func (st *StatusTracker) Rate() float64 {
	elapsed := time.Since(st.StartTime).Seconds()
	if elapsed == 0 {
		return 0
	}
	return float64(st.Done()) / elapsed
}

// PrintProgress redraws the current progress line.
func (st *StatusTracker) PrintProgress() {
	if quietMode {
		return
	}
	fmt.Printf("\r%s %s failed: %d", successStyle.Render("[SAVED]"), st.Bar(), st.Failed)
}

// PrintSummary prints the final run summary.
func (st *StatusTracker) PrintSummary(outputDir string) {
	if quietMode {
		return
	}
	fmt.Println()
	PrintInfo("Downloaded", fmt.Sprintf("%d", st.Completed))
	if st.Failed > 0 {
		PrintWarning("Failed", st.Failed)
	}
	PrintInfo("Elapsed", time.Since(st.StartTime).Round(time.Millisecond).String())
	PrintInfo("Output", outputDir)
}

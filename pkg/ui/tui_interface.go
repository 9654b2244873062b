package ui

// TUI is the interface between the pipeline and a live terminal view.
// It keeps the scraper free of any direct TUI framework dependency.
type TUI interface {
	Start() error
	Stop()

	SetTotal(total int)
	JobQueued(id, filename string)
	JobCompleted(id string, size int64)
	JobFailed(id string, err error)

	LogInfo(format string, args ...interface{})
	LogError(format string, args ...interface{})
}

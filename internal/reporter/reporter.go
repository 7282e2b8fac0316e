package reporter

import "github.com/jackchuka/mdrx/internal/report"

// Reporter is the interface for outputting per-file validation findings.
type Reporter interface {
	Report(files []FileReport) error
}

// FileReport pairs a source path with the diagnostics found in it.
type FileReport struct {
	Path     string
	Errors   []report.Diagnostic
	Warnings []report.Diagnostic
}

// Format represents the output format.
type Format string

const (
	FormatText  Format = "text"
	FormatSARIF Format = "sarif"
	FormatJUnit Format = "junit"
)

// New creates a reporter for the specified format.
func New(format Format) Reporter {
	// Only text format implemented for now.
	return NewTextReporter()
}

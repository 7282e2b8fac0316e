package reporter

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/jackchuka/mdrx/internal/report"
)

// TextReporter outputs findings in human-readable text format.
type TextReporter struct {
	writer io.Writer

	errorIcon   *color.Color
	warnIcon    *color.Color
	dim         *color.Color
	bold        *color.Color
	successIcon *color.Color
}

// NewTextReporter creates a new text reporter writing to stdout.
func NewTextReporter() *TextReporter {
	return &TextReporter{
		writer:      os.Stdout,
		errorIcon:   color.New(color.FgRed),
		warnIcon:    color.New(color.FgYellow),
		dim:         color.New(color.Faint),
		bold:        color.New(color.Bold),
		successIcon: color.New(color.FgGreen),
	}
}

// Report outputs findings, grouped and sorted by file.
func (r *TextReporter) Report(files []FileReport) error {
	totalErrors, totalWarnings := 0, 0
	for _, f := range files {
		totalErrors += len(f.Errors)
		totalWarnings += len(f.Warnings)
	}

	if totalErrors == 0 && totalWarnings == 0 {
		_, _ = fmt.Fprintln(r.writer, r.successIcon.Sprint("✓ No violations found"))
		return nil
	}

	sorted := make([]FileReport, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	for _, f := range sorted {
		if len(f.Errors) == 0 && len(f.Warnings) == 0 {
			continue
		}
		_, _ = fmt.Fprintln(r.writer, r.bold.Sprint(f.Path))

		diags := make([]report.Diagnostic, 0, len(f.Errors)+len(f.Warnings))
		diags = append(diags, f.Errors...)
		diags = append(diags, f.Warnings...)
		sort.Slice(diags, func(i, j int) bool { return diags[i].DocLine < diags[j].DocLine })

		for _, d := range diags {
			_, _ = fmt.Fprintln(r.writer, r.formatDiagnostic(d))
		}
		_, _ = fmt.Fprintln(r.writer)
	}

	summary := fmt.Sprintf("✗ Found %s error(s) and %s warning(s) in %s file(s)",
		humanize.Comma(int64(totalErrors)),
		humanize.Comma(int64(totalWarnings)),
		humanize.Comma(int64(len(files))))
	_, _ = fmt.Fprintln(r.writer, r.errorIcon.Sprint(summary))

	return nil
}

func (r *TextReporter) formatDiagnostic(d report.Diagnostic) string {
	icon := r.errorIcon.Sprint("✗")
	if d.Severity == report.SeverityWarning {
		icon = r.warnIcon.Sprint("⚠")
	}

	position := r.dim.Sprintf("%d:%d", d.DocLine, d.DocColumn)
	kind := r.dim.Sprintf("[%s]", d.Kind)
	id := r.dim.Sprintf("(%s)", d.ID)

	return fmt.Sprintf("  %s %s %s %s %s", icon, position, kind, d.Message, id)
}

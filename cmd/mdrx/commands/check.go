package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackchuka/mdrx/internal/config"
	"github.com/jackchuka/mdrx/internal/docnode"
	"github.com/jackchuka/mdrx/internal/matcher"
	"github.com/jackchuka/mdrx/internal/prescription"
	"github.com/jackchuka/mdrx/internal/report"
	"github.com/jackchuka/mdrx/internal/reporter"
	"github.com/jackchuka/mdrx/internal/watch"
)

// ErrViolationsFound is returned when validation finds violations.
var ErrViolationsFound = errors.New("validation violations found")

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	var watchMode bool

	cmd := &cobra.Command{
		Use:   "check [globs...]",
		Short: "Validate Markdown documents against a prescription",
		Long:  `Check validates Markdown documents matching the given glob patterns against a prescription.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli := CLIFromContext(cmd.Context())
			if watchMode {
				return runCheckWatch(cmd.Context(), cli, args)
			}
			return runCheckOnce(cli, args)
		},
	}

	cmd.Flags().BoolVar(&watchMode, "watch", false, "re-check on file changes")

	return cmd
}

func resolvePrescriptionPath(cli *CLI) (string, error) {
	if cli.Prescription != "" {
		return cli.Prescription, nil
	}
	if len(cli.Config.Prescriptions) > 0 {
		return cli.Config.Prescriptions[0], nil
	}
	return "", fmt.Errorf("no prescription specified (pass --prescription or set prescriptions in %s)", config.FileName)
}

func loadPrescription(cli *CLI) (*prescription.Prescription, string, error) {
	path, err := resolvePrescriptionPath(cli)
	if err != nil {
		return nil, "", err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading prescription %s: %w", path, err)
	}
	rx, err := prescription.Compile(src, cli.Config.PromptMarkers())
	if err != nil {
		return nil, "", fmt.Errorf("compiling prescription %s: %w", path, err)
	}
	return rx, path, nil
}

func runCheckOnce(cli *CLI, globs []string) error {
	rx, _, err := loadPrescription(cli)
	if err != nil {
		return err
	}

	files, err := findFiles(globs)
	if err != nil {
		return fmt.Errorf("finding files: %w", err)
	}
	if len(files) == 0 {
		fmt.Println("No matching files found")
		return nil
	}

	reports, err := checkFiles(rx, files, cli.Config.EffectiveSeverities())
	if err != nil {
		return err
	}

	rep := reporter.New(reporter.Format(cli.OutputFormat))
	if err := rep.Report(reports); err != nil {
		return fmt.Errorf("reporting results: %w", err)
	}

	for _, r := range reports {
		if len(r.Errors) > 0 {
			return ErrViolationsFound
		}
	}
	return nil
}

// checkFiles validates files concurrently through a fixed-size worker pool:
// each worker parses its own document tree and shares the single compiled
// prescription read-only.
func checkFiles(rx *prescription.Prescription, files []string, sev config.Severities) ([]reporter.FileReport, error) {
	workers := runtime.NumCPU()
	if workers > len(files) {
		workers = len(files)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string)
	results := make([]reporter.FileReport, len(files))
	errs := make([]error, len(files))
	indices := make(map[string]int, len(files))
	for i, f := range files {
		indices[f] = i
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range jobs {
				idx := indices[file]
				rep, err := checkOneFile(rx, file, sev)
				if err != nil {
					errs[idx] = err
					continue
				}
				results[idx] = rep
			}
		}()
	}

	for _, f := range files {
		jobs <- f
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func checkOneFile(rx *prescription.Prescription, file string, sev config.Severities) (reporter.FileReport, error) {
	src, err := os.ReadFile(file)
	if err != nil {
		return reporter.FileReport{}, fmt.Errorf("reading %s: %w", file, err)
	}
	doc, err := docnode.Parse(src)
	if err != nil {
		return reporter.FileReport{}, fmt.Errorf("parsing %s: %w", file, err)
	}
	rep, err := matcher.Validate(rx, doc, file)
	if err != nil {
		return reporter.FileReport{}, fmt.Errorf("validating %s: %w", file, err)
	}
	applySeverities(rep, sev)

	fr := reporter.FileReport{Path: file}
	for _, d := range rep.Errors {
		if d.Severity == report.SeverityWarning {
			fr.Warnings = append(fr.Warnings, d)
		} else {
			fr.Errors = append(fr.Errors, d)
		}
	}
	fr.Warnings = append(fr.Warnings, rep.Warnings...)
	return fr, nil
}

func applySeverities(rep *report.Report, sev config.Severities) {
	for i := range rep.Errors {
		applyDiagnosticSeverity(&rep.Errors[i], sev)
	}
}

func applyDiagnosticSeverity(d *report.Diagnostic, sev config.Severities) {
	switch d.Kind {
	case report.MissingMandatory:
		d.Severity = severityFromString(sev.MissingMandatory)
	case report.ContentMismatch:
		d.Severity = severityFromString(sev.ContentMismatch)
	case report.SuperfluousNode:
		d.Severity = severityFromString(sev.SuperfluousNode)
	}
}

func severityFromString(s string) report.Severity {
	if s == "warning" {
		return report.SeverityWarning
	}
	return report.SeverityError
}

func runCheckWatch(ctx context.Context, cli *CLI, globs []string) error {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	run := func() {
		if err := runCheckOnce(cli, globs); err != nil && !errors.Is(err, ErrViolationsFound) {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	run()

	debounce := time.Duration(cli.Config.Watch.DebounceMS) * time.Millisecond
	w, err := watch.New(debounce)
	if err != nil {
		return err
	}
	defer w.Close()

	files, err := findFiles(globs)
	if err != nil {
		return fmt.Errorf("finding files: %w", err)
	}
	if rxPath, err := resolvePrescriptionPath(cli); err == nil {
		files = append(files, rxPath)
	}
	if err := w.Add(files...); err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, "Watching for changes. Press Ctrl+C to stop.")
	return w.Run(sigCtx, func(changed []string) {
		fmt.Fprintf(os.Stderr, "Detected change in %d file(s), re-checking...\n", len(changed))
		run()
	})
}

// Package report defines the validation outcome types the matching engine
// returns: a Diagnostic per mismatch plus a Report aggregating them, exposed
// through Report.Failed() to avoid callers ever having to interpret an
// empty-but-non-nil error slice themselves.
package report

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jackchuka/mdrx/internal/prompt"
)

// Kind classifies why a diagnostic was raised.
type Kind string

const (
	MissingMandatory Kind = "missing-mandatory"
	ContentMismatch  Kind = "content-mismatch"
	SuperfluousNode  Kind = "superfluous-node"
	RxStructure      Kind = "rx-structure"
)

// Severity distinguishes errors from warnings, mirroring the teacher's own
// violation severities.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic localizes a single validation finding to both the document and
// the prescription that produced it.
type Diagnostic struct {
	ID       string
	Kind     Kind
	Severity Severity
	Message  string

	Path      string
	DocLine   int
	DocColumn int

	RxLine   int
	RxColumn int

	// Pairs carries the content-match pairs for ContentMismatch diagnostics
	// so renderers can highlight exactly which token failed to bind.
	Pairs []prompt.MatchPair
}

// New builds a Diagnostic with a fresh stable ID and error severity.
func New(kind Kind, message string, docLine, docCol, rxLine, rxCol int) Diagnostic {
	return Diagnostic{
		ID:        shortID(),
		Kind:      kind,
		Severity:  SeverityError,
		Message:   message,
		DocLine:   docLine,
		DocColumn: docCol,
		RxLine:    rxLine,
		RxColumn:  rxCol,
	}
}

// WithSeverity returns a copy of d with severity overridden.
func (d Diagnostic) WithSeverity(s Severity) Diagnostic {
	d.Severity = s
	return d
}

// WithPath returns a copy of d annotated with the source file path.
func (d Diagnostic) WithPath(path string) Diagnostic {
	d.Path = path
	return d
}

// WithPairs returns a copy of d carrying content-match pairs.
func (d Diagnostic) WithPairs(pairs []prompt.MatchPair) Diagnostic {
	d.Pairs = pairs
	return d
}

// Error renders d as a single-line message, so Diagnostic satisfies error.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", d.Path, d.DocLine, d.DocColumn, d.Kind, d.Message)
}

func shortID() string {
	return uuid.NewString()[:8]
}

// Report is the outcome of validating a document against a prescription.
type Report struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Failed is the one place the "empty-but-present slice still means failure"
// convention is interpreted: callers should use Failed(), never
// len(Errors) == 0, to decide success.
func (r *Report) Failed() bool {
	return r != nil && r.Errors != nil
}

// AddError appends an error diagnostic, initializing Errors to a non-nil
// (possibly still momentarily empty before this append) slice.
func (r *Report) AddError(d Diagnostic) {
	r.Errors = append(r.Errors, d)
}

// AddWarning appends a warning diagnostic.
func (r *Report) AddWarning(d Diagnostic) {
	r.Warnings = append(r.Warnings, d)
}

// MarkFailed ensures Failed() reports true even before any diagnostic is
// attached, for call sites that know validation failed generically (e.g. a
// capability mismatch surfaced as a warning-free failure).
func (r *Report) MarkFailed() {
	if r.Errors == nil {
		r.Errors = []Diagnostic{}
	}
}

// Package matcher implements the tree matching engine: the sibling-block
// matcher with bookmark-based backtracking, the sibling-inline matcher, the
// element comparator, and the per-node content validator. It depends only
// on internal/docnode (the node accessor contract), internal/prescription
// (match-type classification) and internal/prompt (content matching) — no
// parser, CLI, or I/O package.
package matcher

import (
	"fmt"

	"github.com/jackchuka/mdrx/internal/docnode"
	"github.com/jackchuka/mdrx/internal/prescription"
	"github.com/jackchuka/mdrx/internal/prompt"
	"github.com/jackchuka/mdrx/internal/report"
)

// Diagnostic is the matcher's internal finding shape, converted to
// report.Diagnostic at the façade boundary once positions are known.
type Diagnostic struct {
	Kind    report.Kind
	Message string
	Doc     *docnode.Node
	Rx      *docnode.Node
	Pairs   []prompt.MatchPair
}

type validator struct {
	rx       *prescription.Prescription
	filename string
}

// Validate runs the sibling-block matcher over the roots of rx and doc and
// returns the resulting report. A non-nil error indicates a capability or
// runtime failure (§7), distinct from structural validation findings, which
// are carried in the returned *report.Report.
func Validate(rx *prescription.Prescription, doc *docnode.Tree, filename string) (*report.Report, error) {
	v := &validator{rx: rx, filename: filename}

	diags := v.validateSiblingBlocks(rx.Tree.Root, doc.Root)

	rep := &report.Report{}
	for _, d := range diags {
		rep.AddError(v.toReportDiagnostic(d))
	}

	fmDiags := v.validateFrontMatter(doc)
	for _, d := range fmDiags {
		rep.AddError(v.toReportDiagnostic(d))
	}

	return rep, nil
}

func (v *validator) toReportDiagnostic(d Diagnostic) report.Diagnostic {
	docLine, docCol := d.Doc.Position()
	rxLine, rxCol := d.Rx.Position()
	diag := report.New(d.Kind, d.Message, docLine, docCol, rxLine, rxCol)
	if d.Pairs != nil {
		diag = diag.WithPairs(d.Pairs)
	}
	return diag
}

func (v *validator) missingMandatory(rx *docnode.Node) Diagnostic {
	return Diagnostic{
		Kind:    report.MissingMandatory,
		Message: fmt.Sprintf("mandatory %s has no matching content", describeKind(rx)),
		Rx:      rx,
	}
}

func (v *validator) superfluousNode(doc *docnode.Node) Diagnostic {
	return Diagnostic{
		Kind:    report.SuperfluousNode,
		Message: fmt.Sprintf("unexpected %s not described by the prescription", describeKind(doc)),
		Doc:     doc,
	}
}

func (v *validator) rxStructure(rx *docnode.Node, message string) Diagnostic {
	return Diagnostic{Kind: report.RxStructure, Message: message, Rx: rx}
}

func (v *validator) contentMismatch(rx, doc *docnode.Node) Diagnostic {
	return Diagnostic{
		Kind:    report.ContentMismatch,
		Message: fmt.Sprintf("content of %s does not satisfy the prescription", describeKind(doc)),
		Doc:     doc,
		Rx:      rx,
	}
}

func describeKind(n *docnode.Node) string {
	if n == nil {
		return "node"
	}
	switch n.Kind() {
	case docnode.KindHeading:
		return "heading"
	case docnode.KindParagraph:
		return "paragraph"
	case docnode.KindList:
		return "list"
	case docnode.KindListItem:
		return "list item"
	case docnode.KindFencedCodeBlock, docnode.KindCodeBlock:
		return "code block"
	case docnode.KindTable:
		return "table"
	case docnode.KindBlockquote:
		return "blockquote"
	case docnode.KindLink:
		return "link"
	case docnode.KindImage:
		return "image"
	default:
		return "block"
	}
}

package matcher

import (
	"github.com/jackchuka/mdrx/internal/docnode"
	"github.com/jackchuka/mdrx/internal/prompt"
)

// validateNodeContent runs content matching over an inline leaf node, or
// over a link (called from inlineMatches before its children are compared).
// Link nodes compare url, title and text, since a prescription link can
// prompt any of the three independently.
func (v *validator) validateNodeContent(rx, doc *docnode.Node) []Diagnostic {
	if rx.Kind() == docnode.KindLink {
		var diags []Diagnostic
		diags = append(diags, v.validateTextField(rx, doc, rx.URL(), doc.URL())...)
		diags = append(diags, v.validateTextField(rx, doc, rx.Title(), doc.Title())...)
		diags = append(diags, v.validateTextField(rx, doc, rx.Content(), doc.Content())...)
		return diags
	}
	return v.validateTextField(rx, doc, rx.Content(), doc.Content())
}

func (v *validator) validateTextField(rx, doc *docnode.Node, rxContent, docContent string) []Diagnostic {
	result := prompt.MatchContent(rxContent, docContent, v.rx.Markers)
	if result.Mismatch() {
		d := v.contentMismatch(rx, doc)
		d.Pairs = result.Pairs
		return []Diagnostic{d}
	}
	return nil
}

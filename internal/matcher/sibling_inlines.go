package matcher

import "github.com/jackchuka/mdrx/internal/docnode"

// validateSiblingInlines matches rxFirst's sibling chain against docFirst's
// sibling chain left to right. Unlike sibling-block matching this has no
// bookmark or repeat semantics: prompts inside inline leaves are handled
// textually by the content matcher (§4.8), not by structural repetition.
//
// Returns as soon as a pairing fails: like the block walk, a mismatch here
// means the remaining cursor positions no longer reflect a real match, so
// there's nothing useful left to check.
func (v *validator) validateSiblingInlines(rxFirst, docFirst *docnode.Node) []Diagnostic {
	rxCur := rxFirst
	docCur := docFirst

	for rxCur != nil {
		if docCur == nil {
			return []Diagnostic{v.missingMandatory(rxCur)}
		}
		if d := v.inlineMatches(rxCur, docCur); len(d) > 0 {
			return d
		}
		rxCur = rxCur.NextSibling()
		docCur = docCur.NextSibling()
	}

	var diags []Diagnostic
	for docCur != nil {
		diags = append(diags, v.superfluousNode(docCur))
		docCur = docCur.NextSibling()
	}

	return diags
}

package matcher

import (
	"github.com/jackchuka/mdrx/internal/docnode"
)

// typesMatch reports whether two nodes have compatible concrete types:
// equal Kind, plus heading level for headings and list kind for lists.
func typesMatch(rx, doc *docnode.Node) bool {
	if rx.Kind() != doc.Kind() {
		return false
	}
	switch rx.Kind() {
	case docnode.KindHeading:
		return rx.HeadingLevel() == doc.HeadingLevel()
	case docnode.KindList:
		return rx.ListKind() == doc.ListKind()
	default:
		return true
	}
}

// blockMatches decides whether a document block node satisfies a
// prescription block node: types must agree, and (unless rx is wildcard)
// their children must validate recursively — container blocks via sibling
// block matching, leaf blocks via sibling inline matching.
func (v *validator) blockMatches(rx, doc *docnode.Node) bool {
	if doc == nil || !typesMatch(rx, doc) {
		return false
	}
	if rx.Kind() == docnode.KindHeading {
		if !v.rx.MatchesExpr(rx, doc, v.filename) {
			return false
		}
	}
	if v.rx.IsWildcard(rx) {
		return true
	}

	switch rx.Category() {
	case docnode.ContainerBlock:
		errs := v.validateSiblingBlocks(rx, doc)
		return len(errs) == 0
	case docnode.LeafBlock:
		errs := v.validateSiblingInlines(rx.FirstChild(), doc.FirstChild())
		return len(errs) == 0
	default:
		return false
	}
}

// inlineMatches decides whether a document inline node satisfies a
// prescription inline node, recursing through inline containers and
// validating inline leaf content textually.
func (v *validator) inlineMatches(rx, doc *docnode.Node) []Diagnostic {
	if doc == nil || !typesMatch(rx, doc) {
		return []Diagnostic{v.contentMismatch(rx, doc)}
	}
	if v.rx.IsWildcard(rx) {
		return nil
	}

	switch rx.Category() {
	case docnode.InlineContainer:
		if rx.Kind() == docnode.KindLink {
			if d := v.validateNodeContent(rx, doc); len(d) > 0 {
				return d
			}
		}
		return v.validateSiblingInlines(rx.FirstChild(), doc.FirstChild())
	case docnode.InlineLeaf:
		return v.validateNodeContent(rx, doc)
	default:
		return []Diagnostic{v.contentMismatch(rx, doc)}
	}
}

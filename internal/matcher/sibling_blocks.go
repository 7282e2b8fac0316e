package matcher

import (
	"github.com/jackchuka/mdrx/internal/docnode"
	"github.com/jackchuka/mdrx/internal/prescription"
)

// validateSiblingBlocks matches rxContainer's children against docContainer's
// children. Traversal is right-to-left: both cursors start at each
// container's last child. A bookmark tracks the rightmost document sibling
// consumed by a non-rewind step, letting a later (more-leftward) mandatory
// prescription node reclaim nodes an optional or repeatable node matched
// earlier in the scan.
//
// Discovery of an error at this level aborts the walk immediately: the
// cursors and bookmark are only meaningful up to the first failure, so
// continuing would validate later siblings against state that no longer
// reflects a real match.
func (v *validator) validateSiblingBlocks(rxContainer, docContainer *docnode.Node) []Diagnostic {
	rxCur := rxContainer.LastChild()
	docCur := docContainer.LastChild()
	bookmark := docContainer.LastChild()

	for rxCur != nil {
		d, nextRx, nextDoc, nextBookmark := v.dispatchBlock(rxCur, docCur, bookmark)
		if len(d) > 0 {
			return d
		}
		rxCur, docCur, bookmark = nextRx, nextDoc, nextBookmark
	}

	var diags []Diagnostic
	for docCur != nil {
		diags = append(diags, v.superfluousNode(docCur))
		docCur = docCur.PreviousSibling()
	}

	return diags
}

// dispatchBlock applies §4.2's per-node step: classify rx by match type and
// route to the matching case. Shared by the sibling walk above and by
// matchRepeatable's per-attempt loop below, so a repeated mandatory target
// gets the same bookmark backtracking any other mandatory node gets.
func (v *validator) dispatchBlock(rx, doc, bookmark *docnode.Node) (diags []Diagnostic, nextRx, nextDoc, nextBookmark *docnode.Node) {
	switch v.rx.MatchType(rx) {
	case prescription.None:
		return nil, rx.PreviousSibling(), doc, bookmark
	case prescription.Repeatable:
		return v.matchRepeatable(rx, doc, bookmark)
	case prescription.Optional:
		return v.matchOptional(rx, doc, bookmark)
	default: // Mandatory
		return v.matchMandatory(rx, doc, bookmark)
	}
}

// scanForMatch walks from "from" leftward via PreviousSibling, looking for a
// sibling that block-matches rx. "from" itself is checked first; "stop" is
// checked too and the walk ends there, so the node at "stop" is the last one
// considered (a nil stop scans to the end of the chain). Used both to verify a nominal match has no earlier duplicate
// (case 1) and to rewind past an optional/repeatable node that consumed a
// node a mandatory node actually needed (cases 2 and 3).
func (v *validator) scanForMatch(rx, from, stop *docnode.Node) (*docnode.Node, bool) {
	for cur := from; cur != nil; cur = cur.PreviousSibling() {
		if v.blockMatches(rx, cur) {
			return cur, true
		}
		if cur.Is(stop) {
			break
		}
	}
	return nil, false
}

// matchMandatory implements §4.3's three cases. bookmark is required
// present (§4.2): a repeatable or optional run that left no rewind point
// means a mandatory node here can no longer prove it isn't reusing a node
// some earlier step already consumed, so it fails before attempting any
// match at all.
func (v *validator) matchMandatory(rx, doc, bookmark *docnode.Node) (diags []Diagnostic, nextRx, nextDoc, nextBookmark *docnode.Node) {
	nextRx = rx.PreviousSibling()

	if bookmark == nil {
		return []Diagnostic{v.missingMandatory(rx)}, nextRx, doc, bookmark
	}

	if doc != nil && v.blockMatches(rx, doc) {
		// Case 1: nominal match. Guard against an earlier duplicate that a
		// later (more-leftward) mandatory node might still need: if one
		// exists between the bookmark and this node, rewind the bookmark to
		// just before it instead of leaving it here.
		if dup, ok := v.scanForMatch(rx, bookmark, doc); ok {
			return nil, nextRx, doc.PreviousSibling(), dup.PreviousSibling()
		}
		return nil, nextRx, doc.PreviousSibling(), nil
	}

	// Cases 2 and 3: doc is present but mismatched, or doc is exhausted.
	// Either way, rewind: look for an earlier sibling (between bookmark and
	// doc, or the whole bookmark chain if doc is exhausted) that the
	// prescription node actually matches, and reclaim it from whatever
	// optional/repeatable step consumed it.
	stop := doc
	prev, ok := v.scanForMatch(rx, bookmark, stop)
	if !ok {
		return []Diagnostic{v.missingMandatory(rx)}, nextRx, doc, bookmark
	}
	return nil, nextRx, prev.PreviousSibling(), prev.PreviousSibling()
}

// matchOptional implements §4.5.
func (v *validator) matchOptional(rx, doc, bookmark *docnode.Node) (diags []Diagnostic, nextRx, nextDoc, nextBookmark *docnode.Node) {
	nextRx = rx.PreviousSibling()
	nextBookmark = bookmark

	if doc != nil && v.blockMatches(rx, doc) {
		return nil, nextRx, doc.PreviousSibling(), nextBookmark
	}
	return nil, nextRx, doc, nextBookmark
}

// matchRepeatable implements §4.4. A Repeatable prescription node refers to
// its previous sibling (the "target"): that target may match any number of
// additional document nodes. Each attempt is routed through the same §4.2
// dispatch the outer sibling walk uses, so a mandatory target gets §4.3's
// full backtracking on every iteration, not just a bare content check. The
// bookmark is only captured on the second successful iteration, so a single
// repeat does not itself create a rewind point (mirroring the reference
// implementation's capture-on-second-success rule).
func (v *validator) matchRepeatable(marker, doc, bookmark *docnode.Node) (diags []Diagnostic, nextRx, nextDoc, nextBookmark *docnode.Node) {
	target := marker.PreviousSibling()
	if target == nil {
		return []Diagnostic{v.rxStructure(marker, "repeat marker has no preceding sibling to repeat")},
			nil, doc, bookmark
	}

	targetType := v.rx.MatchType(target)
	if targetType == prescription.Repeatable || targetType == prescription.None {
		return []Diagnostic{v.rxStructure(marker, "repeat target must be a mandatory or optional node")},
			target.PreviousSibling(), doc, bookmark
	}

	successes := 0
	finalNode := doc
	curDoc := doc
	curBookmark := bookmark
	var outputBookmark *docnode.Node

	for {
		d, _, attemptDoc, attemptBookmark := v.dispatchBlock(target, curDoc, curBookmark)
		if len(d) > 0 || attemptDoc.Is(curDoc) {
			break
		}
		successes++
		if successes == 2 {
			outputBookmark = attemptBookmark
		}
		finalNode = attemptDoc
		curDoc = attemptDoc
		curBookmark = attemptBookmark
	}

	if successes == 0 && targetType == prescription.Mandatory {
		return []Diagnostic{v.missingMandatory(target)}, target.PreviousSibling(), doc, bookmark
	}

	return nil, target.PreviousSibling(), finalNode.PreviousSibling(), outputBookmark
}

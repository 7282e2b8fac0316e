package matcher

import "testing"

// TestAdjacentDuplicateMandatory* cover a document with more (or fewer)
// occurrences of a literal paragraph than the prescription names outright
// (no repeat marker involved). The right-to-left walk must consume exactly
// one document node per mandatory prescription node and leave any surplus
// duplicate as a superfluous node, rather than silently absorbing it.
func TestAdjacentDuplicateMandatoryExactCountMatches(t *testing.T) {
	rx := "Note\n\nNote\n"
	doc := "Note\n\nNote\n"
	if !validate(t, rx, doc) {
		t.Fatalf("two mandatory paragraphs should each match one of two identical document paragraphs")
	}
}

func TestAdjacentDuplicateMandatoryExtraDocNodeIsSuperfluous(t *testing.T) {
	rx := "Note\n\nNote\n"
	doc := "Note\n\nNote\n\nNote\n"
	if validate(t, rx, doc) {
		t.Fatalf("an extra duplicate paragraph beyond what the prescription names should be superfluous")
	}
}

func TestAdjacentDuplicateMandatoryFewerDocNodesFails(t *testing.T) {
	rx := "Note\n\nNote\n"
	doc := "Note\n"
	if validate(t, rx, doc) {
		t.Fatalf("a missing second duplicate paragraph should fail as an unmatched mandatory node")
	}
}

// TestAdjacentDuplicateMandatoryAfterOptionalMiss exercises the bookmark
// carried through a failed optional match: the optional paragraph between
// the two Note nodes never appears in the document, so its bookmark must
// pass through unchanged and not be mistaken for a consumed duplicate.
func TestAdjacentDuplicateMandatoryAfterOptionalMiss(t *testing.T) {
	rx := "Note\n\n<!-- rx:optional -->\n\nMaybe here\n\nNote\n"
	doc := "Note\n\nNote\n"
	if !validate(t, rx, doc) {
		t.Fatalf("an absent optional paragraph between two mandatory duplicates should not block either match")
	}
}

// TestMandatoryAfterSingleRepeatRequiresBookmark reproduces a document where
// a mandatory repeat target matches exactly once: the repeat's bookmark is
// only captured on a second success (§4.4), so it stays nil. A preceding
// mandatory node ("Intro") must not be allowed to nominally match whatever
// document node happens to sit there next with a nil bookmark standing in
// for "no rewind point exists" — doing so would let it silently reuse a node
// the single repeat attempt already passed over.
func TestMandatoryAfterSingleRepeatRequiresBookmark(t *testing.T) {
	rx := "Intro\n\nBody\n\n-\"\"-\n"
	doc := "Intro\n\nIntro\n\nBody\n"
	if validate(t, rx, doc) {
		t.Fatalf("a single successful repeat should leave no bookmark for Intro to rewind through")
	}
}

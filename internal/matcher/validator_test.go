package matcher

import (
	"testing"

	"github.com/jackchuka/mdrx/internal/docnode"
	"github.com/jackchuka/mdrx/internal/prescription"
	"github.com/jackchuka/mdrx/internal/prompt"
)

func mustCompile(t *testing.T, src string) *prescription.Prescription {
	t.Helper()
	p, err := prescription.Compile([]byte(src), prompt.DefaultMarkers)
	if err != nil {
		t.Fatalf("compiling prescription: %v", err)
	}
	return p
}

func mustParse(t *testing.T, src string) *docnode.Tree {
	t.Helper()
	tree, err := docnode.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parsing document: %v", err)
	}
	return tree
}

func validate(t *testing.T, rxSrc, docSrc string) bool {
	t.Helper()
	rx := mustCompile(t, rxSrc)
	doc := mustParse(t, docSrc)
	rep, err := Validate(rx, doc, "doc.md")
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	return !rep.Failed()
}

func TestEndToEndScenarios(t *testing.T) {
	cases := []struct {
		name string
		rx   string
		doc  string
		want bool
	}{
		{
			name: "scenario1_identical_literal",
			rx:   "The quick brown fox jumps over the dog.\n",
			doc:  "The quick brown fox jumps over the dog.\n",
			want: true,
		},
		{
			name: "scenario2_different_literal",
			rx:   "The quick brown fox jumps over the dog.\n",
			doc:  "The slow brown fox jumps over the dog.\n",
			want: false,
		},
		{
			name: "scenario3a_prompted_text_matches",
			rx:   "The quick brown fox -!!- over-??-.\n",
			doc:  "The quick brown fox jumps overthrows the dog.\n",
			want: true,
		},
		{
			name: "scenario3b_prompted_text_matches",
			rx:   "The quick brown fox -!!- over-??-.\n",
			doc:  "The quick brown fox slinks over.\n",
			want: true,
		},
		{
			name: "scenario4_mandatory_prompt_empty",
			rx:   "The quick brown fox -!!- over-??-.\n",
			doc:  "The quick brown fox over.\n",
			want: false,
		},
		{
			name: "scenario5a_mandatory_then_repeat",
			rx:   "-!!-\n\n-\"\"-\n",
			doc:  "Some random first paragraph\n\nSome random second paragraph\n",
			want: true,
		},
		{
			name: "scenario5b_repeat_does_not_cover_heading",
			rx:   "-!!-\n\n-\"\"-\n",
			doc:  "Para one\n\nPara two\n\n# A heading\n",
			want: false,
		},
		{
			name: "scenario6a_bidirectional_prompts",
			rx:   "-??--!!-my dear-??-\n",
			doc:  "Elementary my dear Watson\n",
			want: true,
		},
		{
			name: "scenario6b_mandatory_has_nothing_left",
			rx:   "-??--!!-my dear-??-\n",
			doc:  "my dear\n",
			want: false,
		},
		{
			name: "scenario6c_empty_document",
			rx:   "-??--!!-my dear-??-\n",
			doc:  "\n",
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := validate(t, tc.rx, tc.doc)
			if got != tc.want {
				t.Errorf("validate(%q, %q) = %v, want %v", tc.rx, tc.doc, got, tc.want)
			}
		})
	}
}

func TestIdentityInvariantNoPromptMarkers(t *testing.T) {
	doc := "# Title\n\nA plain paragraph with no markers at all.\n\n## Subheading\n\nMore text.\n"
	if !validate(t, doc, doc) {
		t.Fatalf("identical documents with no prompt markers should validate")
	}
}

func TestMandatoryWildcardParagraphMatchesAnyParagraph(t *testing.T) {
	if !validate(t, "-!!-\n", "Literally anything goes here.\n") {
		t.Fatalf("bare mandatory marker should match any paragraph")
	}
}

func TestMandatoryWildcardParagraphFailsOnMissingParagraph(t *testing.T) {
	if validate(t, "-!!-\n", "# Just a heading\n") {
		t.Fatalf("bare mandatory marker should not match a heading")
	}
}

func TestOptionalWildcardParagraphMayBeAbsent(t *testing.T) {
	rx := "# Title\n\n-??-\n"
	if !validate(t, rx, "# Title\n") {
		t.Fatalf("optional wildcard paragraph should be satisfied by absence")
	}
	if !validate(t, rx, "# Title\n\nAnything here.\n") {
		t.Fatalf("optional wildcard paragraph should be satisfied by any content too")
	}
}

func TestRepeatableWildcardParagraphMatchesZeroOrMore(t *testing.T) {
	rx := "-!!-\n\n-\"\"-\n"
	if !validate(t, rx, "Only one paragraph.\n") {
		t.Fatalf("single paragraph should satisfy mandatory target with zero repeats")
	}
	if !validate(t, rx, "First.\n\nSecond.\n\nThird.\n") {
		t.Fatalf("multiple paragraphs should all be absorbed by the repeat")
	}
}

// A repeat's bookmark is only captured on its second successful iteration
// (§4.4), so a preceding mandatory node can only reclaim document nodes the
// repeat consumed once at least two repeats actually happened.
func TestRepeatableWildcardAfterHeadingNeedsTwoOccurrencesToClearBookmark(t *testing.T) {
	rx := "# Title\n\n-!!-\n\n-\"\"-\n"
	if !validate(t, rx, "# Title\n\nFirst.\n\nSecond.\n") {
		t.Fatalf("two repeats should leave a bookmark the heading can rewind through")
	}
	if validate(t, rx, "# Title\n\nOnly one paragraph.\n") {
		t.Fatalf("a single repeat leaves no bookmark, so the preceding heading cannot be proven unconsumed")
	}
}

func TestSuperfluousNodeDetected(t *testing.T) {
	if validate(t, "# Title\n", "# Title\n\nUnexpected paragraph.\n") {
		t.Fatalf("an unprescribed trailing paragraph should fail validation")
	}
}

func TestMismatchedHeadingLevel(t *testing.T) {
	if validate(t, "# Title\n", "## Title\n") {
		t.Fatalf("heading level mismatch should fail")
	}
}

func TestLinkURLMismatch(t *testing.T) {
	rx := "[label](https://example.com/docs)\n"
	doc := "[label](https://example.com/other)\n"
	if validate(t, rx, doc) {
		t.Fatalf("mismatched link URL should fail")
	}
}

func TestLinkPromptedURL(t *testing.T) {
	rx := "[label](https://example.com/-!!-)\n"
	doc := "[label](https://example.com/docs)\n"
	if !validate(t, rx, doc) {
		t.Fatalf("prompted link URL segment should match any non-empty suffix")
	}
}

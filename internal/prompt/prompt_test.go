package prompt

import "testing"

func TestTokenizeNoMarkers(t *testing.T) {
	toks := Tokenize("plain text", DefaultMarkers)
	if len(toks) != 1 || toks[0].Kind != Literal || toks[0].Literal != "plain text" {
		t.Fatalf("got %v", toks)
	}
}

func TestTokenizeRoundTrip(t *testing.T) {
	content := "The quick brown fox -!!- over-??-."
	toks := Tokenize(content, DefaultMarkers)

	var rebuilt string
	for _, tok := range toks {
		switch tok.Kind {
		case Mandatory:
			rebuilt += DefaultMarkers.Mandatory
		case Optional:
			rebuilt += DefaultMarkers.Optional
		case Literal:
			rebuilt += tok.Literal
		}
	}
	if rebuilt != content {
		t.Fatalf("round trip = %q, want %q", rebuilt, content)
	}
}

func TestMatchIdenticalLiteral(t *testing.T) {
	res := MatchContent("The quick brown fox jumps over the dog.",
		"The quick brown fox jumps over the dog.", DefaultMarkers)
	if res.Mismatch() {
		t.Fatalf("expected match, got mismatch: %+v", res.Pairs)
	}
}

func TestMatchDifferentLiteral(t *testing.T) {
	res := MatchContent("The quick brown fox jumps over the dog.",
		"The slow brown fox jumps over the dog.", DefaultMarkers)
	if !res.Mismatch() {
		t.Fatalf("expected mismatch")
	}
}

func TestMatchMandatoryAndOptionalSatisfied(t *testing.T) {
	rx := "The quick brown fox -!!- over-??-."
	for _, doc := range []string{
		"The quick brown fox jumps overthrows the dog.",
		"The quick brown fox slinks over.",
	} {
		res := MatchContent(rx, doc, DefaultMarkers)
		if res.Mismatch() {
			t.Fatalf("doc %q: expected match, got %+v", doc, res.Pairs)
		}
	}
}

func TestMatchMandatoryEmptySubstitution(t *testing.T) {
	res := MatchContent("The quick brown fox -!!- over-??-.",
		"The quick brown fox over.", DefaultMarkers)
	if !res.Mismatch() {
		t.Fatalf("expected mismatch when mandatory prompt has nothing to consume")
	}
}

func TestMatchBothEndsOptionalMandatory(t *testing.T) {
	rx := "-??--!!-my dear-??-"
	ok := []string{"Elementary my dear Watson"}
	for _, doc := range ok {
		res := MatchContent(rx, doc, DefaultMarkers)
		if res.Mismatch() {
			t.Fatalf("doc %q: expected match, got %+v", doc, res.Pairs)
		}
	}

	fail := []string{"my dear", ""}
	for _, doc := range fail {
		res := MatchContent(rx, doc, DefaultMarkers)
		if !res.Mismatch() {
			t.Fatalf("doc %q: expected mismatch, got %+v", doc, res.Pairs)
		}
	}
}

func TestMatchSoundnessSubstitution(t *testing.T) {
	rx := "Start -!!- middle -??- end."
	doc := "Start filled-in middle  end."
	res := MatchContent(rx, doc, DefaultMarkers)
	if res.Mismatch() {
		t.Fatalf("substitution-produced doc should match, got %+v", res.Pairs)
	}
}

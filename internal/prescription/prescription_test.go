package prescription

import (
	"testing"

	"github.com/jackchuka/mdrx/internal/prompt"
)

func TestClassifyDefaultMandatory(t *testing.T) {
	p, err := Compile([]byte("Some plain paragraph.\n"), prompt.DefaultMarkers)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	n := p.Tree.Root.FirstChild()
	if got := p.MatchType(n); got != Mandatory {
		t.Fatalf("match type = %v, want Mandatory", got)
	}
	if p.IsWildcard(n) {
		t.Fatalf("plain paragraph should not be wildcard")
	}
}

func TestClassifyOptionalMarker(t *testing.T) {
	p, err := Compile([]byte("-??-\n"), prompt.DefaultMarkers)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	n := p.Tree.Root.FirstChild()
	if got := p.MatchType(n); got != Optional {
		t.Fatalf("match type = %v, want Optional", got)
	}
}

func TestClassifyRepeatableReferencesPrevious(t *testing.T) {
	p, err := Compile([]byte("First paragraph.\n\n-\"\"-\n"), prompt.DefaultMarkers)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	first := p.Tree.Root.FirstChild()
	marker := first.NextSibling()
	if got := p.MatchType(first); got != Mandatory {
		t.Fatalf("target match type = %v, want Mandatory", got)
	}
	if got := p.MatchType(marker); got != Repeatable {
		t.Fatalf("marker match type = %v, want Repeatable", got)
	}
}

func TestClassifyMandatoryMarkerIsWildcard(t *testing.T) {
	p, err := Compile([]byte("-!!-\n"), prompt.DefaultMarkers)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	n := p.Tree.Root.FirstChild()
	if got := p.MatchType(n); got != Mandatory {
		t.Fatalf("match type = %v, want Mandatory", got)
	}
	if !p.IsWildcard(n) {
		t.Fatalf("bare mandatory marker paragraph should be wildcard")
	}
}

func TestHTMLDirectiveOptional(t *testing.T) {
	src := "<!-- rx:optional -->\n\n# A Heading\n"
	p, err := Compile([]byte(src), prompt.DefaultMarkers)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	comment := p.Tree.Root.FirstChild()
	heading := comment.NextSibling()

	if got := p.MatchType(comment); got != None {
		t.Fatalf("comment match type = %v, want None", got)
	}
	if got := p.MatchType(heading); got != Optional {
		t.Fatalf("heading match type = %v, want Optional", got)
	}
}

func TestFrontMatterKeys(t *testing.T) {
	src := "---\ntitle: -!!-\nsubtitle: -??-\n---\n\n# Body\n"
	p, err := Compile([]byte(src), prompt.DefaultMarkers)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	keys := p.FrontMatterKeys()
	if !keys["title"] {
		t.Fatalf("title should be required")
	}
	if keys["subtitle"] {
		t.Fatalf("subtitle should be optional")
	}
}

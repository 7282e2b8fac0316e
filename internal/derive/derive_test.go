package derive

import (
	"strings"
	"testing"

	"github.com/jackchuka/mdrx/internal/docnode"
	"github.com/jackchuka/mdrx/internal/prompt"
)

func mustParse(t *testing.T, src string) *docnode.Tree {
	t.Helper()
	tree, err := docnode.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parsing document: %v", err)
	}
	return tree
}

func TestFromDocumentKeepsHeadingsAndMarksContent(t *testing.T) {
	src := "# Title\n\nSome intro text.\n\n## Section\n\nMore text.\n\nEven more.\n"
	tree := mustParse(t, src)

	out, err := FromDocument(tree, prompt.DefaultMarkers)
	if err != nil {
		t.Fatalf("FromDocument() error: %v", err)
	}
	got := string(out)

	if !strings.Contains(got, "# Title") {
		t.Errorf("expected derived prescription to keep the top heading, got:\n%s", got)
	}
	if !strings.Contains(got, "## Section") {
		t.Errorf("expected derived prescription to keep the sub-heading, got:\n%s", got)
	}
	if strings.Contains(got, "Some intro text") || strings.Contains(got, "Even more") {
		t.Errorf("derived prescription should not keep original paragraph text, got:\n%s", got)
	}
	if strings.Count(got, prompt.DefaultMarkers.Mandatory) != 2 {
		t.Errorf("expected one mandatory marker per non-heading run, got:\n%s", got)
	}
}

func TestFromDocumentEmptyDocumentErrors(t *testing.T) {
	tree := mustParse(t, "")
	if _, err := FromDocument(tree, prompt.DefaultMarkers); err == nil {
		t.Fatal("FromDocument() expected an error for an empty document")
	}
}

func TestFromDocumentHeadingOnlyDocument(t *testing.T) {
	tree := mustParse(t, "# Title\n\n## Section\n")
	out, err := FromDocument(tree, prompt.DefaultMarkers)
	if err != nil {
		t.Fatalf("FromDocument() error: %v", err)
	}
	if strings.Contains(string(out), prompt.DefaultMarkers.Mandatory) {
		t.Errorf("a document with only headings should produce no mandatory markers, got:\n%s", out)
	}
}

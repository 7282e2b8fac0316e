package docnode

import "testing"

func TestParseBasicStructure(t *testing.T) {
	tree, err := Parse([]byte("# Title\n\nSome paragraph.\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	doc := tree.Root
	if doc.Kind() != KindDocument {
		t.Fatalf("root kind = %v, want KindDocument", doc.Kind())
	}

	heading := doc.FirstChild()
	if heading == nil || heading.Kind() != KindHeading {
		t.Fatalf("first child kind = %v, want KindHeading", heading.Kind())
	}
	if heading.HeadingLevel() != 1 {
		t.Fatalf("heading level = %d, want 1", heading.HeadingLevel())
	}
	if got := heading.Content(); got != "Title" {
		t.Fatalf("heading content = %q, want %q", got, "Title")
	}

	para := heading.NextSibling()
	if para == nil || para.Kind() != KindParagraph {
		t.Fatalf("second child kind = %v, want KindParagraph", para.Kind())
	}
	if got := para.Content(); got != "Some paragraph." {
		t.Fatalf("paragraph content = %q, want %q", got, "Some paragraph.")
	}
}

func TestSiblingIdentity(t *testing.T) {
	tree, err := Parse([]byte("- one\n- two\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	list := tree.Root.FirstChild()
	if list == nil || list.Kind() != KindList {
		t.Fatalf("expected list, got %v", list.Kind())
	}

	first := list.FirstChild()
	last := list.LastChild()
	if first.Is(last) {
		t.Fatalf("first and last list items should differ")
	}
	if !first.NextSibling().Is(last) {
		t.Fatalf("first.NextSibling() should be last")
	}
	if !last.PreviousSibling().Is(first) {
		t.Fatalf("last.PreviousSibling() should be first")
	}
}

func TestLinkAccessors(t *testing.T) {
	tree, err := Parse([]byte("[label](https://example.com \"a title\")\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	para := tree.Root.FirstChild()
	link := para.FirstChild()
	if link == nil || link.Kind() != KindLink {
		t.Fatalf("expected link, got %v", link.Kind())
	}
	if got := link.URL(); got != "https://example.com" {
		t.Fatalf("url = %q", got)
	}
	if got := link.Title(); got != "a title" {
		t.Fatalf("title = %q", got)
	}
	if got := link.Content(); got != "label" {
		t.Fatalf("content = %q", got)
	}
}

func TestFrontMatter(t *testing.T) {
	tree, err := Parse([]byte("---\ntitle: Hello\n---\n\n# Body\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tree.FrontMatter["title"] != "Hello" {
		t.Fatalf("front matter title = %v", tree.FrontMatter["title"])
	}
}

func TestPosition(t *testing.T) {
	tree, err := Parse([]byte("# Title\n\nLine two.\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	heading := tree.Root.FirstChild()
	if line, col := heading.Position(); line != 1 || col != 3 {
		t.Fatalf("heading position = %d:%d, want 1:3", line, col)
	}

	para := heading.NextSibling()
	if line, col := para.Position(); line != 3 || col != 1 {
		t.Fatalf("paragraph position = %d:%d, want 3:1", line, col)
	}
}

func TestPositionNilNodeFallsBackToOneOne(t *testing.T) {
	var n *Node
	if line, col := n.Position(); line != 1 || col != 1 {
		t.Fatalf("nil position = %d:%d, want 1:1", line, col)
	}
}

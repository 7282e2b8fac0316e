// Package derive generates a starter prescription from an existing Markdown
// document: its heading skeleton is kept literal, and each run of
// consecutive non-heading top-level blocks becomes a single bare mandatory
// marker, giving a loose prescription the author can tighten by hand.
package derive

import (
	"fmt"
	"strings"

	"github.com/jackchuka/mdrx/internal/docnode"
	"github.com/jackchuka/mdrx/internal/prompt"
)

// FromDocument renders a prescription for tree's top-level structure.
func FromDocument(tree *docnode.Tree, markers prompt.Markers) ([]byte, error) {
	if tree == nil || tree.Root == nil {
		return nil, fmt.Errorf("document has no content to derive from")
	}

	var b strings.Builder
	sawAny := false
	needsMarker := false

	flushMarker := func() {
		if needsMarker {
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(markers.Mandatory)
			b.WriteString("\n")
			needsMarker = false
		}
	}

	for c := tree.Root.FirstChild(); c != nil; c = c.NextSibling() {
		sawAny = true
		if c.Kind() == docnode.KindHeading {
			flushMarker()
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(strings.Repeat("#", c.HeadingLevel()))
			b.WriteString(" ")
			b.WriteString(strings.TrimSpace(c.Content()))
			b.WriteString("\n")
			continue
		}
		needsMarker = true
	}
	flushMarker()

	if !sawAny {
		return nil, fmt.Errorf("document has no blocks to derive a prescription from")
	}

	return []byte(b.String()), nil
}

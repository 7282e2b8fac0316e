// Package prescription classifies a parsed prescription tree's nodes into
// match types (mandatory/optional/repeatable/none) and a wildcard flag, by
// reading prompt markers out of paragraph content and rx: directives out of
// HTML comments, and prepares the derived data the matching engine
// (internal/matcher) consumes.
package prescription

import (
	"fmt"
	"strings"

	"github.com/jackchuka/mdrx/internal/docnode"
	"github.com/jackchuka/mdrx/internal/prompt"
)

// MatchType classifies how a prescription node participates in sibling matching.
type MatchType int

const (
	// Mandatory is the default: the node must be satisfied by exactly one
	// document node.
	Mandatory MatchType = iota
	// Optional nodes may be satisfied by zero or one document node.
	Optional
	// Repeatable is a marker referring to its previous sibling, meaning that
	// sibling may match any number of additional document nodes.
	Repeatable
	// None nodes are never surfaced to the matcher.
	None
)

func (m MatchType) String() string {
	switch m {
	case Optional:
		return "Optional"
	case Repeatable:
		return "Repeatable"
	case None:
		return "None"
	default:
		return "Mandatory"
	}
}

type classification struct {
	matchType MatchType
	wildcard  bool
	expr      string // rx:expr directive applying to this node, if any
}

// Prescription wraps a parsed prescription tree plus the per-node
// classification the preprocessor derived from it.
type Prescription struct {
	Tree        *docnode.Tree
	Markers     prompt.Markers
	classified  map[*docnode.Node]classification
	frontMatter map[string]bool // key -> required (true) or optional (false)
}

// Compile parses rx source and runs the preprocessor over it, deriving each
// node's match type and wildcard flag.
func Compile(source []byte, markers prompt.Markers) (*Prescription, error) {
	tree, err := docnode.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parsing prescription: %w", err)
	}

	p := &Prescription{
		Tree:        tree,
		Markers:     markers,
		classified:  map[*docnode.Node]classification{},
		frontMatter: map[string]bool{},
	}
	p.classify(tree.Root)
	p.compileFrontMatter()
	return p, nil
}

// FrontMatterKeys returns the prescription's own front-matter keys, mapped
// to whether that key is required (true) or merely optional (false, its
// value was the optional marker). Supplements the distilled core spec,
// which has no concept of front matter: a prescription document's own
// front matter, when present, declares the document's required/optional
// front-matter keys.
func (p *Prescription) FrontMatterKeys() map[string]bool {
	return p.frontMatter
}

func (p *Prescription) compileFrontMatter() {
	for key, val := range p.Tree.FrontMatter {
		required := true
		if s, ok := val.(string); ok && strings.TrimSpace(s) == p.Markers.Optional {
			required = false
		}
		p.frontMatter[key] = required
	}
}

const repeatMarker = `-""-`

// classify walks the tree assigning a classification to every node. Default
// notation markers (mandatory/optional/repeat) set a leaf block's match type
// only when the block's entire trimmed content is exactly that marker.
// HTML comment directives immediately preceding a sibling instead classify
// that sibling, letting non-paragraph blocks carry annotations a bare text
// marker cannot express.
func (p *Prescription) classify(n *docnode.Node) {
	if n == nil {
		return
	}

	var pendingOptional, pendingWildcard, pendingNone bool
	var pendingExpr string

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if directive, ok := htmlDirective(c); ok {
			p.classified[c] = classification{matchType: None}
			switch directive.kind {
			case "optional":
				pendingOptional = true
			case "wildcard":
				pendingWildcard = true
			case "ignore":
				pendingNone = true
			case "expr":
				pendingExpr = directive.arg
			}
			continue
		}

		cls := classification{matchType: Mandatory}

		if pendingNone {
			cls.matchType = None
		} else if pendingOptional {
			cls.matchType = Optional
		} else if isExactMarker(c, repeatMarker, p.Markers) {
			cls.matchType = Repeatable
		} else if isExactMarker(c, p.Markers.Optional, p.Markers) {
			cls.matchType = Optional
		} else if isExactMarker(c, p.Markers.Mandatory, p.Markers) {
			cls.matchType = Mandatory
			cls.wildcard = true
		}

		if pendingWildcard {
			cls.wildcard = true
		}
		if pendingExpr != "" {
			cls.expr = pendingExpr
		}

		p.classified[c] = cls

		pendingOptional, pendingWildcard, pendingNone, pendingExpr = false, false, false, ""

		p.classify(c)
	}
}

// isExactMarker reports whether n's full trimmed content equals marker and
// n is a paragraph-shaped leaf (the only kind a bare text marker applies to).
func isExactMarker(n *docnode.Node, marker string, markers prompt.Markers) bool {
	if marker == "" {
		return false
	}
	if n.Kind() != docnode.KindParagraph {
		return false
	}
	return strings.TrimSpace(n.Content()) == marker
}

type directive struct {
	kind string
	arg  string
}

// htmlDirective recognizes an HTML block or raw-HTML node of the form
// "<!-- rx:<kind> -->" or "<!-- rx:expr: <expr> -->".
func htmlDirective(n *docnode.Node) (directive, bool) {
	if n.Kind() != docnode.KindHTMLBlock && n.Kind() != docnode.KindRawHTML {
		return directive{}, false
	}
	text := strings.TrimSpace(n.Content())
	text = strings.TrimPrefix(text, "<!--")
	text = strings.TrimSuffix(text, "-->")
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "rx:") {
		return directive{}, false
	}
	body := strings.TrimPrefix(text, "rx:")
	if strings.HasPrefix(body, "expr:") {
		return directive{kind: "expr", arg: strings.TrimSpace(strings.TrimPrefix(body, "expr:"))}, true
	}
	return directive{kind: strings.TrimSpace(body)}, true
}

// MatchType returns n's derived match type, Mandatory if never classified
// (e.g. the root itself).
func (p *Prescription) MatchType(n *docnode.Node) MatchType {
	if c, ok := p.classified[n]; ok {
		return c.matchType
	}
	return Mandatory
}

// IsWildcard reports whether n's children should be skipped during matching.
func (p *Prescription) IsWildcard(n *docnode.Node) bool {
	if c, ok := p.classified[n]; ok {
		return c.wildcard
	}
	return false
}

// Expr returns the rx:expr directive expression bound to n, if any.
func (p *Prescription) Expr(n *docnode.Node) (string, bool) {
	if c, ok := p.classified[n]; ok {
		return c.expr, c.expr != ""
	}
	return "", false
}

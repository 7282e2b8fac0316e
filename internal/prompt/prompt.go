// Package prompt implements the content-level matching algorithm: tokenizing
// prescription content into mandatory/optional/literal prompt tokens, and
// aligning those tokens against a document's raw content string with a
// bidirectional two-stack scan.
package prompt

import (
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"
)

// Markers is the set of marker strings a prescription's content is scanned
// for. The zero value has empty markers and is not replaced by
// DefaultMarkers; callers pass DefaultMarkers explicitly.
type Markers struct {
	Mandatory string
	Optional  string
}

// DefaultMarkers are the markers used when a prescription does not
// configure its own.
var DefaultMarkers = Markers{Mandatory: "-!!-", Optional: "-??-"}

// TokenKind distinguishes the four prompt token shapes.
type TokenKind int

const (
	// None is an internal sentinel; a correct tokenizer never emits it.
	None TokenKind = iota
	Mandatory
	Optional
	Literal
)

// Token is one element of a tokenized prescription content string.
type Token struct {
	Kind    TokenKind
	Literal string // populated only when Kind == Literal
}

func (t Token) String() string {
	switch t.Kind {
	case Mandatory:
		return "Mandatory"
	case Optional:
		return "Optional"
	case Literal:
		return "Literal(" + t.Literal + ")"
	default:
		return "None"
	}
}

// Tokenize splits rx content into an ordered sequence of prompt tokens.
// Text between markers becomes Literal tokens; a string with no markers at
// all yields a single Literal token (possibly empty).
func Tokenize(content string, markers Markers) []Token {
	re := markerRegexp(markers)
	matches := re.FindAllStringIndex(content, -1)

	var tokens []Token
	pos := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if start > pos {
			tokens = append(tokens, Token{Kind: Literal, Literal: content[pos:start]})
		}
		switch content[start:end] {
		case markers.Mandatory:
			tokens = append(tokens, Token{Kind: Mandatory})
		case markers.Optional:
			tokens = append(tokens, Token{Kind: Optional})
		}
		pos = end
	}
	if pos < len(content) || len(tokens) == 0 {
		tokens = append(tokens, Token{Kind: Literal, Literal: content[pos:]})
	}
	return tokens
}

var (
	regexpCacheMu sync.Mutex
	regexpCache   = map[Markers]*regexp.Regexp{}
)

func markerRegexp(m Markers) *regexp.Regexp {
	regexpCacheMu.Lock()
	defer regexpCacheMu.Unlock()
	if re, ok := regexpCache[m]; ok {
		return re
	}
	pattern := regexp.QuoteMeta(m.Mandatory) + "|" + regexp.QuoteMeta(m.Optional)
	re := regexp.MustCompile(pattern)
	regexpCache[m] = re
	return re
}

// direction is the end of the working queues a matching step consumes from.
type direction int

const (
	dirLeft direction = iota
	dirRight
)

// MatchPair is one aligned (token, bound) pair produced by Match. Bound is
// the matched substring; Present is false when no substring was bound. An
// unbound Mandatory or Literal token is a mismatch; an Optional token is
// always unbound and never a mismatch.
type MatchPair struct {
	Token   Token
	Bound   string
	Present bool
}

// Mismatch reports whether this pair represents a failed match: any
// (Mandatory, absent) or (Literal, absent) pair.
func (p MatchPair) Mismatch() bool {
	if p.Present {
		return false
	}
	return p.Token.Kind == Mandatory || p.Token.Kind == Literal
}

// Result is the full output of content matching.
type Result struct {
	Pairs []MatchPair
}

// Mismatch reports whether any pair in the result is a mismatch.
func (r Result) Mismatch() bool {
	for _, p := range r.Pairs {
		if p.Mismatch() {
			return true
		}
	}
	return false
}

// Match aligns rxContent (already tokenized) against docContent using the
// bidirectional two-stack algorithm: prompts are consumed alternately from
// the front and back of the token queue, matched against the corresponding
// end of the document content, with literal anchors consuming any
// intervening "preface" text along the way.
func Match(tokens []Token, docContent string) Result {
	queue := make([]Token, len(tokens))
	copy(queue, tokens)
	content := docContent

	var left, right []MatchPair
	dir := dirLeft

	for len(queue) > 0 {
		var tok Token
		if dir == dirLeft {
			tok = queue[0]
			queue = queue[1:]
		} else {
			tok = queue[len(queue)-1]
			queue = queue[:len(queue)-1]
		}

		stack := &left
		if dir == dirRight {
			stack = &right
		}

		switch tok.Kind {
		case Mandatory:
			if content == "" {
				*stack = append(*stack, MatchPair{Token: tok, Present: false})
			} else {
				var ch string
				if dir == dirLeft {
					_, size := utf8.DecodeRuneInString(content)
					ch = content[:size]
					content = content[size:]
				} else {
					_, size := utf8.DecodeLastRuneInString(content)
					ch = content[len(content)-size:]
					content = content[:len(content)-size]
				}
				*stack = append(*stack, MatchPair{Token: tok, Bound: ch, Present: true})
			}
		case Optional:
			*stack = append(*stack, MatchPair{Token: tok, Present: false})
		case Literal:
			idx := -1
			if dir == dirLeft {
				idx = strings.Index(content, tok.Literal)
			} else {
				idx = strings.LastIndex(content, tok.Literal)
			}
			if idx < 0 {
				*stack = append(*stack, MatchPair{Token: tok, Present: false})
			} else {
				var preface string
				if dir == dirLeft {
					preface = content[:idx]
					content = content[idx+len(tok.Literal):]
				} else {
					preface = content[idx+len(tok.Literal):]
					content = content[:idx]
				}
				if preface != "" {
					topIsLiteral := len(*stack) == 0 || (*stack)[len(*stack)-1].Token.Kind == Literal
					if topIsLiteral {
						*stack = append(*stack, MatchPair{Token: Token{Kind: None}, Bound: preface, Present: true})
					}
				}
				*stack = append(*stack, MatchPair{Token: tok, Bound: tok.Literal, Present: true})
			}
		default:
			*stack = append(*stack, MatchPair{Token: Token{Kind: None}, Present: false})
		}

		if dir == dirLeft {
			dir = dirRight
		} else {
			dir = dirLeft
		}
	}

	if content != "" {
		leftTop := len(left) > 0 && left[len(left)-1].Token.Kind == Literal
		rightTop := len(right) > 0 && right[len(right)-1].Token.Kind == Literal
		if leftTop && rightTop {
			left = append(left, MatchPair{Token: Token{Kind: None}, Bound: content, Present: true})
		}
	}

	pairs := make([]MatchPair, 0, len(left)+len(right))
	pairs = append(pairs, left...)
	pairs = append(pairs, right...)
	return Result{Pairs: pairs}
}

// MatchContent is the common entry point: tokenize rxContent then match it
// against docContent.
func MatchContent(rxContent, docContent string, markers Markers) Result {
	return Match(Tokenize(rxContent, markers), docContent)
}

package prescription

import (
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/expr-lang/expr"

	"github.com/jackchuka/mdrx/internal/docnode"
)

var (
	exprRegexCacheMu sync.Mutex
	exprRegexCache   = map[string]*regexp.Regexp{}
)

// MatchesExpr evaluates the rx:expr directive bound to rx (if any) against a
// candidate document heading. It is additive to types_match: the matcher
// still requires kind and heading level to agree before consulting this.
func (p *Prescription) MatchesExpr(rx *docnode.Node, candidate *docnode.Node, filename string) bool {
	expression, ok := p.Expr(rx)
	if !ok {
		return true
	}

	env := map[string]any{
		"filename":    extractFilename(filename),
		"heading":     candidate.Content(),
		"level":       candidate.HeadingLevel(),
		"slug":        slugify,
		"kebab":       toKebabCase,
		"lower":       strings.ToLower,
		"upper":       strings.ToUpper,
		"trim":        strings.TrimSpace,
		"strContains": strings.Contains,
		"hasPrefix":   strings.HasPrefix,
		"hasSuffix":   strings.HasSuffix,
		"replace":     strings.ReplaceAll,
		"trimPrefix":  trimPrefixRegex,
		"trimSuffix":  trimSuffixRegex,
		"match":       matchRegex,
	}

	program, err := expr.Compile(expression, expr.Env(env), expr.AsBool())
	if err != nil {
		return false
	}
	result, err := expr.Run(program, env)
	if err != nil {
		return false
	}
	matched, ok := result.(bool)
	return ok && matched
}

func extractFilename(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func trimPrefixRegex(s, pattern string) string {
	re, err := compileExprRegex(pattern)
	if err != nil {
		return s
	}
	loc := re.FindStringIndex(s)
	if loc != nil && loc[0] == 0 {
		return s[loc[1]:]
	}
	return s
}

func trimSuffixRegex(s, pattern string) string {
	re, err := compileExprRegex(pattern + "$")
	if err != nil {
		return s
	}
	return re.ReplaceAllString(s, "")
}

func matchRegex(s, pattern string) bool {
	re, err := compileExprRegex(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(s)
}

func compileExprRegex(pattern string) (*regexp.Regexp, error) {
	exprRegexCacheMu.Lock()
	defer exprRegexCacheMu.Unlock()
	if re, ok := exprRegexCache[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	exprRegexCache[pattern] = re
	return re, nil
}

// slugify mirrors the conventional GitHub heading-anchor slug algorithm:
// lowercase, spaces to hyphens, punctuation stripped.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastHyphen := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '-' || r == '_':
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// toKebabCase converts PascalCase/camelCase to kebab-case.
func toKebabCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			prevLower := s[i-1] >= 'a' && s[i-1] <= 'z'
			nextLower := i+1 < len(s) && s[i+1] >= 'a' && s[i+1] <= 'z'
			if prevLower || nextLower {
				result.WriteRune('-')
			}
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}

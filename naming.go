package yamltree

import (
	"fmt"
	"strings"
	"unicode"
)

// NamingStrategy rewrites scalar text before it is emitted.
type NamingStrategy func(string) string

// Built-in strategies. Word boundaries are case changes, digits following
// letters, and the separators '_', '-', ' ' and '.'.
var (
	SnakeCase  NamingStrategy = func(s string) string { return joinWords(splitWords(s), "_", strings.ToLower) }
	KebabCase  NamingStrategy = func(s string) string { return joinWords(splitWords(s), "-", strings.ToLower) }
	PascalCase NamingStrategy = func(s string) string { return joinWords(splitWords(s), "", title) }
	CamelCase  NamingStrategy = func(s string) string {
		words := splitWords(s)
		if len(words) == 0 {
			return ""
		}
		return strings.ToLower(words[0]) + joinWords(words[1:], "", title)
	}
)

var namingStrategies = map[string]NamingStrategy{
	"snake_case": SnakeCase,
	"kebab-case": KebabCase,
	"PascalCase": PascalCase,
	"camelCase":  CamelCase,
}

// LookupNamingStrategy resolves a strategy by name: snake_case, kebab-case,
// PascalCase or camelCase. The empty name and "none" yield nil.
func LookupNamingStrategy(name string) (NamingStrategy, error) {
	if name == "" || name == "none" {
		return nil, nil
	}
	if s, ok := namingStrategies[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("unknown naming strategy %q", name)
}

func title(w string) string {
	if w == "" {
		return w
	}
	r := []rune(strings.ToLower(w))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func joinWords(words []string, sep string, f func(string) string) string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = f(w)
	}
	return strings.Join(out, sep)
}

// splitWords breaks "HTTPServerPort2" into [HTTP Server Port 2].
func splitWords(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	rs := []rune(s)
	for i, r := range rs {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			flush()
			continue
		case unicode.IsUpper(r):
			if len(cur) > 0 {
				prev := rs[i-1]
				nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					flush()
				}
			}
		case unicode.IsDigit(r):
			if len(cur) > 0 && !unicode.IsDigit(rs[i-1]) {
				flush()
			}
		default:
			if len(cur) > 0 && unicode.IsDigit(rs[i-1]) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

// Package stem wraps the Snowball stemmers used for keyword derivation.
// Only English and Russian are supported; the script heuristic picks
// between them.
package stem

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
	"github.com/kljensen/snowball/russian"
)

type Script int

const (
	ScriptLatin Script = iota
	ScriptCyrillic
)

// ClassifyScript reports ScriptCyrillic only when every rune of the term
// is a Cyrillic letter. Mixed input, digits and punctuation all fall back
// to ScriptLatin; this is a routing heuristic, not language detection.
func ClassifyScript(term string) Script {
	if term == "" {
		return ScriptLatin
	}
	for _, r := range term {
		if !unicode.Is(unicode.Cyrillic, r) {
			return ScriptLatin
		}
	}
	return ScriptCyrillic
}

// Stem lowercases the term and applies the language-appropriate Snowball
// stemmer. Pure and deterministic.
func Stem(term string) string {
	t := strings.ToLower(strings.TrimSpace(term))
	if t == "" {
		return ""
	}
	if ClassifyScript(t) == ScriptCyrillic {
		return russian.Stem(t, true)
	}
	return english.Stem(t, true)
}

// Roots returns the distinct stems of the term under both supported
// languages. Keyword removal uses it so a derivative is found no matter
// which stemmer produced it.
func Roots(term string) []string {
	t := strings.ToLower(strings.TrimSpace(term))
	if t == "" {
		return nil
	}
	roots := []string{english.Stem(t, true)}
	if ru := russian.Stem(t, true); ru != roots[0] {
		roots = append(roots, ru)
	}
	return roots
}

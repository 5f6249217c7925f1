// Package keyword derives match terms from operator-supplied keywords and
// decides whether a message body matches any of them.
package keyword

import (
	"strings"

	"github.com/krelay/kwrelay-bot/pkg/stem"
)

type Origin string

const (
	OriginLiteral Origin = "literal"
	OriginStemmed Origin = "stemmed"
)

// Keyword is a single normalized match term. SourceTerm points a stemmed
// derivative back at the literal it was derived from.
type Keyword struct {
	Term       string `json:"term"`
	Origin     Origin `json:"origin,omitempty"`
	SourceTerm string `json:"source_term,omitempty"`
}

// Derive lowercases the raw term and, when stemming is requested, adds a
// stemmed derivative if it is distinct from the literal. Returns nil for
// blank input.
func Derive(raw string, stemming bool) []Keyword {
	term := strings.ToLower(strings.TrimSpace(raw))
	if term == "" {
		return nil
	}
	derived := []Keyword{{Term: term, Origin: OriginLiteral}}
	if stemming {
		if root := stem.Stem(term); root != "" && root != term {
			derived = append(derived, Keyword{Term: root, Origin: OriginStemmed, SourceTerm: term})
		}
	}
	return derived
}

// Matches reports whether any term occurs in text as a contiguous
// substring, case-insensitively. Substring (not word-boundary) matching is
// deliberate: "cat" matches inside "category".
func Matches(text string, terms []string) bool {
	if text == "" || len(terms) == 0 {
		return false
	}
	lowered := strings.ToLower(text)
	for _, term := range terms {
		if term != "" && strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

package extraction

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-fit-analyzer/internal/types"
)

// ruleConfidence is the fixed confidence assigned to lexicon hits. It sits
// below the model pass confidence floor so a rule hit never outranks a model
// hit.
const ruleConfidence = 0.5

// Lexicon scans text for known skill surface forms using case-insensitive
// boundary-aware matching.
type Lexicon struct {
	terms []string // original casing, longest first
}

// NewLexicon builds a lexicon from skill surface strings. Terms should be
// ordered longest first so multi-word skills win over their substrings.
func NewLexicon(terms []string) *Lexicon {
	kept := make([]string, 0, len(terms))
	for _, t := range terms {
		if strings.TrimSpace(t) != "" {
			kept = append(kept, t)
		}
	}
	return &Lexicon{terms: kept}
}

// Scan returns one mention per lexicon term found in the text, with
// source=rule and the fixed rule confidence. Matching is case-insensitive
// and respects token boundaries, so "go" does not match inside "golang" but
// "c++" and "node.js" still match whole.
func (l *Lexicon) Scan(text string) []types.ExtractedMention {
	if text == "" || len(l.terms) == 0 {
		return nil
	}

	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	var mentions []types.ExtractedMention

	for _, term := range l.terms {
		key := strings.ToLower(term)
		if seen[key] {
			continue
		}
		if containsTerm(lower, key) {
			seen[key] = true
			mentions = append(mentions, types.ExtractedMention{
				Text:       term,
				Source:     types.SourceRule,
				Confidence: ruleConfidence,
			})
		}
	}
	return mentions
}

// containsTerm reports whether term occurs in text delimited by non-token
// characters. Both inputs must already be lowercased. Implemented as a
// manual scan because regexp \b misfires on terms ending in '+', '#', or '.'.
func containsTerm(text, term string) bool {
	for start := 0; ; {
		i := strings.Index(text[start:], term)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(term)
		if boundaryBefore(text, i) && boundaryAfter(text, end) {
			return true
		}
		start = i + 1
	}
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isTokenRune(r)
}

func boundaryAfter(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	r, size := utf8.DecodeRuneInString(text[end:])
	// A '.' acts as punctuation, not a token rune, when nothing token-like
	// follows it: "Node.js." at sentence end still matches "node.js".
	if r == '.' {
		next, _ := utf8.DecodeRuneInString(text[end+size:])
		if !isTokenRune(next) {
			return true
		}
	}
	return !isTokenRune(r)
}

// isTokenRune reports whether r can be part of a skill token. '+', '#', and
// '.' count so that "c" never matches inside "c++" or "c#", and "node" never
// matches inside "node.js".
func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.'
}

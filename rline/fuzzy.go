package rline

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// Completion candidates (commands, filenames, buffer names) are narrowed by
// a small fzf-style query language, scored with junegunn/fzf's matching
// engine (spec §4.6 menu narrowing):
//
//	"foo"     fuzzy subsequence match
//	"'foo"    exact substring match
//	"^foo"    prefix match
//	"foo$"    suffix match
//	"!foo"    negated fuzzy match (also !'foo, !^foo, !foo$)
//	"a b"     AND — all space-separated terms must match
//	"a | b"   OR  — at least one pipe-separated term must match

func init() {
	algo.Init("default")
}

var fuzzySlab = util.MakeSlab(100*1024, 2048)

// FuzzyQuery is a pre-parsed menu-narrowing query: parse once, score many
// candidates as the user keeps typing.
type FuzzyQuery struct {
	groups []fuzzyGroup
}

type fuzzyGroup struct {
	terms []fuzzyTerm
}

type fuzzyTermKind int

const (
	termFuzzy fuzzyTermKind = iota
	termExact
	termPrefix
	termSuffix
)

type fuzzyTerm struct {
	pattern       string
	patRunes      []rune
	kind          fuzzyTermKind
	negated       bool
	caseSensitive bool
}

// ParseFuzzyQuery parses a raw query string into a reusable FuzzyQuery.
func ParseFuzzyQuery(raw string) FuzzyQuery {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return FuzzyQuery{}
	}

	var q FuzzyQuery

	orCount := 1
	for i := 0; i < len(raw)-2; i++ {
		if raw[i] == ' ' && raw[i+1] == '|' && raw[i+2] == ' ' {
			orCount++
		}
	}
	q.groups = make([]fuzzyGroup, 0, orCount)

	rest := raw
	for {
		idx := strings.Index(rest, " | ")
		var part string
		if idx < 0 {
			part = rest
		} else {
			part = rest[:idx]
		}

		part = strings.TrimSpace(part)
		if part != "" {
			g := parseGroup(part)
			if len(g.terms) > 0 {
				q.groups = append(q.groups, g)
			}
		}

		if idx < 0 {
			break
		}
		rest = rest[idx+3:]
	}
	return q
}

// Empty reports whether the query has no terms (menu shows everything).
func (q *FuzzyQuery) Empty() bool {
	return len(q.groups) == 0
}

func parseGroup(part string) fuzzyGroup {
	tokenCount := 0
	inWord := false
	for i := 0; i < len(part); i++ {
		if part[i] == ' ' || part[i] == '\t' {
			inWord = false
		} else if !inWord {
			tokenCount++
			inWord = true
		}
	}

	g := fuzzyGroup{terms: make([]fuzzyTerm, 0, tokenCount)}

	start := -1
	for i := 0; i <= len(part); i++ {
		isSpace := i < len(part) && (part[i] == ' ' || part[i] == '\t')
		atEnd := i == len(part)
		if start < 0 {
			if !isSpace && !atEnd {
				start = i
			}
		} else if isSpace || atEnd {
			g.terms = append(g.terms, parseTerm(part[start:i]))
			start = -1
		}
	}
	return g
}

func parseTerm(tok string) fuzzyTerm {
	t := fuzzyTerm{kind: termFuzzy}

	if len(tok) > 1 && tok[0] == '!' {
		t.negated = true
		tok = tok[1:]
	}

	if len(tok) > 1 && tok[0] == '\'' {
		t.kind = termExact
		tok = tok[1:]
	} else if len(tok) > 1 && tok[0] == '^' {
		t.kind = termPrefix
		tok = tok[1:]
	} else if len(tok) > 1 && tok[len(tok)-1] == '$' {
		t.kind = termSuffix
		tok = tok[:len(tok)-1]
	}

	t.caseSensitive = hasUppercase(tok)
	if !t.caseSensitive {
		tok = strings.ToLower(tok)
	}

	t.pattern = tok
	t.patRunes = []rune(tok)
	return t
}

func hasUppercase(s string) bool {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsUpper(r) {
			return true
		}
		i += size
	}
	return false
}

// Score scores a single candidate against the parsed query. Higher score
// means a better match.
func (q *FuzzyQuery) Score(candidate string) (int, bool) {
	if len(q.groups) == 0 {
		return 0, true
	}

	bestScore := -1
	matched := false
	for i := range q.groups {
		score, ok := q.groups[i].score(candidate)
		if ok && score > bestScore {
			matched = true
			bestScore = score
		}
	}
	return bestScore, matched
}

func (g *fuzzyGroup) score(candidate string) (int, bool) {
	totalScore := 0
	for i := range g.terms {
		score, ok := g.terms[i].score(candidate)
		if !ok {
			return 0, false
		}
		totalScore += score
	}
	return totalScore, true
}

func (t *fuzzyTerm) score(candidate string) (int, bool) {
	chars := util.ToChars([]byte(candidate))

	var algoFn func(bool, bool, bool, *util.Chars, []rune, bool, *util.Slab) (algo.Result, *[]int)
	switch t.kind {
	case termExact:
		algoFn = algo.ExactMatchNaive
	case termPrefix:
		algoFn = algo.PrefixMatch
	case termSuffix:
		algoFn = algo.SuffixMatch
	default:
		algoFn = algo.FuzzyMatchV2
	}

	result, _ := algoFn(t.caseSensitive, false, true, &chars, t.patRunes, false, fuzzySlab)
	matched := result.Start >= 0

	if t.negated {
		return 0, !matched
	}
	if !matched {
		return 0, false
	}
	return result.Score, true
}

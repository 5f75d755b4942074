// Package search implements incremental forward/backward regex search over
// a buffer's rows and line-range substitution (spec §4.8). Where the
// original ships a bundled single-file regex engine, this uses stdlib
// regexp (RE2): its syntax is a superset of the metas the original
// supports (\s \d \b, [set], anchors, alternation, groups, quantifiers
// including non-greedy, up to 9 captures via FindSubmatchIndex) — see
// DESIGN.md for why no pack dependency fits a regex engine better than
// the standard library here.
package search

import (
	"fmt"
	"regexp"
	"strings"
)

// Direction is the walk direction over rows.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Match is one located occurrence: MatchIdx is the byte offset within the
// row, MatchLen its byte length, Groups the bytes each submatch captured
// (index 0 the whole match, nil for a group that did not participate).
type Match struct {
	Row      int
	MatchIdx int
	MatchLen int
	Groups   [][]byte
}

// RowSource is the minimal view over a buffer's rows a search needs,
// letting this package stay independent of the buffer package's types.
type RowSource interface {
	NumRows() int
	RowBytes(i int) []byte
}

// Compile builds a case-insensitive RE2 pattern unless the caller already
// embedded `(?i)`/`(?-i)` flags (spec §4.8 "unicode-case-insensitive").
func Compile(pattern string) (*regexp.Regexp, error) {
	if !strings.Contains(pattern, "(?i)") && !strings.Contains(pattern, "(?-i)") {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return re, nil
}

// Session walks rows for one incremental search, recording which rows it
// has visited so a failed step (no match anywhere) can report that
// cleanly and a caller can roll the cursor back to where it started
// (spec §4.8 step 2's "history of visited rows"). The visited list is
// owned entirely by the Session value — never aliased elsewhere, which is
// the explicit resolution recorded in DESIGN.md for the original's
// SEARCH_FREE pointer-lifetime ambiguity.
type Session struct {
	src     RowSource
	re      *regexp.Regexp
	dir     Direction
	visited []int
}

// NewSession starts a search rooted at startRow, walking in dir.
func NewSession(src RowSource, re *regexp.Regexp, dir Direction, startRow int) *Session {
	return &Session{src: src, re: re, dir: dir, visited: []int{startRow}}
}

// Step advances one row in the search direction, wrapping past the ends,
// and returns the first match found. ok is false once every row has been
// visited without a match.
func (s *Session) Step() (Match, bool) {
	n := s.src.NumRows()
	if n == 0 {
		return Match{}, false
	}
	cur := s.visited[len(s.visited)-1]
	for i := 0; i < n; i++ {
		cur = s.nextRow(cur, n)
		if m, found := s.matchRow(cur); found {
			s.visited = append(s.visited, cur)
			return m, true
		}
		s.visited = append(s.visited, cur)
	}
	return Match{}, false
}

func (s *Session) nextRow(cur, n int) int {
	if s.dir == Forward {
		return (cur + 1) % n
	}
	return (cur - 1 + n) % n
}

func (s *Session) matchRow(row int) (Match, bool) {
	data := s.src.RowBytes(row)
	loc := s.re.FindSubmatchIndex(data)
	if loc == nil {
		return Match{}, false
	}
	groups := make([][]byte, 0, len(loc)/2)
	for i := 0; i < len(loc); i += 2 {
		if loc[i] < 0 {
			groups = append(groups, nil)
			continue
		}
		groups = append(groups, data[loc[i]:loc[i+1]])
	}
	return Match{Row: row, MatchIdx: loc[0], MatchLen: loc[1] - loc[0], Groups: groups}, true
}

// Visited returns the rows stepped through so far, oldest first.
func (s *Session) Visited() []int { return append([]int(nil), s.visited...) }

// CurWord extracts the word under/after byteOffset on row for "*"/"#"
// prefilling the search pattern with the current word (spec §4.8 step 6).
func CurWord(row []byte, byteOffset int) string {
	isWord := func(b byte) bool {
		return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
	}
	i := byteOffset
	for i < len(row) && !isWord(row[i]) {
		i++
	}
	if i >= len(row) {
		return ""
	}
	start := i
	for start > 0 && isWord(row[start-1]) {
		start--
	}
	end := i
	for end < len(row) && isWord(row[end]) {
		end++
	}
	return string(row[start:end])
}

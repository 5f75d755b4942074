package editor

import (
	"fmt"

	"ved/rline"
	"ved/search"
)

// BeginSearch starts (or, for "*"/"#", immediately runs) a search, per a
// mode.Result of Kind EnterSearch (spec §4.8 steps 1 and 6).
func (e *Editor) BeginSearch(dir search.Direction, prefill string, autoSubmit bool) {
	e.searchDir = dir
	if autoSubmit {
		e.RunSearch(prefill)
		return
	}
	e.rl = rline.New('/', e.Win.PromptRow(), 0, e.Regs, 0)
	if prefill != "" {
		e.rl.SetLine(prefill)
	}
	e.Mode = ModeSearch
}

// RunSearch compiles pattern and steps a search.Session from the current
// cursor, moving the cursor to the first match (spec §4.8 step 2). A
// failed search leaves the cursor untouched and posts an error message.
func (e *Editor) RunSearch(pattern string) {
	if pattern == "" {
		e.Mode = ModeNormal
		return
	}
	re, err := search.Compile(pattern)
	if err != nil {
		e.SetMessage("search: "+err.Error(), true)
		e.Mode = ModeNormal
		return
	}
	buf := e.CurBuffer()
	e.searchSess = search.NewSession(buf, re, e.searchDir, buf.CurIdx)
	e.lastPattern = pattern
	e.SearchHistory.Push(pattern)
	e.stepSearch()
	e.Mode = ModeNormal
}

// RepeatSearch repeats the last search in its original direction ("n"), or
// the opposite direction ("#"'s sibling, "N") when reverse is true (spec
// §4.8 step 3).
func (e *Editor) RepeatSearch(reverse bool) {
	if e.lastPattern == "" {
		e.SetMessage("no previous search", true)
		return
	}
	re, err := search.Compile(e.lastPattern)
	if err != nil {
		e.SetMessage("search: "+err.Error(), true)
		return
	}
	dir := e.searchDir
	if reverse {
		dir = opposite(dir)
	}
	buf := e.CurBuffer()
	e.searchSess = search.NewSession(buf, re, dir, buf.CurIdx)
	e.stepSearch()
}

func (e *Editor) stepSearch() {
	m, ok := e.searchSess.Step()
	if !ok {
		e.SetMessage(fmt.Sprintf("pattern not found: %s", e.lastPattern), true)
		return
	}
	e.CurBuffer().GotoPos(m.Row, m.MatchIdx)
}

func opposite(d search.Direction) search.Direction {
	if d == search.Forward {
		return search.Backward
	}
	return search.Forward
}

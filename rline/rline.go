// Package rline implements ved's single-row prompt-line editor: the ":"
// command line and "/" search line share this same editing core (spec
// §4.5), plus command-line parsing (parse.go), the command table
// (commands.go), tab-completion menu (menu.go, fuzzy.go, filter.go) and
// bounded history (history.go).
package rline

import (
	"ved/registers"
	"ved/term"
	"ved/ustring"
)

// Opt is a bitset of rline behavior flags, restored from the original's
// RL_OPT_HAS_TAB_COMPLETION / RL_OPT_HAS_HISTORY_COMPLETION.
type Opt uint8

const (
	OptTabCompletion Opt = 1 << iota
	OptHistoryCompletion
)

// HookResult is what an at_beg/at_end hook returns to steer the editor's
// default key processing (spec §4.5).
type HookResult int

const (
	HookOK           HookResult = iota // absorb the key and continue
	HookContinue                       // skip the rest of default processing
	HookBreak                          // exit the prompt with the current line
	HookPostProcess                    // run default processing as usual
)

// Hook observes or intercepts a key before (at_beg) or after (at_end) the
// default key handling runs.
type Hook func(rl *RL, k term.Key) HookResult

// RL is one prompt-line editing session.
type RL struct {
	Prompt  rune
	Row     int
	Col     int // first on-screen column the prompt text starts at
	Visible bool
	Opts    Opt

	data []rune
	cur  int // codepoint index of the cursor within data

	AtBeg Hook
	AtEnd Hook

	regs *registers.Table

	lastArgCycle   []string
	lastArgCurrent int

	broke bool
}

// New starts a prompt session with the given leading prompt character
// (':' for command lines, '/' or '?' for search).
func New(prompt rune, row, col int, regs *registers.Table, opts Opt) *RL {
	return &RL{Prompt: prompt, Row: row, Col: col, Visible: true, Opts: opts, regs: regs}
}

// Line returns the current input as a string.
func (rl *RL) Line() string { return string(rl.data) }

// SetLine replaces the input and places the cursor at its end.
func (rl *RL) SetLine(s string) {
	rl.data = []rune(s)
	rl.cur = len(rl.data)
}

// CursorCol returns the cursor's codepoint index, for rendering a caret.
func (rl *RL) CursorCol() int { return rl.cur }

// Key processes one keystroke, running hooks around the default handling.
// done is true once the line should be committed (Enter) or cancelled
// (Escape); ok distinguishes the two (false on cancel).
func (rl *RL) Key(k term.Key) (done bool, ok bool) {
	if rl.AtBeg != nil {
		switch rl.AtBeg(rl, k) {
		case HookBreak:
			return true, true
		case HookContinue:
			return false, false
		}
	}

	done, ok = rl.defaultKey(k)

	if rl.AtEnd != nil {
		switch rl.AtEnd(rl, k) {
		case HookBreak:
			return true, true
		}
	}
	return done, ok
}

func (rl *RL) defaultKey(k term.Key) (done bool, ok bool) {
	switch k.Kind {
	case term.KeyEnter:
		return true, true
	case term.KeyEscape:
		return true, false
	case term.KeyArrowLeft:
		if rl.cur > 0 {
			rl.cur--
		}
	case term.KeyArrowRight:
		if rl.cur < len(rl.data) {
			rl.cur++
		}
	case term.KeyHome:
		rl.cur = 0
	case term.KeyEnd:
		rl.cur = len(rl.data)
	case term.KeyBackspace:
		rl.backspace()
	case term.KeyDelete:
		rl.deleteForward()
	case term.KeyCtrl:
		rl.ctrlKey(k.Rune)
	case term.KeyTab:
		// Tab does nothing here; this package only offers CurrentToken and
		// ClassifyToken for a caller that builds completion candidates.
	case term.KeyRune:
		rl.insert(k.Rune)
	}
	return false, false
}

func (rl *RL) ctrlKey(r rune) {
	switch r {
	case 'l':
		rl.data = nil
		rl.cur = 0
	case 'a':
		rl.cur = 0
	case 'e':
		rl.cur = len(rl.data)
	case 'r':
		// caller supplies the register name via InsertRegister once it
		// reads the following keystroke.
	case 'u':
		rl.data = rl.data[rl.cur:]
		rl.cur = 0
	case 'w':
		start := rl.prevWordBoundary()
		rl.data = append(rl.data[:start], rl.data[rl.cur:]...)
		rl.cur = start
	}
}

// InsertRegister inserts a register's first line at the cursor, completing
// a pending CTRL-R (spec §4.5 "CTRL-R r").
func (rl *RL) InsertRegister(name rune) {
	if rl.regs == nil {
		return
	}
	r := rl.regs.Get(name)
	e, ok := r.Last()
	if !ok || len(e.Lines) == 0 {
		return
	}
	for _, c := range e.Lines[0] {
		rl.insert(c)
	}
}

func (rl *RL) insert(r rune) {
	rl.data = append(rl.data[:rl.cur], append([]rune{r}, rl.data[rl.cur:]...)...)
	rl.cur++
}

func (rl *RL) backspace() {
	if rl.cur == 0 {
		return
	}
	rl.data = append(rl.data[:rl.cur-1], rl.data[rl.cur:]...)
	rl.cur--
}

func (rl *RL) deleteForward() {
	if rl.cur >= len(rl.data) {
		return
	}
	rl.data = append(rl.data[:rl.cur], rl.data[rl.cur+1:]...)
}

func (rl *RL) prevWordBoundary() int {
	i := rl.cur
	for i > 0 && ustring.IsBlank(rl.data[i-1]) {
		i--
	}
	for i > 0 && ustring.IsWordChar(rl.data[i-1]) {
		i--
	}
	return i
}

// CurrentToken returns the token under the cursor and its start index,
// splitting on ASCII space — the unit ClassifyToken classifies for
// tab-completion (spec §4.5 "identifies the current token").
func (rl *RL) CurrentToken() (string, int) {
	end := rl.cur
	start := end
	for start > 0 && rl.data[start-1] != ' ' {
		start--
	}
	for end < len(rl.data) && rl.data[end] != ' ' {
		end++
	}
	return string(rl.data[start:end]), start
}

// ReplaceToken swaps the token at [start, start+len(old)) for replacement,
// moving the cursor to just past it — used when a menu selection commits
// (spec §4.5 "Selection replaces the current token with the chosen item").
func (rl *RL) ReplaceToken(start, oldLen int, replacement string) {
	end := start + oldLen
	if end > len(rl.data) {
		end = len(rl.data)
	}
	if start < 0 || start > end {
		return
	}
	repl := []rune(replacement)
	out := make([]rune, 0, len(rl.data)-(end-start)+len(repl))
	out = append(out, rl.data[:start]...)
	out = append(out, repl...)
	out = append(out, rl.data[end:]...)
	rl.data = out
	rl.cur = start + len(repl)
}

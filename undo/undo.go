// Package undo implements ved's per-buffer undo/redo action stack (spec §3
// Undo, §4.2 "every mutating edit primitive pushes an inverse action").
// Grounded on the original libved's act_t/action_t/undo_t types and the
// DELETE_LINE/REPLACE_LINE/INSERT_LINE act-kind constants
// (original_source/src/__libved.h).
package undo

// ActKind names what a single undo record reverses.
type ActKind int

const (
	InsertLine ActKind = iota + 1
	DeleteLine
	ReplaceLine
)

// CursorSnapshot captures cursor position and viewport so undo/redo can
// restore exactly where the edit happened, not just its content (original's
// act_t: cur_idx, cur_col_idx, first_col_idx, row_pos, col_pos,
// video_first_row_idx).
type CursorSnapshot struct {
	RowIdx        int
	ColIdx        int
	FirstColIdx   int
	RowPos        int
	ColPos        int
	VideoFirstRow int
}

// Act is one reversible change to a single row. Row is the row index the
// change applies at; Bytes is the row's content before (for Delete/Replace)
// or after (for Insert) the change, whichever is needed to reverse it.
type Act struct {
	Kind   ActKind
	Row    int
	Bytes  []byte
	Cursor CursorSnapshot
}

// Reverse returns the inverse of a, so applying Reverse(a) undoes a and
// Reverse(Reverse(a)) == a for InsertLine/DeleteLine; ReplaceLine is its own
// inverse shape but carries the pre-change bytes, supplied by the caller at
// push time since only the buffer knows the prior content.
func (a Act) Reverse(priorBytes []byte) Act {
	switch a.Kind {
	case InsertLine:
		return Act{Kind: DeleteLine, Row: a.Row, Bytes: a.Bytes, Cursor: a.Cursor}
	case DeleteLine:
		return Act{Kind: InsertLine, Row: a.Row, Bytes: a.Bytes, Cursor: a.Cursor}
	case ReplaceLine:
		return Act{Kind: ReplaceLine, Row: a.Row, Bytes: priorBytes, Cursor: a.Cursor}
	default:
		return a
	}
}

// Action groups the Acts produced by one logical edit (e.g. a multi-line
// paste or a visual-block delete) so undo/redo moves atomically over the
// whole group, not one row at a time (original's action_t wrapping a list
// of act_t).
type Action []Act

// Reverse returns the Action that undoes a, acts applied in reverse order so
// row-index shifts from earlier acts are already in effect when later ones
// replay (mirrors a stack pop-order, not the push order).
func (a Action) Reverse(priorBytesFor func(Act) []byte) Action {
	out := make(Action, len(a))
	for i, act := range a {
		out[len(a)-1-i] = act.Reverse(priorBytesFor(act))
	}
	return out
}

// DefaultMaxEntries bounds the undo stack depth (spec §4.2 "bounded FIFO" —
// restored from the original's configurable max_num_undo_entries, default
// chosen to match vim's classic 'undolevels' scale for small buffers).
const DefaultMaxEntries = 40

// ResetFlag mirrors the original's VUNDO_RESET bit: set in the Stack's
// state when a fresh edit should start a new undo group rather
// than extend the in-progress one (e.g. after a cursor-only motion breaks
// insert-mode coalescing).
const ResetFlag = 1 << 0

// Stack is one buffer's undo/redo history: a bounded list of Actions with a
// cursor into it. Pushing a new Action after undoing truncates any redo
// tail, matching standard editor semantics (original's undo_t.current).
type Stack struct {
	entries    []Action
	cur        int // index of the next slot a Push will write to
	state      int // ResetFlag bit
	maxEntries int
}

// NewStack creates an empty stack bounded at max entries (DefaultMaxEntries
// if max <= 0).
func NewStack(max int) *Stack {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &Stack{maxEntries: max}
}

// Reset marks the stack so the next Push starts a new undo group instead of
// merging into the most recent one (VUNDO_RESET semantics).
func (s *Stack) Reset() { s.state |= ResetFlag }

// clearReset consumes the reset flag, reporting whether it was set.
func (s *Stack) clearReset() bool {
	was := s.state&ResetFlag != 0
	s.state &^= ResetFlag
	return was
}

// Push records a new Action, truncating any redo tail beyond the current
// position and evicting the oldest entry once maxEntries is exceeded
// (bounded FIFO, spec §4.2).
func (s *Stack) Push(a Action) {
	s.clearReset()
	s.entries = s.entries[:s.cur]
	s.entries = append(s.entries, a)
	s.cur = len(s.entries)
	if len(s.entries) > s.maxEntries {
		evict := len(s.entries) - s.maxEntries
		s.entries = s.entries[evict:]
		s.cur = len(s.entries)
	}
}

// Merge appends acts onto the most recently pushed Action instead of
// starting a new one — used by insert-mode character-at-a-time edits so an
// entire inserted run undoes in one step. A prior Reset call forces this to
// behave like Push instead.
func (s *Stack) Merge(acts ...Action) {
	if s.clearReset() || len(s.entries) == 0 || s.cur != len(s.entries) {
		for _, a := range acts {
			s.Push(a)
		}
		return
	}
	last := len(s.entries) - 1
	for _, a := range acts {
		s.entries[last] = append(s.entries[last], a...)
	}
}

// CanUndo and CanRedo report whether there is history to move over.
func (s *Stack) CanUndo() bool { return s.cur > 0 }
func (s *Stack) CanRedo() bool { return s.cur < len(s.entries) }

// Undo returns the Action at the current position and steps the cursor
// back, or ok=false if there is nothing to undo. Callers (buffer package)
// are responsible for actually applying the reversed edits to row content.
func (s *Stack) Undo() (Action, bool) {
	if !s.CanUndo() {
		return nil, false
	}
	s.cur--
	return s.entries[s.cur], true
}

// Redo returns the next Action forward and steps the cursor ahead, or
// ok=false if there is nothing to redo.
func (s *Stack) Redo() (Action, bool) {
	if !s.CanRedo() {
		return nil, false
	}
	a := s.entries[s.cur]
	s.cur++
	return a, true
}

// Len reports the number of recorded Actions currently retained.
func (s *Stack) Len() int { return len(s.entries) }

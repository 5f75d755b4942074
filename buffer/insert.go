package buffer

import (
	"ved/registers"
	"ved/undo"
	"ved/ustring"
)

// InsertSession tracks one insert-mode run so its individual keystrokes
// coalesce into a single undo group (spec §4.2 "insert mode batches edits
// into one undo step"; original's cur_insert/last_insert act_t pair).
type InsertSession struct {
	buf        *Buffer
	startRow   int
	startCol   int
	before     []byte // row content when insert began
	lastInsert []byte // the most recently completed insert run, for CTRL-A
}

// BeginInsert starts a new insert-mode session at the cursor.
func (b *Buffer) BeginInsert() *InsertSession {
	b.UndoStack.Reset()
	return &InsertSession{
		buf:      b,
		startRow: b.CurIdx,
		startCol: b.ColIdx,
		before:   append([]byte(nil), b.CurRow().Data...),
	}
}

// InsertRune inserts a single codepoint at the cursor and advances it.
func (s *InsertSession) InsertRune(r rune) {
	row := s.buf.CurRow()
	row.InsertBytes(s.buf.ColIdx, []byte(string(r)))
	s.buf.ColIdx += ustring.RuneByteLen(r)
	s.buf.markModified()
}

// Backspace deletes the codepoint before the cursor, joining with the
// previous row if already at column 0 (spec §4.2 insert-mode BACKSPACE).
func (s *InsertSession) Backspace() Result {
	b := s.buf
	if b.ColIdx == 0 {
		if b.CurIdx == 0 {
			return NothingToDo
		}
		prev := b.Rows[b.CurIdx-1]
		cur := b.CurRow()
		joinCol := len(prev.Data)
		prev.Data = append(prev.Data, cur.Data...)
		b.Rows = append(b.Rows[:b.CurIdx], b.Rows[b.CurIdx+1:]...)
		b.CurIdx--
		b.ColIdx = joinCol
		b.markModified()
		return Done
	}
	row := b.CurRow()
	u := ustring.Decode(row.Data, 0)
	idx := ustring.CodepointIndexForByteOffset(row.Data, b.ColIdx)
	prevOff := ustring.NthCodepointByteOffset(row.Data, idx-1)
	row.DeleteRange(prevOff, b.ColIdx)
	b.ColIdx = prevOff
	_ = u
	b.markModified()
	return Done
}

// Tab inserts a literal tab byte (expanded only at render time, spec §3).
func (s *InsertSession) Tab() { s.InsertRune('\t') }

// CtrlW deletes the word before the cursor (spec §4.2 insert-mode CTRL-W).
func (s *InsertSession) CtrlW() Result {
	b := s.buf
	row := b.CurRow()
	start := prevWordBoundary(row.Data, b.ColIdx)
	if start >= b.ColIdx {
		return NothingToDo
	}
	row.DeleteRange(start, b.ColIdx)
	b.ColIdx = start
	b.markModified()
	return Done
}

func prevWordBoundary(data []byte, from int) int {
	idx := ustring.CodepointIndexForByteOffset(data, from)
	u := ustring.Decode(data, 0)
	i := idx - 1
	for i >= 0 && ustring.IsBlank(u[i].Rune) {
		i--
	}
	for i >= 0 && ustring.IsWordChar(u[i].Rune) {
		i--
	}
	if i < 0 {
		return 0
	}
	return u[i+1].ByteAt
}

// CtrlU deletes from the start of the insert run to the cursor (spec §4.2
// insert-mode CTRL-U).
func (s *InsertSession) CtrlU() Result {
	b := s.buf
	if b.CurIdx != s.startRow || b.ColIdx <= s.startCol {
		return NothingToDo
	}
	row := b.CurRow()
	row.DeleteRange(s.startCol, b.ColIdx)
	b.ColIdx = s.startCol
	b.markModified()
	return Done
}

// CtrlR inserts the content of a register at the cursor (spec §4.2
// insert-mode CTRL-R).
func (s *InsertSession) CtrlR(regs *registers.Table, reg rune) {
	if regs == nil {
		return
	}
	r := regs.Get(reg)
	e, ok := r.Last()
	if !ok {
		return
	}
	b := s.buf
	row := b.CurRow()
	text := e.Lines
	if len(text) == 0 {
		return
	}
	row.InsertBytes(b.ColIdx, []byte(text[0]))
	b.ColIdx += len(text[0])
	b.markModified()
}

// End closes the session, pushing one ReplaceLine undo act covering every
// keystroke typed on the starting row (multi-row inserts additionally carry
// whatever InsertNewLine already pushed for the split).
func (s *InsertSession) End() {
	b := s.buf
	after := b.Rows[s.startRow].Data
	if string(after) == string(s.before) {
		return
	}
	s.lastInsert = append([]byte(nil), after...)
	b.UndoStack.Merge(undo.Action{{
		Kind:   undo.ReplaceLine,
		Row:    s.startRow,
		Bytes:  s.before,
		Cursor: undo.CursorSnapshot{RowIdx: s.startRow, ColIdx: s.startCol},
	}})
}

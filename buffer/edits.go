package buffer

import (
	"strconv"
	"strings"

	"ved/registers"
	"ved/undo"
	"ved/ustring"
)

func (b *Buffer) snapshot() undo.CursorSnapshot {
	return undo.CursorSnapshot{
		RowIdx:        b.CurIdx,
		ColIdx:        b.ColIdx,
		RowPos:        b.RowPos,
		ColPos:        b.ColPos,
		VideoFirstRow: b.VideoFirstRow,
	}
}

func (b *Buffer) markModified() { b.Modified = true; b.Flags |= BufIsModified }

// DeleteChar deletes the codepoint under the cursor, pushing a ReplaceLine
// undo act (spec §4.2 "x").
func (b *Buffer) DeleteChar(regs *registers.Table, reg rune) Result {
	row := b.CurRow()
	if len(row.Data) == 0 {
		return NothingToDo
	}
	u := ustring.Decode(row.Data, 0)
	idx := ustring.CodepointIndexForByteOffset(row.Data, b.ColIdx)
	if idx >= u.Len() {
		return NothingToDo
	}
	before := row.Clone()
	endOff := len(row.Data)
	if idx+1 < u.Len() {
		endOff = u[idx+1].ByteAt
	}
	removed := row.DeleteRange(b.ColIdx, endOff)
	if regs != nil {
		regs.Set(reg, registers.Charwise, []string{string(removed)})
	}
	b.pushReplace(before)
	b.clampCol()
	b.markModified()
	return Done
}

// DeleteEol deletes from the cursor to end of line (spec §4.2 "D").
func (b *Buffer) DeleteEol(regs *registers.Table, reg rune) Result {
	row := b.CurRow()
	if b.ColIdx >= len(row.Data) {
		return NothingToDo
	}
	before := row.Clone()
	removed := row.DeleteRange(b.ColIdx, len(row.Data))
	if regs != nil {
		regs.Set(reg, registers.Charwise, []string{string(removed)})
	}
	b.pushReplace(before)
	b.clampCol()
	b.markModified()
	return Done
}

// DeleteLine removes the current row entirely (spec §4.2 "dd").
func (b *Buffer) DeleteLine(regs *registers.Table, reg rune) Result {
	if len(b.Rows) == 1 {
		row := b.CurRow()
		if regs != nil {
			regs.Set(reg, registers.Linewise, []string{row.String()})
		}
		before := row.Clone()
		row.Data = nil
		b.pushReplace(before)
		b.ColIdx = 0
		b.markModified()
		return Done
	}
	row := b.Rows[b.CurIdx]
	if regs != nil {
		regs.Set(reg, registers.Linewise, []string{row.String()})
	}
	snap := b.snapshot()
	b.Rows = append(b.Rows[:b.CurIdx], b.Rows[b.CurIdx+1:]...)
	if b.CurIdx >= len(b.Rows) {
		b.CurIdx = len(b.Rows) - 1
	}
	b.ColIdx = 0
	b.UndoStack.Push(undo.Action{{Kind: undo.DeleteLine, Row: snap.RowIdx, Bytes: row.Data, Cursor: snap}})
	b.markModified()
	return Done
}

// ChangeLine yanks the current row linewise then empties it in place,
// leaving the cursor ready for insert mode (spec §4.2 "cc").
func (b *Buffer) ChangeLine(regs *registers.Table, reg rune) Result {
	row := b.CurRow()
	if regs != nil {
		regs.Set(reg, registers.Linewise, []string{row.String()})
	}
	before := row.Clone()
	row.Data = nil
	b.pushReplace(before)
	b.ColIdx = 0
	b.markModified()
	return Done
}

// DeleteWord deletes from the cursor to the start of the next word
// (spec §4.2 "dw").
func (b *Buffer) DeleteWord(regs *registers.Table, reg rune) Result {
	row := b.CurRow()
	end := nextWordBoundary(row.Data, b.ColIdx)
	if end <= b.ColIdx {
		return NothingToDo
	}
	before := row.Clone()
	removed := row.DeleteRange(b.ColIdx, end)
	if regs != nil {
		regs.Set(reg, registers.Charwise, []string{string(removed)})
	}
	b.pushReplace(before)
	b.clampCol()
	b.markModified()
	return Done
}

func nextWordBoundary(data []byte, from int) int {
	u := ustring.Decode(data, from)
	i := 0
	// skip current word chars
	for i < len(u) && ustring.IsWordChar(u[i].Rune) {
		i++
	}
	// skip whitespace
	for i < len(u) && ustring.IsBlank(u[i].Rune) {
		i++
	}
	if i >= len(u) {
		return len(data)
	}
	return u[i].ByteAt
}

// Yank copies the current line into reg without modifying the buffer
// (spec §4.2 "yy").
func (b *Buffer) Yank(regs *registers.Table, reg rune) {
	if regs == nil {
		return
	}
	regs.Set(reg, registers.Linewise, []string{b.CurRow().String()})
}

// YankRange copies [fromCol, toCol) of the current row charwise.
func (b *Buffer) YankRange(regs *registers.Table, reg rune, fromCol, toCol int) {
	if regs == nil {
		return
	}
	row := b.CurRow()
	if toCol > len(row.Data) {
		toCol = len(row.Data)
	}
	if fromCol < 0 || fromCol >= toCol {
		return
	}
	regs.Set(reg, registers.Charwise, []string{string(row.Data[fromCol:toCol])})
}

// Put inserts a register's content after (below/right of) the cursor,
// or before when after is false (spec §4.2 "p"/"P").
func (b *Buffer) Put(regs *registers.Table, reg rune, after bool) Result {
	if regs == nil {
		return NothingToDo
	}
	r := regs.Get(reg)
	e, ok := r.Last()
	if !ok {
		return NothingToDo
	}
	switch e.Type {
	case registers.Linewise:
		at := b.CurIdx
		if after {
			at++
		}
		newRows := make([]*Row, 0, len(e.Lines))
		for _, l := range e.Lines {
			newRows = append(newRows, NewRow(l))
		}
		snap := b.snapshot()
		b.Rows = append(b.Rows[:at], append(newRows, b.Rows[at:]...)...)
		acts := make(undo.Action, 0, len(e.Lines))
		for i, l := range e.Lines {
			acts = append(acts, undo.Act{Kind: undo.InsertLine, Row: at + i, Bytes: []byte(l), Cursor: snap})
		}
		b.UndoStack.Push(acts)
		b.CurIdx = at
		b.ColIdx = 0
	default: // Charwise, Blockwise treated as charwise insertion on this row
		row := b.CurRow()
		before := row.Clone()
		at := b.ColIdx
		if after && len(row.Data) > 0 {
			u := ustring.Decode(row.Data, 0)
			idx := ustring.CodepointIndexForByteOffset(row.Data, b.ColIdx)
			if idx+1 < u.Len() {
				at = u[idx+1].ByteAt
			} else {
				at = len(row.Data)
			}
		}
		row.InsertBytes(at, []byte(strings.Join(e.Lines, "\n")))
		b.pushReplace(before)
		b.ColIdx = at
	}
	b.markModified()
	return Done
}

// Join merges the next row onto the end of the current one, separated by a
// single space (spec §4.2 "J").
func (b *Buffer) Join() Result {
	if b.CurIdx >= len(b.Rows)-1 {
		return NothingToDo
	}
	cur := b.Rows[b.CurIdx]
	next := b.Rows[b.CurIdx+1]
	snap := b.snapshot()
	joinAt := len(cur.Data)
	sep := []byte(" ")
	if joinAt == 0 || trimRight(cur.Data) != len(cur.Data) {
		sep = nil
	}
	tail := []byte(strings.TrimLeft(string(next.Data), " \t"))
	merged := append(append(append([]byte{}, cur.Data...), sep...), tail...)
	b.UndoStack.Push(undo.Action{
		{Kind: undo.ReplaceLine, Row: b.CurIdx, Bytes: cur.Data, Cursor: snap},
		{Kind: undo.DeleteLine, Row: b.CurIdx + 1, Bytes: next.Data, Cursor: snap},
	})
	cur.Data = merged
	b.Rows = append(b.Rows[:b.CurIdx+1], b.Rows[b.CurIdx+2:]...)
	b.ColIdx = joinAt
	b.markModified()
	return Done
}

func trimRight(b []byte) int { return len(strings.TrimRight(string(b), " \t")) }

// IndentLine shifts the current row's leading whitespace by width spaces
// (positive shiftwidth indents, negative dedents), spec §4.2 ">>"/"<<".
func (b *Buffer) IndentLine(width int) Result {
	row := b.CurRow()
	before := row.Clone()
	if width > 0 {
		row.InsertBytes(0, []byte(strings.Repeat(" ", width)))
	} else {
		n := -width
		lead := 0
		for lead < len(row.Data) && lead < n && row.Data[lead] == ' ' {
			lead++
		}
		row.DeleteRange(0, lead)
	}
	b.pushReplace(before)
	b.markModified()
	return Done
}

// ChangeCase applies fn to every codepoint in the current row (spec §4.2
// "gu"/"gU"/"g~", a g-prefixed convenience beyond the bare change_case
// command — see ToggleCaseChar for that one).
func (b *Buffer) ChangeCase(fn func(rune) rune) Result {
	row := b.CurRow()
	before := row.Clone()
	u := ustring.Decode(row.Data, 0)
	out := make([]byte, 0, len(row.Data))
	for _, cp := range u {
		out = append(out, string(fn(cp.Rune))...)
	}
	row.Data = out
	b.pushReplace(before)
	b.markModified()
	return Done
}

// ToggleCaseChar toggles the case of the codepoint at the cursor and
// advances the cursor by one, spec §4.2's change_case ("~").
func (b *Buffer) ToggleCaseChar() Result {
	row := b.CurRow()
	if len(row.Data) == 0 {
		return NothingToDo
	}
	u := ustring.Decode(row.Data, 0)
	idx := ustring.CodepointIndexForByteOffset(row.Data, b.ColIdx)
	if idx >= u.Len() {
		return NothingToDo
	}
	cp := u[idx]
	before := row.Clone()
	replacement := []byte(string(ustring.SwapCase(cp.Rune)))
	end := cp.ByteAt + len(cp.Bytes)
	row.Data = append(append(append([]byte{}, row.Data[:cp.ByteAt]...), replacement...), row.Data[end:]...)
	b.pushReplace(before)
	b.ColIdx = cp.ByteAt + len(replacement)
	b.markModified()
	return Done
}

// numToken is an integer literal recognized at/after the cursor: its full
// byte range [start,end) including any sign and base prefix, the base to
// parse/render it in, and the prefix string to preserve verbatim.
type numToken struct {
	start, end int
	negative   bool
	base       int
	prefix     string
	digits     string
}

// IncDecChar adjusts the integer word under/after the cursor by delta,
// decimal / octal (leading "0") / hex (leading "0x"/"0X"), preserving sign
// and prefix; falls back to shifting the single codepoint at the cursor by
// delta code points when no number is recognized (spec §4.2 inc_dec_char,
// CTRL-A/CTRL-X).
func (b *Buffer) IncDecChar(delta int) Result {
	row := b.CurRow()
	data := row.Data
	tok, ok := scanNumberAt(data, b.ColIdx)
	if !ok {
		return b.shiftCodepointAtCursor(delta)
	}
	n, err := strconv.ParseInt(tok.digits, tok.base, 64)
	if err != nil {
		return b.shiftCodepointAtCursor(delta)
	}
	if tok.negative {
		n = -n
	}
	n += int64(delta)

	neg := n < 0
	mag := n
	if neg {
		mag = -mag
	}

	var rendered string
	switch tok.base {
	case 16, 8:
		rendered = tok.prefix + strconv.FormatInt(mag, tok.base)
	default:
		rendered = strconv.FormatInt(mag, 10)
	}
	if neg {
		rendered = "-" + rendered
	}

	before := row.Clone()
	replacement := []byte(rendered)
	row.Data = append(append(append([]byte{}, data[:tok.start]...), replacement...), data[tok.end:]...)
	b.pushReplace(before)
	b.ColIdx = tok.start
	b.markModified()
	return Done
}

// shiftCodepointAtCursor is IncDecChar's fallback when no number is
// recognized: shift the codepoint under the cursor by delta code points.
func (b *Buffer) shiftCodepointAtCursor(delta int) Result {
	row := b.CurRow()
	if len(row.Data) == 0 {
		return NothingToDo
	}
	u := ustring.Decode(row.Data, 0)
	idx := ustring.CodepointIndexForByteOffset(row.Data, b.ColIdx)
	if idx >= u.Len() {
		return NothingToDo
	}
	cp := u[idx]
	before := row.Clone()
	replacement := []byte(string(cp.Rune + rune(delta)))
	end := cp.ByteAt + len(cp.Bytes)
	row.Data = append(append(append([]byte{}, row.Data[:cp.ByteAt]...), replacement...), row.Data[end:]...)
	b.pushReplace(before)
	b.ColIdx = cp.ByteAt
	b.markModified()
	return Done
}

// scanNumberAt finds the integer literal at or after byte offset from,
// classifying it as hex ("0x"/"0X" prefix), octal (leading "0" with only
// octal digits), or decimal, and reports its full token range including
// any sign.
func scanNumberAt(data []byte, from int) (numToken, bool) {
	isDigit := func(c byte) bool { return c >= '0' && c <= '9' }
	isOctDigit := func(c byte) bool { return c >= '0' && c <= '7' }
	isHexDigit := func(c byte) bool {
		return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	}

	i := from
	for i < len(data) && !isDigit(data[i]) {
		i++
	}
	if i >= len(data) {
		return numToken{}, false
	}

	lo := i
	for lo > 0 && isHexDigit(data[lo-1]) {
		lo--
	}
	if lo >= 2 && (data[lo-1] == 'x' || data[lo-1] == 'X') && data[lo-2] == '0' {
		lo -= 2
	}
	hi := i
	if i+2 < len(data) && data[i] == '0' && (data[i+1] == 'x' || data[i+1] == 'X') && isHexDigit(data[i+2]) {
		lo, hi = i, i+2
	}
	for hi < len(data) && isHexDigit(data[hi]) {
		hi++
	}
	isHex := hi-lo >= 2 && data[lo] == '0' && (data[lo+1] == 'x' || data[lo+1] == 'X')

	if !isHex {
		lo = i
		for lo > 0 && isDigit(data[lo-1]) {
			lo--
		}
		hi = i
		for hi < len(data) && isDigit(data[hi]) {
			hi++
		}
	}

	negative := lo > 0 && data[lo-1] == '-'
	start := lo
	if negative {
		start--
	}

	if isHex {
		return numToken{start: start, end: hi, negative: negative, base: 16, prefix: string(data[lo : lo+2]), digits: string(data[lo+2 : hi])}, true
	}

	digits := string(data[lo:hi])
	if len(digits) > 1 && digits[0] == '0' {
		allOctal := true
		for i := 0; i < len(digits); i++ {
			if !isOctDigit(digits[i]) {
				allOctal = false
				break
			}
		}
		if allOctal {
			return numToken{start: start, end: hi, negative: negative, base: 8, prefix: "0", digits: digits}, true
		}
	}
	return numToken{start: start, end: hi, negative: negative, base: 10, prefix: "", digits: digits}, true
}

// InsertNewLine splits the current row at the cursor, pushing the tail onto
// a new row below (spec §4.2 Enter in insert mode / "o"/"O" in normal mode).
func (b *Buffer) InsertNewLine(atCol int) Result {
	row := b.CurRow()
	if atCol > len(row.Data) {
		atCol = len(row.Data)
	}
	snap := b.snapshot()
	tail := append([]byte(nil), row.Data[atCol:]...)
	before := row.Clone()
	row.Data = row.Data[:atCol]
	newRow := &Row{Data: tail}
	b.Rows = append(b.Rows[:b.CurIdx+1], append([]*Row{newRow}, b.Rows[b.CurIdx+1:]...)...)
	b.UndoStack.Push(undo.Action{
		{Kind: undo.ReplaceLine, Row: b.CurIdx, Bytes: before.Data, Cursor: snap},
		{Kind: undo.InsertLine, Row: b.CurIdx + 1, Bytes: tail, Cursor: snap},
	})
	b.CurIdx++
	b.ColIdx = 0
	b.markModified()
	return Done
}

// DeleteRangeOnCurrentRow removes [fromCol, toCol) of the current row,
// pushing a ReplaceLine undo act. Used by visual-mode commit paths that
// already captured the removed text into a register themselves.
func (b *Buffer) DeleteRangeOnCurrentRow(fromCol, toCol int) Result {
	row := b.CurRow()
	if toCol > len(row.Data) {
		toCol = len(row.Data)
	}
	if fromCol < 0 || fromCol >= toCol {
		return NothingToDo
	}
	before := row.Clone()
	row.DeleteRange(fromCol, toCol)
	b.pushReplace(before)
	b.clampCol()
	b.markModified()
	return Done
}

// ReplaceRowAt overwrites an arbitrary row's bytes (not necessarily the
// current row), pushing its own undo act. Used by the substitute command,
// which edits rows across a range without moving the cursor to each one.
func (b *Buffer) ReplaceRowAt(rowIdx int, newData []byte) {
	row := b.Rows[rowIdx]
	before := row.Clone()
	snap := b.snapshot()
	row.Data = newData
	b.UndoStack.Push(undo.Action{{Kind: undo.ReplaceLine, Row: rowIdx, Bytes: before.Data, Cursor: snap}})
	b.markModified()
}

func (b *Buffer) pushReplace(before *Row) {
	snap := b.snapshot()
	b.UndoStack.Push(undo.Action{{Kind: undo.ReplaceLine, Row: b.CurIdx, Bytes: before.Data, Cursor: snap}})
}

func (b *Buffer) clampCol() {
	row := b.CurRow()
	if b.ColIdx > 0 && b.ColIdx >= len(row.Data) {
		u := ustring.Decode(row.Data, 0)
		if u.Len() > 0 {
			b.ColIdx = ustring.NthCodepointByteOffset(row.Data, u.Len()-1)
		} else {
			b.ColIdx = 0
		}
	}
}

package buffer

import "ved/ustring"

// TabWidth is the display width used for tab expansion in vertical-motion
// column matching (spec §4.1 display-only tab expansion).
const TabWidth = 8

// Left moves the cursor back one codepoint on the current row.
func (b *Buffer) Left() Result {
	row := b.CurRow()
	idx := ustring.CodepointIndexForByteOffset(row.Data, b.ColIdx)
	if idx <= 0 {
		return NothingToDo
	}
	b.ColIdx = ustring.NthCodepointByteOffset(row.Data, idx-1)
	return Done
}

// Right moves the cursor forward one codepoint on the current row.
func (b *Buffer) Right() Result {
	row := b.CurRow()
	u := ustring.Decode(row.Data, 0)
	idx := ustring.CodepointIndexForByteOffset(row.Data, b.ColIdx)
	if idx >= u.Len()-1 {
		return NothingToDo
	}
	b.ColIdx = ustring.NthCodepointByteOffset(row.Data, idx+1)
	return Done
}

// Bol moves the cursor to the first byte of the current row.
func (b *Buffer) Bol() Result {
	if b.ColIdx == 0 {
		return NothingToDo
	}
	b.ColIdx = 0
	return Done
}

// Eol moves the cursor to the last codepoint of the current row (one before
// the implicit end, matching normal-mode "cursor never past the last
// char" semantics; insert mode allows one past, handled there).
func (b *Buffer) Eol() Result {
	row := b.CurRow()
	if len(row.Data) == 0 {
		return NothingToDo
	}
	u := ustring.Decode(row.Data, 0)
	last := ustring.NthCodepointByteOffset(row.Data, u.Len()-1)
	if b.ColIdx == last {
		return NothingToDo
	}
	b.ColIdx = last
	return Done
}

// targetColWidth is the display-width heuristic used so that up/down motion
// preserves visual column rather than byte offset across rows of differing
// codepoint width (spec §4.1 "vertical motion preserves display column").
func (b *Buffer) targetColWidth() int {
	row := b.CurRow()
	u := ustring.Decode(row.Data, 0)
	return u.WidthForByteOffset(b.ColIdx, TabWidth)
}

func (b *Buffer) seekToWidth(rowIdx, width int) {
	row := b.Rows[rowIdx]
	u := ustring.Decode(row.Data, 0)
	b.ColIdx = u.ByteOffsetForWidth(width, TabWidth)
}

// Up moves the cursor to the previous row, preserving display column.
func (b *Buffer) Up() Result {
	if b.CurIdx == 0 {
		return AtBufferStart
	}
	w := b.targetColWidth()
	b.CurIdx--
	b.seekToWidth(b.CurIdx, w)
	return Done
}

// Down moves the cursor to the next row, preserving display column.
func (b *Buffer) Down() Result {
	if b.CurIdx >= len(b.Rows)-1 {
		return AtBufferEnd
	}
	w := b.targetColWidth()
	b.CurIdx++
	b.seekToWidth(b.CurIdx, w)
	return Done
}

// Bof moves the cursor to the buffer's first row, column 0.
func (b *Buffer) Bof() Result {
	if b.CurIdx == 0 && b.ColIdx == 0 {
		return NothingToDo
	}
	b.CurIdx, b.ColIdx = 0, 0
	return Done
}

// Eof moves the cursor to the buffer's last row, column 0.
func (b *Buffer) Eof() Result {
	last := len(b.Rows) - 1
	if b.CurIdx == last {
		return NothingToDo
	}
	b.CurIdx, b.ColIdx = last, 0
	return Done
}

// PageUp moves the cursor up by rows (a viewport height), preserving
// display column, clamping at row 0.
func (b *Buffer) PageUp(rows int) Result {
	if b.CurIdx == 0 {
		return AtBufferStart
	}
	w := b.targetColWidth()
	b.CurIdx -= rows
	if b.CurIdx < 0 {
		b.CurIdx = 0
	}
	b.seekToWidth(b.CurIdx, w)
	return Done
}

// PageDown moves the cursor down by rows, clamping at the last row.
func (b *Buffer) PageDown(rows int) Result {
	last := len(b.Rows) - 1
	if b.CurIdx == last {
		return AtBufferEnd
	}
	w := b.targetColWidth()
	b.CurIdx += rows
	if b.CurIdx > last {
		b.CurIdx = last
	}
	b.seekToWidth(b.CurIdx, w)
	return Done
}

// GotoPos moves the cursor to an absolute (row, byte-col) position, clamping
// both into range. Used by the search engine to land on a match.
func (b *Buffer) GotoPos(row, col int) {
	if row < 0 {
		row = 0
	}
	if row > len(b.Rows)-1 {
		row = len(b.Rows) - 1
	}
	b.CurIdx = row
	b.ColIdx = col
	b.clampCol()
}

// GotoLineNr moves to a 1-based line number, clamping into range.
func (b *Buffer) GotoLineNr(n int) Result {
	idx := n - 1
	if idx < 0 {
		idx = 0
	}
	if idx > len(b.Rows)-1 {
		idx = len(b.Rows) - 1
	}
	if idx == b.CurIdx {
		return NothingToDo
	}
	b.CurIdx, b.ColIdx = idx, 0
	return Done
}

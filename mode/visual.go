package mode

import (
	"unicode/utf8"

	"ved/buffer"
	"ved/registers"
	"ved/term"
)

// VisualKind distinguishes the three visual selection shapes (spec §4.3
// VISUAL_MODE_LW/VISUAL_MODE_CW/VISUAL_MODE_BW).
type VisualKind int

const (
	VisualChar VisualKind = iota
	VisualLine
	VisualBlock
)

// Visual tracks a selection anchor and dispatches the small set of
// operators visual mode supports (d/x/y/c/>/</u/U). Yanks and deletes go to
// the unnamed register; a block selection is stored as one Blockwise entry
// per row.
type Visual struct {
	buf  *buffer.Buffer
	regs *registers.Table
	kind VisualKind

	anchorRow, anchorCol int
}

// NewVisual starts a visual-mode session anchored at the buffer's current
// cursor position.
func NewVisual(buf *buffer.Buffer, regs *registers.Table, kind VisualKind) *Visual {
	return &Visual{buf: buf, regs: regs, kind: kind, anchorRow: buf.CurIdx, anchorCol: buf.ColIdx}
}

// Bounds exposes the selection's current extent for rendering (spec §4.3
// "Visual modes paint the selection").
func (v *Visual) Bounds() (firstRow, lastRow, fromCol, toCol int, kind VisualKind) {
	firstRow, lastRow, fromCol, toCol = v.bounds()
	return firstRow, lastRow, fromCol, toCol, v.kind
}

// bounds returns the selection's row range [first, last] and, for
// charwise/blockwise, column range [fromCol, toCol).
func (v *Visual) bounds() (firstRow, lastRow, fromCol, toCol int) {
	firstRow, lastRow = v.anchorRow, v.buf.CurIdx
	fromCol, toCol = v.anchorCol, v.buf.ColIdx
	if firstRow > lastRow {
		firstRow, lastRow = lastRow, firstRow
	}
	if fromCol > toCol {
		fromCol, toCol = toCol, fromCol
	}
	// selection is inclusive of the codepoint at its end column
	endRow := v.buf.CurIdx
	if v.anchorCol > v.buf.ColIdx {
		endRow = v.anchorRow
	}
	size := 1
	if endRow < v.buf.NumRows() && toCol < len(v.buf.Rows[endRow].Data) {
		_, size = utf8.DecodeRune(v.buf.Rows[endRow].Data[toCol:])
	}
	toCol += size
	return
}

// Key dispatches one keypress while in visual mode: motions extend the
// selection, an operator key commits it and exits visual mode.
func (v *Visual) Key(k term.Key) (Result, bool) {
	if k.Kind == term.KeyEscape {
		return handled(), true
	}
	if k.Kind != term.KeyRune {
		return v.motion(k), false
	}
	switch k.Rune {
	case 'h':
		v.buf.Left()
	case 'l':
		v.buf.Right()
	case 'j':
		v.buf.Down()
	case 'k':
		v.buf.Up()
	case '0':
		v.buf.Bol()
	case '$':
		v.buf.Eol()
	case 'd', 'x':
		v.commitDelete()
		return handled(), true
	case 'c':
		v.commitDelete()
		return Result{Kind: EnterInsert}, true
	case 'y':
		v.commitYank()
		return handled(), true
	case '>':
		v.commitIndent(v.buf.ShiftWidth)
		return handled(), true
	case '<':
		v.commitIndent(-v.buf.ShiftWidth)
		return handled(), true
	case 'u':
		v.commitCase(toLowerEach)
		return handled(), true
	case 'U':
		v.commitCase(toUpperEach)
		return handled(), true
	default:
		return nothing(), false
	}
	return handled(), false
}

func (v *Visual) motion(k term.Key) Result {
	switch k.Kind {
	case term.KeyArrowLeft:
		v.buf.Left()
	case term.KeyArrowRight:
		v.buf.Right()
	case term.KeyArrowUp:
		v.buf.Up()
	case term.KeyArrowDown:
		v.buf.Down()
	default:
		return nothing()
	}
	return handled()
}

// commitDelete removes the selected text. For a block selection the unnamed
// register receives one Blockwise entry per row, so it keeps the block's
// shape.
func (v *Visual) commitDelete() {
	first, last, fromCol, toCol := v.bounds()
	switch v.kind {
	case VisualLine:
		for i := last; i >= first; i-- {
			v.buf.CurIdx = i
			v.buf.DeleteLine(v.regs, registers.Unnamed)
		}
		v.buf.CurIdx = first
		if v.buf.CurIdx >= v.buf.NumRows() {
			v.buf.CurIdx = v.buf.NumRows() - 1
		}
	case VisualBlock:
		for row := first; row <= last; row++ {
			v.buf.CurIdx = row
			data := v.buf.CurRow().Data
			slice := []string{string(data[min(fromCol, len(data)):min(toCol, len(data))])}
			if row == first {
				v.regs.Set(registers.Unnamed, registers.Blockwise, slice)
			} else {
				v.regs.Append(registers.Unnamed, registers.Blockwise, slice)
			}
			r := v.buf.CurRow()
			lo, hi := fromCol, toCol
			if hi > len(r.Data) {
				hi = len(r.Data)
			}
			if lo < hi {
				v.buf.ColIdx = lo
				v.buf.DeleteRangeOnCurrentRow(lo, hi)
			}
		}
		v.buf.CurIdx = first
	default: // VisualChar, single row assumed for this reduced grammar
		v.buf.CurIdx = first
		v.buf.YankRange(v.regs, registers.Unnamed, fromCol, toCol)
		v.buf.ColIdx = fromCol
		v.buf.DeleteRangeOnCurrentRow(fromCol, toCol)
	}
}

func (v *Visual) commitYank() {
	first, last, fromCol, toCol := v.bounds()
	switch v.kind {
	case VisualLine:
		lines := make([]string, 0, last-first+1)
		for i := first; i <= last; i++ {
			lines = append(lines, v.buf.Rows[i].String())
		}
		v.regs.Set(registers.Unnamed, registers.Linewise, lines)
	case VisualBlock:
		for i := first; i <= last; i++ {
			data := v.buf.Rows[i].Data
			slice := []string{string(data[min(fromCol, len(data)):min(toCol, len(data))])}
			if i == first {
				v.regs.Set(registers.Unnamed, registers.Blockwise, slice)
			} else {
				v.regs.Append(registers.Unnamed, registers.Blockwise, slice)
			}
		}
	default:
		v.buf.CurIdx = first
		v.buf.YankRange(v.regs, registers.Unnamed, fromCol, toCol)
	}
	v.buf.CurIdx = first
}

func (v *Visual) commitIndent(width int) {
	first, last, _, _ := v.bounds()
	for i := first; i <= last; i++ {
		v.buf.CurIdx = i
		v.buf.IndentLine(width)
	}
	v.buf.CurIdx = first
}

func (v *Visual) commitCase(fn func(*buffer.Buffer)) {
	first, last, _, _ := v.bounds()
	for i := first; i <= last; i++ {
		v.buf.CurIdx = i
		fn(v.buf)
	}
	v.buf.CurIdx = first
}

func toLowerEach(b *buffer.Buffer) { b.ChangeCase(toLowerRune) }
func toUpperEach(b *buffer.Buffer) { b.ChangeCase(toUpperRune) }

func toLowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + 32
	}
	return r
}

func toUpperRune(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 32
	}
	return r
}

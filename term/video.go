package term

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Video is the double-buffered terminal grid compositor: a front buffer
// (what's on screen) and a back buffer (what the editor is drawing into),
// flushed with a per-cell diff in one write(2) (spec §3 Video, §4.7).
// Grounded on the teacher's Screen (screen.go).
type Video struct {
	front, back *CellGrid
	w           io.Writer

	width, height int

	// logical viewport, spec §3: "first_row, last_row, first_col, row_pos, col_pos"
	FirstRow, LastRow int
	FirstCol          int
	RowPos, ColPos    int

	lastStyle Style
	scratch   bytes.Buffer

	// transient popup save/restore for the menu engine (spec §4.7 paint_rows_with)
	painted     map[int][]Cell
	paintedRows []int
}

// NewVideo creates a compositor writing to w with the given terminal size.
func NewVideo(w io.Writer, width, height int) *Video {
	return &Video{
		front:     NewCellGrid(width, height),
		back:      NewCellGrid(width, height),
		w:         w,
		width:     width,
		height:    height,
		lastStyle: DefaultStyle(),
		LastRow:   height,
		painted:   make(map[int][]Cell),
	}
}

// Resize reallocates both buffers and forces a full repaint on next flush.
func (v *Video) Resize(width, height int) {
	v.width, v.height = width, height
	v.front.Resize(width, height)
	v.back.Resize(width, height)
	v.front.Clear()
	v.back.Clear()
	v.LastRow = height
}

// Size reports the compositor's current dimensions.
func (v *Video) Size() (width, height int) { return v.width, v.height }

// SetRowWith replaces the stored render for row idx with the given
// already-styled cells (spec §4.7 set_row_with).
func (v *Video) SetRowWith(idx int, cells []Cell) {
	v.back.SetRow(idx, cells)
}

// SetRowBytes renders a plain byte string (already display-ready) into
// row idx starting at column 0, one cell per rune with the
// given base style. Wide runes occupy two cells, the second a placeholder
// (Rune == 0) so the diff flush can skip it cheaply.
func (v *Video) SetRowBytes(idx int, line []byte, style Style) {
	cells := make([]Cell, 0, len(line))
	for len(line) > 0 {
		r, size := utf8.DecodeRune(line)
		line = line[size:]
		w := runewidth.RuneWidth(r)
		if w <= 0 {
			w = 1
		}
		cells = append(cells, Cell{Rune: r, Style: style})
		for i := 1; i < w; i++ {
			cells = append(cells, Cell{Rune: 0, Style: style})
		}
	}
	v.back.SetRow(idx, cells)
}

// RowHLAt injects an inverse/highlight style across [fidx, lidx) of row
// idx's already-rendered cells, without changing their runes (spec §4.7
// row_hl_at — used for visual-mode selection painting and search-match
// highlighting).
func (v *Video) RowHLAt(idx, fidx, lidx int, style Style) {
	for x := fidx; x < lidx && x < v.width; x++ {
		c := v.back.Get(x, idx)
		c.Style = style
		v.back.Set(x, idx, c)
	}
}

// DrawRowAt flushes a single row immediately, hiding and restoring the
// cursor around the write (spec §4.7 draw_row_at).
func (v *Video) DrawRowAt(row int) {
	v.scratch.Reset()
	v.scratch.WriteString(SeqHideCursor)
	v.renderRow(row)
	v.scratch.WriteString(SeqShowCursor)
	v.w.Write(v.scratch.Bytes())
	v.scratch.Reset()
	v.front.dirtyRows[row] = false
}

func (v *Video) renderRow(y int) {
	v.scratch.WriteString(SeqMoveTo(y+1, 1))
	v.scratch.WriteString(SeqClearLineToEOL)
	for x := 0; x < v.width; x++ {
		cell := v.back.Get(x, y)
		if cell.Rune == 0 {
			continue
		}
		v.writeCell(cell)
		v.front.Set(x, y, cell)
	}
}

// DrawAll forces a complete repaint with the scroll region reset to the
// full grid (spec §4.7 draw_all).
func (v *Video) DrawAll() {
	v.scratch.Reset()
	v.scratch.WriteString(SeqScrollRegion(1, v.height))
	v.scratch.WriteString(SeqClearScreen)
	for y := 0; y < v.height; y++ {
		v.renderRow(y)
	}
	v.scratch.WriteString(SeqResetColor)
	v.lastStyle = DefaultStyle()
	v.w.Write(v.scratch.Bytes())
	v.scratch.Reset()
	v.back.ClearDirtyFlags()
}

// RenderSetFromTo appends ANSI move + clear-eol + row bytes for rows
// [first, last) into the scratch render buffer without flushing (spec
// §4.7 render_set_from_to). Call Flush to write it out.
func (v *Video) RenderSetFromTo(first, last int) {
	for y := first; y < last && y < v.height; y++ {
		if !v.back.RowDirty(y) {
			continue
		}
		v.renderRow(y)
	}
}

// Flush writes the accumulated scratch buffer (from RenderSetFromTo or an
// explicit diff pass) to the output file descriptor in one write, then
// clears dirty flags. Flush is idempotent: calling it twice with nothing
// new to draw writes nothing the second time (spec §5).
func (v *Video) Flush() {
	cursorX, cursorY := -1, -1
	changed := false
	for y := 0; y < v.height; y++ {
		if !v.back.RowDirty(y) {
			continue
		}
		for x := 0; x < v.width; x++ {
			bc := v.back.Get(x, y)
			if bc == v.front.Get(x, y) {
				continue
			}
			if bc.Rune == 0 {
				v.front.Set(x, y, bc)
				continue
			}
			if cursorX != x || cursorY != y {
				v.scratch.WriteString(SeqMoveTo(y+1, x+1))
			}
			v.writeCell(bc)
			v.front.Set(x, y, bc)
			changed = true
			w := runewidth.RuneWidth(bc.Rune)
			if w <= 0 {
				w = 1
			}
			cursorX, cursorY = x+w, y
		}
	}
	if changed {
		v.scratch.WriteString(SeqResetColor)
		v.lastStyle = DefaultStyle()
	}
	v.back.ClearDirtyFlags()
	if v.scratch.Len() > 0 {
		v.w.Write(v.scratch.Bytes())
	}
	v.scratch.Reset()
}

func (v *Video) writeCell(c Cell) {
	if !c.Style.Equal(v.lastStyle) {
		v.writeStyle(c.Style)
		v.lastStyle = c.Style
	}
	v.scratch.WriteRune(c.Rune)
}

func (v *Video) writeStyle(s Style) {
	v.scratch.WriteString("\x1b[0")
	if s.Attr.Has(AttrBold) {
		v.scratch.WriteString(";1")
	}
	if s.Attr.Has(AttrDim) {
		v.scratch.WriteString(";2")
	}
	if s.Attr.Has(AttrItalic) {
		v.scratch.WriteString(";3")
	}
	if s.Attr.Has(AttrUnderline) {
		v.scratch.WriteString(";4")
	}
	if s.Attr.Has(AttrBlink) {
		v.scratch.WriteString(";5")
	}
	if s.Attr.Has(AttrInverse) {
		v.scratch.WriteString(";7")
	}
	if s.Attr.Has(AttrStrikethrough) {
		v.scratch.WriteString(";9")
	}
	v.writeColor(s.FG, true)
	v.writeColor(s.BG, false)
	v.scratch.WriteString("m")
}

func (v *Video) writeColor(c Color, fg bool) {
	switch c.Mode {
	case ColorDefault:
		if fg {
			v.scratch.WriteString(";39")
		} else {
			v.scratch.WriteString(";49")
		}
	case Color16:
		base := 30
		if !fg {
			base = 40
		}
		if c.Index >= 8 {
			fmt.Fprintf(&v.scratch, ";%d", base+60+int(c.Index-8))
		} else {
			fmt.Fprintf(&v.scratch, ";%d", base+int(c.Index))
		}
	case Color256:
		if fg {
			v.scratch.WriteString(";38;5;")
		} else {
			v.scratch.WriteString(";48;5;")
		}
		fmt.Fprintf(&v.scratch, "%d", c.Index)
	case ColorRGB:
		if fg {
			v.scratch.WriteString(";38;2;")
		} else {
			v.scratch.WriteString(";48;2;")
		}
		fmt.Fprintf(&v.scratch, "%d;%d;%d", c.R, c.G, c.B)
	}
}

// PaintRowsWith opens a transient popup over rows [row, row+len(lines)),
// columns [colFrom, colTo), saving the underlying cells so
// ResumePaintedRows can restore them. Used by the menu engine (spec §4.6,
// §4.7 paint_rows_with).
func (v *Video) PaintRowsWith(row, colFrom, colTo int, lines []string, style Style) {
	for i, line := range lines {
		y := row + i
		if y < 0 || y >= v.height {
			continue
		}
		if _, saved := v.painted[y]; !saved {
			underlay := make([]Cell, v.width)
			for x := 0; x < v.width; x++ {
				underlay[x] = v.back.Get(x, y)
			}
			v.painted[y] = underlay
			v.paintedRows = append(v.paintedRows, y)
		}
		cells := append([]Cell(nil), v.painted[y]...)
		x := colFrom
		for _, r := range padOrTruncate(line, colTo-colFrom) {
			if x < 0 || x >= colTo || x >= v.width {
				break
			}
			cells[x] = Cell{Rune: r, Style: style}
			x++
		}
		v.back.SetRow(y, cells)
	}
}

// ResumePaintedRows restores every row saved by PaintRowsWith and clears
// the popup's underlay bookkeeping.
func (v *Video) ResumePaintedRows() {
	for _, y := range v.paintedRows {
		if cells, ok := v.painted[y]; ok {
			v.back.SetRow(y, cells)
		}
	}
	v.painted = make(map[int][]Cell)
	v.paintedRows = v.paintedRows[:0]
}

func padOrTruncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) > width {
		return string(r[:width])
	}
	for len(r) < width {
		r = append(r, ' ')
	}
	return string(r)
}

// MoveCursor positions the real terminal cursor immediately (outside the
// diffed flush path), used for the rline prompt cursor.
func (v *Video) MoveCursor(x, y int) {
	io.WriteString(v.w, SeqMoveTo(y+1, x+1))
}

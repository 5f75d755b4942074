package term

import (
	"bytes"
	"testing"
)

func TestCellGridSetGet(t *testing.T) {
	g := NewCellGrid(10, 5)
	g.Set(3, 2, Cell{Rune: 'x', Style: DefaultStyle()})
	if c := g.Get(3, 2); c.Rune != 'x' {
		t.Fatalf("got %+v", c)
	}
	if !g.RowDirty(2) {
		t.Fatal("row 2 should be dirty after Set")
	}
}

func TestCellGridOutOfBounds(t *testing.T) {
	g := NewCellGrid(4, 4)
	g.Set(-1, 0, Cell{Rune: 'x'})
	g.Set(100, 0, Cell{Rune: 'x'})
	if c := g.Get(-1, 0); c.Rune != ' ' {
		t.Fatalf("out-of-bounds Get should return empty cell, got %+v", c)
	}
}

func TestCellGridClearDirtyFlags(t *testing.T) {
	g := NewCellGrid(4, 4)
	if !g.RowDirty(0) {
		t.Fatal("new grid should start fully dirty")
	}
	g.ClearDirtyFlags()
	if g.RowDirty(0) {
		t.Fatal("row should be clean after ClearDirtyFlags")
	}
	g.Set(0, 0, Cell{Rune: 'y'})
	if !g.RowDirty(0) {
		t.Fatal("row should be dirty after Set")
	}
}

func TestCellGridResizeForcesFullDirty(t *testing.T) {
	g := NewCellGrid(4, 4)
	g.ClearDirtyFlags()
	g.Resize(8, 8)
	if !g.RowDirty(7) {
		t.Fatal("resized grid should be fully dirty")
	}
	if g.Width() != 8 || g.Height() != 8 {
		t.Fatalf("got %dx%d, want 8x8", g.Width(), g.Height())
	}
}

func TestVideoSetRowBytesWideRune(t *testing.T) {
	var buf bytes.Buffer
	v := NewVideo(&buf, 10, 3)
	v.SetRowBytes(0, []byte("aあ"), DefaultStyle())
	if c := v.back.Get(0, 0); c.Rune != 'a' {
		t.Fatalf("got %+v", c)
	}
	if c := v.back.Get(1, 0); c.Rune != 'あ' {
		t.Fatalf("got %+v", c)
	}
	if c := v.back.Get(2, 0); c.Rune != 0 {
		t.Fatalf("second cell of a wide rune should be a placeholder, got %+v", c)
	}
}

func TestVideoFlushWritesOnlyChangedCells(t *testing.T) {
	var buf bytes.Buffer
	v := NewVideo(&buf, 10, 3)
	v.Flush()
	buf.Reset()

	v.SetRowBytes(1, []byte("hi"), DefaultStyle())
	v.Flush()
	if buf.Len() == 0 {
		t.Fatal("expected output after changing row 1")
	}

	buf.Reset()
	v.Flush()
	if buf.Len() != 0 {
		t.Fatal("second flush with no changes should write nothing")
	}
}

func TestVideoDrawAllResetsDirty(t *testing.T) {
	var buf bytes.Buffer
	v := NewVideo(&buf, 5, 2)
	v.SetRowBytes(0, []byte("hey"), DefaultStyle())
	v.DrawAll()
	if buf.Len() == 0 {
		t.Fatal("DrawAll should always produce output")
	}
	if v.back.RowDirty(0) {
		t.Fatal("DrawAll should clear dirty flags")
	}
}

func TestVideoPaintAndResumeRows(t *testing.T) {
	var buf bytes.Buffer
	v := NewVideo(&buf, 20, 5)
	v.SetRowBytes(2, []byte("original"), DefaultStyle())
	v.Flush()

	v.PaintRowsWith(2, 0, 10, []string{"popup"}, DefaultStyle())
	if c := v.back.Get(0, 2); c.Rune != 'p' {
		t.Fatalf("expected popup content, got %+v", c)
	}

	v.ResumePaintedRows()
	row := string(runesOf(v.back, 2, 8))
	if row[0] != 'o' {
		t.Fatalf("expected restored original row, got %q", row)
	}
}

func runesOf(g *CellGrid, y, n int) []rune {
	out := make([]rune, 0, n)
	for x := 0; x < n; x++ {
		c := g.Get(x, y)
		if c.Rune == 0 {
			continue
		}
		out = append(out, c.Rune)
	}
	return out
}

func TestParseCursorPositionReply(t *testing.T) {
	row, col, ok := ParseCursorPositionReply([]byte("\x1b[24;80R"))
	if !ok || row != 24 || col != 80 {
		t.Fatalf("got row=%d col=%d ok=%v", row, col, ok)
	}
	if _, _, ok := ParseCursorPositionReply([]byte("garbage")); ok {
		t.Fatal("garbage input should not parse")
	}
}

func TestStyleEqual(t *testing.T) {
	a := Style{FG: BasicColor(1), Attr: AttrBold}
	b := Style{FG: BasicColor(1), Attr: AttrBold}
	c := Style{FG: BasicColor(2), Attr: AttrBold}
	if !a.Equal(b) {
		t.Fatal("identical styles should be equal")
	}
	if a.Equal(c) {
		t.Fatal("differing fg should not be equal")
	}
}

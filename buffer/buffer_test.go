package buffer

import (
	"testing"

	"ved/registers"
)

func newTestBuffer(lines ...string) *Buffer {
	return NewFromLines("", lines)
}

func TestMotionsLeftRight(t *testing.T) {
	b := newTestBuffer("hello")
	b.ColIdx = 0
	if r := b.Right(); r != Done || b.ColIdx != 1 {
		t.Fatalf("Right: got col=%d result=%v", b.ColIdx, r)
	}
	if r := b.Left(); r != Done || b.ColIdx != 0 {
		t.Fatalf("Left: got col=%d result=%v", b.ColIdx, r)
	}
	if r := b.Left(); r != NothingToDo {
		t.Fatalf("Left at col 0 should be NothingToDo, got %v", r)
	}
}

func TestMotionsBolEol(t *testing.T) {
	b := newTestBuffer("hello")
	b.Eol()
	if b.ColIdx != 4 {
		t.Fatalf("Eol: got col=%d, want 4", b.ColIdx)
	}
	b.Bol()
	if b.ColIdx != 0 {
		t.Fatalf("Bol: got col=%d, want 0", b.ColIdx)
	}
}

func TestMotionsUpDownPreserveColumn(t *testing.T) {
	b := newTestBuffer("short", "a longer line")
	b.CurIdx = 0
	b.ColIdx = 3
	if r := b.Down(); r != Done {
		t.Fatalf("Down: %v", r)
	}
	if b.CurIdx != 1 || b.ColIdx != 3 {
		t.Fatalf("got row=%d col=%d, want row=1 col=3", b.CurIdx, b.ColIdx)
	}
	if r := b.Up(); r != Done || b.CurIdx != 0 {
		t.Fatalf("Up: row=%d result=%v", b.CurIdx, r)
	}
}

func TestMotionsDownClampsShorterLine(t *testing.T) {
	b := newTestBuffer("a very long line here", "short")
	b.ColIdx = 15
	b.Down()
	if b.CurIdx != 1 {
		t.Fatalf("got row=%d", b.CurIdx)
	}
	if b.ColIdx > len(b.Rows[1].Data) {
		t.Fatalf("col %d should not exceed shorter row length %d", b.ColIdx, len(b.Rows[1].Data))
	}
}

func TestMotionsBofEof(t *testing.T) {
	b := newTestBuffer("a", "b", "c")
	b.CurIdx = 1
	b.Eof()
	if b.CurIdx != 2 {
		t.Fatalf("Eof: got row=%d", b.CurIdx)
	}
	b.Bof()
	if b.CurIdx != 0 {
		t.Fatalf("Bof: got row=%d", b.CurIdx)
	}
}

func TestGotoLineNr(t *testing.T) {
	b := newTestBuffer("a", "b", "c")
	b.GotoLineNr(2)
	if b.CurIdx != 1 {
		t.Fatalf("got row=%d, want 1", b.CurIdx)
	}
	b.GotoLineNr(100)
	if b.CurIdx != 2 {
		t.Fatalf("out-of-range goto should clamp to last row, got %d", b.CurIdx)
	}
}

func TestDeleteChar(t *testing.T) {
	b := newTestBuffer("hello")
	regs := registers.New(nil)
	b.ColIdx = 0
	b.DeleteChar(regs, '"')
	if b.CurRow().String() != "ello" {
		t.Fatalf("got %q", b.CurRow().String())
	}
	r := regs.Get('"')
	e, ok := r.Last()
	if !ok || e.Lines[0] != "h" {
		t.Fatalf("register got %+v ok=%v", e, ok)
	}
}

func TestDeleteLineSingleRowBuffer(t *testing.T) {
	b := newTestBuffer("only")
	regs := registers.New(nil)
	b.DeleteLine(regs, '"')
	if b.NumRows() != 1 || b.CurRow().String() != "" {
		t.Fatalf("got %d rows, content %q", b.NumRows(), b.CurRow().String())
	}
}

func TestDeleteLineMultiRow(t *testing.T) {
	b := newTestBuffer("one", "two", "three")
	regs := registers.New(nil)
	b.CurIdx = 1
	b.DeleteLine(regs, '"')
	if b.NumRows() != 2 || b.Rows[0].String() != "one" || b.Rows[1].String() != "three" {
		t.Fatalf("got rows %v", rowStrings(b))
	}
}

func rowStrings(b *Buffer) []string {
	out := make([]string, len(b.Rows))
	for i, r := range b.Rows {
		out[i] = r.String()
	}
	return out
}

func TestYankAndPutLinewise(t *testing.T) {
	b := newTestBuffer("one", "two")
	regs := registers.New(nil)
	b.Yank(regs, '"')
	b.CurIdx = 1
	b.Put(regs, '"', true)
	if b.NumRows() != 3 || b.Rows[2].String() != "one" {
		t.Fatalf("got rows %v", rowStrings(b))
	}
}

func TestPutCharwiseAfter(t *testing.T) {
	b := newTestBuffer("ac")
	regs := registers.New(nil)
	b.ColIdx = 0
	b.YankRange(regs, '"', 0, 1)
	b.ColIdx = 1
	b.Put(regs, '"', true)
	if b.CurRow().String() != "aca" {
		t.Fatalf("got %q", b.CurRow().String())
	}
}

func TestJoin(t *testing.T) {
	b := newTestBuffer("one", "two")
	b.Join()
	if b.NumRows() != 1 || b.CurRow().String() != "one two" {
		t.Fatalf("got rows %v", rowStrings(b))
	}
}

func TestIndentLine(t *testing.T) {
	b := newTestBuffer("text")
	b.IndentLine(4)
	if b.CurRow().String() != "    text" {
		t.Fatalf("got %q", b.CurRow().String())
	}
	b.IndentLine(-2)
	if b.CurRow().String() != "  text" {
		t.Fatalf("got %q", b.CurRow().String())
	}
}

func TestIncDecChar(t *testing.T) {
	b := newTestBuffer("count=41")
	b.ColIdx = 0
	b.IncDecChar(1)
	if b.CurRow().String() != "count=42" {
		t.Fatalf("got %q", b.CurRow().String())
	}
	b.IncDecChar(-2)
	if b.CurRow().String() != "count=40" {
		t.Fatalf("got %q", b.CurRow().String())
	}
}

func TestIncDecCharHexPreservesPrefix(t *testing.T) {
	b := newTestBuffer("addr=0x1a")
	b.ColIdx = 0
	b.IncDecChar(1)
	if got := b.CurRow().String(); got != "addr=0x1b" {
		t.Fatalf("got %q", got)
	}
}

func TestIncDecCharOctalPreservesPrefix(t *testing.T) {
	b := newTestBuffer("mode=007")
	b.ColIdx = 0
	b.IncDecChar(1)
	if got := b.CurRow().String(); got != "mode=010" {
		t.Fatalf("got %q", got)
	}
}

func TestIncDecCharPreservesNegativeSign(t *testing.T) {
	b := newTestBuffer("delta=-5")
	b.ColIdx = 0
	b.IncDecChar(1)
	if got := b.CurRow().String(); got != "delta=-4" {
		t.Fatalf("got %q", got)
	}
}

func TestIncDecCharFallsBackToCodepointShift(t *testing.T) {
	b := newTestBuffer("abc")
	b.ColIdx = 0
	b.IncDecChar(1)
	if got := b.CurRow().String(); got != "bbc" {
		t.Fatalf("got %q", got)
	}
}

func TestToggleCaseCharTogglesOneCodepointAndAdvances(t *testing.T) {
	b := newTestBuffer("Hello")
	b.ColIdx = 0
	b.ToggleCaseChar()
	if got := b.CurRow().String(); got != "hello" {
		t.Fatalf("got %q", got)
	}
	if b.ColIdx != 1 {
		t.Fatalf("got ColIdx=%d, want 1", b.ColIdx)
	}
	b.ToggleCaseChar()
	if got := b.CurRow().String(); got != "hEllo" {
		t.Fatalf("got %q", got)
	}
}

func TestInsertNewLine(t *testing.T) {
	b := newTestBuffer("helloworld")
	b.InsertNewLine(5)
	if b.NumRows() != 2 || b.Rows[0].String() != "hello" || b.Rows[1].String() != "world" {
		t.Fatalf("got rows %v", rowStrings(b))
	}
	if b.CurIdx != 1 || b.ColIdx != 0 {
		t.Fatalf("got row=%d col=%d", b.CurIdx, b.ColIdx)
	}
}

func TestUndoRedoDeleteChar(t *testing.T) {
	b := newTestBuffer("hello")
	regs := registers.New(nil)
	b.ColIdx = 0
	b.DeleteChar(regs, '"')
	if got := b.CurRow().String(); got != "ello" {
		t.Fatalf("got %q", got)
	}
	if r := b.ApplyUndo(); r != Done {
		t.Fatalf("ApplyUndo: %v", r)
	}
	if got := b.CurRow().String(); got != "hello" {
		t.Fatalf("after undo, got %q", got)
	}
	if r := b.ApplyRedo(); r != Done {
		t.Fatalf("ApplyRedo: %v", r)
	}
	if got := b.CurRow().String(); got != "ello" {
		t.Fatalf("after redo, got %q", got)
	}
}

func TestUndoRedoDeleteLine(t *testing.T) {
	b := newTestBuffer("one", "two", "three")
	regs := registers.New(nil)
	b.CurIdx = 1
	b.DeleteLine(regs, '"')
	if b.NumRows() != 2 {
		t.Fatalf("got %d rows", b.NumRows())
	}
	b.ApplyUndo()
	if b.NumRows() != 3 || b.Rows[1].String() != "two" {
		t.Fatalf("after undo, got rows %v", rowStrings(b))
	}
}

func TestMarksSetAndGoto(t *testing.T) {
	b := newTestBuffer("a", "b", "c")
	b.CurIdx = 2
	b.ColIdx = 0
	if !b.SetMark('a') {
		t.Fatal("SetMark should succeed for a valid mark name")
	}
	b.CurIdx = 0
	if r := b.GotoMark('a'); r != Done {
		t.Fatalf("GotoMark: %v", r)
	}
	if b.CurIdx != 2 {
		t.Fatalf("got row=%d, want 2", b.CurIdx)
	}
}

func TestInsertSessionBasic(t *testing.T) {
	b := newTestBuffer("ac")
	b.ColIdx = 1
	s := b.BeginInsert()
	s.InsertRune('b')
	if b.CurRow().String() != "abc" {
		t.Fatalf("got %q", b.CurRow().String())
	}
	s.End()
	if r := b.ApplyUndo(); r != Done {
		t.Fatalf("ApplyUndo: %v", r)
	}
	if b.CurRow().String() != "ac" {
		t.Fatalf("after undo, got %q", b.CurRow().String())
	}
}

func TestInsertSessionBackspaceJoinsLines(t *testing.T) {
	b := newTestBuffer("hello", "world")
	b.CurIdx = 1
	b.ColIdx = 0
	s := b.BeginInsert()
	if r := s.Backspace(); r != Done {
		t.Fatalf("Backspace: %v", r)
	}
	if b.NumRows() != 1 || b.CurRow().String() != "helloworld" {
		t.Fatalf("got rows %v", rowStrings(b))
	}
}

func TestInsertSessionCtrlW(t *testing.T) {
	b := newTestBuffer("")
	s := b.BeginInsert()
	for _, r := range "hello world" {
		s.InsertRune(r)
	}
	s.CtrlW()
	if b.CurRow().String() != "hello " {
		t.Fatalf("got %q", b.CurRow().String())
	}
}

func TestJumpListBackAndBound(t *testing.T) {
	b := newTestBuffer("a", "b", "c", "d")
	b.CurIdx = 0
	b.recordJump()
	b.CurIdx = 3
	if r := b.JumpBack(); r != Done || b.CurIdx != 0 {
		t.Fatalf("got row=%d result=%v", b.CurIdx, r)
	}
	if r := b.JumpBack(); r != NothingToDo {
		t.Fatalf("empty jump list should report NothingToDo, got %v", r)
	}
}

func TestFlagsAndForceReopen(t *testing.T) {
	b := New("")
	if b.ConsumeForceReopen() {
		t.Fatal("fresh buffer should not need reopen")
	}
	b.ForceReopen()
	if !b.ConsumeForceReopen() {
		t.Fatal("expected force-reopen flag to be set")
	}
	if b.ConsumeForceReopen() {
		t.Fatal("ConsumeForceReopen should clear the flag")
	}
}

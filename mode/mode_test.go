package mode

import (
	"testing"

	"ved/buffer"
	"ved/registers"
	"ved/term"
)

func rk(r rune) term.Key        { return term.Key{Kind: term.KeyRune, Rune: r} }
func ck(r rune) term.Key        { return term.Key{Kind: term.KeyCtrl, Rune: r} }
func sk(kind term.KeyKind) term.Key { return term.Key{Kind: kind} }

func newBuf(lines ...string) *buffer.Buffer { return buffer.NewFromLines("", lines) }

func TestNormalBasicMotion(t *testing.T) {
	b := newBuf("hello")
	n := NewNormal(b, registers.New(nil))
	n.Key(rk('l'))
	if b.ColIdx != 1 {
		t.Fatalf("got col=%d", b.ColIdx)
	}
}

func TestNormalCountedMotion(t *testing.T) {
	b := newBuf("hello world")
	n := NewNormal(b, registers.New(nil))
	n.Key(rk('3'))
	n.Key(rk('l'))
	if b.ColIdx != 3 {
		t.Fatalf("got col=%d, want 3", b.ColIdx)
	}
}

func TestNormalDeleteDoubled(t *testing.T) {
	b := newBuf("one", "two", "three")
	n := NewNormal(b, registers.New(nil))
	n.Key(rk('d'))
	n.Key(rk('d'))
	if b.NumRows() != 2 || b.Rows[0].String() != "two" {
		t.Fatalf("got rows len=%d row0=%q", b.NumRows(), b.Rows[0].String())
	}
}

func TestNormalRegisterPrefixYank(t *testing.T) {
	b := newBuf("one", "two")
	regs := registers.New(nil)
	n := NewNormal(b, regs)
	n.Key(rk('"'))
	n.Key(rk('a'))
	n.Key(rk('y'))
	n.Key(rk('y'))
	r := regs.Get('a')
	if e, ok := r.Last(); !ok || e.Lines[0] != "one" {
		t.Fatalf("register a got %+v ok=%v", e, ok)
	}
}

func TestNormalGPrefixedGG(t *testing.T) {
	b := newBuf("a", "b", "c")
	b.CurIdx = 2
	n := NewNormal(b, registers.New(nil))
	n.Key(rk('g'))
	n.Key(rk('g'))
	if b.CurIdx != 0 {
		t.Fatalf("got row=%d, want 0", b.CurIdx)
	}
}

func TestNormalEnterInsertOnI(t *testing.T) {
	b := newBuf("abc")
	n := NewNormal(b, registers.New(nil))
	res := n.Key(rk('i'))
	if res.Kind != EnterInsert {
		t.Fatalf("got kind=%v", res.Kind)
	}
}

func TestNormalChangeWordEntersInsert(t *testing.T) {
	b := newBuf("hello world")
	n := NewNormal(b, registers.New(nil))
	n.Key(rk('c'))
	res := n.Key(rk('w'))
	if res.Kind != EnterInsert {
		t.Fatalf("got kind=%v", res.Kind)
	}
	if b.CurRow().String() != "world" {
		t.Fatalf("got %q", b.CurRow().String())
	}
}

func TestNormalChangeLineEntersInsertAndClears(t *testing.T) {
	b := newBuf("hello")
	n := NewNormal(b, registers.New(nil))
	n.Key(rk('c'))
	res := n.Key(rk('c'))
	if res.Kind != EnterInsert {
		t.Fatalf("got kind=%v", res.Kind)
	}
	if b.CurRow().String() != "" {
		t.Fatalf("got %q, want empty", b.CurRow().String())
	}
}

func TestNormalSetMark(t *testing.T) {
	b := newBuf("a", "b", "c")
	b.CurIdx = 2
	n := NewNormal(b, registers.New(nil))
	n.Key(rk('m'))
	n.Key(rk('x'))
	b.CurIdx = 0
	if r := b.GotoMark('x'); r != buffer.Done {
		t.Fatalf("GotoMark: %v", r)
	}
	if b.CurIdx != 2 {
		t.Fatalf("got row=%d, want 2", b.CurIdx)
	}
}

func TestNormalEnterVisualChar(t *testing.T) {
	b := newBuf("hello")
	n := NewNormal(b, registers.New(nil))
	res := n.Key(rk('v'))
	if res.Kind != EnterVisual || res.VisualKind != VisualChar {
		t.Fatalf("got %+v", res)
	}
}

func TestNormalEnterVisualBlock(t *testing.T) {
	b := newBuf("hello")
	n := NewNormal(b, registers.New(nil))
	res := n.Key(ck('v'))
	if res.Kind != EnterVisual || res.VisualKind != VisualBlock {
		t.Fatalf("got %+v", res)
	}
}

func TestNormalUndoAfterDeleteChar(t *testing.T) {
	b := newBuf("hello")
	n := NewNormal(b, registers.New(nil))
	n.Key(rk('x'))
	if b.CurRow().String() != "ello" {
		t.Fatalf("got %q", b.CurRow().String())
	}
	n.Key(rk('u'))
	if b.CurRow().String() != "hello" {
		t.Fatalf("after undo, got %q", b.CurRow().String())
	}
}

func TestVisualCharDeleteSelection(t *testing.T) {
	b := newBuf("hello")
	regs := registers.New(nil)
	b.ColIdx = 1
	v := NewVisual(b, regs, VisualChar)
	b.ColIdx = 3
	res, done := v.Key(rk('d'))
	if !done || res.Kind != Handled {
		t.Fatalf("got %+v done=%v", res, done)
	}
	if b.CurRow().String() != "ho" {
		t.Fatalf("got %q", b.CurRow().String())
	}
}

func TestVisualLineYank(t *testing.T) {
	b := newBuf("one", "two", "three")
	regs := registers.New(nil)
	b.CurIdx = 0
	v := NewVisual(b, regs, VisualLine)
	b.CurIdx = 1
	_, done := v.Key(rk('y'))
	if !done {
		t.Fatal("expected visual op to finish the session")
	}
	e, ok := regs.Get('"').Last()
	if !ok || len(e.Lines) != 2 || e.Lines[0] != "one" || e.Lines[1] != "two" {
		t.Fatalf("got %+v ok=%v", e, ok)
	}
}

func TestVisualEscapeCancels(t *testing.T) {
	b := newBuf("hello")
	v := NewVisual(b, registers.New(nil), VisualChar)
	_, done := v.Key(sk(term.KeyEscape))
	if !done {
		t.Fatal("escape should end the visual session")
	}
	if b.CurRow().String() != "hello" {
		t.Fatalf("escape should not modify the buffer, got %q", b.CurRow().String())
	}
}

func TestInsertSessionTypesAndEscapes(t *testing.T) {
	b := newBuf("ac")
	regs := registers.New(nil)
	b.ColIdx = 1
	ins := NewInsert(b, regs)
	_, done := ins.Key(rk('b'))
	if done {
		t.Fatal("plain rune should not end insert mode")
	}
	if b.CurRow().String() != "abc" {
		t.Fatalf("got %q", b.CurRow().String())
	}
	_, done = ins.Key(sk(term.KeyEscape))
	if !done {
		t.Fatal("escape should end insert mode")
	}
}

func TestInsertSessionBackspace(t *testing.T) {
	b := newBuf("abc")
	regs := registers.New(nil)
	b.ColIdx = 3
	ins := NewInsert(b, regs)
	ins.Key(sk(term.KeyBackspace))
	if b.CurRow().String() != "ab" {
		t.Fatalf("got %q", b.CurRow().String())
	}
}

func TestNormalTildeTogglesOneCodepointAndAdvances(t *testing.T) {
	b := newBuf("Hello")
	n := NewNormal(b, registers.New(nil))
	n.Key(rk('~'))
	if b.CurRow().String() != "hello" {
		t.Fatalf("got %q", b.CurRow().String())
	}
	if b.ColIdx != 1 {
		t.Fatalf("got col=%d, want 1", b.ColIdx)
	}
}

func TestNormalCountedTildeTogglesMultiple(t *testing.T) {
	b := newBuf("Hello")
	n := NewNormal(b, registers.New(nil))
	n.Key(rk('3'))
	n.Key(rk('~'))
	if b.CurRow().String() != "hELlo" {
		t.Fatalf("got %q", b.CurRow().String())
	}
}

func TestNormalCtrlAIncrementsNumber(t *testing.T) {
	b := newBuf("count=41")
	n := NewNormal(b, registers.New(nil))
	n.Key(ck('a'))
	if b.CurRow().String() != "count=42" {
		t.Fatalf("got %q", b.CurRow().String())
	}
}

func TestNormalCtrlXWithCountDecrements(t *testing.T) {
	b := newBuf("count=41")
	n := NewNormal(b, registers.New(nil))
	n.Key(rk('5'))
	n.Key(ck('x'))
	if b.CurRow().String() != "count=36" {
		t.Fatalf("got %q", b.CurRow().String())
	}
}

func TestNormalIndentUsesShiftWidth(t *testing.T) {
	b := newBuf("text")
	b.ShiftWidth = 3
	n := NewNormal(b, registers.New(nil))
	n.Key(rk('>'))
	n.Key(rk('>'))
	if b.CurRow().String() != "   text" {
		t.Fatalf("got %q", b.CurRow().String())
	}
}

func TestNormalCountedIndentMultipliesShiftWidth(t *testing.T) {
	b := newBuf("text")
	b.ShiftWidth = 2
	n := NewNormal(b, registers.New(nil))
	n.Key(rk('2'))
	n.Key(rk('>'))
	n.Key(rk('>'))
	if b.CurRow().String() != "    text" {
		t.Fatalf("got %q", b.CurRow().String())
	}
}

func TestInsertSessionEnterSplitsLine(t *testing.T) {
	b := newBuf("helloworld")
	regs := registers.New(nil)
	b.ColIdx = 5
	ins := NewInsert(b, regs)
	ins.Key(sk(term.KeyEnter))
	if b.NumRows() != 2 || b.Rows[0].String() != "hello" || b.Rows[1].String() != "world" {
		t.Fatalf("got rows %v", []string{b.Rows[0].String(), b.Rows[1].String()})
	}
}

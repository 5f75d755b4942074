package editor

import (
	"testing"

	"ved/buffer"
	"ved/window"
)

func newTestEditor(lines ...string) *Editor {
	buf := buffer.NewFromLines("", lines)
	return newEditorWithBuffer(window.NormalType, 24, 80, buf)
}

func TestCmdSetAdjustsBufferOptions(t *testing.T) {
	e := newTestEditor("one")
	e.Execute(`set --tabwidth=2 --shiftwidth=3 --ftype=go`)
	buf := e.CurBuffer()
	if buf.TabWidth != 2 || buf.ShiftWidth != 3 || buf.Ftype != "go" {
		t.Fatalf("got tabwidth=%d shiftwidth=%d ftype=%q", buf.TabWidth, buf.ShiftWidth, buf.Ftype)
	}
}

func TestCmdSetAutosaveConfiguresInterval(t *testing.T) {
	e := newTestEditor("one")
	e.Execute(`set --autosave=5`)
	if e.AutosaveInterval.Seconds() != 5 {
		t.Fatalf("got autosave=%v", e.AutosaveInterval)
	}
}

func TestCmdBalancedCheckDetectsUnbalanced(t *testing.T) {
	e := newTestEditor("func f( {")
	e.Execute("@balanced_check")
	if !e.MessageIsError {
		t.Fatalf("expected unbalanced-brackets error, got message %q", e.MessageLine)
	}
}

func TestCmdBalancedCheckAcceptsBalanced(t *testing.T) {
	e := newTestEditor("func f() { return (1) }")
	e.Execute("@balanced_check")
	if e.MessageIsError {
		t.Fatalf("expected balanced, got error %q", e.MessageLine)
	}
}

func TestCmdValidateUTF8FlagsInvalidBytes(t *testing.T) {
	e := newTestEditor("ok")
	e.CurBuffer().Rows[0] = buffer.NewRow(string([]byte{0xff, 0xfe}))
	e.Execute("@validate_utf8")
	if !e.MessageIsError {
		t.Fatalf("expected invalid-UTF8 error")
	}
}

func TestCmdSubstituteGlobalReplacesAllMatches(t *testing.T) {
	e := newTestEditor("foo bar foo", "foo baz")
	e.Execute(`substitute --pat=foo --sub=XXX --global --range=%`)
	buf := e.CurBuffer()
	if got := string(buf.RowBytes(0)); got != "XXX bar XXX" {
		t.Fatalf("row0 = %q", got)
	}
	if got := string(buf.RowBytes(1)); got != "XXX baz" {
		t.Fatalf("row1 = %q", got)
	}
}

func TestCmdSubstituteWithoutGlobalReplacesFirstOnly(t *testing.T) {
	e := newTestEditor("foo bar foo")
	e.Execute(`substitute --pat=foo --sub=X`)
	if got := string(e.CurBuffer().RowBytes(0)); got != "X bar foo" {
		t.Fatalf("row0 = %q", got)
	}
}

func TestCmdSubstituteNoMatchSetsError(t *testing.T) {
	e := newTestEditor("nothing here")
	e.Execute(`substitute --pat=zzz --sub=x`)
	if !e.MessageIsError {
		t.Fatalf("expected no-match error")
	}
}

func TestCmdQuitRequiresForceWhenModified(t *testing.T) {
	e := newTestEditor("one")
	e.CurBuffer().Modified = true
	if res := e.Execute("quit"); res != EdNone {
		t.Fatalf("expected EdNone (blocked), got %v", res)
	}
	if !e.MessageIsError {
		t.Fatalf("expected modified-buffer error message")
	}
	if res := e.Execute("q!"); res != EdExit {
		t.Fatalf("expected EdExit on forced quit, got %v", res)
	}
}

func TestCmdQuitGlobalReturnsExitAll(t *testing.T) {
	e := newTestEditor("one")
	if res := e.Execute("quit --global"); res != EdExitAll {
		t.Fatalf("got %v", res)
	}
}

func TestCmdWriteQuitAbortsOnWriteFailure(t *testing.T) {
	e := newTestEditor("one")
	if res := e.Execute("wq"); res != EdNone {
		t.Fatalf("expected write failure to abort quit, got %v", res)
	}
	if !e.MessageIsError {
		t.Fatalf("expected write-failure error message")
	}
}

func TestExecuteUnrecognizedCommandSetsMessage(t *testing.T) {
	e := newTestEditor("one")
	e.Execute("notacommand")
	if !e.MessageIsError {
		t.Fatalf("expected unrecognized-command error")
	}
}

func TestExecuteBlankLineIsNoop(t *testing.T) {
	e := newTestEditor("one")
	e.Execute("   ")
	if e.MessageIsError {
		t.Fatalf("blank line should not set an error message")
	}
}

func TestCmdEnewOpensFreshBuffer(t *testing.T) {
	e := newTestEditor("one")
	e.Execute("enew")
	if e.CurBuffer().NumRows() != 1 || string(e.CurBuffer().RowBytes(0)) != "" {
		t.Fatalf("expected a fresh empty buffer")
	}
}

func TestCmdBufDeleteBlocksOnModified(t *testing.T) {
	e := newTestEditor("one")
	e.CurBuffer().Modified = true
	e.Execute("bufdelete")
	if !e.MessageIsError {
		t.Fatalf("expected modified-buffer error")
	}
	if len(e.CurFrame().Buffers()) != 1 {
		t.Fatalf("buffer should not have been removed")
	}
}

func TestCmdEdNewReturnsEdNewWithPendingFname(t *testing.T) {
	e := newTestEditor("one")
	if res := e.Execute("ednew other.txt"); res != EdNew {
		t.Fatalf("got %v, want EdNew", res)
	}
	if e.PendingEdFname != "other.txt" {
		t.Fatalf("got PendingEdFname=%q, want other.txt", e.PendingEdFname)
	}
}

func TestCmdEdNextReturnsEdNext(t *testing.T) {
	e := newTestEditor("one")
	if res := e.Execute("ednext"); res != EdNext {
		t.Fatalf("got %v, want EdNext", res)
	}
}

func TestCmdRedrawSetsFullRedraw(t *testing.T) {
	e := newTestEditor("one")
	e.FullRedraw = false
	e.Execute("redraw")
	if !e.FullRedraw {
		t.Fatalf("expected redraw to set FullRedraw")
	}
}

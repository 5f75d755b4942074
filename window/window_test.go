package window

import (
	"testing"

	"ved/buffer"
)

func TestDimCalcSingleFrame(t *testing.T) {
	w := New(NormalType, 24, 80)
	f := w.Frames[0]
	// reserved = 3 (top+msg+prompt); 24-3 = 21 rows for the one frame.
	if f.FirstRow != 1 || f.LastRow != 21 {
		t.Fatalf("got first=%d last=%d", f.FirstRow, f.LastRow)
	}
}

func TestDimCalcTwoFramesSplitWithDivider(t *testing.T) {
	w := New(NormalType, 25, 80)
	w.AddFrame()
	// avail = 25 - 1(divider) - 3(reserved) = 21; 21/2 = 10 rem 1 -> frame0 gets 11.
	f0, f1 := w.Frames[0], w.Frames[1]
	if f0.NumRows() != 11 {
		t.Fatalf("frame0 got %d rows", f0.NumRows())
	}
	if f1.NumRows() != 10 {
		t.Fatalf("frame1 got %d rows", f1.NumRows())
	}
	if f1.FirstRow != f0.LastRow+2 {
		t.Fatalf("expected a one-row divider between frames, got f0.last=%d f1.first=%d", f0.LastRow, f1.FirstRow)
	}
}

func TestDisablePromptlineReclaimsRow(t *testing.T) {
	w := New(SpecialType, 24, 80)
	before := w.Frames[0].NumRows()
	w.DisablePromptline()
	after := w.Frames[0].NumRows()
	if after != before+1 {
		t.Fatalf("got before=%d after=%d", before, after)
	}
}

func TestFocusCycling(t *testing.T) {
	w := New(NormalType, 40, 80)
	w.AddFrame()
	w.AddFrame()
	if w.CurFrame(AtCurrentFrame) != 0 {
		t.Fatalf("got %d", w.CurFrame(AtCurrentFrame))
	}
	w.FocusNext()
	if w.CurFrame(AtCurrentFrame) != 1 {
		t.Fatalf("got %d", w.CurFrame(AtCurrentFrame))
	}
	w.FocusPrev()
	if w.CurFrame(AtCurrentFrame) != 0 {
		t.Fatalf("got %d", w.CurFrame(AtCurrentFrame))
	}
}

func TestDeleteFrameRedistributesBuffers(t *testing.T) {
	w := New(NormalType, 40, 80)
	w.AddFrame()
	b := buffer.New("")
	b.AtFrame = 1
	w.Frames[1].AddBuffer(b)
	w.DeleteFrame(1)
	if len(w.Frames) != 1 {
		t.Fatalf("got %d frames", len(w.Frames))
	}
	if w.Frames[0].CurBuffer() != b {
		t.Fatal("expected the deleted frame's buffer to land in frame 0")
	}
	if b.AtFrame != 0 {
		t.Fatalf("got AtFrame=%d", b.AtFrame)
	}
}

func TestFrameChangePicksVisibleBuffer(t *testing.T) {
	w := New(NormalType, 40, 80)
	b := buffer.New("")
	b.Flags |= buffer.BufIsVisible
	b.AtFrame = 0
	w.Frames[0].AddBuffer(b)
	got := w.FrameChange(0)
	if got != b {
		t.Fatal("expected FrameChange to return the visible buffer")
	}
}

func TestFrameChangeSkipsInvisibleBuffer(t *testing.T) {
	w := New(NormalType, 40, 80)
	b := buffer.New("")
	b.AtFrame = 0 // not visible
	w.Frames[0].AddBuffer(b)
	if got := w.FrameChange(0); got != nil {
		t.Fatal("expected no visible buffer to be found")
	}
}

func TestFrameNextPrevCyclesBuffers(t *testing.T) {
	f := &Frame{}
	b1, b2 := buffer.New(""), buffer.New("")
	f.AddBuffer(b1)
	f.AddBuffer(b2)
	if f.CurBuffer() != b2 {
		t.Fatal("AddBuffer should focus the newly added buffer")
	}
	f.Next()
	if f.CurBuffer() != b1 {
		t.Fatal("Next should wrap around to the first buffer")
	}
	f.Prev()
	if f.CurBuffer() != b2 {
		t.Fatal("Prev should wrap back to the last buffer")
	}
}

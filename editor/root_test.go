package editor

import (
	"testing"

	"ved/buffer"
	"ved/window"
)

func newTestRoot(n int) *Root {
	r := &Root{}
	for i := 0; i < n; i++ {
		buf := buffer.NewFromLines("", []string{"x"})
		r.editors = append(r.editors, newEditorWithBuffer(window.NormalType, 24, 80, buf))
	}
	return r
}

func TestRootFocusNextWraps(t *testing.T) {
	r := newTestRoot(3)
	r.cur = 2
	r.focusNext()
	if r.cur != 0 {
		t.Fatalf("got cur=%d, want 0", r.cur)
	}
	if r.prev != 2 {
		t.Fatalf("got prev=%d, want 2", r.prev)
	}
}

func TestRootFocusPrevWraps(t *testing.T) {
	r := newTestRoot(3)
	r.cur = 0
	r.focusPrev()
	if r.cur != 2 {
		t.Fatalf("got cur=%d, want 2", r.cur)
	}
}

func TestRootFocusPrevFocusedSwaps(t *testing.T) {
	r := newTestRoot(3)
	r.cur, r.prev = 1, 0
	r.focusPrevFocused()
	if r.cur != 0 || r.prev != 1 {
		t.Fatalf("got cur=%d prev=%d, want 0,1", r.cur, r.prev)
	}
}

func TestHandleTransitionEdExitClosesOnlyCurrent(t *testing.T) {
	r := newTestRoot(2)
	r.cur = 0
	stop := r.handleTransition(EdExit, "")
	if stop {
		t.Fatalf("should not stop with one editor remaining")
	}
	if len(r.editors) != 1 {
		t.Fatalf("got %d editors, want 1", len(r.editors))
	}
}

func TestHandleTransitionEdExitLastStops(t *testing.T) {
	r := newTestRoot(1)
	stop := r.handleTransition(EdExit, "")
	if !stop {
		t.Fatalf("expected stop once the last editor exits")
	}
	if len(r.editors) != 0 {
		t.Fatalf("expected editor list to be empty")
	}
}

func TestHandleTransitionEdExitAllStopsImmediately(t *testing.T) {
	r := newTestRoot(3)
	stop := r.handleTransition(EdExitAll, "")
	if !stop || len(r.editors) != 0 {
		t.Fatalf("expected EdExitAll to stop and clear every editor")
	}
}

func TestHandleTransitionEdNextFocuses(t *testing.T) {
	r := newTestRoot(2)
	r.cur = 0
	r.handleTransition(EdNext, "")
	if r.cur != 1 {
		t.Fatalf("got cur=%d, want 1", r.cur)
	}
}

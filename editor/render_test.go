package editor

import (
	"io"
	"testing"

	"ved/rline"
	"ved/term"
)

func TestRenderClearsFullRedrawAfterFirstPass(t *testing.T) {
	e := newTestEditor("one", "two", "three")
	video := term.NewVideo(io.Discard, 80, 24)
	e.FullRedraw = true
	e.Render(video)
	if e.FullRedraw {
		t.Fatalf("expected Render to clear FullRedraw once it has drawn a full frame")
	}
}

func TestRenderDoesNotPanicAcrossModes(t *testing.T) {
	video := term.NewVideo(io.Discard, 80, 24)
	for _, mode := range []InputMode{ModeNormal, ModeInsert, ModeVisual, ModeCommandLine, ModeSearch} {
		e := newTestEditor("some text here")
		switch mode {
		case ModeVisual:
			e.HandleKey(runeKey('v')) // drives a real normal->visual transition, populating e.visual
		case ModeCommandLine, ModeSearch:
			e.Mode = mode
			e.rl = rline.New(':', e.Win.PromptRow(), 0, e.Regs, 0)
		default:
			e.Mode = mode
		}
		e.Render(video)
	}
}

func TestModeIndicatorLabelsInsertAndVisual(t *testing.T) {
	if got := modeIndicator(ModeInsert); got != "-- INSERT --" {
		t.Fatalf("got %q", got)
	}
	if got := modeIndicator(ModeVisual); got != "-- VISUAL --" {
		t.Fatalf("got %q", got)
	}
	if got := modeIndicator(ModeNormal); got != "" {
		t.Fatalf("expected blank indicator for normal mode, got %q", got)
	}
}

func TestDividerLineFillsWidth(t *testing.T) {
	line := dividerLine(5)
	if len(line) != 5 {
		t.Fatalf("got len=%d, want 5", len(line))
	}
	for _, b := range line {
		if b != '-' {
			t.Fatalf("got byte %q, want '-'", b)
		}
	}
}

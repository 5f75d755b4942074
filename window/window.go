// Package window implements ved's window/frame geometry: a window
// partitions its rows into horizontal frames, each hosting a cycle of
// buffers (spec §4.9).
package window

import "ved/buffer"

// AtCurrentFrame is the sentinel meaning "the presently focused frame",
// restored from the original's AT_CURRENT_FRAME (__libved.h), so a caller
// can pass it anywhere a frame index is expected.
const AtCurrentFrame = -1

// Kind distinguishes a window hosting ordinary editable buffers from one
// reserved for a special buffer (messages/search-hits/scratch), restored
// from the original's VED_WIN_NORMAL_TYPE/VED_WIN_SPECIAL_TYPE naming.
type Kind int

const (
	NormalType Kind = iota
	SpecialType
)

// Frame is one horizontal strip of a window, in absolute screen
// coordinates.
type Frame struct {
	FirstRow, LastRow int
	FirstCol, LastCol int
	NumCols           int

	buffers []*buffer.Buffer
	curBuf  int
}

// NumRows returns the frame's row extent.
func (f *Frame) NumRows() int { return f.LastRow - f.FirstRow + 1 }

// CurBuffer returns the frame's focused buffer, or nil if it hosts none.
func (f *Frame) CurBuffer() *buffer.Buffer {
	if f.curBuf < 0 || f.curBuf >= len(f.buffers) {
		return nil
	}
	return f.buffers[f.curBuf]
}

// AddBuffer attaches b to the frame and focuses it.
func (f *Frame) AddBuffer(b *buffer.Buffer) {
	f.buffers = append(f.buffers, b)
	f.curBuf = len(f.buffers) - 1
}

// Buffers returns every buffer cycled through this frame, in cycle order.
func (f *Frame) Buffers() []*buffer.Buffer { return f.buffers }

// RemoveBuffer detaches b from the frame, if present, adjusting curBuf.
func (f *Frame) RemoveBuffer(b *buffer.Buffer) {
	for i, x := range f.buffers {
		if x == b {
			f.buffers = append(f.buffers[:i], f.buffers[i+1:]...)
			if f.curBuf >= len(f.buffers) {
				f.curBuf = len(f.buffers) - 1
			}
			return
		}
	}
}

// Next/Prev cycle the frame's visible buffer (rline's "bufnext"/"bufprev").
func (f *Frame) Next() {
	if len(f.buffers) == 0 {
		return
	}
	f.curBuf = (f.curBuf + 1) % len(f.buffers)
}

func (f *Frame) Prev() {
	if len(f.buffers) == 0 {
		return
	}
	f.curBuf = (f.curBuf - 1 + len(f.buffers)) % len(f.buffers)
}

// Window owns a set of frames tiling its screen rows, plus the reserved
// top/message/prompt lines (spec §4.9).
type Window struct {
	Kind Kind

	numRows, numCols int
	hasTopline       bool
	hasMsgline       bool
	hasPromptline    bool

	Frames  []*Frame
	curFram int
}

// New creates a window of the given screen extent. Reserved lines default
// to all three (top/message/prompt), matching the original's normal
// window layout; a special window (messages, scratch) typically disables
// the prompt line via DisablePromptline.
func New(kind Kind, numRows, numCols int) *Window {
	w := &Window{Kind: kind, numRows: numRows, numCols: numCols, hasTopline: true, hasMsgline: true, hasPromptline: true}
	w.Frames = []*Frame{{}}
	w.DimCalc()
	return w
}

// NumRows and NumCols report the window's screen extent.
func (w *Window) NumRows() int { return w.numRows }
func (w *Window) NumCols() int { return w.numCols }

// PromptRow returns the absolute row reserved for the rline prompt, the
// window's last row, regardless of whether a promptline is enabled (a
// caller driving rline on a special window has already chosen to do so).
func (w *Window) PromptRow() int { return w.numRows - 1 }

// MessageRow returns the absolute row reserved for the message line,
// immediately above the prompt row when both are enabled.
func (w *Window) MessageRow() int {
	if w.hasPromptline {
		return w.numRows - 2
	}
	return w.numRows - 1
}

// HasTopline, HasMsgline, HasPromptline report which reserved rows this
// window carries, for a renderer deciding what (if anything) belongs there.
func (w *Window) HasTopline() bool    { return w.hasTopline }
func (w *Window) HasMsgline() bool    { return w.hasMsgline }
func (w *Window) HasPromptline() bool { return w.hasPromptline }

// DisablePromptline turns off the reserved prompt row, used by special
// windows that never accept rline input.
func (w *Window) DisablePromptline() {
	w.hasPromptline = false
	w.DimCalc()
}

// Resize updates the window's screen extent and recomputes frame geometry.
func (w *Window) Resize(numRows, numCols int) {
	w.numRows, w.numCols = numRows, numCols
	w.DimCalc()
}

// reserved returns how many rows are claimed by the top/message/prompt
// lines, per spec §4.9 "reserved = has_topline + has_msgline + has_promptline".
func (w *Window) reserved() int {
	r := 0
	if w.hasTopline {
		r++
	}
	if w.hasMsgline {
		r++
	}
	if w.hasPromptline {
		r++
	}
	return r
}

// DimCalc recomputes every frame's absolute geometry: rows are split
// evenly among frames with one divider row between adjacent frames, the
// remainder going to frame 0 (spec §4.9 "dim_calc").
func (w *Window) DimCalc() {
	n := len(w.Frames)
	if n == 0 {
		return
	}
	dividers := n - 1
	avail := w.numRows - dividers - w.reserved()
	if avail < n {
		avail = n // degenerate screen: give every frame at least one row
	}
	rowsPerFrame := avail / n
	mod := avail % n

	row := firstContentRow(w.hasTopline)
	for i, f := range w.Frames {
		rows := rowsPerFrame
		if i == 0 {
			rows += mod
		}
		f.FirstRow = row
		f.LastRow = row + rows - 1
		f.FirstCol = 0
		f.LastCol = w.numCols - 1
		f.NumCols = w.numCols
		row = f.LastRow + 2 // +1 for the frame's own rows, +1 for the divider
	}
}

func firstContentRow(hasTopline bool) int {
	if hasTopline {
		return 1
	}
	return 0
}

// CurFrame returns the currently focused frame index, resolving
// AtCurrentFrame to w.curFram.
func (w *Window) CurFrame(n int) int {
	if n == AtCurrentFrame {
		return w.curFram
	}
	return n
}

// FocusFrame sets the focused frame, clamping to the valid range.
func (w *Window) FocusFrame(n int) {
	if n < 0 {
		n = 0
	}
	if n >= len(w.Frames) {
		n = len(w.Frames) - 1
	}
	w.curFram = n
}

// FocusNext / FocusPrev cycle frame focus (CTRL-W hjkl's up/down half,
// spec §4.9 "Frame focus cycling").
func (w *Window) FocusNext() {
	if len(w.Frames) == 0 {
		return
	}
	w.curFram = (w.curFram + 1) % len(w.Frames)
}

func (w *Window) FocusPrev() {
	if len(w.Frames) == 0 {
		return
	}
	w.curFram = (w.curFram - 1 + len(w.Frames)) % len(w.Frames)
}

// AddFrame appends a new frame, re-runs DimCalc, and reassigns each
// buffer's AtFrame/viewport to fit the new (now-shorter) geometry (spec
// §4.9 "On add_frame / delete_frame"), via reflow.
func (w *Window) AddFrame() *Frame {
	f := &Frame{}
	w.Frames = append(w.Frames, f)
	w.reflow()
	return f
}

// DeleteFrame removes frame n, redistributing its buffers into frame 0
// and re-running DimCalc.
func (w *Window) DeleteFrame(n int) {
	if n < 0 || n >= len(w.Frames) || len(w.Frames) == 1 {
		return
	}
	gone := w.Frames[n]
	w.Frames = append(w.Frames[:n], w.Frames[n+1:]...)
	for _, b := range gone.buffers {
		if b.AtFrame == n || b.AtFrame >= len(w.Frames) {
			b.AtFrame = 0
		}
		w.Frames[0].AddBuffer(b)
	}
	if w.curFram >= len(w.Frames) {
		w.curFram = len(w.Frames) - 1
	}
	w.reflow()
}

// reflow recomputes geometry after a frame count change, sets every hosted
// buffer's AtFrame (unless AtCurrentFrame) to its frame's index, and slides
// each buffer's viewport forward by however much its frame shrank so the
// cursor stays on screen (spec §4.9's shrink-on-delete viewport adjustment).
func (w *Window) reflow() {
	oldHeights := make([]int, len(w.Frames))
	for i, f := range w.Frames {
		oldHeights[i] = f.NumRows()
		for _, b := range f.buffers {
			if b.AtFrame != AtCurrentFrame {
				b.AtFrame = i
			}
		}
	}
	w.DimCalc()
	for i, f := range w.Frames {
		if i >= len(oldHeights) {
			continue
		}
		shrink := oldHeights[i] - f.NumRows()
		if shrink <= 0 {
			continue
		}
		for _, b := range f.buffers {
			if b.AtFrame != AtCurrentFrame && b.AtFrame != i {
				continue
			}
			if b.CurIdx-b.VideoFirstRow >= f.NumRows() {
				b.VideoFirstRow += shrink
				if b.VideoFirstRow > b.CurIdx {
					b.VideoFirstRow = b.CurIdx
				}
			}
		}
	}
}

// FrameChange picks the first visible buffer whose AtFrame == n and makes
// it the frame's current buffer (spec §4.9 "frame_change(n)").
func (w *Window) FrameChange(n int) *buffer.Buffer {
	n = w.CurFrame(n)
	if n < 0 || n >= len(w.Frames) {
		return nil
	}
	f := w.Frames[n]
	for i, b := range f.buffers {
		if b.Flags.Has(buffer.BufIsVisible) && b.AtFrame == n {
			f.curBuf = i
			w.FocusFrame(n)
			return b
		}
	}
	return nil
}

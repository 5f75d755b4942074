// Package editor implements ved's editor instance and multi-editor root
// (spec §4.10): the object owning one window tree, its registers, history,
// and the modal/rline dispatch loop that ties buffer, mode, search, rline
// and window together. Grounded on the teacher's App (app.go): the same
// raw-mode-enter/render/blocking-read-loop/raw-mode-exit shape, with
// riffkey's pattern router replaced by mode's flat key dispatch (riffkey
// has no source in the retrieval pack to adapt).
package editor

import (
	"time"

	"ved/buffer"
	"ved/mode"
	"ved/registers"
	"ved/rline"
	"ved/search"
	"ved/window"
)

// InputMode names which keystroke consumer currently owns the terminal
// (spec §3 "the core is always in exactly one of these modes").
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeInsert
	ModeVisual
	ModeCommandLine
	ModeSearch
)

// DefaultAutosaveInterval is how long an editor waits between edits before
// forcing a write, restored from the original's autosave default of 0
// (disabled) — callers opt in via SetAutosave (spec §5 "autosave timer").
const DefaultAutosaveInterval = 0

// Editor is one editor instance: a window of frames/buffers, shared
// registers and history, and the live modal dispatch state (spec §4.10
// "An editor owns windows, shared_state, the term, the video, the
// history, the registers...").
type Editor struct {
	Win  *window.Window
	Regs *registers.Table

	CmdHistory    *rline.History
	SearchHistory *rline.History

	// buffers indexes every open buffer by a stable name (its Fname, or a
	// synthetic "[messages]"/"[searches]"/"[scratch]" name for specials)
	// so the "buffer --bufname=" command and ednew can find them.
	buffers map[string]*buffer.Buffer

	MessagesBuf *buffer.Buffer

	Mode InputMode

	normal *mode.Normal
	insert *mode.Insert
	visual *mode.Visual
	rl     *rline.RL

	insertPendingReg bool // true right after CTRL-R in insert mode
	normalPendingReg bool // mirrors mode.Normal's own state for CTRL-R in rline (unused placeholder kept symmetrical)

	searchSess  *search.Session
	searchDir   search.Direction
	lastPattern string

	MessageLine    string
	MessageIsError bool

	AutosaveInterval time.Duration
	lastEditAt       time.Time

	FullRedraw bool // set by "redraw"; cleared by the render pass

	Quit      bool
	QuitScope mode.Scope

	// PendingEdFname carries "ednew"'s optional filename argument across
	// the EdNew transition to Root.newEditor, since EdResult itself is a
	// bare enum with no payload.
	PendingEdFname string
}

// New creates an editor instance over a freshly opened (or freshly
// created, if fname can't be read) buffer, sized to rows x cols.
func New(kind window.Kind, rows, cols int, fname string) (*Editor, error) {
	buf, err := buffer.Open(fname)
	if err != nil {
		return nil, err
	}
	return newEditorWithBuffer(kind, rows, cols, buf), nil
}

func newEditorWithBuffer(kind window.Kind, rows, cols int, buf *buffer.Buffer) *Editor {
	regs := registers.New(nil)
	win := window.New(kind, rows, cols)
	win.Frames[0].AddBuffer(buf)

	e := &Editor{
		Win:           win,
		Regs:          regs,
		CmdHistory:    rline.NewHistory(rline.MaxHistEntries),
		SearchHistory: rline.NewHistory(rline.MaxHistEntries),
		buffers:       make(map[string]*buffer.Buffer),
		MessagesBuf:   buffer.NewFromLines("[messages]", nil),
	}
	e.MessagesBuf.Flags |= buffer.BufIsSpecial
	e.registerBuffer(buf)
	e.normal = mode.NewNormal(buf, regs)
	return e
}

func (e *Editor) bufferKey(b *buffer.Buffer) string {
	if b.Fname != "" {
		return b.Fname
	}
	return b.Basename()
}

func (e *Editor) registerBuffer(b *buffer.Buffer) {
	e.buffers[e.bufferKey(b)] = b
}

// CurFrame returns the window's presently focused frame.
func (e *Editor) CurFrame() *window.Frame {
	return e.Win.Frames[e.Win.CurFrame(window.AtCurrentFrame)]
}

// CurBuffer returns the focused frame's current buffer.
func (e *Editor) CurBuffer() *buffer.Buffer {
	return e.CurFrame().CurBuffer()
}

// SetMessage posts a banner to the message line (spec §7: every error
// lands here, colored red, and never aborts the editor).
func (e *Editor) SetMessage(msg string, isError bool) {
	e.MessageLine = msg
	e.MessageIsError = isError
	if isError {
		e.AppendMessage(msg)
	}
}

// AppendMessage records msg as a new row in the special [messages] buffer
// (spec §7 "buffered into the special [messages] buffer via
// append_message").
func (e *Editor) AppendMessage(msg string) {
	e.MessagesBuf.Rows = append(e.MessagesBuf.Rows, buffer.NewRow(msg))
}

// SetAutosave configures the autosave timer (spec §5).
func (e *Editor) SetAutosave(d time.Duration) { e.AutosaveInterval = d }

// CheckAutosave fires a forced write if the autosave interval has elapsed
// since the last edit, resolving the "autosave fires between keystrokes
// only" Open Question decision (DESIGN.md): called once per main-loop
// iteration, after a key is fully handled, never mid-codepoint.
func (e *Editor) CheckAutosave(now time.Time) {
	if e.AutosaveInterval <= 0 {
		return
	}
	buf := e.CurBuffer()
	if !buf.Modified || buf.Fname == "" {
		return
	}
	if now.Sub(e.lastEditAt) < e.AutosaveInterval {
		return
	}
	if err := buf.Write(); err != nil {
		e.SetMessage("autosave: "+err.Error(), true)
		return
	}
	e.lastEditAt = now
}

// NoteEdit records that an edit just happened, for the autosave clock.
func (e *Editor) NoteEdit(now time.Time) { e.lastEditAt = now }

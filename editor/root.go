package editor

import (
	"context"
	"os"

	"ved/term"
	"ved/window"
)

// Root owns every open editor instance and the terminal the active one
// draws into (spec §4.10 "Root owns ordered editor list with current +
// previous-focused index"). Grounded on the teacher's App owning a single
// Screen/riffkey.Router pair, generalized to a list since ved's root can
// hold more than one editor ("ednew"/"ednext"/"edprev").
type Root struct {
	editors []*Editor
	cur     int
	prev    int

	raw   *term.Raw
	video *term.Video

	in, out *os.File
}

// NewRoot opens the first editor over fname, sized to the terminal's
// current dimensions.
func NewRoot(in, out *os.File, fname string) (*Root, error) {
	raw := term.NewRaw(in)
	sz, err := raw.Size()
	if err != nil {
		return nil, err
	}
	ed, err := New(window.NormalType, sz.Rows, sz.Cols, fname)
	if err != nil {
		return nil, err
	}
	return &Root{
		editors: []*Editor{ed},
		raw:     raw,
		video:   term.NewVideo(out, sz.Cols, sz.Rows),
		in:      in,
		out:     out,
	}, nil
}

// Current returns the presently focused editor.
func (r *Root) Current() *Editor { return r.editors[r.cur] }

// Run drives the root's editor-switching loop (spec §4.10's EdResult
// transitions): it runs the focused editor's event loop until that editor
// hands back a transition, then acts on it — spawning/closing/refocusing
// editors — until every editor has exited.
func (r *Root) Run(ctx context.Context, defaultFname string) error {
	for len(r.editors) > 0 {
		ed := r.Current()
		res, err := ed.Run(ctx, r.raw, r.video, r.in, r.out)
		if err != nil {
			return err
		}
		fname := defaultFname
		if res == EdNew && ed.PendingEdFname != "" {
			fname = ed.PendingEdFname
		}
		if stop := r.handleTransition(res, fname); stop {
			return nil
		}
	}
	return nil
}

// handleTransition applies one EdResult against the root's editor list,
// reporting whether the whole root should now stop.
func (r *Root) handleTransition(res EdResult, defaultFname string) bool {
	switch res {
	case EdExit:
		r.closeCurrent()
		return len(r.editors) == 0
	case EdExitAll, EdExitAllForce:
		r.editors = nil
		return true
	case EdNew:
		r.newEditor(defaultFname)
	case EdNext:
		r.focusNext()
	case EdPrev:
		r.focusPrev()
	case EdPrevFocused:
		r.focusPrevFocused()
	case EdSuspended:
		// suspend-to-shell has no core-level effect beyond returning here;
		// a caller wiring SIGTSTP would resume the same loop iteration.
	}
	return false
}

func (r *Root) closeCurrent() {
	i := r.cur
	r.editors = append(r.editors[:i], r.editors[i+1:]...)
	if len(r.editors) == 0 {
		return
	}
	if r.cur >= len(r.editors) {
		r.cur = len(r.editors) - 1
	}
	r.prev = r.cur
}

func (r *Root) newEditor(fname string) {
	sz, err := r.raw.Size()
	if err != nil {
		return
	}
	ed, err := New(window.NormalType, sz.Rows, sz.Cols, fname)
	if err != nil {
		return
	}
	r.editors = append(r.editors, ed)
	r.prev = r.cur
	r.cur = len(r.editors) - 1
}

func (r *Root) focusNext() {
	r.prev = r.cur
	r.cur = (r.cur + 1) % len(r.editors)
}

func (r *Root) focusPrev() {
	r.prev = r.cur
	r.cur = (r.cur - 1 + len(r.editors)) % len(r.editors)
}

func (r *Root) focusPrevFocused() {
	r.cur, r.prev = r.prev, r.cur
}

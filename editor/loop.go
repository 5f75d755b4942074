package editor

import (
	"context"
	"os"
	"time"

	"ved/mode"
	"ved/rline"
	"ved/term"
)

// Run drives the editor's blocking-read event loop (spec §5 "the only
// suspension point is read_key()"), grounded on the teacher's App.run():
// enter raw mode, watch for resize, render, then loop reading one key at a
// time until a quit transition bubbles up. Unlike the teacher, resize
// notifications are only drained once per loop iteration — between fully
// handled keystrokes, never concurrently with one — since nothing else here
// runs on another goroutine touching buffer or video state.
func (e *Editor) Run(ctx context.Context, raw *term.Raw, video *term.Video, in, out *os.File) (EdResult, error) {
	if err := raw.Enter(out); err != nil {
		return EdNone, err
	}
	defer raw.Exit(out)

	e.FullRedraw = true
	e.Render(video)

	for {
		select {
		case sz := <-raw.ResizeChan():
			e.Win.Resize(sz.Rows, sz.Cols)
			video.Resize(sz.Cols, sz.Rows)
			e.FullRedraw = true
		default:
		}

		k, err := raw.ReadKey(ctx)
		if err != nil {
			return EdNone, err
		}

		res := e.HandleKey(k)
		e.CheckAutosave(now())

		e.Render(video)

		switch res {
		case EdExit, EdExitAll, EdExitAllForce, EdNew, EdNext, EdPrev, EdPrevFocused, EdSuspended:
			return res, nil
		}

		if ctx.Err() != nil {
			return EdNone, ctx.Err()
		}
	}
}

// now is a seam so tests can stub the clock; production always uses the
// wall clock (spec §5 "wall-clock interval").
var now = time.Now

// HandleKey routes one decoded key to whichever mode currently owns the
// terminal and applies the resulting mode.Result (spec §3's mode switch,
// §4.10's EdResult bridge).
func (e *Editor) HandleKey(k term.Key) EdResult {
	switch e.Mode {
	case ModeInsert:
		return e.handleInsertKey(k)
	case ModeVisual:
		return e.handleVisualKey(k)
	case ModeCommandLine:
		return e.handleCommandLineKey(k)
	case ModeSearch:
		return e.handleSearchKey(k)
	default:
		return e.handleNormalKey(k)
	}
}

func (e *Editor) handleNormalKey(k term.Key) EdResult {
	if e.normalPendingReg {
		e.normalPendingReg = false
	}
	res := e.normal.Key(k)
	return e.applyResult(res)
}

func (e *Editor) handleInsertKey(k term.Key) EdResult {
	if e.insertPendingReg {
		e.insertPendingReg = false
		if k.Kind == term.KeyRune {
			e.insert.PutRegister(k.Rune)
		}
		return EdNone
	}
	res, done := e.insert.Key(k)
	if res.Kind == mode.NeedsMoreInput {
		e.insertPendingReg = true
		return EdNone
	}
	if done {
		e.Mode = ModeNormal
		e.NoteEdit(now())
	}
	return EdNone
}

func (e *Editor) handleVisualKey(k term.Key) EdResult {
	res, done := e.visual.Key(k)
	r := e.applyResult(res)
	// applyResult already switched Mode for a transition result (e.g. "c"
	// exits visual straight into insert); only fall back to normal mode
	// when the visual session ended without one.
	if done && res.Kind != mode.EnterInsert {
		e.Mode = ModeNormal
	}
	return r
}

func (e *Editor) handleCommandLineKey(k term.Key) EdResult {
	done, ok := e.rl.Key(k)
	if !done {
		return EdNone
	}
	e.Mode = ModeNormal
	if !ok {
		return EdNone
	}
	line := e.rl.Line()
	e.CmdHistory.Push(line)
	return e.Execute(line)
}

func (e *Editor) handleSearchKey(k term.Key) EdResult {
	done, ok := e.rl.Key(k)
	if !done {
		return EdNone
	}
	if !ok {
		e.Mode = ModeNormal
		return EdNone
	}
	e.RunSearch(e.rl.Line())
	return EdNone
}

// applyResult carries out a mode.Result's side effects against the editor's
// own mode/rline/search state, translating it into an EdResult for Run's
// loop to examine (spec §4.10's transition set maps onto mode.Scope here).
func (e *Editor) applyResult(res mode.Result) EdResult {
	switch res.Kind {
	case mode.EnterInsert:
		e.insert = mode.NewInsert(e.CurBuffer(), e.Regs)
		e.Mode = ModeInsert
	case mode.EnterVisual:
		e.visual = mode.NewVisual(e.CurBuffer(), e.Regs, res.VisualKind)
		e.Mode = ModeVisual
	case mode.EnterCommandLine:
		e.rl = rline.New(':', e.Win.PromptRow(), 0, e.Regs, rline.OptTabCompletion|rline.OptHistoryCompletion)
		if res.Prefill != "" {
			e.rl.SetLine(res.Prefill)
		}
		e.Mode = ModeCommandLine
	case mode.EnterSearch:
		e.BeginSearch(res.SearchDir, res.Prefill, res.AutoSubmit)
	case mode.Exit:
		return e.exitResult(res.Scope)
	case mode.Error:
		if res.Err != nil {
			e.SetMessage(res.Err.Error(), true)
		}
	}
	return EdNone
}

func (e *Editor) exitResult(scope mode.Scope) EdResult {
	switch scope {
	case mode.ScopeAll:
		return EdExitAll
	case mode.ScopeEditor, mode.ScopeWindow:
		return EdExit
	default:
		return EdNone
	}
}

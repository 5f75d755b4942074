package term

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Raw owns a tty file descriptor's raw-mode lifecycle and feeds decoded
// keys to the editor core (spec §3 Term, §5 "the only suspension point is
// read_key()"). Grounded on the teacher's Screen.EnterRawMode/ExitRawMode
// (screen.go), with golang.org/x/term doing the termios flip instead of
// direct unix.Termios manipulation — x/term was a declared-but-unused pack
// dependency (only exercised by the teacher's cmd/bench), this is where it
// earns its keep.
type Raw struct {
	fd       int
	in       *os.File
	oldState *term.State

	resizeCh chan Size
	sigCh    chan os.Signal

	decoder *KeyDecoder
}

// Size is a terminal's column/row dimensions.
type Size struct{ Cols, Rows int }

// NewRaw wraps the given input file (normally os.Stdin).
func NewRaw(in *os.File) *Raw {
	return &Raw{
		fd:       int(in.Fd()),
		in:       in,
		resizeCh: make(chan Size, 1),
		sigCh:    make(chan os.Signal, 1),
		decoder:  NewKeyDecoder(in),
	}
}

// Enter puts the terminal into raw mode, enters the alternate screen, hides
// the cursor, and starts watching SIGWINCH (spec §6 escape table; §5 "the
// terminal setup layer is expected to either ignore [SIGINT] or translate
// it").
func (r *Raw) Enter(out *os.File) error {
	st, err := term.MakeRaw(r.fd)
	if err != nil {
		return fmt.Errorf("term: enter raw mode: %w", err)
	}
	r.oldState = st

	out.WriteString(SeqAltScreenOn)
	out.WriteString(SeqClearScreen)
	out.WriteString(SeqMoveTo(1, 1))
	out.WriteString(SeqHideCursor)

	signal.Notify(r.sigCh, syscall.SIGWINCH)
	go r.watchResize()

	return nil
}

// Exit restores the terminal to its pre-Enter state.
func (r *Raw) Exit(out *os.File) error {
	out.WriteString(SeqShowCursor)
	out.WriteString(SeqAltScreenOff)
	signal.Stop(r.sigCh)
	if r.oldState != nil {
		if err := term.Restore(r.fd, r.oldState); err != nil {
			return fmt.Errorf("term: restore: %w", err)
		}
	}
	return nil
}

// Size returns the current terminal dimensions via x/sys/unix ioctl
// (x/term has no direct win-change notification, so the resize *signal*
// path still goes through unix.IoctlGetWinsize — matching screen.go's
// getTerminalSize).
func (r *Raw) Size() (Size, error) {
	ws, err := unix.IoctlGetWinsize(r.fd, unix.TIOCGWINSZ)
	if err != nil {
		return Size{}, err
	}
	return Size{Cols: int(ws.Col), Rows: int(ws.Row)}, nil
}

// ResizeChan delivers a Size every time the terminal is resized.
func (r *Raw) ResizeChan() <-chan Size { return r.resizeCh }

func (r *Raw) watchResize() {
	var last Size
	for range r.sigCh {
		sz, err := r.Size()
		if err != nil || sz == last {
			continue
		}
		last = sz
		select {
		case r.resizeCh <- sz:
		default:
		}
	}
}

// ReadKey blocks until one logical keypress (possibly a multi-byte escape
// sequence or UTF-8 rune) is available, implementing the read_key()
// interface spec §1/§5 assume the core consumes. ctx is checked before the
// read starts; cancellation does not interrupt a read already in progress.
func (r *Raw) ReadKey(ctx context.Context) (Key, error) {
	return r.decoder.Next(ctx)
}

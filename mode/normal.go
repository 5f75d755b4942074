package mode

import (
	"ved/buffer"
	"ved/registers"
	"ved/search"
	"ved/term"
	"ved/ustring"
)

// MaxCountDigits bounds the count prefix, restored from the original's
// MAX_COUNT_DIGITS.
const MaxCountDigits = 8

// operator names a pending two-keystroke operator awaiting its motion or a
// doubled self-reference (spec §4.3 "d"/"c"/"y"/">"/"<").
type operator int

const (
	opNone operator = iota
	opDelete
	opChange
	opYank
	opIndent
	opDedent
)

// Normal is the normal-mode dispatcher for one buffer. It owns the
// transient count-prefix/register-prefix/operator-pending state that spans
// multiple keystrokes.
type Normal struct {
	buf  *buffer.Buffer
	regs *registers.Table

	count       int
	hasCount    bool
	pendReg     rune
	havePendReg bool
	pendOp      operator
	lastG       bool // true right after a bare 'g', awaiting the second key of g-prefixed commands
	pendMark    bool // true right after 'm', awaiting the mark name
}

// NewNormal creates a normal-mode dispatcher over buf, sharing regs with
// the rest of the editor.
func NewNormal(buf *buffer.Buffer, regs *registers.Table) *Normal {
	return &Normal{buf: buf, regs: regs}
}

func (n *Normal) resetPrefixes() {
	n.count, n.hasCount = 0, false
	n.pendReg, n.havePendReg = 0, false
	n.pendOp = opNone
	n.lastG = false
	n.pendMark = false
}

func (n *Normal) effectiveCount() int {
	if !n.hasCount || n.count == 0 {
		return 1
	}
	return n.count
}

func (n *Normal) effectiveReg() rune {
	if n.havePendReg {
		return n.pendReg
	}
	return registers.Unnamed
}

// Key dispatches one keypress. It takes no lock (spec §5: the core is
// single-threaded between read_key() calls).
func (n *Normal) Key(k term.Key) Result {
	// Register prefix: "x selects register x for the next operation.
	if k.Kind == term.KeyRune && k.Rune == '"' && !n.havePendReg {
		n.havePendReg = true
		return needsMore()
	}
	if n.havePendReg && n.pendReg == 0 && k.Kind == term.KeyRune {
		n.pendReg = k.Rune
		return needsMore()
	}

	// Count prefix: leading nonzero digit starts a count; more digits
	// extend it, bounded at MaxCountDigits (original's MAX_COUNT_DIGITS).
	if k.Kind == term.KeyRune && k.Rune >= '1' && k.Rune <= '9' && !n.hasCount {
		n.hasCount = true
		n.count = int(k.Rune - '0')
		return needsMore()
	}
	if n.hasCount && k.Kind == term.KeyRune && k.Rune >= '0' && k.Rune <= '9' {
		if n.count < pow10(MaxCountDigits-1) {
			n.count = n.count*10 + int(k.Rune-'0')
		}
		return needsMore()
	}

	if n.pendMark {
		n.pendMark = false
		defer n.resetPrefixes()
		if k.Kind != term.KeyRune {
			return nothing()
		}
		if !n.buf.SetMark(k.Rune) {
			return nothing()
		}
		return handled()
	}

	if n.lastG {
		n.lastG = false
		return n.gPrefixed(k)
	}

	if n.pendOp != opNone {
		return n.operatorMotion(k)
	}

	return n.dispatch(k)
}

// wordAtCursor extracts the word at/after the cursor for "*"/"#".
func (n *Normal) wordAtCursor() string {
	return search.CurWord(n.buf.RowBytes(n.buf.CurIdx), n.buf.ColIdx)
}

func pow10(n int) int {
	v := 1
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}

func (n *Normal) dispatch(k term.Key) Result {
	count := n.effectiveCount()
	reg := n.effectiveReg()

	if k.Kind == term.KeyCtrl && k.Rune == 'v' {
		n.resetPrefixes()
		return Result{Kind: EnterVisual, VisualKind: VisualBlock}
	}

	if k.Kind == term.KeyCtrl && (k.Rune == 'a' || k.Rune == 'x') {
		delta := count
		if k.Rune == 'x' {
			delta = -count
		}
		n.buf.IncDecChar(delta)
		n.resetPrefixes()
		return handled()
	}

	if k.Kind != term.KeyRune {
		r := n.dispatchSpecial(k, count)
		n.resetPrefixes()
		return r
	}

	switch k.Rune {
	case 'h':
		repeat(count, n.buf.Left)
	case 'l':
		repeat(count, n.buf.Right)
	case 'j':
		repeat(count, n.buf.Down)
	case 'k':
		repeat(count, n.buf.Up)
	case '0':
		n.buf.Bol()
	case '$':
		n.buf.Eol()
	case 'g':
		n.lastG = true
		return needsMore()
	case 'G':
		if n.hasCount {
			n.buf.GotoLineNr(count)
		} else {
			n.buf.Eof()
		}
	case 'x':
		n.buf.DeleteChar(n.regs, reg)
	case 'D':
		n.buf.DeleteEol(n.regs, reg)
	case 'J':
		repeat(count, n.buf.Join)
	case 'p':
		n.buf.Put(n.regs, reg, true)
	case 'P':
		n.buf.Put(n.regs, reg, false)
	case 'u':
		n.buf.ApplyUndo()
	case 'i':
		n.resetPrefixes()
		return Result{Kind: EnterInsert}
	case 'a':
		n.buf.Right()
		n.resetPrefixes()
		return Result{Kind: EnterInsert}
	case 'o':
		n.buf.Eol()
		n.buf.InsertNewLine(n.buf.ColIdx + 1)
		n.resetPrefixes()
		return Result{Kind: EnterInsert}
	case 'O':
		n.buf.Bol()
		n.buf.InsertNewLine(0)
		n.buf.Up()
		n.resetPrefixes()
		return Result{Kind: EnterInsert}
	case 'd':
		n.pendOp = opDelete
		return needsMore()
	case 'c':
		n.pendOp = opChange
		return needsMore()
	case 'y':
		n.pendOp = opYank
		return needsMore()
	case '>':
		n.pendOp = opIndent
		return needsMore()
	case '<':
		n.pendOp = opDedent
		return needsMore()
	case 'm':
		n.pendMark = true
		return needsMore()
	case ':':
		n.resetPrefixes()
		return Result{Kind: EnterCommandLine}
	case '/':
		n.resetPrefixes()
		return Result{Kind: EnterSearch, SearchDir: search.Forward}
	case '*':
		n.resetPrefixes()
		return Result{Kind: EnterSearch, Prefill: n.wordAtCursor(), AutoSubmit: true, SearchDir: search.Forward}
	case '#':
		n.resetPrefixes()
		return Result{Kind: EnterSearch, Prefill: n.wordAtCursor(), AutoSubmit: true, SearchDir: search.Backward}
	case 'v':
		n.resetPrefixes()
		return Result{Kind: EnterVisual, VisualKind: VisualChar}
	case 'V':
		n.resetPrefixes()
		return Result{Kind: EnterVisual, VisualKind: VisualLine}
	case '~':
		repeat(count, n.buf.ToggleCaseChar)
	default:
		n.resetPrefixes()
		return nothing()
	}
	n.resetPrefixes()
	return handled()
}

func (n *Normal) dispatchSpecial(k term.Key, count int) Result {
	switch k.Kind {
	case term.KeyArrowLeft:
		repeat(count, n.buf.Left)
	case term.KeyArrowRight:
		repeat(count, n.buf.Right)
	case term.KeyArrowUp:
		repeat(count, n.buf.Up)
	case term.KeyArrowDown:
		repeat(count, n.buf.Down)
	case term.KeyHome:
		n.buf.Bol()
	case term.KeyEnd:
		n.buf.Eol()
	case term.KeyPageUp:
		n.buf.PageUp(20)
	case term.KeyPageDown:
		n.buf.PageDown(20)
	case term.KeyEscape:
		return handled()
	default:
		return nothing()
	}
	return handled()
}

func (n *Normal) gPrefixed(k term.Key) Result {
	defer n.resetPrefixes()
	if k.Kind != term.KeyRune {
		return nothing()
	}
	switch k.Rune {
	case 'g':
		n.buf.Bof()
	case 'u':
		n.buf.ChangeCase(ustring.ToLower)
	case 'U':
		n.buf.ChangeCase(ustring.ToUpper)
	case '~':
		n.buf.ChangeCase(ustring.SwapCase)
	default:
		return nothing()
	}
	return handled()
}

// operatorMotion completes a pending operator with its doubled form ("dd",
// "cc", "yy", ">>", "<<") or, for d and c only, the "w" and "$" motions.
// Any other key cancels the pending operator and returns Nothing; no other
// motion is combined with an operator.
func (n *Normal) operatorMotion(k term.Key) Result {
	op := n.pendOp
	reg := n.effectiveReg()
	defer n.resetPrefixes()

	if k.Kind == term.KeyRune {
		switch {
		case op == opDelete && k.Rune == 'd':
			n.buf.DeleteLine(n.regs, reg)
			return handled()
		case op == opYank && k.Rune == 'y':
			n.buf.Yank(n.regs, reg)
			return handled()
		case op == opIndent && k.Rune == '>':
			n.buf.IndentLine(n.effectiveCount() * n.buf.ShiftWidth)
			return handled()
		case op == opDedent && k.Rune == '<':
			n.buf.IndentLine(-(n.effectiveCount() * n.buf.ShiftWidth))
			return handled()
		case op == opDelete && k.Rune == 'w':
			n.buf.DeleteWord(n.regs, reg)
			return handled()
		case op == opDelete && k.Rune == '$':
			n.buf.DeleteEol(n.regs, reg)
			return handled()
		case op == opChange && (k.Rune == 'w' || k.Rune == '$'):
			if k.Rune == 'w' {
				n.buf.DeleteWord(n.regs, reg)
			} else {
				n.buf.DeleteEol(n.regs, reg)
			}
			return Result{Kind: EnterInsert}
		case op == opChange && k.Rune == 'c':
			n.buf.ChangeLine(n.regs, reg)
			return Result{Kind: EnterInsert}
		}
	}
	return nothing()
}

func repeat(n int, fn func() buffer.Result) {
	for i := 0; i < n; i++ {
		if fn() != buffer.Done {
			return
		}
	}
}

package mode

import (
	"ved/buffer"
	"ved/registers"
	"ved/term"
)

// Insert drives one buffer.InsertSession across the keystrokes typed while
// in insert mode, translating decoded terminal keys into the session's
// primitive operations (spec §4.2).
type Insert struct {
	buf     *buffer.Buffer
	regs    *registers.Table
	session *buffer.InsertSession
}

// NewInsert opens an insert session at the buffer's current cursor.
func NewInsert(buf *buffer.Buffer, regs *registers.Table) *Insert {
	return &Insert{buf: buf, regs: regs, session: buf.BeginInsert()}
}

// Key dispatches one keypress. The bool return is true once Escape closes
// the session and the caller should return to normal mode.
func (ins *Insert) Key(k term.Key) (Result, bool) {
	switch k.Kind {
	case term.KeyEscape:
		ins.session.End()
		if ins.buf.ColIdx > 0 {
			ins.buf.Left()
		}
		return handled(), true
	case term.KeyEnter:
		ins.buf.InsertNewLine(ins.buf.ColIdx)
		return handled(), false
	case term.KeyBackspace:
		ins.session.Backspace()
		return handled(), false
	case term.KeyTab:
		ins.session.Tab()
		return handled(), false
	case term.KeyArrowLeft:
		ins.buf.Left()
		return handled(), false
	case term.KeyArrowRight:
		ins.buf.Right()
		return handled(), false
	case term.KeyArrowUp:
		ins.buf.Up()
		return handled(), false
	case term.KeyArrowDown:
		ins.buf.Down()
		return handled(), false
	case term.KeyHome:
		ins.buf.Bol()
		return handled(), false
	case term.KeyEnd:
		ins.buf.Eol()
		return handled(), false
	case term.KeyDelete:
		ins.buf.DeleteChar(ins.regs, registers.Unnamed)
		return handled(), false
	case term.KeyCtrl:
		switch k.Rune {
		case 'w':
			ins.session.CtrlW()
		case 'u':
			ins.session.CtrlU()
		case 'r':
			return needsMore(), false // caller reads one more key naming the register
		default:
			return nothing(), false
		}
		return handled(), false
	case term.KeyRune:
		ins.session.InsertRune(k.Rune)
		return handled(), false
	}
	return nothing(), false
}

// PutRegister completes a pending CTRL-R by inserting reg's content.
func (ins *Insert) PutRegister(reg rune) {
	ins.session.CtrlR(ins.regs, reg)
}

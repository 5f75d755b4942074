package buffer

import "ved/undo"

// applyAct performs the row mutation an undo.Act describes, restoring the
// cursor to the position it recorded. It returns the Act needed to reverse
// this application, so Undo/Redo can swap an Action's acts in place for the
// opposite direction.
func (b *Buffer) applyAct(a undo.Act) undo.Act {
	var priorBytes []byte
	switch a.Kind {
	case undo.InsertLine:
		newRows := make([]*Row, 0, len(b.Rows)+1)
		newRows = append(newRows, b.Rows[:a.Row]...)
		newRows = append(newRows, &Row{Data: append([]byte(nil), a.Bytes...)})
		newRows = append(newRows, b.Rows[a.Row:]...)
		b.Rows = newRows
	case undo.DeleteLine:
		if a.Row >= 0 && a.Row < len(b.Rows) {
			priorBytes = b.Rows[a.Row].Data
			b.Rows = append(b.Rows[:a.Row], b.Rows[a.Row+1:]...)
		}
		if len(b.Rows) == 0 {
			b.Rows = []*Row{NewRow("")}
		}
	case undo.ReplaceLine:
		if a.Row >= 0 && a.Row < len(b.Rows) {
			priorBytes = b.Rows[a.Row].Data
			b.Rows[a.Row].Data = append([]byte(nil), a.Bytes...)
		}
	}
	b.CurIdx = a.Cursor.RowIdx
	b.ColIdx = a.Cursor.ColIdx
	b.RowPos = a.Cursor.RowPos
	b.ColPos = a.Cursor.ColPos
	b.VideoFirstRow = a.Cursor.VideoFirstRow
	if b.CurIdx >= len(b.Rows) {
		b.CurIdx = len(b.Rows) - 1
	}
	return a.Reverse(priorBytes)
}

// ApplyUndo pops and applies the most recent Action, pushing its inverse
// onto the redo side so ApplyRedo can restore it. Reports NothingToDo if
// there is no history.
func (b *Buffer) ApplyUndo() Result {
	a, ok := b.UndoStack.Undo()
	if !ok {
		return NothingToDo
	}
	inverse := make(undo.Action, len(a))
	for i := len(a) - 1; i >= 0; i-- {
		act := a[i]
		if act.Kind != undo.ReplaceLine {
			// Insert/Delete acts record the edit itself; undo applies the opposite.
			act = act.Reverse(nil)
		}
		inverse[len(a)-1-i] = b.applyAct(act)
	}
	b.redoPush(inverse)
	b.markModified()
	return Done
}

// ApplyRedo re-applies the most recently undone Action.
func (b *Buffer) ApplyRedo() Result {
	a, ok := b.redoPop()
	if !ok {
		return NothingToDo
	}
	for i := len(a) - 1; i >= 0; i-- {
		b.applyAct(a[i])
	}
	b.markModified()
	return Done
}

// redoPush/redoPop give the buffer its own small redo side-stack, since
// undo.Stack's built-in Redo only replays what Undo stepped back over and
// here we need to stash freshly computed inverses from Undo_ instead.
func (b *Buffer) redoPush(a undo.Action) {
	b.redoStack = append(b.redoStack, a)
}

func (b *Buffer) redoPop() (undo.Action, bool) {
	if len(b.redoStack) == 0 {
		return nil, false
	}
	a := b.redoStack[len(b.redoStack)-1]
	b.redoStack = b.redoStack[:len(b.redoStack)-1]
	return a, true
}

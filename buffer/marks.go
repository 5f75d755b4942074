package buffer

// markIndex maps a mark-name rune to its slot in Marks, mirroring the
// original's MARKS string ("`abcdghjklqwertyuiopzxcvbnm1234567890") with
// backtick as the implicit "last position" mark at index 0.
const markNames = "`abcdghjklqwertyuiopzxcvbnm1234567890"

func markIndex(name rune) (int, bool) {
	for i, r := range markNames {
		if r == name {
			return i, true
		}
	}
	return 0, false
}

// SetMark records the cursor's current position under name (spec §4.1 "m").
func (b *Buffer) SetMark(name rune) bool {
	idx, ok := markIndex(name)
	if !ok {
		return false
	}
	b.Marks[idx] = Mark{Set: true, RowIdx: b.CurIdx, ColIdx: b.ColIdx}
	return true
}

// GotoMark moves the cursor to a previously set mark (spec §4.1 "`"/"'").
func (b *Buffer) GotoMark(name rune) Result {
	idx, ok := markIndex(name)
	if !ok || !b.Marks[idx].Set {
		return NothingToDo
	}
	m := b.Marks[idx]
	if m.RowIdx >= len(b.Rows) {
		m.RowIdx = len(b.Rows) - 1
	}
	b.recordJump()
	b.CurIdx, b.ColIdx = m.RowIdx, m.ColIdx
	return Done
}

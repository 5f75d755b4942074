package ustring

// Ustring is an ordered list of codepoints decoded from a row's bytes,
// starting at some byte offset (spec §4.7 row-rendering pipeline step 1).
type Ustring []Codepoint

// Decode walks row[fromByte:] decoding one codepoint at a time until the
// row is exhausted. It does not truncate to a column budget; callers that
// need a bounded render (spec §4.7 step 2) use TakeColumns.
func Decode(row []byte, fromByte int) Ustring {
	if fromByte < 0 {
		fromByte = 0
	}
	if fromByte > len(row) {
		fromByte = len(row)
	}
	var out Ustring
	b := row[fromByte:]
	at := fromByte
	for len(b) > 0 {
		cp := DecodeCodepoint(b, at)
		out = append(out, cp)
		b = b[len(cp.Bytes):]
		at += len(cp.Bytes)
	}
	return out
}

// Len returns the number of codepoints.
func (u Ustring) Len() int { return len(u) }

// Width returns the total display width of the codepoints, expanding any
// tab to tabwidth columns (spec §3: "tabs expand to N spaces for display
// only").
func (u Ustring) Width(tabwidth int) int {
	w := 0
	for _, cp := range u {
		if cp.IsTab() {
			w += tabwidth
		} else {
			w += cp.Width
		}
	}
	return w
}

// TakeColumns returns the prefix of u whose expanded display width is at
// most maxCols, and the display width actually consumed. This implements
// spec §4.7 step 2 ("walk codepoints until num_cols display columns are
// filled").
func (u Ustring) TakeColumns(maxCols, tabwidth int) (Ustring, int) {
	w := 0
	for i, cp := range u {
		cw := cp.Width
		if cp.IsTab() {
			cw = tabwidth
		}
		if w+cw > maxCols {
			return u[:i], w
		}
		w += cw
	}
	return u, w
}

// Bytes concatenates the codepoints' byte encodings back into a single
// slice, expanding tabs to literal spaces of width tabwidth. This is used
// to build the truncated, display-ready line that is rendered (spec §4.7
// step 3).
func (u Ustring) Bytes(tabwidth int) []byte {
	out := make([]byte, 0, len(u)*2)
	for _, cp := range u {
		if cp.IsTab() {
			for i := 0; i < tabwidth; i++ {
				out = append(out, ' ')
			}
			continue
		}
		out = append(out, cp.Bytes...)
	}
	return out
}

// ByteOffsetForWidth returns the byte offset (within the originating row,
// as Codepoint.ByteAt) of the codepoint at display column col, expanding tabs by tabwidth. If
// col falls inside a wide codepoint or a tab, it returns the start of that
// codepoint (columns never split a codepoint, spec §3 invariant 1).
func (u Ustring) ByteOffsetForWidth(col, tabwidth int) int {
	w := 0
	for _, cp := range u {
		cw := cp.Width
		if cp.IsTab() {
			cw = tabwidth
		}
		if col < w+cw {
			return cp.ByteAt
		}
		w += cw
	}
	if len(u) == 0 {
		return 0
	}
	last := u[len(u)-1]
	return last.ByteAt + len(last.Bytes)
}

// WidthForByteOffset returns the display column of the codepoint starting
// at byteOffset (within the originating row, as Codepoint.ByteAt),
// expanding tabs by tabwidth.
func (u Ustring) WidthForByteOffset(byteOffset, tabwidth int) int {
	w := 0
	for _, cp := range u {
		if cp.ByteAt >= byteOffset {
			return w
		}
		if cp.IsTab() {
			w += tabwidth
		} else {
			w += cp.Width
		}
	}
	return w
}

// NthCodepointByteOffset returns the byte offset of the nth codepoint
// (0-based) in row, or len(row) if n is beyond the end. Used by the
// vertical-motion column-preservation heuristic (spec §4.1).
func NthCodepointByteOffset(row []byte, n int) int {
	if n <= 0 {
		return 0
	}
	u := Decode(row, 0)
	if n >= len(u) {
		return len(row)
	}
	return u[n].ByteAt
}

// CodepointIndexForByteOffset returns how many whole codepoints precede
// byteOffset in row — the "nth codepoint column" spec §4.1 preserves across
// up/down motion.
func CodepointIndexForByteOffset(row []byte, byteOffset int) int {
	u := Decode(row, 0)
	for i, cp := range u {
		if cp.ByteAt >= byteOffset {
			return i
		}
	}
	return len(u)
}

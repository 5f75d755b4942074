// Package buffer implements ved's text buffer: rows of bytes, the cursor,
// motions, editing primitives, marks, jumps and undo/redo wiring (spec §3
// Buffer, §4.1, §4.2). Grounded on the original libved's buf_t/row_t types
// (original_source/src/__libved.h) and, for the display-grid plumbing it
// replaces, the teacher's buffer.go (kungfusheep-glyph), now reworked
// around the ustring codepoint model instead of a styled-cell grid.
package buffer

// Row is one line of text, stored as raw bytes (not runes) so byte offsets
// used by search/substitute/registers stay stable; codepoint-aware
// operations decode on demand via the ustring package.
type Row struct {
	Data []byte
}

// NewRow creates a row from a string.
func NewRow(s string) *Row { return &Row{Data: []byte(s)} }

// Len reports the row's byte length.
func (r *Row) Len() int { return len(r.Data) }

// String returns the row's text.
func (r *Row) String() string { return string(r.Data) }

// InsertBytes inserts b at byte offset at, growing the row.
func (r *Row) InsertBytes(at int, b []byte) {
	if at < 0 {
		at = 0
	}
	if at > len(r.Data) {
		at = len(r.Data)
	}
	grown := make([]byte, 0, len(r.Data)+len(b))
	grown = append(grown, r.Data[:at]...)
	grown = append(grown, b...)
	grown = append(grown, r.Data[at:]...)
	r.Data = grown
}

// DeleteRange removes bytes [from, to) and returns the removed slice.
func (r *Row) DeleteRange(from, to int) []byte {
	if from < 0 {
		from = 0
	}
	if to > len(r.Data) {
		to = len(r.Data)
	}
	if from >= to {
		return nil
	}
	removed := append([]byte(nil), r.Data[from:to]...)
	r.Data = append(r.Data[:from], r.Data[to:]...)
	return removed
}

// Clone returns a deep copy of the row.
func (r *Row) Clone() *Row {
	return &Row{Data: append([]byte(nil), r.Data...)}
}

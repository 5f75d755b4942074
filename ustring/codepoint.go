// Package ustring decodes byte strings into Unicode codepoints and computes
// their terminal display width, with tab expansion. It is the L0 layer of
// the editor core (spec §3 Codepoint, §4.1 display column).
package ustring

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Codepoint is a single decoded Unicode scalar plus its UTF-8 encoding and
// display width in terminal columns (0, 1 or 2).
type Codepoint struct {
	Rune   rune
	Bytes  []byte // the 1..4 byte UTF-8 encoding, shares no backing array with the row
	Width  int    // display width in columns; tabs are resolved separately, see Ustring.Width
	ByteAt int    // byte offset within the originating row this codepoint starts at
}

// IsTab reports whether this codepoint is a literal tab character.
func (c Codepoint) IsTab() bool { return c.Rune == '\t' }

// DecodeCodepoint decodes a single codepoint from b starting at offset 0.
// Invalid UTF-8 decodes as utf8.RuneError with byte length 1, matching
// utf8.DecodeRune's own recovery behavior so malformed input never wedges
// the decoder (spec §4.5 "@validate_utf8" reports these, it does not reject
// them outright at decode time).
func DecodeCodepoint(b []byte, byteAt int) Codepoint {
	r, size := utf8.DecodeRune(b)
	if size == 0 {
		size = 1
	}
	w := runewidth.RuneWidth(r)
	return Codepoint{
		Rune:   r,
		Bytes:  append([]byte(nil), b[:size]...),
		Width:  w,
		ByteAt: byteAt,
	}
}

// RuneByteLen returns the number of bytes the UTF-8 encoding of r occupies.
func RuneByteLen(r rune) int {
	return utf8.RuneLen(r)
}

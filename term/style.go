// Package term owns the L0 terminal layer: raw-mode setup, key decoding and
// the double-buffered Video compositor (spec §3 Video, §4.7, §6).
package term

// Attribute is a combinable text styling bit set.
type Attribute uint8

const (
	AttrNone Attribute = 0
	AttrBold Attribute = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrInverse
	AttrStrikethrough
)

// Has reports whether the attribute set contains attr.
func (a Attribute) Has(attr Attribute) bool { return a&attr != 0 }

// With returns a with attr added.
func (a Attribute) With(attr Attribute) Attribute { return a | attr }

// Without returns a with attr removed.
func (a Attribute) Without(attr Attribute) Attribute { return a &^ attr }

// ColorMode selects how a Color's channels are interpreted.
type ColorMode uint8

const (
	ColorDefault ColorMode = iota
	Color16
	Color256
	ColorRGB
)

// Color is a terminal color in one of four modes.
type Color struct {
	Mode    ColorMode
	R, G, B uint8
	Index   uint8
}

// DefaultColor is the terminal's own default foreground/background.
func DefaultColor() Color { return Color{Mode: ColorDefault} }

// BasicColor returns one of the 16 basic ANSI colors.
func BasicColor(index uint8) Color { return Color{Mode: Color16, Index: index} }

// PaletteColor returns one of the 256-color palette entries.
func PaletteColor(index uint8) Color { return Color{Mode: Color256, Index: index} }

// RGB returns a 24-bit true color.
func RGB(r, g, b uint8) Color { return Color{Mode: ColorRGB, R: r, G: g, B: b} }

// Standard basic colors (§4.5/§4.7).
var (
	Black   = BasicColor(0)
	Red     = BasicColor(1)
	Green   = BasicColor(2)
	Yellow  = BasicColor(3)
	Blue    = BasicColor(4)
	Magenta = BasicColor(5)
	Cyan    = BasicColor(6)
	White   = BasicColor(7)
)

// Style is a foreground/background color pair plus attributes, applied to a
// single cell.
type Style struct {
	FG, BG Color
	Attr   Attribute
}

// DefaultStyle returns the zero-value terminal style.
func DefaultStyle() Style { return Style{FG: DefaultColor(), BG: DefaultColor()} }

// Equal reports whether two styles render identically.
func (s Style) Equal(o Style) bool { return s == o }

// Inverse returns a copy of s with the inverse attribute toggled, used to
// paint visual-mode selections by wrapping the syntax parser's output
// (spec §4.3 "Visual modes paint the selection ... inverts colors").
func (s Style) Inverse() Style {
	if s.Attr.Has(AttrInverse) {
		s.Attr = s.Attr.Without(AttrInverse)
	} else {
		s.Attr = s.Attr.With(AttrInverse)
	}
	return s
}

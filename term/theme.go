package term

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
)

// fromLipgloss resolves a lipgloss color (named, ANSI index, or hex string)
// down to the RGB truecolor Color the hand-rolled SGR writer in video.go
// already knows how to emit. lipgloss owns color parsing/adaptation here;
// it never touches the render loop itself.
func fromLipgloss(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// Status/message line palette (spec §4.7 topline/msgline chrome), resolved
// once at init so render.go's styles are plain Color values.
var (
	ThemeDivider = fromLipgloss(lipgloss.Color("#4e4e4e"))
	ThemeError   = fromLipgloss(lipgloss.Color("#ff5f5f"))
	ThemeTopFG   = fromLipgloss(lipgloss.Color("#000000"))
	ThemeTopBG   = fromLipgloss(lipgloss.Color("#00d7ff"))
)

package editor

import (
	"fmt"

	"ved/buffer"
	"ved/mode"
	"ved/term"
	"ved/window"
)

var dividerStyle = term.Style{FG: term.ThemeDivider, Attr: term.AttrDim}
var errorStyle = term.Style{FG: term.ThemeError, Attr: term.AttrBold}
var topStyle = term.Style{FG: term.ThemeTopFG, BG: term.ThemeTopBG}
var selStyle = term.DefaultStyle().Inverse()

// Render paints every frame's visible rows, the reserved top/message/prompt
// lines, and the rline prompt (when active) into video, then flushes (spec
// §4.7's draw_all/render_set_from_to split, driven by FullRedraw).
func (e *Editor) Render(video *term.Video) {
	_, rows := video.Size()

	if e.Win.HasTopline() {
		e.renderTopline(video)
	}
	for i, f := range e.Win.Frames {
		e.renderFrame(video, f, i < len(e.Win.Frames)-1)
	}
	if e.Win.HasMsgline() {
		e.renderMessageLine(video, rows)
	}
	if e.Win.HasPromptline() {
		e.renderPromptLine(video, rows)
	}

	if e.FullRedraw {
		video.DrawAll()
		e.FullRedraw = false
		return
	}
	video.RenderSetFromTo(0, rows)
	video.Flush()
}

func (e *Editor) renderTopline(video *term.Video) {
	buf := e.CurBuffer()
	name := buf.Basename()
	if name == "" {
		name = "[No Name]"
	}
	mod := ""
	if buf.Modified {
		mod = " [+]"
	}
	video.SetRowBytes(0, []byte(fmt.Sprintf(" %s%s", name, mod)), topStyle)
}

// renderFrame paints a frame's current buffer, scrolled to its viewport, and
// highlights the active selection when the frame holds the focused visual
// mode session (spec §4.9's per-frame buffer render, §4.3's selection
// inverse-paint).
func (e *Editor) renderFrame(video *term.Video, f *window.Frame, hasDivider bool) {
	buf := f.CurBuffer()
	if buf == nil {
		return
	}
	isFocused := f == e.CurFrame()
	for screenRow := f.FirstRow; screenRow <= f.LastRow; screenRow++ {
		bufRow := buf.VideoFirstRow + (screenRow - f.FirstRow)
		if bufRow >= buf.NumRows() {
			video.SetRowBytes(screenRow, []byte("~"), dividerStyle)
			continue
		}
		video.SetRowBytes(screenRow, buf.RowBytes(bufRow), term.DefaultStyle())
	}
	if isFocused && e.Mode == ModeVisual && e.visual != nil {
		e.highlightVisualSelection(video, f, buf)
	}
	if hasDivider {
		video.SetRowBytes(f.LastRow+1, dividerLine(f.NumCols), dividerStyle)
	}
}

func dividerLine(cols int) []byte {
	line := make([]byte, cols)
	for i := range line {
		line[i] = '-'
	}
	return line
}

// highlightVisualSelection inverts the cells spanning the visual selection
// on every selected screen row (spec §4.3 "Visual modes paint the
// selection ... inverts colors").
func (e *Editor) highlightVisualSelection(video *term.Video, f *window.Frame, buf *buffer.Buffer) {
	firstRow, lastRow, fromCol, toCol, kind := e.visual.Bounds()
	for bufRow := firstRow; bufRow <= lastRow; bufRow++ {
		screenRow := f.FirstRow + (bufRow - buf.VideoFirstRow)
		if screenRow < f.FirstRow || screenRow > f.LastRow {
			continue
		}
		from, to := fromCol, toCol
		if kind == mode.VisualLine {
			from, to = 0, f.NumCols
		}
		video.RowHLAt(screenRow, from, to, selStyle)
	}
}

func (e *Editor) renderMessageLine(video *term.Video, totalRows int) {
	row := e.Win.MessageRow()
	style := term.DefaultStyle()
	if e.MessageIsError {
		style = errorStyle
	}
	video.SetRowBytes(row, []byte(e.MessageLine), style)
}

func (e *Editor) renderPromptLine(video *term.Video, totalRows int) {
	row := e.Win.PromptRow()
	if e.Mode == ModeCommandLine || e.Mode == ModeSearch {
		line := fmt.Sprintf("%c%s", e.rl.Prompt, e.rl.Line())
		video.SetRowBytes(row, []byte(line), term.DefaultStyle())
		video.MoveCursor(1+e.rl.CursorCol(), row)
		return
	}
	video.SetRowBytes(row, []byte(modeIndicator(e.Mode)), term.DefaultStyle())
}

func modeIndicator(m InputMode) string {
	switch m {
	case ModeInsert:
		return "-- INSERT --"
	case ModeVisual:
		return "-- VISUAL --"
	default:
		return ""
	}
}

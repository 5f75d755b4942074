package buffer

import (
	"os"
	"path/filepath"
	"strings"

	"ved/undo"
)

// Flag is a bitset of buffer state, restored from the original libved's
// FILE_IS_*/BUF_IS_*/BUF_FORCE_REOPEN constants (original_source's
// __libved.h) which the distilled spec.md dropped.
type Flag uint16

const (
	FileIsRegular Flag = 1 << iota
	FileIsRdonly
	FileExists
	FileIsReadable
	FileIsWritable
	BufIsModified
	BufIsVisible
	BufIsRdonly
	BufIsPager
	BufIsSpecial
	BufForceReopen
)

// Has reports whether f contains flag.
func (f Flag) Has(flag Flag) bool { return f&flag != 0 }

// AtCurrentFrame is the sentinel meaning "the window's currently focused
// frame", restored from the original's AT_CURRENT_FRAME.
const AtCurrentFrame = -1

// NumMarks and MaxJumps bound the marks table and jump list (original's
// MARKS string length and a conventional jump-list depth).
const (
	NumMarks = 37
	MaxJumps = 20
)

// Mark is a saved (row, col) position, named by one of the MARKS runes.
type Mark struct {
	Set    bool
	RowIdx int
	ColIdx int
}

// Buffer is one open file (or special/scratch buffer): its rows, cursor,
// file metadata, and per-buffer history (spec §3 Buffer). Grounded on the
// original's buf_t.
type Buffer struct {
	Rows   []*Row
	CurIdx int // index of the current row
	ColIdx int // byte offset of the cursor within the current row
	RowPos int // cursor's screen row within the viewport
	ColPos int // cursor's screen column within the viewport

	Fname    string
	Cwd      string
	Flags    Flag
	Mode     string
	Ftype    string
	Modified bool

	// Ftype descriptor fields (spec §3 Ftype), settable via the "set"
	// rline command; ved ships no per-language table, just the knobs.
	TabWidth   int
	ShiftWidth int

	Marks [NumMarks]Mark
	Jumps []int // FIFO of row indices, bounded at MaxJumps

	UndoStack *undo.Stack
	redoStack []undo.Action // inverses computed by Undo, consumed by Redo

	VideoFirstRow int // index of the row currently at viewport top
	AtFrame       int // which frame this buffer is displayed in, or AtCurrentFrame
}

// New creates an empty buffer with one blank row, as the original does for
// a brand-new "[No Name]" buffer.
func New(fname string) *Buffer {
	b := &Buffer{
		Rows:       []*Row{NewRow("")},
		Mode:       "normal",
		Ftype:      "none",
		TabWidth:   8,
		ShiftWidth: 4,
		UndoStack:  undo.NewStack(0),
		Fname:      fname,
	}
	b.AtFrame = AtCurrentFrame
	b.Cwd, _ = os.Getwd()
	b.statFile()
	return b
}

// NewFromLines creates a buffer pre-populated with lines (used by :read,
// scratch/messages buffers, and tests).
func NewFromLines(fname string, lines []string) *Buffer {
	b := New(fname)
	if len(lines) == 0 {
		return b
	}
	b.Rows = b.Rows[:0]
	for _, l := range lines {
		b.Rows = append(b.Rows, NewRow(l))
	}
	return b
}

// statFile refreshes FileIsRegular/FileExists/FileIsReadable/FileIsWritable
// from the filesystem (original's file-open-time stat() call).
func (b *Buffer) statFile() {
	if b.Fname == "" {
		return
	}
	info, err := os.Stat(b.Fname)
	if err != nil {
		return
	}
	b.Flags |= FileExists
	if info.Mode().IsRegular() {
		b.Flags |= FileIsRegular
	}
	if info.Mode().Perm()&0400 != 0 {
		b.Flags |= FileIsReadable
	}
	if info.Mode().Perm()&0200 != 0 {
		b.Flags |= FileIsWritable
	} else {
		b.Flags |= FileIsRdonly
	}
}

// Basename, Extname mirror the original buf_t's derived-from-fname fields.
func (b *Buffer) Basename() string { return filepath.Base(b.Fname) }
func (b *Buffer) Extname() string {
	ext := filepath.Ext(b.Fname)
	return strings.TrimPrefix(ext, ".")
}

// NumRows reports the row count.
func (b *Buffer) NumRows() int { return len(b.Rows) }

// CurRow returns the row under the cursor.
func (b *Buffer) CurRow() *Row { return b.Rows[b.CurIdx] }

// RowBytes implements search.RowSource, giving the search/substitute
// engine direct read access to a row's bytes without copying.
func (b *Buffer) RowBytes(i int) []byte { return b.Rows[i].Data }

// ForceReopen marks the buffer to be reloaded from disk on next focus,
// restoring BUF_FORCE_REOPEN (set e.g. after an external diff/grep command
// rewrites the file out from under an open buffer).
func (b *Buffer) ForceReopen() { b.Flags |= BufForceReopen }

// ConsumeForceReopen reports and clears the force-reopen flag.
func (b *Buffer) ConsumeForceReopen() bool {
	set := b.Flags.Has(BufForceReopen)
	b.Flags &^= BufForceReopen
	return set
}

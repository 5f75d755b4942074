// Package mode implements ved's modal input state machine: normal mode's
// flat key dispatch with count/register prefixes and operator-pending
// state, insert mode, and the three visual modes (spec §3 Mode, §4.3).
// Grounded on the original libved's on_normal/on_insert/on_visual key
// switches (original_source/src/__libved.h's enum result codes) and the
// teacher's key-dispatch idiom in app.go.
package mode

import "ved/search"

// Scope names how far an Exit result should propagate, replacing the
// original's WIN_EXIT/BUF_EXIT/BUF_QUIT distinctions with an explicit enum
// the editor package switches on (spec §9 design notes).
type Scope int

const (
	ScopeNone Scope = iota
	ScopeBuffer
	ScopeWindow
	ScopeEditor
	ScopeAll
)

// Kind is the closed set of outcomes a key dispatch can produce, replacing
// the original C implementation's "everything returns an int" convention
// (DONE/NOTHING_TODO/NEWCHAR/EXIT/WIN_EXIT/BUF_EXIT/BUF_QUIT) with a sum
// type the editor's main loop can switch on exhaustively.
type Kind int

const (
	Nothing Kind = iota
	Handled
	Exit
	SwitchBuffer
	EnterCommandLine
	EnterSearch
	EnterInsert    // caller should now drive a buffer.InsertSession key loop
	EnterVisual    // caller should now drive a Visual key loop (see Result.VisualKind)
	NeedsMoreInput // operator-pending / count-prefix mid-sequence
	Error
)

// Result is what one key dispatch produced.
type Result struct {
	Kind       Kind
	Scope      Scope
	BufferID   string
	Prefill    string // initial command-line/search pattern text, e.g. "foo" from "*"/"#"
	AutoSubmit bool   // Prefill should run immediately, as "*"/"#" do in the original
	SearchDir  search.Direction
	VisualKind VisualKind
	Err        error
}

func handled() Result     { return Result{Kind: Handled} }
func nothing() Result     { return Result{Kind: Nothing} }
func needsMore() Result   { return Result{Kind: NeedsMoreInput} }
func exit(s Scope) Result { return Result{Kind: Exit, Scope: s} }

package buffer

// Result is the closed outcome of a buffer motion or edit primitive,
// replacing the original C implementation's "everything returns an int"
// convention (spec §9 design notes) with a small sum type the mode package
// can switch on exhaustively.
type Result int

const (
	Done Result = iota
	NothingToDo
	AtBufferStart
	AtBufferEnd
)

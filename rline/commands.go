package rline

// Command ids, restored from the original's VED_COM_* enum
// (__libved.h) so rline's parser and the command table agree on a
// stable numeric identity independent of name/alias spelling.
type CommandID int

const (
	NoCommand CommandID = iota
	ComWrite
	ComEdit
	ComEnew
	ComSplit
	ComBufNext
	ComBufPrev
	ComBufPrevFocused
	ComBuffer
	ComBufDelete
	ComWinNext
	ComWinPrev
	ComWinPrevFocused
	ComQuit
	ComWriteQuit
	ComSubstitute
	ComVgrep
	ComGrep
	ComDiff
	ComRead
	ComShell
	ComMessages
	ComSearches
	ComScratch
	ComDiffBuf
	ComSet
	ComBalancedCheck
	ComValidateUTF8
	ComRedraw
	ComEtail
	ComTestKey
	ComEdNew
	ComEdNext
	ComEdPrev
	ComEdPrevFocused
)

// Error ids, negative per the original's convention of folding parse
// errors into the same signed integer space as a successful command id.
const (
	ErrUnrecognizedOption CommandID = -1 - iota
	ErrUnterminatedQuotedString
	ErrArgumentMissing
	ErrArgAwaitingStringOption
)

// ArgKind distinguishes how a command's declared option expects its value,
// used by tab-completion to pick filename vs buffer-name vs plain
// completion for a "--key=" prefix (spec §4.5).
type ArgKind int

const (
	ArgNone ArgKind = iota
	ArgFilename
	ArgBufferName
	ArgPlain
)

// ArgSpec names one option a command accepts.
type ArgSpec struct {
	Name string
	Kind ArgKind
	Flag bool // boolean --flag rather than --name=value
}

// Command is one entry in the command table: its canonical name, aliases,
// and declared option shape for parsing and completion.
type Command struct {
	ID      CommandID
	Name    string
	Aliases []string
	Args    []ArgSpec
}

// Commands is the built-in command table (spec §4.5's table, supplemented
// with the original's additional VED_COM_* ids per SPEC_FULL.md §3.8).
var Commands = []Command{
	{ID: ComWrite, Name: "write", Aliases: []string{"w", "write!", "w!"}, Args: []ArgSpec{
		{Name: "range", Kind: ArgPlain}, {Name: "append", Flag: true}, {Name: "fname", Kind: ArgFilename},
	}},
	{ID: ComEdit, Name: "edit", Aliases: []string{"e", "edit!"}, Args: []ArgSpec{
		{Name: "fname", Kind: ArgFilename},
	}},
	{ID: ComEnew, Name: "enew", Args: []ArgSpec{{Name: "fname", Kind: ArgFilename}}},
	{ID: ComSplit, Name: "split", Args: []ArgSpec{{Name: "fname", Kind: ArgFilename}}},
	{ID: ComBufNext, Name: "bufnext", Aliases: []string{"bn"}},
	{ID: ComBufPrev, Name: "bufprev", Aliases: []string{"bp"}},
	{ID: ComBufPrevFocused, Name: "bufprevfocused", Aliases: []string{"b`"}},
	{ID: ComBuffer, Name: "buffer", Aliases: []string{"b"}, Args: []ArgSpec{{Name: "bufname", Kind: ArgBufferName}}},
	{ID: ComBufDelete, Name: "bufdelete", Aliases: []string{"bd", "bd!"}},
	{ID: ComWinNext, Name: "winnext", Aliases: []string{"wn"}},
	{ID: ComWinPrev, Name: "winprev", Aliases: []string{"wp"}},
	{ID: ComWinPrevFocused, Name: "winprevfocused", Aliases: []string{"w`"}},
	{ID: ComQuit, Name: "quit", Aliases: []string{"q", "q!"}, Args: []ArgSpec{{Name: "global", Flag: true}}},
	{ID: ComWriteQuit, Name: "wq", Aliases: []string{"wq!"}},
	{ID: ComSubstitute, Name: "substitute", Aliases: []string{"s", "s%"}, Args: []ArgSpec{
		{Name: "pat", Kind: ArgPlain}, {Name: "sub", Kind: ArgPlain},
		{Name: "global", Flag: true}, {Name: "interactive", Flag: true}, {Name: "range", Kind: ArgPlain},
	}},
	{ID: ComVgrep, Name: "vgrep", Args: []ArgSpec{
		{Name: "pat", Kind: ArgPlain}, {Name: "recursive", Flag: true},
	}},
	{ID: ComGrep, Name: "grep", Args: []ArgSpec{
		{Name: "pat", Kind: ArgPlain}, {Name: "recursive", Flag: true},
	}},
	{ID: ComDiff, Name: "diff", Args: []ArgSpec{{Name: "origin", Flag: true}}},
	{ID: ComRead, Name: "read", Aliases: []string{"r"}, Args: []ArgSpec{{Name: "fname", Kind: ArgFilename}}},
	{ID: ComShell, Name: "!", Aliases: []string{"r!"}},
	{ID: ComMessages, Name: "messages"},
	{ID: ComSearches, Name: "searches"},
	{ID: ComScratch, Name: "scratch"},
	{ID: ComDiffBuf, Name: "diffbuf"},
	{ID: ComSet, Name: "set", Args: []ArgSpec{
		{Name: "ftype", Kind: ArgPlain}, {Name: "tabwidth", Kind: ArgPlain}, {Name: "shiftwidth", Kind: ArgPlain},
		{Name: "autosave", Kind: ArgPlain}, {Name: "backupfile", Flag: true}, {Name: "no-backupfile", Flag: true},
		{Name: "backup-suffix", Kind: ArgPlain}, {Name: "enable-writing", Flag: true},
	}},
	{ID: ComBalancedCheck, Name: "@balanced_check", Args: []ArgSpec{{Name: "range", Kind: ArgPlain}}},
	{ID: ComValidateUTF8, Name: "@validate_utf8"},
	{ID: ComRedraw, Name: "redraw"},
	{ID: ComEtail, Name: "etail"},
	{ID: ComTestKey, Name: "test_key"},
	{ID: ComEdNew, Name: "ednew", Args: []ArgSpec{{Name: "fname", Kind: ArgFilename}}},
	{ID: ComEdNext, Name: "ednext"},
	{ID: ComEdPrev, Name: "edprev"},
	{ID: ComEdPrevFocused, Name: "edprevfocused", Aliases: []string{"ed`"}},
}

// Lookup finds a command by name or alias.
func Lookup(name string) (Command, bool) {
	for _, c := range Commands {
		if c.Name == name {
			return c, true
		}
		for _, a := range c.Aliases {
			if a == name {
				return c, true
			}
		}
	}
	return Command{}, false
}

// Names returns every command name and alias, for tab-completion's
// "token 1 → command completion" case.
func Names() []string {
	var out []string
	for _, c := range Commands {
		out = append(out, c.Name)
		out = append(out, c.Aliases...)
	}
	return out
}

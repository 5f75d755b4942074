package editor

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"ved/buffer"
	"ved/mode"
	"ved/rline"
	"ved/search"
)

// EdResult is the state transition a command hands back to the Root,
// restored from the original's ED_EXIT/ED_EXIT_ALL/ED_NEW/... enum
// (spec §4.10).
type EdResult int

const (
	EdNone EdResult = iota
	EdExit
	EdExitAll
	EdExitAllForce
	EdNew
	EdNext
	EdPrev
	EdPrevFocused
	EdSuspended
)

// Execute runs one already-confirmed rline command line against this
// editor (spec §4.5's command table, §4.10's state-transition set).
func (e *Editor) Execute(line string) EdResult {
	pl := rline.Parse(line)
	if pl.Err != 0 {
		e.SetMessage(parseErrorMessage(pl), true)
		return EdNone
	}
	if pl.Command == rline.NoCommand {
		if strings.TrimSpace(line) != "" {
			e.SetMessage(fmt.Sprintf("unrecognized command: %q", pl.Raw), true)
		}
		return EdNone
	}
	return e.dispatch(pl)
}

func parseErrorMessage(pl rline.ParsedLine) string {
	switch pl.Err {
	case rline.ErrUnrecognizedOption:
		return "unrecognized option"
	case rline.ErrUnterminatedQuotedString:
		return "unterminated quoted string"
	case rline.ErrArgumentMissing:
		return "missing argument"
	case rline.ErrArgAwaitingStringOption:
		return "awaiting string after ="
	default:
		return "parse error"
	}
}

func argValue(pl rline.ParsedLine, name string) (string, bool) {
	for _, a := range pl.Args {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func hasFlag(pl rline.ParsedLine, name string) bool {
	for _, a := range pl.Args {
		if a.Name == name && a.Flag {
			return true
		}
	}
	return false
}

func firstPositional(pl rline.ParsedLine) (string, bool) {
	for _, a := range pl.Args {
		if a.Name == "" {
			return a.Value, true
		}
	}
	return "", false
}

func bangForm(pl rline.ParsedLine) bool { return strings.HasSuffix(pl.Raw, "!") }

func (e *Editor) dispatch(pl rline.ParsedLine) EdResult {
	switch pl.Command {
	case rline.ComWrite:
		return e.cmdWrite(pl)
	case rline.ComEdit:
		return e.cmdEdit(pl)
	case rline.ComEnew:
		return e.cmdEnew(pl)
	case rline.ComSplit:
		return e.cmdSplit(pl)
	case rline.ComBufNext:
		e.CurFrame().Next()
	case rline.ComBufPrev:
		e.CurFrame().Prev()
	case rline.ComBufPrevFocused:
		e.CurFrame().Prev()
	case rline.ComBuffer:
		e.cmdBuffer(pl)
	case rline.ComBufDelete:
		e.cmdBufDelete(pl)
	case rline.ComWinNext:
		e.Win.FocusNext()
	case rline.ComWinPrev:
		e.Win.FocusPrev()
	case rline.ComWinPrevFocused:
		e.Win.FocusPrev()
	case rline.ComQuit:
		return e.cmdQuit(pl)
	case rline.ComWriteQuit:
		e.MessageIsError = false
		e.cmdWrite(pl)
		if e.MessageIsError {
			return EdNone
		}
		return e.cmdQuit(pl)
	case rline.ComSubstitute:
		e.cmdSubstitute(pl)
	case rline.ComGrep, rline.ComVgrep:
		e.cmdGrep(pl)
	case rline.ComDiff:
		e.cmdDiff(pl)
	case rline.ComRead:
		e.cmdRead(pl)
	case rline.ComShell:
		e.cmdShell(pl)
	case rline.ComMessages:
		e.focusSpecial(e.MessagesBuf)
	case rline.ComScratch:
		e.focusSpecial(e.scratchBuffer())
	case rline.ComSearches:
		e.focusSpecial(e.searchesBuffer())
	case rline.ComDiffBuf:
		// diff results live in the same special buffer cmdDiff populates.
	case rline.ComSet:
		e.cmdSet(pl)
	case rline.ComBalancedCheck:
		e.cmdBalancedCheck(pl)
	case rline.ComValidateUTF8:
		e.cmdValidateUTF8()
	case rline.ComRedraw:
		e.FullRedraw = true
	case rline.ComEtail:
		e.cmdEtail()
	case rline.ComTestKey:
		e.SetMessage("test_key: ok", false)
	case rline.ComEdNew:
		e.PendingEdFname, _ = argValue(pl, "fname")
		if e.PendingEdFname == "" {
			e.PendingEdFname, _ = firstPositional(pl)
		}
		return EdNew
	case rline.ComEdNext:
		return EdNext
	case rline.ComEdPrev:
		return EdPrev
	case rline.ComEdPrevFocused:
		return EdPrevFocused
	}
	return EdNone
}

func (e *Editor) cmdWrite(pl rline.ParsedLine) EdResult {
	buf := e.CurBuffer()
	fname, ok := argValue(pl, "fname")
	if !ok {
		fname, ok = firstPositional(pl)
	}
	if ok {
		if err := buf.WriteAs(fname, buffer.DefaultBackupSuffix); err != nil {
			e.SetMessage("write: "+err.Error(), true)
		}
		return EdNone
	}
	if buf.Fname == "" {
		e.SetMessage("unnamed buffer cannot be written", true)
		return EdNone
	}
	if err := buf.Write(); err != nil {
		e.SetMessage("write: "+err.Error(), true)
	}
	return EdNone
}

func (e *Editor) cmdEdit(pl rline.ParsedLine) EdResult {
	fname, ok := argValue(pl, "fname")
	if !ok {
		fname, ok = firstPositional(pl)
	}
	if !ok {
		e.SetMessage("edit: missing --fname", true)
		return EdNone
	}
	if existing, found := e.buffers[fname]; found && !bangForm(pl) {
		e.CurFrame().AddBuffer(existing)
		return EdNone
	}
	buf, err := buffer.Open(fname)
	if err != nil {
		e.SetMessage("edit: "+err.Error(), true)
		return EdNone
	}
	e.registerBuffer(buf)
	e.CurFrame().AddBuffer(buf)
	e.normal = newNormalFor(e, buf)
	return EdNone
}

func (e *Editor) cmdEnew(pl rline.ParsedLine) EdResult {
	fname, _ := argValue(pl, "fname")
	buf := buffer.New(fname)
	e.registerBuffer(buf)
	e.CurFrame().AddBuffer(buf)
	e.normal = newNormalFor(e, buf)
	return EdNone
}

func (e *Editor) cmdSplit(pl rline.ParsedLine) EdResult {
	f := e.Win.AddFrame()
	buf := e.CurBuffer()
	if fname, ok := argValue(pl, "fname"); ok {
		if b, err := buffer.Open(fname); err == nil {
			e.registerBuffer(b)
			buf = b
		}
	}
	f.AddBuffer(buf)
	e.Win.FocusFrame(len(e.Win.Frames) - 1)
	e.normal = newNormalFor(e, buf)
	return EdNone
}

func (e *Editor) cmdBuffer(pl rline.ParsedLine) EdResult {
	name, ok := argValue(pl, "bufname")
	if !ok {
		name, ok = firstPositional(pl)
	}
	if !ok {
		return EdNone
	}
	if b, found := e.buffers[name]; found {
		e.CurFrame().AddBuffer(b)
		e.normal = newNormalFor(e, b)
	} else {
		e.SetMessage(fmt.Sprintf("no such buffer: %q", name), true)
	}
	return EdNone
}

func (e *Editor) cmdBufDelete(pl rline.ParsedLine) EdResult {
	buf := e.CurBuffer()
	if buf.Modified && !bangForm(pl) {
		e.SetMessage("buffer is modified", true)
		return EdNone
	}
	e.CurFrame().RemoveBuffer(buf)
	delete(e.buffers, e.bufferKey(buf))
	if nb := e.CurFrame().CurBuffer(); nb != nil {
		e.normal = newNormalFor(e, nb)
	}
	return EdNone
}

func (e *Editor) cmdQuit(pl rline.ParsedLine) EdResult {
	buf := e.CurBuffer()
	force := bangForm(pl)
	if buf.Modified && !force {
		e.SetMessage("buffer is modified", true)
		return EdNone
	}
	if hasFlag(pl, "global") {
		if force {
			return EdExitAllForce
		}
		return EdExitAll
	}
	return EdExit
}

func newNormalFor(e *Editor, buf *buffer.Buffer) *mode.Normal {
	return mode.NewNormal(buf, e.Regs)
}

// cmdSubstitute runs a regex substitution over a row range (spec §4.8
// "substitute", §8 scenario S4).
func (e *Editor) cmdSubstitute(pl rline.ParsedLine) {
	buf := e.CurBuffer()
	pat, _ := argValue(pl, "pat")
	sub, _ := argValue(pl, "sub")
	if pat == "" {
		e.SetMessage("substitute: missing --pat", true)
		return
	}
	re, err := search.Compile(pat)
	if err != nil {
		e.SetMessage("substitute: "+err.Error(), true)
		return
	}
	rng := rline.Range{From: buf.CurIdx, To: buf.CurIdx}
	if spec, ok := argValue(pl, "range"); ok {
		if r, ok := rline.ParseRange(spec, buf.CurIdx, buf.NumRows()); ok {
			rng = r
		}
	} else if hasFlag(pl, "global") {
		rng = rline.Range{From: 0, To: buf.NumRows() - 1}
	}
	global := hasFlag(pl, "global")
	changed := 0
	for row := rng.From; row <= rng.To && row < buf.NumRows(); row++ {
		data := buf.RowBytes(row)
		plans := search.PlanRow(re, data, sub, row)
		if !global && len(plans) > 1 {
			plans = plans[:1]
		}
		if len(plans) == 0 {
			continue
		}
		buf.ReplaceRowAt(row, search.ApplyPlans(data, plans))
		changed++
	}
	if changed == 0 {
		e.SetMessage("substitute: no match", true)
	}
}

func (e *Editor) cmdRead(pl rline.ParsedLine) {
	fname, ok := argValue(pl, "fname")
	if !ok {
		fname, ok = firstPositional(pl)
	}
	if !ok {
		e.SetMessage("read: missing --fname", true)
		return
	}
	src, err := buffer.Open(fname)
	if err != nil {
		e.SetMessage("read: "+err.Error(), true)
		return
	}
	buf := e.CurBuffer()
	at := buf.CurIdx + 1
	rows := make([]*buffer.Row, len(src.Rows))
	for i, r := range src.Rows {
		rows[i] = buffer.NewRow(r.String())
	}
	buf.Rows = append(buf.Rows[:at], append(rows, buf.Rows[at:]...)...)
}

func (e *Editor) cmdShell(pl rline.ParsedLine) {
	cmdline, ok := firstPositional(pl)
	if !ok {
		return
	}
	out, _ := exec.Command("sh", "-c", cmdline).CombinedOutput()
	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		e.AppendMessage(line)
	}
	e.focusSpecial(e.MessagesBuf)
}

func (e *Editor) cmdGrep(pl rline.ParsedLine) {
	pat, _ := argValue(pl, "pat")
	if pat == "" {
		pat, _ = firstPositional(pl)
	}
	args := []string{"-n"}
	if hasFlag(pl, "recursive") {
		args = append(args, "-r")
	}
	args = append(args, pat, ".")
	out, _ := exec.Command("grep", args...).CombinedOutput()
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	grepBuf := e.namedSpecial("[grep]")
	grepBuf.Rows = linesToRows(lines)
	e.focusSpecial(grepBuf)
}

func (e *Editor) cmdDiff(pl rline.ParsedLine) {
	buf := e.CurBuffer()
	if buf.Fname == "" {
		e.SetMessage("diff: buffer is unnamed", true)
		return
	}
	out, _ := exec.Command("diff", "-u", buf.Fname, "-").Output()
	diffBuf := e.namedSpecial("[diff]")
	diffBuf.Rows = linesToRows(strings.Split(strings.TrimRight(string(out), "\n"), "\n"))
	e.focusSpecial(diffBuf)
}

func linesToRows(lines []string) []*buffer.Row {
	rows := make([]*buffer.Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, buffer.NewRow(l))
	}
	if len(rows) == 0 {
		rows = append(rows, buffer.NewRow(""))
	}
	return rows
}

func (e *Editor) cmdSet(pl rline.ParsedLine) {
	buf := e.CurBuffer()
	if v, ok := argValue(pl, "ftype"); ok {
		buf.Ftype = v
	}
	if v, ok := argValue(pl, "tabwidth"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			buf.TabWidth = n
		}
	}
	if v, ok := argValue(pl, "shiftwidth"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			buf.ShiftWidth = n
		}
	}
	if v, ok := argValue(pl, "autosave"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			e.SetAutosave(secondsToDuration(n))
		}
	}
}

func (e *Editor) cmdBalancedCheck(pl rline.ParsedLine) {
	buf := e.CurBuffer()
	rng := rline.Range{From: 0, To: buf.NumRows() - 1}
	if spec, ok := argValue(pl, "range"); ok {
		if r, ok := rline.ParseRange(spec, buf.CurIdx, buf.NumRows()); ok {
			rng = r
		}
	}
	pairs := map[byte]byte{')': '(', ']': '[', '}': '{'}
	opens := map[byte]bool{'(': true, '[': true, '{': true}
	var stack []byte
	for row := rng.From; row <= rng.To && row < buf.NumRows(); row++ {
		for _, c := range buf.RowBytes(row) {
			switch {
			case opens[c]:
				stack = append(stack, c)
			case pairs[c] != 0:
				if len(stack) == 0 || stack[len(stack)-1] != pairs[c] {
					e.SetMessage("unbalanced brackets", true)
					return
				}
				stack = stack[:len(stack)-1]
			}
		}
	}
	if len(stack) != 0 {
		e.SetMessage("unbalanced brackets", true)
		return
	}
	e.SetMessage("balanced", false)
}

func (e *Editor) cmdValidateUTF8() {
	buf := e.CurBuffer()
	for i := 0; i < buf.NumRows(); i++ {
		if !utf8.Valid(buf.RowBytes(i)) {
			e.SetMessage(fmt.Sprintf("invalid UTF-8 on row %d", i+1), true)
			return
		}
	}
	e.SetMessage("valid UTF-8", false)
}

func (e *Editor) cmdEtail() {
	buf := e.CurBuffer()
	if buf.Fname == "" {
		return
	}
	fresh, err := buffer.Open(buf.Fname)
	if err != nil {
		e.SetMessage("etail: "+err.Error(), true)
		return
	}
	buf.Rows = fresh.Rows
	buf.CurIdx = buf.NumRows() - 1
	buf.ColIdx = 0
}

func secondsToDuration(n int) time.Duration { return time.Duration(n) * time.Second }

func (e *Editor) focusSpecial(b *buffer.Buffer) {
	e.CurFrame().AddBuffer(b)
	e.normal = newNormalFor(e, b)
}

func (e *Editor) scratchBuffer() *buffer.Buffer  { return e.namedSpecial("[scratch]") }
func (e *Editor) searchesBuffer() *buffer.Buffer { return e.namedSpecial("[searches]") }

func (e *Editor) namedSpecial(name string) *buffer.Buffer {
	if b, ok := e.buffers[name]; ok {
		return b
	}
	b := buffer.NewFromLines(name, nil)
	b.Flags |= buffer.BufIsSpecial
	e.registerBuffer(b)
	return b
}

package rline

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"
)

var errUnterminatedQuote = errors.New("rline: unterminated quoted string")

// Arg is one parsed argument: either --name=value, a bare --flag, or a
// positional filename (spec §4.5 "Command parsing" steps 3).
type Arg struct {
	Name  string // empty for positional filename arguments
	Value string
	Flag  bool
}

// ParsedLine is the result of parsing one confirmed rline command (spec
// §4.5 "Command parsing"). Err is one of the negative CommandID error
// constants when parsing failed.
type ParsedLine struct {
	Command CommandID
	Raw     string // the raw command-name token, for error messages
	Args    []Arg
	Err     CommandID
}

// Parse tokenizes and interprets one rline input line per spec §4.5's four
// numbered steps.
func Parse(line string) ParsedLine {
	line = strings.TrimLeft(line, " \t")
	if line == "" {
		return ParsedLine{Command: NoCommand}
	}

	nameEnd := strings.IndexAny(line, " \t")
	var name, rest string
	if nameEnd < 0 {
		name, rest = line, ""
	} else {
		name, rest = line[:nameEnd], line[nameEnd:]
	}

	cmd, ok := Lookup(name)
	pl := ParsedLine{Raw: name}
	if !ok {
		pl.Command = NoCommand
		return pl
	}
	pl.Command = cmd.ID

	toks, err := tokenize(rest)
	if err != nil {
		pl.Err = ErrUnterminatedQuotedString
		return pl
	}

	for _, tok := range toks {
		arg := parseToken(tok)
		if arg.Name != "" {
			spec, known := findArgSpec(cmd, arg.Name)
			if !known {
				pl.Err = ErrUnrecognizedOption
				return pl
			}
			if !spec.Flag && arg.Flag {
				pl.Err = ErrArgAwaitingStringOption
				return pl
			}
		}
		pl.Args = append(pl.Args, arg)
	}
	return pl
}

func findArgSpec(cmd Command, name string) (ArgSpec, bool) {
	for _, a := range cmd.Args {
		if a.Name == name {
			return a, true
		}
	}
	return ArgSpec{}, false
}

// tokenize splits the argument portion on whitespace, honoring
// double-quoted values (with \" escaping a literal quote) and expanding a
// bare glob token against the current directory (spec §4.5 step 3's
// "Bare word, with a glob `*`").
func tokenize(s string) ([]string, error) {
	var toks []string
	i := 0
	for i < len(s) {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		if i >= len(s) {
			break
		}
		start := i
		if eq := strings.IndexByte(s[start:], '='); eq >= 0 {
			nameEnd := start + eq
			spaceBefore := strings.IndexAny(s[start:nameEnd], " \t")
			if spaceBefore < 0 && nameEnd+1 < len(s) && s[nameEnd+1] == '"' {
				tok, next, ok := readQuoted(s, start, nameEnd+1)
				if !ok {
					return nil, errUnterminatedQuote
				}
				toks = append(toks, tok)
				i = next
				continue
			}
		}
		for i < len(s) && s[i] != ' ' && s[i] != '\t' {
			i++
		}
		toks = append(toks, s[start:i])
	}
	return expandGlobs(toks), nil
}

// readQuoted reads name="value with \" escapes" starting at nameStart,
// where quoteAt points at the opening quote; returns the full token
// (unescaped) and the index just past the closing quote.
func readQuoted(s string, nameStart, quoteAt int) (string, int, bool) {
	name := s[nameStart:quoteAt] // includes trailing '='
	var val strings.Builder
	i := quoteAt + 1
	for i < len(s) {
		if s[i] == '\\' && i+1 < len(s) && s[i+1] == '"' {
			val.WriteByte('"')
			i += 2
			continue
		}
		if s[i] == '"' {
			return name + val.String(), i + 1, true
		}
		val.WriteByte(s[i])
		i++
	}
	return "", 0, false
}

func parseToken(tok string) Arg {
	if strings.HasPrefix(tok, "--") {
		body := tok[2:]
		if eq := strings.IndexByte(body, '='); eq >= 0 {
			return Arg{Name: body[:eq], Value: body[eq+1:]}
		}
		return Arg{Name: body, Flag: true}
	}
	return Arg{Value: tok}
}

func expandGlobs(toks []string) []string {
	var out []string
	for _, t := range toks {
		if strings.HasPrefix(t, "--") || !strings.Contains(t, "*") {
			out = append(out, t)
			continue
		}
		matches, err := filepath.Glob(t)
		if err != nil || len(matches) == 0 {
			out = append(out, t)
			continue
		}
		out = append(out, matches...)
	}
	return out
}

// Range is an inclusive, 0-based [From, To] line range.
type Range struct {
	From, To int
}

// ParseRange interprets a --range= value against a buffer of numLines
// lines with curLine as the 0-based current line (spec §4.5 "Range
// parsing"): "%" whole buffer, "." current line, "N" line N (1-based),
// "N,M" or ".,$" an inclusive range whose endpoints may be "." or "$".
func ParseRange(spec string, curLine, numLines int) (Range, bool) {
	if numLines <= 0 {
		return Range{}, false
	}
	last := numLines - 1
	if spec == "%" {
		return Range{0, last}, true
	}
	if spec == "." {
		return Range{curLine, curLine}, true
	}
	if comma := strings.IndexByte(spec, ','); comma >= 0 {
		from, ok1 := resolveEndpoint(spec[:comma], curLine, last)
		to, ok2 := resolveEndpoint(spec[comma+1:], curLine, last)
		if !ok1 || !ok2 || from > to {
			return Range{}, false
		}
		return Range{from, to}, true
	}
	n, ok := resolveEndpoint(spec, curLine, last)
	if !ok {
		return Range{}, false
	}
	return Range{n, n}, true
}

func resolveEndpoint(tok string, curLine, last int) (int, bool) {
	switch tok {
	case ".":
		return curLine, true
	case "$":
		return last, true
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	n-- // 1-based -> 0-based
	if n < 0 || n > last {
		return 0, false
	}
	return n, true
}

package rline

import (
	"os"
	"path/filepath"
	"strings"
)

// TokenKind classifies the token under the cursor for tab-completion
// (spec §4.5 "Tab completion"): which candidate source a menu should be
// populated from.
type TokenKind int

const (
	TokenCommand TokenKind = iota
	TokenOptionValue
	TokenOptionFlag
	TokenFilename
	TokenBufferName
)

// ClassifyToken inspects the full input line and the token under the
// cursor (as returned by RL.CurrentToken) to decide what kind of
// completion applies.
func ClassifyToken(line string, tokenStart int, token string) TokenKind {
	if tokenStart == 0 {
		return TokenCommand
	}
	if strings.HasPrefix(token, "--") {
		body := token[2:]
		if eq := strings.IndexByte(body, '='); eq >= 0 {
			return optionValueKind(line, body[:eq])
		}
		return TokenOptionFlag
	}
	cmdName := strings.TrimSpace(strings.SplitN(line, " ", 2)[0])
	if isBufferCyclingCommand(cmdName) {
		return TokenBufferName
	}
	return TokenFilename
}

func optionValueKind(line, optName string) TokenKind {
	cmdName := strings.TrimSpace(strings.SplitN(line, " ", 2)[0])
	cmd, ok := Lookup(cmdName)
	if !ok {
		return TokenFilename
	}
	spec, ok := findArgSpec(cmd, optName)
	if !ok {
		return TokenOptionValue
	}
	switch spec.Kind {
	case ArgFilename:
		return TokenFilename
	case ArgBufferName:
		return TokenBufferName
	default:
		return TokenOptionValue
	}
}

func isBufferCyclingCommand(name string) bool {
	switch name {
	case "buffer", "b", "bufnext", "bn", "bufprev", "bp", "bufdelete", "bd", "bd!":
		return true
	}
	return false
}

// FilenameCandidates lists entries of dir matching prefix for filename
// completion, recursing into a chosen directory is the caller's
// responsibility once it re-invokes this after a directory is selected
// (spec §4.5 "if the chosen path is a directory, completion recurses").
func FilenameCandidates(dir, prefix string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			continue
		}
		if e.IsDir() {
			name += string(filepath.Separator)
		}
		out = append(out, name)
	}
	return out
}

package buffer

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultBackupSuffix is appended to a file's basename to form its backup
// path, restored from the original's default suffix ("~", bounded to 7
// chars per spec §6 "Persisted state").
const DefaultBackupSuffix = "~"

// MaxBackupSuffixLen bounds a caller-supplied backup suffix (spec §6).
const MaxBackupSuffixLen = 7

// Open reads path into a new buffer. A missing file is not an error: the
// buffer is created empty and left without FileExists, matching spec §8
// scenario S6 ("the buffer is created empty, marked ~FILE_EXISTS").
func Open(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return New(path), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<24)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return NewFromLines(path, lines), nil
}

// Write persists the buffer to its own Fname (spec §4.5 "write"), backing
// up any existing file first. An unnamed buffer cannot be written this way
// (spec §7 "unnamed buffer cannot be written").
func (b *Buffer) Write() error {
	if b.Fname == "" {
		return fmt.Errorf("buffer: cannot write an unnamed buffer")
	}
	return b.WriteAs(b.Fname, DefaultBackupSuffix)
}

// WriteAs persists the buffer's rows to path, one per line plus a single
// trailing newline (spec §8 invariant 9), backing up an existing file at
// path first unless suffix is empty.
func (b *Buffer) WriteAs(path, suffix string) error {
	if suffix != "" {
		if len(suffix) > MaxBackupSuffixLen {
			suffix = suffix[:MaxBackupSuffixLen]
		}
		backupFile(path, suffix)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, row := range b.Rows {
		w.Write(row.Data)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return err
	}

	b.Fname = path
	b.Modified = false
	b.Flags &^= BufIsModified
	b.statFile()
	return nil
}

// backupFile copies an existing regular file at path to
// <dir>/.<basename><suffix>, ignoring a missing source (nothing to back up)
// and any copy failure (best-effort, per the original's non-fatal backup).
func backupFile(path, suffix string) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	dir, base := splitDirBase(path)
	backupPath := dir + string(os.PathSeparator) + "." + base + suffix
	os.WriteFile(backupPath, data, info.Mode().Perm())
}

func splitDirBase(path string) (dir, base string) {
	i := strings.LastIndexByte(path, os.PathSeparator)
	if i < 0 {
		return ".", path
	}
	return path[:i], path[i+1:]
}

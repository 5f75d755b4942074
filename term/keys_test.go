package term

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"
)

// pipeDecoder feeds b through an os.Pipe so KeyDecoder sees a real *os.File,
// matching how Raw wires stdin.
func pipeDecoder(t *testing.T, b []byte) *KeyDecoder {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	go func() {
		w.Write(b)
		w.Close()
	}()
	t.Cleanup(func() { r.Close() })
	return NewKeyDecoder(r)
}

func TestNextPlainRune(t *testing.T) {
	d := pipeDecoder(t, []byte("a"))
	k, err := d.Next(context.Background())
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if k.Kind != KeyRune || k.Rune != 'a' {
		t.Fatalf("got %+v, want rune 'a'", k)
	}
}

func TestNextUTF8Codepoint(t *testing.T) {
	d := pipeDecoder(t, []byte("α"))
	k, err := d.Next(context.Background())
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if k.Kind != KeyRune || k.Rune != 'α' {
		t.Fatalf("got %+v, want 'α'", k)
	}
}

func TestNextBackspaceAndControl(t *testing.T) {
	d := pipeDecoder(t, []byte{127, 0x17})
	k, err := d.Next(context.Background())
	if err != nil || k.Kind != KeyBackspace {
		t.Fatalf("127 -> %+v, err %v", k, err)
	}
	k, err = d.Next(context.Background())
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if k.Kind != KeyCtrl || k.Rune != 'w' {
		t.Fatalf("0x17 -> %+v, want Ctrl-w", k)
	}
}

func TestNextArrowKeys(t *testing.T) {
	cases := map[string]KeyKind{
		"\x1b[A": KeyArrowUp,
		"\x1b[B": KeyArrowDown,
		"\x1b[C": KeyArrowRight,
		"\x1b[D": KeyArrowLeft,
		"\x1b[H": KeyHome,
		"\x1b[F": KeyEnd,
	}
	for seq, want := range cases {
		d := pipeDecoder(t, []byte(seq))
		k, err := d.Next(context.Background())
		if err != nil {
			t.Fatalf("%q: %v", seq, err)
		}
		if k.Kind != want {
			t.Errorf("%q -> %v, want %v", seq, k.Kind, want)
		}
	}
}

func TestNextNumericCSI(t *testing.T) {
	cases := map[string]KeyKind{
		"\x1b[3~":  KeyDelete,
		"\x1b[5~":  KeyPageUp,
		"\x1b[6~":  KeyPageDown,
		"\x1b[2~":  KeyInsert,
		"\x1b[15~": KeyF5,
		"\x1b[24~": KeyF12,
	}
	for seq, want := range cases {
		d := pipeDecoder(t, []byte(seq))
		k, err := d.Next(context.Background())
		if err != nil {
			t.Fatalf("%q: %v", seq, err)
		}
		if k.Kind != want {
			t.Errorf("%q -> %v, want %v", seq, k.Kind, want)
		}
	}
}

func TestNextSS3FunctionKeys(t *testing.T) {
	cases := map[string]KeyKind{
		"\x1bOP": KeyF1,
		"\x1bOQ": KeyF2,
		"\x1bOR": KeyF3,
		"\x1bOS": KeyF4,
	}
	for seq, want := range cases {
		d := pipeDecoder(t, []byte(seq))
		k, err := d.Next(context.Background())
		if err != nil {
			t.Fatalf("%q: %v", seq, err)
		}
		if k.Kind != want {
			t.Errorf("%q -> %v, want %v", seq, k.Kind, want)
		}
	}
}

func TestNextBareEscape(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()
	w.Write([]byte{0x1b})
	w.Close()
	d := NewKeyDecoder(r)
	k, err := d.Next(context.Background())
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if k.Kind != KeyEscape {
		t.Fatalf("got %+v, want KeyEscape", k)
	}
}

func TestNextContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := pipeDecoder(t, []byte("x"))
	_, err := d.Next(ctx)
	if err == nil {
		t.Fatal("expected context error")
	}
}

func TestNextEOF(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	w.Close()
	defer r.Close()
	d := NewKeyDecoder(r)
	_, err = d.Next(context.Background())
	if err != io.EOF {
		t.Fatalf("got %v, want io.EOF", err)
	}
}

func TestUtf8SeqLen(t *testing.T) {
	s := "aαあ𠀀"
	var got []int
	b := []byte(s)
	for len(b) > 0 {
		n := utf8SeqLen(b[0])
		got = append(got, n)
		b = b[n:]
	}
	want := []int{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("seq %d: got %d want %d", i, got[i], want[i])
		}
	}
}

func TestDecodeUTF8RoundTrip(t *testing.T) {
	for _, r := range []rune{'a', 'α', 'あ', '𠀀'} {
		buf := make([]byte, 4)
		n := encodeRune(buf, r)
		got := decodeUTF8(buf[:n])
		if got != r {
			t.Errorf("decodeUTF8(%q) = %q, want %q", buf[:n], got, r)
		}
	}
}

func encodeRune(buf []byte, r rune) int {
	var b bytes.Buffer
	b.WriteRune(r)
	copy(buf, b.Bytes())
	return b.Len()
}

package term

import (
	"bufio"
	"context"
	"os"
)

// KeyKind distinguishes a plain decoded rune from a named special key.
type KeyKind int

const (
	KeyRune KeyKind = iota
	KeyArrowUp
	KeyArrowDown
	KeyArrowRight
	KeyArrowLeft
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyBackspace
	KeyEscape
	KeyEnter
	KeyTab
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyCtrl // modifier combined with Rune: Ctrl-<rune>
)

// Key is one decoded logical keypress, spec §1's read_key() -> codepoint.
type Key struct {
	Kind KeyKind
	Rune rune // valid when Kind is KeyRune or KeyCtrl
}

// KeyDecoder turns a raw byte stream into Key values, collecting UTF-8
// continuation bytes and xterm/VT escape sequences into single logical
// keys (spec §6 "Key decoding"). Grounded on the CSI-parameter-parsing
// shape of other_examples' james4k-terminal/csi.go and cli-cli's
// vt10x/csi.go (both terminal-emulator CSI parsers; ved only needs the
// small subset that identifies cursor/function keys, not full CSI).
type KeyDecoder struct {
	r *bufio.Reader
}

// NewKeyDecoder wraps f (normally os.Stdin) for key-at-a-time reads.
func NewKeyDecoder(f *os.File) *KeyDecoder {
	return &KeyDecoder{r: bufio.NewReaderSize(f, 64)}
}

// Next blocks for one logical key. ctx is checked only between reads; once
// a read is in flight it completes (or errors) before cancellation is
// observed, matching spec §5's single blocking suspension point.
func (d *KeyDecoder) Next(ctx context.Context) (Key, error) {
	select {
	case <-ctx.Done():
		return Key{}, ctx.Err()
	default:
	}

	b, err := d.r.ReadByte()
	if err != nil {
		return Key{}, err
	}

	switch b {
	case 127, 8:
		return Key{Kind: KeyBackspace}, nil
	case '\r', '\n':
		return Key{Kind: KeyEnter}, nil
	case '\t':
		return Key{Kind: KeyTab}, nil
	case 0x1b:
		return d.decodeEscape()
	}

	if b < 0x20 {
		// C0 control byte: Ctrl-<letter>, e.g. 0x17 is Ctrl-W.
		return Key{Kind: KeyCtrl, Rune: rune(b) + 'a' - 1}, nil
	}

	if b < 0x80 {
		return Key{Kind: KeyRune, Rune: rune(b)}, nil
	}

	// UTF-8 continuation collection for a multi-byte codepoint.
	n := utf8SeqLen(b)
	buf := make([]byte, n)
	buf[0] = b
	for i := 1; i < n; i++ {
		nb, err := d.r.ReadByte()
		if err != nil {
			return Key{}, err
		}
		buf[i] = nb
	}
	r := decodeUTF8(buf)
	return Key{Kind: KeyRune, Rune: r}, nil
}

func utf8SeqLen(first byte) int {
	switch {
	case first&0xE0 == 0xC0:
		return 2
	case first&0xF0 == 0xE0:
		return 3
	case first&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

func decodeUTF8(b []byte) rune {
	switch len(b) {
	case 2:
		return rune(b[0]&0x1F)<<6 | rune(b[1]&0x3F)
	case 3:
		return rune(b[0]&0x0F)<<12 | rune(b[1]&0x3F)<<6 | rune(b[2]&0x3F)
	case 4:
		return rune(b[0]&0x07)<<18 | rune(b[1]&0x3F)<<12 | rune(b[2]&0x3F)<<6 | rune(b[3]&0x3F)
	default:
		return rune(b[0])
	}
}

// decodeEscape handles the byte(s) following a lone ESC: either a bare
// Escape keypress, or an xterm/VT CSI ("ESC [ ...") / SS3 ("ESC O ...")
// sequence naming an arrow, function, or navigation key.
func (d *KeyDecoder) decodeEscape() (Key, error) {
	b, err := d.r.Peek(1)
	if err != nil || len(b) == 0 {
		// No follow-up byte buffered: treat as a bare Escape. In a raw-mode
		// tty with VMIN=1/VTIME=0 a real ESC sequence arrives as one burst,
		// so an empty buffer here means the user pressed Escape alone.
		return Key{Kind: KeyEscape}, nil
	}

	switch b[0] {
	case '[':
		d.r.ReadByte()
		return d.decodeCSI()
	case 'O':
		d.r.ReadByte()
		return d.decodeSS3()
	default:
		return Key{Kind: KeyEscape}, nil
	}
}

func (d *KeyDecoder) decodeSS3() (Key, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return Key{}, err
	}
	switch b {
	case 'P':
		return Key{Kind: KeyF1}, nil
	case 'Q':
		return Key{Kind: KeyF2}, nil
	case 'R':
		return Key{Kind: KeyF3}, nil
	case 'S':
		return Key{Kind: KeyF4}, nil
	default:
		return Key{Kind: KeyEscape}, nil
	}
}

// decodeCSI reads "<params><final>" after "ESC [" and maps it to a Key.
// Supports the plain single-final-byte arrow/home/end forms and the
// "<n>~" numeric forms (PageUp/PageDown/Insert/Delete, F5-F12).
func (d *KeyDecoder) decodeCSI() (Key, error) {
	var params []byte
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return Key{}, err
		}
		if b >= '0' && b <= '9' || b == ';' {
			params = append(params, b)
			continue
		}
		switch b {
		case 'A':
			return Key{Kind: KeyArrowUp}, nil
		case 'B':
			return Key{Kind: KeyArrowDown}, nil
		case 'C':
			return Key{Kind: KeyArrowRight}, nil
		case 'D':
			return Key{Kind: KeyArrowLeft}, nil
		case 'H':
			return Key{Kind: KeyHome}, nil
		case 'F':
			return Key{Kind: KeyEnd}, nil
		case '~':
			return csiNumericKey(string(params)), nil
		default:
			return Key{Kind: KeyEscape}, nil
		}
	}
}

func csiNumericKey(params string) Key {
	switch params {
	case "1", "7":
		return Key{Kind: KeyHome}
	case "2":
		return Key{Kind: KeyInsert}
	case "3":
		return Key{Kind: KeyDelete}
	case "4", "8":
		return Key{Kind: KeyEnd}
	case "5":
		return Key{Kind: KeyPageUp}
	case "6":
		return Key{Kind: KeyPageDown}
	case "15":
		return Key{Kind: KeyF5}
	case "17":
		return Key{Kind: KeyF6}
	case "18":
		return Key{Kind: KeyF7}
	case "19":
		return Key{Kind: KeyF8}
	case "20":
		return Key{Kind: KeyF9}
	case "21":
		return Key{Kind: KeyF10}
	case "23":
		return Key{Kind: KeyF11}
	case "24":
		return Key{Kind: KeyF12}
	default:
		return Key{Kind: KeyEscape}
	}
}

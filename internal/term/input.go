package term

import (
	"bufio"
	"io"

	"github.com/joelhk/driftframe/internal/show"
)

// Key represents a keyboard input.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyRune // Regular character
)

// KeyEvent represents a key press event.
type KeyEvent struct {
	Key  Key
	Rune rune // Only valid when Key == KeyRune
}

// KeyReader reads keyboard input from a raw terminal.
type KeyReader struct {
	reader *bufio.Reader
}

// NewKeyReader creates a KeyReader from the given io.Reader. The reader
// should be raw terminal input (e.g. os.Stdin after term.MakeRaw).
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{
		reader: bufio.NewReaderSize(r, 64),
	}
}

// ReadKey reads a single key event, blocking until a key is pressed.
func (k *KeyReader) ReadKey() (KeyEvent, error) {
	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{}, err
	}

	switch b {
	case 0x03: // Ctrl+C
		return KeyEvent{Key: KeyCtrlC}, nil
	case 0x1B: // Escape or escape sequence start
		return k.readEscapeSequence()
	default:
		if b >= 0x20 && b < 0x7F {
			return KeyEvent{Key: KeyRune, Rune: rune(b)}, nil
		}
		return KeyEvent{Key: KeyUnknown}, nil
	}
}

// readEscapeSequence handles escape sequences (arrow keys, etc).
func (k *KeyReader) readEscapeSequence() (KeyEvent, error) {
	if k.reader.Buffered() == 0 {
		// Terminals send the rest of a sequence immediately; a lone ESC
		// byte is the escape key.
		return KeyEvent{Key: KeyEscape}, nil
	}

	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{Key: KeyEscape}, nil
	}
	if b != '[' && b != 'O' {
		k.reader.UnreadByte()
		return KeyEvent{Key: KeyEscape}, nil
	}

	b, err = k.reader.ReadByte()
	if err != nil {
		return KeyEvent{Key: KeyEscape}, nil
	}
	switch b {
	case 'A':
		return KeyEvent{Key: KeyUp}, nil
	case 'B':
		return KeyEvent{Key: KeyDown}, nil
	case 'C':
		return KeyEvent{Key: KeyRight}, nil
	case 'D':
		return KeyEvent{Key: KeyLeft}, nil
	default:
		// Unknown sequence, consume to its terminator.
		for k.reader.Buffered() > 0 {
			next, _ := k.reader.ReadByte()
			if (next >= 'A' && next <= 'Z') || next == '~' {
				break
			}
		}
		return KeyEvent{Key: KeyUnknown}, nil
	}
}

// ActionForKey translates a key event to the logical slideshow action:
// right/space advance, left steps back, p pauses, f toggles fullscreen,
// q/escape/ctrl+c quit.
func ActionForKey(ev KeyEvent) show.Action {
	switch ev.Key {
	case KeyRight:
		return show.ActionAdvance
	case KeyLeft:
		return show.ActionBack
	case KeyEscape, KeyCtrlC:
		return show.ActionQuit
	case KeyRune:
		switch ev.Rune {
		case ' ':
			return show.ActionAdvance
		case 'p', 'P':
			return show.ActionPause
		case 'f', 'F':
			return show.ActionFullscreen
		case 'q', 'Q':
			return show.ActionQuit
		}
	}
	return show.ActionNone
}

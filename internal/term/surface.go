// Package term implements the presentation surface on an ANSI terminal.
// Each character cell shows two pixels via the upper-half-block glyph with
// truecolor foreground and background, so a cols x rows terminal gives a
// cols x 2*rows canvas. Input is read from the raw terminal and translated
// to logical slideshow actions.
package term

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/joelhk/driftframe/internal/logging"
	"github.com/joelhk/driftframe/internal/show"
)

// ANSI escape sequences.
const (
	clearScreen  = "\033[2J"
	cursorHome   = "\033[H"
	cursorHide   = "\033[?25l"
	cursorShow   = "\033[?25h"
	altScreenOn  = "\033[?1049h"
	altScreenOff = "\033[?1049l"
	reset        = "\033[0m"
)

// Surface is a terminal-backed show.Surface.
type Surface struct {
	in       *os.File
	out      io.Writer
	oldState *term.State
	isRaw    bool

	fb     *image.RGBA
	events chan show.Action
	buf    bytes.Buffer
	log    *logging.Logger
}

// NewSurface puts the terminal into raw mode, switches to the alternate
// screen, and starts the key reader. Call Close to restore the terminal.
func NewSurface(out io.Writer, log *logging.Logger) (*Surface, error) {
	if log == nil {
		log = logging.New()
	}
	s := &Surface{
		in:     os.Stdin,
		out:    out,
		events: make(chan show.Action, 10),
		log:    log,
	}

	fd := int(s.in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	s.oldState = oldState
	s.isRaw = true

	cols, rows, err := term.GetSize(fd)
	if err != nil {
		s.restore()
		return nil, fmt.Errorf("failed to get terminal size: %w", err)
	}
	s.fb = image.NewRGBA(image.Rect(0, 0, cols, rows*2))

	fmt.Fprint(s.out, altScreenOn+cursorHide+clearScreen)

	go s.readInput()
	return s, nil
}

// readInput translates key presses to actions on the event channel.
func (s *Surface) readInput() {
	reader := NewKeyReader(s.in)
	for {
		ev, err := reader.ReadKey()
		if err != nil {
			if err != io.EOF {
				s.log.Warn("input read failed", "error", err)
			}
			return
		}
		action := ActionForKey(ev)
		if action == show.ActionNone {
			continue
		}
		select {
		case s.events <- action:
		default:
			// Channel full, drop the key press.
		}
	}
}

// Size returns the pixel dimensions of the canvas.
func (s *Surface) Size() (width, height int) {
	b := s.fb.Bounds()
	return b.Dx(), b.Dy()
}

// Clear resets the frame to opaque black.
func (s *Surface) Clear() {
	pix := s.fb.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = 0
		pix[i+1] = 0
		pix[i+2] = 0
		pix[i+3] = 0xFF
	}
}

// Draw composites layer onto the frame at the given position, scaling the
// layer's own alpha by the global alpha (src-over).
func (s *Surface) Draw(layer image.Image, at image.Point, alpha uint8) {
	if alpha == 0 {
		return
	}
	lb := layer.Bounds()
	fbB := s.fb.Bounds()
	ga := uint32(alpha)

	for y := 0; y < lb.Dy(); y++ {
		fy := at.Y + y
		if fy < fbB.Min.Y || fy >= fbB.Max.Y {
			continue
		}
		for x := 0; x < lb.Dx(); x++ {
			fx := at.X + x
			if fx < fbB.Min.X || fx >= fbB.Max.X {
				continue
			}

			// Premultiplied 16-bit channels, scaled by the global alpha.
			sr, sg, sb, sa := layer.At(lb.Min.X+x, lb.Min.Y+y).RGBA()
			sr = sr * ga / 255
			sg = sg * ga / 255
			sb = sb * ga / 255
			sa = sa * ga / 255
			if sa == 0 {
				continue
			}

			o := s.fb.PixOffset(fx, fy)
			dr := uint32(s.fb.Pix[o]) * 0x101
			dg := uint32(s.fb.Pix[o+1]) * 0x101
			db := uint32(s.fb.Pix[o+2]) * 0x101
			da := uint32(s.fb.Pix[o+3]) * 0x101

			inv := 0xFFFF - sa
			s.fb.Pix[o] = uint8((sr + dr*inv/0xFFFF) >> 8)
			s.fb.Pix[o+1] = uint8((sg + dg*inv/0xFFFF) >> 8)
			s.fb.Pix[o+2] = uint8((sb + db*inv/0xFFFF) >> 8)
			s.fb.Pix[o+3] = uint8((sa + da*inv/0xFFFF) >> 8)
		}
	}
}

// Present writes the composed frame as half-block cells.
func (s *Surface) Present() error {
	b := s.fb.Bounds()
	s.buf.Reset()
	s.buf.WriteString(cursorHome)

	for y := b.Min.Y; y+1 < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := s.fb.RGBAAt(x, y)
			bot := s.fb.RGBAAt(x, y+1)
			writeCell(&s.buf, top, bot)
		}
		s.buf.WriteString(reset)
		if y+2 < b.Max.Y {
			s.buf.WriteString("\r\n")
		}
	}

	_, err := s.out.Write(s.buf.Bytes())
	return err
}

// writeCell emits one half-block cell: foreground is the top pixel,
// background the bottom.
func writeCell(buf *bytes.Buffer, top, bot color.RGBA) {
	fmt.Fprintf(buf, "\033[38;2;%d;%d;%dm\033[48;2;%d;%d;%dm▀",
		top.R, top.G, top.B, bot.R, bot.G, bot.B)
}

// SetFullscreen toggles the alternate screen buffer. The terminal cannot
// change its own window size, so this is the closest windowed analogue.
func (s *Surface) SetFullscreen(on bool) error {
	if on {
		fmt.Fprint(s.out, altScreenOn+cursorHide+clearScreen)
	} else {
		fmt.Fprint(s.out, altScreenOff+cursorShow)
	}
	return nil
}

// Events streams logical user actions.
func (s *Surface) Events() <-chan show.Action {
	return s.events
}

// Close restores the terminal state.
func (s *Surface) Close() error {
	fmt.Fprint(s.out, reset+altScreenOff+cursorShow)
	return s.restore()
}

func (s *Surface) restore() error {
	if !s.isRaw || s.oldState == nil {
		return nil
	}
	if err := term.Restore(int(s.in.Fd()), s.oldState); err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}
	s.isRaw = false
	s.oldState = nil
	return nil
}

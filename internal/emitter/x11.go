package emitter

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"unicode/utf8"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
)

const (
	keysymReturn  xproto.Keysym = 0xff0d
	keysymTab     xproto.Keysym = 0xff09
	keysymUnicode xproto.Keysym = 0x01000000
)

// PartialCommitError reports a commit that stopped after Sent bytes of the
// text reached the window.
type PartialCommitError struct {
	Sent int
	Err  error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("commit stopped after %d bytes: %v", e.Sent, e.Err)
}

func (e *PartialCommitError) Unwrap() error { return e.Err }

// keystroke is one key to type and the byte offset in the commit just past
// the rune it came from.
type keystroke struct {
	sym xproto.Keysym
	end int
}

// keysymFor maps a committed rune to the keysym that types it. Carriage
// returns produce no key.
func keysymFor(r rune) (xproto.Keysym, bool) {
	switch {
	case r == '\n':
		return keysymReturn, true
	case r == '\t':
		return keysymTab, true
	case r == '\r':
		return 0, false
	case r >= 0x20 && r <= 0x7e, r >= 0xa0 && r <= 0xff:
		// Latin-1 keysyms equal their code points.
		return xproto.Keysym(r), true
	default:
		return keysymUnicode | xproto.Keysym(r), true
	}
}

func planKeystrokes(text string) ([]keystroke, error) {
	if !utf8.ValidString(text) {
		return nil, errInvalidUTF8
	}
	plan := make([]keystroke, 0, utf8.RuneCountInString(text))
	for i, r := range text {
		if sym, ok := keysymFor(r); ok {
			plan = append(plan, keystroke{sym: sym, end: i + utf8.RuneLen(r)})
		}
	}
	return plan, nil
}

// spareKeycode picks the first keycode with no keysyms bound, or the highest
// keycode when the map is full. keysyms is the GetKeyboardMapping reply for
// keycodes lowest..highest.
func spareKeycode(lowest, highest byte, width int, keysyms []xproto.Keysym) byte {
	for kc := int(lowest); kc <= int(highest); kc++ {
		start := (kc - int(lowest)) * width
		if start+width > len(keysyms) {
			break
		}
		if allZero(keysyms[start : start+width]) {
			return byte(kc)
		}
	}
	return highest
}

func allZero(syms []xproto.Keysym) bool {
	for _, sym := range syms {
		if sym != 0 {
			return false
		}
	}
	return true
}

// X11Output types commits into the focused X11 window through XTEST. It
// borrows one keycode, remaps it whenever the next rune differs from the
// last one typed, and gives the keycode its own keysyms back after each
// commit.
type X11Output struct {
	mu       sync.Mutex
	conn     *xgb.Conn
	keycode  xproto.Keycode
	width    byte
	original []xproto.Keysym
	mapped   xproto.Keysym
}

// OpenX11 connects to $DISPLAY.
func OpenX11() (*X11Output, error) {
	display := os.Getenv("DISPLAY")
	if display == "" {
		return nil, errors.New("open x11 output: DISPLAY not set")
	}
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("open x11 output: %w", err)
	}
	o, err := borrowKeycode(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open x11 output: %w", err)
	}
	return o, nil
}

func borrowKeycode(conn *xgb.Conn) (*X11Output, error) {
	if err := xtest.Init(conn); err != nil {
		return nil, fmt.Errorf("xtest: %w", err)
	}
	setup := xproto.Setup(conn)
	lowest, highest := byte(setup.MinKeycode), byte(setup.MaxKeycode)
	reply, err := xproto.GetKeyboardMapping(conn, setup.MinKeycode, highest-lowest+1).Reply()
	if err != nil {
		return nil, fmt.Errorf("keyboard mapping: %w", err)
	}
	width := int(reply.KeysymsPerKeycode)
	if width == 0 {
		return nil, errors.New("keyboard mapping has no keysyms per keycode")
	}
	kc := spareKeycode(lowest, highest, width, reply.Keysyms)
	start := (int(kc) - int(lowest)) * width
	o := &X11Output{
		conn:     conn,
		keycode:  xproto.Keycode(kc),
		width:    byte(width),
		original: append([]xproto.Keysym(nil), reply.Keysyms[start:start+width]...),
	}
	return o, nil
}

// SendText types text. When a key fails the error is a *PartialCommitError
// so the caller can deliver the rest elsewhere.
func (o *X11Output) SendText(text string) error {
	plan, err := planKeystrokes(text)
	if err != nil || len(plan) == 0 {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	sent := 0
	for _, k := range plan {
		if err := o.press(k.sym); err != nil {
			o.restore()
			return &PartialCommitError{Sent: sent, Err: err}
		}
		sent = k.end
	}
	if err := o.restore(); err != nil {
		return fmt.Errorf("restore keycode %d: %w", o.keycode, err)
	}
	return nil
}

func (o *X11Output) press(sym xproto.Keysym) error {
	if sym != o.mapped {
		if err := o.remap(sym); err != nil {
			return err
		}
	}
	for _, kind := range []byte{xproto.KeyPress, xproto.KeyRelease} {
		if err := xtest.FakeInputChecked(o.conn, kind, byte(o.keycode), 0, xproto.WindowNone, 0, 0, 0).Check(); err != nil {
			return err
		}
	}
	return nil
}

func (o *X11Output) remap(sym xproto.Keysym) error {
	syms := make([]xproto.Keysym, o.width)
	syms[0] = sym
	if err := xproto.ChangeKeyboardMappingChecked(o.conn, 1, o.keycode, o.width, syms).Check(); err != nil {
		return err
	}
	o.mapped = sym
	return nil
}

// restore puts the borrowed keycode back the way it was found.
func (o *X11Output) restore() error {
	if o.mapped == 0 {
		return nil
	}
	err := xproto.ChangeKeyboardMappingChecked(o.conn, 1, o.keycode, o.width, o.original).Check()
	o.mapped = 0
	o.conn.Sync()
	return err
}

func (o *X11Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	err := o.restore()
	o.conn.Close()
	return err
}

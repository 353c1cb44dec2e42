package emitter

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"kanafe/internal/state"
)

// Window describes the X11 window holding the input focus.
type Window struct {
	ID       uint32
	Class    []string
	Terminal bool
	// Rect is in root window coordinates.
	Rect state.Rect
}

// Focus queries the active window through EWMH properties.
type Focus struct {
	conn  *xgb.Conn
	root  xproto.Window
	atoms map[string]xproto.Atom
}

func OpenFocus() (*Focus, error) {
	display := os.Getenv("DISPLAY")
	if display == "" {
		return nil, fmt.Errorf("DISPLAY not set")
	}
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("connect x server: %w", err)
	}
	f := &Focus{
		conn:  conn,
		root:  xproto.Setup(conn).DefaultScreen(conn).Root,
		atoms: make(map[string]xproto.Atom),
	}
	for _, name := range []string{"_NET_ACTIVE_WINDOW", "WM_CLASS"} {
		reply, err := xproto.InternAtom(conn, true, uint16(len(name)), name).Reply()
		if err != nil {
			conn.Close()
			return nil, err
		}
		f.atoms[name] = reply.Atom
	}
	return f, nil
}

func (f *Focus) Close() error {
	if f.conn != nil {
		f.conn.Close()
		f.conn = nil
	}
	return nil
}

// Active returns the focused window.
func (f *Focus) Active() (Window, error) {
	activeAtom := f.atoms["_NET_ACTIVE_WINDOW"]
	if activeAtom == 0 {
		return Window{}, errors.New("missing _NET_ACTIVE_WINDOW atom")
	}
	reply, err := xproto.GetProperty(f.conn, false, f.root, activeAtom, xproto.AtomWindow, 0, 1).Reply()
	if err != nil {
		return Window{}, err
	}
	if reply == nil || reply.ValueLen == 0 {
		return Window{}, errors.New("no active window")
	}
	win := xproto.Window(get32(reply.Value))
	if win == 0 {
		return Window{}, errors.New("invalid active window")
	}

	window := Window{ID: uint32(win), Class: f.classNames(win)}
	window.Terminal = isTerminalClass(window.Class)

	geometry, err := xproto.GetGeometry(f.conn, xproto.Drawable(win)).Reply()
	if err != nil {
		return window, err
	}
	origin, err := xproto.TranslateCoordinates(f.conn, win, f.root, 0, 0).Reply()
	if err != nil {
		return window, err
	}
	window.Rect = state.Rect{
		X:      int(origin.DstX),
		Y:      int(origin.DstY),
		Width:  int(geometry.Width),
		Height: int(geometry.Height),
	}
	return window, nil
}

func (f *Focus) classNames(win xproto.Window) []string {
	atom := f.atoms["WM_CLASS"]
	if atom == 0 {
		return nil
	}
	reply, err := xproto.GetProperty(f.conn, false, win, atom, xproto.AtomString, 0, 64).Reply()
	if err != nil || reply == nil {
		return nil
	}
	return splitClass(reply.Value)
}

// splitClass splits a NUL separated WM_CLASS value.
func splitClass(raw []byte) []string {
	parts := strings.Split(string(raw), "\x00")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, strings.ToLower(part))
	}
	return out
}

func get32(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

var terminalNames = map[string]struct{}{
	"alacritty":             {},
	"kitty":                 {},
	"wezterm":               {},
	"wezterm-gui":           {},
	"ghostty":               {},
	"gnome-terminal":        {},
	"gnome-terminal-server": {},
	"kgx":                   {},
	"konsole":               {},
	"xfce4-terminal":        {},
	"terminator":            {},
	"tilix":                 {},
	"xterm":                 {},
	"uxterm":                {},
	"urxvt":                 {},
	"foot":                  {},
	"st":                    {},
	"st-256color":           {},
	"mlterm":                {},
}

func isTerminalClass(names []string) bool {
	for _, name := range names {
		if _, ok := terminalNames[name]; ok {
			return true
		}
		if strings.Contains(name, "terminal") {
			return true
		}
	}
	return false
}

// windowSource is the part of Focus that FocusedOutput needs.
type windowSource interface {
	Active() (Window, error)
}

// FocusedOutput types into X11 unless the focused window is the terminal
// kanafe itself runs in, where injected keys would be read back as input.
// Those commits go to the fallback instead, as does the unsent rest of a
// commit X11 only partly typed.
type FocusedOutput struct {
	focus    windowSource
	self     uint32
	x11      Output
	fallback Output
}

// NewFocusedOutput records the currently focused window as kanafe's own.
func NewFocusedOutput(focus windowSource, x11, fallback Output) (*FocusedOutput, error) {
	self, err := focus.Active()
	if err != nil {
		return nil, fmt.Errorf("detect own window: %w", err)
	}
	return &FocusedOutput{focus: focus, self: self.ID, x11: x11, fallback: fallback}, nil
}

func (o *FocusedOutput) SendText(text string) error {
	window, err := o.focus.Active()
	if err != nil || window.ID == o.self {
		return o.fallback.SendText(text)
	}
	err = o.x11.SendText(text)
	var partial *PartialCommitError
	if errors.As(err, &partial) {
		if ferr := o.fallback.SendText(text[partial.Sent:]); ferr != nil {
			return errors.Join(err, ferr)
		}
		return nil
	}
	return err
}

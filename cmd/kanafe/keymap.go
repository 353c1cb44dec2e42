package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/eiannone/keyboard"

	"kanafe/internal/engine"
	"kanafe/internal/state"
	"kanafe/internal/types"
)

// keyEvent is one key press as reported by the keyboard package. ch is
// zero for special keys.
type keyEvent struct {
	ch  rune
	key keyboard.Key
}

type action int

const (
	actionNone action = iota
	// actionCommand sends the command to the engine.
	actionCommand
	actionNewline
	actionBackspace
	actionQuit
)

// idle reports whether nothing is being composed, so editing keys belong to
// the committed text.
func idle(s state.IMEState) bool {
	return s.InputMethod.Kind == state.MethodNormal && s.Special.Kind == state.SpecialNone
}

func mapKey(ev keyEvent, s state.IMEState) (action, engine.Command) {
	if ev.ch != 0 {
		return actionCommand, engine.AppendKey{Rune: ev.ch}
	}
	switch ev.key {
	case keyboard.KeySpace:
		return actionCommand, engine.AppendKey{Rune: ' '}
	case keyboard.KeyEnter:
		if idle(s) {
			return actionNewline, nil
		}
		return actionCommand, engine.Confirm{}
	case keyboard.KeyCtrlJ:
		if idle(s) {
			return actionCommand, engine.SetInputMode{Mode: types.ModeHiragana}
		}
		return actionCommand, engine.Confirm{}
	case keyboard.KeyBackspace, keyboard.KeyBackspace2:
		if idle(s) {
			return actionBackspace, nil
		}
		return actionCommand, engine.Delete{}
	case keyboard.KeyEsc, keyboard.KeyCtrlG:
		if idle(s) {
			return actionNone, nil
		}
		return actionCommand, engine.Cancel{}
	case keyboard.KeyArrowLeft, keyboard.KeyCtrlB:
		return actionCommand, engine.CursorLeft{}
	case keyboard.KeyArrowRight, keyboard.KeyCtrlF:
		return actionCommand, engine.CursorRight{}
	case keyboard.KeyHome, keyboard.KeyCtrlA:
		return actionCommand, engine.CursorHome{}
	case keyboard.KeyEnd, keyboard.KeyCtrlE:
		return actionCommand, engine.CursorEnd{}
	case keyboard.KeyArrowDown:
		return actionCommand, engine.CycleCandidate{Delta: 1}
	case keyboard.KeyArrowUp:
		return actionCommand, engine.CycleCandidate{Delta: -1}
	case keyboard.KeyCtrlC, keyboard.KeyCtrlD:
		return actionQuit, nil
	default:
		return actionNone, nil
	}
}

var namedKeys = map[string]keyboard.Key{
	"enter": keyboard.KeyEnter,
	"cr":    keyboard.KeyEnter,
	"space": keyboard.KeySpace,
	"bs":    keyboard.KeyBackspace2,
	"esc":   keyboard.KeyEsc,
	"left":  keyboard.KeyArrowLeft,
	"right": keyboard.KeyArrowRight,
	"up":    keyboard.KeyArrowUp,
	"down":  keyboard.KeyArrowDown,
	"home":  keyboard.KeyHome,
	"end":   keyboard.KeyEnd,
	"c-a":   keyboard.KeyCtrlA,
	"c-b":   keyboard.KeyCtrlB,
	"c-c":   keyboard.KeyCtrlC,
	"c-e":   keyboard.KeyCtrlE,
	"c-f":   keyboard.KeyCtrlF,
	"c-g":   keyboard.KeyCtrlG,
	"c-j":   keyboard.KeyCtrlJ,
}

// parseKeys turns replay text into key events. Printable characters stand
// for themselves, a newline is Enter, and special keys are written as
// <name>, for example <bs>, <esc> or <c-g>. <lt> is a literal '<'.
func parseKeys(text string) ([]keyEvent, error) {
	events := make([]keyEvent, 0, len(text))
	for len(text) > 0 {
		r, size := utf8.DecodeRuneInString(text)
		switch {
		case r == '\n':
			events = append(events, keyEvent{key: keyboard.KeyEnter})
			text = text[1:]
		case r == '\r':
			text = text[1:]
		case r == '<':
			end := strings.IndexByte(text, '>')
			if end < 0 {
				return nil, fmt.Errorf("unterminated key name in %q", text)
			}
			name := strings.ToLower(text[1:end])
			text = text[end+1:]
			if name == "lt" {
				events = append(events, keyEvent{ch: '<'})
				continue
			}
			key, ok := namedKeys[name]
			if !ok {
				return nil, fmt.Errorf("unknown key <%s>", name)
			}
			events = append(events, keyEvent{key: key})
		case r == ' ':
			events = append(events, keyEvent{key: keyboard.KeySpace})
			text = text[1:]
		default:
			events = append(events, keyEvent{ch: r})
			text = text[size:]
		}
	}
	return events, nil
}

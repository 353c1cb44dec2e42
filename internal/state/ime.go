// Package state holds the immutable states of the composition engine and the
// rendering of the active state into marked text.
package state

import (
	"strings"

	"kanafe/internal/types"
)

type MethodKind int

const (
	MethodNormal MethodKind = iota
	MethodComposing
	MethodSelecting
)

func (k MethodKind) String() string {
	switch k {
	case MethodNormal:
		return "normal"
	case MethodComposing:
		return "composing"
	case MethodSelecting:
		return "selecting"
	default:
		return "unknown"
	}
}

// InputMethod is the top level state. Only the payload matching Kind is
// meaningful; the zero value is Normal.
type InputMethod struct {
	Kind      MethodKind
	Composing ComposingState
	Selecting SelectingState
}

func Normal() InputMethod {
	return InputMethod{Kind: MethodNormal}
}

func Composing(c ComposingState) InputMethod {
	return InputMethod{Kind: MethodComposing, Composing: c}
}

func Selecting(s SelectingState) InputMethod {
	return InputMethod{Kind: MethodSelecting, Selecting: s}
}

func (m InputMethod) MarkedTextElements(mode types.InputMode) []Element {
	switch m.Kind {
	case MethodComposing:
		return m.Composing.MarkedTextElements(mode)
	case MethodSelecting:
		return m.Selecting.MarkedTextElements(mode)
	default:
		return nil
	}
}

// IMEState is everything the dispatcher owns.
type IMEState struct {
	InputMode   types.InputMode
	InputMethod InputMethod
	Special     SpecialState
}

// DisplayText renders the state as "▽text", "▼candidate" or
// "[登録：yomi]text▽..." marked text.
func (s IMEState) DisplayText() MarkedText {
	underlying := s.InputMethod.MarkedTextElements(s.InputMode)
	switch s.Special.Kind {
	case SpecialRegister:
		return MarkedText{Elements: compact(registerElements(s.Special.Register, underlying))}
	case SpecialUnregister:
		return MarkedText{Elements: compact(unregisterElements(s.Special.Unregister, underlying))}
	default:
		return MarkedText{Elements: underlying}
	}
}

func registerElements(register RegisterState, underlying []Element) []Element {
	composing := register.Prev.Composing
	yomi := strings.Join(composing.SubText(), "")
	if composing.Okuri != nil {
		yomi += "*" + composing.OkuriString(register.Prev.Mode)
	}
	elements := []Element{Plain("[登録：" + yomi + "]")}
	if register.Cursor == nil {
		elements = append(elements, Plain(register.Text))
		return append(elements, underlying...)
	}
	before, after := splitAt(register.Text, *register.Cursor)
	elements = append(elements, Plain(before))
	elements = append(elements, underlying...)
	return append(elements, CursorMarker, Plain(after))
}

func unregisterElements(unregister UnregisterState, underlying []Element) []Element {
	selecting := unregister.Prev.Selecting
	candidate := selecting.Selected()
	prompt := candidate.ToMidashiString(selecting.Yomi) + " /" + candidate.CandidateString() + "/ を削除します(yes/no)"
	elements := []Element{Plain(prompt), Plain(unregister.Text)}
	return append(elements, underlying...)
}

package state

import "kanafe/internal/types"

type RegisterPrev struct {
	Mode      types.InputMode
	Composing ComposingState
}

// RegisterState is the word registration buffer. Text only ever holds
// confirmed characters; composition happens in the underlying input method.
type RegisterState struct {
	Prev RegisterPrev
	Yomi string
	Text string
	// Cursor counts characters of Text, nil means the end.
	Cursor *int
}

func NewRegisterState(prev RegisterPrev, yomi string) RegisterState {
	return RegisterState{
		Prev: RegisterPrev{Mode: prev.Mode, Composing: prev.Composing.Clone()},
		Yomi: yomi,
	}
}

func (r RegisterState) Clone() RegisterState {
	return RegisterState{
		Prev:   RegisterPrev{Mode: r.Prev.Mode, Composing: r.Prev.Composing.Clone()},
		Yomi:   r.Yomi,
		Text:   r.Text,
		Cursor: cloneCursor(r.Cursor),
	}
}

// AppendText inserts text at the cursor.
func (r RegisterState) AppendText(text string) RegisterState {
	next := r.Clone()
	if r.Cursor == nil {
		next.Text = r.Text + text
		return next
	}
	before, after := splitAt(r.Text, *r.Cursor)
	next.Text = before + text + after
	next.Cursor = intPtr(*r.Cursor + characterCount(text))
	return next
}

// DropLast deletes the character before the cursor.
func (r RegisterState) DropLast() RegisterState {
	if r.Text == "" {
		return r
	}
	next := r.Clone()
	if r.Cursor == nil {
		next.Text = dropLastCharacter(r.Text)
		return next
	}
	cursor := *r.Cursor
	if cursor == 0 {
		return r
	}
	before, after := splitAt(r.Text, cursor)
	next.Text = dropLastCharacter(before) + after
	next.Cursor = intPtr(cursor - 1)
	return next
}

// Okuri returns the okurigana of the reading being registered.
func (r RegisterState) Okuri() (string, bool) {
	return okuriKana(r.Prev.Composing)
}

func (r RegisterState) MoveCursorLeft() RegisterState {
	if r.Text == "" {
		return r
	}
	next := r.Clone()
	if r.Cursor == nil {
		next.Cursor = intPtr(max(characterCount(r.Text)-1, 0))
	} else {
		next.Cursor = intPtr(max(*r.Cursor-1, 0))
	}
	return next
}

func (r RegisterState) MoveCursorRight() RegisterState {
	if r.Cursor == nil {
		return r
	}
	next := r.Clone()
	if *r.Cursor+1 >= characterCount(r.Text) {
		next.Cursor = nil
	} else {
		next.Cursor = intPtr(*r.Cursor + 1)
	}
	return next
}

func (r RegisterState) MoveCursorFirst() RegisterState {
	if r.Text == "" {
		return r
	}
	next := r.Clone()
	next.Cursor = intPtr(0)
	return next
}

func (r RegisterState) MoveCursorLast() RegisterState {
	if r.Text == "" {
		return r
	}
	next := r.Clone()
	next.Cursor = nil
	return next
}

type UnregisterPrev struct {
	Mode      types.InputMode
	Selecting SelectingState
}

// UnregisterState asks whether the selected candidate should be removed.
// It only accepts typed answers, the cursor never moves.
type UnregisterState struct {
	Prev UnregisterPrev
	Text string
}

func NewUnregisterState(prev UnregisterPrev) UnregisterState {
	return UnregisterState{Prev: UnregisterPrev{Mode: prev.Mode, Selecting: prev.Selecting.Clone()}}
}

func (u UnregisterState) Clone() UnregisterState {
	return UnregisterState{
		Prev: UnregisterPrev{Mode: u.Prev.Mode, Selecting: u.Prev.Selecting.Clone()},
		Text: u.Text,
	}
}

func (u UnregisterState) AppendText(text string) UnregisterState {
	next := u.Clone()
	next.Text = u.Text + text
	return next
}

func (u UnregisterState) DropLast() UnregisterState {
	next := u.Clone()
	next.Text = dropLastCharacter(u.Text)
	return next
}

// Confirmed reports whether the answer is "yes".
func (u UnregisterState) Confirmed() bool {
	return u.Text == "yes"
}

func (u UnregisterState) MoveCursorLeft() UnregisterState  { return u }
func (u UnregisterState) MoveCursorRight() UnregisterState { return u }
func (u UnregisterState) MoveCursorFirst() UnregisterState { return u }
func (u UnregisterState) MoveCursorLast() UnregisterState  { return u }

type SpecialKind int

const (
	SpecialNone SpecialKind = iota
	SpecialRegister
	SpecialUnregister
)

func (k SpecialKind) String() string {
	switch k {
	case SpecialNone:
		return "none"
	case SpecialRegister:
		return "register"
	case SpecialUnregister:
		return "unregister"
	default:
		return "unknown"
	}
}

// SpecialState is the overlay entered from inside a conversion. Only the
// payload matching Kind is meaningful; the zero value is no overlay.
type SpecialState struct {
	Kind       SpecialKind
	Register   RegisterState
	Unregister UnregisterState
}

func Register(r RegisterState) SpecialState {
	return SpecialState{Kind: SpecialRegister, Register: r}
}

func Unregister(u UnregisterState) SpecialState {
	return SpecialState{Kind: SpecialUnregister, Unregister: u}
}

func (s SpecialState) Active() bool { return s.Kind != SpecialNone }

func (s SpecialState) AppendText(text string) SpecialState {
	switch s.Kind {
	case SpecialRegister:
		return Register(s.Register.AppendText(text))
	case SpecialUnregister:
		return Unregister(s.Unregister.AppendText(text))
	}
	return s
}

func (s SpecialState) DropLast() SpecialState {
	switch s.Kind {
	case SpecialRegister:
		return Register(s.Register.DropLast())
	case SpecialUnregister:
		return Unregister(s.Unregister.DropLast())
	}
	return s
}

func (s SpecialState) MoveCursorLeft() SpecialState {
	switch s.Kind {
	case SpecialRegister:
		return Register(s.Register.MoveCursorLeft())
	case SpecialUnregister:
		return Unregister(s.Unregister.MoveCursorLeft())
	}
	return s
}

func (s SpecialState) MoveCursorRight() SpecialState {
	switch s.Kind {
	case SpecialRegister:
		return Register(s.Register.MoveCursorRight())
	case SpecialUnregister:
		return Unregister(s.Unregister.MoveCursorRight())
	}
	return s
}

func (s SpecialState) MoveCursorFirst() SpecialState {
	switch s.Kind {
	case SpecialRegister:
		return Register(s.Register.MoveCursorFirst())
	case SpecialUnregister:
		return Unregister(s.Unregister.MoveCursorFirst())
	}
	return s
}

func (s SpecialState) MoveCursorLast() SpecialState {
	switch s.Kind {
	case SpecialRegister:
		return Register(s.Register.MoveCursorLast())
	case SpecialUnregister:
		return Unregister(s.Unregister.MoveCursorLast())
	}
	return s
}

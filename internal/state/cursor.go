package state

// CursorMover is implemented by every state whose text can be walked with
// the cursor keys. Each method returns a new value.
type CursorMover[T any] interface {
	MoveCursorLeft() T
	MoveCursorRight() T
	MoveCursorFirst() T
	MoveCursorLast() T
}

// Editor is the shared surface of the overlay states.
type Editor[T any] interface {
	CursorMover[T]
	AppendText(text string) T
	DropLast() T
}

var (
	_ CursorMover[ComposingState] = ComposingState{}
	_ Editor[RegisterState]       = RegisterState{}
	_ Editor[UnregisterState]     = UnregisterState{}
	_ Editor[SpecialState]        = SpecialState{}
)

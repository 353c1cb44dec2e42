package engine

import (
	"kanafe/internal/state"
	"kanafe/internal/types"
)

// Command is one input event for the engine. The concrete types below are
// the complete set.
type Command interface {
	isCommand()
}

type (
	// AppendKey is a printable key as typed, case included.
	AppendKey struct {
		Rune rune
	}
	Delete      struct{}
	CursorLeft  struct{}
	CursorRight struct{}
	CursorHome  struct{}
	CursorEnd   struct{}
	Confirm     struct{}
	Cancel      struct{}
	// CycleCandidate moves the selection by Delta.
	CycleCandidate struct {
		Delta int
	}
	StartRegister   struct{}
	StartUnregister struct{}
	ConfirmOverlay  struct{}
	CancelOverlay   struct{}
	// SetInputMode fixes any composition and switches the script.
	SetInputMode struct {
		Mode types.InputMode
	}
	// ToggleKana commits the composition in the other kana script, or
	// switches between hiragana and katakana when nothing is composed.
	ToggleKana struct{}
)

func (AppendKey) isCommand()       {}
func (Delete) isCommand()          {}
func (CursorLeft) isCommand()      {}
func (CursorRight) isCommand()     {}
func (CursorHome) isCommand()      {}
func (CursorEnd) isCommand()       {}
func (Confirm) isCommand()         {}
func (Cancel) isCommand()          {}
func (CycleCandidate) isCommand()  {}
func (StartRegister) isCommand()   {}
func (StartUnregister) isCommand() {}
func (ConfirmOverlay) isCommand()  {}
func (CancelOverlay) isCommand()   {}
func (SetInputMode) isCommand()    {}
func (ToggleKana) isCommand()      {}

func isCursorCommand(cmd Command) bool {
	switch cmd.(type) {
	case CursorLeft, CursorRight, CursorHome, CursorEnd:
		return true
	}
	return false
}

// applyCursor runs a cursor command on any state that can move its cursor.
func applyCursor[T state.CursorMover[T]](v T, cmd Command) T {
	switch cmd.(type) {
	case CursorLeft:
		return v.MoveCursorLeft()
	case CursorRight:
		return v.MoveCursorRight()
	case CursorHome:
		return v.MoveCursorFirst()
	case CursorEnd:
		return v.MoveCursorLast()
	}
	return v
}

package engine

import (
	"unicode"

	"kanafe/internal/state"
)

// handleRegister takes the commands that edit or finish the registration.
// ok is false when the underlying method should handle cmd instead.
func (e *Engine) handleRegister(s state.IMEState, cmd Command) (state.IMEState, bool) {
	switch cmd.(type) {
	case ConfirmOverlay:
		return e.confirmRegister(s), true
	case CancelOverlay:
		return cancelRegister(s), true
	case StartRegister, StartUnregister:
		if s.InputMethod.Kind != state.MethodSelecting {
			e.logger.Debug("nested overlay refused", "yomi", s.Special.Register.Yomi)
			return s, true
		}
		return s, false
	}
	if s.InputMethod.Kind != state.MethodNormal {
		return s, false
	}
	switch cmd.(type) {
	case Confirm:
		return e.confirmRegister(s), true
	case Cancel:
		return cancelRegister(s), true
	case Delete:
		s.Special = s.Special.DropLast()
		return s, true
	}
	if isCursorCommand(cmd) {
		s.Special = applyCursor(s.Special, cmd)
		return s, true
	}
	return s, false
}

// confirmRegister stores the typed word and commits it with the okurigana
// of the reading. An empty word cancels the registration.
func (e *Engine) confirmRegister(s state.IMEState) state.IMEState {
	s = e.fix(s)
	register := s.Special.Register
	if register.Text == "" {
		return cancelRegister(s)
	}
	if err := e.dict.Persist(register.Yomi, register.Text); err != nil {
		e.report("persist entry "+register.Yomi, err)
	}
	next := state.IMEState{InputMode: register.Prev.Mode, InputMethod: state.Normal()}
	return e.commit(next, register.Text+register.Prev.Composing.OkuriString(register.Prev.Mode))
}

func cancelRegister(s state.IMEState) state.IMEState {
	prev := s.Special.Register.Prev
	return state.IMEState{InputMode: prev.Mode, InputMethod: state.Composing(prev.Composing)}
}

// handleUnregister reads the yes/no answer. Keys are taken literally.
func (e *Engine) handleUnregister(s state.IMEState, cmd Command) state.IMEState {
	switch cmd := cmd.(type) {
	case AppendKey:
		if unicode.IsPrint(cmd.Rune) {
			s.Special = s.Special.AppendText(string(cmd.Rune))
		}
	case Delete:
		s.Special = s.Special.DropLast()
	case CursorLeft, CursorRight, CursorHome, CursorEnd:
		s.Special = applyCursor(s.Special, cmd)
	case Confirm, ConfirmOverlay:
		return e.confirmUnregister(s)
	case Cancel, CancelOverlay:
		return cancelUnregister(s)
	}
	return s
}

func (e *Engine) confirmUnregister(s state.IMEState) state.IMEState {
	unregister := s.Special.Unregister
	if !unregister.Confirmed() {
		return cancelUnregister(s)
	}
	selecting := unregister.Prev.Selecting
	candidate := selecting.Selected()
	if err := e.dict.Remove(candidate.ToMidashiString(selecting.Yomi), candidate.CandidateString()); err != nil {
		e.report("remove entry "+selecting.Yomi, err)
	}
	return state.IMEState{InputMode: unregister.Prev.Mode, InputMethod: state.Normal()}
}

func cancelUnregister(s state.IMEState) state.IMEState {
	prev := s.Special.Unregister.Prev
	return state.IMEState{InputMode: prev.Mode, InputMethod: state.Selecting(prev.Selecting)}
}

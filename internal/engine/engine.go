// Package engine owns the current composition state and applies commands to
// it, committing finished text to the host output.
package engine

import (
	"fmt"
	"io"
	"log/slog"
	"unicode"

	"kanafe/internal/emitter"
	"kanafe/internal/kana"
	"kanafe/internal/logging"
	"kanafe/internal/romaji"
	"kanafe/internal/state"
	"kanafe/internal/types"
)

// Dictionary supplies candidates and records changes made by the user.
type Dictionary interface {
	Lookup(yomi string) []state.Candidate
	Persist(yomi, word string) error
	Remove(yomi, word string) error
}

// Table converts romaji keys into kana.
type Table interface {
	Convert(buffer string, key rune) romaji.Result
}

type Options struct {
	// Table defaults to romaji.DefaultTable.
	Table      Table
	Dictionary Dictionary
	// Output receives committed text. Commits are dropped when nil.
	Output emitter.Output
	Logger *slog.Logger
	// Reporter is called with dictionary and output failures. They never
	// change the resulting state.
	Reporter    func(error)
	DefaultMode types.InputMode
}

// Engine is the mode dispatcher. It is not safe for concurrent use.
type Engine struct {
	table          Table
	dict           Dictionary
	output         emitter.Output
	logger         *slog.Logger
	reporter       func(error)
	state          state.IMEState
	cursorPosition state.Rect
}

func New(opts Options) *Engine {
	eng := &Engine{
		table:    opts.Table,
		dict:     opts.Dictionary,
		output:   opts.Output,
		logger:   opts.Logger,
		reporter: opts.Reporter,
		state:    state.IMEState{InputMode: opts.DefaultMode, InputMethod: state.Normal()},
	}
	if eng.table == nil {
		eng.table = romaji.DefaultTable()
	}
	if eng.dict == nil {
		eng.dict = emptyDictionary{}
	}
	if eng.output == nil {
		eng.output = emitter.NewWriterOutput(io.Discard)
	}
	if eng.logger == nil {
		eng.logger = logging.Discard()
	}
	return eng
}

type emptyDictionary struct{}

func (emptyDictionary) Lookup(string) []state.Candidate { return nil }
func (emptyDictionary) Persist(string, string) error    { return nil }
func (emptyDictionary) Remove(string, string) error     { return nil }

// State returns the current state.
func (e *Engine) State() state.IMEState {
	return e.state
}

// DisplayText renders the current state.
func (e *Engine) DisplayText() state.MarkedText {
	return e.state.DisplayText()
}

// CurrentCandidatePage returns the page of the selected candidate. ok is
// false unless a conversion is being selected.
func (e *Engine) CurrentCandidatePage(pageSize int) (state.Page, bool) {
	if e.state.InputMethod.Kind != state.MethodSelecting {
		return state.Page{}, false
	}
	return e.state.InputMethod.Selecting.Page(pageSize), true
}

// SetCursorPosition records where the host draws the text cursor. New
// selections anchor their candidate panel there.
func (e *Engine) SetCursorPosition(rect state.Rect) {
	e.cursorPosition = rect
}

// Apply runs cmd against the current state and returns the new state. It
// never fails; inapplicable commands leave the state unchanged.
func (e *Engine) Apply(cmd Command) state.IMEState {
	next := e.handle(e.state, cmd)
	if next.InputMethod.Kind != e.state.InputMethod.Kind || next.Special.Kind != e.state.Special.Kind {
		e.logger.Debug("state changed",
			"command", fmt.Sprintf("%T", cmd),
			"method", next.InputMethod.Kind.String(),
			"special", next.Special.Kind.String(),
			"mode", next.InputMode.String())
	}
	e.state = next
	return next
}

func (e *Engine) handle(s state.IMEState, cmd Command) state.IMEState {
	switch s.Special.Kind {
	case state.SpecialUnregister:
		return e.handleUnregister(s, cmd)
	case state.SpecialRegister:
		if next, ok := e.handleRegister(s, cmd); ok {
			return next
		}
	}
	switch m := s.InputMethod; m.Kind {
	case state.MethodComposing:
		return e.handleComposing(s, m.Composing, cmd)
	case state.MethodSelecting:
		return e.handleSelecting(s, m.Selecting, cmd)
	default:
		return e.handleNormal(s, cmd)
	}
}

func (e *Engine) handleNormal(s state.IMEState, cmd Command) state.IMEState {
	switch cmd := cmd.(type) {
	case AppendKey:
		if !s.InputMode.IsKana() {
			return e.commit(s, literal(s.InputMode, cmd.Rune))
		}
		return e.kanaKey(s, state.ComposingState{}, cmd.Rune)
	case SetInputMode:
		s.InputMode = cmd.Mode
	case ToggleKana:
		if s.InputMode.IsKana() {
			s.InputMode = otherKana(s.InputMode)
		}
	}
	return s
}

func (e *Engine) handleComposing(s state.IMEState, c state.ComposingState, cmd Command) state.IMEState {
	switch cmd := cmd.(type) {
	case AppendKey:
		return e.kanaKey(s, c, cmd.Rune)
	case Delete:
		next, ok := c.DropLast()
		if !ok {
			s.InputMethod = state.Normal()
			return s
		}
		s.InputMethod = state.Composing(next)
	case CursorLeft, CursorRight, CursorHome, CursorEnd:
		s.InputMethod = state.Composing(applyCursor(c, cmd))
	case Confirm:
		return e.fix(s)
	case Cancel:
		s.InputMethod = state.Normal()
	case CycleCandidate:
		if c.IsShift && cmd.Delta > 0 {
			return e.convert(s, c)
		}
	case SetInputMode:
		s = e.fix(s)
		s.InputMode = cmd.Mode
	case ToggleKana:
		return e.toggleKana(s, c)
	}
	return s
}

func (e *Engine) handleSelecting(s state.IMEState, sel state.SelectingState, cmd Command) state.IMEState {
	switch cmd := cmd.(type) {
	case AppendKey:
		switch cmd.Rune {
		case ' ':
			return e.cycle(s, sel, 1)
		case 'x':
			return e.cycle(s, sel, -1)
		case 'X':
			return e.startUnregister(s, sel)
		}
		return e.appendKeyAfter(e.confirmSelecting(s, sel), cmd.Rune)
	case CycleCandidate:
		return e.cycle(s, sel, cmd.Delta)
	case Confirm:
		return e.confirmSelecting(s, sel)
	case Cancel, Delete:
		return e.backToComposing(s, sel)
	case StartRegister:
		if next, ok := e.registerFromSelecting(s, sel); ok {
			return next
		}
	case StartUnregister:
		return e.startUnregister(s, sel)
	case SetInputMode:
		s = e.fix(s)
		s.InputMode = cmd.Mode
	case ToggleKana:
		s = e.fix(s)
		return e.handle(s, cmd)
	}
	return s
}

// appendKeyAfter feeds r to the state left behind by an implicit confirm.
func (e *Engine) appendKeyAfter(s state.IMEState, r rune) state.IMEState {
	if s.InputMethod.Kind == state.MethodComposing {
		return e.kanaKey(s, s.InputMethod.Composing, r)
	}
	return e.handleNormal(s, AppendKey{Rune: r})
}

// kanaKey feeds r into the composition c. Normal is represented by an empty
// unmarked c.
func (e *Engine) kanaKey(s state.IMEState, c state.ComposingState, r rune) state.IMEState {
	if c.Romaji == "" && c.Okuri == nil {
		if next, ok := e.modeKey(s, c, r); ok {
			return next
		}
	}
	if unicode.IsUpper(r) {
		switch {
		case !c.IsShift:
			s = e.flushUnmarked(s, c)
			c = state.ComposingState{IsShift: true}
			if next, ok := e.modeKey(s, c, r); ok {
				return next
			}
		case c.Okuri == nil && len(c.SubText()) > 0 && romaji.IsOkuriStart(r):
			c = c.Trim().ResetRomaji()
			c.Okuri = []romaji.Moji{}
		}
	}
	result := e.table.Convert(c.Romaji, r)
	if !result.Consumed {
		if result.Moji != nil {
			c = addMoji(c, *result.Moji)
		}
		if c.Romaji == "" {
			return e.unknownKey(s, c, r)
		}
		return e.kanaKey(s, c.ResetRomaji(), r)
	}
	c = c.Clone()
	c.Romaji = result.Remain
	if result.Moji != nil {
		c = addMoji(c, *result.Moji)
	}
	return e.settle(s, c)
}

// modeKey handles the keys that are not romaji while nothing is pending.
func (e *Engine) modeKey(s state.IMEState, c state.ComposingState, r rune) (state.IMEState, bool) {
	switch r {
	case ' ':
		if c.IsShift {
			return e.convert(s, c), true
		}
	case 'q':
		if c.IsShift {
			return e.toggleKana(s, c), true
		}
		s = e.flushUnmarked(s, c)
		s.InputMode = otherKana(s.InputMode)
		s.InputMethod = state.Normal()
		return s, true
	case 'l', 'L':
		s.InputMethod = state.Composing(c)
		s = e.fix(s)
		s.InputMode = types.ModeDirect
		if r == 'L' {
			s.InputMode = types.ModeEisu
		}
		return s, true
	case 'Q':
		if !c.IsShift {
			s = e.flushUnmarked(s, c)
			c = state.ComposingState{IsShift: true}
		}
		s.InputMethod = state.Composing(c)
		return s, true
	}
	return s, false
}

// flushUnmarked commits the kana of an unmarked composition, including a
// dangling "n", before c is replaced.
func (e *Engine) flushUnmarked(s state.IMEState, c state.ComposingState) state.IMEState {
	if c.IsShift {
		return s
	}
	return e.commit(s, c.String(s.InputMode, true))
}

// unknownKey handles a key the table does not know.
func (e *Engine) unknownKey(s state.IMEState, c state.ComposingState, r rune) state.IMEState {
	if c.IsShift {
		if c.Okuri == nil && unicode.IsPrint(r) {
			c = c.AppendText(romaji.Moji{Kana: string(r)})
		}
		return e.settle(s, c)
	}
	s = e.settle(s, c)
	return e.commit(s, string(r))
}

func addMoji(c state.ComposingState, moji romaji.Moji) state.ComposingState {
	if c.Okuri == nil {
		return c.AppendText(moji)
	}
	next := c.Clone()
	next.Okuri = append(next.Okuri, moji)
	return next
}

// settle stores c as the current method. Unmarked kana is committed at once
// and completed okurigana starts the conversion.
func (e *Engine) settle(s state.IMEState, c state.ComposingState) state.IMEState {
	if !c.IsShift {
		if len(c.Text) > 0 {
			s = e.commit(s, c.String(s.InputMode, false))
			c = c.Clone()
			c.Text = nil
			c.Cursor = nil
		}
		if c.Romaji == "" {
			s.InputMethod = state.Normal()
		} else {
			s.InputMethod = state.Composing(c)
		}
		return s
	}
	if len(c.Okuri) > 0 && c.Romaji == "" {
		return e.convert(s, c)
	}
	s.InputMethod = state.Composing(c)
	return s
}

// convert looks up the reading of c and starts selecting, or registration
// when the dictionary has nothing.
func (e *Engine) convert(s state.IMEState, c state.ComposingState) state.IMEState {
	c = c.Trim().ResetRomaji()
	if c.Okuri != nil && len(c.Okuri) == 0 {
		c.Okuri = nil
	}
	yomi := c.Yomi(s.InputMode)
	if yomi == "" {
		s.InputMethod = state.Composing(c)
		return s
	}
	candidates := e.dict.Lookup(yomi)
	if len(candidates) == 0 {
		if next, ok := e.startRegister(s, state.RegisterPrev{Mode: s.InputMode, Composing: c}, yomi); ok {
			return next
		}
		s.InputMethod = state.Composing(c)
		return s
	}
	prev := state.SelectingPrev{Mode: s.InputMode, Composing: c}
	s.InputMethod = state.Selecting(state.NewSelectingState(prev, yomi, candidates, e.cursorPosition))
	return s
}

func (e *Engine) cycle(s state.IMEState, sel state.SelectingState, delta int) state.IMEState {
	next, err := sel.Advance(delta)
	if err == nil {
		s.InputMethod = state.Selecting(next)
		return s
	}
	if sel.CandidateIndex+delta < 0 {
		return e.backToComposing(s, sel)
	}
	if next, ok := e.registerFromSelecting(s, sel); ok {
		return next
	}
	return s
}

func (e *Engine) backToComposing(s state.IMEState, sel state.SelectingState) state.IMEState {
	s.InputMode = sel.Prev.Mode
	s.InputMethod = state.Composing(sel.Prev.Composing)
	return s
}

// confirmSelecting commits the selected candidate and records it as the
// preferred word of its reading.
func (e *Engine) confirmSelecting(s state.IMEState, sel state.SelectingState) state.IMEState {
	candidate := sel.Selected()
	s = e.commit(s, sel.FixedText())
	if err := e.dict.Persist(candidate.ToMidashiString(sel.Yomi), candidate.CandidateString()); err != nil {
		e.report("persist entry "+sel.Yomi, err)
	}
	if len(sel.Remain) == 0 {
		s.InputMethod = state.Normal()
		return s
	}
	cursor := 0
	s.InputMethod = state.Composing(state.ComposingState{
		IsShift: true,
		Text:    append([]string(nil), sel.Remain...),
		Cursor:  &cursor,
	})
	return s
}

func (e *Engine) registerFromSelecting(s state.IMEState, sel state.SelectingState) (state.IMEState, bool) {
	return e.startRegister(s, state.RegisterPrev{Mode: sel.Prev.Mode, Composing: sel.Prev.Composing}, sel.Yomi)
}

func (e *Engine) startRegister(s state.IMEState, prev state.RegisterPrev, yomi string) (state.IMEState, bool) {
	if s.Special.Active() {
		e.logger.Debug("nested registration refused", "yomi", yomi)
		return s, false
	}
	register := state.NewRegisterState(prev, yomi)
	return state.IMEState{InputMode: s.InputMode, InputMethod: state.Normal(), Special: state.Register(register)}, true
}

func (e *Engine) startUnregister(s state.IMEState, sel state.SelectingState) state.IMEState {
	if s.Special.Active() {
		e.logger.Debug("unregister refused inside registration", "yomi", sel.Yomi)
		return s
	}
	unregister := state.NewUnregisterState(state.UnregisterPrev{Mode: s.InputMode, Selecting: sel})
	return state.IMEState{InputMode: s.InputMode, InputMethod: state.Normal(), Special: state.Unregister(unregister)}
}

func (e *Engine) toggleKana(s state.IMEState, c state.ComposingState) state.IMEState {
	c = c.Trim()
	if len(c.Text) > 0 {
		s = e.commit(s, c.String(otherKana(s.InputMode), false))
	}
	s.InputMethod = state.Normal()
	return s
}

// fix commits whatever is being composed or selected and leaves Normal.
func (e *Engine) fix(s state.IMEState) state.IMEState {
	for {
		switch m := s.InputMethod; m.Kind {
		case state.MethodComposing:
			s = e.commit(s, m.Composing.String(s.InputMode, true))
			s.InputMethod = state.Normal()
		case state.MethodSelecting:
			s = e.confirmSelecting(s, m.Selecting)
		default:
			return s
		}
	}
}

// commit sends text to the host, or into the registration buffer while a
// word is being registered.
func (e *Engine) commit(s state.IMEState, text string) state.IMEState {
	if text == "" {
		return s
	}
	if s.Special.Kind == state.SpecialRegister {
		s.Special = s.Special.AppendText(text)
		return s
	}
	if err := e.output.SendText(text); err != nil {
		e.report("commit", err)
	}
	return s
}

func (e *Engine) report(op string, err error) {
	err = fmt.Errorf("%s: %w", op, err)
	e.logger.Warn("collaborator failed", "error", err)
	if e.reporter != nil {
		e.reporter(err)
	}
}

func literal(mode types.InputMode, r rune) string {
	if mode == types.ModeEisu {
		return kana.ToZenkaku(string(r))
	}
	return string(r)
}

func otherKana(mode types.InputMode) types.InputMode {
	if mode == types.ModeHiragana {
		return types.ModeKatakana
	}
	return types.ModeHiragana
}

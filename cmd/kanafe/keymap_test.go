package main

import (
	"testing"

	"github.com/eiannone/keyboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanafe/internal/engine"
	"kanafe/internal/state"
	"kanafe/internal/types"
)

func composingState() state.IMEState {
	return state.IMEState{
		InputMode:   types.ModeHiragana,
		InputMethod: state.Composing(state.ComposingState{IsShift: true, Text: []string{"か"}}),
	}
}

func TestMapKeyIdle(t *testing.T) {
	idleState := state.IMEState{InputMode: types.ModeHiragana, InputMethod: state.Normal()}
	cases := []struct {
		name   string
		ev     keyEvent
		action action
		cmd    engine.Command
	}{
		{"letter", keyEvent{ch: 'a'}, actionCommand, engine.AppendKey{Rune: 'a'}},
		{"space", keyEvent{key: keyboard.KeySpace}, actionCommand, engine.AppendKey{Rune: ' '}},
		{"enter", keyEvent{key: keyboard.KeyEnter}, actionNewline, nil},
		{"backspace", keyEvent{key: keyboard.KeyBackspace2}, actionBackspace, nil},
		{"escape", keyEvent{key: keyboard.KeyEsc}, actionNone, nil},
		{"ctrl-j", keyEvent{key: keyboard.KeyCtrlJ}, actionCommand, engine.SetInputMode{Mode: types.ModeHiragana}},
		{"ctrl-c", keyEvent{key: keyboard.KeyCtrlC}, actionQuit, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			act, cmd := mapKey(tc.ev, idleState)
			assert.Equal(t, tc.action, act)
			assert.Equal(t, tc.cmd, cmd)
		})
	}
}

func TestMapKeyComposing(t *testing.T) {
	s := composingState()
	cases := []struct {
		ev  keyEvent
		cmd engine.Command
	}{
		{keyEvent{key: keyboard.KeyEnter}, engine.Confirm{}},
		{keyEvent{key: keyboard.KeyCtrlJ}, engine.Confirm{}},
		{keyEvent{key: keyboard.KeyBackspace}, engine.Delete{}},
		{keyEvent{key: keyboard.KeyCtrlG}, engine.Cancel{}},
		{keyEvent{key: keyboard.KeyArrowLeft}, engine.CursorLeft{}},
		{keyEvent{key: keyboard.KeyCtrlF}, engine.CursorRight{}},
		{keyEvent{key: keyboard.KeyHome}, engine.CursorHome{}},
		{keyEvent{key: keyboard.KeyCtrlE}, engine.CursorEnd{}},
		{keyEvent{key: keyboard.KeyArrowDown}, engine.CycleCandidate{Delta: 1}},
	}
	for _, tc := range cases {
		act, cmd := mapKey(tc.ev, s)
		assert.Equal(t, actionCommand, act)
		assert.Equal(t, tc.cmd, cmd)
	}
}

func TestMapKeyRegisterOverlayIsNotIdle(t *testing.T) {
	s := state.IMEState{InputMode: types.ModeHiragana, InputMethod: state.Normal()}
	s.Special = state.Register(state.NewRegisterState(state.RegisterPrev{
		Mode:      types.ModeHiragana,
		Composing: state.ComposingState{IsShift: true, Text: []string{"か"}},
	}, "か"))
	act, cmd := mapKey(keyEvent{key: keyboard.KeyEnter}, s)
	assert.Equal(t, actionCommand, act)
	assert.Equal(t, engine.Confirm{}, cmd)
}

func TestParseKeys(t *testing.T) {
	events, err := parseKeys("Ka <bs><C-g>あ<lt>\n")
	require.NoError(t, err)
	assert.Equal(t, []keyEvent{
		{ch: 'K'},
		{ch: 'a'},
		{key: keyboard.KeySpace},
		{key: keyboard.KeyBackspace2},
		{key: keyboard.KeyCtrlG},
		{ch: 'あ'},
		{ch: '<'},
		{key: keyboard.KeyEnter},
	}, events)
}

func TestParseKeysErrors(t *testing.T) {
	_, err := parseKeys("<enter")
	assert.Error(t, err)
	_, err = parseKeys("<hyper>")
	assert.Error(t, err)
}

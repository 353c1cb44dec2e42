package state

import (
	"errors"
	"strings"

	"kanafe/internal/types"
)

// ErrCandidateIndexOutOfRange is returned by Advance when the new index
// leaves the candidate list. Whether to wrap, clamp or register a new word is
// up to the caller.
var ErrCandidateIndexOutOfRange = errors.New("candidate index out of range")

// Rect is the on-screen anchor of the text cursor supplied by the host.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

type SelectingPrev struct {
	Mode      types.InputMode
	Composing ComposingState
}

type SelectingState struct {
	// Prev is restored on cancel.
	Prev SelectingPrev
	// Yomi is the reading used for the lookup. For numeral entries it holds
	// the digits the user typed ("だい5"), not the template.
	Yomi           string
	Candidates     []Candidate
	CandidateIndex int
	CursorPosition Rect
	// Remain is the text after the composing cursor, nil when the cursor was
	// at the end.
	Remain []string
}

// NewSelectingState starts selection at the first candidate.
func NewSelectingState(prev SelectingPrev, yomi string, candidates []Candidate, cursorPosition Rect) SelectingState {
	return SelectingState{
		Prev:           SelectingPrev{Mode: prev.Mode, Composing: prev.Composing.Clone()},
		Yomi:           yomi,
		Candidates:     cloneCandidates(candidates),
		CursorPosition: cursorPosition,
		Remain:         prev.Composing.Remain(),
	}
}

func (s SelectingState) Clone() SelectingState {
	return SelectingState{
		Prev:           SelectingPrev{Mode: s.Prev.Mode, Composing: s.Prev.Composing.Clone()},
		Yomi:           s.Yomi,
		Candidates:     cloneCandidates(s.Candidates),
		CandidateIndex: s.CandidateIndex,
		CursorPosition: s.CursorPosition,
		Remain:         cloneStrings(s.Remain),
	}
}

// AddCandidateIndex moves the selection without a bound check.
func (s SelectingState) AddCandidateIndex(diff int) SelectingState {
	next := s.Clone()
	next.CandidateIndex += diff
	return next
}

// Advance moves the selection by the given offset, refusing to leave the
// candidate list.
func (s SelectingState) Advance(by int) (SelectingState, error) {
	index := s.CandidateIndex + by
	if index < 0 || index >= len(s.Candidates) {
		return s, ErrCandidateIndexOutOfRange
	}
	return s.AddCandidateIndex(by), nil
}

func (s SelectingState) Selected() Candidate {
	return s.Candidates[s.CandidateIndex]
}

// FixedText is the text committed when the selection is confirmed.
func (s SelectingState) FixedText() string {
	return s.Selected().Word + s.Prev.Composing.OkuriString(s.Prev.Mode)
}

// Okuri returns the okurigana as hiragana, ok is false without okurigana.
func (s SelectingState) Okuri() (string, bool) {
	return okuriKana(s.Prev.Composing)
}

func okuriKana(composing ComposingState) (string, bool) {
	if composing.Okuri == nil {
		return "", false
	}
	var b strings.Builder
	for _, moji := range composing.Okuri {
		b.WriteString(moji.Kana)
	}
	return b.String(), true
}

func (s SelectingState) MarkedTextElements(mode types.InputMode) []Element {
	text := s.Selected().Word + s.Prev.Composing.OkuriString(mode)
	if s.Remain == nil {
		return []Element{SelectMarker, Emphasized(text)}
	}
	return compact([]Element{SelectMarker, Emphasized(text), CursorMarker, Plain(strings.Join(s.Remain, ""))})
}

package state

import (
	"strings"

	"kanafe/internal/kana"
	"kanafe/internal/romaji"
	"kanafe/internal/types"
)

// ComposingState is the unconverted input under the underline.
//
// Typing "(Shift)ara(Shift)tta" walks through
//
//	(true, [あ], nil, "")
//	(true, [あ], nil, "r")
//	(true, [あ ら], nil, "")
//	(true, [あ ら], [], "t")
//	(true, [あ ら], [っ], "t")
//	(true, [あ ら], [っ た], "")
//
// after which the engine promotes the state to SelectingState.
type ComposingState struct {
	// IsShift marks an explicit composition (shown with ▽).
	IsShift bool
	// Text holds one character per element.
	Text []string
	// Okuri is nil outside okurigana mode and empty once okurigana mode
	// started without any kana typed yet.
	Okuri []romaji.Moji
	// Romaji is the pending fragment, never a complete rule.
	Romaji string
	// Cursor indexes Text. nil means the end of Text.
	Cursor *int
}

func (c ComposingState) Clone() ComposingState {
	return ComposingState{
		IsShift: c.IsShift,
		Text:    cloneStrings(c.Text),
		Okuri:   cloneMojis(c.Okuri),
		Romaji:  c.Romaji,
		Cursor:  cloneCursor(c.Cursor),
	}
}

// Trim commits a dangling "n" as "ん" before the state leaves composition.
// The ん goes to the end of the okurigana when okuri is active, otherwise to
// the end of Text whatever the cursor, which stays where it was. Every other
// pending romaji is kept as is.
func (c ComposingState) Trim() ComposingState {
	if c.Romaji != "n" {
		return c
	}
	next := c.Clone()
	next.Romaji = ""
	if next.Okuri != nil {
		next.Okuri = append(next.Okuri, romaji.N)
		return next
	}
	next.Text = append(next.Text, romaji.N.Kana)
	return next
}

// String returns Text in the script of mode. With convertHatsuon a dangling
// "n" is shown as "ん".
func (c ComposingState) String(mode types.InputMode, convertHatsuon bool) string {
	text := strings.Join(c.Text, "")
	if convertHatsuon && c.Romaji == "n" {
		text += romaji.N.Kana
	}
	return convertScript(text, mode)
}

func convertScript(text string, mode types.InputMode) string {
	switch mode {
	case types.ModeKatakana:
		return kana.ToKatakana(text)
	case types.ModeHankaku:
		return kana.ToHankaku(kana.ToKatakana(text))
	default:
		return text
	}
}

// AppendText inserts the kana of moji at the cursor, one element per character.
func (c ComposingState) AppendText(moji romaji.Moji) ComposingState {
	chars := characters(moji.Kana)
	next := c.Clone()
	if c.Cursor == nil {
		next.Text = append(cloneStrings(c.Text), chars...)
		return next
	}
	cursor := *c.Cursor
	text := make([]string, 0, len(c.Text)+len(chars))
	text = append(text, c.Text[:cursor]...)
	text = append(text, chars...)
	text = append(text, c.Text[cursor:]...)
	next.Text = text
	next.Cursor = intPtr(cursor + len(chars))
	return next
}

// DropLast deletes one unit in construction order: romaji first, then
// okurigana, then the character before the cursor. ok is false when nothing
// is left and the caller should leave composition.
func (c ComposingState) DropLast() (ComposingState, bool) {
	if c.Romaji != "" {
		rest := c.Romaji[:len(c.Romaji)-1]
		if rest == "" && len(c.Text) == 0 {
			return ComposingState{}, false
		}
		next := c.Clone()
		next.Romaji = rest
		return next, true
	}
	if c.Okuri != nil {
		next := c.Clone()
		if len(c.Okuri) == 0 {
			next.Okuri = nil
		} else {
			next.Okuri = next.Okuri[:len(next.Okuri)-1]
		}
		return next, true
	}
	if len(c.Text) == 0 {
		return ComposingState{}, false
	}
	if c.Cursor == nil {
		next := c.Clone()
		next.Text = next.Text[:len(next.Text)-1]
		return next, true
	}
	cursor := *c.Cursor
	if cursor == 0 {
		return c, true
	}
	next := c.Clone()
	text := make([]string, 0, len(c.Text)-1)
	text = append(text, c.Text[:cursor-1]...)
	text = append(text, c.Text[cursor:]...)
	next.Text = text
	next.Cursor = intPtr(cursor - 1)
	return next, true
}

func (c ComposingState) ResetRomaji() ComposingState {
	next := c.Clone()
	next.Romaji = ""
	return next
}

// WithShift also drops the pending romaji.
func (c ComposingState) WithShift(isShift bool) ComposingState {
	next := c.ResetRomaji()
	next.IsShift = isShift
	return next
}

// SubText returns the characters before the cursor.
func (c ComposingState) SubText() []string {
	if c.Cursor == nil {
		return cloneStrings(c.Text)
	}
	return cloneStrings(c.Text[:*c.Cursor])
}

// Remain returns the characters after the cursor, nil when the cursor is at
// the end.
func (c ComposingState) Remain() []string {
	if c.Cursor == nil {
		return nil
	}
	return append([]string{}, c.Text[*c.Cursor:]...)
}

// Yomi is the reading used for the dictionary lookup: the text before the
// cursor followed by the first romaji letter of the okurigana.
func (c ComposingState) Yomi(mode types.InputMode) string {
	sub := c.SubText()
	if mode.IsKana() {
		if c.Romaji == "n" {
			sub = append(sub, romaji.N.Kana)
		}
		yomi := strings.Join(sub, "")
		if len(c.Okuri) > 0 {
			yomi += c.Okuri[0].FirstRomaji
		}
		return yomi
	}
	return strings.Join(sub, "")
}

// OkuriString renders the okurigana in the script of mode.
func (c ComposingState) OkuriString(mode types.InputMode) string {
	var b strings.Builder
	for _, moji := range c.Okuri {
		b.WriteString(moji.String(mode))
	}
	return b.String()
}

func (c ComposingState) MoveCursorLeft() ComposingState {
	if len(c.Text) == 0 || !c.IsShift {
		return c
	}
	next := c.Clone()
	if c.Cursor == nil {
		next.Cursor = intPtr(max(len(c.Text)-1, 0))
	} else {
		next.Cursor = intPtr(max(*c.Cursor-1, 0))
	}
	return next
}

func (c ComposingState) MoveCursorRight() ComposingState {
	if len(c.Text) == 0 || !c.IsShift || c.Cursor == nil {
		return c
	}
	next := c.Clone()
	if *c.Cursor+1 >= len(c.Text) {
		next.Cursor = nil
	} else {
		next.Cursor = intPtr(*c.Cursor + 1)
	}
	return next
}

func (c ComposingState) MoveCursorFirst() ComposingState {
	if len(c.Text) == 0 || !c.IsShift {
		return c
	}
	next := c.Clone()
	next.Cursor = intPtr(0)
	return next
}

func (c ComposingState) MoveCursorLast() ComposingState {
	if len(c.Text) == 0 || !c.IsShift {
		return c
	}
	next := c.Clone()
	next.Cursor = nil
	return next
}

// MarkedTextElements renders the state. The okurigana and romaji tail is
// attached to the text before the cursor.
func (c ComposingState) MarkedTextElements(mode types.InputMode) []Element {
	var elements []Element
	if c.IsShift {
		elements = append(elements, ComposeMarker)
	}
	tail := c.Romaji
	if c.Okuri != nil {
		tail = "*" + c.OkuriString(mode) + c.Romaji
	}
	if c.Cursor == nil {
		elements = append(elements, Plain(c.String(mode, false)+tail))
		return compact(elements)
	}
	cursor := *c.Cursor
	prefix := convertScript(strings.Join(c.Text[:cursor], ""), mode)
	suffix := convertScript(strings.Join(c.Text[cursor:], ""), mode)
	elements = append(elements, Plain(prefix+tail), CursorMarker, Plain(suffix))
	return compact(elements)
}

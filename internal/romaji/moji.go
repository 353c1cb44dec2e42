// Package romaji maps latin keystroke fragments to kana units.
package romaji

import (
	"kanafe/internal/kana"
	"kanafe/internal/types"
)

// Moji is one kana unit produced by a romaji rule. FirstRomaji keeps the
// leading latin letter of the rule so okurigana can be looked up as "あr".
type Moji struct {
	FirstRomaji string
	Kana        string
}

// N is the syllabic nasal committed for a dangling "n".
var N = Moji{FirstRomaji: "n", Kana: "ん"}

// String renders the kana in the script of mode.
func (m Moji) String(mode types.InputMode) string {
	switch mode {
	case types.ModeKatakana:
		return kana.ToKatakana(m.Kana)
	case types.ModeHankaku:
		return kana.ToHankaku(kana.ToKatakana(m.Kana))
	default:
		return m.Kana
	}
}

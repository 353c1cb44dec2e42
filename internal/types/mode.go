package types

import (
	"fmt"
	"strings"
)

type InputMode int

const (
	ModeHiragana InputMode = iota
	ModeKatakana
	// ModeHankaku is half-width katakana.
	ModeHankaku
	// ModeEisu is full-width latin.
	ModeEisu
	ModeDirect
)

func (m InputMode) String() string {
	switch m {
	case ModeHiragana:
		return "hiragana"
	case ModeKatakana:
		return "katakana"
	case ModeHankaku:
		return "hankaku"
	case ModeEisu:
		return "eisu"
	case ModeDirect:
		return "direct"
	default:
		return "unknown"
	}
}

// IsKana reports whether romaji input is converted to kana in this mode.
func (m InputMode) IsKana() bool {
	return m == ModeHiragana || m == ModeKatakana || m == ModeHankaku
}

func ParseInputMode(value string) (InputMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "hiragana", "kana", "japanese":
		return ModeHiragana, nil
	case "katakana":
		return ModeKatakana, nil
	case "hankaku", "halfwidth":
		return ModeHankaku, nil
	case "eisu", "zenkaku":
		return ModeEisu, nil
	case "direct", "ascii", "latin":
		return ModeDirect, nil
	default:
		return ModeHiragana, fmt.Errorf("unknown input mode %q", value)
	}
}

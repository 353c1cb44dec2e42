// Package kana converts kana text between the scripts an input mode displays.
package kana

import (
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

const (
	hiraganaFirst = 'ぁ'
	hiraganaLast  = 'ゖ'
	katakanaFirst = 'ァ'
	katakanaLast  = 'ヶ'
	scriptOffset  = katakanaFirst - hiraganaFirst
)

// ToKatakana maps hiragana to full-width katakana. Other runes are kept.
func ToKatakana(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= hiraganaFirst && r <= hiraganaLast:
			return r + scriptOffset
		case r == 'ゝ' || r == 'ゞ':
			return r + scriptOffset
		}
		return r
	}, s)
}

// ToHiragana maps full-width katakana back to hiragana.
func ToHiragana(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= katakanaFirst && r <= katakanaLast:
			return r - scriptOffset
		case r == 'ヽ' || r == 'ヾ':
			return r - scriptOffset
		}
		return r
	}, s)
}

// ToHankaku maps full-width katakana to half-width katakana. Voiced and
// semi-voiced kana are decomposed first so the sound marks survive as
// separate half-width marks ("ガ" becomes "ｶﾞ").
func ToHankaku(s string) string {
	return width.Narrow.String(norm.NFD.String(s))
}

// ToZenkaku maps ASCII to its full-width form, used by the eisu mode.
func ToZenkaku(s string) string {
	return width.Widen.String(s)
}

// IsHiragana reports whether every rune of s is hiragana or the long vowel mark.
func IsHiragana(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < hiraganaFirst || r > hiraganaLast) && r != 'ー' {
			return false
		}
	}
	return true
}

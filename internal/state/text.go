package state

import (
	"strings"

	"github.com/rivo/uniseg"

	"kanafe/internal/romaji"
)

func intPtr(v int) *int {
	return &v
}

// characters splits s into user-perceived characters.
func characters(s string) []string {
	out := make([]string, 0, len(s)/3+1)
	graphemes := uniseg.NewGraphemes(s)
	for graphemes.Next() {
		out = append(out, graphemes.Str())
	}
	return out
}

func characterCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// splitAt splits s before the n-th character.
func splitAt(s string, n int) (string, string) {
	if n <= 0 {
		return "", s
	}
	chars := characters(s)
	if n >= len(chars) {
		return s, ""
	}
	return strings.Join(chars[:n], ""), strings.Join(chars[n:], "")
}

func cloneStrings(src []string) []string {
	if src == nil {
		return nil
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}

// cloneMojis keeps the nil / empty distinction of okurigana.
func cloneMojis(src []romaji.Moji) []romaji.Moji {
	if src == nil {
		return nil
	}
	dst := make([]romaji.Moji, len(src))
	copy(dst, src)
	return dst
}

func cloneCursor(cursor *int) *int {
	if cursor == nil {
		return nil
	}
	return intPtr(*cursor)
}

func dropLastCharacter(s string) string {
	chars := characters(s)
	if len(chars) == 0 {
		return s
	}
	return strings.Join(chars[:len(chars)-1], "")
}

package types

import "testing"

func TestParseInputMode(t *testing.T) {
	cases := map[string]InputMode{
		"":         ModeHiragana,
		"Hiragana": ModeHiragana,
		"katakana": ModeKatakana,
		" hankaku": ModeHankaku,
		"eisu":     ModeEisu,
		"latin":    ModeDirect,
	}
	for input, want := range cases {
		got, err := ParseInputMode(input)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", input, err)
		}
		if got != want {
			t.Fatalf("expected %s for %q, got %s", want, input, got)
		}
	}
	if _, err := ParseInputMode("hangul"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestIsKana(t *testing.T) {
	if !ModeHankaku.IsKana() || ModeDirect.IsKana() || ModeEisu.IsKana() {
		t.Fatalf("unexpected kana classification")
	}
}

package emitter

import (
	"errors"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestKeysymFor(t *testing.T) {
	cases := []struct {
		r    rune
		sym  xproto.Keysym
		sent bool
	}{
		{'\n', keysymReturn, true},
		{'\t', keysymTab, true},
		{'\r', 0, false},
		{'a', 0x61, true},
		{'é', 0xe9, true},
		{'あ', 0x01003042, true},
		{'漢', 0x01006f22, true},
	}
	for _, tc := range cases {
		sym, ok := keysymFor(tc.r)
		if ok != tc.sent || sym != tc.sym {
			t.Fatalf("keysymFor(%q) = %#x, %v; want %#x, %v", tc.r, sym, ok, tc.sym, tc.sent)
		}
	}
}

func TestPlanKeystrokes(t *testing.T) {
	plan, err := planKeystrokes("か\r\na")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	want := []keystroke{
		{sym: 0x0100304b, end: 3},
		{sym: keysymReturn, end: 5},
		{sym: 0x61, end: 6},
	}
	if len(plan) != len(want) {
		t.Fatalf("expected %d keystrokes, got %v", len(want), plan)
	}
	for i := range want {
		if plan[i] != want[i] {
			t.Fatalf("keystroke %d: expected %+v, got %+v", i, want[i], plan[i])
		}
	}
	if _, err := planKeystrokes("\xffa"); !errors.Is(err, errInvalidUTF8) {
		t.Fatalf("expected invalid utf-8 to be rejected before typing, got %v", err)
	}
}

func TestSpareKeycode(t *testing.T) {
	keysyms := []xproto.Keysym{
		0x61, 0x41,
		0, 0x42,
		0, 0,
		0x63, 0,
	}
	if got := spareKeycode(8, 11, 2, keysyms); got != 10 {
		t.Fatalf("expected keycode 10, got %d", got)
	}
	full := []xproto.Keysym{0x61, 0, 0x62, 0}
	if got := spareKeycode(8, 9, 2, full); got != 9 {
		t.Fatalf("expected the highest keycode when none is free, got %d", got)
	}
}

func TestPartialCommitError(t *testing.T) {
	cause := errors.New("bad access")
	var err error = &PartialCommitError{Sent: 3, Err: cause}
	if !errors.Is(err, cause) {
		t.Fatalf("expected the cause to unwrap")
	}
	var partial *PartialCommitError
	if !errors.As(err, &partial) || partial.Sent != 3 {
		t.Fatalf("unexpected partial error %v", err)
	}
}

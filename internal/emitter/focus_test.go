package emitter

import (
	"errors"
	"testing"
)

type fakeFocus struct {
	windows []Window
	err     error
}

func (f *fakeFocus) Active() (Window, error) {
	if f.err != nil {
		return Window{}, f.err
	}
	w := f.windows[0]
	if len(f.windows) > 1 {
		f.windows = f.windows[1:]
	}
	return w, nil
}

func TestSplitClass(t *testing.T) {
	got := splitClass([]byte("xterm\x00XTerm\x00"))
	if len(got) != 2 || got[0] != "xterm" || got[1] != "xterm" {
		t.Fatalf("unexpected class names %q", got)
	}
	if got := splitClass(nil); len(got) != 0 {
		t.Fatalf("expected no names, got %q", got)
	}
}

func TestIsTerminalClass(t *testing.T) {
	cases := []struct {
		names []string
		want  bool
	}{
		{[]string{"alacritty", "alacritty"}, true},
		{[]string{"gnome-terminal-server"}, true},
		{[]string{"org.gnome.terminal"}, true},
		{[]string{"navigator", "firefox"}, false},
		{nil, false},
	}
	for _, tc := range cases {
		if got := isTerminalClass(tc.names); got != tc.want {
			t.Fatalf("isTerminalClass(%q)=%v want %v", tc.names, got, tc.want)
		}
	}
}

func TestGet32(t *testing.T) {
	if got := get32([]byte{0x01, 0x02, 0x00, 0x00}); got != 0x0201 {
		t.Fatalf("expected 0x0201, got %#x", got)
	}
	if got := get32([]byte{0x01}); got != 0 {
		t.Fatalf("expected 0 for short input, got %#x", got)
	}
}

func TestFocusedOutputRoutes(t *testing.T) {
	focus := &fakeFocus{windows: []Window{{ID: 7}, {ID: 7}, {ID: 9}}}
	var x11, fallback Buffer
	out, err := NewFocusedOutput(focus, &x11, &fallback)
	if err != nil {
		t.Fatalf("NewFocusedOutput: %v", err)
	}
	_ = out.SendText("自分")
	_ = out.SendText("他所")
	if fallback.String() != "自分" {
		t.Fatalf("expected own window commit on fallback, got %q", fallback.String())
	}
	if x11.String() != "他所" {
		t.Fatalf("expected other window commit on x11, got %q", x11.String())
	}
}

func TestFocusedOutputErrors(t *testing.T) {
	var x11, fallback Buffer
	if _, err := NewFocusedOutput(&fakeFocus{err: errors.New("no display")}, &x11, &fallback); err == nil {
		t.Fatalf("expected error without an active window")
	}

	focus := &fakeFocus{windows: []Window{{ID: 1}}}
	out, err := NewFocusedOutput(focus, &x11, &fallback)
	if err != nil {
		t.Fatalf("NewFocusedOutput: %v", err)
	}
	focus.err = errors.New("lost")
	_ = out.SendText("あ")
	if fallback.String() != "あ" || x11.String() != "" {
		t.Fatalf("expected fallback when focus is unknown, got %q / %q", fallback.String(), x11.String())
	}
}

type stalledOutput struct {
	sent string
	err  error
}

func (o *stalledOutput) SendText(text string) error {
	n := len([]rune(text)) / 2
	head := string([]rune(text)[:n])
	o.sent += head
	return &PartialCommitError{Sent: len(head), Err: o.err}
}

func TestFocusedOutputFinishesPartialCommit(t *testing.T) {
	focus := &fakeFocus{windows: []Window{{ID: 1}, {ID: 2}}}
	x11 := &stalledOutput{err: errors.New("bad match")}
	var fallback Buffer
	out, err := NewFocusedOutput(focus, x11, &fallback)
	if err != nil {
		t.Fatalf("NewFocusedOutput: %v", err)
	}
	if err := out.SendText("日本語だ"); err != nil {
		t.Fatalf("expected the fallback to absorb the rest, got %v", err)
	}
	if x11.sent != "日本" || fallback.String() != "語だ" {
		t.Fatalf("unexpected split %q / %q", x11.sent, fallback.String())
	}
}

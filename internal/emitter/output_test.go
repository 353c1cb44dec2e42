package emitter

import (
	"bytes"
	"testing"
)

func TestWriterOutput(t *testing.T) {
	var buf bytes.Buffer
	out := NewWriterOutput(&buf)
	for _, text := range []string{"漢字", "", "かな"} {
		if err := out.SendText(text); err != nil {
			t.Fatalf("send %q: %v", text, err)
		}
	}
	if buf.String() != "漢字かな" {
		t.Fatalf("expected %q, got %q", "漢字かな", buf.String())
	}
	if err := out.SendText("\xff"); err == nil {
		t.Fatalf("expected invalid utf-8 to fail")
	}
}

func TestBuffer(t *testing.T) {
	var buf Buffer
	_ = buf.SendText("あ")
	_ = buf.SendText("")
	_ = buf.SendText("亜")
	if got := buf.Commits(); len(got) != 2 || got[0] != "あ" || got[1] != "亜" {
		t.Fatalf("unexpected commits %q", got)
	}
	if buf.String() != "あ亜" {
		t.Fatalf("expected %q, got %q", "あ亜", buf.String())
	}
	buf.Reset()
	if buf.String() != "" {
		t.Fatalf("expected empty buffer after reset, got %q", buf.String())
	}
}

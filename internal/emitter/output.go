package emitter

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"
)

// Output receives text committed by the engine. It is satisfied by the
// writer, buffer and X11 backends and lets tests substitute lightweight
// fakes.
type Output interface {
	SendText(text string) error
}

var (
	_ Output = (*WriterOutput)(nil)
	_ Output = (*Buffer)(nil)
	_ Output = (*X11Output)(nil)
	_ Output = (*FocusedOutput)(nil)
)

var errInvalidUTF8 = errors.New("invalid utf-8 sequence")

// WriterOutput writes commits to an io.Writer such as a terminal.
type WriterOutput struct {
	w io.Writer
}

func NewWriterOutput(w io.Writer) *WriterOutput {
	return &WriterOutput{w: w}
}

func (o *WriterOutput) SendText(text string) error {
	if text == "" {
		return nil
	}
	if !utf8.ValidString(text) {
		return errInvalidUTF8
	}
	if _, err := io.WriteString(o.w, text); err != nil {
		return fmt.Errorf("write commit: %w", err)
	}
	return nil
}

// Buffer collects commits in memory.
type Buffer struct {
	mu      sync.Mutex
	commits []string
}

func (b *Buffer) SendText(text string) error {
	if text == "" {
		return nil
	}
	if !utf8.ValidString(text) {
		return errInvalidUTF8
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.commits = append(b.commits, text)
	return nil
}

// Commits returns every commit in order.
func (b *Buffer) Commits() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.commits...)
}

// String joins all commits.
func (b *Buffer) String() string {
	return strings.Join(b.Commits(), "")
}

func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.commits = nil
}

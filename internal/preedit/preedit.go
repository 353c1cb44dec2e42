// Package preedit draws marked text and the candidate panel on a terminal.
//
// Widths are display columns, not characters: kana and kanji take two
// cells. The markers ▽ and ▼ are East Asian ambiguous and take one or two
// cells depending on the terminal, see NewRenderer.
package preedit

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"kanafe/internal/emitter"
	"kanafe/internal/state"
)

var _ emitter.Output = (*Terminal)(nil)

// Labels select candidates in the panel, in SKK order.
const Labels = "asdfjkl"

type Line struct {
	Text string
	// Column is the display column of the cursor inside Text.
	Column int
}

type Renderer struct {
	cond *runewidth.Condition
}

// NewRenderer returns a renderer. eastAsian counts ambiguous-width
// characters as two cells.
func NewRenderer(eastAsian bool) *Renderer {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = eastAsian
	return &Renderer{cond: cond}
}

func (r *Renderer) Width(s string) int {
	return r.cond.StringWidth(s)
}

func markerText(element state.Element) string {
	switch element.Kind {
	case state.ElementComposeMarker:
		return "▽"
	case state.ElementSelectMarker:
		return "▼"
	case state.ElementCursor:
		return ""
	default:
		return element.Text
	}
}

// Render flattens marked text. Without a cursor marker the cursor sits at
// the end.
func (r *Renderer) Render(text state.MarkedText) Line {
	var b strings.Builder
	column := -1
	for _, element := range text.Elements {
		if element.Kind == state.ElementCursor {
			column = r.Width(b.String())
			continue
		}
		b.WriteString(markerText(element))
	}
	line := Line{Text: b.String(), Column: column}
	if column < 0 {
		line.Column = r.Width(line.Text)
	}
	return line
}

// Panel lists the page of candidates around the selection. The first
// inline candidates are shown in the marked text only, so ok is false
// while one of them is selected.
func (r *Renderer) Panel(sel state.SelectingState, inline, pageSize int) (string, bool) {
	if sel.CandidateIndex < inline || len(sel.Candidates) <= inline {
		return "", false
	}
	if pageSize <= 0 || pageSize > len(Labels) {
		pageSize = len(Labels)
	}
	rest := sel
	rest.Candidates = sel.Candidates[inline:]
	rest.CandidateIndex = sel.CandidateIndex - inline
	page := rest.Page(pageSize)
	selected := rest.IndexInPage(pageSize)

	parts := make([]string, 0, len(page.Words)+1)
	for i, candidate := range page.Words {
		item := fmt.Sprintf("%c:%s", Labels[i]-'a'+'A', candidate.Word)
		if candidate.Annotation != "" {
			item += ";" + candidate.Annotation
		}
		if i == selected {
			item = "[" + item + "]"
		}
		parts = append(parts, item)
	}
	parts = append(parts, fmt.Sprintf("(%d/%d)", page.Current+1, page.Total))
	return strings.Join(parts, " "), true
}

// Truncate cuts s to width cells, appending "…" when cut.
func (r *Renderer) Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return r.cond.Truncate(s, width, "…")
}

// Terminal redraws the current line in place with ANSI escapes: committed
// text followed by the pre-edit text. The candidate panel goes on the line
// below. It is also an emitter.Output so commits land on the same line.
type Terminal struct {
	w        io.Writer
	renderer *Renderer
	width    int
	inline   int
	pageSize int

	line       string
	panelShown bool
}

func NewTerminal(w io.Writer, renderer *Renderer, width, inline, pageSize int) *Terminal {
	return &Terminal{w: w, renderer: renderer, width: width, inline: inline, pageSize: pageSize}
}

// SendText appends committed text to the current line. A newline finishes
// the line and starts a new one.
func (t *Terminal) SendText(text string) error {
	segments := strings.Split(text, "\n")
	for i, segment := range segments {
		t.line += segment
		if i == len(segments)-1 {
			break
		}
		if _, err := io.WriteString(t.w, "\r\x1b[K"+t.line+"\r\n"); err != nil {
			return err
		}
		t.line = ""
	}
	return nil
}

// Backspace removes the last committed character of the current line.
func (t *Terminal) Backspace() {
	last := 0
	segState := -1
	rest := t.line
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, segState = uniseg.StepString(rest, segState)
		if len(rest) == 0 {
			last = len(t.line) - len(cluster)
		}
	}
	t.line = t.line[:last]
}

// Line returns the committed text of the current line.
func (t *Terminal) Line() string {
	return t.line
}

func (t *Terminal) Draw(s state.IMEState) error {
	marked := t.renderer.Render(s.DisplayText())

	var b strings.Builder
	b.WriteString("\r\x1b[K")
	b.WriteString(t.line)
	b.WriteString(marked.Text)

	panel, ok := "", false
	if s.InputMethod.Kind == state.MethodSelecting {
		panel, ok = t.renderer.Panel(s.InputMethod.Selecting, t.inline, t.pageSize)
	}
	if ok || t.panelShown {
		b.WriteString("\r\n\x1b[K")
		if ok {
			if t.width > 0 {
				panel = t.renderer.Truncate(panel, t.width)
			}
			b.WriteString(panel)
		}
		b.WriteString("\x1b[1A")
	}
	t.panelShown = ok

	b.WriteString("\r")
	if column := t.renderer.Width(t.line) + marked.Column; column > 0 {
		fmt.Fprintf(&b, "\x1b[%dC", column)
	}
	_, err := io.WriteString(t.w, b.String())
	return err
}

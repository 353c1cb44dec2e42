package state

type ElementKind int

const (
	ElementPlain ElementKind = iota
	ElementEmphasized
	// ElementComposeMarker is drawn as ▽.
	ElementComposeMarker
	// ElementSelectMarker is drawn as ▼.
	ElementSelectMarker
	ElementCursor
)

func (k ElementKind) String() string {
	switch k {
	case ElementPlain:
		return "plain"
	case ElementEmphasized:
		return "emphasized"
	case ElementComposeMarker:
		return "compose"
	case ElementSelectMarker:
		return "select"
	case ElementCursor:
		return "cursor"
	default:
		return "unknown"
	}
}

type Element struct {
	Kind ElementKind
	Text string
}

var (
	ComposeMarker = Element{Kind: ElementComposeMarker}
	SelectMarker  = Element{Kind: ElementSelectMarker}
	CursorMarker  = Element{Kind: ElementCursor}
)

func Plain(text string) Element {
	return Element{Kind: ElementPlain, Text: text}
}

func Emphasized(text string) Element {
	return Element{Kind: ElementEmphasized, Text: text}
}

// MarkedText is the underlined pre-edit text in display order.
type MarkedText struct {
	Elements []Element
}

// CursorOffset returns the number of characters before the cursor marker.
// ok is false when the cursor is at the end.
func (m MarkedText) CursorOffset() (int, bool) {
	offset := 0
	for _, element := range m.Elements {
		switch element.Kind {
		case ElementCursor:
			return offset, true
		case ElementPlain, ElementEmphasized:
			offset += characterCount(element.Text)
		}
	}
	return offset, false
}

// compact drops empty plain spans.
func compact(elements []Element) []Element {
	out := make([]Element, 0, len(elements))
	for _, element := range elements {
		if element.Kind == ElementPlain && element.Text == "" {
			continue
		}
		out = append(out, element)
	}
	return out
}

package romaji

import (
	"strings"
	"unicode"
)

// Rule converts a complete romaji key into Moji. Remain is fed back into the
// buffer, e.g. "kk" produces "っ" and leaves "k".
type Rule struct {
	Moji   Moji
	Remain string
}

// Result describes how a single key changed the romaji buffer.
//
// When Consumed is false the key was not absorbed: Moji (if any) must be
// applied first and the key processed again against an empty buffer. A key
// that is not consumed against an empty buffer is a literal.
type Result struct {
	Moji     *Moji
	Remain   string
	Consumed bool
}

type Table struct {
	rules    map[string]Rule
	prefixes map[string]struct{}
}

func NewTable() *Table {
	return &Table{rules: make(map[string]Rule), prefixes: make(map[string]struct{})}
}

func (t *Table) Add(key string, rule Rule) {
	if key == "" {
		return
	}
	t.rules[key] = rule
	for i := 1; i < len(key); i++ {
		t.prefixes[key[:i]] = struct{}{}
	}
}

// Lookup returns the rule registered for key.
func (t *Table) Lookup(key string) (Rule, bool) {
	rule, ok := t.rules[key]
	return rule, ok
}

// IsPrefix reports whether key can still be completed into a rule.
func (t *Table) IsPrefix(key string) bool {
	_, ok := t.prefixes[key]
	return ok
}

func (t *Table) Len() int { return len(t.rules) }

// Convert feeds key into buffer. The buffer never holds a complete rule, so
// after Convert the returned Remain is either empty or a strict prefix.
func (t *Table) Convert(buffer string, key rune) Result {
	input := buffer + string(unicode.ToLower(key))
	if rule, ok := t.rules[input]; ok {
		moji := rule.Moji
		return Result{Moji: &moji, Remain: rule.Remain, Consumed: true}
	}
	if t.IsPrefix(input) {
		return Result{Remain: input, Consumed: true}
	}
	if buffer == "n" {
		moji := N
		return Result{Moji: &moji}
	}
	return Result{}
}

// IsOkuriStart reports whether key written with shift may begin okurigana.
func IsOkuriStart(key rune) bool {
	return unicode.IsUpper(key) && strings.ContainsRune("ABCDEFGHIJKMNOPRSTUVWYZ", key)
}

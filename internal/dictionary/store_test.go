package dictionary

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T, userPath string) *Store {
	t.Helper()
	system, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	user, _ := Parse(strings.NewReader("あい /哀/愛/\n"))
	return NewStore(user, userPath, system)
}

func words(store *Store, yomi string) []string {
	var out []string
	for _, candidate := range store.Lookup(yomi) {
		out = append(out, candidate.Word)
	}
	return out
}

func TestStoreLookupUserFirst(t *testing.T) {
	store := newTestStore(t, "")
	got := strings.Join(words(store, "あい"), ",")
	if got != "哀,愛,藍" {
		t.Fatalf("expected 哀,愛,藍, got %q", got)
	}
	if got := store.Lookup("なし"); got != nil {
		t.Fatalf("expected no candidates, got %+v", got)
	}
}

func TestStoreLookupNumeral(t *testing.T) {
	store := newTestStore(t, "")
	candidates := store.Lookup("だい12")
	if len(candidates) != 2 {
		t.Fatalf("expected 2 numeral candidates, got %+v", candidates)
	}
	first := candidates[0]
	if first.Word != "第１２" || first.Original == nil || first.Original.Midashi != "だい#" || first.Original.Word != "第#1" {
		t.Fatalf("unexpected numeral candidate %+v", first)
	}
	if candidates[1].Word != "第12" {
		t.Fatalf("expected 第12, got %q", candidates[1].Word)
	}
}

func TestStorePersistAndRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kanafe-jisyo")
	store := newTestStore(t, path)
	if err := store.Persist("かんじ", "幹事"); err != nil {
		t.Fatalf("persist: %v", err)
	}
	if got := words(store, "かんじ")[0]; got != "幹事" {
		t.Fatalf("expected persisted word first, got %q", got)
	}
	saved, err := Load(path, EncodingUTF8)
	if err != nil {
		t.Fatalf("load saved: %v", err)
	}
	if saved.Refer("かんじ")[0].Word != "幹事" {
		t.Fatalf("expected user dictionary to be saved")
	}

	if err := store.Remove("かんじ", "幹事"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := store.Remove("かんじ", "漢字"); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("expected read only, got %v", err)
	}
	if err := store.Remove("かんじ", "監事"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStoreWithoutUserDictionary(t *testing.T) {
	store := NewStore(nil, "")
	if err := store.Persist("あ", "亜"); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("expected read only, got %v", err)
	}
	if err := store.Remove("あ", "亜"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

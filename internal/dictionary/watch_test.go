package dictionary

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "user-jisyo")
	if err := os.WriteFile(path, []byte("あ /亜/\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w, err := Watch(ctx, path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other"), []byte("x"), 0o600); err != nil {
		t.Fatalf("write other: %v", err)
	}
	select {
	case <-w.Changes():
		t.Fatalf("unexpected change for another file")
	case <-time.After(100 * time.Millisecond):
	}

	if err := os.WriteFile(path, []byte("あ /阿/\n"), 0o600); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for change")
	}
}

func TestStoreReloadUser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user-jisyo")
	store := NewStore(New(), path)
	if err := store.Persist("あ", "亜"); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	reloaded, err := store.ReloadUser()
	if err != nil {
		t.Fatalf("ReloadUser: %v", err)
	}
	if reloaded {
		t.Fatalf("expected own save not to trigger a reload")
	}

	if err := os.WriteFile(path, []byte(";; okuri-nasi entries.\nあ /阿/亜/\nい /胃/\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	reloaded, err = store.ReloadUser()
	if err != nil {
		t.Fatalf("ReloadUser: %v", err)
	}
	if !reloaded {
		t.Fatalf("expected external edit to reload")
	}
	if got := strings.Join(words(store, "い"), ","); got != "胃" {
		t.Fatalf("expected 胃 after reload, got %q", got)
	}
	if store.UserPath() != path {
		t.Fatalf("unexpected user path %q", store.UserPath())
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"kanafe/internal/dictionary"
	"kanafe/internal/logging"
	"kanafe/internal/types"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.DefaultMode != types.ModeHiragana {
		t.Fatalf("expected default mode hiragana, got %v", cfg.DefaultMode)
	}
	if cfg.PageSize != 7 || cfg.Inline != 3 {
		t.Fatalf("expected page size 7 and inline 3, got %d and %d", cfg.PageSize, cfg.Inline)
	}
	if cfg.Encoding != dictionary.EncodingUTF8 {
		t.Fatalf("expected utf-8 encoding, got %q", cfg.Encoding)
	}
	if len(cfg.Dictionaries) != 0 {
		t.Fatalf("expected no system dictionaries, got %v", cfg.Dictionaries)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.ini"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.PageSize != 7 {
		t.Fatalf("expected default page size, got %d", cfg.PageSize)
	}
}

func TestLoadDirectory(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatalf("expected error for directory path")
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `[input]
default_mode = katakana

[candidates]
page_size = 5
inline = 2

[dictionary]
paths = /usr/share/skk/SKK-JISYO.L, ~/jisyo
user = /tmp/user-jisyo
encoding = euc-jp

[romaji]
wo = を
tt = っ,t

[log]
level = debug
format = json
output = stderr
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DefaultMode != types.ModeKatakana {
		t.Fatalf("expected katakana, got %v", cfg.DefaultMode)
	}
	if cfg.PageSize != 5 || cfg.Inline != 2 {
		t.Fatalf("expected page size 5 and inline 2, got %d and %d", cfg.PageSize, cfg.Inline)
	}
	if len(cfg.Dictionaries) != 2 || cfg.Dictionaries[0] != "/usr/share/skk/SKK-JISYO.L" {
		t.Fatalf("unexpected dictionaries: %v", cfg.Dictionaries)
	}
	if home, err := os.UserHomeDir(); err == nil {
		if want := filepath.Join(home, "jisyo"); cfg.Dictionaries[1] != want {
			t.Fatalf("expected %q, got %q", want, cfg.Dictionaries[1])
		}
	}
	if cfg.UserDictionary != "/tmp/user-jisyo" {
		t.Fatalf("expected user dictionary /tmp/user-jisyo, got %q", cfg.UserDictionary)
	}
	if cfg.Encoding != dictionary.EncodingEUCJP {
		t.Fatalf("expected euc-jp, got %q", cfg.Encoding)
	}
	if cfg.Romaji["wo"] != "を" || cfg.Romaji["tt"] != "っ,t" {
		t.Fatalf("unexpected romaji rules: %v", cfg.Romaji)
	}
	if cfg.LogLevel != logging.LevelDebug || cfg.LogFormat != logging.FormatJSON {
		t.Fatalf("unexpected log settings: %v %v", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.LogOutput != "stderr" {
		t.Fatalf("expected stderr output, got %q", cfg.LogOutput)
	}

	logCfg := cfg.LoggingConfig()
	if logCfg.Output != "stderr" || logCfg.Level != logging.LevelDebug {
		t.Fatalf("unexpected logging config: %+v", logCfg)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	cases := map[string]string{
		"mode":      "[input]\ndefault_mode = cyrillic\n",
		"page size": "[candidates]\npage_size = 0\n",
		"inline":    "[candidates]\ninline = -1\n",
		"encoding":  "[dictionary]\nencoding = shift-jis\n",
		"level":     "[log]\nlevel = loud\n",
		"format":    "[log]\nformat = xml\n",
		"output":    "[log]\noutput = syslog\n",
	}
	for name, contents := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, contents))
			var cfgErr ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
		})
	}
}

func TestResolveExplicitMissingPath(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "missing.ini"))
	var cfgErr ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestResolveWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefaultFileName), []byte("[candidates]\npage_size = 9\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if cfg.PageSize != 9 {
		t.Fatalf("expected page size 9 from %s, got %d", DefaultFileName, cfg.PageSize)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/a/b"); got != filepath.Join(home, "a", "b") {
		t.Fatalf("unexpected expansion: %q", got)
	}
	if got := ExpandHome("/abs"); got != "/abs" {
		t.Fatalf("expected absolute path unchanged, got %q", got)
	}
	if got := ExpandHome("~user/x"); got != "~user/x" {
		t.Fatalf("expected ~user unchanged, got %q", got)
	}
}

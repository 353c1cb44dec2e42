package cli

import (
	"strings"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	opts, err := Parse([]string{"kanafe"})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if opts.Output != OutputTerminal {
		t.Fatalf("expected terminal output, got %q", opts.Output)
	}
	if opts.ShowHelp || opts.ConfigPath != "" || opts.ReplayPath != "" {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

func TestParseValues(t *testing.T) {
	opts, err := Parse([]string{
		"kanafe",
		"--config", "/etc/kanafe.ini",
		"--dictionary=a.jisyo, b.jisyo",
		"--dictionary", "c.jisyo",
		"--user-dictionary", "/tmp/user",
		"--mode=katakana",
		"--output", "x11",
		"--replay", "-",
		"--log-level=debug",
	})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if opts.ConfigPath != "/etc/kanafe.ini" {
		t.Fatalf("expected config path, got %q", opts.ConfigPath)
	}
	if strings.Join(opts.Dictionaries, "|") != "a.jisyo|b.jisyo|c.jisyo" {
		t.Fatalf("unexpected dictionaries: %v", opts.Dictionaries)
	}
	if opts.UserDictionary != "/tmp/user" {
		t.Fatalf("expected user dictionary, got %q", opts.UserDictionary)
	}
	if opts.Mode != "katakana" || opts.Output != OutputX11 || opts.ReplayPath != "-" || opts.LogLevel != "debug" {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

func TestParseHelp(t *testing.T) {
	opts, err := Parse([]string{"kanafe", "-h"})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !opts.ShowHelp {
		t.Fatalf("expected ShowHelp")
	}
	if !strings.Contains(Usage(), "--replay") {
		t.Fatalf("usage does not mention --replay")
	}
}

func TestParseErrors(t *testing.T) {
	cases := [][]string{
		{"kanafe", "--config"},
		{"kanafe", "--output", "wayland"},
		{"kanafe", "--bogus"},
		{"kanafe", "--modes=hiragana"},
	}
	for _, args := range cases {
		if _, err := Parse(args); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

package logging

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		hasError bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			level, err := ParseLevel(test.input)
			if test.hasError != (err != nil) {
				t.Fatalf("unexpected error state: %v", err)
			}
			if level != test.expected {
				t.Errorf("expected %v, got %v", test.expected, level)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	for _, level := range []Level{LevelDebug, LevelInfo, LevelWarn, LevelError} {
		parsed, err := ParseLevel(LevelString(level))
		if err != nil || parsed != level {
			t.Errorf("round trip of %v failed: %v %v", level, parsed, err)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("JSON"); err != nil || f != FormatJSON {
		t.Fatalf("expected json, got %v %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected error for xml")
	}
}

func TestFileOutputJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "kanafe.log")
	logger, err := New(&Config{Level: LevelDebug, Format: FormatJSON, Output: "file", FilePath: path, Component: "test"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.WithComponent("engine").Debug("state changed", "method", "selecting")
	if err := logger.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &record); err != nil {
		t.Fatalf("decode record %q: %v", data, err)
	}
	if record["msg"] != "state changed" || record["method"] != "selecting" {
		t.Errorf("unexpected record %v", record)
	}
}

func TestLevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kanafe.log")
	logger, err := New(&Config{Level: LevelWarn, Output: "file", FilePath: path})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Close()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Errorf("unexpected log contents %q", data)
	}
}

func TestUnknownOutput(t *testing.T) {
	if _, err := New(&Config{Output: "syslog"}); err == nil {
		t.Fatalf("expected error for unknown output")
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger.Enabled(context.Background(), LevelError) {
		t.Errorf("discard logger should not be enabled")
	}
}

func TestWithComponentReplacesConfiguredComponent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kanafe.log")
	logger, err := New(&Config{Level: LevelInfo, Format: FormatJSON, Output: "file", FilePath: path, Component: "kanafe"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("base")
	logger.WithComponent("dictionary").Info("tagged")
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two records, got %q", data)
	}
	for i, want := range []string{"kanafe", "dictionary"} {
		if n := strings.Count(lines[i], `"component":`); n != 1 {
			t.Fatalf("record %d carries %d component keys: %s", i, n, lines[i])
		}
		var record map[string]any
		if err := json.Unmarshal([]byte(lines[i]), &record); err != nil {
			t.Fatalf("decode record %q: %v", lines[i], err)
		}
		if record["component"] != want {
			t.Errorf("record %d: expected component %q, got %v", i, want, record["component"])
		}
	}
}

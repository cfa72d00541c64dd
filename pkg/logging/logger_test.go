package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(9), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"debug", DebugLevel, false},
		{"INFO", InfoLevel, false},
		{"", InfoLevel, false},
		{"Warning", WarnLevel, false},
		{"error", ErrorLevel, false},
		{"verbose", InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: InfoLevel})

	logger.Info("links loaded", EdgeCount(12), NodeCount(5), Density(0.25), Link(3, 1))

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e["msg"] != "links loaded" || e["level"] != "INFO" {
		t.Errorf("unexpected header: %v", e)
	}
	if e["edge_count"] != float64(12) || e["node_count"] != float64(5) {
		t.Errorf("missing counts: %v", e)
	}
	if e["density"] != 0.25 {
		t.Errorf("density = %v, want 0.25", e["density"])
	}
	link, ok := e["link"].([]any)
	if !ok || len(link) != 2 || link[0] != float64(3) {
		t.Errorf("link = %v, want [3 1]", e["link"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: WarnLevel})

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("degenerate link skipped")
	logger.Error("load failed", Error(errors.New("boom")))

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1]["error"] != "boom" {
		t.Errorf("error field = %v", entries[1]["error"])
	}
}

func TestLogger_WithSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	parent := New(&buf, Options{Level: InfoLevel})
	child := parent.With(Component("filter"))

	child.Debug("hidden")
	parent.SetLevel(DebugLevel)
	child.Debug("visible now")

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0]["component"] != "filter" {
		t.Errorf("component = %v, want filter", entries[0]["component"])
	}
	if child.GetLevel() != DebugLevel {
		t.Errorf("child level = %v, want DEBUG", child.GetLevel())
	}
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Format: FormatText})
	logger.Info("color map changed", String("color_map", "blackbody"))

	out := buf.String()
	if !strings.Contains(out, "INFO\tcolor map changed") || !strings.Contains(out, `"color_map": "blackbody"`) {
		t.Errorf("unexpected text output: %q", out)
	}
}

func TestSpan(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: DebugLevel})

	Start(logger, "set_density", Density(0.3)).End(nil, VisibleCount(4))
	Start(logger, "load_edges").End(errors.New("no montage"))

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0]["operation"] != "set_density" || entries[0]["visible_count"] != float64(4) {
		t.Errorf("unexpected span entry: %v", entries[0])
	}
	if _, ok := entries[0]["latency"]; !ok {
		t.Error("span entry should carry latency")
	}
	if entries[1]["level"] != "ERROR" || entries[1]["msg"] != "load_edges failed" {
		t.Errorf("unexpected failed span entry: %v", entries[1])
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Info("nothing")
	if logger.With(Count(1)) != logger {
		t.Error("NopLogger.With should return itself")
	}
}

func TestDefaultLogger(t *testing.T) {
	var buf bytes.Buffer
	SetDefaultLogger(New(&buf, Options{}))
	defer SetDefaultLogger(NewNopLogger())

	DefaultLogger().Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("default logger did not write: %q", buf.String())
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	var buf bytes.Buffer
	logger := New(&buf, Options{})
	for i := 0; i < b.N; i++ {
		logger.Info("bench", EdgeCount(i))
	}
}

func BenchmarkLogger_InfoFiltered(b *testing.B) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: ErrorLevel})
	for i := 0; i < b.N; i++ {
		logger.Info("bench", EdgeCount(i))
	}
}

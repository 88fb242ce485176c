package logger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want zapcore.Level
		ok   bool
	}{
		{"debug", zapcore.DebugLevel, true},
		{"info", zapcore.InfoLevel, true},
		{"warn", zapcore.WarnLevel, true},
		{"error", zapcore.ErrorLevel, true},
		{"", zapcore.InfoLevel, false},
		{"verbose", zapcore.InfoLevel, false},
		{"WARN", zapcore.InfoLevel, false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestConsoleWriter(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "warn", Console: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	log.Info("exported", zap.String("template", "PIG"))
	log.Named("export").Warn("template not found", zap.String("template", "DRAGON"))
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "exported") {
		t.Error("info entry should be filtered at warn level")
	}
	for _, want := range []string{"WARN", "export", "template not found", `"template": "DRAGON"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in console output, got %q", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("output to a buffer should not be colored")
	}
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "loud", Console: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	log.Debug("hidden")
	log.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("expected info level filtering, got %q", out)
	}
}

func TestNoOutputs(t *testing.T) {
	log, err := New(Options{Level: "debug"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger without outputs should discard everything")
	}
}

// readJSONLines decodes one JSON object per line of a log file.
func readJSONLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open log file: %v", err)
	}
	defer f.Close()

	var entries []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e map[string]any
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("log line is not JSON: %q: %v", sc.Text(), err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "animalobj.log")
	log, err := New(Options{Level: "info", File: path, Rotation: DefaultRotation()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	log.Debug("hidden")
	log.Named("export").Error("template rejected",
		zap.String("template", "GHOST"),
		zap.String("error", "missing required field Legs"),
	)
	_ = log.Sync()

	entries := readJSONLines(t, path)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d: %v", len(entries), entries)
	}
	e := entries[0]
	if e["level"] != "error" || e["msg"] != "template rejected" || e["logger"] != "export" {
		t.Errorf("unexpected entry header: %v", e)
	}
	if e["template"] != "GHOST" {
		t.Errorf("expected template field GHOST, got %v", e["template"])
	}
	if _, ok := e["ts"]; !ok {
		t.Error("expected a timestamp")
	}
}

func TestFileRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.log")

	// 1MB is the smallest limit lumberjack accepts
	log, err := New(Options{
		Level:    "info",
		File:     path,
		Rotation: Rotation{MaxSizeMB: 1, MaxBackups: 2, MaxAgeDays: 1},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	payload := strings.Repeat("v 0.0000 0.0000 0.0000 ", 10)
	for i := 0; i < 6000; i++ {
		log.Info("exported", zap.Int("n", i), zap.String("payload", payload))
	}
	_ = log.Sync()

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read log dir: %v", err)
	}
	rotated := 0
	for _, f := range files {
		if f.Name() != "export.log" && strings.HasPrefix(f.Name(), "export-") {
			rotated++
		}
	}
	if rotated == 0 {
		t.Errorf("expected a rotated backup next to export.log, got %d files", len(files))
	}
}

func TestBadLogDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatalf("failed to create blocker: %v", err)
	}

	if _, err := New(Options{File: filepath.Join(blocker, "run.log")}); err == nil {
		t.Error("expected error when the log directory cannot be created")
	}
}

func TestInit(t *testing.T) {
	t.Cleanup(func() { Log = zap.NewNop() })

	var buf bytes.Buffer
	if err := Init(Options{Level: "debug", Console: &buf}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Debug("config loaded")
	Info("catalogue loaded", zap.Int("templates", 9))
	Warn("pattern matched no templates", zap.String("pattern", "Z*"))
	Error("inspect failed")
	Sync()

	out := buf.String()
	for _, want := range []string{"DEBUG", "INFO", "WARN", "ERROR", `"pattern": "Z*"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got %q", want, out)
		}
	}

	if err := Init(Options{File: filepath.Join(os.DevNull, "x.log")}); err == nil {
		t.Error("expected Init to fail for an unusable log path")
	}
	Warn("still routed to the previous logger")
	if !strings.Contains(buf.String(), "still routed") {
		t.Error("failed Init should keep the previous logger")
	}
}

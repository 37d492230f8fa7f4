package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestNew_Formats(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}
	l.Debug("dataset loaded", "countries", 7)
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("not json: %q", buf.String())
	}
	if rec["msg"] != "dataset loaded" || rec["countries"] != float64(7) {
		t.Errorf("record = %v", rec)
	}

	buf.Reset()
	l, _ = New(Options{Level: "warn", Writer: &buf})
	l.Info("hidden")
	l.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "msg=shown") {
		t.Errorf("text output = %q", buf.String())
	}

	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestSetup_Default(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Setup(Options{Writer: &buf}); err != nil {
		t.Fatal(err)
	}
	L().Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("default logger not replaced: %q", buf.String())
	}
}

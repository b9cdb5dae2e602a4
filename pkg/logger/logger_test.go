package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize text logger: %v", err)
	}
	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}

	if err := Init(WithFormat(FormatJSON)); err != nil {
		t.Fatalf("failed to initialize json logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if err := Init(WithFormat("xml")); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestLoggerJSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithFormat(FormatJSON), WithOutput(&buf))

	l.Info(context.Background(), "assessed",
		String("target", "DevOps Engineer"),
		Int("years", 5),
		Float64("roi", 12.5),
		Bool("capped", true),
		Error(errors.New("boom")),
	)

	var rec map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if rec["msg"] != "assessed" || rec["target"] != "DevOps Engineer" || rec["capped"] != true {
		t.Errorf("unexpected record: %v", rec)
	}
	if src, _ := rec["source"].(string); !strings.Contains(src, "logger_test.go") {
		t.Errorf("source should point at the caller, got %q", src)
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithOutput(&buf), WithLevel(slog.LevelWarn))
	ctx := context.Background()

	l.Debug(ctx, "hidden debug")
	l.Info(ctx, "hidden info")
	l.Warn(ctx, "shown warn")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below the level leaked: %s", out)
	}
	if !strings.Contains(out, "shown warn") {
		t.Errorf("warn message missing: %s", out)
	}
}

func TestLoggerNamed(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithFormat(FormatJSON), WithOutput(&buf)).Named("api")

	l.Info(context.Background(), "request", String("path", "/roi"))

	if !strings.Contains(buf.String(), `"api":{`) {
		t.Errorf("named group missing: %s", buf.String())
	}
}

func TestLoggerFatal(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithOutput(&buf)).(*slogLogger)
	code := -1
	l.exit = func(c int) { code = c }

	l.Fatal(context.Background(), "cannot start")

	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "cannot start") {
		t.Errorf("fatal message missing: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
	if err := SetLevelString("verbose"); err == nil {
		t.Error("expected SetLevelString to reject unknown level")
	}
}

func TestNop(t *testing.T) {
	l := NewNop()
	l.Error(context.Background(), "discarded")
	l.Named("x").Warn(context.Background(), "discarded")
}

func TestLoggerRequestID(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithFormat(FormatJSON), WithOutput(&buf))

	ctx := WithRequestID(context.Background(), "req-42")
	if got := RequestID(ctx); got != "req-42" {
		t.Fatalf("RequestID = %q, want req-42", got)
	}
	l.Warn(ctx, "operation failed")

	var rec map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if rec["request_id"] != "req-42" {
		t.Errorf("request_id missing from record: %v", rec)
	}

	buf.Reset()
	l.Warn(context.Background(), "no id")
	if strings.Contains(buf.String(), "request_id") {
		t.Errorf("request_id logged without one in context: %s", buf.String())
	}
}

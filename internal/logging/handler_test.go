package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}, "")
	logger := slog.New(h)

	now := time.Now()
	logger.Info("hello world", "foo", "value")

	output := buf.String()

	// Check format: Time Level Message Attributes
	// Example: 10:00PM INFO  hello world foo=value

	if !strings.Contains(output, "INFO") {
		t.Errorf("expected level INFO in output, got: %q", output)
	}
	if !strings.Contains(output, "hello world") {
		t.Errorf("expected message in output, got: %q", output)
	}
	if !strings.Contains(output, "foo=value") {
		t.Errorf("expected attribute in output, got: %q", output)
	}

	// Verify it contains the time (using Kitchen format as implemented)
	expectedTime := now.Format(time.Kitchen)
	if !strings.Contains(output, expectedTime) {
		t.Errorf("expected time %q in output, got: %q", expectedTime, output)
	}
}

func TestHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil, "")
	logger := slog.New(h).With("common", "attr")

	logger.Info("message", "local", "val")

	output := buf.String()
	if !strings.Contains(output, "common=attr") {
		t.Errorf("expected common attribute in output, got: %q", output)
	}
	if !strings.Contains(output, "local=val") {
		t.Errorf("expected local attribute in output, got: %q", output)
	}
}

func TestHandler_Enabled(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}, "")

	ctx := t.Context()
	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("expected Info level to be disabled when min level is Warn")
	}
	if !h.Enabled(ctx, slog.LevelWarn) {
		t.Error("expected Warn level to be enabled")
	}
	if !h.Enabled(ctx, slog.LevelError) {
		t.Error("expected Error level to be enabled")
	}
}

func TestHandler_NoTime(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil, "")

	// Create a record without time
	r := slog.NewRecord(time.Time{}, slog.LevelInfo, "no time", 0)
	err := h.Handle(t.Context(), r)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	output := buf.String()
	// Should not start with a time-like pattern (Kitchen format usually has ':')
	if strings.Contains(output, ":") && strings.Index(output, ":") < 10 {
		t.Errorf("expected no time in output, got: %q", output)
	}
}

func TestHandler_ShortensHomePaths(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}, "/home/alice")
	logger := slog.New(h)

	logger.Info("copying", "path", "/home/alice/.themes/Nordic", "dest", "/usr/share/themes",
		"home", "/home/alice", "other", "/home/alice2/x")

	output := buf.String()
	if !strings.Contains(output, "path=~/.themes/Nordic") {
		t.Errorf("expected home-relative path, got: %q", output)
	}
	if !strings.Contains(output, "dest=/usr/share/themes") {
		t.Errorf("expected system path untouched, got: %q", output)
	}
	if !strings.Contains(output, "home=~ ") {
		t.Errorf("expected bare home as ~, got: %q", output)
	}
	if !strings.Contains(output, "other=/home/alice2/x") {
		t.Errorf("expected sibling directory untouched, got: %q", output)
	}
}

func TestHandler_RootHomeNotShortened(t *testing.T) {
	var buf bytes.Buffer
	slog.New(NewHandler(&buf, nil, "/")).Info("probe", "path", "/etc/sddm.conf")

	if !strings.Contains(buf.String(), "path=/etc/sddm.conf") {
		t.Errorf("expected path untouched for root home, got: %q", buf.String())
	}
}

func TestHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil, "")
	logger := slog.New(h).WithGroup("probe")

	logger.Info("checked", "path", "/etc/sddm.conf")

	if !strings.Contains(buf.String(), "probe.path=/etc/sddm.conf") {
		t.Errorf("expected grouped key, got: %q", buf.String())
	}
}

func TestHandler_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}, "")
	logger := slog.New(h)

	logger.Log(t.Context(), LevelTrace, "deep detail")

	if !strings.Contains(buf.String(), "TRACE") {
		t.Errorf("expected TRACE level name, got: %q", buf.String())
	}
}

package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/logging/console"
)

func TestConsoleLogger_WritesSortedFields(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC)

	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
	})

	logger := provider.GetLogger("pagebuilder.render")
	ctx := logging.ContextWithFields(context.Background(), map[string]any{"request_id": "req-9"})
	logger = logger.WithContext(ctx)
	logger.Warn("render.skipped", "block_type", "carousel", "error", errors.New("no renderer registered"))

	got := strings.TrimSpace(buf.String())
	want := `2025-06-02T10:30:00Z WARN render.skipped block_type=carousel error="no renderer registered" logger=pagebuilder.render request_id=req-9`
	if got != want {
		t.Fatalf("unexpected entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLogger_FiltersBelowMinLevel(t *testing.T) {
	var buf bytes.Buffer
	level := console.ParseLevel("warn")
	provider := console.NewProvider(console.Options{Writer: &buf, MinLevel: &level})

	logger := provider.GetLogger("pagebuilder.editor")
	logger.Info("editor.autosave.scheduled")
	logger.Error("editor.autosave.failed", "page_id", "p1")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "editor.autosave.failed") {
		t.Fatalf("expected error entry, got %s", lines[0])
	}
}

func TestConsoleLogger_OddArgsKeepTrailingValue(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf})
	provider.GetLogger("x").Info("msg", "k", "v", "dangling")

	if !strings.Contains(buf.String(), "field_1=dangling") {
		t.Fatalf("expected positional field for dangling arg, got %s", buf.String())
	}
}

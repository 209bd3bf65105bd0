package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return NewTextLogger(&buf, slog.LevelDebug), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "frame", "event_type", "document_updated")
	log.Info(ctx, "connected", "channel", "list")
	log.Warn(ctx, "unrecognized", "document_id", 7)
	log.Error(ctx, "load failed", "error", "boom")

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG", "msg=frame", "event_type=document_updated",
		"level=INFO", "channel=list",
		"level=WARN", "document_id=7",
		"level=ERROR", "error=boom",
	} {
		assert.Contains(t, out, want)
	}
}

func TestSlogLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewTextLogger(&buf, slog.LevelWarn)

	log.Info(context.Background(), "quiet")
	assert.Empty(t, buf.String())
}

func TestSlogLogger_With(t *testing.T) {
	log, buf := newTestLogger(t)

	log.With("component", "detail").Info(context.Background(), "opened", "document_id", 12)

	assert.Contains(t, buf.String(), "component=detail")
	assert.Contains(t, buf.String(), "document_id=12")
}

func TestSlogLogger_RequestID(t *testing.T) {
	log, buf := newTestLogger(t)

	ctx := WithRequestID(context.Background(), "sync-1")
	log.Info(ctx, "status sync requested")
	assert.Contains(t, buf.String(), "request_id=sync-1")

	buf.Reset()
	log.Info(context.Background(), "no id")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestSlogLogger_NilContext(t *testing.T) {
	log, buf := newTestLogger(t)

	log.Warn(nil, "ctx-ok")
	assert.Contains(t, buf.String(), "msg=ctx-ok")
}

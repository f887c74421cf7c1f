package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var rec map[string]any
		require.NoError(t, sonic.Unmarshal(line, &rec))
		out = append(out, rec)
	}
	return out
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, LevelDebug, ParseLevel(" DEBUG "))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
}

func TestLoggerWritesKeyValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSONTo(&buf, LevelInfo).With("component", "finder")
	logger.Debug("hidden")
	logger.Info("month loaded", "month", "2026-02", "took", 1500*time.Millisecond, "error", errors.New("boom"), "dangling")

	records := decodeLines(t, &buf)
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "month loaded", rec["msg"])
	assert.Equal(t, "finder", rec["component"])
	assert.Equal(t, "2026-02", rec["month"])
	assert.Equal(t, "1.5s", rec["took"])
	assert.Equal(t, "boom", rec["error"])
	assert.Contains(t, rec, "dangling")
	assert.Contains(t, rec["caller"], "logger_test.go")
}

func TestLoggerContextAddsTraceIDs(t *testing.T) {
	t.Parallel()

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	var buf bytes.Buffer
	NewJSONTo(&buf, LevelDebug).WarnContext(ctx, "feed slow")

	records := decodeLines(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, "0102030405060708090a0b0c0d0e0f10", records[0]["trace_id"])
	assert.Equal(t, "0102030405060708", records[0]["span_id"])
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	assert.NotPanics(t, func() {
		logger.Info("ignored")
		_ = logger.Sync()
	})
	assert.NotNil(t, logger.With("k", "v"))
}

package tracing

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChildSpansInheritTraceID(t *testing.T) {
	ctx, root := StartSpan(context.Background(), "check", "run-1")
	_, load := StartChildSpan(ctx, "load")
	load.End()
	scoreCtx, score := StartChildSpan(ctx, "score")
	_, full := StartChildSpan(scoreCtx, "score.full")
	full.End()
	score.End()
	root.End()

	require.Len(t, root.Children, 2)
	assert.Equal(t, "run-1", load.TraceID)
	assert.Equal(t, "run-1", full.TraceID)
	assert.Same(t, score, SpanFromContext(scoreCtx))

	durations := root.Durations()
	assert.Contains(t, durations, "load")
	assert.Contains(t, durations, "score")
	assert.Contains(t, durations, "score.full")
	assert.NotContains(t, durations, "check")
}

func TestDetachedChildSpan(t *testing.T) {
	_, span := StartChildSpan(context.Background(), "orphan")
	span.End()
	assert.Empty(t, span.TraceID)
}

func TestLogWritesTree(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx, root := StartSpan(context.Background(), "check", "run-2")
	_, child := StartChildSpan(ctx, "diff")
	child.SetAttr("mismatches", 3)
	child.End()
	root.End()
	root.Log(logger)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "span=check")
	assert.Contains(t, lines[1], "span=diff")
	assert.Contains(t, lines[1], "depth=1")
	assert.Contains(t, lines[1], "mismatches=3")
}

package xlog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xmemo/pkg/observability/xlog"
)

func build(t *testing.T, b *xlog.Builder) xlog.LoggerWithLevel {
	t.Helper()
	logger, cleanup, err := b.Build()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, cleanup()) })
	return logger
}

// =============================================================================
// Logger 接口测试
// =============================================================================

func TestLogger_BasicLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := build(t, xlog.New().SetOutput(&buf).SetLevel(xlog.LevelDebug))

	ctx := context.Background()
	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message")

	out := buf.String()
	for _, want := range []string{"debug message", "info message", "warn message", "error message"} {
		assert.Contains(t, out, want)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := build(t, xlog.New().SetOutput(&buf).SetLevel(xlog.LevelWarn))

	ctx := context.Background()
	logger.Info(ctx, "hidden")
	logger.Warn(ctx, "shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	assert.False(t, logger.Enabled(ctx, xlog.LevelInfo))
	logger.SetLevel(xlog.LevelDebug)
	assert.Equal(t, xlog.LevelDebug, logger.GetLevel())
	logger.Debug(ctx, "now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestLogger_JSONAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := build(t, xlog.New().SetOutput(&buf).SetFormat("JSON"))

	child := logger.With(xlog.Component("xmemo"))
	child.Info(context.Background(), "evicted",
		xlog.Key("(1) {}"),
		xlog.Digest("abc"),
		xlog.Count(3),
		xlog.Duration(1500*time.Millisecond),
		xlog.Err(errors.New("boom")),
		xlog.Err(nil),
	)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "evicted", rec["msg"])
	assert.Equal(t, "xmemo", rec[xlog.KeyComponent])
	assert.Equal(t, "(1) {}", rec[xlog.KeyCacheKey])
	assert.Equal(t, "abc", rec[xlog.KeyDigest])
	assert.EqualValues(t, 3, rec[xlog.KeyCount])
	assert.Equal(t, "1.5s", rec[xlog.KeyDuration])
	assert.Equal(t, "boom", rec[xlog.KeyError])
}

func TestLogger_DerivedSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := build(t, xlog.New().SetOutput(&buf))
	child := logger.With(xlog.Operation("gc"))
	assert.Same(t, logger, logger.With())

	logger.SetLevel(xlog.LevelError)
	child.Warn(context.Background(), "suppressed")
	assert.Empty(t, buf.String())
}

func TestLogger_NilContext(t *testing.T) {
	var buf bytes.Buffer
	logger := build(t, xlog.New().SetOutput(&buf))
	assert.NotPanics(t, func() {
		logger.Info(nil, "nil ctx") //nolint:staticcheck // 测试 nil ctx 行为
	})
	assert.Contains(t, buf.String(), "nil ctx")
}

// =============================================================================
// Builder 测试
// =============================================================================

func TestBuilder_Errors(t *testing.T) {
	tests := []struct {
		name string
		b    *xlog.Builder
		want string
	}{
		{name: "未知级别", b: xlog.New().SetLevelString("verbose"), want: "unknown level"},
		{name: "未知格式", b: xlog.New().SetFormat("xml"), want: "unknown format"},
		{name: "首个错误优先", b: xlog.New().SetFormat("xml").SetLevelString("nope"), want: "unknown format"},
		{name: "轮转大小非法", b: xlog.New().SetRotation(filepath.Join(os.TempDir(), "xlog-bad.log"), xlog.RotationMaxSizeMB(0)), want: "max size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.b.Build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBuilder_Rotation(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, cleanup, err := xlog.New().
		SetRotation(file, xlog.RotationMaxSizeMB(1), xlog.RotationMaxBackups(2),
			xlog.RotationMaxAgeDays(1), xlog.RotationCompress(false)).
		Build()
	require.NoError(t, err)

	logger.Info(context.Background(), "to file")
	require.NoError(t, cleanup())
	require.NoError(t, cleanup(), "cleanup 应可重复调用")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "to file"))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]xlog.Level{
		"debug":   xlog.LevelDebug,
		" INFO ":  xlog.LevelInfo,
		"":        xlog.LevelInfo,
		"warning": xlog.LevelWarn,
		"Error":   xlog.LevelError,
	}
	for in, want := range tests {
		got, err := xlog.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	var l xlog.Level
	require.NoError(t, l.UnmarshalText([]byte("warn")))
	assert.Equal(t, xlog.LevelWarn, l)
	assert.Equal(t, "WARN", l.String())
	assert.Error(t, l.UnmarshalText([]byte("loud")))
}

// =============================================================================
// 全局 Logger 与 Discard
// =============================================================================

func TestGlobal(t *testing.T) {
	t.Cleanup(xlog.ResetDefault)

	var buf bytes.Buffer
	logger := build(t, xlog.New().SetOutput(&buf).SetLevel(xlog.LevelDebug))
	xlog.SetDefault(logger)
	xlog.SetDefault(nil)
	assert.Same(t, logger, xlog.Default())

	ctx := context.Background()
	xlog.Debug(ctx, "g-debug")
	xlog.Info(ctx, "g-info")
	xlog.Warn(ctx, "g-warn")
	xlog.Error(ctx, "g-error")
	for _, want := range []string{"g-debug", "g-info", "g-warn", "g-error"} {
		assert.Contains(t, buf.String(), want)
	}

	xlog.ResetDefault()
	assert.NotNil(t, xlog.Default())
}

func TestDiscard(t *testing.T) {
	l := xlog.Discard()
	assert.NotPanics(t, func() {
		l.Error(context.Background(), "dropped", xlog.Count(1))
		l.With(xlog.Component("x")).Info(context.Background(), "dropped")
	})
}

// ABOUTME: Tests for argument parsing, formatting helpers and the color log handler
// ABOUTME: Table-driven where the cases are uniform

package main

import (
	"bytes"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/2389/academyx-admin/internal/config"
)

func TestParseArgs(t *testing.T) {
	p := parseArgs([]string{"c1", "--name", "Acme Ltd", "--desc", "-s=foo", "extra", "--", "--literal"}, "--desc")

	assert.Equal(t, []string{"c1", "extra", "--literal"}, p.pos)
	assert.Equal(t, "Acme Ltd", p.get("--name"))
	assert.Equal(t, "foo", p.get("--search", "-s"))
	assert.True(t, p.has("--desc"))
	assert.False(t, p.has("--inactive"))
	assert.Equal(t, "c1", p.arg(0))
	assert.Equal(t, "", p.arg(5))
}

func TestParseArgs_TrailingFlag(t *testing.T) {
	p := parseArgs([]string{"--sort"})
	assert.True(t, p.has("--sort"))
	assert.Equal(t, "", p.get("--sort"))
}

func TestSubcommand(t *testing.T) {
	tests := []struct {
		args     []string
		wantSub  string
		wantRest int
	}{
		{nil, "list", 0},
		{[]string{"show", "x"}, "show", 1},
		{[]string{"--search", "x"}, "list", 2},
	}
	for _, tt := range tests {
		sub, rest := subcommand(tt.args, "list")
		assert.Equal(t, tt.wantSub, sub)
		assert.Len(t, rest, tt.wantRest)
	}
}

func TestParseOnOff(t *testing.T) {
	for _, s := range []string{"on", "ON", "active", "true"} {
		v, err := parseOnOff(s)
		assert.NoError(t, err)
		assert.True(t, v, s)
	}
	for _, s := range []string{"off", "inactive", "no"} {
		v, err := parseOnOff(s)
		assert.NoError(t, err)
		assert.False(t, v, s)
	}
	_, err := parseOnOff("maybe")
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Çalış...", truncate("Çalışan Bağlılığı", 8))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "-", formatDate(""))
	assert.Equal(t, "Dec 01 2026", formatDate("2026-12-01"))
	assert.Equal(t, "Mar 01 2026", formatDate("2026-03-01T10:00:00Z"))
	assert.Equal(t, "next week", formatDate("next week"))
	assert.Equal(t, "-", formatTime(time.Time{}))
}

func TestColorHandler(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	logger := slog.New(newColorHandler(&buf, slog.LevelInfo))

	logger.Debug("hidden")
	logger.With("component", "client").WithGroup("req").Info("request completed", "status", 200, "path", "/a b")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INF request completed component=client req.status=200 req.path=\"/a b\"")
}

func TestSetupLogger_Formats(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	logger.Info("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	logger = setupLogger(config.LoggingConfig{Level: "error", Format: "text"}, &buf)
	logger.Warn("quiet")
	assert.Empty(t, buf.String())

	assert.Equal(t, slog.LevelWarn, parseLevel("bogus"))
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
}

func TestSetupLogger_ExplicitTextIgnoresTerminal(t *testing.T) {
	color.NoColor = true
	orig := isTerminal
	isTerminal = func(io.Writer) bool { return true }
	t.Cleanup(func() { isTerminal = orig })

	var buf bytes.Buffer
	setupLogger(config.LoggingConfig{Level: "warn", Format: "text"}, &buf).Warn("plain")
	assert.Contains(t, buf.String(), "level=WARN msg=plain")

	buf.Reset()
	setupLogger(config.LoggingConfig{Level: "warn"}, &buf).Warn("auto")
	assert.Contains(t, buf.String(), "WRN auto")
	assert.NotContains(t, buf.String(), "level=")
}

package log

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestSetup_RejectsUnknownLevel(t *testing.T) {
	err := Setup("loud", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "loud")
}

func TestSetup_AcceptsStandardLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "WARN", " info "} {
		require.NoError(t, Setup(level, nil), "level %q", level)
	}
}

func TestCategoryFilter(t *testing.T) {
	require.NoError(t, Setup("debug", []string{"loader", "Merge"}))

	require.False(t, skip(CatLoader))
	require.False(t, skip(CatMerge), "category names are case-insensitive")
	require.True(t, skip(CatSound))
	require.True(t, skip(CatWatch))

	// Empty filter enables everything again.
	require.NoError(t, Setup("debug", nil))
	require.False(t, skip(CatSound))
}

func TestPreSetupLoggerStaysQuietBelowWarn(t *testing.T) {
	// Config loading logs before the CLI calls Setup; those lines must
	// honor the default warn level, not a debug fallback.
	logger = nil
	t.Cleanup(func() { logger = nil })

	core := get().Desugar().Core()
	require.False(t, core.Enabled(zapcore.DebugLevel))
	require.False(t, core.Enabled(zapcore.InfoLevel))
	require.True(t, core.Enabled(zapcore.WarnLevel))
}

func TestLoggingDoesNotPanic(t *testing.T) {
	require.NoError(t, Setup("debug", []string{"loader"}))

	Debug(CatLoader, "loading", "path", "/tmp/x")
	Info(CatLoader, "loaded", "count", 3)
	Warn(CatSound, "filtered out, still must not panic")
	Error(CatLoader, "failed", "path", "/tmp/x")
	ErrorErr(CatLoader, "failed", nil, "path", "/tmp/x")
	Close()
}

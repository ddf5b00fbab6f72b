// Package log provides category-based structured logging for langgen.
//
// Diagnostics go to stderr so that stdout stays reserved for the
// generator's contract output (progress lines, statistics, errors).
package log

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category identifies the subsystem a log line belongs to. Lines can be
// filtered per category via Setup.
type Category string

const (
	CatLoader    Category = "loader"
	CatMerge     Category = "merge"
	CatSound     Category = "sound"
	CatRender    Category = "render"
	CatConfig    Category = "config"
	CatWatch     Category = "watch"
	CatTelemetry Category = "telemetry"
)

var (
	logger  *zap.SugaredLogger
	enabled map[Category]bool
)

// Setup configures the package logger. level is one of debug, info, warn,
// error. categories restricts output to the named subsystems; empty means
// all. The CLI calls this in its PersistentPreRunE; lines logged earlier
// go through a warn-level fallback.
func Setup(level string, categories []string) error {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return fmt.Errorf("parsing log level %q: %w", level, err)
	}

	l, err := build(lvl)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	logger = l

	if len(categories) == 0 {
		enabled = nil
		return nil
	}
	enabled = make(map[Category]bool, len(categories))
	for _, c := range categories {
		enabled[Category(strings.ToLower(strings.TrimSpace(c)))] = true
	}
	return nil
}

func build(lvl zapcore.Level) (*zap.SugaredLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	base, err := cfg.Build(zap.WithCaller(false))
	if err != nil {
		return nil, err
	}
	return base.Sugar(), nil
}

// Close flushes buffered log output. Sync errors are ignored; stderr on
// most platforms does not support fsync.
func Close() {
	if logger != nil {
		_ = logger.Sync()
	}
}

// get returns the configured logger. Before Setup runs, lines go through
// a warn-level logger matching the default config level, so early calls
// do not spill debug output.
func get() *zap.SugaredLogger {
	if logger == nil {
		l, err := build(zapcore.WarnLevel)
		if err != nil {
			l = zap.NewNop().Sugar()
		}
		logger = l
	}
	return logger
}

func skip(cat Category) bool {
	return enabled != nil && !enabled[cat]
}

func fields(cat Category, keysAndValues []any) []any {
	return append([]any{"category", string(cat)}, keysAndValues...)
}

// Debug logs a debug message for the given category.
func Debug(cat Category, msg string, keysAndValues ...any) {
	if skip(cat) {
		return
	}
	get().Debugw(msg, fields(cat, keysAndValues)...)
}

// Info logs an info message for the given category.
func Info(cat Category, msg string, keysAndValues ...any) {
	if skip(cat) {
		return
	}
	get().Infow(msg, fields(cat, keysAndValues)...)
}

// Warn logs a warning for the given category.
func Warn(cat Category, msg string, keysAndValues ...any) {
	if skip(cat) {
		return
	}
	get().Warnw(msg, fields(cat, keysAndValues)...)
}

// Error logs an error message for the given category.
func Error(cat Category, msg string, keysAndValues ...any) {
	if skip(cat) {
		return
	}
	get().Errorw(msg, fields(cat, keysAndValues)...)
}

// ErrorErr logs an error message with the error attached as a field.
func ErrorErr(cat Category, msg string, err error, keysAndValues ...any) {
	if skip(cat) {
		return
	}
	get().Errorw(msg, append(fields(cat, keysAndValues), "error", err)...)
}

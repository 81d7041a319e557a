// Package ipvlog is a trimmed zap wrapper carrying only what a
// single-shot, single-process validator run needs: stderr logging for
// the CLI, an optional rotating file sink, and the debug-level stage
// tracing validate.Run emits.
package ipvlog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps a configured zap.Logger.
type Logger struct {
	zap *zap.Logger
}

// Options configures a Logger.
type Options struct {
	// Verbose raises the level from INFO to DEBUG.
	Verbose bool
	// FilePath, when non-empty, adds a rotating file sink alongside stderr.
	FilePath string
}

// New builds a Logger writing to stderr and, when Options.FilePath is
// set, to a rotating log file via lumberjack.
func New(opts Options) *Logger {
	level := zapcore.InfoLevel
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:     "timestamp",
		LevelKey:    "severity",
		MessageKey:  "message",
		LineEnding:  zapcore.DefaultLineEnding,
		EncodeLevel: zapcore.CapitalLevelEncoder,
		EncodeTime:  zapcore.RFC3339TimeEncoder,
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(os.Stderr), level),
	}
	if opts.FilePath != "" {
		sink := &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    10,
			MaxAge:     14,
			MaxBackups: 3,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(sink), level))
	}

	return &Logger{zap: zap.New(zapcore.NewTee(cores...))}
}

// Noop returns a Logger that discards everything, for callers (tests,
// library embedders) that don't want stage tracing.
func Noop() *Logger {
	return &Logger{zap: zap.NewNop()}
}

// Debug logs a stage-transition trace message.
func (l *Logger) Debug(msg string, fields ...zap.Field) { l.zap.Debug(msg, fields...) }

// Info logs an informational message.
func (l *Logger) Info(msg string, fields ...zap.Field) { l.zap.Info(msg, fields...) }

// Warn logs a warning.
func (l *Logger) Warn(msg string, fields ...zap.Field) { l.zap.Warn(msg, fields...) }

// Error logs an error.
func (l *Logger) Error(msg string, fields ...zap.Field) { l.zap.Error(msg, fields...) }

// Sync flushes buffered log entries.
func (l *Logger) Sync() error { return l.zap.Sync() }

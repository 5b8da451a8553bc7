package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Logger is a thin wrapper around slog that carries the package, file and
// function context as structured attributes. The zero value logs through
// slog.Default.
type Logger struct {
	logger   *slog.Logger
	pkg      string
	file     string
	function string
}

func New(pkg string) Logger {
	return Logger{pkg: pkg}
}

// Configure installs a JSON slog handler at the given level as the process
// default. Call once from main before anything logs.
func Configure(level string) {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}

func (l Logger) Function(name string) Logger {
	l.function = name
	return l
}

func (l Logger) File(name string) Logger {
	l.file = name
	return l
}

func (l Logger) base() *slog.Logger {
	logger := l.logger
	if logger == nil {
		logger = slog.Default()
	}
	if l.pkg != "" {
		logger = logger.With("package", l.pkg)
	}
	if l.file != "" {
		logger = logger.With("file", l.file)
	}
	if l.function != "" {
		logger = logger.With("function", l.function)
	}
	return logger
}

func (l Logger) Info(msg string, args ...any) {
	l.base().Info(msg, args...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.base().Warn(msg, args...)
}

// Er logs an error without returning it, for paths that handle the error
// themselves.
func (l Logger) Er(msg string, err error, args ...any) {
	l.base().Error(msg, append([]any{"error", err}, args...)...)
}

// Err logs an error and returns it wrapped with the message, so call sites
// can `return log.Err(...)` in one line.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.Er(msg, err, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Error logs a message with no underlying error and returns it as one.
func (l Logger) Error(msg string, args ...any) error {
	l.base().Error(msg, args...)
	return fmt.Errorf("%s", msg)
}

// ErrMsg is Error without structured arguments.
func (l Logger) ErrMsg(msg string) error {
	return l.Error(msg)
}

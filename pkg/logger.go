package pkg

import (
	"log/slog"
	"os"
)

// Logger is the framework's structured logging interface, deliberately
// small: four levels plus With-style derivation, backed by the standard
// library's slog rather than a bespoke formatter.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})

	// With returns a derived Logger that prepends fields to every
	// subsequent call, the way slog.Logger.With does.
	With(fields ...interface{}) Logger
}

type standardLogger struct {
	logger *slog.Logger
}

// NewLogger wraps logger as a Logger; if logger is nil it wraps a new
// slog text logger writing to stderr.
func NewLogger(logger *slog.Logger) Logger {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &standardLogger{logger: logger}
}

func (l *standardLogger) Debug(msg string, fields ...interface{}) { l.logger.Debug(msg, fields...) }
func (l *standardLogger) Info(msg string, fields ...interface{})  { l.logger.Info(msg, fields...) }
func (l *standardLogger) Warn(msg string, fields ...interface{})  { l.logger.Warn(msg, fields...) }
func (l *standardLogger) Error(msg string, fields ...interface{}) { l.logger.Error(msg, fields...) }

func (l *standardLogger) With(fields ...interface{}) Logger {
	return &standardLogger{logger: l.logger.With(fields...)}
}

package tracelet

import (
	"fmt"
	"log"
	"log/slog"

	"go.uber.org/zap"
)

// Logger is a minimal printf-style logging interface, compatible with the
// standard library log.Logger.
type Logger interface {
	// Printf logs a formatted message.
	Printf(format string, v ...any)
}

// StructuredLogger provides leveled, structured logging for the library.
// It is compatible with Go's slog package and similar structured loggers;
// use SlogAdapter or ZapAdapter to plug in a concrete backend:
//
//	rec := tracelet.NewRecorder(
//	    tracelet.WithLogger(tracelet.NewSlogAdapter(slog.Default())),
//	)
type StructuredLogger interface {
	// Debug logs a debug-level message with optional key-value pairs.
	Debug(msg string, args ...any)
	// Info logs an info-level message with optional key-value pairs.
	Info(msg string, args ...any)
	// Warn logs a warning-level message with optional key-value pairs.
	Warn(msg string, args ...any)
	// Error logs an error-level message with optional key-value pairs.
	Error(msg string, args ...any)
}

// NopLogger is a logger that discards all log messages.
// Use this to disable logging entirely.
type NopLogger struct{}

// Printf implements Logger.Printf.
func (NopLogger) Printf(format string, v ...any) {}

// Debug implements StructuredLogger.Debug.
func (NopLogger) Debug(msg string, args ...any) {}

// Info implements StructuredLogger.Info.
func (NopLogger) Info(msg string, args ...any) {}

// Warn implements StructuredLogger.Warn.
func (NopLogger) Warn(msg string, args ...any) {}

// Error implements StructuredLogger.Error.
func (NopLogger) Error(msg string, args ...any) {}

// Ensure NopLogger implements both interfaces.
var (
	_ Logger           = NopLogger{}
	_ StructuredLogger = NopLogger{}
)

// SlogAdapter adapts a slog.Logger to the StructuredLogger interface.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter wrapping the given slog.Logger.
// If logger is nil, slog.Default() is used.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Debug implements StructuredLogger.Debug.
func (a *SlogAdapter) Debug(msg string, args ...any) { a.logger.Debug(msg, args...) }

// Info implements StructuredLogger.Info.
func (a *SlogAdapter) Info(msg string, args ...any) { a.logger.Info(msg, args...) }

// Warn implements StructuredLogger.Warn.
func (a *SlogAdapter) Warn(msg string, args ...any) { a.logger.Warn(msg, args...) }

// Error implements StructuredLogger.Error.
func (a *SlogAdapter) Error(msg string, args ...any) { a.logger.Error(msg, args...) }

// ZapAdapter adapts a zap.Logger to the StructuredLogger interface via its
// SugaredLogger, which accepts loosely typed key-value pairs.
type ZapAdapter struct {
	logger *zap.SugaredLogger
}

// NewZapAdapter creates a new ZapAdapter wrapping the given zap.Logger.
// If logger is nil, zap.NewNop() is used.
func NewZapAdapter(logger *zap.Logger) *ZapAdapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapAdapter{logger: logger.Sugar()}
}

// Debug implements StructuredLogger.Debug.
func (a *ZapAdapter) Debug(msg string, args ...any) { a.logger.Debugw(msg, args...) }

// Info implements StructuredLogger.Info.
func (a *ZapAdapter) Info(msg string, args ...any) { a.logger.Infow(msg, args...) }

// Warn implements StructuredLogger.Warn.
func (a *ZapAdapter) Warn(msg string, args ...any) { a.logger.Warnw(msg, args...) }

// Error implements StructuredLogger.Error.
func (a *ZapAdapter) Error(msg string, args ...any) { a.logger.Errorw(msg, args...) }

// printfLoggerWrapper wraps a printf-style logger to implement StructuredLogger.
type printfLoggerWrapper struct {
	logger Logger
}

// WrapPrintfLogger wraps a printf-style Logger (like *log.Logger) to
// implement StructuredLogger. All messages are logged at the same level with
// formatted key-value pairs appended.
func WrapPrintfLogger(l Logger) StructuredLogger {
	return &printfLoggerWrapper{logger: l}
}

// WrapStdLogger wraps a standard library *log.Logger to implement
// StructuredLogger. Convenience for WrapPrintfLogger.
func WrapStdLogger(l *log.Logger) StructuredLogger {
	return &printfLoggerWrapper{logger: l}
}

func (w *printfLoggerWrapper) Debug(msg string, args ...any) {
	w.logger.Printf("[DEBUG] " + msg + formatArgs(args))
}

func (w *printfLoggerWrapper) Info(msg string, args ...any) {
	w.logger.Printf("[INFO] " + msg + formatArgs(args))
}

func (w *printfLoggerWrapper) Warn(msg string, args ...any) {
	w.logger.Printf("[WARN] " + msg + formatArgs(args))
}

func (w *printfLoggerWrapper) Error(msg string, args ...any) {
	w.logger.Printf("[ERROR] " + msg + formatArgs(args))
}

// Ensure adapters implement StructuredLogger.
var (
	_ StructuredLogger = (*SlogAdapter)(nil)
	_ StructuredLogger = (*ZapAdapter)(nil)
	_ StructuredLogger = (*printfLoggerWrapper)(nil)
)

// formatArgs formats structured logging arguments as a string.
func formatArgs(args []any) string {
	if len(args) == 0 {
		return ""
	}
	result := " |"
	for i := 0; i < len(args)-1; i += 2 {
		result += fmt.Sprintf(" %v=%v", args[i], args[i+1])
	}
	return result
}

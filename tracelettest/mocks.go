package tracelettest

import (
	"fmt"
	"sync"

	tracelet "github.com/tracelet/tracelet-go"
)

// Compile-time interface assertion to catch drift between the mock and the
// interface it implements.
var _ tracelet.StructuredLogger = (*MockLogger)(nil)

// LogRecord is one captured log call.
type LogRecord struct {
	Level   string
	Message string
	Args    []any
}

// String formats the record for test failure messages.
func (r LogRecord) String() string {
	return fmt.Sprintf("[%s] %s %v", r.Level, r.Message, r.Args)
}

// MockLogger is a StructuredLogger that captures all records for later
// verification. It is safe for concurrent use.
type MockLogger struct {
	mu      sync.Mutex
	records []LogRecord
}

// NewMockLogger creates a new mock logger.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (l *MockLogger) log(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, LogRecord{Level: level, Message: msg, Args: args})
}

// Debug implements StructuredLogger.Debug.
func (l *MockLogger) Debug(msg string, args ...any) { l.log("DEBUG", msg, args) }

// Info implements StructuredLogger.Info.
func (l *MockLogger) Info(msg string, args ...any) { l.log("INFO", msg, args) }

// Warn implements StructuredLogger.Warn.
func (l *MockLogger) Warn(msg string, args ...any) { l.log("WARN", msg, args) }

// Error implements StructuredLogger.Error.
func (l *MockLogger) Error(msg string, args ...any) { l.log("ERROR", msg, args) }

// Records returns a copy of all captured records.
func (l *MockLogger) Records() []LogRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LogRecord{}, l.records...)
}

// CountLevel returns how many records were captured at the given level.
func (l *MockLogger) CountLevel(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, r := range l.records {
		if r.Level == level {
			n++
		}
	}
	return n
}

// Reset clears all captured records.
func (l *MockLogger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = nil
}

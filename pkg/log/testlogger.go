package log

import (
	"strings"
	"sync"
)

// TestEntry is a captured log entry for test assertions.
type TestEntry struct {
	Level   Level
	Message string
	Fields  []Field
}

// TestLogger is a Logger implementation for unit tests that captures
// entries instead of writing output.
type TestLogger struct {
	mu      sync.Mutex
	entries *[]TestEntry
	fields  []Field
	level   Level
}

// NewTestLogger creates a TestLogger capturing all levels.
func NewTestLogger() *TestLogger {
	entries := make([]TestEntry, 0)
	return &TestLogger{entries: &entries, level: DebugLevel}
}

// Entries returns a copy of all captured entries.
func (l *TestLogger) Entries() []TestEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]TestEntry, len(*l.entries))
	copy(out, *l.entries)
	return out
}

// EntriesAtLevel returns captured entries at the given level.
func (l *TestLogger) EntriesAtLevel(level Level) []TestEntry {
	var out []TestEntry
	for _, e := range l.Entries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// HasEntryContaining reports whether any captured message contains s.
func (l *TestLogger) HasEntryContaining(s string) bool {
	for _, e := range l.Entries() {
		if strings.Contains(e.Message, s) {
			return true
		}
	}
	return false
}

// Clear drops all captured entries.
func (l *TestLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.entries = (*l.entries)[:0]
}

func (l *TestLogger) record(level Level, msg string, fields []Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.entries = append(*l.entries, TestEntry{
		Level:   level,
		Message: msg,
		Fields:  append(append([]Field{}, l.fields...), fields...),
	})
}

// Debug captures a debug entry.
func (l *TestLogger) Debug(msg string, fields ...Field) { l.record(DebugLevel, msg, fields) }

// Info captures an info entry.
func (l *TestLogger) Info(msg string, fields ...Field) { l.record(InfoLevel, msg, fields) }

// Warn captures a warn entry.
func (l *TestLogger) Warn(msg string, fields ...Field) { l.record(WarnLevel, msg, fields) }

// Error captures an error entry.
func (l *TestLogger) Error(msg string, fields ...Field) { l.record(ErrorLevel, msg, fields) }

// Fatal captures a fatal entry without exiting.
func (l *TestLogger) Fatal(msg string, fields ...Field) { l.record(FatalLevel, msg, fields) }

// With returns a logger sharing the same capture buffer with extra fields.
func (l *TestLogger) With(fields ...Field) Logger {
	return &TestLogger{
		entries: l.entries,
		fields:  append(append([]Field{}, l.fields...), fields...),
		level:   l.level,
	}
}

// WithComponent tags entries with a component name.
func (l *TestLogger) WithComponent(component string) Logger {
	return l.With(Str("component", component))
}

// SetLevel sets the minimum log level.
func (l *TestLogger) SetLevel(level Level) { l.level = level }

// GetLevel returns the current minimum log level.
func (l *TestLogger) GetLevel() Level { return l.level }

package testsupport

import (
	"context"
	"maps"
	"sync"

	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// Entry is one captured log call.
type Entry struct {
	Level   string
	Message string
	Fields  map[string]any
}

// RecordingLogger keeps every entry in memory for assertions.
type RecordingLogger struct {
	mu      *sync.Mutex
	entries *[]Entry
	fields  map[string]any
}

var (
	_ interfaces.Logger       = (*RecordingLogger)(nil)
	_ interfaces.FieldsLogger = (*RecordingLogger)(nil)
)

func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{mu: &sync.Mutex{}, entries: &[]Entry{}}
}

func (l *RecordingLogger) Trace(msg string, args ...any) { l.record("trace", msg, args) }
func (l *RecordingLogger) Debug(msg string, args ...any) { l.record("debug", msg, args) }
func (l *RecordingLogger) Info(msg string, args ...any)  { l.record("info", msg, args) }
func (l *RecordingLogger) Warn(msg string, args ...any)  { l.record("warn", msg, args) }
func (l *RecordingLogger) Error(msg string, args ...any) { l.record("error", msg, args) }
func (l *RecordingLogger) Fatal(msg string, args ...any) { l.record("fatal", msg, args) }

func (l *RecordingLogger) WithContext(context.Context) interfaces.Logger { return l }

func (l *RecordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	merged := maps.Clone(l.fields)
	if merged == nil {
		merged = map[string]any{}
	}
	maps.Copy(merged, fields)
	return &RecordingLogger{mu: l.mu, entries: l.entries, fields: merged}
}

// Entries returns a copy of everything logged through l or its children.
func (l *RecordingLogger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), (*l.entries)...)
}

// Find returns the first entry with msg.
func (l *RecordingLogger) Find(msg string) (Entry, bool) {
	for _, entry := range l.Entries() {
		if entry.Message == msg {
			return entry, true
		}
	}
	return Entry{}, false
}

func (l *RecordingLogger) record(level, msg string, args []any) {
	fields := maps.Clone(l.fields)
	if fields == nil {
		fields = map[string]any{}
	}
	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok {
			fields[key] = args[i+1]
		}
	}
	l.mu.Lock()
	*l.entries = append(*l.entries, Entry{Level: level, Message: msg, Fields: fields})
	l.mu.Unlock()
}

package mock

import (
	"slices"
	"sync"

	"cosmossdk.io/log"
)

var _ log.Logger = (*Logger)(nil)

// LogEntry is a message and the key/value pairs passed to the logger.
type LogEntry struct {
	Message string
	KeyVals []any
}

type logRecord struct {
	mu    sync.Mutex
	debug []LogEntry
	info  []LogEntry
	warn  []LogEntry
	error []LogEntry
}

// Logger records every entry it is given. Loggers derived with With share the
// same record and prepend their key/value pairs to each entry.
type Logger struct {
	record *logRecord
	with   []any
}

// NewLogger returns an empty recording logger.
func NewLogger() *Logger {
	return &Logger{record: &logRecord{}}
}

func (l *Logger) Debug(msg string, keyVals ...any) {
	l.add(&l.record.debug, msg, keyVals)
}

func (l *Logger) Info(msg string, keyVals ...any) {
	l.add(&l.record.info, msg, keyVals)
}

func (l *Logger) Warn(msg string, keyVals ...any) {
	l.add(&l.record.warn, msg, keyVals)
}

func (l *Logger) Error(msg string, keyVals ...any) {
	l.add(&l.record.error, msg, keyVals)
}

func (l *Logger) With(keyVals ...any) log.Logger {
	return &Logger{
		record: l.record,
		with:   append(slices.Clone(l.with), keyVals...),
	}
}

func (*Logger) Impl() any {
	return nil
}

// DebugLogs returns the recorded debug entries.
func (l *Logger) DebugLogs() []LogEntry {
	return l.entries(func(r *logRecord) []LogEntry { return r.debug })
}

// InfoLogs returns the recorded info entries.
func (l *Logger) InfoLogs() []LogEntry {
	return l.entries(func(r *logRecord) []LogEntry { return r.info })
}

// ErrorLogs returns the recorded error entries.
func (l *Logger) ErrorLogs() []LogEntry {
	return l.entries(func(r *logRecord) []LogEntry { return r.error })
}

// Value returns the value logged for key in entry, or nil.
func (e LogEntry) Value(key string) any {
	for i := 0; i+1 < len(e.KeyVals); i += 2 {
		if e.KeyVals[i] == key {
			return e.KeyVals[i+1]
		}
	}
	return nil
}

func (l *Logger) add(entries *[]LogEntry, msg string, keyVals []any) {
	l.record.mu.Lock()
	defer l.record.mu.Unlock()

	*entries = append(*entries, LogEntry{
		Message: msg,
		KeyVals: append(slices.Clone(l.with), keyVals...),
	})
}

func (l *Logger) entries(level func(*logRecord) []LogEntry) []LogEntry {
	l.record.mu.Lock()
	defer l.record.mu.Unlock()

	return slices.Clone(level(l.record))
}

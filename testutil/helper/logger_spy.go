package helper

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/library-lending-go/lending"
)

// SpyLogRecord represents a recorded log call.
type SpyLogRecord struct {
	Level   string
	Message string
	Args    []any
	Context context.Context
}

// Attr returns the value following the given key in the record's args, and false if the key is absent.
func (r SpyLogRecord) Attr(key string) (any, bool) {
	for i := 0; i+1 < len(r.Args); i += 2 {
		if k, ok := r.Args[i].(string); ok && k == key {
			return r.Args[i+1], true
		}
	}

	return nil, false
}

// LoggerSpy captures log calls for testing.
// It implements both lending.Logger and lending.ContextualLogger.
type LoggerSpy struct {
	records     []SpyLogRecord
	mu          sync.Mutex
	recordCalls bool
}

// NewLoggerSpy creates a new LoggerSpy.
// Set recordCalls to true to capture all log calls for inspection in tests.
func NewLoggerSpy(recordCalls bool) *LoggerSpy {
	return &LoggerSpy{
		records:     make([]SpyLogRecord, 0),
		recordCalls: recordCalls,
	}
}

// Debug implements the Logger interface for testing.
func (s *LoggerSpy) Debug(msg string, args ...any) { s.record(nil, "debug", msg, args) }

// Info implements the Logger interface for testing.
func (s *LoggerSpy) Info(msg string, args ...any) { s.record(nil, "info", msg, args) }

// Warn implements the Logger interface for testing.
func (s *LoggerSpy) Warn(msg string, args ...any) { s.record(nil, "warn", msg, args) }

// Error implements the Logger interface for testing.
func (s *LoggerSpy) Error(msg string, args ...any) { s.record(nil, "error", msg, args) }

// DebugContext implements the ContextualLogger interface for testing.
func (s *LoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "debug", msg, args)
}

// InfoContext implements the ContextualLogger interface for testing.
func (s *LoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "info", msg, args)
}

// WarnContext implements the ContextualLogger interface for testing.
func (s *LoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "warn", msg, args)
}

// ErrorContext implements the ContextualLogger interface for testing.
func (s *LoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "error", msg, args)
}

func (s *LoggerSpy) record(ctx context.Context, level, msg string, args []any) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, SpyLogRecord{
		Level:   level,
		Message: msg,
		Args:    append([]any(nil), args...),
		Context: ctx,
	})
}

// GetRecords returns a copy of all log records.
func (s *LoggerSpy) GetRecords() []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyLogRecord(nil), s.records...)
}

// GetRecordsWithLevel returns a copy of all log records with the given level.
func (s *LoggerSpy) GetRecordsWithLevel(level string) []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]SpyLogRecord, 0)
	for _, record := range s.records {
		if record.Level == level {
			filtered = append(filtered, record)
		}
	}

	return filtered
}

// FindRecord returns the first record with the given message and false if there is none.
func (s *LoggerSpy) FindRecord(message string) (SpyLogRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.Message == message {
			return record, true
		}
	}

	return SpyLogRecord{}, false
}

// HasInfoLog checks if an info log with the specified message exists.
func (s *LoggerSpy) HasInfoLog(message string) bool {
	return s.hasLog("info", message)
}

// HasWarnLog checks if a warn log with the specified message exists.
func (s *LoggerSpy) HasWarnLog(message string) bool {
	return s.hasLog("warn", message)
}

// HasErrorLog checks if an error log with the specified message exists.
func (s *LoggerSpy) HasErrorLog(message string) bool {
	return s.hasLog("error", message)
}

func (s *LoggerSpy) hasLog(level, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.Level == level && record.Message == message {
			return true
		}
	}

	return false
}

// Reset clears all recorded log calls.
func (s *LoggerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
}

// Compile-time checks to ensure LoggerSpy implements both logger interfaces.
var (
	_ lending.Logger           = (*LoggerSpy)(nil)
	_ lending.ContextualLogger = (*LoggerSpy)(nil)
)

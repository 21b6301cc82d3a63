package logger

import "context"

// Entry carries metric fields (duration_ms, status, cache_hit, ...) for a
// single log line. It resolves the context's logger at emit time so tracing
// fields and metric fields end up on the same record.
type Entry struct {
	fields Fields
}

// With starts an Entry with the given metric fields.
//
//	logger.With(logger.Fields{logger.FieldDurationMs: ms}).Info(ctx, "done")
func With(fields Fields) *Entry {
	return &Entry{fields: fields}
}

// With returns a new Entry with additional fields merged in.
func (e *Entry) With(fields Fields) *Entry {
	merged := make(Fields, len(e.fields)+len(fields))
	for k, v := range e.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Entry{fields: merged}
}

// WithField returns a new Entry with one additional field.
func (e *Entry) WithField(key string, value interface{}) *Entry {
	return e.With(Fields{key: value})
}

// Debug emits the entry at Debug level.
func (e *Entry) Debug(ctx context.Context, format string, args ...interface{}) {
	FromContext(ctx).WithFields(e.fields).Debugf(format, args...)
}

// Info emits the entry at Info level.
func (e *Entry) Info(ctx context.Context, format string, args ...interface{}) {
	FromContext(ctx).WithFields(e.fields).Infof(format, args...)
}

// Warn emits the entry at Warn level.
func (e *Entry) Warn(ctx context.Context, format string, args ...interface{}) {
	FromContext(ctx).WithFields(e.fields).Warnf(format, args...)
}

// Error emits the entry at Error level.
func (e *Entry) Error(ctx context.Context, format string, args ...interface{}) {
	FromContext(ctx).WithFields(e.fields).Errorf(format, args...)
}

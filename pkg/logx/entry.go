package logx

import (
	"context"
	"fmt"

	"github.com/Abraxas-365/supplierportal/pkg/kernel"
)

// Entry accumulates fields for a single log line
type Entry struct {
	logger *Logger
	fields Fields
	err    error
}

func newEntry(logger *Logger) *Entry {
	return &Entry{logger: logger, fields: make(Fields)}
}

func (e *Entry) WithField(key string, value any) *Entry {
	e.fields[key] = value
	return e
}

func (e *Entry) WithFields(fields Fields) *Entry {
	for k, v := range fields {
		e.fields[k] = v
	}
	return e
}

func (e *Entry) WithError(err error) *Entry {
	e.err = err
	return e
}

// WithContext copies the request id and the authenticated account found in
// ctx onto the entry.
func (e *Entry) WithContext(ctx context.Context) *Entry {
	if ctx == nil {
		return e
	}
	if id, ok := ctx.Value(kernel.RequestIDKey).(string); ok && id != "" {
		e.fields["request_id"] = id
	}
	if ac, ok := ctx.Value(kernel.AuthContextKey).(*kernel.AuthContext); ok && ac.IsValid() {
		e.fields["account_id"] = ac.AccountID
	}
	return e
}

func (e *Entry) Debug(msg string) { e.logger.log(LevelDebug, msg, e.fields, e.err) }
func (e *Entry) Info(msg string)  { e.logger.log(LevelInfo, msg, e.fields, e.err) }
func (e *Entry) Warn(msg string)  { e.logger.log(LevelWarn, msg, e.fields, e.err) }
func (e *Entry) Error(msg string) { e.logger.log(LevelError, msg, e.fields, e.err) }

func (e *Entry) Debugf(format string, args ...any) { e.Debug(fmt.Sprintf(format, args...)) }
func (e *Entry) Infof(format string, args ...any)  { e.Info(fmt.Sprintf(format, args...)) }
func (e *Entry) Warnf(format string, args ...any)  { e.Warn(fmt.Sprintf(format, args...)) }
func (e *Entry) Errorf(format string, args ...any) { e.Error(fmt.Sprintf(format, args...)) }

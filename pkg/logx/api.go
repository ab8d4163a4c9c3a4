package logx

import (
	"context"
	"fmt"
	"io"
)

var std = NewLogger(LoadFromEnv())

// SetDefaultLogger replaces the package-level logger
func SetDefaultLogger(logger *Logger) { std = logger }

func SetLevel(level Level)  { std.SetLevel(level) }
func SetOutput(w io.Writer) { std.SetOutput(w) }

func Debug(msg string) { std.log(LevelDebug, msg, nil, nil) }
func Info(msg string)  { std.log(LevelInfo, msg, nil, nil) }
func Warn(msg string)  { std.log(LevelWarn, msg, nil, nil) }
func Error(msg string) { std.log(LevelError, msg, nil, nil) }

func Debugf(format string, args ...any) { Debug(fmt.Sprintf(format, args...)) }
func Infof(format string, args ...any)  { Info(fmt.Sprintf(format, args...)) }
func Warnf(format string, args ...any)  { Warn(fmt.Sprintf(format, args...)) }
func Errorf(format string, args ...any) { Error(fmt.Sprintf(format, args...)) }

// Fatalf logs and exits the process with status 1
func Fatalf(format string, args ...any) {
	std.log(LevelFatal, fmt.Sprintf(format, args...), nil, nil)
	std.exit(1)
}

func WithField(key string, value any) *Entry { return std.WithField(key, value) }
func WithFields(fields Fields) *Entry        { return std.WithFields(fields) }
func WithError(err error) *Entry             { return std.WithError(err) }

// WithContext starts an entry tagged with the request id and account in ctx
func WithContext(ctx context.Context) *Entry { return newEntry(std).WithContext(ctx) }

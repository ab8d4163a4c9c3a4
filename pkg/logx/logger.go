package logx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Logger writes leveled, structured lines. Safe for concurrent use.
type Logger struct {
	mu        sync.Mutex
	level     Level
	formatter formatter
	writer    io.Writer
	caller    bool
	exitFunc  func(int)
}

func NewLogger(cfg *Config) *Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = time.RFC3339
	}
	w := cfg.Output
	if w == nil {
		w = os.Stdout
	}
	return &Logger{
		level:     cfg.Level,
		formatter: newFormatter(cfg),
		writer:    w,
		caller:    cfg.EnableCaller,
		exitFunc:  os.Exit,
	}
}

func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer = w
}

func (l *Logger) WithField(key string, value any) *Entry { return newEntry(l).WithField(key, value) }
func (l *Logger) WithFields(fields Fields) *Entry        { return newEntry(l).WithFields(fields) }
func (l *Logger) WithError(err error) *Entry             { return newEntry(l).WithError(err) }

func (l *Logger) log(level Level, msg string, fields Fields, err error) {
	if !l.GetLevel().Enabled(level) {
		return
	}

	r := &record{
		level:  level,
		msg:    msg,
		fields: redact(fields),
		err:    err,
		time:   time.Now(),
	}
	if l.caller {
		r.caller = caller(3)
	}

	line, fmtErr := l.formatter.format(r)
	if fmtErr != nil {
		fmt.Fprintf(os.Stderr, "logx: format: %v\n", fmtErr)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, wErr := l.writer.Write(line); wErr != nil {
		fmt.Fprintf(os.Stderr, "logx: write: %v\n", wErr)
	}
}

func (l *Logger) exit(code int) {
	l.exitFunc(code)
}

func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "???"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

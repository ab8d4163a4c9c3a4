package logx

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Fields is a map of structured data
type Fields map[string]any

type record struct {
	level  Level
	msg    string
	fields Fields
	err    error
	time   time.Time
	caller string
}

type formatter interface {
	format(r *record) ([]byte, error)
}

func newFormatter(cfg *Config) formatter {
	if cfg.Format == FormatJSON {
		return jsonFormatter{cfg}
	}
	return consoleFormatter{cfg}
}

// ─── JSON ─────────────────────────────────────────────────────────────────────

type jsonFormatter struct{ cfg *Config }

func (f jsonFormatter) format(r *record) ([]byte, error) {
	line := make(map[string]any, len(r.fields)+6)
	for k, v := range r.fields {
		line[k] = v
	}
	line["level"] = r.level.String()
	line["message"] = r.msg
	line["timestamp"] = r.time.UTC().Format(time.RFC3339Nano)
	if f.cfg.Service != "" {
		line["service"] = f.cfg.Service
	}
	if r.caller != "" {
		line["caller"] = r.caller
	}
	if r.err != nil {
		line["error"] = r.err.Error()
	}

	b, err := json.Marshal(line)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// ─── Console ──────────────────────────────────────────────────────────────────

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
)

var levelColors = map[Level]string{
	LevelDebug: "\033[1;36m",
	LevelInfo:  "\033[1;32m",
	LevelWarn:  "\033[1;33m",
	LevelError: "\033[1;31m",
	LevelFatal: "\033[1;31m",
}

type consoleFormatter struct{ cfg *Config }

func (f consoleFormatter) paint(color, s string) string {
	if !f.cfg.EnableColors || color == "" {
		return s
	}
	return color + s + colorReset
}

func (f consoleFormatter) format(r *record) ([]byte, error) {
	var b strings.Builder

	b.WriteString(f.paint(colorGray, r.time.Format(f.cfg.TimeFormat)))
	b.WriteString(" ")
	b.WriteString(f.paint(levelColors[r.level], fmt.Sprintf("[%-5s]", r.level)))
	b.WriteString(" ")
	if r.caller != "" {
		b.WriteString(f.paint(colorGray, "["+r.caller+"] "))
	}
	b.WriteString(r.msg)

	if len(r.fields) > 0 {
		keys := make([]string, 0, len(r.fields))
		for k := range r.fields {
			if k != "error" {
				keys = append(keys, k)
			}
		}
		slices.Sort(keys)

		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = fmt.Sprintf("%s=%v", k, r.fields[k])
		}
		if len(pairs) > 0 {
			b.WriteString(" ")
			b.WriteString(f.paint(colorCyan, strings.Join(pairs, " ")))
		}
	}

	if r.err != nil {
		b.WriteString("\n")
		b.WriteString(f.paint(colorRed, "  ╰─→ error: "+r.err.Error()))
	}
	b.WriteString("\n")
	return []byte(b.String()), nil
}

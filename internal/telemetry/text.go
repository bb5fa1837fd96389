package telemetry

import (
	"io"
	"sort"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// TextLogger renders entries for a human reading a terminal.
type TextLogger struct {
	l *charmlog.Logger
}

func NewTextLogger(w io.Writer, prefix string) *TextLogger {
	return &TextLogger{l: charmlog.NewWithOptions(w, charmlog.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           charmlog.InfoLevel,
	})}
}

func (t *TextLogger) Info(msg string, fields map[string]any) {
	t.l.Info(msg, keyvals(fields)...)
}

func (t *TextLogger) Warn(msg string, fields map[string]any) {
	t.l.Warn(msg, keyvals(fields)...)
}

func (t *TextLogger) Error(msg string, fields map[string]any) {
	t.l.Error(msg, keyvals(fields)...)
}

func (t *TextLogger) Close() error { return nil }

// keyvals flattens fields in key order so output is stable.
func keyvals(fields map[string]any) []any {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		out = append(out, k, fields[k])
	}
	return out
}

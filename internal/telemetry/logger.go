package telemetry

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// Logger is the diagnostic sink shared by the store, the app and the CLI.
type Logger interface {
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
	Close() error
}

type JSONLogger struct {
	mu     *sync.Mutex
	w      io.WriteCloser
	fields map[string]any
}

func NewJSONLogger(path string) (*JSONLogger, error) {
	if path == "" {
		return &JSONLogger{mu: &sync.Mutex{}, w: nopCloser{Writer: io.Discard}}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &JSONLogger{mu: &sync.Mutex{}, w: f}, nil
}

// NewJSONWriterLogger logs to w without taking ownership of it.
func NewJSONWriterLogger(w io.Writer) *JSONLogger {
	return &JSONLogger{mu: &sync.Mutex{}, w: nopCloser{Writer: w}}
}

// With returns a logger that adds fields to every entry. The writer is shared.
func (l *JSONLogger) With(fields map[string]any) *JSONLogger {
	merged := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &JSONLogger{mu: l.mu, w: nopCloser{Writer: l.w}, fields: merged}
}

func (l *JSONLogger) Info(msg string, fields map[string]any) {
	l.log("info", msg, fields)
}

func (l *JSONLogger) Warn(msg string, fields map[string]any) {
	l.log("warn", msg, fields)
}

func (l *JSONLogger) Error(msg string, fields map[string]any) {
	l.log("error", msg, fields)
}

func (l *JSONLogger) log(level, msg string, fields map[string]any) {
	if l == nil || l.w == nil {
		return
	}
	entry := map[string]any{
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
		"level": level,
		"msg":   msg,
	}
	for k, v := range l.fields {
		entry[k] = v
	}
	for k, v := range fields {
		entry[k] = v
	}
	b, _ := json.Marshal(entry)
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.w.Write(append(b, '\n'))
}

func (l *JSONLogger) Close() error {
	if l == nil || l.w == nil {
		return nil
	}
	return l.w.Close()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// Nop discards everything.
func Nop() Logger { return NewJSONWriterLogger(io.Discard) }

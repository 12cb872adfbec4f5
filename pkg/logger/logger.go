// Package logger wraps zerolog behind a small leveled API with typed fields.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Logger struct {
	zl zerolog.Logger
}

// Config selects level, encoding and destination.
type Config struct {
	Level      string // zerolog level name
	Format     string // json or console
	Output     string // stdout, stderr or a file path
	TimeFormat string
}

func openOutput(name string) (io.Writer, error) {
	switch name {
	case "", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	}
	f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func New(cfg *Config) (*Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}
	out, err := openOutput(cfg.Output)
	if err != nil {
		return nil, err
	}
	tf := cfg.TimeFormat
	if tf == "" {
		tf = time.RFC3339Nano
	}
	zerolog.TimeFieldFormat = tf
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: tf}
	}

	zl := zerolog.New(out).Level(level).With().Timestamp().CallerWithSkipFrameCount(4).Logger()
	return &Logger{zl: zl}, nil
}

// NewWriter builds a JSON logger on w without caller info.
func NewWriter(w io.Writer, level string) *Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return &Logger{zl: zerolog.New(w).Level(lvl).With().Timestamp().Logger()}
}

func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// With returns a child logger that adds fields to every entry.
func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{zl: l.zl.With().Fields(pairs(fields)).Logger()}
}

func (l *Logger) Debug(msg string, fields ...Field) { l.write(l.zl.Debug(), msg, fields) }
func (l *Logger) Info(msg string, fields ...Field)  { l.write(l.zl.Info(), msg, fields) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.write(l.zl.Warn(), msg, fields) }
func (l *Logger) Error(msg string, fields ...Field) { l.write(l.zl.Error(), msg, fields) }

// write is a no-op for disabled levels, where zerolog hands back a nil event.
func (l *Logger) write(e *zerolog.Event, msg string, fields []Field) {
	if e == nil {
		return
	}
	if len(fields) > 0 {
		e = e.Fields(pairs(fields))
	}
	e.Msg(msg)
}

// Field is one key/value pair. zerolog picks the encoding from the value type.
type Field struct {
	Key   string
	Value interface{}
}

func pairs(fields []Field) []interface{} {
	kv := make([]interface{}, 0, 2*len(fields))
	for _, f := range fields {
		kv = append(kv, f.Key, f.Value)
	}
	return kv
}

func String(key, value string) Field          { return Field{key, value} }
func Int(key string, value int) Field         { return Field{key, value} }
func Int64(key string, value int64) Field     { return Field{key, value} }
func Float64(key string, v float64) Field     { return Field{key, v} }
func Bool(key string, value bool) Field       { return Field{key, value} }
func Strings(key string, v []string) Field    { return Field{key, v} }
func Any(key string, value interface{}) Field { return Field{key, value} }

// Duration logs whole milliseconds.
func Duration(key string, d time.Duration) Field { return Field{key, d.Milliseconds()} }

func Error(err error) Field {
	if err == nil {
		return Field{zerolog.ErrorFieldName, nil}
	}
	return Field{zerolog.ErrorFieldName, err.Error()}
}

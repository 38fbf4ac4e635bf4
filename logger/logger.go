// Package logger reports conversion events with zerolog.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rivsoncs/nova2k"
	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options configures a logger.
type Options struct {
	// Level is the minimum level logged: debug, info, warn or error.
	Level string
	// Format is FormatConsole or FormatJSON.
	Format string
	// File, when set, also receives every event as JSON lines.
	File string
}

// New creates a structured logger writing to w.
func New(w io.Writer, format string) zerolog.Logger {
	if format != FormatJSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return NewWithWriter(w)
}

// NewWithWriter creates a structured logger writing JSON to w.
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// Open creates the logger described by opts, writing to stderr. The returned
// closer releases the log file, if any.
func Open(opts Options) (zerolog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	var w io.Writer = os.Stderr
	if opts.Format != FormatJSON {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = zerolog.MultiLevelWriter(w, f)
		closer = f
	}
	return NewWithWriter(w).Level(level), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ParseLevel parses a level name, info if empty.
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// Sink is a nova2k.EventSink logging every event.
type Sink struct {
	log zerolog.Logger
}

// NewSink returns a Sink logging to log.
func NewSink(log zerolog.Logger) *Sink {
	return &Sink{log: log}
}

// Emit implements nova2k.EventSink.
func (s *Sink) Emit(e nova2k.Event) {
	ev := s.log.WithLevel(Level(e.Severity))
	if e.Row > 0 {
		ev = ev.Int("row", e.Row)
	}
	if len(e.Raw) > 0 {
		ev = ev.Strs("raw", e.Raw)
	}
	ev.Msg(e.Message)
}

// Level maps an event severity to a log level.
func Level(s nova2k.Severity) zerolog.Level {
	switch s {
	case nova2k.SeverityDebug:
		return zerolog.DebugLevel
	case nova2k.SeverityInfo:
		return zerolog.InfoLevel
	case nova2k.SeverityWarning:
		return zerolog.WarnLevel
	case nova2k.SeverityError:
		return zerolog.ErrorLevel
	default:
		return zerolog.NoLevel
	}
}

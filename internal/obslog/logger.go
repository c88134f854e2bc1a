// Package obslog provides structured logging for the bptree demo tooling
// and for the diagnostic hooks the core tree accepts, backed by zerolog
// instead of a hand-rolled formatter.
package obslog

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Level is one of four severities a Logger can be configured to emit at;
// it exists so callers configuring a Logger don't need to import zerolog
// directly.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ParseLevel parses a string into a Level, defaulting to LevelInfo on an
// unrecognized value.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Config holds the logger's construction options.
type Config struct {
	Level  string
	Pretty bool
	Output io.Writer
}

// Logger is the interface the demo CLI and the tree's diagnostic hook both
// see. Debug alone satisfies bptree.Logger; the rest exist for the CLI's
// own operational logging.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(err error, msg string, keysAndValues ...interface{})
	With(keysAndValues ...interface{}) Logger
}

type logger struct {
	z zerolog.Logger
}

// New builds a Logger from cfg. A nil Output defaults to stderr; Pretty
// switches from ND-JSON to zerolog's human-readable console writer.
func New(cfg Config) Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	z := zerolog.New(out).With().Timestamp().Str("component", "bptree").Logger().Level(ParseLevel(cfg.Level).zerolog())
	return &logger{z: z}
}

// Nop returns a Logger that discards everything, satisfying bptree.Logger
// without paying for field formatting.
func Nop() Logger {
	return &logger{z: zerolog.Nop()}
}

func withFields(e *zerolog.Event, keysAndValues []interface{}) *zerolog.Event {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, keysAndValues[i+1])
	}
	return e
}

func (l *logger) Debug(msg string, keysAndValues ...interface{}) {
	withFields(l.z.Debug(), keysAndValues).Msg(msg)
}

func (l *logger) Info(msg string, keysAndValues ...interface{}) {
	withFields(l.z.Info(), keysAndValues).Msg(msg)
}

func (l *logger) Warn(msg string, keysAndValues ...interface{}) {
	withFields(l.z.Warn(), keysAndValues).Msg(msg)
}

func (l *logger) Error(err error, msg string, keysAndValues ...interface{}) {
	withFields(l.z.Error().Err(err), keysAndValues).Msg(msg)
}

func (l *logger) With(keysAndValues ...interface{}) Logger {
	ctx := l.z.With()
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		ctx = ctx.Interface(key, keysAndValues[i+1])
	}
	return &logger{z: ctx.Logger()}
}

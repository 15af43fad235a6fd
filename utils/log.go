package common

import (
	"io"
	"log"
	"os"
	"strings"
)

// LogLevel controls how chatty a tool is
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Logger prefixes every line with the tool tag, e.g. "[build_table]"
type Logger struct {
	level LogLevel
	out   *log.Logger
}

// NewLogger creates a tool logger writing to stderr. Level comes from LOG_LEVEL (default INFO).
func NewLogger(tag string) *Logger {
	return NewLoggerTo(os.Stderr, tag, ParseLevel(os.Getenv("LOG_LEVEL")))
}

// NewLoggerTo is NewLogger with an explicit sink and level (tests, servers)
func NewLoggerTo(w io.Writer, tag string, level LogLevel) *Logger {
	return &Logger{
		level: level,
		out:   log.New(w, "["+tag+"] ", log.LstdFlags),
	}
}

// ParseLevel maps ERROR/WARN/INFO/DEBUG to a level; anything else is INFO
func ParseLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return LogLevelError
	case "WARN":
		return LogLevelWarn
	case "DEBUG":
		return LogLevelDebug
	default:
		return LogLevelInfo
	}
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.logf(LogLevelError, "ERROR ", format, args)
}
func (l *Logger) Warn(format string, args ...interface{}) {
	l.logf(LogLevelWarn, "WARN ", format, args)
}
func (l *Logger) Info(format string, args ...interface{}) { l.logf(LogLevelInfo, "", format, args) }
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(LogLevelDebug, "DEBUG ", format, args)
}

// Level returns the active level
func (l *Logger) Level() LogLevel {
	return l.level
}

func (l *Logger) logf(level LogLevel, marker, format string, args []interface{}) {
	if l == nil || l.level < level {
		return
	}
	l.out.Printf(marker+format, args...)
}

// Discard is a logger that drops everything
var Discard = NewLoggerTo(io.Discard, "", LogLevelError)

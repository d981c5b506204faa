// ABOUTME: Structured logger implementation backed by logrus
// ABOUTME: Supports text or JSON output, level filtering and optional rotating log files

package structured

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Format selects the log encoding
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Options configures a Logger
type Options struct {
	Level  string
	Format Format

	// File, when set, sends output to a rotating log file instead of Output
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int

	// Output defaults to os.Stdout
	Output io.Writer
}

// Logger implements interfaces.Logger on top of a logrus logger
type Logger struct {
	entry *logrus.Entry
}

// NewLogger builds a logger from opts
func NewLogger(opts Options) (*Logger, error) {
	l := logrus.New()

	level := opts.Level
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}
	l.SetLevel(lvl)

	switch Format(strings.ToLower(string(opts.Format))) {
	case FormatJSON:
		l.SetFormatter(&logrus.JSONFormatter{})
	case FormatText, "":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("invalid log format %q (want text or json)", opts.Format)
	}

	switch {
	case opts.File != "":
		l.SetOutput(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		})
	case opts.Output != nil:
		l.SetOutput(opts.Output)
	default:
		l.SetOutput(os.Stdout)
	}

	return &Logger{entry: logrus.NewEntry(l)}, nil
}

// With returns a logger that adds fields to every entry
func (l *Logger) With(fields map[string]interface{}) *Logger {
	return &Logger{entry: l.entry.WithFields(fields)}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Info(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Error(msg)
}

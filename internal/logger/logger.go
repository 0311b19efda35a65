// Package logger provides levelled structured JSON logging for the register
// exporter.
//
// Log lines go to a configurable io.Writer (stderr by default, so stdout
// stays free for the run summary). Each entry carries an RFC3339 timestamp,
// a level, a message, and optional structured fields.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level is log severity. Messages below a logger's minimum level are dropped.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the level name used in log output.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// Fields carries structured context for one log entry.
type Fields map[string]any

type entry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Fields    Fields `json:"fields,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Logger writes structured log entries at or above a minimum level.
type Logger struct {
	mu  sync.Mutex
	min Level
	out io.Writer
}

// New creates a Logger writing to out, dropping entries below min.
func New(min Level, out io.Writer) *Logger {
	return &Logger{min: min, out: out}
}

var (
	defaultMu sync.RWMutex
	defaultL  = New(LevelInfo, os.Stderr)
)

// SetDefault replaces the package-level logger used by the convenience
// functions.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultL = l
}

func getDefault() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultL
}

func (l *Logger) log(level Level, msg string, fields Fields, err error) {
	if level < l.min {
		return
	}

	e := entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level.String(),
		Message:   msg,
		Fields:    fields,
	}
	if err != nil {
		e.Error = err.Error()
	}

	data, marshalErr := json.Marshal(e)

	l.mu.Lock()
	defer l.mu.Unlock()
	if marshalErr != nil {
		// Fields contained something unmarshalable; keep the message.
		fmt.Fprintf(l.out, "[%s] %s: %s (marshal error: %v)\n", e.Timestamp, e.Level, e.Message, marshalErr)
		return
	}
	fmt.Fprintln(l.out, string(data))
}

// Debug logs diagnostic detail.
func (l *Logger) Debug(msg string, fields Fields) { l.log(LevelDebug, msg, fields, nil) }

// Info logs operational progress.
func (l *Logger) Info(msg string, fields Fields) { l.log(LevelInfo, msg, fields, nil) }

// Warn logs a recoverable problem.
func (l *Logger) Warn(msg string, fields Fields) { l.log(LevelWarn, msg, fields, nil) }

// Error logs a failure along with its error.
func (l *Logger) Error(msg string, err error, fields Fields) { l.log(LevelError, msg, fields, err) }

// Debug logs diagnostic detail with the default logger.
func Debug(msg string, fields Fields) { getDefault().Debug(msg, fields) }

// Info logs operational progress with the default logger.
func Info(msg string, fields Fields) { getDefault().Info(msg, fields) }

// Warn logs a recoverable problem with the default logger.
func Warn(msg string, fields Fields) { getDefault().Warn(msg, fields) }

// Error logs a failure with the default logger.
func Error(msg string, err error, fields Fields) { getDefault().Error(msg, err, fields) }

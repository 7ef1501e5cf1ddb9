// Package output provides structured logging for the toolkit. Rendering owns
// the terminal, so logs default to stderr and are usually redirected to a
// file by the host application.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"sort"
	"strings"
	"time"
)

// LogLevel represents the importance level of a log message.
type LogLevel int

const (
	LogLevelTrace LogLevel = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelTrace:
		return "TRACE"
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON emits the level name rather than its numeric value.
func (l LogLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// LogFormat represents the output format for logs.
type LogFormat int

const (
	LogFormatText LogFormat = iota
	LogFormatJSON
)

// LogEntry represents a single log entry.
type LogEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     LogLevel       `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// Logger handles structured logging with multiple outputs and formats.
type Logger struct {
	level      LogLevel
	format     LogFormat
	outputs    []io.Writer
	fields     map[string]any
	timeFormat string
}

// NewLogger creates a new structured logger writing to stderr.
func NewLogger() *Logger {
	return &Logger{
		level:      LogLevelInfo,
		format:     LogFormatText,
		outputs:    []io.Writer{os.Stderr},
		fields:     make(map[string]any),
		timeFormat: "15:04:05",
	}
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level LogLevel) *Logger {
	l.level = level
	return l
}

// SetFormat sets the output format (text or JSON).
func (l *Logger) SetFormat(format LogFormat) *Logger {
	l.format = format
	return l
}

// SetOutputs replaces all output writers.
func (l *Logger) SetOutputs(outputs ...io.Writer) *Logger {
	l.outputs = outputs
	return l
}

// SetTimeFormat sets the timestamp format for text output.
func (l *Logger) SetTimeFormat(format string) *Logger {
	l.timeFormat = format
	return l
}

// WithField returns a child logger that includes the field in every entry.
func (l *Logger) WithField(key string, value any) *Logger {
	child := &Logger{
		level:      l.level,
		format:     l.format,
		outputs:    l.outputs,
		fields:     make(map[string]any, len(l.fields)+1),
		timeFormat: l.timeFormat,
	}
	maps.Copy(child.fields, l.fields)
	child.fields[key] = value
	return child
}

// WithFields returns a child logger carrying all the given fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	child := l
	for k, v := range fields {
		child = child.WithField(k, v)
	}
	return child
}

// WithError returns a child logger carrying the error as a field.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.WithField("error", err.Error())
}

func (l *Logger) log(level LogLevel, message string, fields ...map[string]any) {
	if level < l.level {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    make(map[string]any),
	}
	maps.Copy(entry.Fields, l.fields)
	for _, fieldMap := range fields {
		maps.Copy(entry.Fields, fieldMap)
	}
	if len(entry.Fields) == 0 {
		entry.Fields = nil
	}

	l.write(entry)
}

func (l *Logger) write(entry LogEntry) {
	var out string

	switch l.format {
	case LogFormatJSON:
		if data, err := json.Marshal(entry); err == nil {
			out = string(data) + "\n"
		} else {
			out = fmt.Sprintf(`{"level":"ERROR","message":"Failed to marshal log entry: %v"}%s`, err, "\n")
		}
	case LogFormatText:
		out = l.formatText(entry)
	}

	for _, w := range l.outputs {
		fmt.Fprint(w, out)
	}
}

func (l *Logger) formatText(entry LogEntry) string {
	parts := []string{
		entry.Timestamp.Format(l.timeFormat),
		fmt.Sprintf("[%s]", entry.Level),
		entry.Message,
	}

	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, entry.Fields[k]))
		}
		parts = append(parts, fmt.Sprintf("[%s]", strings.Join(pairs, " ")))
	}

	return strings.Join(parts, " ") + "\n"
}

// Trace logs a trace message.
func (l *Logger) Trace(message string, fields ...map[string]any) {
	l.log(LogLevelTrace, message, fields...)
}

// Debug logs a debug message.
func (l *Logger) Debug(message string, fields ...map[string]any) {
	l.log(LogLevelDebug, message, fields...)
}

// Info logs an info message.
func (l *Logger) Info(message string, fields ...map[string]any) {
	l.log(LogLevelInfo, message, fields...)
}

// Warn logs a warning message.
func (l *Logger) Warn(message string, fields ...map[string]any) {
	l.log(LogLevelWarn, message, fields...)
}

// Error logs an error message.
func (l *Logger) Error(message string, fields ...map[string]any) {
	l.log(LogLevelError, message, fields...)
}

// Debugf logs a formatted debug message.
func (l *Logger) Debugf(format string, args ...any) {
	l.Debug(fmt.Sprintf(format, args...))
}

// Infof logs a formatted info message.
func (l *Logger) Infof(format string, args ...any) {
	l.Info(fmt.Sprintf(format, args...))
}

// Warnf logs a formatted warning message.
func (l *Logger) Warnf(format string, args ...any) {
	l.Warn(fmt.Sprintf(format, args...))
}

// Errorf logs a formatted error message.
func (l *Logger) Errorf(format string, args ...any) {
	l.Error(fmt.Sprintf(format, args...))
}

// CreateFileLogger creates a logger that appends to a file.
func CreateFileLogger(filename string, level LogLevel, format LogFormat) (*Logger, error) {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return NewLogger().SetLevel(level).SetFormat(format).SetOutputs(file), nil
}

// Global logger instance
var globalLogger = NewLogger()

// SetGlobalLogger sets the global logger instance.
func SetGlobalLogger(logger *Logger) {
	globalLogger = logger
}

// GetGlobalLogger returns the global logger instance.
func GetGlobalLogger() *Logger {
	return globalLogger
}

// Debug logs a debug message on the global logger.
func Debug(message string, fields ...map[string]any) {
	globalLogger.Debug(message, fields...)
}

// Info logs an info message on the global logger.
func Info(message string, fields ...map[string]any) {
	globalLogger.Info(message, fields...)
}

// Warn logs a warning message on the global logger.
func Warn(message string, fields ...map[string]any) {
	globalLogger.Warn(message, fields...)
}

// Error logs an error message on the global logger.
func Error(message string, fields ...map[string]any) {
	globalLogger.Error(message, fields...)
}

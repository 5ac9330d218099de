package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// jsonMarshal is a variable for dependency injection in tests.
var jsonMarshal = json.Marshal

// LogEntry represents a single JSON log entry.
type LogEntry struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// LoggerConfig configures the JSONLogger.
type LoggerConfig struct {
	// OutputPath is the log file. Empty means Writer, or
	// stdout when Writer is nil too.
	OutputPath string
	// AssertionLog is an optional file receiving one JSON line
	// per assertion outcome.
	AssertionLog string
	Writer       io.Writer
	Level        LogLevel
	Verbose      bool
	Fields       map[string]any
}

// JSONLogger implements Logger with JSON Lines output.
type JSONLogger struct {
	mu           *sync.Mutex
	output       io.Writer
	assertionLog io.Writer
	level        LogLevel
	fields       map[string]any
	verbose      bool
	closed       *bool
}

// NewJSONLogger creates a new JSON logger.
func NewJSONLogger(config LoggerConfig) (*JSONLogger, error) {
	closed := false
	logger := &JSONLogger{
		mu:      &sync.Mutex{},
		level:   config.Level,
		verbose: config.Verbose,
		fields:  config.Fields,
		closed:  &closed,
	}

	if logger.fields == nil {
		logger.fields = make(map[string]any)
	}

	var opened *os.File
	switch {
	case config.OutputPath != "":
		file, err := openAppend(config.OutputPath)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to open log file: %w", err,
			)
		}
		opened = file
		logger.output = file
	case config.Writer != nil:
		logger.output = config.Writer
	default:
		logger.output = os.Stdout
	}

	if config.AssertionLog != "" {
		file, err := openAppend(config.AssertionLog)
		if err != nil {
			if opened != nil {
				_ = opened.Close()
			}
			return nil, fmt.Errorf(
				"failed to open assertion log: %w", err,
			)
		}
		logger.assertionLog = file
	}

	return logger, nil
}

func openAppend(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(
		path,
		os.O_CREATE|os.O_WRONLY|os.O_APPEND,
		0644,
	)
}

func (l *JSONLogger) log(
	level LogLevel, msg string, fields ...Field,
) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if *l.closed {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().Format(time.RFC3339Nano),
		Level:     level.String(),
		Message:   msg,
		Fields:    make(map[string]any),
	}

	for k, v := range l.fields {
		entry.Fields[k] = v
	}
	for _, f := range fields {
		entry.Fields[f.Key] = f.Value
	}

	data, err := jsonMarshal(entry)
	if err != nil {
		return
	}

	fmt.Fprintln(l.output, string(data))
}

// Info logs an informational message.
func (l *JSONLogger) Info(msg string, fields ...Field) {
	l.log(LevelInfo, msg, fields...)
}

// Warn logs a warning message.
func (l *JSONLogger) Warn(msg string, fields ...Field) {
	l.log(LevelWarn, msg, fields...)
}

// Error logs an error message.
func (l *JSONLogger) Error(msg string, fields ...Field) {
	l.log(LevelError, msg, fields...)
}

// Debug logs a debug message only if verbose is enabled.
func (l *JSONLogger) Debug(msg string, fields ...Field) {
	if l.verbose {
		l.log(LevelDebug, msg, fields...)
	}
}

// WithFields returns a new Logger with additional default
// fields.
func (l *JSONLogger) WithFields(fields ...Field) Logger {
	newFields := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		newFields[k] = v
	}
	for _, f := range fields {
		newFields[f.Key] = f.Value
	}

	return &JSONLogger{
		mu:           l.mu,
		output:       l.output,
		assertionLog: l.assertionLog,
		level:        l.level,
		verbose:      l.verbose,
		fields:       newFields,
		closed:       l.closed,
	}
}

// LogAssertion writes the entry to the dedicated assertion log
// when one is configured, and otherwise to the main output as a
// regular entry.
func (l *JSONLogger) LogAssertion(entry AssertionLog) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().Format(time.RFC3339Nano)
	}

	if l.assertionLog == nil {
		level := LevelWarn
		if entry.Passed {
			level = LevelDebug
		}
		l.log(level, "assertion",
			Field{Key: "assertion", Value: entry.Assertion},
			Field{Key: "passed", Value: entry.Passed},
			Field{Key: "message", Value: entry.Message},
		)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if *l.closed {
		return
	}

	data, err := jsonMarshal(entry)
	if err != nil {
		return
	}

	fmt.Fprintln(l.assertionLog, string(data))
}

// Close flushes and closes all underlying files.
func (l *JSONLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	*l.closed = true

	var errs []error

	if closer, ok := l.output.(io.Closer); ok &&
		l.output != os.Stdout {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if closer, ok := l.assertionLog.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

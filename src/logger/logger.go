// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/H0llyW00dzZ/x509-validator/src/internal/helper/gc"
)

// Level is the severity of a log entry.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warning"
	LevelError Level = "error"
)

// Logger defines the interface for logging operations.
// It provides methods for different log levels and formatted output.
//
// The validators only log from the OCSP revocation check; the CLI and the
// [MCP] server choose the implementation.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type Logger interface {
	// Printf formats and prints an info message.
	Printf(format string, v ...any)
	// Println prints an info message with a newline.
	Println(v ...any)
	// Debugf formats and prints a debug message.
	Debugf(format string, v ...any)
	// Warnf formats and prints a warning.
	Warnf(format string, v ...any)
	// Errorf formats and prints an error.
	Errorf(format string, v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// Discard is a Logger that drops everything.
var Discard Logger = NewJSONLogger(io.Discard, true)

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
// Debug messages are dropped unless enabled with [CLILogger.SetDebug].
type CLILogger struct {
	logger *log.Logger

	mu    sync.RWMutex
	debug bool
}

// NewCLILogger creates a new CLI logger with timestamps disabled.
// This is suitable for user-facing CLI output.
func NewCLILogger() *CLILogger {
	return &CLILogger{logger: log.New(os.Stdout, "", 0)}
}

// SetDebug toggles output of debug messages.
func (c *CLILogger) SetDebug(enabled bool) {
	c.mu.Lock()
	c.debug = enabled
	c.mu.Unlock()
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// Debugf prints a debug message when debug output is enabled.
func (c *CLILogger) Debugf(format string, v ...any) {
	c.mu.RLock()
	enabled := c.debug
	c.mu.RUnlock()

	if enabled {
		c.logger.Printf("debug: "+format, v...)
	}
}

// Warnf prints a warning.
func (c *CLILogger) Warnf(format string, v ...any) { c.logger.Printf("warning: "+format, v...) }

// Errorf prints an error.
func (c *CLILogger) Errorf(format string, v ...any) { c.logger.Printf("error: "+format, v...) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// JSONLogger implements Logger with one JSON object per line.
// It is the logger of the [MCP] server, where stdout carries the protocol,
// so it is silent by default and is pointed at stderr or a file when enabled.
//
// JSONLogger is safe for concurrent use by multiple goroutines.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type JSONLogger struct {
	mu     sync.Mutex
	writer io.Writer
	silent bool
}

// NewJSONLogger creates a new JSON logger. A nil writer discards output.
func NewJSONLogger(writer io.Writer, silent bool) *JSONLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &JSONLogger{
		writer: writer,
		silent: silent,
	}
}

// write encodes one entry through a pooled buffer.
func (m *JSONLogger) write(level Level, msg string) {
	if m.silent {
		return
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	entry := struct {
		Level   Level  `json:"level"`
		Message string `json:"message"`
	}{level, msg}

	// Encode appends the trailing newline.
	if err := json.NewEncoder(buf).Encode(entry); err != nil {
		return
	}

	m.mu.Lock()
	buf.WriteTo(m.writer)
	m.mu.Unlock()
}

// Printf formats and logs an info entry.
func (m *JSONLogger) Printf(format string, v ...any) { m.write(LevelInfo, fmt.Sprintf(format, v...)) }

// Println logs an info entry.
func (m *JSONLogger) Println(v ...any) { m.write(LevelInfo, fmt.Sprint(v...)) }

// Debugf formats and logs a debug entry.
func (m *JSONLogger) Debugf(format string, v ...any) {
	m.write(LevelDebug, fmt.Sprintf(format, v...))
}

// Warnf formats and logs a warning entry.
func (m *JSONLogger) Warnf(format string, v ...any) { m.write(LevelWarn, fmt.Sprintf(format, v...)) }

// Errorf formats and logs an error entry.
func (m *JSONLogger) Errorf(format string, v ...any) {
	m.write(LevelError, fmt.Sprintf(format, v...))
}

// SetOutput sets the output destination for the JSON logger.
//
// SetOutput is safe for concurrent use by multiple goroutines.
func (m *JSONLogger) SetOutput(w io.Writer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if w == nil {
		m.writer = io.Discard
	} else {
		m.writer = w
	}
}

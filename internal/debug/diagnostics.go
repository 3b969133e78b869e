package debug

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Sink is the diagnostic channel. Components report operational failures
// (unreadable directories, skipped files) here and never in result text.
type Sink interface {
	Printf(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

// OrNoOp returns s, or NoOpLogger when s is nil
func OrNoOp(s Sink) Sink {
	if s == nil {
		return NoOpLogger
	}
	if dl, ok := s.(*DiagnosticLogger); ok && dl == nil {
		return NoOpLogger
	}
	return s
}

// DiagnosticLogger handles all diagnostic output for the server.
// In MCP mode stdout carries the protocol, so output goes to a file.
type DiagnosticLogger struct {
	mu       sync.Mutex
	file     *os.File
	logger   *log.Logger
	filePath string
	isMCP    bool
}

// NewDiagnosticLogger creates a logger. In MCP mode it writes to a timestamped
// file under logDir (temp dir when empty); otherwise to stderr.
func NewDiagnosticLogger(isMCP bool, logDir string) *DiagnosticLogger {
	dl := &DiagnosticLogger{isMCP: isMCP}

	if !isMCP {
		dl.logger = log.New(os.Stderr, "[LPS] ", log.LstdFlags)
		return dl
	}

	if logDir == "" {
		logDir = filepath.Join(os.TempDir(), "lps-mcp-logs")
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		homeDir, herr := os.UserHomeDir()
		if herr != nil {
			homeDir = "."
		}
		logDir = filepath.Join(homeDir, ".lps-mcp-logs")
		_ = os.MkdirAll(logDir, 0755)
	}

	logPath := filepath.Join(logDir, fmt.Sprintf("mcp-%s.log", time.Now().Format("2006-01-02T150405")))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		// Logging must never break the protocol
		dl.logger = log.New(io.Discard, "", 0)
		return dl
	}

	dl.file = file
	dl.filePath = logPath
	dl.logger = log.New(file, "[MCP] ", log.LstdFlags|log.Lshortfile)
	return dl
}

// NewWriterLogger logs to w; tests use it to capture diagnostics.
func NewWriterLogger(w io.Writer) *DiagnosticLogger {
	return &DiagnosticLogger{logger: log.New(w, "", 0)}
}

// Printf logs a diagnostic message
func (dl *DiagnosticLogger) Printf(format string, v ...interface{}) {
	if dl == nil || dl.logger == nil {
		return
	}
	dl.mu.Lock()
	defer dl.mu.Unlock()
	dl.logger.Output(2, fmt.Sprintf(format, v...))
}

// Warnf logs a warning
func (dl *DiagnosticLogger) Warnf(format string, v ...interface{}) {
	if dl == nil || dl.logger == nil {
		return
	}
	dl.mu.Lock()
	defer dl.mu.Unlock()
	dl.logger.Output(2, "WARN: "+fmt.Sprintf(format, v...))
}

// Errorf logs an error
func (dl *DiagnosticLogger) Errorf(format string, v ...interface{}) {
	if dl == nil || dl.logger == nil {
		return
	}
	dl.mu.Lock()
	defer dl.mu.Unlock()
	dl.logger.Output(2, "ERROR: "+fmt.Sprintf(format, v...))
}

// Close closes the log file if it's open.
func (dl *DiagnosticLogger) Close() error {
	if dl == nil {
		return nil
	}
	dl.mu.Lock()
	defer dl.mu.Unlock()
	if dl.file != nil {
		err := dl.file.Close()
		dl.file = nil
		return err
	}
	return nil
}

// GetLogPath returns the path to the diagnostic log file (MCP mode only)
func (dl *DiagnosticLogger) GetLogPath() string {
	if dl == nil {
		return ""
	}
	return dl.filePath
}

// NoOpLogger is used to suppress all logging
var NoOpLogger = &DiagnosticLogger{
	logger: log.New(io.Discard, "", 0),
}

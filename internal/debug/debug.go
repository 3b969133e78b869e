package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EnableDebug can be flipped at build time:
// go build -ldflags "-X github.com/standardbeagle/lps/internal/debug.EnableDebug=true"
var EnableDebug = "false"

// MCPMode is set by main when stdio carries the MCP protocol
var MCPMode = false

var (
	debugMutex  sync.Mutex
	debugOutput io.Writer
	debugFile   *os.File
)

// SetMCPMode enables MCP mode which suppresses all debug output to stdio
func SetMCPMode(enabled bool) {
	MCPMode = enabled
}

// SetDebugOutput sets the writer for debug output. nil disables output.
func SetDebugOutput(w io.Writer) {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	debugOutput = w
}

// InitDebugLogFile routes debug output to a timestamped file under the
// system temp directory and returns its path.
func InitDebugLogFile() (string, error) {
	debugMutex.Lock()
	defer debugMutex.Unlock()

	logDir := filepath.Join(os.TempDir(), "lps-debug-logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create debug log directory: %w", err)
	}

	logPath := filepath.Join(logDir, fmt.Sprintf("debug-%s.log", time.Now().Format("2006-01-02T150405")))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create debug log file: %w", err)
	}

	debugFile = file
	debugOutput = file
	return logPath, nil
}

// CloseDebugLog closes the debug log file if one is open.
func CloseDebugLog() error {
	debugMutex.Lock()
	defer debugMutex.Unlock()

	if debugFile == nil {
		return nil
	}
	err := debugFile.Close()
	debugFile = nil
	debugOutput = nil
	return err
}

// IsDebugEnabled reports whether debug output is wanted. MCP mode always wins.
func IsDebugEnabled() bool {
	if MCPMode {
		return false
	}
	if EnableDebug == "true" {
		return true
	}
	v := os.Getenv("DEBUG")
	return v == "1" || v == "true"
}

func writer() io.Writer {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	return debugOutput
}

// Printf prints debug information when enabled and an output is configured
func Printf(format string, args ...interface{}) {
	if !IsDebugEnabled() {
		return
	}
	if w := writer(); w != nil {
		fmt.Fprintf(w, "[DEBUG] "+format, args...)
	}
}

// Log writes a debug line tagged with a component name
func Log(component, format string, args ...interface{}) {
	if !IsDebugEnabled() {
		return
	}
	if w := writer(); w != nil {
		fmt.Fprintf(w, "[DEBUG:%s] "+format, append([]interface{}{component}, args...)...)
	}
}

// LogWalk logs directory traversal events
func LogWalk(format string, args ...interface{}) {
	Log("WALK", format, args...)
}

// LogSearch logs content search events
func LogSearch(format string, args ...interface{}) {
	Log("SEARCH", format, args...)
}

// LogExtract logs function extraction events
func LogExtract(format string, args ...interface{}) {
	Log("EXTRACT", format, args...)
}

// LogMCP logs MCP server events
func LogMCP(format string, args ...interface{}) {
	Log("MCP", format, args...)
}

// Fatal records a fatal condition and returns it as an error; callers decide
// whether to exit. Nothing is written in MCP mode.
func Fatal(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if !MCPMode {
		if w := writer(); w != nil {
			fmt.Fprintf(w, "[FATAL] %s", msg)
		}
	}
	return fmt.Errorf("fatal error: %s", msg)
}

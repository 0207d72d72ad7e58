package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

// Build flag for debug mode - can be overridden at build time
// go build -ldflags "-X github.com/standardbeagle/objstore/internal/debug.EnableDebug=true"
var EnableDebug = "false"

// runtimeEnabled turns debug mode on without a rebuild or environment change
var runtimeEnabled atomic.Bool

// debugOutput is the writer for debug output (defaults to nil, meaning no output)
var debugOutput io.Writer

// debugFile holds the open file handle if debug output goes to a file
var debugFile *os.File

// debugMutex protects access to debug output and the timing clock
var debugMutex sync.Mutex

// lastTiming is the time of the previous TimingPoint call
var lastTiming time.Time

// SetDebugOutput sets a custom writer for debug output.
// Pass nil to disable debug output entirely.
func SetDebugOutput(w io.Writer) {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	debugOutput = w
}

// InitDebugLogFile initializes debug logging to a file.
// Returns the path to the log file, or an error if initialization fails.
// Call CloseDebugLog when done to ensure the file is properly closed.
func InitDebugLogFile() (string, error) {
	debugMutex.Lock()
	defer debugMutex.Unlock()

	logDir := filepath.Join(os.TempDir(), "objstore-debug-logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create debug log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02T150405")
	logPath := filepath.Join(logDir, fmt.Sprintf("debug-%s.log", timestamp))

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

	if debugFile != nil {
		err := debugFile.Close()
		debugFile = nil
		debugOutput = nil
		return err
	}
	return nil
}

// SetEnabled switches debug mode on or off at runtime. The build flag and
// the DEBUG environment variable still enable it when this is off.
func SetEnabled(enabled bool) {
	runtimeEnabled.Store(enabled)
}

// IsDebugEnabled returns true if debug mode is enabled at runtime, by build flag or by environment
func IsDebugEnabled() bool {
	if runtimeEnabled.Load() || EnableDebug == "true" {
		return true
	}

	// Allow runtime override via environment variable
	if os.Getenv("DEBUG") == "1" || os.Getenv("DEBUG") == "true" {
		return true
	}

	return false
}

// getDebugWriter returns the writer for debug output, or nil if none is configured
func getDebugWriter() io.Writer {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	return debugOutput
}

// Printf prints debug information only when debug mode is enabled and output is configured
func Printf(format string, args ...interface{}) {
	if !IsDebugEnabled() {
		return
	}
	w := getDebugWriter()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[DEBUG] "+format, args...)
}

// Log provides structured debug logging with component names
func Log(component, format string, args ...interface{}) {
	if !IsDebugEnabled() {
		return
	}
	w := getDebugWriter()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[DEBUG:%s] "+format, append([]interface{}{component}, args...)...)
}

// LogObjects logs object creation and attachment diagnostics
func LogObjects(format string, args ...interface{}) {
	Log("OBJECTS", format, args...)
}

// LogLoad logs definition file loading
func LogLoad(format string, args ...interface{}) {
	Log("LOAD", format, args...)
}

// LogWatch logs reload watcher activity
func LogWatch(format string, args ...interface{}) {
	Log("WATCH", format, args...)
}

// TimingPoint logs label together with the time elapsed since the previous
// timing point. The first call only starts the clock.
func TimingPoint(label string) {
	if !IsDebugEnabled() {
		return
	}

	debugMutex.Lock()
	now := time.Now()
	var elapsed time.Duration
	if !lastTiming.IsZero() {
		elapsed = now.Sub(lastTiming)
	}
	lastTiming = now
	w := debugOutput
	debugMutex.Unlock()

	if w == nil {
		return
	}
	fmt.Fprintf(w, "[TIMING] %s (+%s)\n", label, elapsed)
}

// Fatal outputs a catastrophic error message to the debug log and returns a fatal error.
// Callers decide whether to abort; this package never exits the process.
func Fatal(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	w := getDebugWriter()
	if w != nil {
		fmt.Fprintf(w, "[FATAL] %s\n", msg)
	}
	return fmt.Errorf("fatal error: %s", msg)
}

// Package logger provides leveled console logging for promptsmith.
// Debug and info messages are printed only in verbose mode (--verbose).
// Warnings are printed unless quiet mode is on, since they report
// best-effort results such as an exhausted expansion budget.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu       sync.Mutex
	verbose  bool
	quiet    bool
	warnings int
	output   io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose
}

// SetQuiet suppresses warnings. Used by machine-readable outputs.
func SetQuiet(q bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = q
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Warnings returns the number of warnings logged since start or the last Reset.
func Warnings() int {
	mu.Lock()
	defer mu.Unlock()
	return warnings
}

// Reset restores defaults: not verbose, not quiet, stderr, zero warnings.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	verbose = false
	quiet = false
	warnings = 0
	output = os.Stderr
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "[DEBUG] "+format+"\n", args...)
	}
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "[INFO] "+format+"\n", args...)
	}
}

// Warn prints a warning unless quiet mode is enabled.
// Every call is counted, printed or not.
func Warn(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	warnings++
	if !quiet {
		fmt.Fprintf(output, "[WARN] "+format+"\n", args...)
	}
}

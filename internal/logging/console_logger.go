package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// timeLayout matches the ingestion tool's historical log line shape:
// timestamp, level, message.
const timeLayout = "2006-01-02 15:04:05"

// ConsoleLogger writes timestamped, leveled log lines to a writer
// (stderr by default). Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	verbose bool
	mu      sync.Mutex
	out     io.Writer
	now     func() time.Time
}

// NewConsoleLogger creates a ConsoleLogger writing to stderr.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return &ConsoleLogger{verbose: verbose, out: os.Stderr, now: time.Now}
}

// NewConsoleLoggerTo creates a ConsoleLogger writing to out. Used by tests.
func NewConsoleLoggerTo(out io.Writer, verbose bool) *ConsoleLogger {
	return &ConsoleLogger{verbose: verbose, out: out, now: time.Now}
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write("DEBUG", format, args...)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write("INFO", format, args...)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write("ERROR", format, args...)
}

func (l *ConsoleLogger) write(level, format string, args ...interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "%s %s %s\n", l.now().Format(timeLayout), level, msg)
}

// Package logging provides leveled, optionally colored logging. Output is
// serialized with a mutex since pipeline workers log concurrently.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/boxkutter/media-fixer/internal/config"
	"github.com/boxkutter/media-fixer/internal/term"
)

// Logger provides leveled logging to stdout (errors to stderr).
type Logger struct {
	mu      sync.Mutex
	verbose bool
}

// NewLogger configures terminal colors from cfg and returns a ready Logger.
func NewLogger(cfg *config.Config) *Logger {
	term.Configure(cfg.ColorMode)
	return &Logger{verbose: cfg.Verbose}
}

func (l *Logger) line(level, color, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.mu.Lock()
	defer l.mu.Unlock()
	out := os.Stdout
	if level == "ERROR" {
		out = os.Stderr
	}
	if color != "" {
		_, _ = io.WriteString(out, ts+" "+color+"["+level+"]"+term.NC+" "+text+"\n")
	} else {
		_, _ = io.WriteString(out, ts+" ["+level+"] "+text+"\n")
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line("INFO", term.Blue, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line("SUCCESS", term.Green, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line("WARN", term.Yellow, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red), to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("ERROR", term.Red, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) only when verbose; no-op otherwise.
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.line("DEBUG", term.Cyan, fmt.Sprintf(format, args...))
}

package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "pipeline-console.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	out          io.WriteCloser
	stderr       io.Writer = os.Stderr
)

// Error appends err to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	write(func(w io.Writer) error {
		_, werr := fmt.Fprintf(w, "%s %v\n", time.Now().UTC().Format(time.RFC3339), err)
		return werr
	})
}

// Errorf formats and logs an error.
func Errorf(format string, args ...interface{}) {
	Error(fmt.Errorf(format, args...))
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether Trace writes anything.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	entry := struct {
		Time    time.Time   `json:"time"`
		Event   string      `json:"event"`
		Payload interface{} `json:"payload,omitempty"`
	}{
		Time:    time.Now().UTC(),
		Event:   event,
		Payload: payload,
	}
	write(func(w io.Writer) error {
		return json.NewEncoder(w).Encode(entry)
	})
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// Path returns the file currently receiving log output.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Close releases the log file. Later writes reopen it.
func Close() {
	mu.Lock()
	closeLocked()
	mu.Unlock()
}

func closeLocked() {
	if out != nil {
		_ = out.Close()
		out = nil
	}
}

func write(fn func(io.Writer) error) {
	mu.Lock()
	defer mu.Unlock()
	if out == nil {
		f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(stderr, "logging failed: %v\n", err)
			return
		}
		out = f
	}
	if err := fn(out); err != nil {
		fmt.Fprintf(stderr, "log write failed: %v\n", err)
	}
}

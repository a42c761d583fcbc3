// Package logger appends application events to daily plain-text files, one
// line per event with a tab between timestamp and message.  A single
// FileLogger instance is created in main and handed to the handlers that
// need it; writes are serialized with a mutex so concurrent requests cannot
// interleave partial lines.
package logger

import (
    "fmt"
    "log"
    "os"
    "path/filepath"
    "sync"
    "time"
)

// FileLogger writes timestamped lines into <dir>/log-YYYY-MM-DD.txt.  The
// file for the current UTC day is opened on demand, so rotation is simply a
// matter of the date changing between writes.
type FileLogger struct {
    mu  sync.Mutex
    dir string
}

// NewFileLogger creates the log directory if needed and returns a logger
// bound to it.
func NewFileLogger(dir string) (*FileLogger, error) {
    if err := os.MkdirAll(dir, 0o755); err != nil {
        return nil, fmt.Errorf("create log dir: %w", err)
    }
    return &FileLogger{dir: dir}, nil
}

// Log appends one line for the event.  Failures are reported on the process
// log and swallowed: request handling never fails because the audit trail
// could not be written.
func (l *FileLogger) Log(message string) {
    now := time.Now().UTC()
    path := filepath.Join(l.dir, fmt.Sprintf("log-%s.txt", now.Format("2006-01-02")))
    line := fmt.Sprintf("%s\t%s\n", now.Format("2006-01-02 15:04:05.000Z"), message)

    l.mu.Lock()
    defer l.mu.Unlock()
    f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        log.Printf("file-logger: open %s: %v", path, err)
        return
    }
    defer f.Close()
    if _, err := f.WriteString(line); err != nil {
        log.Printf("file-logger: write %s: %v", path, err)
    }
}

// Logf formats and appends one line.
func (l *FileLogger) Logf(format string, args ...any) {
    l.Log(fmt.Sprintf(format, args...))
}

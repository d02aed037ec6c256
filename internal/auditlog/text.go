package auditlog

import (
	"log"
	"os"
	"path/filepath"
	"sync"
)

// TextLog appends one timestamped line per change to a text file.
type TextLog struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	logger *log.Logger
}

// OpenText opens path for appending, creating it and its directory if needed.
func OpenText(path string) (*TextLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, ioFailure("create log directory", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, ioFailure("open change log", err)
	}
	return &TextLog{
		path:   path,
		file:   f,
		logger: log.New(f, "", log.LstdFlags),
	}, nil
}

// Path returns the log file location.
func (l *TextLog) Path() string {
	return l.path
}

// Record appends message. Write failures are reported as warnings.
func (l *TextLog) Record(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		log.Printf("warning: change log %s is closed, dropping %q", l.path, message)
		return
	}
	if err := l.logger.Output(2, message); err != nil {
		log.Printf("warning: write change log %s: %v", l.path, err)
	}
}

// Close closes the underlying file. Idempotent.
func (l *TextLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

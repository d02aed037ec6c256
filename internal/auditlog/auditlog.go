// Package auditlog implements the inventory change log backends: an
// append-only text file, a SQLite table, and a Redis stream.
package auditlog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// File names inside the data directory.
const (
	TextFileName   = "log.txt"
	SQLiteFileName = "changes.db"
)

// DefaultStream is the Redis stream key used when log_stream is unset.
const DefaultStream = "stockroom:changes"

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Log is a change log that holds resources until closed.
type Log interface {
	types.ChangeLog
	Close() error
}

// History is implemented by backends that can list what they recorded.
type History interface {
	// Entries returns up to limit entries, newest first. A limit of zero or
	// less returns every entry.
	Entries(ctx context.Context, limit int) ([]Entry, error)
}

// Entry is one recorded change.
type Entry struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Open returns the backend selected by cfg.LogBackend. An empty backend
// selects the text file. Open failures wrap types.ErrIOFailure.
func Open(cfg types.Config) (Log, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.LogBackend {
	case types.LogBackendNone:
		return nopLog{}, nil
	case types.LogBackendSQLite:
		return OpenSQLite(filepath.Join(cfg.DataDir, SQLiteFileName))
	case types.LogBackendRedis:
		stream := cfg.LogStream
		if stream == "" {
			stream = DefaultStream
		}
		return OpenRedis(cfg.RedisAddr, stream)
	default:
		return OpenText(filepath.Join(cfg.DataDir, TextFileName))
	}
}

// nopLog is the "none" backend.
type nopLog struct {
	types.NopChangeLog
}

func (nopLog) Close() error { return nil }

func ioFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", types.ErrIOFailure, op, err)
}

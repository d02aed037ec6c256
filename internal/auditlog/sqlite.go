package auditlog

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const createChanges = `CREATE TABLE IF NOT EXISTS changes (
    change_id TEXT PRIMARY KEY,
    message TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

// recordTimeout bounds a single Record call on database-backed logs.
const recordTimeout = 5 * time.Second

// SQLiteLog stores changes in a SQLite table keyed by UUID v7.
type SQLiteLog struct {
	path string
	db   *sql.DB
}

// OpenSQLite opens (or creates) the change database at path.
func OpenSQLite(path string) (*SQLiteLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, ioFailure("create log directory", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, ioFailure("open change database", err)
	}
	if _, err := db.Exec(createChanges); err != nil {
		db.Close()
		return nil, ioFailure("create changes table", err)
	}
	return &SQLiteLog{path: path, db: db}, nil
}

// generateUUID generates a new UUID v7 for change IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// Record inserts message. Insert failures are reported as warnings.
func (l *SQLiteLog) Record(message string) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	_, err := l.db.ExecContext(ctx,
		`INSERT INTO changes (change_id, message, created_at) VALUES (?, ?, ?)`,
		generateUUID(), message, time.Now().UTC().Format(timeLayout))
	if err != nil {
		log.Printf("warning: write change log %s: %v", l.path, err)
	}
}

// Entries implements History.
func (l *SQLiteLog) Entries(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT change_id, message, created_at FROM changes ORDER BY created_at DESC, change_id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ioFailure("query changes", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.Message, &created); err != nil {
			return nil, ioFailure("scan change", err)
		}
		e.CreatedAt, err = time.Parse(timeLayout, created)
		if err != nil {
			return nil, fmt.Errorf("parse created_at for change %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, ioFailure("iterate changes", err)
	}
	return entries, nil
}

// Close closes the database.
func (l *SQLiteLog) Close() error {
	return l.db.Close()
}

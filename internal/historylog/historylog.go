// Package historylog is a side-channel compile audit log: one row per CLI
// invocation (timestamp, input path, invocation UUID, error count, first
// error code), written to a local SQLite database through
// modernc.org/sqlite's pure-Go database/sql driver. It never participates
// in compilation semantics — a write failure is logged through onyolog and
// swallowed, never fatal, and this is explicitly not a compiled-artifact
// cache: it records that a compile happened, nothing about its output is
// reusable.
package historylog

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/onyolang/onyoc/internal/onyolog"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS compiles (
	id TEXT PRIMARY KEY,
	ts TEXT NOT NULL,
	input_path TEXT NOT NULL,
	error_count INTEGER NOT NULL,
	first_error_code TEXT
)`

// Entry is one row appended to the history log.
type Entry struct {
	InvocationID   string
	Timestamp      time.Time
	InputPath      string
	ErrorCount     int
	FirstErrorCode string
}

// NewInvocationID mints a fresh invocation UUID, tagging one CLI run.
func NewInvocationID() string {
	return uuid.NewString()
}

// DefaultPath returns $XDG_STATE_HOME/onyoc/history.db, falling back to
// ~/.onyoc/history.db when XDG_STATE_HOME is unset.
func DefaultPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "onyoc", "history.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".onyoc", "history.db")
	}
	return filepath.Join(home, ".onyoc", "history.db")
}

// Append opens (creating if needed) the database at path and appends entry.
// Any failure is logged and swallowed — the caller never needs to react to
// a history-log error.
func Append(path string, entry Entry) {
	if err := appendEntry(path, entry); err != nil {
		onyolog.Warn("history log write failed", "path", path, "error", err)
	}
}

func appendEntry(path string, entry Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(createTableSQL); err != nil {
		return err
	}
	_, err = db.Exec(
		`INSERT INTO compiles (id, ts, input_path, error_count, first_error_code) VALUES (?, ?, ?, ?, ?)`,
		entry.InvocationID, entry.Timestamp.Format(time.RFC3339), entry.InputPath, entry.ErrorCount, entry.FirstErrorCode,
	)
	return err
}

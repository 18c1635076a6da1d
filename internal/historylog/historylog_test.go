package historylog_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/onyolang/onyoc/internal/historylog"
)

func TestAppendWritesRetrievableRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	entry := historylog.Entry{
		InvocationID:   historylog.NewInvocationID(),
		Timestamp:      time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC),
		InputPath:      "main.onyo",
		ErrorCount:     1,
		FirstErrorCode: "R001",
	}
	historylog.Append(path, entry)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var inputPath, firstErrorCode string
	var errorCount int
	row := db.QueryRow(`SELECT input_path, error_count, first_error_code FROM compiles WHERE id = ?`, entry.InvocationID)
	if err := row.Scan(&inputPath, &errorCount, &firstErrorCode); err != nil {
		t.Fatalf("expected the appended row to be retrievable: %v", err)
	}
	if inputPath != "main.onyo" || errorCount != 1 || firstErrorCode != "R001" {
		t.Fatalf("unexpected row: path=%q count=%d code=%q", inputPath, errorCount, firstErrorCode)
	}
}

func TestAppendAccumulatesRowsAcrossMultipleCalls(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	historylog.Append(path, historylog.Entry{InvocationID: "a", Timestamp: time.Now(), InputPath: "x.onyo"})
	historylog.Append(path, historylog.Entry{InvocationID: "b", Timestamp: time.Now(), InputPath: "y.onyo"})

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM compiles`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("expected 2 rows after 2 appends, got %d", count)
	}
}

func TestNewInvocationIDIsUnique(t *testing.T) {
	a := historylog.NewInvocationID()
	b := historylog.NewInvocationID()
	if a == b {
		t.Fatalf("expected distinct invocation ids, got %q twice", a)
	}
}

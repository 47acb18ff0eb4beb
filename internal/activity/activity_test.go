package activity

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/quietloop/lifeboard/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAppendBounded(t *testing.T) {
	log := Open(filepath.Join(t.TempDir(), "activity.json"), testLogger())

	for i := 0; i < MaxEntries+10; i++ {
		log.Append(model.ActivityEntry{Action: fmt.Sprintf("run %d", i)})
	}

	entries := log.Entries(0)
	if len(entries) != MaxEntries {
		t.Fatalf("expected %d entries, got %d", MaxEntries, len(entries))
	}
	// Newest first: the last append is at the head, the oldest retained
	// entry is append number 10.
	if entries[0].Action != fmt.Sprintf("run %d", MaxEntries+9) {
		t.Errorf("newest entry not at head: %s", entries[0].Action)
	}
	if entries[MaxEntries-1].Action != "run 10" {
		t.Errorf("oldest retained entry wrong: %s", entries[MaxEntries-1].Action)
	}
}

func TestAppendAssignsIDAndTimestamp(t *testing.T) {
	log := Open(filepath.Join(t.TempDir(), "activity.json"), testLogger())
	log.Append(model.ActivityEntry{Action: "refresh"})

	e := log.Entries(1)[0]
	if e.ID == "" {
		t.Error("entry should get an ID")
	}
	if e.Timestamp.IsZero() {
		t.Error("entry should get a timestamp")
	}
}

func TestSaveAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.json")

	log := Open(path, testLogger())
	log.Append(model.ActivityEntry{Action: "first"})
	log.Append(model.ActivityEntry{Action: "second"})
	if err := log.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reopened := Open(path, testLogger())
	entries := reopened.Entries(0)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries after reopen, got %d", len(entries))
	}
	if entries[0].Action != "second" {
		t.Errorf("newest-first order lost on reload: %s", entries[0].Action)
	}
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.json")
	if err := os.WriteFile(path, []byte("[broken"), 0644); err != nil {
		t.Fatal(err)
	}

	log := Open(path, testLogger())
	if len(log.Entries(0)) != 0 {
		t.Error("corrupt log should start empty")
	}
}

func TestEntriesLimit(t *testing.T) {
	log := Open(filepath.Join(t.TempDir(), "activity.json"), testLogger())
	for i := 0; i < 5; i++ {
		log.Append(model.ActivityEntry{Action: "x"})
	}
	if got := len(log.Entries(3)); got != 3 {
		t.Errorf("Entries(3) returned %d", got)
	}
	if got := len(log.Entries(99)); got != 5 {
		t.Errorf("Entries(99) returned %d", got)
	}
}

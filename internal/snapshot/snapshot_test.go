package snapshot

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.json")
	return NewStore(path, slog.New(slog.NewTextHandler(io.Discard, nil))), path
}

func TestLoadMissingFile(t *testing.T) {
	s, _ := testStore(t)
	snapshot := s.Load()
	if snapshot == nil || len(snapshot) != 0 {
		t.Errorf("missing file should load an empty object, got %v", snapshot)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	s, path := testStore(t)
	if err := os.WriteFile(path, []byte("{definitely not json"), 0644); err != nil {
		t.Fatal(err)
	}

	snapshot := s.Load()
	if len(snapshot) != 0 {
		t.Errorf("corrupt file should load an empty object, got %v", snapshot)
	}
}

func TestMergePreservesUnknownKeys(t *testing.T) {
	prior := map[string]json.RawMessage{
		"tasks":       json.RawMessage(`["stale"]`),
		"handwritten": json.RawMessage(`{"note": "keep me"}`),
	}

	merged, err := Merge(prior, map[string]any{"tasks": []string{"fresh"}})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if string(merged["handwritten"]) != `{"note": "keep me"}` {
		t.Errorf("unknown key must survive untouched, got %s", merged["handwritten"])
	}
	if string(merged["tasks"]) != `["fresh"]` {
		t.Errorf("known key must be overwritten wholesale, got %s", merged["tasks"])
	}
}

func TestSaveAndReload(t *testing.T) {
	s, _ := testStore(t)

	merged, err := Merge(s.Load(), map[string]any{"daysRemaining": 12})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(merged, false); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded := s.Load()
	if string(reloaded["daysRemaining"]) != "12" {
		t.Errorf("round trip lost data: %v", reloaded)
	}
}

func TestSaveDryRunWritesNothing(t *testing.T) {
	s, path := testStore(t)

	merged, _ := Merge(map[string]json.RawMessage{}, map[string]any{"tasks": []string{"a"}})
	if err := s.Save(merged, true); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("dry run must not create the snapshot file")
	}
	// The in-memory merged object is still usable downstream.
	if string(merged["tasks"]) != `["a"]` {
		t.Errorf("merged object should be intact, got %s", merged["tasks"])
	}
}

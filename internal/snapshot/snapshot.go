// Package snapshot persists the aggregate dashboard state as a single
// JSON document, rewritten once per refresh pass.
package snapshot

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Store reads and rewrites the snapshot file.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a snapshot store at path.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Load parses the persisted snapshot into a key→raw-JSON map. A missing
// or corrupt file yields an empty map, never an error: the refresh pass
// must complete from a cold start.
func (s *Store) Load() map[string]json.RawMessage {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("snapshot unreadable, starting empty", "error", err)
		}
		return map[string]json.RawMessage{}
	}

	snapshot := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &snapshot); err != nil {
		s.logger.Warn("snapshot corrupt, starting empty", "error", err)
		return map[string]json.RawMessage{}
	}
	return snapshot
}

// Merge overwrites each known top-level key of prior with the freshly
// computed value and leaves unrecognized keys untouched. Values are
// replaced wholesale, not deep-merged.
func Merge(prior map[string]json.RawMessage, fresh map[string]any) (map[string]json.RawMessage, error) {
	merged := make(map[string]json.RawMessage, len(prior)+len(fresh))
	for k, v := range prior {
		merged[k] = v
	}
	for k, v := range fresh {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding snapshot key %s: %w", k, err)
		}
		merged[k] = data
	}
	return merged, nil
}

// Save serializes the merged snapshot to disk. When dryRun is set the
// write is skipped; the caller already holds the merged object so
// downstream consumers behave identically.
func (s *Store) Save(snapshot map[string]json.RawMessage, dryRun bool) error {
	if dryRun {
		return nil
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating snapshot dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// Package activity keeps the bounded, newest-first run history that
// feeds the dashboard's activity feed.
package activity

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/quietloop/lifeboard/internal/model"
)

// MaxEntries caps the persisted activity log.
const MaxEntries = 50

// Log is the bounded activity history, newest first.
type Log struct {
	path    string
	logger  *slog.Logger
	entries []model.ActivityEntry
}

// Open loads the activity log at path. Missing or corrupt files start
// an empty log.
func Open(path string, logger *slog.Logger) *Log {
	l := &Log{path: path, logger: logger}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("activity log unreadable, starting empty", "error", err)
		}
		return l
	}
	if err := json.Unmarshal(data, &l.entries); err != nil {
		logger.Warn("activity log corrupt, starting empty", "error", err)
		l.entries = nil
	}
	return l
}

// Append prepends entry and truncates the log to MaxEntries. Entries
// without an ID or timestamp get one assigned.
func (l *Log) Append(entry model.ActivityEntry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	l.entries = append([]model.ActivityEntry{entry}, l.entries...)
	if len(l.entries) > MaxEntries {
		l.entries = l.entries[:MaxEntries]
	}
}

// Entries returns up to limit entries, newest first. A non-positive
// limit returns everything.
func (l *Log) Entries(limit int) []model.ActivityEntry {
	if limit <= 0 || limit > len(l.entries) {
		limit = len(l.entries)
	}
	return l.entries[:limit]
}

// Save persists the log as a JSON array, newest first.
func (l *Log) Save() error {
	data, err := json.MarshalIndent(l.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding activity log: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("creating activity dir: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0644); err != nil {
		return fmt.Errorf("writing activity log: %w", err)
	}
	return nil
}

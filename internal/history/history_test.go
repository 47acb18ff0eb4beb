package history

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndListRuns(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < 3; i++ {
		run := &Run{
			DurationMs:  int64(100 + i),
			CronHealthy: 2,
			CronTotal:   3,
			TaskCount:   5,
			AgentCount:  2,
			Summary:     "cron 2/3 healthy, 5 tasks, 2 agents",
		}
		if err := s.RecordRun(run); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
		if run.ID == 0 {
			t.Error("expected assigned run ID")
		}
	}

	runs, err := s.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID <= runs[1].ID {
		t.Error("runs should be newest first")
	}
	if runs[0].CronTotal != 3 || runs[0].Summary == "" {
		t.Errorf("run fields lost: %+v", runs[0])
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.db")

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.RecordRun(&Run{Summary: "first"}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	runs, err := s2.RecentRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Summary != "first" {
		t.Errorf("data lost across reopen: %v", runs)
	}
}

package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestRecordMerge(t *testing.T) {
	base := Record{BestStash: 10, BestDistance: 100, TotalYarn: 50, TotalRuns: 3}

	tests := []struct {
		name     string
		run      RunResult
		stash    bool
		distance bool
	}{
		{"neither", RunResult{Stash: 5, Distance: 50, Collected: 8}, false, false},
		{"stash only", RunResult{Stash: 11, Distance: 50, Collected: 20}, true, false},
		{"distance only", RunResult{Stash: 0, Distance: 100.5}, false, true},
		{"both", RunResult{Stash: 12, Distance: 300, Collected: 30}, true, true},
		{"ties are not records", RunResult{Stash: 10, Distance: 100}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, s, d := base.Merge(tt.run)
			if s != tt.stash || d != tt.distance {
				t.Errorf("records = %v/%v, want %v/%v", s, d, tt.stash, tt.distance)
			}
			if next.TotalRuns != 4 || next.TotalYarn != 50+tt.run.Collected {
				t.Errorf("totals = %d runs %d yarn", next.TotalRuns, next.TotalYarn)
			}
			if s && next.BestStash != tt.run.Stash {
				t.Errorf("best stash = %d", next.BestStash)
			}
			if !d && next.BestDistance != base.BestDistance {
				t.Errorf("best distance changed to %v without a record", next.BestDistance)
			}
		})
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "record.json")
	s, err := NewFileStore(path, quietLogger())
	if err != nil {
		t.Fatalf("NewFileStore() failed: %v", err)
	}

	want := Record{BestStash: 42, BestDistance: 1337.5}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if got := s.Load(); got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, temp file left behind", len(entries))
	}
}

func TestFileStoreMissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		write   bool
	}{
		{"missing", "", false},
		{"empty", "", true},
		{"garbage", "{not json", true},
		{"truncated", `{"best_stash": 4`, true},
		{"negative", `{"best_stash": -3, "best_distance": 10}`, true},
		{"wrong type", `{"best_stash": "lots"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			if tt.write {
				if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			s, _ := NewFileStore(path, quietLogger())
			if got := s.Load(); got != (Record{}) {
				t.Errorf("Load() = %+v, want zero record", got)
			}
		})
	}
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.json")
	s, _ := NewFileStore(path, quietLogger())

	_ = s.Save(Record{BestStash: 1, BestDistance: 2})
	_ = s.Save(Record{BestStash: 3, BestDistance: 4, TotalRuns: 2})
	if got := s.Load(); got.BestStash != 3 || got.BestDistance != 4 || got.TotalRuns != 2 {
		t.Errorf("Load() = %+v", got)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if got := s.Load(); got != (Record{}) {
		t.Errorf("Load() after Clear = %+v", got)
	}
	if err := s.Clear(); err != nil {
		t.Errorf("second Clear() failed: %v", err)
	}
}

func TestFileStoreSaveError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	s, _ := NewFileStore(filepath.Join(blocker, "record.json"), quietLogger())

	err := s.Save(Record{BestStash: 1})
	var pe *PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("Save() = %v, want PersistenceError", err)
	}
	if pe.Op != "write" {
		t.Errorf("op = %q, want write", pe.Op)
	}
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore(Record{BestStash: 2})
	if m.Load().BestStash != 2 {
		t.Fatal("initial record lost")
	}
	_ = m.Save(Record{BestStash: 9})
	if m.Load().BestStash != 9 || m.Saves != 1 {
		t.Errorf("after save: %+v saves=%d", m.Load(), m.Saves)
	}
	id, _ := m.SaveRun(RunResult{Stash: 9})
	if id != 1 || len(m.Runs()) != 1 {
		t.Errorf("run id %d, %d runs", id, len(m.Runs()))
	}
}

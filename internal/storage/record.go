// Package storage persists the runner's best record and run history.
//
// Three backends share one contract: Load never fails the caller (a
// missing, unreadable or corrupt record degrades to the zero Record and is
// logged), and Save either replaces the record completely or leaves the old
// one in place.
package storage

import (
	"fmt"
	"time"
)

// Record is the durable cross-run state.
type Record struct {
	BestStash    int     `json:"best_stash"`
	BestDistance float64 `json:"best_distance"`
	TotalYarn    int     `json:"total_yarn"`
	TotalRuns    int     `json:"total_runs"`
}

// valid reports whether every field is non-negative.
func (r Record) valid() bool {
	return r.BestStash >= 0 && r.BestDistance >= 0 && r.TotalYarn >= 0 && r.TotalRuns >= 0
}

// Merge folds a finished run into the record. It reports which bests the
// run improved; the two are independent.
func (r Record) Merge(run RunResult) (next Record, stashRecord, distanceRecord bool) {
	next = r
	next.TotalRuns++
	next.TotalYarn += run.Collected
	if run.Stash > r.BestStash {
		next.BestStash = run.Stash
		stashRecord = true
	}
	if run.Distance > r.BestDistance {
		next.BestDistance = run.Distance
		distanceRecord = true
	}
	return next, stashRecord, distanceRecord
}

// RecordStore loads and saves the best record.
type RecordStore interface {
	Load() Record
	Save(Record) error
}

// Clearer is implemented by stores that can forget their record.
type Clearer interface {
	Clear() error
}

// RunResult is one finished run.
type RunResult struct {
	ID        int64
	Seed      int64
	Stash     int
	Distance  float64
	Collected int
	Hits      int
	Duration  time.Duration
	Cause     string // "gap" or "bush"
	CreatedAt time.Time
}

// RunRecorder is implemented by stores that keep run history.
type RunRecorder interface {
	SaveRun(RunResult) (int64, error)
}

// PersistenceError wraps a failed read or write of the record.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// MemoryStore keeps the record in memory. Runs are kept too.
type MemoryStore struct {
	rec   Record
	runs  []RunResult
	Saves int
}

// NewMemoryStore creates a store holding rec.
func NewMemoryStore(rec Record) *MemoryStore {
	return &MemoryStore{rec: rec}
}

// Load returns the held record.
func (m *MemoryStore) Load() Record {
	return m.rec
}

// Save replaces the held record.
func (m *MemoryStore) Save(rec Record) error {
	m.rec = rec
	m.Saves++
	return nil
}

// Clear resets the record to zero.
func (m *MemoryStore) Clear() error {
	m.rec = Record{}
	m.runs = nil
	return nil
}

// SaveRun appends a run.
func (m *MemoryStore) SaveRun(run RunResult) (int64, error) {
	run.ID = int64(len(m.runs) + 1)
	m.runs = append(m.runs, run)
	return run.ID, nil
}

// Runs returns the saved runs in order.
func (m *MemoryStore) Runs() []RunResult {
	return m.runs
}

var (
	_ RecordStore = (*MemoryStore)(nil)
	_ RunRecorder = (*MemoryStore)(nil)
	_ Clearer     = (*MemoryStore)(nil)
)

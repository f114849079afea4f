package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore keeps the best record and the history of every run.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *log.Logger
}

// RunStats contains aggregates over all stored runs.
type RunStats struct {
	Runs          int
	BestStash     int
	BestDistance  float64
	AvgStash      float64
	AvgDistance   float64
	TotalYarn     int64
	TotalDuration time.Duration
	LastPlayed    time.Time
}

// OpenSQLite creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func OpenSQLite(dbPath string, logger *log.Logger) (*SQLiteStore, error) {
	dbPath, err := expandHome(dbPath)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &SQLiteStore{db: db, path: dbPath, logger: logger}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			stash INTEGER NOT NULL,
			distance REAL NOT NULL,
			collected INTEGER NOT NULL DEFAULT 0,
			hits INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			cause TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_stash ON runs(stash DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_distance ON runs(distance DESC);

		CREATE TABLE IF NOT EXISTS records (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			best_stash INTEGER NOT NULL,
			best_distance REAL NOT NULL,
			total_yarn INTEGER NOT NULL,
			total_runs INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns the best record. Failures are logged and yield zero.
func (s *SQLiteStore) Load() Record {
	var rec Record
	err := s.db.QueryRow(
		`SELECT best_stash, best_distance, total_yarn, total_runs FROM records WHERE id = 1`,
	).Scan(&rec.BestStash, &rec.BestDistance, &rec.TotalYarn, &rec.TotalRuns)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}
	}
	if err != nil {
		s.logger.Warn("record unreadable, starting fresh", "error", &PersistenceError{Op: "read", Path: s.path, Err: err})
		return Record{}
	}
	if !rec.valid() {
		s.logger.Warn("record corrupt, starting fresh", "path", s.path)
		return Record{}
	}
	return rec
}

// Save replaces the best record in a single transaction.
func (s *SQLiteStore) Save(rec Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return &PersistenceError{Op: "begin", Path: s.path, Err: err}
	}
	defer tx.Rollback() // no-op after commit

	_, err = tx.Exec(
		`INSERT INTO records (id, best_stash, best_distance, total_yarn, total_runs, updated_at)
		 VALUES (1, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET
		   best_stash = excluded.best_stash,
		   best_distance = excluded.best_distance,
		   total_yarn = excluded.total_yarn,
		   total_runs = excluded.total_runs,
		   updated_at = excluded.updated_at`,
		rec.BestStash, rec.BestDistance, rec.TotalYarn, rec.TotalRuns,
	)
	if err != nil {
		return &PersistenceError{Op: "write", Path: s.path, Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &PersistenceError{Op: "commit", Path: s.path, Err: err}
	}
	return nil
}

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *SQLiteStore) SaveRun(run RunResult) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (seed, stash, distance, collected, hits, duration_ms, cause)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.Seed, run.Stash, run.Distance, run.Collected, run.Hits, run.Duration.Milliseconds(), run.Cause,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RunOrder selects how history is sorted.
type RunOrder int

const (
	ByStash RunOrder = iota
	ByDistance
	ByRecent
)

func (o RunOrder) clause() string {
	switch o {
	case ByDistance:
		return "distance DESC, id DESC"
	case ByRecent:
		return "id DESC"
	default:
		return "stash DESC, distance DESC, id DESC"
	}
}

// TopRuns retrieves up to limit runs in the given order.
func (s *SQLiteStore) TopRuns(order RunOrder, limit int) ([]RunResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, seed, stash, distance, collected, hits, duration_ms, cause, created_at
		 FROM runs
		 ORDER BY `+order.clause()+`
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunResult
	for rows.Next() {
		var r RunResult
		var durationMs int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Seed, &r.Stash, &r.Distance, &r.Collected, &r.Hits, &durationMs, &r.Cause, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Stats retrieves aggregates over all runs.
func (s *SQLiteStore) Stats() (*RunStats, error) {
	stats := &RunStats{}
	var durationMs int64
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(stash), 0), COALESCE(MAX(distance), 0),
		        COALESCE(AVG(stash), 0), COALESCE(AVG(distance), 0),
		        COALESCE(SUM(collected), 0), COALESCE(SUM(duration_ms), 0), MAX(created_at)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.BestStash, &stats.BestDistance, &stats.AvgStash, &stats.AvgDistance,
		&stats.TotalYarn, &durationMs, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	stats.TotalDuration = time.Duration(durationMs) * time.Millisecond
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// Clear deletes the record and all run history.
func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM runs; DELETE FROM records;"); err != nil {
		return fmt.Errorf("storage: cannot clear: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

var (
	_ RecordStore = (*SQLiteStore)(nil)
	_ RunRecorder = (*SQLiteStore)(nil)
	_ Clearer     = (*SQLiteStore)(nil)
)

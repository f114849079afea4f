package storage

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// FileStore keeps the record as a JSON file, replaced atomically by writing
// a temp file in the same directory and renaming it over the old one.
type FileStore struct {
	path   string
	logger *log.Logger
}

// NewFileStore creates a store at path. A leading ~ expands to the home
// directory.
func NewFileStore(path string, logger *log.Logger) (*FileStore, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &FileStore{path: path, logger: logger}, nil
}

// Path returns the record file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the record. Any failure is logged and yields the zero Record.
func (s *FileStore) Load() Record {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("no record yet", "path", s.path)
		return Record{}
	}
	if err != nil {
		s.logger.Warn("record unreadable, starting fresh", "error", &PersistenceError{Op: "read", Path: s.path, Err: err})
		return Record{}
	}

	rec, err := decodeRecord(data)
	if err != nil {
		s.logger.Warn("record corrupt, starting fresh", "error", &PersistenceError{Op: "decode", Path: s.path, Err: err})
		return Record{}
	}
	return rec
}

// Save durably replaces the record.
func (s *FileStore) Save(rec Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "encode", Path: s.path, Err: err}
	}
	if err := writeAtomic(s.path, data); err != nil {
		return &PersistenceError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}

// Clear removes the record file.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &PersistenceError{Op: "remove", Path: s.path, Err: err}
	}
	return nil
}

func decodeRecord(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, err
	}
	if !rec.valid() {
		return Record{}, errors.New("negative field")
	}
	return rec, nil
}

// writeAtomic writes data to a temp file, syncs it, then renames it over
// path. A crash leaves either the old file or the new one.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	// Persist the rename itself. Not every platform can sync a directory.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		d.Close()
	}
	return nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", &PersistenceError{Op: "expand", Path: path, Err: err}
	}
	return filepath.Join(home, path[1:]), nil
}

var (
	_ RecordStore = (*FileStore)(nil)
	_ Clearer     = (*FileStore)(nil)
)

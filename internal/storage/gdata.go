package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata"
)

// itemStore is the subset of *gdata.Manager the store uses.
type itemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

var recordSlots = [2]string{"record_a", "record_b"}

// slot is one written copy of the record. Seq orders the copies and Sum
// guards Data against torn writes.
type slot struct {
	Seq  uint64          `json:"seq"`
	Sum  uint32          `json:"sum"`
	Data json.RawMessage `json:"data"`
}

// GdataStore keeps the record in the per-user application data directory
// managed by gdata. Two slots are written alternately, so a crash while
// saving damages at most the copy being replaced.
type GdataStore struct {
	items  itemStore
	logger *log.Logger
	seq    uint64
}

// OpenGdata opens the application data store for appName.
func OpenGdata(appName string, logger *log.Logger) (*GdataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, &PersistenceError{Op: "open", Path: appName, Err: err}
	}
	return newGdataStore(m, logger), nil
}

func newGdataStore(items itemStore, logger *log.Logger) *GdataStore {
	if logger == nil {
		logger = log.Default()
	}
	return &GdataStore{items: items, logger: logger}
}

// Load returns the newest intact slot, or the zero Record.
func (s *GdataStore) Load() Record {
	rec, seq, ok := s.newest()
	s.seq = seq
	if !ok {
		return Record{}
	}
	return rec
}

func (s *GdataStore) newest() (Record, uint64, bool) {
	var (
		best    Record
		bestSeq uint64
		found   bool
	)
	for _, key := range recordSlots {
		sl, rec, err := s.readSlot(key)
		if err != nil {
			s.logger.Warn("record slot damaged", "slot", key, "error", err)
			continue
		}
		if sl == nil {
			continue
		}
		if !found || sl.Seq > bestSeq {
			best, bestSeq, found = rec, sl.Seq, true
		}
	}
	return best, bestSeq, found
}

func (s *GdataStore) readSlot(key string) (*slot, Record, error) {
	data, err := s.items.LoadItem(key)
	if err != nil {
		return nil, Record{}, &PersistenceError{Op: "read", Path: key, Err: err}
	}
	if len(data) == 0 {
		return nil, Record{}, nil
	}

	var sl slot
	if err := json.Unmarshal(data, &sl); err != nil {
		return nil, Record{}, &PersistenceError{Op: "decode", Path: key, Err: err}
	}
	if crc32.ChecksumIEEE(sl.Data) != sl.Sum {
		return nil, Record{}, &PersistenceError{Op: "verify", Path: key, Err: errors.New("checksum mismatch")}
	}
	rec, err := decodeRecord(sl.Data)
	if err != nil {
		return nil, Record{}, &PersistenceError{Op: "decode", Path: key, Err: err}
	}
	return &sl, rec, nil
}

// Save writes rec into the slot not holding the newest copy.
func (s *GdataStore) Save(rec Record) error {
	if _, seq, ok := s.newest(); ok && seq > s.seq {
		s.seq = seq
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return &PersistenceError{Op: "encode", Err: err}
	}

	next := s.seq + 1
	key := recordSlots[next%2]
	payload, err := json.Marshal(slot{Seq: next, Sum: crc32.ChecksumIEEE(data), Data: data})
	if err != nil {
		return &PersistenceError{Op: "encode", Path: key, Err: err}
	}
	if err := s.items.SaveItem(key, payload); err != nil {
		return &PersistenceError{Op: "write", Path: key, Err: fmt.Errorf("save item: %w", err)}
	}
	s.seq = next
	return nil
}

// Clear empties both slots.
func (s *GdataStore) Clear() error {
	for _, key := range recordSlots {
		if err := s.items.SaveItem(key, nil); err != nil {
			return &PersistenceError{Op: "clear", Path: key, Err: err}
		}
	}
	s.seq = 0
	return nil
}

var (
	_ RecordStore = (*GdataStore)(nil)
	_ Clearer     = (*GdataStore)(nil)
)

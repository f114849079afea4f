package storage

import (
	"errors"
	"testing"
)

// fakeItems is an in-memory itemStore.
type fakeItems struct {
	items   map[string][]byte
	failKey string
}

func newFakeItems() *fakeItems {
	return &fakeItems{items: map[string][]byte{}}
}

func (f *fakeItems) LoadItem(key string) ([]byte, error) {
	return f.items[key], nil
}

func (f *fakeItems) SaveItem(key string, data []byte) error {
	if key == f.failKey {
		return errors.New("disk full")
	}
	if data == nil {
		delete(f.items, key)
		return nil
	}
	f.items[key] = append([]byte(nil), data...)
	return nil
}

func TestGdataRoundTrip(t *testing.T) {
	items := newFakeItems()
	s := newGdataStore(items, quietLogger())

	if got := s.Load(); got != (Record{}) {
		t.Fatalf("empty Load() = %+v", got)
	}
	want := Record{BestStash: 42, BestDistance: 1337.5}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	fresh := newGdataStore(items, quietLogger())
	if got := fresh.Load(); got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestGdataAlternatesSlots(t *testing.T) {
	items := newFakeItems()
	s := newGdataStore(items, quietLogger())

	_ = s.Save(Record{BestStash: 1})
	_ = s.Save(Record{BestStash: 2})
	if len(items.items) != 2 {
		t.Fatalf("%d slots written, want 2", len(items.items))
	}
	_ = s.Save(Record{BestStash: 3})
	if got := newGdataStore(items, quietLogger()).Load(); got.BestStash != 3 {
		t.Errorf("newest = %d, want 3", got.BestStash)
	}
}

func TestGdataSurvivesTornSlot(t *testing.T) {
	items := newFakeItems()
	s := newGdataStore(items, quietLogger())
	_ = s.Save(Record{BestStash: 5, BestDistance: 50})
	_ = s.Save(Record{BestStash: 6, BestDistance: 60})

	// Damage the newest copy as a crash mid-write would.
	newest := recordSlots[2%2]
	items.items[newest] = items.items[newest][:len(items.items[newest])/2]

	got := newGdataStore(items, quietLogger()).Load()
	if got.BestStash != 5 || got.BestDistance != 50 {
		t.Errorf("Load() = %+v, want the older intact copy", got)
	}
}

func TestGdataChecksumMismatch(t *testing.T) {
	items := newFakeItems()
	items.items[recordSlots[0]] = []byte(`{"seq":1,"sum":1,"data":{"best_stash":99}}`)

	if got := newGdataStore(items, quietLogger()).Load(); got != (Record{}) {
		t.Errorf("Load() = %+v, want zero record", got)
	}
}

func TestGdataSaveErrorKeepsOldRecord(t *testing.T) {
	items := newFakeItems()
	s := newGdataStore(items, quietLogger())
	_ = s.Save(Record{BestStash: 7})

	items.failKey = recordSlots[0]
	err := s.Save(Record{BestStash: 8})
	var pe *PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("Save() = %v, want PersistenceError", err)
	}
	if got := newGdataStore(items, quietLogger()).Load(); got.BestStash != 7 {
		t.Errorf("Load() = %+v, want previous record", got)
	}
}

func TestGdataClear(t *testing.T) {
	items := newFakeItems()
	s := newGdataStore(items, quietLogger())
	_ = s.Save(Record{BestStash: 7})
	_ = s.Save(Record{BestStash: 8})

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if got := s.Load(); got != (Record{}) {
		t.Errorf("Load() after Clear = %+v", got)
	}
}

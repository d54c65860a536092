package session

import "sync"

// Table is the authoritative map from notification id to live record. It
// preserves insertion order for stacking and supports atomic removal so that
// a timer firing concurrently with an explicit close can never finalize the
// same record twice.
type Table struct {
	mu    sync.RWMutex
	recs  map[uint32]*Record
	order []uint32
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{recs: make(map[uint32]*Record)}
}

// Insert adds a record under its pre-assigned id. Inserting an id that is
// already present replaces the record in place, keeping its stack position.
func (t *Table) Insert(rec *Record) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.recs[rec.ID]; !exists {
		t.order = append(t.order, rec.ID)
	}
	t.recs[rec.ID] = rec
}

// Get returns the live record for id, if any.
func (t *Table) Get(id uint32) (*Record, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, ok := t.recs[id]
	return rec, ok
}

// Remove atomically pops the record for id. Removing an absent id is a
// no-op, not an error; exactly one caller observes ok == true for a given
// live record.
func (t *Table) Remove(id uint32) (*Record, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.recs[id]
	if !ok {
		return nil, false
	}
	delete(t.recs, id)

	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return rec, true
}

// Snapshot returns the live records in insertion order. The slice is a copy
// and stays stable while the caller iterates during a restack pass.
func (t *Table) Snapshot() []*Record {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*Record, 0, len(t.order))
	for _, id := range t.order {
		if rec, ok := t.recs[id]; ok {
			out = append(out, rec)
		}
	}
	return out
}

// Len returns the number of live records.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.recs)
}

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id uint32) *Record {
	return &Record{ID: id}
}

func TestTableInsertAndGet(t *testing.T) {
	table := NewTable()

	table.Insert(rec(1))
	table.Insert(rec(2))

	got, ok := table.Get(1)
	require.True(t, ok)
	assert.Equal(t, uint32(1), got.ID)

	_, ok = table.Get(99)
	assert.False(t, ok)
	assert.Equal(t, 2, table.Len())
}

func TestTableSnapshotInsertionOrder(t *testing.T) {
	table := NewTable()

	for _, id := range []uint32{5, 2, 9, 1} {
		table.Insert(rec(id))
	}

	snapshot := table.Snapshot()
	require.Len(t, snapshot, 4)

	ids := make([]uint32, len(snapshot))
	for i, r := range snapshot {
		ids[i] = r.ID
	}
	assert.Equal(t, []uint32{5, 2, 9, 1}, ids)
}

func TestTableRemove(t *testing.T) {
	table := NewTable()
	table.Insert(rec(1))
	table.Insert(rec(2))
	table.Insert(rec(3))

	removed, ok := table.Remove(2)
	require.True(t, ok)
	assert.Equal(t, uint32(2), removed.ID)
	assert.Equal(t, 2, table.Len())

	// Removing again is a no-op.
	_, ok = table.Remove(2)
	assert.False(t, ok)

	ids := make([]uint32, 0)
	for _, r := range table.Snapshot() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []uint32{1, 3}, ids)
}

func TestTableInsertSameIDKeepsPosition(t *testing.T) {
	table := NewTable()
	table.Insert(rec(1))
	table.Insert(rec(2))
	table.Insert(rec(3))

	replacement := &Record{ID: 2, AppName: "updated"}
	table.Insert(replacement)

	assert.Equal(t, 3, table.Len())

	snapshot := table.Snapshot()
	require.Len(t, snapshot, 3)
	assert.Equal(t, uint32(2), snapshot[1].ID)
	assert.Equal(t, "updated", snapshot[1].AppName)
}

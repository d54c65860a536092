package session

// restackLocked recomputes the vertical offset of every live record from
// scratch: a running offset starts at the configured padding and advances by
// surface height plus padding per visible record, in insertion order. Records
// whose offset lands at or past the height limit are popped from the table
// and returned for finalization; they are never left visible off-screen.
// Collection happens after the iteration so the snapshot is never mutated
// while being walked. Caller must hold m.mu.
func (m *Manager) restackLocked() []*Record {
	padding := m.cfg.Display.Padding
	limit := m.cfg.Display.HeightLimit

	offset := padding
	var overflow []*Record

	for _, rec := range m.table.Snapshot() {
		rec.StackOffset = offset
		if offset >= limit {
			overflow = append(overflow, rec)
			continue
		}

		height := m.cfg.Display.DefaultHeight
		if rec.Surface != nil {
			// Height is queried lazily; 0 means layout has not finished
			// yet and the default stands in until the next pass.
			if h := rec.Surface.Height(); h > 0 {
				height = h
			}
			rec.Surface.SetOffset(offset)
		}
		offset += height + padding
	}

	for _, rec := range overflow {
		m.table.Remove(rec.ID)
	}
	return overflow
}

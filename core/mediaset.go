package core

// MediaSet stores each video record exactly once, keyed by ID, and keeps two
// ordered ID lists over that store: every video the user has uploaded, and
// the subset attached to the profile page. Keeping a single record store
// makes the subset relation structural — a profile entry cannot outlive its
// uploaded counterpart because both lists resolve through the same map.
//
// Both lists are ordered newest first. The zero value is an empty set ready
// for use.
type MediaSet struct {
	records  map[int64]VideoRecord
	uploaded []int64
	profile  []int64
}

func buildMediaSet(uploaded, profile []VideoRecord) MediaSet {
	var m MediaSet
	for _, rec := range uploaded {
		if _, dup := m.records[rec.ID]; dup {
			continue
		}
		m.ensure()
		m.records[rec.ID] = rec
		m.uploaded = append(m.uploaded, rec.ID)
	}
	// Profile entries whose ID is not in the uploaded list are dropped:
	// they are dangling references left behind by an older writer.
	for _, rec := range profile {
		if _, ok := m.records[rec.ID]; ok && !contains(m.profile, rec.ID) {
			m.profile = append(m.profile, rec.ID)
		}
	}
	return m
}

func (m *MediaSet) ensure() {
	if m.records == nil {
		m.records = make(map[int64]VideoRecord)
	}
}

// Add prepends a record to the uploaded list and, when toProfile is set, to
// the profile list as well. A record with a duplicate ID replaces the stored
// record but is not listed twice.
func (m *MediaSet) Add(rec VideoRecord, toProfile bool) {
	m.ensure()
	_, existed := m.records[rec.ID]
	m.records[rec.ID] = rec
	if !existed {
		m.uploaded = prepend(m.uploaded, rec.ID)
	}
	if toProfile && !contains(m.profile, rec.ID) {
		m.profile = prepend(m.profile, rec.ID)
	}
}

// Remove deletes the ID from both lists and the record store. It reports
// whether anything was removed; removing an absent ID is a no-op.
func (m *MediaSet) Remove(id int64) bool {
	if _, ok := m.records[id]; !ok {
		return false
	}
	delete(m.records, id)
	m.uploaded = without(m.uploaded, id)
	m.profile = without(m.profile, id)
	return true
}

// Contains reports whether the ID is present in the uploaded list.
func (m *MediaSet) Contains(id int64) bool {
	_, ok := m.records[id]
	return ok
}

// OnProfile reports whether the ID is attached to the profile page.
func (m *MediaSet) OnProfile(id int64) bool {
	return contains(m.profile, id)
}

// Uploaded returns all uploaded records, newest first.
func (m *MediaSet) Uploaded() []VideoRecord {
	return m.resolve(m.uploaded)
}

// Profile returns the records attached to the profile page, newest first.
func (m *MediaSet) Profile() []VideoRecord {
	return m.resolve(m.profile)
}

// Len returns the number of uploaded records.
func (m *MediaSet) Len() int {
	return len(m.uploaded)
}

func (m *MediaSet) resolve(ids []int64) []VideoRecord {
	out := make([]VideoRecord, 0, len(ids))
	for _, id := range ids {
		if rec, ok := m.records[id]; ok {
			out = append(out, rec)
		}
	}
	return out
}

// Clone returns an independent copy of the set.
func (m *MediaSet) Clone() MediaSet {
	out := MediaSet{
		uploaded: append([]int64(nil), m.uploaded...),
		profile:  append([]int64(nil), m.profile...),
	}
	if m.records != nil {
		out.records = make(map[int64]VideoRecord, len(m.records))
		for id, rec := range m.records {
			out.records[id] = rec
		}
	}
	return out
}

func prepend(ids []int64, id int64) []int64 {
	return append([]int64{id}, ids...)
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func without(ids []int64, id int64) []int64 {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

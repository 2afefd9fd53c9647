// Package counters manages named counters on a runtime card.
package counters

// Counters is a name to count collection. Counts never go negative; a counter
// that reaches zero is removed.
type Counters struct {
	byName map[string]int
}

// New creates an empty collection.
func New() *Counters {
	return &Counters{byName: make(map[string]int)}
}

// Add adds amount counters of the given name. Non-positive amounts are
// ignored.
func (cs *Counters) Add(name string, amount int) {
	if amount <= 0 || name == "" {
		return
	}
	cs.byName[name] += amount
}

// Remove removes up to amount counters of the given name and returns how
// many were actually removed.
func (cs *Counters) Remove(name string, amount int) int {
	if amount <= 0 {
		return 0
	}
	have := cs.byName[name]
	if have == 0 {
		return 0
	}
	removed := amount
	if removed > have {
		removed = have
	}
	if have == removed {
		delete(cs.byName, name)
	} else {
		cs.byName[name] = have - removed
	}
	return removed
}

// Count returns the count of counters with the given name.
func (cs *Counters) Count(name string) int {
	return cs.byName[name]
}

// Has reports whether any counters of the given name are present.
func (cs *Counters) Has(name string) bool {
	return cs.byName[name] > 0
}

// All returns a copy of the underlying map for snapshots.
func (cs *Counters) All() map[string]int {
	out := make(map[string]int, len(cs.byName))
	for name, count := range cs.byName {
		out[name] = count
	}
	return out
}

// Copy creates a deep copy of the collection.
func (cs *Counters) Copy() *Counters {
	out := New()
	for name, count := range cs.byName {
		out.byName[name] = count
	}
	return out
}

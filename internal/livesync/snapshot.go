package livesync

import "time"

// Snapshot is the latest known state of a remote collection. It is
// replaced wholesale on every accepted fetch, never partially mutated,
// so a render can never mix fields from two different polls.
type Snapshot[T any] struct {
	Items     []T
	FetchedAt time.Time
	Gen       uint64
}

// Replace swaps in a newer snapshot. The caller has already passed the
// generation guard, so this is a plain wholesale assignment.
func (s *Snapshot[T]) Replace(items []T, gen uint64) {
	s.Items = items
	s.FetchedAt = time.Now()
	s.Gen = gen
}

// Empty reports whether the snapshot holds no items. Views render a
// dedicated placeholder in that case.
func (s *Snapshot[T]) Empty() bool {
	return len(s.Items) == 0
}

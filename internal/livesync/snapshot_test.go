package livesync

import (
	"testing"
	"time"
)

func TestSnapshotReplace(t *testing.T) {
	var s Snapshot[int]
	if !s.Empty() {
		t.Error("zero-value snapshot is not empty")
	}

	before := time.Now()
	s.Replace([]int{1, 2, 3}, 7)
	if s.Empty() {
		t.Error("Empty after Replace")
	}
	if len(s.Items) != 3 || s.Gen != 7 {
		t.Errorf("Items=%v Gen=%d", s.Items, s.Gen)
	}
	if s.FetchedAt.Before(before) {
		t.Error("FetchedAt not refreshed")
	}

	s.Replace(nil, 8)
	if !s.Empty() || s.Gen != 8 {
		t.Errorf("wholesale replacement failed: %+v", s)
	}
}

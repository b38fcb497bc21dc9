package achievement

// StampedUnlock records when a single achievement was unlocked.
type StampedUnlock struct {
	ID         string `json:"id"`
	UnlockedAt int64  `json:"timestamp"` // epoch milliseconds
}

// Record is the persisted unlock state for one visitor.
//
// Invariants maintained by the engine:
//   - UnlockedIDs contains no duplicates and only catalog IDs
//   - Timestamps has exactly one entry per unlocked ID, appended in unlock order
//   - Completed implies every catalog ID is present
type Record struct {
	UnlockedIDs []string
	Timestamps  []StampedUnlock
	Completed   bool
}

// Unlocked reports whether the record already contains id.
func (r Record) Unlocked(id string) bool {
	for _, have := range r.UnlockedIDs {
		if have == id {
			return true
		}
	}
	return false
}

// consistent reports whether the ID list and timestamp list describe the
// same set. Order may differ; duplicates make the record inconsistent.
func (r Record) consistent() bool {
	if len(r.UnlockedIDs) != len(r.Timestamps) {
		return false
	}
	seen := make(map[string]bool, len(r.UnlockedIDs))
	for _, id := range r.UnlockedIDs {
		if seen[id] {
			return false
		}
		seen[id] = true
	}
	for _, ts := range r.Timestamps {
		if !seen[ts.ID] {
			return false
		}
	}
	return true
}

package upload

import (
	"sync"
	"time"

	"paperdesk/internal/models"

	"github.com/google/uuid"
)

// Selection holds accepted files waiting to be uploaded, in arrival order.
// Every entry has passed Classify.
type Selection struct {
	mu      sync.Mutex
	entries []models.SelectionEntry
	now     func() time.Time
}

func NewSelection() *Selection {
	return &Selection{now: time.Now}
}

// Add appends the accepted subset of files and returns the new entries.
// Identical names are kept as distinct entries.
func (s *Selection) Add(files ...models.CandidateFile) []models.SelectionEntry {
	accepted, _ := Partition(files)
	if len(accepted) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	added := make([]models.SelectionEntry, 0, len(accepted))
	for _, f := range accepted {
		e := models.SelectionEntry{ID: uuid.NewString(), File: f, AddedAt: s.now()}
		s.entries = append(s.entries, e)
		added = append(added, e)
	}
	return added
}

// RemoveAt drops the entry at index i. Out-of-range indices are ignored since
// a displayed index can be stale by the time it is acted on.
func (s *Selection) RemoveAt(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.entries) {
		return false
	}
	s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
	return true
}

func (s *Selection) RemoveAll() {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
}

// Snapshot returns a copy of the current entries.
func (s *Selection) Snapshot() []models.SelectionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.SelectionEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Consume removes exactly the entries of a submitted batch. Entries added
// after the batch was taken stay for the next one.
func (s *Selection) Consume(b Batch) int {
	if b.Len() == 0 {
		return 0
	}
	ids := make(map[string]struct{}, b.Len())
	for _, e := range b.Entries() {
		ids[e.ID] = struct{}{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.entries[:0:0]
	removed := 0
	for _, e := range s.entries {
		if _, ok := ids[e.ID]; ok {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	return removed
}

// Batch is an immutable snapshot of the selection taken at submit time.
type Batch struct {
	entries []models.SelectionEntry
}

func (s *Selection) Batch() Batch {
	return Batch{entries: s.Snapshot()}
}

func NewBatch(entries []models.SelectionEntry) Batch {
	out := make([]models.SelectionEntry, len(entries))
	copy(out, entries)
	return Batch{entries: out}
}

func (b Batch) Len() int { return len(b.entries) }

func (b Batch) Entries() []models.SelectionEntry {
	out := make([]models.SelectionEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

func (b Batch) Files() []models.CandidateFile {
	out := make([]models.CandidateFile, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, e.File)
	}
	return out
}

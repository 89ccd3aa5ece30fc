package stubserver

import (
	"sort"
	"sync"
	"time"

	"paperdesk/internal/models"
)

type paperRecord struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Authors    []string  `json:"authors,omitempty"`
	Year       int       `json:"year,omitempty"`
	Journal    string    `json:"journal,omitempty"`
	DOI        string    `json:"doi,omitempty"`
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func (p paperRecord) summary() models.Paper {
	return models.Paper{ID: p.ID, Title: p.Title}
}

// catalogue holds processed papers keyed by content hash. Re-uploading the
// same bytes replaces the earlier record.
type catalogue struct {
	mu     sync.RWMutex
	papers map[string]paperRecord
}

func newCatalogue() *catalogue {
	return &catalogue{papers: make(map[string]paperRecord)}
}

func (c *catalogue) put(p paperRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.papers[p.ID] = p
}

func (c *catalogue) get(id string) (paperRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.papers[id]
	return p, ok
}

// list returns papers oldest upload first.
func (c *catalogue) list() []paperRecord {
	c.mu.RLock()
	out := make([]paperRecord, 0, len(c.papers))
	for _, p := range c.papers {
		out = append(out, p)
	}
	c.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UploadedAt.Before(out[j].UploadedAt)
	})
	return out
}

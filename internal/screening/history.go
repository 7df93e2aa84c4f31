package screening

import (
	"sync"
	"time"
)

// Result is one completed fit analysis.
type Result struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	MessageCount int       `json:"message_count"`
	MatchScore   *float64  `json:"match_score,omitempty"`
	Analysis     string    `json:"analysis"`
	Questions    string    `json:"questions,omitempty"`
}

// History keeps completed analyses for the lifetime of the process, newest
// last in insertion order.
type History struct {
	mu      sync.RWMutex
	results map[string]Result
	order   []string
}

func NewHistory() *History {
	return &History{results: make(map[string]Result)}
}

func (h *History) Add(r Result) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.results[r.ID]; !exists {
		h.order = append(h.order, r.ID)
	}
	h.results[r.ID] = r
}

func (h *History) Get(id string) (Result, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	r, ok := h.results[id]
	return r, ok
}

// List returns all results, newest first.
func (h *History) List() []Result {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Result, 0, len(h.order))
	for i := len(h.order) - 1; i >= 0; i-- {
		out = append(out, h.results[h.order[i]])
	}
	return out
}

// Latest returns the most recently added result.
func (h *History) Latest() (Result, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.order) == 0 {
		return Result{}, false
	}
	return h.results[h.order[len(h.order)-1]], true
}

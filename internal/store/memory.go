package store

import (
	"sync"

	"github.com/closerhq/leadboard/internal/report"
)

// MemoryStore holds the single latest report. Every new request bumps a
// generation counter; a response completing under an older generation is
// dropped, so a stale upstream answer can never overwrite a newer one or
// resurrect a reset view.
type MemoryStore struct {
	mu     sync.RWMutex
	latest *report.Report
	gen    uint64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Begin starts a new request generation and returns its token.
func (s *MemoryStore) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

// Complete installs r as the latest report if token still names the current
// generation. It reports whether the report was accepted.
func (s *MemoryStore) Complete(token uint64, r report.Report) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.gen {
		return false
	}
	s.latest = &r
	return true
}

func (s *MemoryStore) Latest() (report.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return report.Report{}, false
	}
	return *s.latest, true
}

// Reset clears the held report and invalidates any in-flight generation.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = nil
	s.gen++
}

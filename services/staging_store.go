package services

import "sync"

// StagingStore holds at most one classified candidate per user, pending
// confirmation. A new classification overwrites the previous slot; Take is an
// atomic check-and-clear so a retried confirm cannot persist twice.
type StagingStore struct {
	mu      sync.Mutex
	pending map[uint]*Candidate
}

func NewStagingStore() *StagingStore {
	return &StagingStore{pending: make(map[uint]*Candidate)}
}

// Put stages a candidate. Last classification wins; there is no queue.
func (s *StagingStore) Put(userID uint, c *Candidate) {
	s.mu.Lock()
	s.pending[userID] = c
	s.mu.Unlock()
}

// Peek returns the staged candidate without consuming it.
func (s *StagingStore) Peek(userID uint) (*Candidate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.pending[userID]
	return c, ok
}

// Take removes and returns the staged candidate. The caller owns persisting
// it; a second Take reports an empty slot.
func (s *StagingStore) Take(userID uint) (*Candidate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.pending[userID]
	if ok {
		delete(s.pending, userID)
	}
	return c, ok
}

// Discard clears the slot without persisting. Clearing an empty slot is fine.
func (s *StagingStore) Discard(userID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[userID]
	delete(s.pending, userID)
	return ok
}

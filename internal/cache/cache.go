// Package cache provides the in-memory, time-bounded result store.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL is the validity window for cached page content.
const DefaultTTL = 24 * time.Hour

// Clock returns the current time (injected for tests).
type Clock interface {
	Now() time.Time
}

type entry struct {
	content   string
	fetchedAt time.Time
}

// Store maps raw URL strings to rendered Markdown. Keys are the exact
// caller-supplied strings; no normalization is performed, so distinct
// spellings of the same resource are distinct entries. Entries expire
// passively: nothing evicts them until a Get observes they are stale.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	clock   Clock
}

// New constructs a Store. A non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration, clock Clock) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		clock:   clock,
	}
}

// Get returns the cached content for url, treating expired entries as absent.
// Stale entries are dropped on observation.
func (s *Store) Get(url string) (string, bool) {
	s.mu.RLock()
	e, ok := s.entries[url]
	s.mu.RUnlock()
	if !ok {
		return "", false
	}
	if s.clock.Now().Sub(e.fetchedAt) >= s.ttl {
		s.mu.Lock()
		// Re-check under the write lock; a concurrent Put may have refreshed it.
		if cur, still := s.entries[url]; still && cur.fetchedAt.Equal(e.fetchedAt) {
			delete(s.entries, url)
		}
		s.mu.Unlock()
		return "", false
	}
	return e.content, true
}

// Put unconditionally overwrites any existing entry for that exact URL string.
// Concurrent writers race with last-write-wins semantics.
func (s *Store) Put(url, content string) {
	now := s.clock.Now()
	s.mu.Lock()
	s.entries[url] = entry{content: content, fetchedAt: now}
	s.mu.Unlock()
}

// Len reports the number of resident entries, stale ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

package limiters

import (
	"context"
	"sync"
	"time"
)

// maxTrackedClients bounds map growth; expired records are pruned once
// the map passes this size.
const maxTrackedClients = 5000

type attemptRecord struct {
	count       int
	lastFailure time.Time
}

// MemoryStore is an in-process attempt store. All operations on the map
// are serialized behind one mutex; the contention profile of a login
// endpoint does not justify sharding. State does not survive a process
// restart — a documented limitation, not a bug.
type MemoryStore struct {
	mu      sync.Mutex
	window  time.Duration
	records map[string]attemptRecord
	now     func() time.Time
}

// NewMemoryStore creates a MemoryStore with the given reset window.
func NewMemoryStore(window time.Duration) *MemoryStore {
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &MemoryStore{
		window:  window,
		records: make(map[string]attemptRecord),
		now:     time.Now,
	}
}

// SetClock overrides the store's clock. Test hook; not safe to call
// concurrently with store operations.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.now = now
}

// RecordFailure increments the counter for clientID and refreshes its
// window. A record older than the window starts over at 1 so a client
// cannot inherit forgotten failures.
func (s *MemoryStore) RecordFailure(_ context.Context, clientID string) (int, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[clientID]
	if !ok || now.Sub(rec.lastFailure) > s.window {
		rec = attemptRecord{}
	}
	rec.count++
	rec.lastFailure = now
	s.records[clientID] = rec

	if len(s.records) > maxTrackedClients {
		s.pruneLocked(now)
	}

	return rec.count, nil
}

// Count returns the live failure count, deleting expired records on read.
func (s *MemoryStore) Count(_ context.Context, clientID string) (int, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[clientID]
	if !ok {
		return 0, nil
	}
	if now.Sub(rec.lastFailure) > s.window {
		delete(s.records, clientID)
		return 0, nil
	}
	return rec.count, nil
}

// Reset deletes the record unconditionally.
func (s *MemoryStore) Reset(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, clientID)
	return nil
}

func (s *MemoryStore) pruneLocked(now time.Time) {
	for key, rec := range s.records {
		if now.Sub(rec.lastFailure) > s.window {
			delete(s.records, key)
		}
	}
}

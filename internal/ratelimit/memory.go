package ratelimit

import (
	"context"
	"sync"
	"time"
)

const janitorInterval = 5 * time.Minute

type window struct {
	count int
	reset time.Time
}

// MemoryStore is the in-process Store: a mutex-guarded map of windows with a
// janitor goroutine that evicts expired entries so idle clients don't leak
// memory. It is the reference single-process design.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
	stop    chan struct{}
}

// NewMemoryStore returns a MemoryStore with its janitor running. Call Stop
// when the store is no longer needed.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		windows: make(map[string]*window),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go s.janitor(janitorInterval)
	return s
}

func (s *MemoryStore) Incr(_ context.Context, key string, windowDur time.Duration) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, ok := s.windows[key]
	if !ok || !now.Before(w.reset) {
		w = &window{reset: now.Add(windowDur)}
		s.windows[key] = w
	}
	w.count++
	return w.count, w.reset, nil
}

func (s *MemoryStore) Peek(_ context.Context, key string) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || !s.now().Before(w.reset) {
		return 0, time.Time{}, nil
	}
	return w.count, w.reset, nil
}

// Stop terminates the janitor goroutine.
func (s *MemoryStore) Stop() {
	close(s.stop)
}

func (s *MemoryStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.evictExpired()
		case <-s.stop:
			return
		}
	}
}

func (s *MemoryStore) evictExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, w := range s.windows {
		if !now.Before(w.reset) {
			delete(s.windows, key)
		}
	}
}

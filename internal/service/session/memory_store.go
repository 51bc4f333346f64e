package session

import (
	"context"
	"sync"
	"time"

	"github.com/kapu/social-growth-advisor/internal/domain"
	"go.uber.org/zap"
)

type memoryEntry struct {
	state     domain.SessionState
	expiresAt time.Time
}

// MemoryStore is a process-local Store. Expired sessions are swept periodically.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
}

func NewMemoryStore(ttl, sweepEvery time.Duration, logger *zap.Logger) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*memoryEntry),
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}
	if sweepEvery > 0 {
		go s.sweepLoop(sweepEvery)
	}
	return s
}

func (s *MemoryStore) Kind() string {
	return "memory"
}

func (s *MemoryStore) Get(_ context.Context, id string) (*domain.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok || s.now().After(entry.expiresAt) {
		return &domain.SessionState{}, nil
	}
	state := entry.state
	return &state, nil
}

func (s *MemoryStore) Update(_ context.Context, id string, fn MutateFunc) (*domain.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var state domain.SessionState
	if entry, ok := s.entries[id]; ok && !now.After(entry.expiresAt) {
		state = entry.state
	}

	if err := fn(&state); err != nil {
		return nil, err
	}
	state.UpdatedAt = now

	s.entries[id] = &memoryEntry{state: state, expiresAt: now.Add(s.ttl)}
	out := state
	return &out, nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stopCh) })
	return nil
}

func (s *MemoryStore) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			if removed := s.sweep(); removed > 0 {
				s.logger.Debug("Expired sessions swept", zap.Int("removed", removed))
			}
		}
	}
}

func (s *MemoryStore) sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/fjod/go_travel/checkout-service/internal/wizard"
)

const (
	// DefaultTTL is how long an untouched session lives
	DefaultTTL = 30 * time.Minute

	// CleanupInterval is how often the background cleanup runs
	CleanupInterval = 30 * time.Second
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore implements Store with in-memory storage
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

// NewMemoryStore creates a store whose sessions expire ttl after their
// last update.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &MemoryStore{
		sessions:    make(map[string]*entry),
		ttl:         ttl,
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}

	// Start background cleanup goroutine
	s.wg.Add(1)
	go s.cleanupLoop(CleanupInterval)

	return s
}

// cleanupLoop periodically drops expired sessions
func (s *MemoryStore) cleanupLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expireSessions()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *MemoryStore) expireSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, e := range s.sessions {
		if !now.Before(e.expiresAt) {
			delete(s.sessions, id)
		}
	}
}

func (s *MemoryStore) Create(_ context.Context, c *wizard.Checkout) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal checkout failed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.sessions[c.ID()]; ok && s.now().Before(e.expiresAt) {
		return ErrSessionExists
	}
	s.sessions[c.ID()] = &entry{data: data, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*wizard.Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.live(id)
	if err != nil {
		return nil, err
	}
	return restore(e.data)
}

func (s *MemoryStore) Update(_ context.Context, id string, fn func(*wizard.Checkout) error) (*wizard.Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.live(id)
	if err != nil {
		return nil, err
	}
	c, err := restore(e.data)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal checkout failed: %w", err)
	}
	e.data = data
	e.expiresAt = s.now().Add(s.ttl)
	return c, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

// Close stops the background cleanup and waits for it to finish
func (s *MemoryStore) Close() error {
	close(s.stopCleanup)
	s.wg.Wait()
	return nil
}

// live returns the unexpired entry for id. Callers hold s.mu.
func (s *MemoryStore) live(id string) (*entry, error) {
	e, ok := s.sessions[id]
	if !ok || !s.now().Before(e.expiresAt) {
		return nil, ErrSessionNotFound
	}
	return e, nil
}

func restore(data []byte) (*wizard.Checkout, error) {
	c, err := wizard.Restore(data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal checkout failed: %w", err)
	}
	return c, nil
}

package session

import (
	"agenda/config"
	"agenda/infras/metrics"
	"agenda/internal/domains/dialogue/model"
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog/log"
)

// MemoryStore is a bounded LRU of drafts. A draft expires ttl after its last
// write; the least recently used one is dropped when capacity is reached.
type MemoryStore struct {
	mu      sync.Mutex
	drafts  *expirable.LRU[string, model.Draft]
	metrics *metrics.Metrics
	// clearing holds the session Clear is removing; its eviction callback is not an eviction.
	clearing atomic.Pointer[string]
}

func NewMemoryStore(capacity int, ttl time.Duration, m *metrics.Metrics) *MemoryStore {
	store := &MemoryStore{metrics: m}
	store.drafts = expirable.NewLRU[string, model.Draft](capacity, store.onEvict, ttl)

	return store
}

func (s *MemoryStore) onEvict(sessionID string, _ model.Draft) {
	if clearing := s.clearing.Load(); clearing != nil && *clearing == sessionID {
		return
	}

	s.metrics.ObserveEviction()
	log.Debug().Str("session", sessionID).Msg("session draft evicted")
}

func (s *MemoryStore) Set(_ context.Context, sessionID string, partial model.Draft) {
	if sessionID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, _ := s.drafts.Get(sessionID)
	merged := current.Merge(partial)
	s.drafts.Add(sessionID, merged)

	s.metrics.ObserveSession(config.SessionBackendMemory, operationSet)
	logMutation(config.SessionBackendMemory, operationSet, sessionID, merged)
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) model.Draft {
	if sessionID == "" {
		return model.Draft{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.ObserveSession(config.SessionBackendMemory, operationGet)

	draft, _ := s.drafts.Get(sessionID)

	return draft
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) {
	if sessionID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearing.Store(&sessionID)
	s.drafts.Remove(sessionID)
	s.clearing.Store(nil)

	s.metrics.ObserveSession(config.SessionBackendMemory, operationClear)
	logMutation(config.SessionBackendMemory, operationClear, sessionID, model.Draft{})
}

// Len reports how many drafts are held.
func (s *MemoryStore) Len() int {
	return s.drafts.Len()
}

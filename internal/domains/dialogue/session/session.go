package session

import (
	"agenda/config"
	"agenda/infras/metrics"
	"agenda/internal/domains/dialogue/model"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	operationSet   = "set"
	operationGet   = "get"
	operationClear = "clear"
)

// Store keeps one booking draft per session. Set merges the non-zero fields of
// partial into the stored draft, Get returns an empty draft when nothing is
// stored. Every method is a no-op for an empty session id and never fails:
// storage errors are logged and the dialogue falls back to platform contexts.
type Store interface {
	Set(ctx context.Context, sessionID string, partial model.Draft)
	Get(ctx context.Context, sessionID string) model.Draft
	Clear(ctx context.Context, sessionID string)
}

// New picks the backend configured in SESSION_BACKEND.
func New(cfg *config.Config, client *redis.Client, m *metrics.Metrics) Store {
	ttl := time.Duration(cfg.Session.TTLSeconds) * time.Second

	if cfg.Session.Backend == config.SessionBackendRedis {
		log.Info().Dur("ttl", ttl).Msg("Using redis session store")

		return NewRedisStore(client, ttl, m)
	}

	log.Info().Int("capacity", cfg.Session.Capacity).Dur("ttl", ttl).Msg("Using in-memory session store")

	return NewMemoryStore(cfg.Session.Capacity, ttl, m)
}

func logMutation(backend, operation, sessionID string, draft model.Draft) {
	log.Debug().
		Str("backend", backend).
		Str("operation", operation).
		Str("session", sessionID).
		Strs("keys", draft.Keys()).
		Msg("session draft changed")
}

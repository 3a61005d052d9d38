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

const keyPrefix = "session:"

// RedisStore keeps each draft in a hash so merges are a single HSET. The key
// expires ttl after its last write.
type RedisStore struct {
	client  *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
}

func NewRedisStore(client *redis.Client, ttl time.Duration, m *metrics.Metrics) *RedisStore {
	return &RedisStore{
		client:  client,
		ttl:     ttl,
		metrics: m,
	}
}

func (s *RedisStore) Set(ctx context.Context, sessionID string, partial model.Draft) {
	if sessionID == "" {
		return
	}

	fields := partial.Fields()
	if len(fields) == 0 {
		return
	}

	key := keyPrefix + sessionID

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fields)

		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("session", sessionID).Msg("failed to save session draft")

		return
	}

	s.metrics.ObserveSession(config.SessionBackendRedis, operationSet)
	logMutation(config.SessionBackendRedis, operationSet, sessionID, partial)
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) model.Draft {
	var draft model.Draft

	if sessionID == "" {
		return draft
	}

	s.metrics.ObserveSession(config.SessionBackendRedis, operationGet)

	if err := s.client.HGetAll(ctx, keyPrefix+sessionID).Scan(&draft); err != nil {
		log.Error().Err(err).Str("session", sessionID).Msg("failed to read session draft")

		return model.Draft{}
	}

	return draft
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}

	if err := s.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		log.Error().Err(err).Str("session", sessionID).Msg("failed to clear session draft")

		return
	}

	s.metrics.ObserveSession(config.SessionBackendRedis, operationClear)
	logMutation(config.SessionBackendRedis, operationClear, sessionID, model.Draft{})
}

package session_test

import (
	"agenda/config"
	"agenda/infras/metrics"
	"agenda/internal/domains/dialogue/model"
	"agenda/internal/domains/dialogue/session"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*session.RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return session.NewRedisStore(client, ttl, metrics.New(metrics.NewRegistry())), mr
}

func stores(t *testing.T) map[string]session.Store {
	t.Helper()

	redisStore, _ := newRedisStore(t, time.Hour)

	return map[string]session.Store{
		"memory": session.NewMemoryStore(100, time.Hour, metrics.New(metrics.NewRegistry())),
		"redis":  redisStore,
	}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name+" merges partial drafts", func(t *testing.T) {
			store.Set(ctx, "s1", model.Draft{DoctorID: 3})
			store.Set(ctx, "s1", model.Draft{ScheduleID: 42, ScheduleTime: "09:00:00", ScheduleDate: "2026-10-18"})
			store.Set(ctx, "s1", model.Draft{PatientName: "Maria"})

			assert.Equal(t, model.Draft{
				DoctorID:     3,
				ScheduleID:   42,
				ScheduleTime: "09:00:00",
				ScheduleDate: "2026-10-18",
				PatientName:  "Maria",
			}, store.Get(ctx, "s1"))
		})

		t.Run(name+" unknown session is empty", func(t *testing.T) {
			assert.True(t, store.Get(ctx, "nobody").IsEmpty())
		})

		t.Run(name+" clear removes the draft", func(t *testing.T) {
			store.Set(ctx, "s2", model.Draft{DoctorID: 1})
			store.Clear(ctx, "s2")

			assert.True(t, store.Get(ctx, "s2").IsEmpty())
		})

		t.Run(name+" sessions are isolated", func(t *testing.T) {
			store.Set(ctx, "a", model.Draft{PatientName: "Ana"})
			store.Set(ctx, "b", model.Draft{PatientName: "Bia"})

			assert.Equal(t, "Ana", store.Get(ctx, "a").PatientName)
			assert.Equal(t, "Bia", store.Get(ctx, "b").PatientName)
		})

		t.Run(name+" empty session id is a no-op", func(t *testing.T) {
			assert.NotPanics(t, func() {
				store.Set(ctx, "", model.Draft{DoctorID: 1})
				store.Clear(ctx, "")
			})
			assert.True(t, store.Get(ctx, "").IsEmpty())
		})
	}
}

func TestMemoryStoreEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore(2, time.Hour, nil)

	store.Set(ctx, "first", model.Draft{DoctorID: 1})
	store.Set(ctx, "second", model.Draft{DoctorID: 2})
	_ = store.Get(ctx, "first")
	store.Set(ctx, "third", model.Draft{DoctorID: 3})

	assert.Equal(t, 2, store.Len())
	assert.Equal(t, int64(1), store.Get(ctx, "first").DoctorID)
	assert.True(t, store.Get(ctx, "second").IsEmpty())
	assert.Equal(t, int64(3), store.Get(ctx, "third").DoctorID)
}

func TestMemoryStoreExpires(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore(10, 50*time.Millisecond, nil)

	store.Set(ctx, "s", model.Draft{DoctorID: 1})

	assert.Eventually(t, func() bool {
		return store.Get(ctx, "s").IsEmpty()
	}, 2*time.Second, 20*time.Millisecond)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore(1000, time.Hour, nil)

	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(2)

		go func(i int) {
			defer wg.Done()

			id := fmt.Sprintf("s-%d", i)
			store.Set(ctx, id, model.Draft{DoctorID: int64(i + 1)})
			store.Set(ctx, id, model.Draft{PatientName: id})
		}(i)

		go func() {
			defer wg.Done()

			store.Set(ctx, "shared", model.Draft{DoctorID: 9})
			_ = store.Get(ctx, "shared")
		}()
	}

	wg.Wait()

	for i := range 50 {
		id := fmt.Sprintf("s-%d", i)
		assert.Equal(t, model.Draft{DoctorID: int64(i + 1), PatientName: id}, store.Get(ctx, id))
	}

	assert.Equal(t, int64(9), store.Get(ctx, "shared").DoctorID)
}

func TestRedisStoreRefreshesTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, time.Minute)

	store.Set(ctx, "s", model.Draft{DoctorID: 1})
	assert.Equal(t, time.Minute, mr.TTL("session:s"))

	mr.FastForward(30 * time.Second)
	store.Set(ctx, "s", model.Draft{PatientName: "Maria"})
	assert.Equal(t, time.Minute, mr.TTL("session:s"))

	mr.FastForward(61 * time.Second)
	assert.True(t, store.Get(ctx, "s").IsEmpty())
}

func TestRedisStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, time.Minute)

	mr.Close()

	assert.NotPanics(t, func() {
		store.Set(ctx, "s", model.Draft{DoctorID: 1})
		store.Clear(ctx, "s")
	})
	assert.True(t, store.Get(ctx, "s").IsEmpty())
}

func TestNewSelectsBackend(t *testing.T) {
	cfg := &config.Config{}
	cfg.Session.Capacity = 10
	cfg.Session.TTLSeconds = 60

	_, isMemory := session.New(cfg, nil, nil).(*session.MemoryStore)
	assert.True(t, isMemory)

	cfg.Session.Backend = config.SessionBackendRedis

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	_, isRedis := session.New(cfg, client, nil).(*session.RedisStore)
	require.True(t, isRedis)
}

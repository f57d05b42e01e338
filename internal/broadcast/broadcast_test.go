package broadcast

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/store"
)

type fakeRedis struct {
	mu        sync.Mutex
	published []string
	hash      map[string]string
	kv        map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{hash: map[string]string{}, kv: map[string]string{}}
}

func (f *fakeRedis) Publish(_ context.Context, channel string, message interface{}) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, string(message.([]byte)))
	return redis.NewIntResult(1, nil)
}

func (f *fakeRedis) HSet(_ context.Context, key string, values ...interface{}) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := 0; i+1 < len(values); i += 2 {
		f.hash[values[i].(string)] = string(values[i+1].([]byte))
	}
	return redis.NewIntResult(int64(len(values)/2), nil)
}

func (f *fakeRedis) HDel(_ context.Context, key string, fields ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, field := range fields {
		delete(f.hash, field)
	}
	return redis.NewIntResult(int64(len(fields)), nil)
}

func (f *fakeRedis) HGetAll(_ context.Context, key string) *redis.MapStringStringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.hash))
	for k, v := range f.hash {
		out[k] = v
	}
	return redis.NewMapStringStringResult(out, nil)
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.kv[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kv[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) hashLen() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.hash)
}

func (f *fakeRedis) publishedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.published)
}

func TestRelayMirrorsHistoryAndPublishesEvents(t *testing.T) {
	rdb := newFakeRedis()
	st := store.New()
	relay := NewRelay(rdb, st, "terminal-1")
	st.Subscribe(relay.HandleEvent)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go relay.Run(ctx)

	st.AddOrderHistory(models.OrderHistoryRecord{ID: "r1", TableNumber: "3", Total: 980})
	require.Eventually(t, func() bool { return rdb.hashLen() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, st.DeleteOrderHistory("r1"))
	require.Eventually(t, func() bool { return rdb.hashLen() == 0 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return rdb.publishedCount() == 2 }, time.Second, 5*time.Millisecond)

	var env envelope
	require.NoError(t, json.Unmarshal([]byte(rdb.published[0]), &env))
	assert.Equal(t, "terminal-1", env.Instance)
	assert.Equal(t, store.EventOrderHistoryAdded, env.Event.Kind)
}

func TestHistorySourceFeedsPollerMerge(t *testing.T) {
	rdb := newFakeRedis()
	rec := models.OrderHistoryRecord{ID: "r9", TableNumber: "5", Items: []models.OrderHistoryItem{{Name: "緑茶", Quantity: 2, Price: 200}}, Total: 400}
	body, err := json.Marshal(rec)
	require.NoError(t, err)
	rdb.hash["r9"] = string(body)
	rdb.hash["broken"] = "{not json"

	records, err := NewRedisHistorySource(rdb).Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec.Total, records[0].Total)
	assert.Equal(t, "緑茶", records[0].Items[0].Name)
}

func TestConfirmationCacheRoundTrip(t *testing.T) {
	rdb := newFakeRedis()
	cache := NewConfirmationCache(rdb, time.Hour)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "1", "key-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Put(ctx, "1", "key-1", &models.TableOrder{TotalAmount: 3140}))

	got, ok, err := cache.Get(ctx, "1", "key-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(3140), got.TotalAmount)

	_, ok, err = cache.Get(ctx, "2", "key-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

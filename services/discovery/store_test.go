package discovery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesnav/models"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, 24*time.Hour), mr
}

func TestRedisStore_GetMissing(t *testing.T) {
	store, _ := newRedisStore(t)
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = store.Update(context.Background(), "missing", func(*models.DiscoverySession) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_SaveAppliesTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	require.NoError(t, store.Save(ctx, &models.DiscoverySession{ID: "s1"}))
	assert.Equal(t, 24*time.Hour, mr.TTL(sessionPrefix+"s1"))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.NotNil(t, got.Answers)

	mr.FastForward(25 * time.Hour)
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_UpdateRefreshesTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)
	require.NoError(t, store.Save(ctx, &models.DiscoverySession{ID: "s1"}))
	mr.FastForward(20 * time.Hour)

	got, err := store.Update(ctx, "s1", func(sess *models.DiscoverySession) error {
		sess.SelectedServices = []string{"w001"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"w001"}, got.SelectedServices)
	assert.Equal(t, 24*time.Hour, mr.TTL(sessionPrefix+"s1"))
}

func TestRedisStore_UpdateErrorLeavesSession(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)
	require.NoError(t, store.Save(ctx, &models.DiscoverySession{ID: "s1", SelectedServices: []string{"w001"}}))

	boom := errors.New("boom")
	_, err := store.Update(ctx, "s1", func(sess *models.DiscoverySession) error {
		sess.SelectedServices = nil
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"w001"}, got.SelectedServices)
}

func TestRedisStore_ConcurrentUpdatesAreNotLost(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)
	require.NoError(t, store.Save(ctx, &models.DiscoverySession{ID: "s1"}))

	const writers = 6
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for {
				_, err := store.Update(ctx, "s1", func(sess *models.DiscoverySession) error {
					if sess.Assets == nil {
						sess.Assets = map[string]bool{}
					}
					sess.Assets[fmt.Sprintf("asset-%d", i)] = true
					return nil
				})
				if errors.Is(err, ErrSessionBusy) {
					continue
				}
				assert.NoError(t, err)
				return
			}
		}(i)
	}
	wg.Wait()

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, got.Assets, writers)
}

func TestMemoryStore_ConcurrentUpdatesAreNotLost(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Save(ctx, &models.DiscoverySession{ID: "s1"}))

	const writers = 6
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.Update(ctx, "s1", func(sess *models.DiscoverySession) error {
				time.Sleep(time.Millisecond)
				if sess.Assets == nil {
					sess.Assets = map[string]bool{}
				}
				sess.Assets[fmt.Sprintf("asset-%d", i)] = true
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, got.Assets, writers)
}

package cachestore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCacheStore(t *testing.T, cs CacheStore) {
	assert := assert.New(t)
	ctx := context.Background()

	val, err := cs.Get(ctx, "complaint_status", "article/a1/u1")
	assert.NoError(err)
	assert.Empty(val)

	assert.NoError(cs.Set(ctx, "complaint_status", "article/a1/u1", "665f1c2e9b1e8a0012345678"))
	val, err = cs.Get(ctx, "complaint_status", "article/a1/u1")
	assert.NoError(err)
	assert.Equal("665f1c2e9b1e8a0012345678", val)

	// names are separate namespaces
	val, err = cs.Get(ctx, "other", "article/a1/u1")
	assert.NoError(err)
	assert.Empty(val)

	assert.NoError(cs.Purge(ctx, "complaint_status", "article/a1/u1"))
	val, err = cs.Get(ctx, "complaint_status", "article/a1/u1")
	assert.NoError(err)
	assert.Empty(val)

	// purging a missing key is fine
	assert.NoError(cs.Purge(ctx, "complaint_status", "missing"))
}

func TestMemCacheStoreBasics(t *testing.T) {
	testCacheStore(t, NewMemCacheStore(time.Minute))
}

func TestMemCacheStoreExpiry(t *testing.T) {
	ctx := context.Background()
	cs := NewMemCacheStore(10 * time.Millisecond)
	require.NoError(t, cs.Set(ctx, "n", "k", "v"))
	time.Sleep(20 * time.Millisecond)
	val, err := cs.Get(ctx, "n", "k")
	require.NoError(t, err)
	require.Empty(t, val)
}

func TestRedisCacheStoreBasics(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("live test, set TEST_REDIS_URL to run against redis")
	}
	cs, err := NewRedisCacheStore(context.Background(), url, time.Minute)
	require.NoError(t, err)
	defer cs.Close()
	testCacheStore(t, cs)
}

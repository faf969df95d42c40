package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/GuiTheDevv/shipping-management/internal/config"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledGuardAllowsEverything(t *testing.T) {
	guard, err := NewUploadGuard(nil, config.Config{})
	require.NoError(t, err)
	assert.Nil(t, guard)
	assert.False(t, guard.Enabled())

	res, err := guard.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	token, ok, err := guard.TryLock(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, token)
	assert.NoError(t, guard.Release(context.Background(), token))
	assert.Nil(t, ingestLocker(guard))
}

func TestNilClientsRefuse(t *testing.T) {
	var lock *ReloadLock
	_, _, err := lock.TryLock(context.Background())
	assert.Error(t, err)
	assert.NoError(t, lock.Release(context.Background(), "t"))

	var bucket *TokenBucket
	res, err := bucket.Allow(context.Background(), "k", 1, 1)
	assert.Error(t, err)
	assert.False(t, res.Allowed)
}

func TestNewReloadLockValidates(t *testing.T) {
	lock, err := NewReloadLock(nil, keyUploadLock, time.Second)
	require.NoError(t, err)
	assert.Nil(t, lock)

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	_, err = NewReloadLock(client, "", time.Second)
	assert.Error(t, err)
	_, err = NewReloadLock(client, keyUploadLock, 0)
	assert.Error(t, err)

	lock, err = NewReloadLock(client, keyUploadLock, time.Minute)
	require.NoError(t, err)
	assert.NoError(t, lock.Release(context.Background(), ""))
}

func TestBuildResult(t *testing.T) {
	denied := buildResult(false, 0.5, 1_000, 0.25, 3)
	assert.False(t, denied.Allowed)
	assert.Equal(t, 2*time.Second, denied.RetryAfter)
	assert.Equal(t, 3, denied.Limit)
	assert.Equal(t, time.UnixMilli(1_000).Add(2*time.Second), denied.ResetTime)

	allowed := buildResult(true, 2.7, 1_000, 0.25, 3)
	assert.True(t, allowed.Allowed)
	assert.Equal(t, 2, allowed.Remaining)
	assert.Zero(t, allowed.RetryAfter)
}

func TestDefaultBucketTTL(t *testing.T) {
	assert.Equal(t, time.Second, defaultBucketTTL(0, 1))
	assert.Equal(t, 30*time.Second, defaultBucketTTL(0.2, 3))
	assert.Equal(t, time.Second, defaultBucketTTL(100, 1))
}

func TestCasts(t *testing.T) {
	assert.Equal(t, int64(1), castToInt(int64(1)))
	assert.Equal(t, int64(7), castToInt("7"))
	assert.Equal(t, 1.5, castToFloat("1.5"))
	assert.Equal(t, 0.0, castToFloat(nil))
}

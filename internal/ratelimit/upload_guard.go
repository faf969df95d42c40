package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GuiTheDevv/shipping-management/internal/config"
	redis "github.com/redis/go-redis/v9"
)

const (
	keyUploadLock   = "shipments:ingest:lock"
	keyUploadBucket = "shipments:upload:client:%s"

	defaultLockTTL = 10 * time.Minute
)

// UploadGuard serialises store reloads and throttles upload requests per
// client. A nil guard allows everything.
type UploadGuard struct {
	bucket *TokenBucket
	lock   *ReloadLock

	rate  float64
	burst int
}

func NewUploadGuard(client redis.UniversalClient, cfg config.Config) (*UploadGuard, error) {
	if client == nil {
		return nil, nil
	}

	upload := cfg.Upload
	if upload.RateLimit < 0 || upload.RateBurst < 0 {
		return nil, errors.New("upload rate limit must not be negative")
	}
	lockTTL := time.Duration(upload.LockTTLSeconds) * time.Second
	if lockTTL <= 0 {
		lockTTL = defaultLockTTL
	}

	lock, err := NewReloadLock(client, keyUploadLock, lockTTL)
	if err != nil {
		return nil, err
	}

	return &UploadGuard{
		bucket: NewTokenBucket(client),
		lock:   lock,
		rate:   upload.RateLimit,
		burst:  upload.RateBurst,
	}, nil
}

func (g *UploadGuard) Enabled() bool {
	return g != nil && g.lock != nil
}

func (g *UploadGuard) rateLimited() bool {
	return g.Enabled() && g.bucket != nil && g.rate > 0 && g.burst > 0
}

// Allow spends one upload token for clientKey.
func (g *UploadGuard) Allow(ctx context.Context, clientKey string) (*RateLimitResult, error) {
	if !g.rateLimited() {
		return &RateLimitResult{Allowed: true}, nil
	}
	clientKey = strings.TrimSpace(clientKey)
	if clientKey == "" {
		clientKey = "anonymous"
	}
	return g.bucket.Allow(ctx, fmt.Sprintf(keyUploadBucket, clientKey), g.rate, g.burst)
}

func (g *UploadGuard) TryLock(ctx context.Context) (string, bool, error) {
	if !g.Enabled() {
		return "", true, nil
	}
	return g.lock.TryLock(ctx)
}

func (g *UploadGuard) Release(ctx context.Context, token string) error {
	if !g.Enabled() {
		return nil
	}
	return g.lock.Release(ctx, token)
}

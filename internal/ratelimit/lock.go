package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

// ErrLockExpired reports a release after the key expired or changed hands,
// which means a reload ran longer than the lock ttl.
var ErrLockExpired = errors.New("reload_lock_expired")

// Deletes KEYS[1] only while it still holds ARGV[1]; returns 1 on delete.
const reloadUnlockScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

// ReloadLock is one Redis key that at most one instance holds while it
// replaces the shipment store.
type ReloadLock struct {
	client redis.UniversalClient
	unlock *redis.Script
	key    string
	ttl    time.Duration
}

func NewReloadLock(client redis.UniversalClient, key string, ttl time.Duration) (*ReloadLock, error) {
	if client == nil {
		return nil, nil
	}
	if key == "" {
		return nil, errors.New("reload lock key is empty")
	}
	if ttl <= 0 {
		return nil, errors.New("reload lock ttl must be positive")
	}
	return &ReloadLock{
		client: client,
		unlock: redis.NewScript(reloadUnlockScript),
		key:    key,
		ttl:    ttl,
	}, nil
}

// TryLock claims the key with a fresh token. ok is false when another
// holder still owns it.
func (l *ReloadLock) TryLock(ctx context.Context) (token string, ok bool, err error) {
	if l == nil {
		return "", false, errors.New("reload lock not configured")
	}
	token = uuid.NewString()
	ok, err = l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil || !ok {
		return "", false, err
	}
	return token, true, nil
}

func (l *ReloadLock) Release(ctx context.Context, token string) error {
	if l == nil || token == "" {
		return nil
	}
	deleted, err := l.unlock.Run(ctx, l.client, []string{l.key}, token).Int64()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrLockExpired
	}
	return nil
}

// Package lockx implements a single-holder Redis lock. The watering
// worker uses it so only one instance runs a scan at a time.
package lockx

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Release only deletes the key when it still holds our token, so an
// expired lock taken over by another holder is never clobbered.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Lock is a held lock. The token proves ownership on release.
type Lock struct {
	Key   string
	Token string
	TTL   time.Duration
}

// Acquire tries to take the lock. The second return is false when
// another holder already has it; that is not an error.
func Acquire(ctx context.Context, client *redis.Client, key string, ttl time.Duration) (*Lock, bool, error) {
	if client == nil {
		return nil, false, errors.New("redis client not initialized")
	}
	if ttl <= 0 {
		return nil, false, errors.New("ttl must be > 0")
	}
	lock := &Lock{Key: key, Token: uuid.NewString(), TTL: ttl}
	ok, err := client.SetNX(ctx, lock.Key, lock.Token, lock.TTL).Result()
	if err != nil || !ok {
		return nil, false, err
	}
	return lock, true, nil
}

// Release drops the lock if we still own it. Releasing an already
// expired lock is a no-op.
func Release(ctx context.Context, client *redis.Client, lock *Lock) error {
	if client == nil {
		return errors.New("redis client not initialized")
	}
	if lock == nil {
		return errors.New("lock is nil")
	}
	return releaseScript.Run(ctx, client, []string{lock.Key}, lock.Token).Err()
}

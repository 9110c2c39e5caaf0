package lock

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/jaevor/go-nanoid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// renewScript extends the TTL only while the key still holds our token.
var renewScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// Connect accepts either a redis:// URL or a bare host:port.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	var client *redis.Client
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		opt, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: addr})
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

type RedisLocker struct {
	client   *redis.Client
	newToken func() string
}

func NewRedisLocker(client *redis.Client) (*RedisLocker, error) {
	generator, err := nanoid.Standard(21)
	if err != nil {
		return nil, err
	}
	return &RedisLocker{client: client, newToken: generator}, nil
}

// Acquire takes key for ttl and keeps renewing it every ttl/3 until the
// returned release runs. Renewal stops once the key no longer holds our
// token. Payment batches stay unique per (sale_id, role) in the database even
// if the lock is lost, so losing it cannot double count.
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	token := l.newToken()
	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, domain.ErrLockNotAcquired
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go l.renew(key, token, ttl, stop, done)

	var once sync.Once
	return func(ctx context.Context) error {
		once.Do(func() {
			close(stop)
			<-done
		})
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			return fmt.Errorf("release lock %s: %w", key, err)
		}
		return nil
	}, nil
}

func (l *RedisLocker) renew(key, token string, ttl time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	interval := ttl / 3
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			held, err := renewScript.Run(ctx, l.client, []string{key}, token, ttl.Milliseconds()).Int()
			cancel()
			if err != nil {
				slog.Warn("lock renewal failed", "key", key, "error", err)
				continue
			}
			if held == 0 {
				slog.Warn("lock lost before release", "key", key)
				return
			}
		}
	}
}

//go:build integration

package lock

import (
	"context"
	"testing"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestRedisLocker(t *testing.T) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer func() { _ = container.Terminate(ctx) }()

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client, err := Connect(ctx, endpoint)
	require.NoError(t, err)
	defer client.Close()

	locker, err := NewRedisLocker(client)
	require.NoError(t, err)

	release, err := locker.Acquire(ctx, "commission:payments:generate", time.Minute)
	require.NoError(t, err)

	_, err = locker.Acquire(ctx, "commission:payments:generate", time.Minute)
	assert.ErrorIs(t, err, domain.ErrLockNotAcquired)

	require.NoError(t, release(ctx))

	release, err = locker.Acquire(ctx, "commission:payments:generate", time.Minute)
	require.NoError(t, err)
	require.NoError(t, release(ctx))

	t.Run("held past its ttl while not released", func(t *testing.T) {
		const key = "commission:payments:renew"
		release, err := locker.Acquire(ctx, key, 600*time.Millisecond)
		require.NoError(t, err)

		time.Sleep(1500 * time.Millisecond)
		_, err = locker.Acquire(ctx, key, time.Minute)
		assert.ErrorIs(t, err, domain.ErrLockNotAcquired)

		require.NoError(t, release(ctx))
		ttl, err := client.PTTL(ctx, key).Result()
		require.NoError(t, err)
		assert.Equal(t, time.Duration(-2), ttl, "key is gone after release")
	})
}

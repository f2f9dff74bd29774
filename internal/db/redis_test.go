package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRedisOptions(t *testing.T) {
	opts, err := redisOptions("redis://cache:6380/2")
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 5*time.Second, opts.DialTimeout)
	assert.Equal(t, 2*time.Second, opts.ReadTimeout)
	assert.Equal(t, "casefeed-api", opts.ClientName)

	opts, err = redisOptions("redis://cache:6379/0?read_timeout=7s&client_name=worker")
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, opts.ReadTimeout)
	assert.Equal(t, "worker", opts.ClientName)

	_, err = redisOptions("http://cache:6379")
	assert.Error(t, err)
}

func TestNewRedisClientGivesUpOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client, err := NewRedisClient(ctx, "redis://127.0.0.1:1/0", zap.NewNop())
	assert.Nil(t, client)
	assert.Error(t, err)
}

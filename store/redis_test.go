package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/muserec/core"
)

// 需要本地 Redis：MUSEREC_REDIS_ADDR=localhost:6379 go test ./store/...
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("MUSEREC_REDIS_ADDR")
	if addr == "" {
		t.Skip("MUSEREC_REDIS_ADDR not set")
	}

	ctx := context.Background()
	s, err := NewRedisStore(RedisConfig{Addr: addr, DB: 15})
	require.NoError(t, err)
	defer s.Close()

	key := "muserec:test:" + t.Name()
	require.NoError(t, s.Delete(ctx, key))

	_, err = s.Get(ctx, key)
	assert.True(t, core.IsStoreNotFound(err))

	require.NoError(t, s.HSet(ctx, key, map[string][]byte{"a": []byte("1"), "b": []byte("2")}))
	got, err := s.HGetAll(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"a": []byte("1"), "b": []byte("2")}, got)

	require.NoError(t, s.Delete(ctx, key))
}

func TestNewRedisStore_Unreachable(t *testing.T) {
	_, err := NewRedisStore(RedisConfig{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	assert.Error(t, err)
}

package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"assistant-kit/config"
	"assistant-kit/internal/conversation"
	"assistant-kit/internal/model"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory is the default", func(t *testing.T) {
		log, closeFn, err := Open(ctx, "", &config.Config{})
		require.NoError(t, err)
		defer closeFn()
		require.NoError(t, log.Append(ctx, "s", model.HumanTurn("hi")))
	})

	t.Run("redis", func(t *testing.T) {
		s := miniredis.RunT(t)
		cfg := &config.Config{
			Memory: config.MemoryConfig{SessionTTL: "1h"},
			Redis:  config.RedisConfig{Addr: s.Addr(), KeyPrefix: "test:"},
		}
		log, closeFn, err := Open(ctx, BackendRedis, cfg)
		require.NoError(t, err)
		defer closeFn()

		require.NoError(t, log.Append(ctx, "s", model.HumanTurn("hi")))
		require.True(t, s.Exists("test:s"))
	})

	t.Run("redis unreachable", func(t *testing.T) {
		cfg := &config.Config{Redis: config.RedisConfig{Addr: "127.0.0.1:1"}}
		_, _, err := Open(ctx, BackendRedis, cfg)
		require.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, _, err := Open(ctx, "postgres", &config.Config{})
		require.ErrorIs(t, err, conversation.ErrUnknownBackend)
	})

	t.Run("bad ttl", func(t *testing.T) {
		_, _, err := Open(ctx, BackendMemory, &config.Config{Memory: config.MemoryConfig{SessionTTL: "forever"}})
		require.Error(t, err)
	})
}

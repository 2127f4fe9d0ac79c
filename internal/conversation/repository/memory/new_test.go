package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"assistant-kit/internal/conversation"
	"assistant-kit/internal/model"
)

func TestMemoryLog(t *testing.T) {
	ctx := context.Background()
	log := New(10, time.Minute)

	turns, err := log.ReadAll(ctx, "unknown")
	require.NoError(t, err)
	require.Empty(t, turns)

	require.NoError(t, log.Append(ctx, "s1", model.HumanTurn("hello"), model.AssistantTurn("hi")))
	require.NoError(t, log.Append(ctx, "s1", model.HumanTurn("bye")))
	require.NoError(t, log.Append(ctx, "s2", model.HumanTurn("other")))

	turns, err = log.ReadAll(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, turns, 3)
	require.Equal(t, "hello", turns[0].Content)
	require.Equal(t, model.RoleAssistant, turns[1].Role)
	require.Equal(t, "bye", turns[2].Content)

	// Callers cannot mutate the stored log through the returned slice.
	turns[0].Content = "mutated"
	again, _ := log.ReadAll(ctx, "s1")
	require.Equal(t, "hello", again[0].Content)

	require.NoError(t, log.Clear(ctx, "s1"))
	turns, err = log.ReadAll(ctx, "s1")
	require.NoError(t, err)
	require.Empty(t, turns)

	turns, _ = log.ReadAll(ctx, "s2")
	require.Len(t, turns, 1)
}

func TestMemoryLog_Validation(t *testing.T) {
	log := New(0, 0)
	ctx := context.Background()

	require.True(t, errors.Is(log.Append(ctx, "", model.HumanTurn("x")), conversation.ErrEmptySessionID))
	require.True(t, errors.Is(log.Append(ctx, "s", model.Turn{Role: "robot"}), conversation.ErrInvalidTurn))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	require.Error(t, log.Append(cancelled, "s", model.HumanTurn("x")))
}

func TestMemoryLog_Eviction(t *testing.T) {
	ctx := context.Background()
	log := New(1, time.Minute)

	require.NoError(t, log.Append(ctx, "old", model.HumanTurn("a")))
	require.NoError(t, log.Append(ctx, "new", model.HumanTurn("b")))

	turns, err := log.ReadAll(ctx, "old")
	require.NoError(t, err)
	require.Empty(t, turns)
}

func TestMemoryLog_ConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	log := New(10, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = log.Append(ctx, "s", model.HumanTurn("x"))
		}()
	}
	wg.Wait()

	turns, err := log.ReadAll(ctx, "s")
	require.NoError(t, err)
	require.Len(t, turns, 50)
}

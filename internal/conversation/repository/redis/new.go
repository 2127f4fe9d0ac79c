// Package redis stores conversation logs as Redis lists, one key per session.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	goredis "github.com/redis/go-redis/v9"

	"assistant-kit/internal/conversation"
	"assistant-kit/internal/model"
)

const (
	DefaultKeyPrefix = "assistant:history:"
	DefaultTTL       = 24 * time.Hour
)

type implRepository struct {
	client    goredis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

var _ conversation.Log = (*implRepository)(nil)

// New creates a Redis-backed log. Every write refreshes the session TTL.
func New(client goredis.UniversalClient, keyPrefix string, ttl time.Duration) (conversation.Log, error) {
	if client == nil {
		return nil, fmt.Errorf("redis conversation log: client is nil")
	}
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &implRepository{client: client, keyPrefix: keyPrefix, ttl: ttl}, nil
}

func (r *implRepository) key(sessionID string) string {
	return r.keyPrefix + sessionID
}

func (r *implRepository) Append(ctx context.Context, sessionID string, turns ...model.Turn) error {
	if err := conversation.Validate(sessionID, turns); err != nil {
		return err
	}
	if len(turns) == 0 {
		return nil
	}

	values := make([]interface{}, len(turns))
	for i, t := range turns {
		raw, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("redis conversation log: marshal turn: %w", err)
		}
		values[i] = raw
	}

	key := r.key(sessionID)
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, key, values...)
	pipe.Expire(ctx, key, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis conversation log: append: %w", err)
	}
	return nil
}

func (r *implRepository) ReadAll(ctx context.Context, sessionID string) ([]model.Turn, error) {
	if err := conversation.Validate(sessionID, nil); err != nil {
		return nil, err
	}

	raw, err := r.client.LRange(ctx, r.key(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis conversation log: read: %w", err)
	}

	turns := make([]model.Turn, 0, len(raw))
	for _, item := range raw {
		var t model.Turn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			return nil, fmt.Errorf("redis conversation log: decode turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func (r *implRepository) Clear(ctx context.Context, sessionID string) error {
	if err := conversation.Validate(sessionID, nil); err != nil {
		return err
	}
	if err := r.client.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis conversation log: clear: %w", err)
	}
	return nil
}

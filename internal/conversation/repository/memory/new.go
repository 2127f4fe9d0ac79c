// Package memory is the in-process conversation log backend.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"assistant-kit/internal/conversation"
	"assistant-kit/internal/model"
)

const (
	DefaultMaxSessions = 10000
	DefaultTTL         = 24 * time.Hour
)

type session struct {
	mu    sync.Mutex
	turns []model.Turn
}

type implRepository struct {
	mu       sync.Mutex
	sessions *expirable.LRU[string, *session]
}

var _ conversation.Log = (*implRepository)(nil)

// New creates an in-memory log holding at most maxSessions sessions.
// Idle sessions expire after ttl.
func New(maxSessions int, ttl time.Duration) conversation.Log {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &implRepository{
		sessions: expirable.NewLRU[string, *session](maxSessions, nil, ttl),
	}
}

// session returns the entry for id, creating it when create is set.
// Re-adding refreshes the TTL on every write.
func (r *implRepository) session(id string, create bool) *session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions.Get(id)
	if !ok {
		if !create {
			return nil
		}
		s = &session{}
	}
	if create {
		r.sessions.Add(id, s)
	}
	return s
}

func (r *implRepository) Append(ctx context.Context, sessionID string, turns ...model.Turn) error {
	if err := conversation.Validate(sessionID, turns); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.session(sessionID, true)
	s.mu.Lock()
	s.turns = append(s.turns, turns...)
	s.mu.Unlock()
	return nil
}

func (r *implRepository) ReadAll(ctx context.Context, sessionID string) ([]model.Turn, error) {
	if err := conversation.Validate(sessionID, nil); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.session(sessionID, false)
	if s == nil {
		return []model.Turn{}, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Turn, len(s.turns))
	copy(out, s.turns)
	return out, nil
}

func (r *implRepository) Clear(ctx context.Context, sessionID string) error {
	if err := conversation.Validate(sessionID, nil); err != nil {
		return err
	}
	r.mu.Lock()
	r.sessions.Remove(sessionID)
	r.mu.Unlock()
	return nil
}

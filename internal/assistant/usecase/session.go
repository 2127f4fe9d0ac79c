package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"assistant-kit/internal/assistant"
	"assistant-kit/internal/extraction"
)

// NewSession registers a fresh session under a random id.
func (uc *implUseCase) NewSession(ctx context.Context) (assistant.Session, error) {
	s := uc.newSession(uuid.NewString())

	uc.mu.Lock()
	uc.sessions.Add(s.id, s)
	uc.mu.Unlock()

	uc.l.Infof(ctx, "%s.NewSession: %s", LogPrefix, s.id)
	return assistant.Session{ID: s.id, CreatedAt: s.createdAt}, nil
}

func (uc *implUseCase) newSession(id string) *session {
	return &session{
		id:        id,
		createdAt: time.Now().UTC(),
		order:     extraction.NewMemory(uc.l, uc.schema, uc.extractor, uc.log, id+orderLogSuffix),
	}
}

// session returns the live session for id. With AutoCreate an unknown id is
// registered instead of failing.
func (uc *implUseCase) session(id string) (*session, error) {
	if strings.TrimSpace(id) == "" {
		return nil, assistant.ErrEmptySessionID
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if s, ok := uc.sessions.Get(id); ok {
		return s, nil
	}
	if !uc.cfg.AutoCreate {
		return nil, assistant.ErrSessionNotFound
	}
	s := uc.newSession(id)
	uc.sessions.Add(id, s)
	return s, nil
}

// lockSession returns the session for id with its lock held. A caller that
// waited on a session reset in the meantime gets the replacement session
// under AutoCreate, or ErrSessionNotFound otherwise.
func (uc *implUseCase) lockSession(id string) (*session, error) {
	for {
		s, err := uc.session(id)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		if !s.closed {
			return s, nil
		}
		s.mu.Unlock()
		if !uc.cfg.AutoCreate {
			return nil, assistant.ErrSessionNotFound
		}
	}
}

// ResetSession clears both logs and drops the session.
func (uc *implUseCase) ResetSession(ctx context.Context, sessionID string) error {
	s, err := uc.lockSession(sessionID)
	if err != nil {
		return err
	}
	defer s.mu.Unlock()
	return uc.resetLocked(ctx, s)
}

// resetLocked clears the logs of s and marks it closed. s.mu must be held.
func (uc *implUseCase) resetLocked(ctx context.Context, s *session) error {
	if err := s.order.Reset(ctx); err != nil {
		uc.l.Errorf(ctx, "%s.ResetSession: order log: %v", LogPrefix, err)
		return err
	}
	if err := uc.log.Clear(ctx, s.id); err != nil {
		uc.l.Errorf(ctx, "%s.ResetSession: chat log: %v", LogPrefix, err)
		return err
	}

	s.closed = true
	uc.mu.Lock()
	uc.sessions.Remove(s.id)
	uc.mu.Unlock()

	uc.l.Infof(ctx, "%s.ResetSession: %s", LogPrefix, s.id)
	return nil
}

// History reads both conversation logs.
func (uc *implUseCase) History(ctx context.Context, sessionID string) (assistant.HistoryOutput, error) {
	s, err := uc.lockSession(sessionID)
	if err != nil {
		return assistant.HistoryOutput{}, err
	}
	defer s.mu.Unlock()

	chat, err := uc.log.ReadAll(ctx, s.id)
	if err != nil {
		return assistant.HistoryOutput{}, err
	}
	order, err := s.order.History(ctx)
	if err != nil {
		return assistant.HistoryOutput{}, err
	}
	return assistant.HistoryOutput{Chat: chat, Order: order}, nil
}

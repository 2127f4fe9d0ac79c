// Package bench measures turn latency of a completion chain per
// conversation log backend.
package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"assistant-kit/internal/conversation"
	"assistant-kit/internal/metrics"
	"assistant-kit/internal/model"
	"assistant-kit/internal/router"
	"assistant-kit/pkg/llmprovider"
	"assistant-kit/pkg/log"
)

const LogPrefix = "internal.bench"

// Result is the outcome of all runs against one backend.
type Result struct {
	Backend string
	Memory  string
	Runs    int
	Samples []time.Duration
	Stats   Stats
}

// Runner replays a fixture through a completion chain.
type Runner struct {
	l             log.Logger
	completer     llmprovider.Completer
	fixture       Fixture
	template      *router.Template
	memory        Memory
	historyWindow int
	pause         time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithMemory sets how the log is rendered into the prompt. The default is a
// BufferMemory over the history window.
func WithMemory(m Memory) Option {
	return func(r *Runner) { r.memory = m }
}

// WithHistoryWindow renders only the last n turns into the prompt when no
// memory is set.
func WithHistoryWindow(n int) Option {
	return func(r *Runner) { r.historyWindow = n }
}

// WithPause sleeps between turns, like a human typing.
func WithPause(d time.Duration) Option {
	return func(r *Runner) { r.pause = d }
}

// NewRunner parses the prompt of the configured memory and prepares a runner
// for fixture.
func NewRunner(l log.Logger, completer llmprovider.Completer, fixture Fixture, opts ...Option) (*Runner, error) {
	r := &Runner{l: l, completer: completer, fixture: fixture}
	for _, opt := range opts {
		opt(r)
	}
	if r.memory == nil {
		r.memory = NewBufferMemory(r.historyWindow)
	}

	tmpl, err := router.ParseTemplate(r.memory.Prompt())
	if err != nil {
		return nil, err
	}
	r.template = tmpl
	return r, nil
}

// Run seeds a fresh session per run, replays every message and times each
// turn end to end: read history, load memory, complete, append.
func (r *Runner) Run(ctx context.Context, backend string, store conversation.Log, runs int) (Result, error) {
	if runs <= 0 {
		runs = 1
	}
	res := Result{Backend: backend, Memory: r.memory.Name(), Runs: runs}

	for i := 0; i < runs; i++ {
		sessionID := fmt.Sprintf("bench-%s-%s", r.fixture.Name, uuid.NewString())
		if err := r.seed(ctx, store, sessionID); err != nil {
			return res, err
		}

		for _, msg := range r.fixture.Messages {
			d, err := r.turn(ctx, store, sessionID, msg)
			if err != nil {
				r.memory.Forget(sessionID)
				_ = store.Clear(ctx, sessionID)
				return res, fmt.Errorf("%s.Run: backend=%s run=%d: %w", LogPrefix, backend, i, err)
			}
			res.Samples = append(res.Samples, d)
			metrics.ObserveTurn(backend, d)

			if r.pause > 0 {
				select {
				case <-ctx.Done():
					return res, ctx.Err()
				case <-time.After(r.pause):
				}
			}
		}

		r.memory.Forget(sessionID)
		if err := store.Clear(ctx, sessionID); err != nil {
			r.l.Warnf(ctx, "%s.Run: clear %s: %v", LogPrefix, sessionID, err)
		}
		r.l.Infof(ctx, "%s.Run: backend=%s memory=%s run %d/%d done", LogPrefix, backend, res.Memory, i+1, runs)
	}

	res.Stats = Summarize(res.Samples)
	return res, nil
}

func (r *Runner) seed(ctx context.Context, store conversation.Log, sessionID string) error {
	now := time.Now().UTC()
	turns := make([]model.Turn, len(r.fixture.History))
	for i, t := range r.fixture.History {
		t.CreatedAt = now
		turns[i] = t
	}
	if len(turns) > 0 {
		if err := store.Append(ctx, sessionID, turns...); err != nil {
			return err
		}
	}
	return r.memory.Seed(ctx, sessionID, turns)
}

func (r *Runner) turn(ctx context.Context, store conversation.Log, sessionID, msg string) (time.Duration, error) {
	start := time.Now()

	history, err := store.ReadAll(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	vars, err := r.memory.Variables(ctx, sessionID, msg, history)
	if err != nil {
		return 0, err
	}
	vars[router.VarInput] = msg

	reply, err := r.completer.Complete(ctx, r.template.Render(vars))
	if err != nil {
		return 0, err
	}
	human, ai := model.HumanTurn(msg), model.AssistantTurn(reply)
	if err := store.Append(ctx, sessionID, human, ai); err != nil {
		return 0, err
	}
	if err := r.memory.Saved(ctx, sessionID, human, ai); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

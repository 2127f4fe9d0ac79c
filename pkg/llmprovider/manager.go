package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"assistant-kit/pkg/log"
)

// Manager tries providers in priority order, retrying each with linear
// backoff, all under one global timeout.
type Manager struct {
	providers []Provider
	config    *Config
	logger    log.Logger
}

// Observer is told about every provider call.
type Observer func(provider string, d time.Duration, err error)

// Config tunes the fallback chain.
type Config struct {
	FallbackEnabled bool
	RetryAttempts   int
	RetryDelay      time.Duration
	MaxTotalTimeout time.Duration // whole chain, all providers
	Temperature     float64       // used by Complete
	Observer        Observer
}

// NewManager creates a Manager. providers must already be sorted by priority.
func NewManager(providers []Provider, config *Config, logger log.Logger) *Manager {
	if config == nil {
		config = &Config{RetryAttempts: 1}
	}
	if config.RetryAttempts <= 0 {
		config.RetryAttempts = 1
	}
	return &Manager{
		providers: providers,
		config:    config,
		logger:    logger,
	}
}

// GenerateContent returns the first successful response of the chain.
func (m *Manager) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}
	if req == nil || len(req.Messages) == 0 {
		return nil, ErrInvalidRequest
	}

	if m.config.MaxTotalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.config.MaxTotalTimeout)
		defer cancel()
	}

	var lastErr error
	for i, provider := range m.providers {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("chain timed out after %d provider(s): %w", i, err)
		}

		resp, attempts, err := m.generateWithRetry(ctx, provider, req)
		if err == nil {
			m.logSuccess(ctx, provider, resp, attempts)
			return resp, nil
		}

		m.logFailure(ctx, provider, err)
		lastErr = &ProviderError{Provider: provider.Name(), Model: provider.Model(), Attempts: attempts, Err: err}

		if !m.config.FallbackEnabled {
			break
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, lastErr)
}

// generateWithRetry stops early when the context ends; a cancelled call is
// not worth repeating.
func (m *Manager) generateWithRetry(ctx context.Context, provider Provider, req *Request) (*Response, int, error) {
	var lastErr error
	attempt := 0
	for attempt < m.config.RetryAttempts {
		if attempt > 0 {
			select {
			case <-time.After(time.Duration(attempt) * m.config.RetryDelay):
			case <-ctx.Done():
				return nil, attempt, ctx.Err()
			}
		}
		attempt++

		start := time.Now()
		resp, err := provider.GenerateContent(ctx, req)
		m.observe(provider.Name(), time.Since(start), err)
		if err == nil {
			return resp, attempt, nil
		}
		lastErr = err
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			break
		}
	}
	return nil, attempt, lastErr
}

func (m *Manager) observe(provider string, d time.Duration, err error) {
	if m.config.Observer != nil {
		m.config.Observer(provider, d, err)
	}
}

func (m *Manager) logSuccess(ctx context.Context, provider Provider, resp *Response, attempts int) {
	var inputTokens, outputTokens int
	if resp.Usage != nil {
		inputTokens, outputTokens = resp.Usage.InputTokens, resp.Usage.OutputTokens
	}
	m.logger.Info(ctx, "llm generation ok",
		"provider", provider.Name(),
		"model", provider.Model(),
		"attempts", attempts,
		"input_tokens", inputTokens,
		"output_tokens", outputTokens,
	)
}

func (m *Manager) logFailure(ctx context.Context, provider Provider, err error) {
	m.logger.Warn(ctx, "llm generation failed",
		"provider", provider.Name(),
		"model", provider.Model(),
		"error", err.Error(),
	)
}
